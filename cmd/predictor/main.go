package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/subsidyhub/backend/api/handler"
	"github.com/subsidyhub/backend/internal/classifier"
	"github.com/subsidyhub/backend/internal/config"
	"github.com/subsidyhub/backend/internal/router"
	"github.com/subsidyhub/backend/internal/services/lifecycle"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	"github.com/subsidyhub/backend/pkg/logger"
)

// The predictor serves the fraud model on its own: no stores, no sessions.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.Context(context.Background())
	defer cancel()

	model := classifier.New(cfg.Model.Path, zapLogger)
	if !model.Ready() {
		zapLogger.Warn("serving without a model: every prediction will report it unavailable")
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	predict := apiHandler.NewPredictHandler(model, ctxAdapter, zapLogger)

	r := router.NewPredictor(predict, nil)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName + "-predictor",
	}

	go func() {
		zapLogger.Info("predictor started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
