package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/subsidyhub/backend/api/handler"
	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/internal/classifier"
	"github.com/subsidyhub/backend/internal/config"
	"github.com/subsidyhub/backend/internal/infrastructure/audit"
	"github.com/subsidyhub/backend/internal/infrastructure/monitor"
	pgInfra "github.com/subsidyhub/backend/internal/infrastructure/postgres"
	redisInfra "github.com/subsidyhub/backend/internal/infrastructure/redis"
	"github.com/subsidyhub/backend/internal/middleware"
	"github.com/subsidyhub/backend/internal/router"
	"github.com/subsidyhub/backend/internal/services"
	"github.com/subsidyhub/backend/internal/services/lifecycle"
	"github.com/subsidyhub/backend/pkg/httpcontext"
	"github.com/subsidyhub/backend/pkg/logger"
	"github.com/subsidyhub/backend/repository"
	"github.com/subsidyhub/backend/repository/postgres"
	redisRepo "github.com/subsidyhub/backend/repository/redis"
	authUC "github.com/subsidyhub/backend/usecase/auth"
	intakeUC "github.com/subsidyhub/backend/usecase/intake"
	reviewUC "github.com/subsidyhub/backend/usecase/review"
)

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

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditStore, err := audit.Open(cfg.Audit.Path)
	if err != nil {
		zapLogger.Fatal("failed to open audit store", zap.Error(err))
	}
	manager.Register("audit", func(ctx context.Context) error {
		return auditStore.Close()
	})

	// A load failure degrades classification instead of stopping intake.
	model := classifier.New(cfg.Model.Path, zapLogger)

	mon := monitor.New(pool, redisClient, model, auditStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	if err := seedAdmin(appCtx, userRepo, cfg); err != nil {
		zapLogger.Fatal("admin seed failed", zap.Error(err))
	}

	janitor := services.NewAuditJanitor(auditStore, zapLogger, services.JanitorConfig{
		Interval:  cfg.Audit.CleanupInterval,
		Retention: cfg.Audit.Retention,
	})
	janitor.Start()
	manager.Register("audit_janitor", func(ctx context.Context) error {
		janitor.Stop()
		return nil
	})

	auditRecorder := services.NewAuditRecorder(auditStore)

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, zapLogger)
	intakeUseCase := intakeUC.New(applicationRepo, zapLogger)
	reviewUseCase := reviewUC.New(applicationRepo, model, auditRecorder, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Intake: apiHandler.NewIntakeHandler(intakeUseCase, ctxAdapter, zapLogger),
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Admin:  apiHandler.NewAdminHandler(reviewUseCase, auditStore, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authenticate := middleware.Authenticate(authUseCase, zapLogger)
	r := router.New(handlers, authenticate,
		middleware.RequireAdmin("/login"),
		middleware.RequireAdmin(""),
	)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
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

func seedAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	hash, err := authUC.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	return users.Seed(ctx, &domain.User{
		Username:     cfg.Auth.AdminUser,
		PasswordHash: hash,
		IsAdmin:      true,
	})
}
