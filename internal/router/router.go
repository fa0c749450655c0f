package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/subsidyhub/backend/api/handler"
)

type Handlers struct {
	Intake *apiHandler.IntakeHandler
	Auth   *apiHandler.AuthHandler
	Admin  *apiHandler.AdminHandler
	Health *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New wires the intake/review surface. authenticate resolves the caller
// identity; requireAdminPage redirects browsers to the login form while
// requireAdminAPI answers 401.
func New(handlers Handlers, authenticate, requireAdminPage, requireAdminAPI Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)
	r.GET("/metrics", metricsHandler())

	// Public intake routes
	r.GET("/", handlers.Intake.Home)
	r.POST("/apply", handlers.Intake.Apply)
	r.GET("/result/{id}", handlers.Intake.Result)

	// Auth routes
	r.GET("/login", handlers.Auth.LoginForm)
	r.POST("/login", handlers.Auth.Login)
	r.GET("/logout", handlers.Auth.Logout)

	// Admin review routes
	r.GET("/admin", authenticate(requireAdminPage(handlers.Admin.Dashboard)))
	r.GET("/admin/audit", authenticate(requireAdminPage(handlers.Admin.Audit)))
	r.GET("/predict/{id}", authenticate(requireAdminAPI(handlers.Admin.FraudCheck)))
	r.POST("/update_status/{id}", authenticate(requireAdminAPI(handlers.Admin.UpdateStatus)))

	return r
}

// NewPredictor wires the standalone prediction surface.
func NewPredictor(predict *apiHandler.PredictHandler, health *apiHandler.HealthHandler) *router.Router {
	r := router.New()

	r.POST("/predict", predict.Predict)
	if health != nil {
		r.GET("/health", health.Check)
	} else {
		r.GET("/health", predict.Health)
	}
	r.GET("/metrics", metricsHandler())

	return r
}

func metricsHandler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}
