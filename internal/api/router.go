package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todo-api/todo-service/docs"
	"github.com/todo-api/todo-service/internal/api/handler"
	"github.com/todo-api/todo-service/internal/api/metrics"
	"github.com/todo-api/todo-service/internal/api/middleware"
	"github.com/todo-api/todo-service/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Todos  ports.TodoService
	Checks map[string]handler.DependencyCheck
	Log    zerolog.Logger

	// Registry receives the HTTP and domain metrics and backs /metrics. Nil
	// means the Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "todo_api_http"}
	metricsHandler := echoprometheus.NewHandler()
	if deps.Registry != nil {
		deps.Registry.MustRegister(metrics.Collectors()...)
		promCfg.Registerer = deps.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry})
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	todoHandler := handler.NewTodoHandler(deps.Todos)

	// --- Public routes ---
	e.GET("/", handler.Welcome)
	e.POST("/register", authHandler.Register)
	e.POST("/token", authHandler.Token)

	// --- Protected routes ---
	todos := e.Group("/todos", middleware.Auth(deps.Auth))
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operational ---
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
