package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ordersdesk/ordersdesk/docs"
	"github.com/ordersdesk/ordersdesk/internal/api/handler"
	"github.com/ordersdesk/ordersdesk/internal/api/middleware"
	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// Common holds what both services share: logging, CORS, probes and metrics.
type Common struct {
	Logger      zerolog.Logger
	CORSOrigins []string
	// Health maps dependency names to readiness checks.
	Health map[string]handler.Pinger
	// Registry receives the HTTP request metrics and backs /metrics.
	// Nil means the Prometheus default registry.
	Registry *prometheus.Registry
}

// AuthRouterDeps wires the auth service.
type AuthRouterDeps struct {
	Common
	Auth ports.AuthService
}

// OrdersRouterDeps wires the orders service.
type OrdersRouterDeps struct {
	Common
	Orders  ports.OrderService
	Clients ports.ClientService
	Tokens  middleware.TokenValidator
	// RequireAuth guards /Orders and /Clients with a bearer token.
	RequireAuth bool
}

// NewAuthRouter builds the Echo instance serving /api/v1/Auth.
func NewAuthRouter(deps AuthRouterDeps) *echo.Echo {
	e := newEcho(deps.Common, "auth")

	authHandler := handler.NewAuthHandler(deps.Auth)

	g := e.Group("/api/v1/Auth")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	return e
}

// NewOrdersRouter builds the Echo instance serving /api/v1/Orders and
// /api/v1/Clients.
func NewOrdersRouter(deps OrdersRouterDeps) *echo.Echo {
	e := newEcho(deps.Common, "orders")

	orderHandler := handler.NewOrderHandler(deps.Orders)
	clientHandler := handler.NewClientHandler(deps.Clients)

	var guards []echo.MiddlewareFunc
	if deps.RequireAuth {
		guards = append(guards,
			middleware.Auth(deps.Tokens),
			middleware.RBAC(domain.RoleAdmin, domain.RoleCustomer),
			middleware.AdminOnlyDeletes(),
		)
	}

	orders := e.Group("/api/v1/Orders", guards...)
	orders.GET("", orderHandler.List)
	orders.GET("/filter/:status", orderHandler.ListByStatus)
	orders.GET("/stats", orderHandler.Stats)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("", orderHandler.Create)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Delete)

	clients := e.Group("/api/v1/Clients", guards...)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	return e
}

// newEcho applies the middleware stack and operational routes shared by both
// services. subsystem labels the HTTP request metrics.
func newEcho(common Common, subsystem string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(common.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if common.Registry != nil {
		registerer, gatherer = common.Registry, common.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(common.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  common.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Idempotency-Key"},
		ExposeHeaders: []string{echo.HeaderLocation, "Idempotent-Replayed"},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "ordersdesk",
		Subsystem:  subsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler(common.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
