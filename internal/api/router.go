package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/api/handler"
	"github.com/gestaoverbas/registro-system/internal/api/middleware"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
	"github.com/gestaoverbas/registro-system/internal/core/service"
	mongodb "github.com/gestaoverbas/registro-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gestaoverbas/registro-system/internal/infrastructure/db/redis"
)

// Dependencies carries the infrastructure handles the router wires together.
type Dependencies struct {
	Stores    *mongodb.Stores
	Redis     *goredis.Client
	Publisher ports.NotificationPublisher // nil disables queue fan-out
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("registro"))

	denylist := redisdb.NewTokenDenylist(deps.Redis)
	e.Use(middleware.Auth(deps.JWTSecret, denylist, deps.Logger))

	// --- Dependencies ---
	storeRouter := mongodb.NewStoreRouter(deps.Stores, deps.Logger)

	accountRepo := mongodb.NewAccountRepository(storeRouter)
	empresaRepo := mongodb.NewEmpresaRepository(storeRouter)
	transacaoRepo := mongodb.NewTransacaoRepository(storeRouter)
	notificacaoRepo := mongodb.NewNotificacaoRepository(storeRouter)

	authService := service.NewAuthService(accountRepo, denylist, deps.JWTSecret, 24*time.Hour)
	accountService := service.NewAccountService(accountRepo, deps.Logger)
	empresaService := service.NewEmpresaService(empresaRepo, deps.Logger)
	transacaoService := service.NewTransacaoService(transacaoRepo, empresaRepo, deps.Logger)
	notificacaoService := service.NewNotificacaoService(notificacaoRepo, deps.Publisher, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(accountService)
	empresaHandler := handler.NewEmpresaHandler(empresaService)
	transacaoHandler := handler.NewTransacaoHandler(transacaoService)
	notificacaoHandler := handler.NewNotificacaoHandler(notificacaoService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Stores, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes (authentication + role gate) ---
	api := e.Group("/api", middleware.Gate())

	api.GET("/empresas", empresaHandler.List)
	api.POST("/empresas", empresaHandler.Create)
	api.GET("/empresas/:id", empresaHandler.Get)
	api.PUT("/empresas/:id", empresaHandler.Update)
	api.DELETE("/empresas/:id", empresaHandler.Delete)

	api.GET("/transacoes", transacaoHandler.List)
	api.POST("/transacoes", transacaoHandler.Create)
	api.GET("/transacoes/:id", transacaoHandler.Get)
	api.PUT("/transacoes/:id", transacaoHandler.Update)
	api.DELETE("/transacoes/:id", transacaoHandler.Delete)

	api.GET("/notificacoes", notificacaoHandler.List)
	api.POST("/notificacoes", notificacaoHandler.Create)
	api.DELETE("/notificacoes/:id", notificacaoHandler.Delete)

	// Account routes check authentication only; the account service applies
	// the role rules itself so an invalid target suffix is reported as a
	// format error rather than a permission error.
	users := e.Group("/api/users", middleware.Authenticated())
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
