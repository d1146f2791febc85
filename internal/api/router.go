package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/specialists-api/internal/api/handler"
	"github.com/clinicdesk/specialists-api/internal/api/middleware"
	"github.com/clinicdesk/specialists-api/internal/core/domain"
	"github.com/clinicdesk/specialists-api/internal/core/service"
	"github.com/clinicdesk/specialists-api/internal/infrastructure/config"
	"github.com/clinicdesk/specialists-api/internal/infrastructure/db/postgres"
	rediscache "github.com/clinicdesk/specialists-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every dependency is constructed here and passed down explicitly; nothing in
// the service layer reaches for process-wide singletons.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	store := rediscache.NewStore(rdb)
	userRepo := postgres.NewUserRepository(pool)
	specialistRepo := postgres.NewSpecialistRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	specialistService := service.NewSpecialistService(specialistRepo, store, cfg.Cache.TTL, log)
	catalogService := service.NewCatalogService(catalogRepo, store, cfg.Cache.TTL, log)

	authHandler := handler.NewAuthHandler(authService)
	specialistHandler := handler.NewSpecialistHandler(specialistService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	authRequired := middleware.Auth(cfg.Auth.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Specialist routes ---
	e.GET("/specialists", specialistHandler.List, authRequired)
	e.GET("/specialists/:id", specialistHandler.Get, authRequired)
	e.POST("/add_specialist/", specialistHandler.Create, authRequired, adminOnly)
	e.PUT("/update_specialist/:id", specialistHandler.Update, authRequired, adminOnly)
	e.DELETE("/delete_specialist/:id", specialistHandler.Delete, authRequired)

	// --- Catalog service routes ---
	e.GET("/services", catalogHandler.List, authRequired)
	e.GET("/services/:id", catalogHandler.Get, authRequired)
	e.POST("/add_service/", catalogHandler.Create, authRequired, adminOnly)
	e.PUT("/update_service/:id", catalogHandler.Update, authRequired, adminOnly)
	e.DELETE("/delete_service/:id", catalogHandler.Delete, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
