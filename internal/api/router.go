package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/supplyhub/marketplace-api/internal/api/handler"
	"github.com/supplyhub/marketplace-api/internal/api/middleware"
	"github.com/supplyhub/marketplace-api/internal/core/service"
	"github.com/supplyhub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/supplyhub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/supplyhub/marketplace-api/internal/infrastructure/db/redis"
)

// routeTable is the static path→capability mapping enforced by the gate.
// It mirrors the protected areas of the web client: the catalog and
// profile require a session, the admin area requires the admin role.
func routeTable() *middleware.RouteTable {
	return middleware.NewRouteTable(map[string]middleware.Capability{
		"/admin":    middleware.CapAdmin,
		"/products": middleware.CapAuthenticated,
		"/profile":  middleware.CapAuthenticated,
		"/reviews":  middleware.CapAuthenticated,
	})
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("supplyhub"))
	e.Use(middleware.NewRateLimiter().Limit())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	sessionStore := redisdb.NewSessionStore(rdb)
	resetStore := redisdb.NewResetStore(rdb)

	sessionService := service.NewSessionService(sessionStore, cfg.JWTSecret, cfg.SessionTTL, log.With().Str("component", "session").Logger())
	authService := service.NewAuthService(userRepo, sessionService, resetStore, log.With().Str("component", "auth").Logger())
	userService := service.NewUserService(userRepo, sessionStore, log.With().Str("component", "user").Logger())
	productService := service.NewProductService(productRepo, log.With().Str("component", "product").Logger())
	reviewService := service.NewReviewService(reviewRepo, productRepo, userRepo, log.With().Str("component", "review").Logger())

	authHandler := handler.NewAuthHandler(authService, sessionService, userService)
	profileHandler := handler.NewProfileHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(userService)

	// The gate runs on every request; public paths pass straight through.
	e.Use(middleware.Gate(routeTable(), sessionService))

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/password-reset", authHandler.PasswordReset)

	// --- Catalog (session required) ---
	e.GET("/products", productHandler.List)
	e.POST("/products", productHandler.Create)
	e.GET("/products/:id", productHandler.Get)
	e.PUT("/products/:id", productHandler.Update)
	e.DELETE("/products/:id", productHandler.Delete)
	e.GET("/products/:id/reviews", reviewHandler.ListByProduct)
	e.POST("/products/:id/reviews", reviewHandler.Create)
	e.DELETE("/reviews/:id", reviewHandler.Delete)

	// --- Profile (session required) ---
	e.GET("/profile", profileHandler.Get)
	e.PUT("/profile", profileHandler.Update)

	// --- Admin (admin role required) ---
	e.GET("/admin/users", adminHandler.ListUsers)
	e.PUT("/admin/users/:id/role", adminHandler.SetRole)

	// --- Ops (public) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
