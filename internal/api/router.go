package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/garagely/garage-api/docs"
	"github.com/garagely/garage-api/internal/api/handler"
	"github.com/garagely/garage-api/internal/api/middleware"
	"github.com/garagely/garage-api/internal/core/service"
	"github.com/garagely/garage-api/internal/core/token"
	mongodb "github.com/garagely/garage-api/internal/infrastructure/db/mongo"
	redisdb "github.com/garagely/garage-api/internal/infrastructure/db/redis"
	"github.com/garagely/garage-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The auth policy is explicit per route: user CRUD and car mutations sit
// behind the bearer middleware, car reads and the auth endpoints do not.
func NewRouter(db *mongo.Database, rdb *redis.Client, issuer *token.Issuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("garage"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	carRepo := mongodb.NewCarRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, issuer, limiter, log)
	userService := service.NewUserService(userRepo, carRepo, log)
	carService := service.NewCarService(carRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	carHandler := handler.NewCarHandler(carService)
	authRequired := middleware.Auth(issuer, log)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("", userHandler.List, authRequired)
	users.GET("/:id", userHandler.Get, authRequired)
	users.PUT("/:id", userHandler.Update, authRequired)
	users.DELETE("/:id", userHandler.Delete, authRequired)

	// --- Car routes (reads open, mutations protected) ---
	cars := e.Group("/api/cars")
	cars.POST("", carHandler.Create, authRequired)
	cars.GET("", carHandler.List)
	cars.GET("/:id", carHandler.Get)
	cars.PUT("/:id", carHandler.Update, authRequired)
	cars.DELETE("/:id", carHandler.Delete, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
