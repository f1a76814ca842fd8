package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/inkpress/blog-api/docs"
	"github.com/inkpress/blog-api/internal/api/handler"
	"github.com/inkpress/blog-api/internal/api/middleware"
	"github.com/inkpress/blog-api/internal/core/ports"
	"github.com/inkpress/blog-api/internal/pkg/config"
)

// Deps bundles everything the router needs. Construction happens in main so
// startup failures (bad config, unreachable stores) surface before any route
// is registered.
type Deps struct {
	Auth   ports.AuthService
	Posts  ports.PostService
	Tokens ports.TokenService
	Covers handler.CoverStore
	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts, deps.Covers)
	authRequired := middleware.Auth(deps.Tokens)

	// --- Auth & session routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/profile", authHandler.Me, authRequired)

	// --- Profile routes (unauthenticated, see ProfileHandler) ---
	e.GET("/profile/:id", profileHandler.Get)
	e.PUT("/profile/:id", profileHandler.Update)
	e.DELETE("/profile/:id", profileHandler.Delete)

	// --- Post routes ---
	e.POST("/post", postHandler.Create, authRequired)
	e.GET("/post", postHandler.List)
	e.GET("/post/:id", postHandler.Get)
	e.PUT("/post/:id", postHandler.Update, authRequired)
	e.DELETE("/post/:id", postHandler.Delete, authRequired)

	// --- Uploaded covers served statically ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
