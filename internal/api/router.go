package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reviewhub/catalog-api/internal/api/handler"
	"github.com/reviewhub/catalog-api/internal/api/middleware"
	"github.com/reviewhub/catalog-api/internal/core/authz"
	"github.com/reviewhub/catalog-api/internal/core/ports"
	"github.com/reviewhub/catalog-api/internal/core/service"
	mongodb "github.com/reviewhub/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/reviewhub/catalog-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the HTTP layer needs.
type RouterConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	SignupWindow time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, mailQueue ports.MailQueue, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	genreRepo := mongodb.NewGenreRepository(db)
	titleRepo := mongodb.NewTitleRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	throttle := redisdb.NewSignupThrottle(rdb, cfg.SignupWindow)

	authService := service.NewAuthService(userRepo, mailQueue, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	catalogService := service.NewCatalogService(categoryRepo, genreRepo, titleRepo, reviewRepo, log)
	reviewService := service.NewReviewService(titleRepo, reviewRepo, log)
	commentService := service.NewCommentService(reviewRepo, commentRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Actor resolution is optional on the whole API surface; route policies
	// decide whether an anonymous actor may proceed.
	v1 := e.Group("/api/v1", middleware.Auth(cfg.JWTSecret, false))

	adminRead := middleware.Require(authz.AdminOnly, authz.ActionRead)
	adminWrite := middleware.Require(authz.AdminOnly, authz.ActionWrite)
	publicRead := middleware.Require(authz.ReadOnlyOrAuthenticated, authz.ActionRead)
	authedRead := middleware.Require(authz.AuthenticatedOnly, authz.ActionRead)
	authedWrite := middleware.Require(authz.AuthenticatedOnly, authz.ActionWrite)
	reviewRead := middleware.Require(authz.ModeratorOrOwnerOrReadOnly, authz.ActionRead)
	reviewWrite := middleware.Require(authz.ModeratorOrOwnerOrReadOnly, authz.ActionWrite)

	// --- Auth ---
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/token", authHandler.Token)

	// --- Users ---
	v1.GET("/users/me", userHandler.Me, authedRead)
	v1.PATCH("/users/me", userHandler.UpdateMe, authedWrite)
	v1.GET("/users", userHandler.List, adminRead)
	v1.POST("/users", userHandler.Create, adminWrite)
	v1.GET("/users/:username", userHandler.Get, adminRead)
	v1.PATCH("/users/:username", userHandler.Update, adminWrite)
	v1.DELETE("/users/:username", userHandler.Delete, adminWrite)

	// --- Catalog ---
	v1.GET("/categories", catalogHandler.ListCategories, publicRead)
	v1.POST("/categories", catalogHandler.CreateCategory, adminWrite)
	v1.DELETE("/categories/:slug", catalogHandler.DeleteCategory, adminWrite)

	v1.GET("/genres", catalogHandler.ListGenres, publicRead)
	v1.POST("/genres", catalogHandler.CreateGenre, adminWrite)
	v1.DELETE("/genres/:slug", catalogHandler.DeleteGenre, adminWrite)

	v1.GET("/titles", catalogHandler.ListTitles, publicRead)
	v1.POST("/titles", catalogHandler.CreateTitle, adminWrite)
	v1.GET("/titles/:title_id", catalogHandler.GetTitle, publicRead)
	v1.PATCH("/titles/:title_id", catalogHandler.UpdateTitle, adminWrite)
	v1.DELETE("/titles/:title_id", catalogHandler.DeleteTitle, adminWrite)

	// --- Reviews & comments ---
	v1.GET("/titles/:title_id/reviews", reviewHandler.List, reviewRead)
	v1.POST("/titles/:title_id/reviews", reviewHandler.Create, reviewWrite)
	v1.GET("/titles/:title_id/reviews/:review_id", reviewHandler.Get, reviewRead)
	v1.PATCH("/titles/:title_id/reviews/:review_id", reviewHandler.Update, reviewWrite)
	v1.DELETE("/titles/:title_id/reviews/:review_id", reviewHandler.Delete, reviewWrite)

	v1.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List, reviewRead)
	v1.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create, reviewWrite)
	v1.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Get, reviewRead)
	v1.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Update, reviewWrite)
	v1.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Delete, reviewWrite)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
