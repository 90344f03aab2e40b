// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "skillshare/docs" // swagger docs
	"skillshare/internal/auth"
	"skillshare/internal/cache"
	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/middleware"
	"skillshare/internal/models"
	"skillshare/internal/notifications"
	"skillshare/internal/repository"
	"skillshare/internal/service"
	"skillshare/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	tokens   *auth.TokenService
	media    storage.MediaStore
	notifier *notifications.Notifier
	hub      *notifications.Hub
	tickets  *notifications.TicketStore

	authService         *service.AuthService
	userService         *service.UserService
	followService       *service.FollowService
	postService         *service.PostService
	commentService      *service.CommentService
	notificationService *service.NotificationService
	workoutPlans        *service.WorkoutPlanService
	mealPlans           *service.MealPlanService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// A nil client disables caching, pub/sub and shared rate limits.
	redisClient := cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	media := storage.NewLocalStore(cfg.UploadDir)
	if err := os.MkdirAll(media.Root(), 0o750); err != nil {
		return nil, fmt.Errorf("media storage init failed: %w", err)
	}
	return newServer(cfg, db, redisClient, media), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, media storage.MediaStore) *Server {
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("skillshare-api"),
		tokens:         auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration),
		media:          media,
		hub:            notifications.NewHub(),
		tickets:        notifications.NewTicketStore(redisClient),
	}

	// With Redis, notifications fan out through pub/sub so every instance can
	// reach the recipient's sockets. Without it the local hub delivers directly.
	var publisher service.Publisher = s.hub
	if redisClient != nil {
		s.notifier = notifications.NewNotifier(redisClient)
		publisher = s.notifier
	}

	s.notificationService = service.NewNotificationService(notificationRepo, publisher)
	s.authService = service.NewAuthService(userRepo, auth.NewBcryptHasher(), s.tokens)
	s.userService = service.NewUserService(userRepo, followRepo)
	s.followService = service.NewFollowService(userRepo, followRepo, s.notificationService)
	s.postService = service.NewPostService(postRepo, media, s.notificationService)
	s.commentService = service.NewCommentService(commentRepo, postRepo, s.notificationService)
	s.workoutPlans = service.NewWorkoutPlanService(repository.NewWorkoutPlanRepository(db))
	s.mealPlans = service.NewMealPlanService(repository.NewMealPlanRepository(db))

	return s
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "SkillShare API",
		BodyLimit:    s.config.MaxUploadBytes,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders errors that escaped a handler in the standard error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return models.RespondWithError(c, fe.Code, errors.New(fe.Message))
	}
	slog.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	app.Use(helmet.New(helmet.Config{
		// Uploaded media is embedded by the web client from another origin.
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// CORS runs before anything that can short-circuit so browser clients
	// still receive CORS headers on error responses.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: s.config.AllowedOrigins != "*",
		MaxAge:           86400,
	}))

	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.Authenticate(s.tokens))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Static("/uploads", s.media.Root(), fiber.Static{
		MaxAge: s.config.UploadCacheMaxAge,
	})

	authRoutes := app.Group("/auth", middleware.RateLimit(middleware.RateLimitConfig{
		Name:     "auth",
		Limit:    s.config.RateLimitAuth,
		Window:   time.Minute,
		Redis:    s.redis,
		Disabled: s.config.Env == "test",
	}))
	authRoutes.Post("/register", s.Register)
	authRoutes.Post("/login", s.Login)

	// The ticket is the credential here; the socket upgrade carries no bearer header.
	app.Get("/ws/notifications", s.WebSocketUpgrade, s.NotificationsSocket())

	writeLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Name:     "write",
		Limit:    s.config.RateLimitWrite,
		Window:   time.Minute,
		Redis:    s.redis,
		Disabled: s.config.Env == "test",
	})
	// Identity is enforced per group so unknown paths and missing uploads
	// still fall through to 404 for anonymous callers.
	requireUser := []fiber.Handler{middleware.RequireIdentity(), writesOnly(writeLimit)}

	app.Post("/ws/ticket", append(requireUser, s.IssueWSTicket)...)

	users := app.Group("/users", requireUser...)
	users.Get("/", s.GetUsers)
	users.Get("/me", s.GetMe)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/following", s.GetFollowing)
	users.Post("/:id/follow", s.FollowUser)
	users.Post("/:id/unfollow", s.UnfollowUser)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	posts := app.Group("/posts", requireUser...)
	posts.Post("/create", s.CreatePost)
	posts.Get("/", s.GetPosts)
	// Comment routes before the generic /:id routes.
	posts.Get("/comments/:commentId", s.GetComment)
	posts.Put("/comments/:commentId", s.UpdateComment)
	posts.Delete("/comments/:commentId", s.DeleteComment)
	posts.Post("/:id/like", s.LikePost)
	posts.Post("/:id/unlike", s.UnlikePost)
	posts.Post("/:id/comment", s.CreateComment)
	posts.Get("/:id/comments", s.GetComments)
	posts.Put("/:id/update", s.UpdatePost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	registerPlanRoutes(s, app.Group("/workoutplans", requireUser...), s.workoutPlans, "Workout Plan")
	registerPlanRoutes(s, app.Group("/mealplans", requireUser...), s.mealPlans, "Meal Plan")

	// Listing and deletion share the path shape and are told apart by method.
	notes := app.Group("/notifications", requireUser...)
	notes.Get("/:userId", s.GetNotifications)
	notes.Delete("/:id", s.DeleteNotification)
}

// writesOnly applies h to mutating requests and lets reads through.
func writesOnly(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		return h(c)
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; only a configured but unreachable instance fails readiness.
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if s.notifier != nil {
		if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			slog.Error("failed to start notification wiring", slog.String("error", err.Error()))
		}
	}

	slog.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		slog.Error("error shutting down notification hub", slog.String("error", err.Error()))
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
