package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-manager-api/internal/api/handler"
	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/service"
	"github.com/taskhub/task-manager-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-manager-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-manager-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("taskmanager"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	revocations := redisdb.NewRevocationList(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, revocations, log)
	taskService := service.NewTaskService(taskRepo, log)
	adminService := service.NewAdminService(userRepo, taskRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(tokenService, userRepo, revocations, log)

	// --- Root + observability ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Task Manager API")
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Task routes (owner-scoped) ---
	tasks := e.Group("/api/tasks", authRequired)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, middleware.AdminOnly())
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.PUT("/users/:id/promote", adminHandler.Promote)
	admin.PUT("/users/:id/demote", adminHandler.Demote)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/tasks", adminHandler.ListAllTasks)
	admin.GET("/users/:id/tasks", adminHandler.ListUserTasks)

	return e
}
