package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"coursequiz/internal/adapter"
	"coursequiz/internal/adapter/oracle"
	"coursequiz/internal/cache"
	"coursequiz/internal/config"
	"coursequiz/internal/database"
	"coursequiz/internal/domain"
	"coursequiz/internal/handler"
	"coursequiz/internal/logger"
	"coursequiz/internal/middleware"
	"coursequiz/internal/repository"
	"coursequiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Oracle backend. The server still runs without one: question
	// generation and grading degrade to their fallbacks.
	var (
		generator domain.QuestionGenerator
		evaluator domain.AnswerEvaluator
	)
	llm, err := oracle.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		appLogger.Warn("LLM client unavailable, fallbacks will be used", zap.Error(err))
	} else {
		appLogger.Info("LLM client initialized",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model))
		generator = oracle.NewLLMQuestionGenerator(llm, cfg.LLM.Timeout)
		evaluator = oracle.NewLLMEvaluator(llm, cfg.LLM.Timeout)
	}
	selector := service.NewQuestionSelector(generator)

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.GetMigrateDSN()); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	courseRepository := repository.NewCourseDatabaseAdapter(db)
	sessionRepository := repository.NewSessionDatabaseAdapter(db)

	// Services
	sessionService := service.NewSessionService(courseRepository, sessionRepository, selector, evaluator)
	courseService := service.NewCourseService(courseRepository, cfg.Courses.MirrorDir)
	adminAuthService := service.NewAdminAuthService(cacheAdapter, cfg.Admin)

	// Handlers
	quizHandler := handler.NewQuizHandler(sessionService)
	courseHandler := handler.NewCourseHandler(courseService)
	adminHandler := handler.NewAdminHandler(adminAuthService, cfg.Admin.SessionTTL)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Public course listing
	apiGroup.Get("/courses", courseHandler.ListCourses)

	// Legacy default-course routes, kept for old clients
	apiGroup.Post("/check_user", quizHandler.BeginSessionDefault)
	apiGroup.Post("/finalize", quizHandler.FinalizeSessionDefault)

	// Admin routes
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Post("/login", adminHandler.Login)
	adminGroup.Post("/logout", adminHandler.Logout)
	protected := adminGroup.Group("/courses", middleware.AdminProtected(adminAuthService))
	protected.Post("/", courseHandler.CreateCourse)
	protected.Get("/:courseID", courseHandler.GetCourse)
	protected.Put("/:courseID", courseHandler.UpdateCourse)
	protected.Delete("/:courseID", courseHandler.DeleteCourse)

	// Per-course quiz routes, registered last so literal paths above win
	apiGroup.Post("/:courseID/check_user", quizHandler.BeginSession)
	apiGroup.Post("/:courseID/finalize", quizHandler.FinalizeSession)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
