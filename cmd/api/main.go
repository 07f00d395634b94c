// @title LessonForge API
// @version 1.0
// @description Generates English worksheets with AI text, image and audio content.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lessonforge/internal/adapter"
	"lessonforge/internal/adapter/evaluator"
	"lessonforge/internal/adapter/gemini"
	"lessonforge/internal/adapter/sheets"
	"lessonforge/internal/cache"
	"lessonforge/internal/config"
	"lessonforge/internal/database"
	"lessonforge/internal/domain"
	"lessonforge/internal/handler"
	"lessonforge/internal/logger"
	"lessonforge/internal/middleware"
	"lessonforge/internal/repository"
	"lessonforge/internal/service"
	"lessonforge/internal/validation"

	_ "lessonforge/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
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
			zap.String("user_agent", c.Get("User-Agent")),
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

	// Generation backend, one client for text, image, audio and scoring.
	geminiClient, err := gemini.NewClient(context.Background(), cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	worksheetRepository := repository.NewWorksheetDatabaseAdapter(db)
	submissionRepository := repository.NewSubmissionDatabaseAdapter(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Optional submission report analyst
	var reportAnalyst domain.ReportAnalyst
	if cfg.Report.ServerURL != "" {
		reportAnalyst, err = evaluator.NewReportAnalyst(cfg.Report.ServerURL, cfg.Report.Model)
		if err != nil {
			appLogger.Fatal("Failed to create report analyst", zap.Error(err))
		}
		appLogger.Info("Report analyst initialized", zap.String("model", cfg.Report.Model))
	}

	// Optional sheet endpoint for submission delivery
	var submissionSink domain.SubmissionSink
	if cfg.Sheets.EndpointURL != "" {
		submissionSink = sheets.NewClient(cfg.Sheets, appLogger)
		appLogger.Info("Sheet submission sink initialized")
	}

	// Initialize services
	worksheetService := service.NewWorksheetService(
		geminiClient,
		service.NewImageEnricher(geminiClient),
		service.NewAudioEnricher(geminiClient, cacheAdapter, cfg.Gemini),
		worksheetRepository,
		cacheAdapter,
		cfg.Gemini,
	)
	submissionService := service.NewSubmissionService(worksheetRepository, submissionRepository, submissionSink, reportAnalyst)
	pronunciationService := service.NewPronunciationService(geminiClient)

	// Initialize handlers
	validator := validation.NewValidator()
	worksheetHandler := handler.NewWorksheetHandler(worksheetService, validator)
	submissionHandler := handler.NewSubmissionHandler(submissionService, validator)
	pronunciationHandler := handler.NewPronunciationHandler(pronunciationService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout: cfg.Server.ReadTimeout,
		// Generation with enrichment can legitimately take minutes.
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "component": "database"})
		}
		if err := cacheAdapter.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "component": "cache"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	apiGroup := app.Group("/api")

	// Worksheet routes: generation and the submission list are teacher-only.
	apiGroup.Post("/worksheets", middleware.Protected(cfg.Auth.JWTSecret), worksheetHandler.Generate)
	apiGroup.Get("/worksheets/:id", worksheetHandler.GetByID)
	apiGroup.Post("/worksheets/:id/submissions", submissionHandler.Submit)
	apiGroup.Get("/worksheets/:id/submissions", middleware.Protected(cfg.Auth.JWTSecret), submissionHandler.List)

	// Pronunciation evaluation for speaking exercises
	apiGroup.Post("/pronunciation", pronunciationHandler.Evaluate)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
