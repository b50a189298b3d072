package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gerald999876/Fasting-Project/internal/config"
	"github.com/gerald999876/Fasting-Project/internal/handler"
	"github.com/gerald999876/Fasting-Project/internal/middleware"
	"github.com/gerald999876/Fasting-Project/internal/notify"
	"github.com/gerald999876/Fasting-Project/internal/pdf"
	"github.com/gerald999876/Fasting-Project/internal/repository"
	"github.com/gerald999876/Fasting-Project/internal/service"
	"github.com/gerald999876/Fasting-Project/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// Initialize the durable store
	var kv store.KV
	var pool *pgxpool.Pool
	if cfg.Storage.Driver == "postgres" {
		pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		// Test database connection
		if err := pool.Ping(context.Background()); err != nil {
			logger.Fatal("Failed to ping database", zap.Error(err))
		}
		logger.Info("Successfully connected to database")

		pg := store.NewPostgres(pool, logger)
		if err := pg.Migrate(context.Background()); err != nil {
			logger.Fatal("Failed to migrate storage schema", zap.Error(err))
		}
		kv = pg
	} else {
		logger.Warn("Using in-memory storage, data will not survive restarts")
		kv = store.NewMemory()
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(kv, logger)
	healthRepo := repository.NewHealthMetricsRepository(kv, logger)
	journalRepo := repository.NewJournalRepository(kv, logger)
	settingsRepo := repository.NewSettingsRepository(kv, logger)

	// Initialize the notification scheduler
	scheduler := notify.NewLogScheduler(logger)

	// Initialize services
	fastingService := service.NewFastingService(sessionRepo, scheduler, logger)
	statsService := service.NewStatsService(sessionRepo, logger)
	entitlementService := service.NewEntitlementService(settingsRepo, logger)
	achievementService := service.NewAchievementService(sessionRepo, entitlementService, logger)
	healthService := service.NewHealthService(healthRepo, logger)
	journalService := service.NewJournalService(journalRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)

	// Initialize PDF generator and report service
	pdfGenerator := pdf.NewPDFGenerator(logger)
	reportService := service.NewReportService(
		statsService,
		achievementService,
		entitlementService,
		pdfGenerator,
		logger,
	)

	// Restore any active session persisted before the last shutdown
	if err := fastingService.Reconcile(context.Background()); err != nil {
		logger.Error("Failed to reconcile fasting state", zap.Error(err))
	}
	defer fastingService.Close()

	// Initialize handlers
	fastingHandler := handler.NewFastingHandler(fastingService, statsService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	achievementsHandler := handler.NewAchievementsHandler(achievementService, logger)
	healthHandler := handler.NewHealthHandler(healthService, logger)
	journalHandler := handler.NewJournalHandler(journalService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				logger.Error("health check failed: database unreachable", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": "disconnected",
					"error":    err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "fasting-tracker-backend",
			"version": "1.0.0",
		})
	})

	// API routes
	v1 := r.Group("/api/v1")
	{
		fasting := v1.Group("/fasting")
		{
			fasting.GET("/methods", fastingHandler.GetMethods)
			fasting.POST("/start", fastingHandler.StartFast)
			fasting.POST("/stop", fastingHandler.StopFast)
			fasting.GET("/status", fastingHandler.GetStatus)
			fasting.GET("/sessions", fastingHandler.GetSessions)
		}

		stats := v1.Group("/stats")
		{
			stats.GET("/summary", statsHandler.GetSummary)
			stats.GET("/frequency", statsHandler.GetFrequency)
			stats.GET("/duration", statsHandler.GetDuration)
			stats.GET("/methods", statsHandler.GetMethodDistribution)
		}

		v1.GET("/achievements", achievementsHandler.List)

		health := v1.Group("/health")
		{
			health.GET("/metrics", healthHandler.GetMetrics)
			health.POST("/metrics", healthHandler.PostMetrics)
		}

		journal := v1.Group("/journal")
		{
			journal.GET("", journalHandler.List)
			journal.POST("", journalHandler.Create)
			journal.PUT("/:id", journalHandler.Update)
			journal.DELETE("/:id", journalHandler.Delete)
		}

		v1.GET("/settings", settingsHandler.Get)
		v1.PUT("/settings", settingsHandler.Put)

		v1.GET("/reports/progress", reportHandler.GetProgressReport)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
