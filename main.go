package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sochi-schedule/config"
	"sochi-schedule/database"
	"sochi-schedule/handlers"
	"sochi-schedule/schedule"
	"sochi-schedule/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	log.Printf("Starting Sochi station schedule service")
	log.Printf("Station: %s (%s)", cfg.StationCode, cfg.ScheduleBaseURL)

	// Optional fetch log
	var recorder services.FetchRecorder
	if cfg.FetchLogEnabled {
		if err := database.Connect(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(database.GetDB()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		recorder = database.NewFetchLog(database.GetDB())
	}

	fetcher := &schedule.Fetcher{
		Client:      schedule.NewHTTPClient(cfg.ScheduleTimeout, cfg.ScheduleUserAgent, cfg.ScheduleAcceptLanguage),
		BaseURL:     cfg.ScheduleBaseURL,
		StationCode: cfg.StationCode,
		Extractor:   schedule.NewYandexExtractor(),
		Logger:      logger.With("component", "schedule"),
		Now:         time.Now,
	}
	scheduleService := services.NewScheduleService(fetcher, recorder)
	chatService := services.NewChatService(scheduleService, cfg.DisplayLimit)

	// Setup Gin router
	router := setupRouter(cfg,
		handlers.NewScheduleHandler(scheduleService, cfg.DisplayLimit),
		handlers.NewChatHandler(chatService),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Both directions may take a full fetch timeout each
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.ScheduleTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRouter(cfg *config.Config, scheduleHandler *handlers.ScheduleHandler, chatHandler *handlers.ChatHandler) *gin.Engine {
	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.RequestMetrics())
	handlers.LoadTemplates(router)

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/schedule")
	})
	router.GET("/schedule", scheduleHandler.SchedulePage)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/schedule", scheduleHandler.GetSchedule)
		api.GET("/schedule/history", scheduleHandler.GetHistory)
		api.POST("/chat", chatHandler.ChatWithBot)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
