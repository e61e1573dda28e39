package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/config"
	"github.com/SlickbitTechnologies/ContractFlow/handler"
	"github.com/SlickbitTechnologies/ContractFlow/middleware"
	"github.com/SlickbitTechnologies/ContractFlow/pkg/logger"
	"github.com/SlickbitTechnologies/ContractFlow/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Optional document archive
	var archive *service.ArchiveService
	if cfg.Archive.Endpoint != "" {
		archive, err = service.NewArchiveService(&cfg.Archive)
		if err != nil {
			slog.Error("failed to initialize archive service", "error", err)
			os.Exit(1)
		}
		if err := archive.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure archive bucket", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("document archive disabled, no endpoint configured")
	}

	// Remote contract store client and the manager on top of it
	storeClient := service.NewStoreClient(&cfg.Store)
	manager := service.NewContractManager(storeClient, archive, cfg.Expiry.WindowDays)

	// Document-sync integration
	sharepointSvc := service.NewSharePointService(&cfg.SharePoint)

	// Initialize handlers
	contractHandler := handler.NewContractHandler(manager, cfg.Upload.MaxFileSizeMB)
	sharepointHandler := handler.NewSharePointHandler(sharepointSvc, manager)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(100, time.Minute))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.GET("/contracts", contractHandler.List)
		api.POST("/contracts/upload", contractHandler.Upload)
		api.PUT("/contracts/:id", contractHandler.Update)
		api.DELETE("/contracts/:id", contractHandler.Delete)
		api.GET("/notifications", contractHandler.Notifications)
		api.GET("/status", contractHandler.Status)

		api.GET("/sharepoint/status", sharepointHandler.Status)
		api.GET("/sharepoint/sites", sharepointHandler.Sites)
		api.GET("/sharepoint/specific-site/files", sharepointHandler.SiteFiles)
		api.GET("/sharepoint/download/:fileId", sharepointHandler.Download)
		api.POST("/sharepoint/import/:fileId", sharepointHandler.Import)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the dashboard frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
