// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kylepratt/flipledger/backend-go/internal/api"
	"github.com/kylepratt/flipledger/backend-go/internal/cache"
	"github.com/kylepratt/flipledger/backend-go/internal/config"
	"github.com/kylepratt/flipledger/backend-go/internal/repository/postgres"
	"github.com/kylepratt/flipledger/backend-go/internal/service"
	"github.com/kylepratt/flipledger/backend-go/internal/storage"
	"github.com/kylepratt/flipledger/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize snapshot cache (optional, falls back to direct reads)
	snapshotCache, err := cache.NewLedgerSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Snapshot cache unavailable, continuing without it")
		snapshotCache = cache.NewNoopLedgerSnapshotCache()
	}

	// Initialize object storage for report uploads (optional)
	var store storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		minioClient, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, report uploads disabled")
		} else {
			store = minioClient
		}
	}

	// Initialize services
	repo := postgres.NewLedgerRepository(db)
	analyticsService := service.NewAnalyticsService(repo, snapshotCache, cfg.App.StaleThresholdDays)
	reportService := service.NewReportService(repo, snapshotCache, store)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		AnalyticsService: analyticsService,
		ReportService:    reportService,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
