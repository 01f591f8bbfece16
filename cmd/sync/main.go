package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kylepratt/flipledger/backend-go/internal/cache"
	"github.com/kylepratt/flipledger/backend-go/internal/config"
	"github.com/kylepratt/flipledger/backend-go/internal/drive"
	"github.com/kylepratt/flipledger/backend-go/internal/pipeline"
	"github.com/kylepratt/flipledger/backend-go/internal/repository/postgres"
)

func main() {
	once := flag.Bool("once", false, "run a single sync pass and exit")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	credsJSON, err := drive.LoadCredentials(cfg.Drive.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to load Google Drive credentials: %v", err)
	}
	driveService, err := drive.NewService(credsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Resolve the backup folder
	folderID, err := driveService.FindFolderByPath(cfg.Drive.FolderPath)
	if err != nil {
		log.Fatalf("Failed to resolve drive folder %q: %v", cfg.Drive.FolderPath, err)
	}

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize snapshot cache so imports can drop stale entries
	snapshotCache, err := cache.NewLedgerSnapshotCache(cfg.Cache)
	if err != nil {
		log.Printf("Snapshot cache unavailable, continuing without it: %v", err)
		snapshotCache = cache.NewNoopLedgerSnapshotCache()
	}

	// Initialize the sync service
	ledgerPipe := pipeline.NewLedgerPipeline(db.DB.DB, cfg.App.DefaultMileageRate)
	syncService := drive.NewSyncService(driveService, ledgerPipe, pipeline.DefaultConfig("ledger"), drive.SyncOptions{
		FolderID:    folderID,
		DownloadDir: cfg.App.DataDir,
		Invalidate:  snapshotCache.InvalidateAll,
	})

	if *once {
		result, err := syncService.SyncOnce(context.Background())
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		log.Printf("Sync complete: %d listed, %d changed, %d imported", result.Listed, result.Changed, result.Downloaded)
		return
	}

	// Poll the backup folder in the background
	interval := time.Duration(cfg.Drive.SyncInterval) * time.Minute
	go syncService.Watch(context.Background(), interval)

	// Create router
	r := mux.NewRouter()

	// Register routes
	driveHandler := drive.NewHandler(driveService, syncService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Sync server starting on %s, watching %q every %s", addr, cfg.Drive.FolderPath, interval)
	log.Fatal(http.ListenAndServe(addr, r))
}
