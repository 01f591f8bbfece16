package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kylepratt/flipledger/backend-go/internal/drive"
)

// runRestore rebuilds the ledger from tracker backups: download from Google
// Drive (or the object storage bucket with --from-storage), then import
// through the pipeline.
func runRestore(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Context

	// Apply migrations first so restore works against a fresh database
	migrationsDir := c.String("migrations-dir")
	if migrationsDir != "" {
		if _, err := os.Stat(migrationsDir); err == nil {
			if err := runMigrations(ctx, db, migrationsDir); err != nil {
				return err
			}
		}
	}

	downloadDir := c.String("download-dir")

	var localFiles []string
	if c.Bool("from-storage") {
		localFiles, err = downloadFromStorage(ctx, c, downloadDir)
	} else {
		localFiles, err = downloadFromDrive(ctx, c, downloadDir)
	}
	if err != nil {
		return err
	}

	if len(localFiles) == 0 {
		log.Println("No backup files found; nothing to import")
		return nil
	}

	return importFiles(c, db, localFiles)
}

func downloadFromDrive(ctx context.Context, c *cli.Context, downloadDir string) ([]string, error) {
	credsJSON, err := drive.LoadCredentials(c.String("credentials-path"))
	if err != nil {
		return nil, err
	}

	driveSvc, err := drive.NewService(credsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	folderID := c.String("drive-folder-id")
	if folderID == "" {
		folderPath := c.String("drive-folder-path")
		if folderPath == "" {
			return nil, fmt.Errorf("drive-folder-id or drive-folder-path is required")
		}
		folderID, err = driveSvc.FindFolderByPath(folderPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve drive folder %q: %w", folderPath, err)
		}
	}

	downloader := drive.NewDownloader(driveSvc)

	log.Printf("Downloading ledger backups from Drive folder %s to %s", folderID, downloadDir)
	return downloader.DownloadFolderCSV(ctx, drive.DownloadOptions{
		FolderID:    folderID,
		DownloadDir: downloadDir,
	})
}
