package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DownloadOptions controls how backup files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
}

// Downloader wraps Service to download ledger backups from a Drive folder.
type Downloader struct {
	service *Service
}

// NewDownloader creates a new Downloader.
func NewDownloader(s *Service) *Downloader {
	return &Downloader{service: s}
}

// DownloadFolderCSV downloads all non-trashed CSV and XLSX files from the
// given Drive folder into DownloadDir and returns local CSV paths. Used for
// full restores; incremental sync lists first and passes only changed files
// to DownloadFiles.
func (d *Downloader) DownloadFolderCSV(ctx context.Context, opts DownloadOptions) ([]string, error) {
	files, err := d.service.ListFiles(opts.FolderID)
	if err != nil {
		return nil, err
	}
	return d.DownloadFiles(ctx, files, opts.DownloadDir)
}

// DownloadFiles downloads the given Drive files into downloadDir and returns
// local CSV paths.
//
//   - CSV files are downloaded directly.
//   - XLSX files are downloaded to a temporary .xlsx, then each sheet is
//     converted to CSV in downloadDir and the temporary .xlsx is removed.
//   - Anything else is skipped.
func (d *Downloader) DownloadFiles(ctx context.Context, files []*File, downloadDir string) ([]string, error) {
	if downloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		if ext == ".csv" {
			localPath := filepath.Join(downloadDir, f.Name)
			out, err := os.Create(localPath)
			if err != nil {
				return nil, fmt.Errorf("failed to create local file %s: %w", localPath, err)
			}
			if err := d.service.DownloadFile(f.ID, out); err != nil {
				out.Close()
				return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
			}
			out.Close()
			localPaths = append(localPaths, localPath)
			continue
		}

		// XLSX: download then convert sheets to CSV
		tmpXLSXPath := filepath.Join(downloadDir, f.Name)
		out, err := os.Create(tmpXLSXPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create temp xlsx %s: %w", tmpXLSXPath, err)
		}
		if err := d.service.DownloadFile(f.ID, out); err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		out.Close()

		csvPaths, err := convertXLSXToCSV(tmpXLSXPath, downloadDir)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to csv: %w", f.Name, err)
		}
		// Best-effort remove temp XLSX
		_ = os.Remove(tmpXLSXPath)
		localPaths = append(localPaths, csvPaths...)
	}

	return localPaths, nil
}
