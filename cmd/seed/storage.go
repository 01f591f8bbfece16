package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kylepratt/flipledger/backend-go/internal/storage"
)

func newStorageClient(c *cli.Context) (storage.ObjectStorage, error) {
	cfg := storage.MinioConfig{
		Endpoint:  c.String("storage-endpoint"),
		AccessKey: c.String("storage-access-key"),
		SecretKey: c.String("storage-secret-key"),
		Bucket:    c.String("storage-bucket"),
		UseSSL:    c.Bool("storage-use-ssl"),
	}
	return storage.NewMinioClient(cfg)
}

// downloadFromStorage pulls every CSV backup under --storage-prefix into
// downloadDir, preserving paths relative to the prefix.
func downloadFromStorage(ctx context.Context, c *cli.Context, downloadDir string) ([]string, error) {
	client, err := newStorageClient(c)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSpace(c.String("storage-prefix"))
	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage objects for prefix %s: %w", prefix, err)
	}

	var keys []string
	for _, obj := range objects {
		if strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			keys = append(keys, obj.Key)
		}
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath := filepath.Join(downloadDir, objectRelativePath(prefix, key))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare directory for %s: %w", localPath, err)
		}
		if err := client.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

// runBackup uploads every CSV under --data-dir to the object storage bucket
// under --storage-prefix.
func runBackup(c *cli.Context) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newStorageClient(c)
	if err != nil {
		return err
	}

	dataDir := c.String("data-dir")
	files, err := collectCSVFiles(dataDir)
	if err != nil {
		return fmt.Errorf("error walking data directory: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No ledger CSV files found in %s", dataDir)
		return nil
	}

	prefix := strings.TrimSuffix(strings.TrimSpace(c.String("storage-prefix")), "/")
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		key := filepath.Base(file)
		if prefix != "" {
			key = prefix + "/" + key
		}

		if err := client.UploadObject(ctx, key, data); err != nil {
			return err
		}
		log.Printf("Uploaded %s to %s", file, key)
	}

	log.Printf("Backed up %d ledger file(s)", len(files))
	return nil
}

func objectRelativePath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	rel := strings.TrimPrefix(key, prefixTrimmed+"/")
	if rel == "" {
		return filepath.Base(key)
	}
	return rel
}
