// cmd/report/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/analytics"
	"github.com/kylepratt/flipledger/backend-go/internal/cache"
	"github.com/kylepratt/flipledger/backend-go/internal/config"
	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/repository/postgres"
	"github.com/kylepratt/flipledger/backend-go/internal/service"
	"github.com/kylepratt/flipledger/backend-go/internal/storage"
)

const dateLayout = "2006-01-02"

func main() {
	// Parse command line flags
	preset := flag.String("preset", "", "Named period (today, last7days, last30days, thisMonth, lastMonth, thisYear)")
	from := flag.String("from", "", "Period start date (YYYY-MM-DD), empty for no lower bound")
	to := flag.String("to", "", "Period end date (YYYY-MM-DD), empty for no upper bound")
	trend := flag.String("trend", "", "Write a profit trend instead of a P&L (daily, weekly or monthly)")
	out := flag.String("out", "", "Output file, defaults to the generated report filename")
	upload := flag.Bool("upload", false, "Also upload the report to object storage")
	uploadPrefix := flag.String("upload-prefix", "reports", "Key prefix for uploaded reports")
	flag.Parse()

	// Database and storage settings come from the environment
	cfg := config.Load()

	dateRange, err := buildRange(*preset, *from, *to)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database connection
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	var store storage.ObjectStorage
	if *upload {
		if cfg.Storage.Endpoint == "" {
			log.Fatal("Upload requested but STORAGE_ENDPOINT is not configured")
		}
		store, err = storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	}

	repo := postgres.NewLedgerRepository(db)
	reports := service.NewReportService(repo, cache.NewNoopLedgerSnapshotCache(), store)

	ctx := context.Background()
	start := time.Now()

	// Build the report
	var (
		data     []byte
		filename string
	)
	if *trend != "" {
		granularity, ok := domain.ParseTrendGranularity(*trend)
		if !ok {
			log.Fatalf("Unknown trend granularity: %s", *trend)
		}
		data, filename, err = reports.ExportTrendCSV(ctx, granularity, dateRange)
	} else {
		data, filename, err = reports.ExportProfitLossCSV(ctx, dateRange)
	}
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}

	dest := *out
	if dest == "" {
		dest = filename
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", dest, err)
	}
	log.Printf("Wrote %s (%d bytes) in %v", dest, len(data), time.Since(start))

	if *upload {
		key, err := reports.UploadReport(ctx, *uploadPrefix, filename, data)
		if err != nil {
			log.Fatalf("Failed to upload report: %v", err)
		}
		log.Printf("Uploaded report to %s", key)
	}
}

// buildRange resolves the report period. An explicit -from/-to overrides the
// preset bound on that side.
func buildRange(preset, from, to string) (domain.DateRange, error) {
	var dateRange domain.DateRange
	if preset != "" {
		dateRange = analytics.ResolvePreset(preset, time.Now())
	}

	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			return domain.DateRange{}, err
		}
		dateRange.Start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			return domain.DateRange{}, err
		}
		dateRange.End = &t
	}

	return dateRange, nil
}
