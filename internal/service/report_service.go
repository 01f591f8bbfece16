// backend-go/internal/service/report_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kylepratt/flipledger/backend-go/internal/analytics"
	"github.com/kylepratt/flipledger/backend-go/internal/cache"
	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/report"
	"github.com/kylepratt/flipledger/backend-go/internal/repository"
	"github.com/kylepratt/flipledger/backend-go/internal/storage"
)

// ReportService builds profit and loss statements and their CSV exports.
type ReportService struct {
	repo  repository.LedgerRepository
	cache cache.LedgerSnapshotCache
	store storage.ObjectStorage
}

// NewReportService wires the report flows. store may be nil when no object
// storage is configured; uploads then fail with a clear error.
func NewReportService(repo repository.LedgerRepository, cacheImpl cache.LedgerSnapshotCache, store storage.ObjectStorage) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopLedgerSnapshotCache()
	}
	return &ReportService{
		repo:  repo,
		cache: cacheImpl,
		store: store,
	}
}

func (s *ReportService) GetProfitLoss(ctx context.Context, r domain.DateRange) (*domain.ProfitLossStatement, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	stmt := analytics.CalculateProfitLoss(snap.Items, snap.Pallets, snap.Expenses, snap.Trips, r, time.Now())
	return &stmt, nil
}

// ExportProfitLossCSV renders the statement and returns the file contents
// plus a filename derived from the resolved period.
func (s *ReportService) ExportProfitLossCSV(ctx context.Context, r domain.DateRange) ([]byte, string, error) {
	stmt, err := s.GetProfitLoss(ctx, r)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := report.WriteProfitLossCSV(&buf, stmt); err != nil {
		return nil, "", fmt.Errorf("failed to render profit loss csv: %w", err)
	}

	filename := fmt.Sprintf("profit_loss_%s_%s.csv",
		stmt.Period.Start.Format("2006-01-02"),
		stmt.Period.End.Format("2006-01-02"))

	return buf.Bytes(), filename, nil
}

// ExportTrendCSV renders the profit trend for the given granularity.
func (s *ReportService) ExportTrendCSV(ctx context.Context, granularity domain.TrendGranularity, r domain.DateRange) ([]byte, string, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, "", err
	}

	points := analytics.CalculateProfitTrend(snap.Items, granularity, r)

	var buf bytes.Buffer
	if err := report.WriteTrendCSV(&buf, points); err != nil {
		return nil, "", fmt.Errorf("failed to render trend csv: %w", err)
	}

	filename := fmt.Sprintf("profit_trend_%s.csv", granularity)

	return buf.Bytes(), filename, nil
}

// UploadReport pushes an exported report to object storage under prefix.
// Returns the object key.
func (s *ReportService) UploadReport(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	key := path.Join(prefix, filename)
	if err := s.store.UploadObject(ctx, key, data); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("report: uploaded export")

	return key, nil
}

// UploadProfitLossCSV exports the statement for r and pushes it to object
// storage under prefix.
func (s *ReportService) UploadProfitLossCSV(ctx context.Context, r domain.DateRange, prefix string) (string, error) {
	data, filename, err := s.ExportProfitLossCSV(ctx, r)
	if err != nil {
		return "", err
	}
	return s.UploadReport(ctx, prefix, filename, data)
}
