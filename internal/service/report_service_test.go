package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/storage"
)

// stubStorage records uploads in memory.
type stubStorage struct {
	uploads map[string][]byte
}

func (s *stubStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *stubStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	return nil
}

func (s *stubStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[key] = data
	return nil
}

func TestReportServiceGetProfitLoss(t *testing.T) {
	repo := &stubLedgerRepo{snapshot: fixedSnapshot()}
	svc := NewReportService(repo, &memoryCache{}, nil)

	stmt, err := svc.GetProfitLoss(context.Background(), janRange())

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), stmt.Period.Start)
	assert.InDelta(t, 100.0, stmt.Revenue.TotalSales, 1e-9)
	assert.Equal(t, 1, stmt.Revenue.ItemsSold)
	assert.InDelta(t, 30.0, stmt.COGS.PalletItemCost, 1e-9)
	assert.InDelta(t, 20.0, stmt.SellingExpenses.Total, 1e-9)
	assert.InDelta(t, 50.0, stmt.NetProfit, 1e-9)
}

func TestReportServiceExportProfitLossCSV(t *testing.T) {
	repo := &stubLedgerRepo{snapshot: fixedSnapshot()}
	svc := NewReportService(repo, &memoryCache{}, nil)

	data, filename, err := svc.ExportProfitLossCSV(context.Background(), janRange())

	require.NoError(t, err)
	assert.Equal(t, "profit_loss_2024-01-01_2024-01-31.csv", filename)
	assert.Contains(t, string(data), "Profit & Loss Statement")
	assert.Contains(t, string(data), "Net Profit")
}

func TestReportServiceExportTrendCSV(t *testing.T) {
	repo := &stubLedgerRepo{snapshot: fixedSnapshot()}
	svc := NewReportService(repo, &memoryCache{}, nil)

	data, filename, err := svc.ExportTrendCSV(context.Background(), domain.TrendMonthly, domain.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, "profit_trend_monthly.csv", filename)
	assert.Contains(t, string(data), "2024-01-01,100.00,50.00,1")
}

func TestReportServiceUploadProfitLossCSV(t *testing.T) {
	repo := &stubLedgerRepo{snapshot: fixedSnapshot()}
	store := &stubStorage{}
	svc := NewReportService(repo, &memoryCache{}, store)

	key, err := svc.UploadProfitLossCSV(context.Background(), janRange(), "reports")

	require.NoError(t, err)
	assert.Equal(t, "reports/profit_loss_2024-01-01_2024-01-31.csv", key)
	assert.NotEmpty(t, store.uploads[key])
}

func TestReportServiceUploadWithoutStorage(t *testing.T) {
	svc := NewReportService(&stubLedgerRepo{snapshot: fixedSnapshot()}, &memoryCache{}, nil)

	_, err := svc.UploadReport(context.Background(), "reports", "x.csv", []byte("data"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
