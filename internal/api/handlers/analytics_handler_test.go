package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ptr[T any](v T) *T {
	return &v
}

// stubLedgerRepo serves a canned snapshot without a database.
type stubLedgerRepo struct {
	snapshot *domain.LedgerSnapshot
	facets   *domain.LedgerFacets
}

func (s *stubLedgerRepo) LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubLedgerRepo) GetPallets(ctx context.Context) ([]domain.Pallet, error) {
	return s.snapshot.Pallets, nil
}

func (s *stubLedgerRepo) GetItems(ctx context.Context) ([]domain.Item, error) {
	return s.snapshot.Items, nil
}

func (s *stubLedgerRepo) GetExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.snapshot.Expenses, nil
}

func (s *stubLedgerRepo) GetMileageTrips(ctx context.Context) ([]domain.MileageTrip, error) {
	return s.snapshot.Trips, nil
}

func (s *stubLedgerRepo) GetFacets(ctx context.Context) (*domain.LedgerFacets, error) {
	return s.facets, nil
}

func testAnalyticsHandler() *AnalyticsHandler {
	listed := time.Now().AddDate(0, 0, -45)
	repo := &stubLedgerRepo{
		snapshot: &domain.LedgerSnapshot{
			Pallets: []domain.Pallet{{ID: 1, Name: "Monster Load", PurchaseCost: 500}},
			Items: []domain.Item{
				{
					ID:            10,
					PalletID:      ptr(int64(1)),
					Status:        domain.StatusSold,
					SalePrice:     ptr(100.0),
					AllocatedCost: ptr(30.0),
					PlatformFee:   ptr(20.0),
					SaleDate:      ptr(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)),
				},
				{ID: 11, PalletID: ptr(int64(1)), Status: domain.StatusListed, ListingDate: &listed},
			},
		},
		facets: &domain.LedgerFacets{Suppliers: []string{"GoodwillBins"}},
	}
	return NewAnalyticsHandler(service.NewAnalyticsService(repo, nil, 30))
}

func TestParseDateRange(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?start=2024-01-01&end=2024-01-31", nil)

	r, ok := parseDateRange(c)

	require.True(t, ok)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), *r.End)
}

func TestParseDateRangeEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	r, ok := parseDateRange(c)

	require.True(t, ok)
	assert.True(t, r.IsZero())
}

func TestParseDateRangeRejectsMalformedDates(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?start=01-31-2024", nil)

	_, ok := parseDateRange(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid start date")
}

func TestParseDateRangePresetWithOverride(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?preset=thisMonth&start=2024-01-05", nil)

	r, ok := parseDateRange(c)

	require.True(t, ok)
	assert.Equal(t, "thisMonth", r.Preset)
	require.NotNil(t, r.Start)
	// The explicit start overrides the preset's start.
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), *r.Start)
	require.NotNil(t, r.End)
}

func TestGetHeroMetricsEndpoint(t *testing.T) {
	router := gin.New()
	router.GET("/hero", testAnalyticsHandler().GetHeroMetrics)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hero?start=2024-01-01&end=2024-01-31", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var hero domain.HeroMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hero))
	assert.Equal(t, 1, hero.TotalPallets)
	assert.InDelta(t, 50.0, hero.TotalProfit, 1e-9)
}

func TestGetHeroMetricsBadDate(t *testing.T) {
	router := gin.New()
	router.GET("/hero", testAnalyticsHandler().GetHeroMetrics)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hero?start=Jan+1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPalletAnalyticsEndpoint(t *testing.T) {
	router := gin.New()
	router.GET("/pallets", testAnalyticsHandler().GetPalletAnalytics)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pallets", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Pallets []domain.PalletAnalytics `json:"pallets"`
		Total   int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Pallets, 1)
	assert.Equal(t, "Monster Load", body.Pallets[0].PalletName)
}

func TestGetStaleItemsEndpoint(t *testing.T) {
	router := gin.New()
	router.GET("/stale", testAnalyticsHandler().GetStaleItems)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stale", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []domain.StaleItem `json:"items"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)

	// A higher explicit threshold filters the listing out.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stale?threshold=60", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Total)
}

func TestGetProfitTrendEndpoint(t *testing.T) {
	router := gin.New()
	router.GET("/trend", testAnalyticsHandler().GetProfitTrend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trend?granularity=weekly", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Granularity string              `json:"granularity"`
		Points      []domain.TrendPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "weekly", body.Granularity)
	require.Len(t, body.Points, 1)
}

func TestGetProfitTrendRejectsUnknownGranularity(t *testing.T) {
	router := gin.New()
	router.GET("/trend", testAnalyticsHandler().GetProfitTrend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trend?granularity=hourly", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid granularity")
}

func TestGetFiltersEndpoint(t *testing.T) {
	router := gin.New()
	router.GET("/filters", testAnalyticsHandler().GetFilters)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/filters", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var facets domain.LedgerFacets
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &facets))
	assert.Equal(t, []string{"GoodwillBins"}, facets.Suppliers)
}
