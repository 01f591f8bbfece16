// backend-go/internal/service/analytics_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kylepratt/flipledger/backend-go/internal/analytics"
	"github.com/kylepratt/flipledger/backend-go/internal/cache"
	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/repository"
)

// AnalyticsService serves the dashboard metrics. It loads the raw ledger
// snapshot (cache first, Postgres on miss) and runs the pure calculators on
// it per request; computed metrics are never stored.
type AnalyticsService struct {
	repo               repository.LedgerRepository
	cache              cache.LedgerSnapshotCache
	staleThresholdDays int
}

func NewAnalyticsService(repo repository.LedgerRepository, cacheImpl cache.LedgerSnapshotCache, staleThresholdDays int) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopLedgerSnapshotCache()
	}
	if staleThresholdDays <= 0 {
		staleThresholdDays = 30
	}
	return &AnalyticsService{
		repo:               repo,
		cache:              cacheImpl,
		staleThresholdDays: staleThresholdDays,
	}
}

// loadSnapshot is shared by the analytics and report services: cache lookup,
// repository on miss, best-effort cache fill.
func loadSnapshot(ctx context.Context, repo repository.LedgerRepository, c cache.LedgerSnapshotCache) (*domain.LedgerSnapshot, error) {
	if snap, ok, err := c.GetSnapshot(ctx); err == nil && ok {
		return snap, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("ledger: cache get snapshot failed")
	}

	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.SetSnapshot(ctx, snap); err != nil {
		log.Warn().Err(err).Msg("ledger: cache set snapshot failed")
	}

	return snap, nil
}

func (s *AnalyticsService) GetHeroMetrics(ctx context.Context, r domain.DateRange) (*domain.HeroMetrics, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	metrics := analytics.CalculateHeroMetrics(snap.Pallets, snap.Items, snap.Expenses, r)
	return &metrics, nil
}

func (s *AnalyticsService) GetPalletAnalytics(ctx context.Context, r domain.DateRange) ([]domain.PalletAnalytics, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.CalculatePalletAnalytics(snap.Pallets, snap.Items, snap.Expenses, r), nil
}

func (s *AnalyticsService) GetTypeComparison(ctx context.Context, r domain.DateRange) ([]domain.TypeComparison, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.CalculateTypeComparison(snap.Pallets, snap.Items, snap.Expenses, r), nil
}

func (s *AnalyticsService) GetSupplierComparison(ctx context.Context, r domain.DateRange) ([]domain.SupplierComparison, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.CalculateSupplierComparison(snap.Pallets, snap.Items, snap.Expenses, r), nil
}

func (s *AnalyticsService) GetPalletTypeComparison(ctx context.Context, r domain.DateRange) ([]domain.PalletTypeComparison, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.CalculatePalletTypeComparison(snap.Pallets, snap.Items, snap.Expenses, r), nil
}

// GetStaleItems flags listed inventory older than thresholdDays; pass 0 to
// use the configured default.
func (s *AnalyticsService) GetStaleItems(ctx context.Context, thresholdDays int) ([]domain.StaleItem, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.staleThresholdDays
	}

	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.StaleItems(snap.Items, snap.Pallets, thresholdDays, time.Now()), nil
}

func (s *AnalyticsService) GetProfitTrend(ctx context.Context, granularity domain.TrendGranularity, r domain.DateRange) ([]domain.TrendPoint, error) {
	snap, err := loadSnapshot(ctx, s.repo, s.cache)
	if err != nil {
		return nil, err
	}

	return analytics.CalculateProfitTrend(snap.Items, granularity, r), nil
}

func (s *AnalyticsService) GetFacets(ctx context.Context) (*domain.LedgerFacets, error) {
	if facets, ok, err := s.cache.GetFacets(ctx); err == nil && ok {
		return facets, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("ledger: cache get facets failed")
	}

	facets, err := s.repo.GetFacets(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFacets(ctx, facets); err != nil {
		log.Warn().Err(err).Msg("ledger: cache set facets failed")
	}

	return facets, nil
}

// InvalidateCache drops the cached ledger after an import.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
