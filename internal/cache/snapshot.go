package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/config"
	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	ledgerKeyPrefix    = "ledger:"
	ledgerSnapshotKey  = ledgerKeyPrefix + "snapshot"
	ledgerFacetsKey    = ledgerKeyPrefix + "facets"
	ledgerScanBatch    = 100
	defaultSnapshotTTL = 5 * time.Minute
)

// LedgerSnapshotCache caches the raw ledger collections between imports.
// Only raw records are cached; computed analytics are cheap enough to
// recalculate per request, and caching them would multiply keys per filter.
type LedgerSnapshotCache interface {
	GetSnapshot(ctx context.Context) (*domain.LedgerSnapshot, bool, error)
	SetSnapshot(ctx context.Context, snapshot *domain.LedgerSnapshot) error
	GetFacets(ctx context.Context) (*domain.LedgerFacets, bool, error)
	SetFacets(ctx context.Context, facets *domain.LedgerFacets) error
	InvalidateAll(ctx context.Context) error
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSnapshotCache struct{}

func NewLedgerSnapshotCache(cfg config.CacheConfig) (LedgerSnapshotCache, error) {
	if !cfg.Enabled {
		return &noopSnapshotCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &redisSnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopLedgerSnapshotCache() LedgerSnapshotCache {
	return &noopSnapshotCache{}
}

func (c *redisSnapshotCache) GetSnapshot(ctx context.Context) (*domain.LedgerSnapshot, bool, error) {
	payload, err := c.client.Get(ctx, ledgerSnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snapshot domain.LedgerSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode ledger snapshot cache: %w", err)
	}

	return &snapshot, true, nil
}

func (c *redisSnapshotCache) SetSnapshot(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode ledger snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, ledgerSnapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSnapshotCache) GetFacets(ctx context.Context) (*domain.LedgerFacets, bool, error) {
	payload, err := c.client.Get(ctx, ledgerFacetsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var facets domain.LedgerFacets
	if err := json.Unmarshal(payload, &facets); err != nil {
		return nil, false, fmt.Errorf("decode ledger facets cache: %w", err)
	}

	return &facets, true, nil
}

func (c *redisSnapshotCache) SetFacets(ctx context.Context, facets *domain.LedgerFacets) error {
	payload, err := json.Marshal(facets)
	if err != nil {
		return fmt.Errorf("encode ledger facets cache: %w", err)
	}

	if err := c.client.Set(ctx, ledgerFacetsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateAll drops every ledger key. Called after an import so the next
// request reloads from Postgres.
func (c *redisSnapshotCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, ledgerKeyPrefix, ledgerScanBatch)
}

func (n *noopSnapshotCache) GetSnapshot(ctx context.Context) (*domain.LedgerSnapshot, bool, error) {
	return nil, false, nil
}

func (n *noopSnapshotCache) SetSnapshot(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	return nil
}

func (n *noopSnapshotCache) GetFacets(ctx context.Context) (*domain.LedgerFacets, bool, error) {
	return nil, false, nil
}

func (n *noopSnapshotCache) SetFacets(ctx context.Context, facets *domain.LedgerFacets) error {
	return nil
}

func (n *noopSnapshotCache) InvalidateAll(ctx context.Context) error {
	return nil
}
