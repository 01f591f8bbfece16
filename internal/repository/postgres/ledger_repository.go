package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
	"github.com/kylepratt/flipledger/backend-go/internal/repository"
)

type ledgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

type palletLinkRow struct {
	OwnerID  int64 `db:"owner_id"`
	PalletID int64 `db:"pallet_id"`
}

// LoadSnapshot pulls all four collections. The analytics layer works on the
// whole ledger in memory, so there is no per-query filtering here.
func (r *ledgerRepository) LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error) {
	log.Debug().Msg("ledger: loading full snapshot")

	pallets, err := r.GetPallets(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := r.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := r.GetMileageTrips(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("pallets", len(pallets)).
		Int("items", len(items)).
		Int("expenses", len(expenses)).
		Int("trips", len(trips)).
		Msg("ledger: snapshot loaded")

	return &domain.LedgerSnapshot{
		Pallets:  pallets,
		Items:    items,
		Expenses: expenses,
		Trips:    trips,
	}, nil
}

func (r *ledgerRepository) GetPallets(ctx context.Context) ([]domain.Pallet, error) {
	query := `
		SELECT id, original_id, name, supplier, source_type, source_name,
		       purchase_cost, sales_tax, purchase_date, created_at, updated_at
		FROM pallets
		ORDER BY id
	`
	var pallets []domain.Pallet
	if err := r.db.SelectContext(ctx, &pallets, query); err != nil {
		log.Error().Err(err).Msg("ledger: failed to fetch pallets")
		return nil, fmt.Errorf("failed to get pallets: %w", err)
	}

	return pallets, nil
}

func (r *ledgerRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT id, original_id, pallet_id, name, status, retail_price, listing_price,
		       sale_price, purchase_cost, allocated_cost, platform, platform_fee,
		       shipping_cost, listing_date, sale_date, created_at, updated_at
		FROM items
		ORDER BY id
	`
	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		log.Error().Err(err).Msg("ledger: failed to fetch items")
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	return items, nil
}

func (r *ledgerRepository) GetExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT id, original_id, description, amount, category, expense_date, created_at, updated_at
		FROM expenses
		ORDER BY expense_date NULLS LAST, id
	`
	var expenses []domain.Expense
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		log.Error().Err(err).Msg("ledger: failed to fetch expenses")
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	links, err := r.palletLinks(ctx, "expense_pallets", "expense_id")
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].PalletIDs = links[expenses[i].ID]
	}

	return expenses, nil
}

func (r *ledgerRepository) GetMileageTrips(ctx context.Context) ([]domain.MileageTrip, error) {
	query := `
		SELECT id, original_id, trip_date, miles, mileage_rate, purpose, created_at, updated_at
		FROM mileage_trips
		ORDER BY trip_date NULLS LAST, id
	`
	var trips []domain.MileageTrip
	if err := r.db.SelectContext(ctx, &trips, query); err != nil {
		log.Error().Err(err).Msg("ledger: failed to fetch mileage trips")
		return nil, fmt.Errorf("failed to get mileage trips: %w", err)
	}

	links, err := r.palletLinks(ctx, "mileage_trip_pallets", "trip_id")
	if err != nil {
		return nil, err
	}
	for i := range trips {
		trips[i].PalletIDs = links[trips[i].ID]
	}

	return trips, nil
}

// palletLinks loads a pallet join table and folds it into owner -> pallet ids.
func (r *ledgerRepository) palletLinks(ctx context.Context, table, ownerCol string) (map[int64][]int64, error) {
	query := fmt.Sprintf(`SELECT %s AS owner_id, pallet_id FROM %s ORDER BY %s, pallet_id`, ownerCol, table, ownerCol)

	var rows []palletLinkRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		log.Error().Err(err).Str("table", table).Msg("ledger: failed to fetch pallet links")
		return nil, fmt.Errorf("failed to get %s links: %w", table, err)
	}

	links := make(map[int64][]int64, len(rows))
	for _, row := range rows {
		links[row.OwnerID] = append(links[row.OwnerID], row.PalletID)
	}

	return links, nil
}

// GetFacets returns the distinct values for the dashboard filter dropdowns.
func (r *ledgerRepository) GetFacets(ctx context.Context) (*domain.LedgerFacets, error) {
	log.Debug().Msg("ledger: fetching filter facets")

	facets := &domain.LedgerFacets{}

	// 1. Suppliers
	if err := r.db.SelectContext(ctx, &facets.Suppliers, `
		SELECT DISTINCT supplier FROM pallets
		WHERE supplier IS NOT NULL AND supplier <> ''
		ORDER BY supplier`); err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}

	// 2. Source types
	if err := r.db.SelectContext(ctx, &facets.SourceTypes, `
		SELECT DISTINCT source_type FROM pallets
		WHERE source_type <> ''
		ORDER BY source_type`); err != nil {
		return nil, fmt.Errorf("failed to get source types: %w", err)
	}

	// 3. Pallet types (the free-form source names)
	if err := r.db.SelectContext(ctx, &facets.PalletTypes, `
		SELECT DISTINCT source_name FROM pallets
		WHERE source_name IS NOT NULL AND source_name <> ''
		ORDER BY source_name`); err != nil {
		return nil, fmt.Errorf("failed to get pallet types: %w", err)
	}

	// 4. Sale platforms
	if err := r.db.SelectContext(ctx, &facets.Platforms, `
		SELECT DISTINCT platform FROM items
		WHERE platform IS NOT NULL AND platform <> ''
		ORDER BY platform`); err != nil {
		return nil, fmt.Errorf("failed to get platforms: %w", err)
	}

	return facets, nil
}
