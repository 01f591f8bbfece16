package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// IngestRepository writes ledger records during CSV imports. Every upsert
// keys on original_id (the id carried in the export files) so re-importing
// the same backup is idempotent.
type IngestRepository struct {
	db *sql.DB
}

func NewIngestRepository(db *sql.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

func (r *IngestRepository) UpsertPallet(ctx context.Context, pallet *domain.Pallet) (int64, error) {
	query := `
		INSERT INTO pallets (original_id, name, supplier, source_type, source_name, purchase_cost, sales_tax, purchase_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (original_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			supplier = EXCLUDED.supplier,
			source_type = EXCLUDED.source_type,
			source_name = EXCLUDED.source_name,
			purchase_cost = EXCLUDED.purchase_cost,
			sales_tax = EXCLUDED.sales_tax,
			purchase_date = EXCLUDED.purchase_date,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		pallet.OriginalID,
		pallet.Name,
		pallet.Supplier,
		pallet.SourceType,
		pallet.SourceName,
		pallet.PurchaseCost,
		pallet.SalesTax,
		pallet.PurchaseDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert pallet: %w", err)
	}
	return id, nil
}

func (r *IngestRepository) UpsertItem(ctx context.Context, item *domain.Item) (int64, error) {
	query := `
		INSERT INTO items (
			original_id, pallet_id, name, status, retail_price, listing_price,
			sale_price, purchase_cost, allocated_cost, platform, platform_fee,
			shipping_cost, listing_date, sale_date, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (original_id)
		DO UPDATE SET
			pallet_id = EXCLUDED.pallet_id,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			retail_price = EXCLUDED.retail_price,
			listing_price = EXCLUDED.listing_price,
			sale_price = EXCLUDED.sale_price,
			purchase_cost = EXCLUDED.purchase_cost,
			allocated_cost = EXCLUDED.allocated_cost,
			platform = EXCLUDED.platform,
			platform_fee = EXCLUDED.platform_fee,
			shipping_cost = EXCLUDED.shipping_cost,
			listing_date = EXCLUDED.listing_date,
			sale_date = EXCLUDED.sale_date,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.OriginalID,
		item.PalletID,
		item.Name,
		item.Status,
		item.RetailPrice,
		item.ListingPrice,
		item.SalePrice,
		item.PurchaseCost,
		item.AllocatedCost,
		item.Platform,
		item.PlatformFee,
		item.ShippingCost,
		item.ListingDate,
		item.SaleDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert item: %w", err)
	}
	return id, nil
}

func (r *IngestRepository) UpsertExpense(ctx context.Context, expense *domain.Expense) (int64, error) {
	query := `
		INSERT INTO expenses (original_id, description, amount, category, expense_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (original_id)
		DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			category = EXCLUDED.category,
			expense_date = EXCLUDED.expense_date,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		expense.OriginalID,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.ExpenseDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert expense: %w", err)
	}
	return id, nil
}

func (r *IngestRepository) UpsertMileageTrip(ctx context.Context, trip *domain.MileageTrip) (int64, error) {
	query := `
		INSERT INTO mileage_trips (original_id, trip_date, miles, mileage_rate, purpose, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (original_id)
		DO UPDATE SET
			trip_date = EXCLUDED.trip_date,
			miles = EXCLUDED.miles,
			mileage_rate = EXCLUDED.mileage_rate,
			purpose = EXCLUDED.purpose,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		trip.OriginalID,
		trip.TripDate,
		trip.Miles,
		trip.Rate,
		trip.Purpose,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert mileage trip: %w", err)
	}
	return id, nil
}

// ReplaceExpensePallets rewrites the pallet links for one expense. The link
// set in the import file is authoritative, so stale links are dropped first.
func (r *IngestRepository) ReplaceExpensePallets(ctx context.Context, expenseID int64, palletIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expense_pallets WHERE expense_id = $1`, expenseID); err != nil {
		return fmt.Errorf("failed to clear expense pallet links: %w", err)
	}
	for _, palletID := range palletIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO expense_pallets (expense_id, pallet_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			expenseID, palletID,
		)
		if err != nil {
			return fmt.Errorf("failed to link expense %d to pallet %d: %w", expenseID, palletID, err)
		}
	}
	return nil
}

// ReplaceTripPallets rewrites the pallet links for one mileage trip.
func (r *IngestRepository) ReplaceTripPallets(ctx context.Context, tripID int64, palletIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mileage_trip_pallets WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("failed to clear trip pallet links: %w", err)
	}
	for _, palletID := range palletIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO mileage_trip_pallets (trip_id, pallet_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			tripID, palletID,
		)
		if err != nil {
			return fmt.Errorf("failed to link trip %d to pallet %d: %w", tripID, palletID, err)
		}
	}
	return nil
}

// ResolvePalletID maps an original_id from an export file to the internal
// pallet id. Returns sql.ErrNoRows (wrapped) when the pallet was never
// imported, so callers can skip the dangling reference with a warning.
func (r *IngestRepository) ResolvePalletID(ctx context.Context, originalID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM pallets WHERE original_id = $1`, originalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve pallet %q: %w", originalID, err)
	}
	return id, nil
}
