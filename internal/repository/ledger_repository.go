// backend-go/internal/repository/ledger_repository.go
package repository

import (
	"context"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// LedgerRepository loads the raw reselling ledger for the analytics layer.
// Reads return whole collections; date filtering and aggregation happen in
// memory downstream, so the queries here stay deliberately simple.
type LedgerRepository interface {
	// LoadSnapshot returns all four record collections in one call.
	LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error)

	GetPallets(ctx context.Context) ([]domain.Pallet, error)
	GetItems(ctx context.Context) ([]domain.Item, error)
	GetExpenses(ctx context.Context) ([]domain.Expense, error)
	GetMileageTrips(ctx context.Context) ([]domain.MileageTrip, error)

	// GetFacets returns the distinct filter values (suppliers, source types,
	// pallet types, platforms) offered to the UI.
	GetFacets(ctx context.Context) (*domain.LedgerFacets, error)
}
