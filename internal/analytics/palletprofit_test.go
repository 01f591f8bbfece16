package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func TestApportionExpensesEvenSplit(t *testing.T) {
	expenses := []domain.Expense{
		{Amount: 40, PalletIDs: []int64{1, 2}},
		{Amount: 9, PalletIDs: []int64{2}},
		// Unlinked overhead apportions to nobody.
		{Amount: 100},
	}

	shares := ApportionExpenses(expenses)

	require.Len(t, shares, 2)
	assert.InDelta(t, 20.0, shares[1], 1e-9)
	assert.InDelta(t, 29.0, shares[2], 1e-9)
}

func TestResolvePalletProfit(t *testing.T) {
	pallet := domain.Pallet{ID: 1, PurchaseCost: 200, SalesTax: ptr(16.0)}
	items := []domain.Item{
		{Status: domain.StatusSold, SalePrice: ptr(150.0), PlatformFee: ptr(15.0), ShippingCost: ptr(5.0)},
		{Status: domain.StatusSold, SalePrice: ptr(120.0)},
		{Status: domain.StatusListed, ListingPrice: ptr(60.0)},
		// Sold without a recorded price still counts toward the sold tally.
		{Status: domain.StatusSold},
	}

	res := ResolvePalletProfit(pallet, items, 24)

	assert.InDelta(t, 270.0, res.TotalRevenue, 1e-9)
	// 200 purchase + 16 tax + 24 apportioned + 20 selling costs.
	assert.InDelta(t, 260.0, res.TotalCost, 1e-9)
	assert.InDelta(t, 10.0, res.NetProfit, 1e-9)
	assert.InDelta(t, 10.0/260.0*100, res.ROI, 1e-9)
	assert.Equal(t, 3, res.SoldCount)
}

func TestResolvePalletProfitNoSales(t *testing.T) {
	pallet := domain.Pallet{ID: 2, PurchaseCost: 300}

	res := ResolvePalletProfit(pallet, nil, 0)

	assert.Zero(t, res.TotalRevenue)
	assert.InDelta(t, -300.0, res.NetProfit, 1e-9)
	assert.InDelta(t, -100.0, res.ROI, 1e-9)
	assert.Equal(t, 0, res.SoldCount)
}
