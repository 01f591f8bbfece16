package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func TestCalculatePalletAnalyticsOrdersByProfit(t *testing.T) {
	pallets := []domain.Pallet{
		{ID: 2, Name: "Dud", Supplier: ptr("B-Stock"), SourceType: domain.SourceWholesale, PurchaseCost: 400},
		{ID: 1, Name: "Winner", Supplier: ptr("GoodwillBins"), SourceType: domain.SourceLiquidation, PurchaseCost: 100},
	}
	items := []domain.Item{
		{PalletID: ptr(int64(1)), Status: domain.StatusSold, SalePrice: ptr(300.0), RetailPrice: ptr(350.0), PlatformFee: ptr(10.0), SaleDate: dayPtr(2024, time.March, 1)},
		{PalletID: ptr(int64(2)), Status: domain.StatusSold, SalePrice: ptr(50.0), SaleDate: dayPtr(2024, time.March, 2)},
	}

	rows := CalculatePalletAnalytics(pallets, items, nil, domain.DateRange{})

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].PalletID)
	assert.Equal(t, "Winner", rows[0].PalletName)
	assert.Equal(t, domain.SourceLiquidation, rows[0].SourceType)
	require.NotNil(t, rows[0].Supplier)
	assert.Equal(t, "GoodwillBins", *rows[0].Supplier)
	assert.InDelta(t, 190.0, rows[0].TotalProfit, 1e-9)
	assert.InDelta(t, -350.0, rows[1].TotalProfit, 1e-9)

	require.NotNil(t, rows[0].Retail)
	assert.InDelta(t, 350.0, rows[0].Retail.TotalRetailValue, 1e-9)
	assert.InDelta(t, 300.0/350.0*100, rows[0].Retail.RetailRecoveryRate, 1e-9)
	assert.InDelta(t, 110.0/350.0, rows[0].Retail.CostPerDollarRetail, 1e-9)
	assert.Nil(t, rows[1].Retail)
}

func TestCalculatePalletAnalyticsPeriodWindow(t *testing.T) {
	pallets := []domain.Pallet{{ID: 1, Name: "Winter Load", PurchaseCost: 900}}
	items := []domain.Item{
		{PalletID: ptr(int64(1)), Status: domain.StatusSold, SalePrice: ptr(120.0), AllocatedCost: ptr(45.0), SaleDate: dayPtr(2024, time.February, 10)},
		{PalletID: ptr(int64(1)), Status: domain.StatusSold, SalePrice: ptr(75.0), AllocatedCost: ptr(45.0), SaleDate: dayPtr(2024, time.March, 10)},
		{PalletID: ptr(int64(1)), Status: domain.StatusUnlisted},
	}
	r := rangeOver(day(2024, time.February, 1), day(2024, time.February, 29))

	rows := CalculatePalletAnalytics(pallets, items, nil, r)

	require.Len(t, rows, 1)
	assert.InDelta(t, 120.0, rows[0].TotalRevenue, 1e-9)
	assert.InDelta(t, 45.0, rows[0].TotalCost, 1e-9)
	assert.Equal(t, 1, rows[0].SoldCount)
	assert.Equal(t, 3, rows[0].TotalItems)
	// Sell-through stays lifetime: 2 of 3 ever sold.
	assert.InDelta(t, 2.0/3.0*100, rows[0].SellThroughRate, 1e-9)
	assert.InDelta(t, 900.0, rows[0].PurchaseCost, 1e-9)
}

func TestCalculatePalletAnalyticsSkipsPalletlessItems(t *testing.T) {
	pallets := []domain.Pallet{{ID: 1, Name: "Only Load", PurchaseCost: 50}}
	items := []domain.Item{
		{Status: domain.StatusSold, SalePrice: ptr(500.0), SaleDate: dayPtr(2024, time.March, 1)},
	}

	rows := CalculatePalletAnalytics(pallets, items, nil, domain.DateRange{})

	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].TotalRevenue)
	assert.Equal(t, 0, rows[0].TotalItems)
}
