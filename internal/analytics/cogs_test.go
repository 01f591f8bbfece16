package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func TestCalculateCOGSCostFallback(t *testing.T) {
	sold := []domain.Item{
		// Allocated cost wins even when a purchase cost is also recorded.
		{Status: domain.StatusSold, SalePrice: ptr(100.0), AllocatedCost: ptr(30.0), PurchaseCost: ptr(40.0), PlatformFee: ptr(10.0), ShippingCost: ptr(5.0)},
		// No allocation falls back to the item's own purchase cost.
		{Status: domain.StatusSold, SalePrice: ptr(90.0), PurchaseCost: ptr(40.0), PlatformFee: ptr(8.0)},
		// Neither recorded counts as zero cost.
		{Status: domain.StatusSold, SalePrice: ptr(80.0)},
		// No sale price contributes nothing at all.
		{Status: domain.StatusSold, AllocatedCost: ptr(99.0)},
	}

	b := CalculateCOGS(sold)

	assert.InDelta(t, 270.0, b.TotalRevenue, 1e-9)
	assert.InDelta(t, 70.0, b.TotalCOGS, 1e-9)
	assert.InDelta(t, 23.0, b.TotalFees, 1e-9)
	assert.InDelta(t, 177.0, b.NetProfit, 1e-9)
}

func TestCalculateCOGSEmpty(t *testing.T) {
	b := CalculateCOGS(nil)

	assert.Zero(t, b.TotalRevenue)
	assert.Zero(t, b.TotalCOGS)
	assert.Zero(t, b.TotalFees)
	assert.Zero(t, b.NetProfit)
}
