package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func TestCalculateRetailMetrics(t *testing.T) {
	items := []domain.Item{
		{Status: domain.StatusSold, RetailPrice: ptr(100.0), SalePrice: ptr(80.0)},
		{Status: domain.StatusListed, RetailPrice: ptr(50.0)},
		{Status: domain.StatusListed},
		// Non-positive retail estimates are noise, not data.
		{Status: domain.StatusListed, RetailPrice: ptr(-5.0)},
	}

	m := CalculateRetailMetrics(items, 60)

	require.NotNil(t, m)
	assert.InDelta(t, 150.0, m.TotalRetailValue, 1e-9)
	assert.InDelta(t, 80.0, m.RetailRecoveryRate, 1e-9)
	assert.InDelta(t, 0.4, m.CostPerDollarRetail, 1e-9)
}

func TestCalculateRetailMetricsNilWithoutRetailData(t *testing.T) {
	items := []domain.Item{
		{Status: domain.StatusSold, SalePrice: ptr(80.0)},
	}

	assert.Nil(t, CalculateRetailMetrics(items, 60))
	assert.Nil(t, CalculateRetailMetrics(nil, 0))
}
