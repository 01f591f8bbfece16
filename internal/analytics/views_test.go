package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

func TestSoldItemsFiltersOnSaleDate(t *testing.T) {
	items := []domain.Item{
		{Name: "jan", Status: domain.StatusSold, SaleDate: dayPtr(2024, time.January, 10)},
		{Name: "feb", Status: domain.StatusSold, SaleDate: dayPtr(2024, time.February, 10)},
		{Name: "sold-undated", Status: domain.StatusSold},
		{Name: "listed", Status: domain.StatusListed, ListingDate: dayPtr(2024, time.January, 2)},
	}

	got := soldItems(items, rangeOver(day(2024, time.January, 1), day(2024, time.January, 31)))
	require.Len(t, got, 1)
	assert.Equal(t, "jan", got[0].Name)

	// Unbounded keeps the whole sold set, dated or not.
	got = soldItems(items, domain.DateRange{})
	assert.Len(t, got, 3)
}

func TestAvgDaysToSell(t *testing.T) {
	sold := []domain.Item{
		{ListingDate: dayPtr(2024, time.January, 1), SaleDate: dayPtr(2024, time.January, 11)},
		{ListingDate: dayPtr(2024, time.January, 5), SaleDate: dayPtr(2024, time.January, 25)},
		// Missing either date drops the item from the average.
		{SaleDate: dayPtr(2024, time.January, 31)},
	}

	got := avgDaysToSell(sold)

	require.NotNil(t, got)
	assert.InDelta(t, 15.0, *got, 1e-9)
}

func TestAvgDaysToSellNilWithoutDates(t *testing.T) {
	assert.Nil(t, avgDaysToSell(nil))
	assert.Nil(t, avgDaysToSell([]domain.Item{{SaleDate: dayPtr(2024, time.January, 3)}}))
}

func TestNormalizeGroupKey(t *testing.T) {
	assert.Equal(t, "Unknown", normalizeGroupKey(nil, "Unknown"))
	assert.Equal(t, "Unknown", normalizeGroupKey(ptr("   "), "Unknown"))
	assert.Equal(t, "GoodwillBins", normalizeGroupKey(ptr(" GoodwillBins "), "Unknown"))
}
