package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTrendGranularity(t *testing.T) {
	g, ok := ParseTrendGranularity("weekly")
	assert.True(t, ok)
	assert.Equal(t, TrendWeekly, g)

	g, ok = ParseTrendGranularity("monthly")
	assert.True(t, ok)
	assert.Equal(t, TrendMonthly, g)

	g, ok = ParseTrendGranularity("hourly")
	assert.False(t, ok)
	assert.Equal(t, TrendDaily, g)
}

func TestDateRangeIsZero(t *testing.T) {
	assert.True(t, DateRange{}.IsZero())
	// A preset alone carries no bounds.
	assert.True(t, DateRange{Preset: "fiscalQ9"}.IsZero())

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, DateRange{Start: &start}.IsZero())
	assert.False(t, DateRange{End: &start}.IsZero())
}
