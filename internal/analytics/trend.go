package analytics

import (
	"sort"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// CalculateProfitTrend buckets sold items into a chronological series of
// profit, revenue and unit counts. Only buckets with at least one sale
// appear; empty periods are not interpolated.
func CalculateProfitTrend(items []domain.Item, granularity domain.TrendGranularity, r domain.DateRange) []domain.TrendPoint {
	sold := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Status == domain.StatusSold && it.SaleDate != nil && it.SalePrice != nil {
			sold = append(sold, it)
		}
	}
	sold = FilterByDate(sold, r, func(it domain.Item) *time.Time { return it.SaleDate })

	buckets := make(map[string]*domain.TrendPoint)
	for _, it := range sold {
		key := bucketKey(*it.SaleDate, granularity)
		point, ok := buckets[key]
		if !ok {
			point = &domain.TrendPoint{Period: key}
			buckets[key] = point
		}
		point.Revenue += *it.SalePrice
		point.Profit += *it.SalePrice - itemCost(it) - deref(it.PlatformFee) - deref(it.ShippingCost)
		point.ItemsSold++
	}

	series := make([]domain.TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	// Bucket keys are ISO dates, so a lexical sort is chronological.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period < series[j].Period
	})

	return series
}

// bucketKey collapses a sale date onto its bucket's canonical day: the date
// itself, the Monday of its week, or the first of its month.
func bucketKey(t time.Time, granularity domain.TrendGranularity) string {
	day := normalizeDay(t)

	switch granularity {
	case domain.TrendWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset).Format("2006-01-02")
	case domain.TrendMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()).Format("2006-01-02")
	default:
		return day.Format("2006-01-02")
	}
}
