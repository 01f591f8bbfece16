package analytics

import (
	"strings"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// soldItems returns the sold subset, date-filtered on sale date when the
// range carries a bound. With no bounds the whole sold set comes back, which
// is exactly what the lifetime strategy expects.
func soldItems(items []domain.Item, r domain.DateRange) []domain.Item {
	sold := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.Status == domain.StatusSold {
			sold = append(sold, it)
		}
	}

	return FilterByDate(sold, r, func(it domain.Item) *time.Time { return it.SaleDate })
}

// buildGroupMetrics derives the shared metric block for one group.
// Sell-through always uses lifetime counts; the money side comes from the
// selected strategy.
func buildGroupMetrics(strategy costStrategy, pallets []domain.Pallet, allItems, filteredSold []domain.Item) domain.GroupMetrics {
	fin := strategy.groupFinancials(pallets, allItems, filteredSold)

	lifetimeSold := 0
	for _, it := range allItems {
		if it.Status == domain.StatusSold {
			lifetimeSold++
		}
	}

	return domain.GroupMetrics{
		TotalRevenue:    fin.Revenue,
		TotalCost:       fin.Cost,
		TotalProfit:     fin.Profit,
		ROI:             roiPercent(fin.Profit, fin.Cost),
		TotalItems:      len(allItems),
		SoldCount:       fin.SoldCount,
		SellThroughRate: safePercent(float64(lifetimeSold), float64(len(allItems))),
		AvgDaysToSell:   avgDaysToSell(filteredSold),
	}
}

// avgDaysToSell averages the listing-to-sale span in days over items carrying
// both dates; nil when none do.
func avgDaysToSell(sold []domain.Item) *float64 {
	var total float64
	count := 0

	for _, it := range sold {
		if it.SaleDate == nil || it.ListingDate == nil {
			continue
		}
		total += normalizeDay(*it.SaleDate).Sub(normalizeDay(*it.ListingDate)).Hours() / 24
		count++
	}

	if count == 0 {
		return nil
	}
	avg := total / float64(count)

	return &avg
}

// normalizeGroupKey maps a nil or blank grouping value onto a sentinel so
// every view agrees on the fallback bucket name.
func normalizeGroupKey(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	if trimmed := strings.TrimSpace(*s); trimmed != "" {
		return trimmed
	}

	return fallback
}

// palletGroup collects one grouping bucket: its pallets, every item that
// belongs to them, and the sold subset that survived the date filter.
type palletGroup struct {
	pallets  []domain.Pallet
	allItems []domain.Item
	sold     []domain.Item
}

// groupLedger buckets pallets by key and routes items to their pallet's
// bucket. Keys come back in first-seen pallet order so result ordering stays
// deterministic before the final sort. Items without a pallet have no group
// dimension and are left out.
func groupLedger(pallets []domain.Pallet, items, filteredSold []domain.Item, keyOf func(domain.Pallet) string) ([]string, map[string]*palletGroup) {
	keys := make([]string, 0)
	groups := make(map[string]*palletGroup)
	palletKey := make(map[int64]string, len(pallets))

	for _, p := range pallets {
		k := keyOf(p)
		palletKey[p.ID] = k
		g, ok := groups[k]
		if !ok {
			g = &palletGroup{}
			groups[k] = g
			keys = append(keys, k)
		}
		g.pallets = append(g.pallets, p)
	}

	for _, it := range items {
		if it.PalletID == nil {
			continue
		}
		if k, ok := palletKey[*it.PalletID]; ok {
			groups[k].allItems = append(groups[k].allItems, it)
		}
	}

	for _, it := range filteredSold {
		if it.PalletID == nil {
			continue
		}
		if k, ok := palletKey[*it.PalletID]; ok {
			groups[k].sold = append(groups[k].sold, it)
		}
	}

	return keys, groups
}
