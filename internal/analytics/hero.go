package analytics

import "github.com/kylepratt/flipledger/backend-go/internal/domain"

// CalculateHeroMetrics computes the ungrouped headline summary over the whole
// ledger. With a bounded range the money side switches to period mode, so a
// window with zero sales reports profit 0 and ROI 0 rather than a negative
// number inherited from pallet purchase costs.
func CalculateHeroMetrics(pallets []domain.Pallet, items []domain.Item, expenses []domain.Expense, r domain.DateRange) domain.HeroMetrics {
	strategy := selectCostStrategy(r, expenses)
	filteredSold := soldItems(items, r)

	hero := domain.HeroMetrics{
		GroupMetrics: buildGroupMetrics(strategy, pallets, items, filteredSold),
		TotalPallets: len(pallets),
		TotalFees:    CalculateCOGS(filteredSold).TotalFees,
	}

	// The unsold-inventory value is a present-state figure: it covers every
	// unsold item regardless of the date range.
	for _, it := range items {
		if it.Status == domain.StatusSold {
			continue
		}
		hero.ActiveInventoryValue += firstNonNil(it.ListingPrice, it.RetailPrice, it.PurchaseCost)
	}

	return hero
}
