package analytics

import (
	"sort"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// CalculatePalletAnalytics builds the pallet leaderboard: one row per pallet,
// sorted by profit descending. Retail metrics ride along per row, computed
// over the pallet's whole item set.
func CalculatePalletAnalytics(pallets []domain.Pallet, items []domain.Item, expenses []domain.Expense, r domain.DateRange) []domain.PalletAnalytics {
	strategy := selectCostStrategy(r, expenses)
	filteredSold := soldItems(items, r)

	byPallet := make(map[int64][]domain.Item)
	soldByPallet := make(map[int64][]domain.Item)
	for _, it := range items {
		if it.PalletID != nil {
			byPallet[*it.PalletID] = append(byPallet[*it.PalletID], it)
		}
	}
	for _, it := range filteredSold {
		if it.PalletID != nil {
			soldByPallet[*it.PalletID] = append(soldByPallet[*it.PalletID], it)
		}
	}

	rows := make([]domain.PalletAnalytics, 0, len(pallets))
	for _, p := range pallets {
		all := byPallet[p.ID]
		row := domain.PalletAnalytics{
			GroupMetrics: buildGroupMetrics(strategy, []domain.Pallet{p}, all, soldByPallet[p.ID]),
			PalletID:     p.ID,
			PalletName:   p.Name,
			Supplier:     p.Supplier,
			SourceType:   p.SourceType,
			PurchaseCost: p.PurchaseCost,
		}
		row.Retail = CalculateRetailMetrics(all, row.TotalCost)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalProfit > rows[j].TotalProfit
	})

	return rows
}
