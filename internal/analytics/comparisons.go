package analytics

import (
	"sort"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// CalculateTypeComparison compares performance across pallet source types,
// sorted by ROI descending.
func CalculateTypeComparison(pallets []domain.Pallet, items []domain.Item, expenses []domain.Expense, r domain.DateRange) []domain.TypeComparison {
	strategy := selectCostStrategy(r, expenses)
	filteredSold := soldItems(items, r)

	keys, groups := groupLedger(pallets, items, filteredSold, func(p domain.Pallet) string {
		return string(p.SourceType)
	})

	rows := make([]domain.TypeComparison, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, domain.TypeComparison{
			GroupMetrics: buildGroupMetrics(strategy, g.pallets, g.allItems, g.sold),
			SourceType:   domain.SourceType(k),
			Label:        domain.SourceTypeLabel(domain.SourceType(k)),
			PalletCount:  len(g.pallets),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ROI > rows[j].ROI
	})

	return rows
}

// CalculateSupplierComparison compares performance across suppliers, blank or
// missing supplier names folded into "Unknown", sorted by profit descending.
func CalculateSupplierComparison(pallets []domain.Pallet, items []domain.Item, expenses []domain.Expense, r domain.DateRange) []domain.SupplierComparison {
	strategy := selectCostStrategy(r, expenses)
	filteredSold := soldItems(items, r)

	keys, groups := groupLedger(pallets, items, filteredSold, func(p domain.Pallet) string {
		return normalizeGroupKey(p.Supplier, "Unknown")
	})

	rows := make([]domain.SupplierComparison, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		rows = append(rows, domain.SupplierComparison{
			GroupMetrics: buildGroupMetrics(strategy, g.pallets, g.allItems, g.sold),
			Supplier:     k,
			PalletCount:  len(g.pallets),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalProfit > rows[j].TotalProfit
	})

	return rows
}

// CalculatePalletTypeComparison compares performance across free-text pallet
// type names ("Amazon Monster", "Target GM", ...), blanks folded into
// "Unspecified", sorted by profit descending. A group counts as a mystery box
// when any of its pallets is one.
func CalculatePalletTypeComparison(pallets []domain.Pallet, items []domain.Item, expenses []domain.Expense, r domain.DateRange) []domain.PalletTypeComparison {
	strategy := selectCostStrategy(r, expenses)
	filteredSold := soldItems(items, r)

	keys, groups := groupLedger(pallets, items, filteredSold, func(p domain.Pallet) string {
		return normalizeGroupKey(p.SourceName, "Unspecified")
	})

	rows := make([]domain.PalletTypeComparison, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		row := domain.PalletTypeComparison{
			GroupMetrics: buildGroupMetrics(strategy, g.pallets, g.allItems, g.sold),
			TypeName:     k,
			PalletCount:  len(g.pallets),
		}
		for _, p := range g.pallets {
			if p.SourceType == domain.SourceMysteryBox {
				row.IsMysteryBox = true
				break
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalProfit > rows[j].TotalProfit
	})

	return rows
}
