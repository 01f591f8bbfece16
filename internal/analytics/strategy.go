package analytics

import "github.com/kylepratt/flipledger/backend-go/internal/domain"

// groupFinancials is what a cost strategy produces for one group of pallets
// and their items.
type groupFinancials struct {
	Revenue   float64
	Cost      float64
	Profit    float64
	SoldCount int
}

// costStrategy abstracts the lifetime/period split shared by all aggregation
// views. Lifetime charges whole-pallet costs through the pallet resolver;
// period charges only the cost of the units sold inside the range. The
// strategy is selected once per call and threaded through every group.
type costStrategy interface {
	groupFinancials(pallets []domain.Pallet, allItems, filteredSold []domain.Item) groupFinancials
}

// selectCostStrategy picks the strategy for a range: no bounds means
// lifetime, any bound means period.
func selectCostStrategy(r domain.DateRange, expenses []domain.Expense) costStrategy {
	if r.IsZero() {
		return lifetimeCostStrategy{expenseShares: ApportionExpenses(expenses)}
	}

	return periodCostStrategy{}
}

type periodCostStrategy struct{}

func (periodCostStrategy) groupFinancials(_ []domain.Pallet, _, filteredSold []domain.Item) groupFinancials {
	cogs := CalculateCOGS(filteredSold)

	return groupFinancials{
		Revenue:   cogs.TotalRevenue,
		Cost:      cogs.TotalCOGS + cogs.TotalFees,
		Profit:    cogs.NetProfit,
		SoldCount: len(filteredSold),
	}
}

type lifetimeCostStrategy struct {
	expenseShares map[int64]float64
}

func (s lifetimeCostStrategy) groupFinancials(pallets []domain.Pallet, allItems, _ []domain.Item) groupFinancials {
	var fin groupFinancials

	byPallet := make(map[int64][]domain.Item)
	var individual []domain.Item
	for _, it := range allItems {
		if it.PalletID == nil {
			individual = append(individual, it)
			continue
		}
		byPallet[*it.PalletID] = append(byPallet[*it.PalletID], it)
	}

	for _, p := range pallets {
		res := ResolvePalletProfit(p, byPallet[p.ID], s.expenseShares[p.ID])
		fin.Revenue += res.TotalRevenue
		fin.Cost += res.TotalCost
		fin.SoldCount += res.SoldCount
	}

	// Individually sourced items carry their own purchase cost whether or not
	// they sold yet; fees apply once a sale exists.
	for _, it := range individual {
		fin.Cost += deref(it.PurchaseCost)
		if it.Status != domain.StatusSold {
			continue
		}
		fin.SoldCount++
		if it.SalePrice == nil {
			continue
		}
		fin.Revenue += *it.SalePrice
		fin.Cost += deref(it.PlatformFee) + deref(it.ShippingCost)
	}

	fin.Profit = fin.Revenue - fin.Cost

	return fin
}
