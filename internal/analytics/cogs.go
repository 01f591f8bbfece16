package analytics

import "github.com/kylepratt/flipledger/backend-go/internal/domain"

// COGSBreakdown aggregates what a set of sold items earned and cost.
type COGSBreakdown struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCOGS    float64 `json:"total_cogs"`
	TotalFees    float64 `json:"total_fees"`
	NetProfit    float64 `json:"net_profit"`
}

// CalculateCOGS computes revenue, cost of goods sold, fees and net profit
// over the given sold items. This is the matching-principle core: a period's
// profit is derived from the cost of the specific units sold in it, never
// from the purchase cost of the whole batch they came from.
func CalculateCOGS(soldItems []domain.Item) COGSBreakdown {
	var b COGSBreakdown

	for _, it := range soldItems {
		// Items without a recorded sale price earn nothing and cost nothing here.
		if it.SalePrice == nil {
			continue
		}
		b.TotalRevenue += *it.SalePrice
		b.TotalCOGS += itemCost(it)
		b.TotalFees += deref(it.PlatformFee) + deref(it.ShippingCost)
	}

	b.NetProfit = b.TotalRevenue - b.TotalCOGS - b.TotalFees

	return b
}

// itemCost resolves one sold unit's cost. The fallback runs item by item:
// allocated cost wins over the item's own purchase cost, missing both counts
// as zero.
func itemCost(it domain.Item) float64 {
	if it.AllocatedCost != nil {
		return *it.AllocatedCost
	}
	if it.PurchaseCost != nil {
		return *it.PurchaseCost
	}

	return 0
}
