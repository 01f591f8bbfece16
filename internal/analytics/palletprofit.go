package analytics

import "github.com/kylepratt/flipledger/backend-go/internal/domain"

// PalletProfit is the whole-lifetime financial result for one pallet.
type PalletProfit struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	NetProfit    float64 `json:"net_profit"`
	ROI          float64 `json:"roi"`
	SoldCount    int     `json:"sold_count"`
}

// ApportionExpenses splits each expense evenly across its linked pallets and
// returns the accumulated share per pallet id. Expenses with no pallet link
// apportion to no one.
func ApportionExpenses(expenses []domain.Expense) map[int64]float64 {
	shares := make(map[int64]float64)

	for _, e := range expenses {
		n := len(e.PalletIDs)
		if n == 0 {
			continue
		}
		share := e.Amount / float64(n)
		for _, id := range e.PalletIDs {
			shares[id] += share
		}
	}

	return shares
}

// ResolvePalletProfit computes a pallet's lifetime numbers: everything the
// pallet ever cost (purchase price, sales tax, its apportioned expense share,
// selling fees) against everything its sold items brought in. Used by the
// lifetime branch only; period views go through the COGS calculator instead.
func ResolvePalletProfit(p domain.Pallet, items []domain.Item, apportionedExpenses float64) PalletProfit {
	res := PalletProfit{
		TotalCost: p.PurchaseCost + deref(p.SalesTax) + apportionedExpenses,
	}

	for _, it := range items {
		if it.Status != domain.StatusSold {
			continue
		}
		res.SoldCount++
		if it.SalePrice == nil {
			continue
		}
		res.TotalRevenue += *it.SalePrice
		res.TotalCost += deref(it.PlatformFee) + deref(it.ShippingCost)
	}

	res.NetProfit = res.TotalRevenue - res.TotalCost
	res.ROI = roiPercent(res.NetProfit, res.TotalCost)

	return res
}
