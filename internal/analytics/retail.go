package analytics

import "github.com/kylepratt/flipledger/backend-go/internal/domain"

// CalculateRetailMetrics measures deal quality against estimated retail
// value, independent of the profit model. Returns nil when no item in the
// set carries a positive retail price.
func CalculateRetailMetrics(items []domain.Item, groupCost float64) *domain.RetailMetrics {
	var totalRetail float64
	var soldRetail, soldRevenue float64

	for _, it := range items {
		if it.RetailPrice == nil || *it.RetailPrice <= 0 {
			continue
		}
		totalRetail += *it.RetailPrice
		if it.Status == domain.StatusSold {
			soldRetail += *it.RetailPrice
			soldRevenue += deref(it.SalePrice)
		}
	}

	if totalRetail == 0 {
		return nil
	}

	return &domain.RetailMetrics{
		TotalRetailValue:    totalRetail,
		RetailRecoveryRate:  safePercent(soldRevenue, soldRetail),
		CostPerDollarRetail: groupCost / totalRetail,
	}
}
