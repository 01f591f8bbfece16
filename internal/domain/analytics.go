package domain

// GroupMetrics is the metric block shared by every grouped analytics row.
// SoldCount and the money fields respect the caller's date range; TotalItems
// and SellThroughRate always cover the group's whole lifetime.
type GroupMetrics struct {
	TotalRevenue    float64  `json:"total_revenue"`
	TotalCost       float64  `json:"total_cost"`
	TotalProfit     float64  `json:"total_profit"`
	ROI             float64  `json:"roi"`
	TotalItems      int      `json:"total_items"`
	SoldCount       int      `json:"sold_count"`
	SellThroughRate float64  `json:"sell_through_rate"`
	AvgDaysToSell   *float64 `json:"avg_days_to_sell"`
}

// HeroMetrics is the ungrouped headline summary.
type HeroMetrics struct {
	GroupMetrics
	TotalFees            float64 `json:"total_fees"`
	TotalPallets         int     `json:"total_pallets"`
	ActiveInventoryValue float64 `json:"active_inventory_value"`
}

// PalletAnalytics is one leaderboard row.
type PalletAnalytics struct {
	GroupMetrics
	PalletID     int64          `json:"pallet_id"`
	PalletName   string         `json:"pallet_name"`
	Supplier     *string        `json:"supplier"`
	SourceType   SourceType     `json:"source_type"`
	PurchaseCost float64        `json:"purchase_cost"`
	Retail       *RetailMetrics `json:"retail_metrics"`
}

// TypeComparison compares performance across pallet source types.
type TypeComparison struct {
	GroupMetrics
	SourceType  SourceType `json:"source_type"`
	Label       string     `json:"label"`
	PalletCount int        `json:"pallet_count"`
}

// SupplierComparison compares performance across suppliers.
type SupplierComparison struct {
	GroupMetrics
	Supplier    string `json:"supplier"`
	PalletCount int    `json:"pallet_count"`
}

// PalletTypeComparison compares performance across free-text pallet type
// names (e.g. "Amazon Monster"). IsMysteryBox is set when any pallet in the
// group is a mystery box.
type PalletTypeComparison struct {
	GroupMetrics
	TypeName     string `json:"type_name"`
	PalletCount  int    `json:"pallet_count"`
	IsMysteryBox bool   `json:"is_mystery_box"`
}

// RetailMetrics captures deal quality relative to estimated retail value.
type RetailMetrics struct {
	TotalRetailValue    float64 `json:"total_retail_value"`
	RetailRecoveryRate  float64 `json:"retail_recovery_rate"`
	CostPerDollarRetail float64 `json:"cost_per_dollar_retail"`
}

// StaleItem is an unsold listing older than the staleness threshold.
type StaleItem struct {
	ItemID       int64    `json:"item_id"`
	ItemName     string   `json:"item_name"`
	PalletID     *int64   `json:"pallet_id"`
	PalletName   *string  `json:"pallet_name"`
	DaysListed   int      `json:"days_listed"`
	ListingPrice *float64 `json:"listing_price"`
}

// TrendGranularity selects the trend bucket size.
type TrendGranularity string

const (
	TrendDaily   TrendGranularity = "daily"
	TrendWeekly  TrendGranularity = "weekly"
	TrendMonthly TrendGranularity = "monthly"
)

// ParseTrendGranularity returns the granularity for a raw value.
func ParseTrendGranularity(s string) (TrendGranularity, bool) {
	switch TrendGranularity(s) {
	case TrendDaily:
		return TrendDaily, true
	case TrendWeekly:
		return TrendWeekly, true
	case TrendMonthly:
		return TrendMonthly, true
	}

	return TrendDaily, false
}

// TrendPoint is one bucket of the profit trend series. Period is the bucket
// key in ISO date form (daily date, Monday of the week, or first of the
// month).
type TrendPoint struct {
	Period    string  `json:"period"`
	Profit    float64 `json:"profit"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int     `json:"items_sold"`
}
