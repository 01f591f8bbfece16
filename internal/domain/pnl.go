package domain

import "time"

// PeriodBounds is the resolved reporting window of a statement.
type PeriodBounds struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// RevenueSection summarizes sales income for the period.
type RevenueSection struct {
	TotalSales   float64 `json:"total_sales"`
	ItemsSold    int     `json:"items_sold"`
	AvgSalePrice float64 `json:"avg_sale_price"`
}

// COGSSection breaks the cost of goods sold down by source. Pallet-sourced
// units contribute their allocated cost plus sales tax prorated by the
// pallet's sold fraction; individually sourced units contribute their own
// purchase cost.
type COGSSection struct {
	PalletItemCost     float64 `json:"pallet_item_cost"`
	ProratedSalesTax   float64 `json:"prorated_sales_tax"`
	IndividualItemCost float64 `json:"individual_item_cost"`
	Total              float64 `json:"total"`
}

// PlatformBreakdown is per-platform sales and fee totals.
type PlatformBreakdown struct {
	Platform  string  `json:"platform"`
	Sales     float64 `json:"sales"`
	Fees      float64 `json:"fees"`
	ItemsSold int     `json:"items_sold"`
}

// SellingExpenses covers the direct costs of selling in the period.
type SellingExpenses struct {
	PlatformFees  float64             `json:"platform_fees"`
	ShippingCosts float64             `json:"shipping_costs"`
	Total         float64             `json:"total"`
	Platforms     []PlatformBreakdown `json:"platforms"`
}

// OperatingExpense is one overhead category's total for the period.
type OperatingExpense struct {
	Category ExpenseCategory `json:"category"`
	Label    string          `json:"label"`
	Amount   float64         `json:"amount"`
}

// MileageSummary totals deductible mileage for the period. Deduction sums
// miles times each trip's own rate.
type MileageSummary struct {
	TotalMiles     float64 `json:"total_miles"`
	TotalDeduction float64 `json:"total_deduction"`
	AvgRate        float64 `json:"avg_rate"`
	TripCount      int     `json:"trip_count"`
}

// ProfitLossStatement is the full tax-report-shaped statement for a period.
type ProfitLossStatement struct {
	Period            PeriodBounds       `json:"period"`
	Revenue           RevenueSection     `json:"revenue"`
	COGS              COGSSection        `json:"cogs"`
	GrossProfit       float64            `json:"gross_profit"`
	GrossMargin       float64            `json:"gross_margin"`
	SellingExpenses   SellingExpenses    `json:"selling_expenses"`
	OperatingExpenses []OperatingExpense `json:"operating_expenses"`
	OperatingTotal    float64            `json:"operating_total"`
	Mileage           MileageSummary     `json:"mileage"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetProfit         float64            `json:"net_profit"`
	NetMargin         float64            `json:"net_margin"`
	// EffectiveTaxRate is reserved; no tax rate input is modeled yet.
	EffectiveTaxRate *float64 `json:"effective_tax_rate"`
}
