package analytics

import (
	"sort"
	"time"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// CalculateProfitLoss compiles the full statement for a period. Costs follow
// the accrual model: sold pallet items charge their allocated cost, sales tax
// prorates by each pallet's sold fraction, and unsold inventory stays off the
// statement entirely. asOf supplies "today" for the default period end.
func CalculateProfitLoss(items []domain.Item, pallets []domain.Pallet, expenses []domain.Expense, trips []domain.MileageTrip, r domain.DateRange, asOf time.Time) domain.ProfitLossStatement {
	// Each collection filters independently against the same range.
	filteredItems := FilterByDate(items, r, pnlItemDate)
	filteredPallets := FilterByDate(pallets, r, func(p domain.Pallet) *time.Time { return p.PurchaseDate })
	filteredExpenses := FilterByDate(expenses, r, func(e domain.Expense) *time.Time { return e.ExpenseDate })
	filteredTrips := FilterByDate(trips, r, func(t domain.MileageTrip) *time.Time { return t.TripDate })

	stmt := domain.ProfitLossStatement{
		Period: resolvePeriod(r, asOf, filteredItems, filteredPallets, filteredExpenses, filteredTrips),
	}

	sold := make([]domain.Item, 0, len(filteredItems))
	for _, it := range filteredItems {
		if it.Status == domain.StatusSold && it.SalePrice != nil {
			sold = append(sold, it)
		}
	}

	for _, it := range sold {
		stmt.Revenue.TotalSales += *it.SalePrice
	}
	stmt.Revenue.ItemsSold = len(sold)
	if len(sold) > 0 {
		stmt.Revenue.AvgSalePrice = stmt.Revenue.TotalSales / float64(len(sold))
	}

	stmt.COGS = compileCOGS(sold, items, pallets)
	stmt.GrossProfit = stmt.Revenue.TotalSales - stmt.COGS.Total
	stmt.GrossMargin = safePercent(stmt.GrossProfit, stmt.Revenue.TotalSales)

	stmt.SellingExpenses = compileSellingExpenses(sold)
	stmt.OperatingExpenses, stmt.OperatingTotal = compileOperatingExpenses(filteredExpenses)
	stmt.Mileage = compileMileage(filteredTrips)

	stmt.TotalExpenses = stmt.SellingExpenses.Total + stmt.OperatingTotal + stmt.Mileage.TotalDeduction
	stmt.NetProfit = stmt.GrossProfit - stmt.TotalExpenses
	stmt.NetMargin = safePercent(stmt.NetProfit, stmt.Revenue.TotalSales)

	return stmt
}

// pnlItemDate picks the date an item counts under in the statement: sold
// items report under their sale date, everything else under creation.
func pnlItemDate(it domain.Item) *time.Time {
	if it.Status == domain.StatusSold && it.SaleDate != nil {
		return it.SaleDate
	}
	created := it.CreatedAt

	return &created
}

// compileCOGS splits the cost of goods sold into its three sources. Pallet
// sizes for the tax proration use the whole ledger, not the filtered subset:
// the fraction is sold-in-period over total-ever, and a sale can come from a
// pallet purchased before the period.
func compileCOGS(sold, allItems []domain.Item, pallets []domain.Pallet) domain.COGSSection {
	var sec domain.COGSSection

	soldPerPallet := make(map[int64]int)
	for _, it := range sold {
		if it.PalletID == nil {
			sec.IndividualItemCost += deref(it.PurchaseCost)
			continue
		}
		sec.PalletItemCost += itemCost(it)
		soldPerPallet[*it.PalletID]++
	}

	totalPerPallet := make(map[int64]int)
	for _, it := range allItems {
		if it.PalletID != nil {
			totalPerPallet[*it.PalletID]++
		}
	}

	for _, p := range pallets {
		soldCount := soldPerPallet[p.ID]
		if soldCount == 0 || p.SalesTax == nil {
			continue
		}
		total := totalPerPallet[p.ID]
		if total == 0 {
			continue
		}
		sec.ProratedSalesTax += *p.SalesTax * float64(soldCount) / float64(total)
	}

	sec.Total = sec.PalletItemCost + sec.ProratedSalesTax + sec.IndividualItemCost

	return sec
}

func compileSellingExpenses(sold []domain.Item) domain.SellingExpenses {
	var sec domain.SellingExpenses

	keys := make([]string, 0)
	byPlatform := make(map[string]*domain.PlatformBreakdown)

	for _, it := range sold {
		fee := deref(it.PlatformFee)
		ship := deref(it.ShippingCost)
		sec.PlatformFees += fee
		sec.ShippingCosts += ship

		name := normalizeGroupKey(it.Platform, "other")
		row, ok := byPlatform[name]
		if !ok {
			row = &domain.PlatformBreakdown{Platform: name}
			byPlatform[name] = row
			keys = append(keys, name)
		}
		row.Sales += deref(it.SalePrice)
		row.Fees += fee + ship
		row.ItemsSold++
	}

	sec.Total = sec.PlatformFees + sec.ShippingCosts
	sec.Platforms = make([]domain.PlatformBreakdown, 0, len(keys))
	for _, k := range keys {
		sec.Platforms = append(sec.Platforms, *byPlatform[k])
	}
	sort.SliceStable(sec.Platforms, func(i, j int) bool {
		return sec.Platforms[i].Sales > sec.Platforms[j].Sales
	})

	return sec
}

// compileOperatingExpenses rolls up overhead categories, dropping categories
// that net out to zero or less and any category owned by another section.
func compileOperatingExpenses(expenses []domain.Expense) ([]domain.OperatingExpense, float64) {
	totals := make(map[domain.ExpenseCategory]float64)
	order := make([]domain.ExpenseCategory, 0)

	for _, e := range expenses {
		if !e.Category.IsOperatingExpense() {
			continue
		}
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	rows := make([]domain.OperatingExpense, 0, len(order))
	var total float64
	for _, cat := range order {
		amount := totals[cat]
		if amount <= 0 {
			continue
		}
		rows = append(rows, domain.OperatingExpense{
			Category: cat,
			Label:    domain.ExpenseCategoryLabel(cat),
			Amount:   amount,
		})
		total += amount
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount > rows[j].Amount
	})

	return rows, total
}

// compileMileage totals miles and the deduction at each trip's own rate. A
// flat rate times total miles would misprice trips logged under older rates.
func compileMileage(trips []domain.MileageTrip) domain.MileageSummary {
	var sum domain.MileageSummary
	var rateTotal float64

	for _, t := range trips {
		sum.TotalMiles += t.Miles
		sum.TotalDeduction += t.Miles * t.Rate
		rateTotal += t.Rate
		sum.TripCount++
	}
	if sum.TripCount > 0 {
		sum.AvgRate = rateTotal / float64(sum.TripCount)
	}

	return sum
}

// resolvePeriod pins the statement window: explicit bounds win, otherwise the
// window runs from the earliest date found across the filtered collections up
// to asOf.
func resolvePeriod(r domain.DateRange, asOf time.Time, items []domain.Item, pallets []domain.Pallet, expenses []domain.Expense, trips []domain.MileageTrip) domain.PeriodBounds {
	bounds := domain.PeriodBounds{Label: r.Preset}

	if r.End != nil {
		bounds.End = normalizeDay(*r.End)
	} else {
		bounds.End = normalizeDay(asOf)
	}

	if r.Start != nil {
		bounds.Start = normalizeDay(*r.Start)
		return bounds
	}

	var earliest *time.Time
	consider := func(t *time.Time) {
		if t == nil {
			return
		}
		day := normalizeDay(*t)
		if earliest == nil || day.Before(*earliest) {
			earliest = &day
		}
	}
	for _, it := range items {
		consider(pnlItemDate(it))
	}
	for _, p := range pallets {
		consider(p.PurchaseDate)
	}
	for _, e := range expenses {
		consider(e.ExpenseDate)
	}
	for _, t := range trips {
		consider(t.TripDate)
	}

	if earliest != nil {
		bounds.Start = *earliest
	} else {
		bounds.Start = bounds.End
	}

	return bounds
}
