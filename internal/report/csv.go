// backend-go/internal/report/csv.go
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kylepratt/flipledger/backend-go/internal/domain"
)

// WriteProfitLossCSV renders a statement as label/amount rows in statement
// order, followed by a per-platform table. Detail lines are indented so the
// file reads like the on-screen report when opened in a spreadsheet.
func WriteProfitLossCSV(w io.Writer, stmt *domain.ProfitLossStatement) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Profit & Loss Statement", ""},
		{"Period", fmt.Sprintf("%s to %s", stmt.Period.Start.Format("2006-01-02"), stmt.Period.End.Format("2006-01-02"))},
		{"", ""},
		{"Revenue", ""},
		{"  Total Sales", money(stmt.Revenue.TotalSales)},
		{"  Items Sold", fmt.Sprintf("%d", stmt.Revenue.ItemsSold)},
		{"  Average Sale Price", money(stmt.Revenue.AvgSalePrice)},
		{"", ""},
		{"Cost of Goods Sold", ""},
		{"  Pallet Item Cost", money(stmt.COGS.PalletItemCost)},
		{"  Prorated Sales Tax", money(stmt.COGS.ProratedSalesTax)},
		{"  Individual Item Cost", money(stmt.COGS.IndividualItemCost)},
		{"  Total COGS", money(stmt.COGS.Total)},
		{"", ""},
		{"Gross Profit", money(stmt.GrossProfit)},
		{"Gross Margin", percent(stmt.GrossMargin)},
		{"", ""},
		{"Selling Expenses", ""},
		{"  Platform Fees", money(stmt.SellingExpenses.PlatformFees)},
		{"  Shipping Costs", money(stmt.SellingExpenses.ShippingCosts)},
		{"  Total Selling", money(stmt.SellingExpenses.Total)},
		{"", ""},
		{"Operating Expenses", ""},
	}

	for _, op := range stmt.OperatingExpenses {
		rows = append(rows, []string{"  " + op.Label, money(op.Amount)})
	}
	rows = append(rows,
		[]string{"  Total Operating", money(stmt.OperatingTotal)},
		[]string{"", ""},
		[]string{"Mileage", ""},
		[]string{"  Total Miles", fmt.Sprintf("%.1f", stmt.Mileage.TotalMiles)},
		[]string{"  Mileage Deduction", money(stmt.Mileage.TotalDeduction)},
		[]string{"", ""},
		[]string{"Total Expenses", money(stmt.TotalExpenses)},
		[]string{"Net Profit", money(stmt.NetProfit)},
		[]string{"Net Margin", percent(stmt.NetMargin)},
	)

	if len(stmt.SellingExpenses.Platforms) > 0 {
		rows = append(rows,
			[]string{"", ""},
			[]string{"Platform", "Sales", "Fees", "Items Sold"},
		)
		for _, p := range stmt.SellingExpenses.Platforms {
			rows = append(rows, []string{
				p.Platform,
				money(p.Sales),
				money(p.Fees),
				fmt.Sprintf("%d", p.ItemsSold),
			})
		}
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrendCSV renders trend points as one row per bucket.
func WriteTrendCSV(w io.Writer, points []domain.TrendPoint) error {
	cw := csv.NewWriter(w)

	header := []string{"Period", "Revenue", "Profit", "Items Sold"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, point := range points {
		row := []string{
			point.Period,
			money(point.Revenue),
			money(point.Profit),
			fmt.Sprintf("%d", point.ItemsSold),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
