package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseLine is one already-categorized cost entry as the assembler sees
// it. No splitting or classification is applied to expenses.
type ExpenseLine struct {
	Date   time.Time
	Amount decimal.Decimal
}

// PieSlice is one category's share of in-window revenue.
type PieSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// TrendPoint is one month's total revenue over full history.
type TrendPoint struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// Report is the final earnings report. All values are rounded to whole
// currency units; rounding happens only here so intermediate accumulation
// never compounds rounding error.
type Report struct {
	TotalRevenue  int64        `json:"totalRevenue"`
	TotalExpenses int64        `json:"totalExpenses"`
	Profit        int64        `json:"profit"`
	PieData       []PieSlice   `json:"pieData"`
	MonthlyTrend  []TrendPoint `json:"monthlyTrend"`
}

// Assemble combines an aggregation result with the tenant's expense lines
// into the final report. Expenses are summed over the same window as the
// category totals; the monthly trend is passed through unrestricted.
func Assemble(result AggregateResult, expenses []ExpenseLine, window Window) Report {
	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		if window.Contains(expense.Date) {
			totalExpenses = totalExpenses.Add(expense.Amount)
		}
	}

	totalRevenue := roundToUnit(result.FilteredRevenue)
	roundedExpenses := roundToUnit(totalExpenses)

	pieData := make([]PieSlice, 0, len(result.CategoryTotals))
	for label, amount := range result.CategoryTotals {
		value := roundToUnit(amount)
		if value == 0 {
			continue
		}
		pieData = append(pieData, PieSlice{Name: label, Value: value})
	}
	// Descending by value; ties broken by name so the output is
	// deterministic regardless of map iteration order.
	sort.SliceStable(pieData, func(i, j int) bool {
		if pieData[i].Value != pieData[j].Value {
			return pieData[i].Value > pieData[j].Value
		}
		return pieData[i].Name < pieData[j].Name
	})

	months := make([]string, 0, len(result.MonthlyTotals))
	for month := range result.MonthlyTotals {
		months = append(months, month)
	}
	// YYYY-MM keys sort chronologically as strings.
	sort.Strings(months)

	trend := make([]TrendPoint, 0, len(months))
	for _, month := range months {
		trend = append(trend, TrendPoint{
			Month:   monthLabel(month),
			Revenue: roundToUnit(result.MonthlyTotals[month]),
		})
	}

	return Report{
		TotalRevenue:  totalRevenue,
		TotalExpenses: roundedExpenses,
		Profit:        totalRevenue - roundedExpenses,
		PieData:       pieData,
		MonthlyTrend:  trend,
	}
}

// roundToUnit rounds half away from zero to the nearest whole currency unit.
func roundToUnit(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// monthLabel converts a YYYY-MM key to its human label, e.g. "Jan 26".
// An unparseable key is passed through unchanged.
func monthLabel(key string) string {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 06")
}
