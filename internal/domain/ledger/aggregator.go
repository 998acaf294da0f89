package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

const monthKeyLayout = "2006-01"

// Window is an inclusive calendar date range bounding category and expense
// totals. The monthly trend is always computed over full history and ignores
// the window.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the window, inclusive on
// both bounds.
func (w Window) Contains(date time.Time) bool {
	return !date.Before(w.Start) && !date.After(w.End)
}

// CurrentYearToDate returns the default reporting window, start of the
// current calendar year through today.
func CurrentYearToDate(now time.Time) Window {
	return Window{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// AggregateResult is the output of one ledger aggregation pass.
// CategoryTotals and FilteredRevenue are bounded by the window;
// MonthlyTotals covers the complete history, keyed YYYY-MM.
type AggregateResult struct {
	CategoryTotals  map[string]decimal.Decimal
	MonthlyTotals   map[string]decimal.Decimal
	FilteredRevenue decimal.Decimal
}

// Aggregator walks every payment across every patient ledger and accumulates
// category and monthly revenue totals. It holds no state between calls.
type Aggregator struct {
	classifier *Classifier
	attributor *Attributor
}

// NewAggregator creates an aggregator using the given classifier and
// attributor.
func NewAggregator(classifier *Classifier, attributor *Attributor) *Aggregator {
	return &Aggregator{classifier: classifier, attributor: attributor}
}

// Aggregate processes all ledgers in one pass. Records with an unparseable
// date are skipped for both maps; every in-window record contributes its
// full amount to both FilteredRevenue and CategoryTotals, so the two always
// reconcile when the purpose text's embedded numbers sum to the amount.
func (a *Aggregator) Aggregate(ledgers [][]PaymentRecord, window Window) AggregateResult {
	result := AggregateResult{
		CategoryTotals:  make(map[string]decimal.Decimal),
		MonthlyTotals:   make(map[string]decimal.Decimal),
		FilteredRevenue: decimal.Zero,
	}

	for _, records := range ledgers {
		for _, record := range records {
			date, ok := record.ParsedDate()
			if !ok {
				continue
			}

			monthKey := date.Format(monthKeyLayout)
			result.MonthlyTotals[monthKey] = result.MonthlyTotals[monthKey].Add(record.Amount)

			if !window.Contains(date) {
				continue
			}
			result.FilteredRevenue = result.FilteredRevenue.Add(record.Amount)

			fragments := SplitPurpose(record.Purpose)
			numbers := ExtractAmounts(record.Purpose)
			for _, attr := range a.attributor.Attribute(record.Amount, fragments, numbers) {
				label := FallbackCategory
				if !attr.Synthetic {
					label = a.classifier.Classify(attr.Fragment)
				}
				result.CategoryTotals[label] = result.CategoryTotals[label].Add(attr.Amount)
			}
		}
	}

	return result
}
