package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(NewClassifier(DefaultTaxonomy()), NewAttributor())
}

func januaryWindow(year int) Window {
	return Window{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestAggregateCategorizesInWindowPayments(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{
		{{ID: "1", Date: "2026-01-18", Amount: decimal.NewFromInt(2000), Purpose: "RCT 2000"}},
		{{ID: "2", Date: "2026-01-20", Amount: decimal.NewFromInt(500), Purpose: "consultation 300, xray 200"}},
	}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	assert.True(t, result.FilteredRevenue.Equal(decimal.NewFromInt(2500)))
	assert.True(t, result.CategoryTotals["RCT"].Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.CategoryTotals["Consultation"].Equal(decimal.NewFromInt(300)))
	assert.True(t, result.CategoryTotals["X-Ray"].Equal(decimal.NewFromInt(200)))
	assert.True(t, result.MonthlyTotals["2026-01"].Equal(decimal.NewFromInt(2500)))
}

func TestAggregateTrendIgnoresWindow(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{{
		{ID: "1", Date: "2025-11-05", Amount: decimal.NewFromInt(1000), Purpose: "scaling"},
		{ID: "2", Date: "2026-01-10", Amount: decimal.NewFromInt(2000), Purpose: "rct"},
	}}

	narrow := aggregator.Aggregate(ledgers, januaryWindow(2026))
	wide := aggregator.Aggregate(ledgers, Window{
		Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	})

	// The monthly trend reflects complete history regardless of the window.
	assert.Equal(t, narrow.MonthlyTotals, wide.MonthlyTotals)
	assert.True(t, narrow.MonthlyTotals["2025-11"].Equal(decimal.NewFromInt(1000)))
	assert.True(t, narrow.MonthlyTotals["2026-01"].Equal(decimal.NewFromInt(2000)))

	// Category totals and filtered revenue do change with the window.
	assert.True(t, narrow.FilteredRevenue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, wide.FilteredRevenue.Equal(decimal.NewFromInt(3000)))
	assert.True(t, narrow.CategoryTotals["Scaling"].IsZero())
	assert.True(t, wide.CategoryTotals["Scaling"].Equal(decimal.NewFromInt(1000)))
}

func TestAggregateWindowBoundsInclusive(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{{
		{ID: "1", Date: "2026-01-01", Amount: decimal.NewFromInt(100), Purpose: "checkup"},
		{ID: "2", Date: "2026-01-31", Amount: decimal.NewFromInt(200), Purpose: "checkup"},
		{ID: "3", Date: "2026-02-01", Amount: decimal.NewFromInt(400), Purpose: "checkup"},
	}}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	assert.True(t, result.FilteredRevenue.Equal(decimal.NewFromInt(300)))
}

func TestAggregateSkipsUnparseableDates(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{{
		{ID: "1", Date: "not-a-date", Amount: decimal.NewFromInt(9999), Purpose: "rct"},
		{ID: "2", Date: "", Amount: decimal.NewFromInt(5000), Purpose: "crown"},
		{ID: "3", Date: "2026-01-15", Amount: decimal.NewFromInt(300), Purpose: "consultation"},
	}}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	assert.True(t, result.FilteredRevenue.Equal(decimal.NewFromInt(300)))
	assert.Len(t, result.MonthlyTotals, 1)
	assert.True(t, result.CategoryTotals["RCT"].IsZero())
}

func TestAggregateEmptyPurposeGoesToOther(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{{
		{ID: "1", Date: "2026-01-10", Amount: decimal.NewFromInt(700), Purpose: ""},
	}}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	// Never silently dropped: the full amount lands in the fallback bucket
	// so revenue and category totals still reconcile.
	assert.True(t, result.CategoryTotals[FallbackCategory].Equal(decimal.NewFromInt(700)))
	assert.True(t, result.FilteredRevenue.Equal(decimal.NewFromInt(700)))
}

func TestAggregateReconciliation(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{
		{
			{ID: "1", Date: "2026-01-18", Amount: decimal.NewFromInt(2000), Purpose: "RCT 2000"},
			{ID: "2", Date: "2026-01-19", Amount: decimal.NewFromInt(700), Purpose: ""},
		},
		{
			{ID: "3", Date: "2026-01-20", Amount: decimal.NewFromInt(900), Purpose: "consultation, xray, extraction"},
		},
	}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	sum := decimal.Zero
	for _, amount := range result.CategoryTotals {
		sum = sum.Add(amount)
	}
	assert.Equal(t, result.FilteredRevenue.Round(0).IntPart(), sum.Round(0).IntPart())
}

func TestAggregateIdempotent(t *testing.T) {
	aggregator := newTestAggregator()

	ledgers := [][]PaymentRecord{{
		{ID: "1", Date: "2026-01-18", Amount: decimal.NewFromInt(2000), Purpose: "RCT 2000"},
		{ID: "2", Date: "2025-06-02", Amount: decimal.NewFromInt(450), Purpose: "filling"},
	}}
	window := januaryWindow(2026)

	first := aggregator.Aggregate(ledgers, window)
	second := aggregator.Aggregate(ledgers, window)

	assert.Equal(t, first, second)
}

func TestDecodeLedger(t *testing.T) {
	t.Run("valid ledger", func(t *testing.T) {
		raw := []byte(`[{"id":"p1","date":"2026-01-18","amount":2000,"purpose":"RCT 2000","mode":"cash"}]`)
		records := DecodeLedger(raw)
		require.Len(t, records, 1)
		assert.Equal(t, "p1", records[0].ID)
		assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(2000)))
		assert.Equal(t, "cash", records[0].Mode)
	})

	t.Run("malformed json yields empty ledger", func(t *testing.T) {
		assert.Empty(t, DecodeLedger([]byte(`{not json`)))
	})

	t.Run("nil and empty input", func(t *testing.T) {
		assert.Empty(t, DecodeLedger(nil))
		assert.Empty(t, DecodeLedger([]byte{}))
	})

	t.Run("wrong shape yields empty ledger", func(t *testing.T) {
		assert.Empty(t, DecodeLedger([]byte(`{"id":"p1"}`)))
	})
}

func TestAggregateMalformedLedgerTolerance(t *testing.T) {
	aggregator := newTestAggregator()

	// A patient whose payments column failed to decode contributes an empty
	// ledger; the rest of the tenant still aggregates.
	ledgers := [][]PaymentRecord{
		DecodeLedger([]byte(`{not json`)),
		{{ID: "1", Date: "2026-01-18", Amount: decimal.NewFromInt(2000), Purpose: "RCT 2000"}},
	}

	result := aggregator.Aggregate(ledgers, januaryWindow(2026))

	assert.True(t, result.FilteredRevenue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.MonthlyTotals["2026-01"].Equal(decimal.NewFromInt(2000)))
}

func TestCurrentYearToDate(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	window := CurrentYearToDate(now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, now, window.End)
}
