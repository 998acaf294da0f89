package ledger

import "github.com/shopspring/decimal"

// Attribution assigns a share of a payment's total amount to one fragment.
// Synthetic attributions carry the whole total under the fallback category
// and must not be run through the classifier.
type Attribution struct {
	Fragment  string
	Amount    decimal.Decimal
	Synthetic bool
}

// AttributionStrategy decides how a payment total is distributed across the
// fragments of its purpose text. Distribute reports false when the strategy
// does not apply to the given input.
type AttributionStrategy interface {
	Name() string
	Distribute(total decimal.Decimal, fragments []string, numbers []decimal.Decimal) ([]Attribution, bool)
}

// PositionalStrategy pairs fragment[i] with numbers[i] when the embedded
// numbers align one-to-one with the fragments. This assumes the text lists
// amounts in the same order as the items; when a clinician writes items and
// prices in different orders the pairing silently misattributes. Tolerated
// as the documented heuristic.
type PositionalStrategy struct{}

// Name returns the strategy identifier
func (PositionalStrategy) Name() string { return "positional" }

// Distribute pairs fragments with numbers by ordinal position
func (PositionalStrategy) Distribute(total decimal.Decimal, fragments []string, numbers []decimal.Decimal) ([]Attribution, bool) {
	if len(fragments) == 0 || len(fragments) != len(numbers) {
		return nil, false
	}
	attrs := make([]Attribution, len(fragments))
	for i, fragment := range fragments {
		attrs[i] = Attribution{Fragment: fragment, Amount: numbers[i]}
	}
	return attrs, true
}

// EvenSplitStrategy divides the total equally across fragments. With zero
// fragments the entire total becomes a single synthetic attribution so the
// payment is never silently dropped.
type EvenSplitStrategy struct{}

// Name returns the strategy identifier
func (EvenSplitStrategy) Name() string { return "even-split" }

// Distribute splits the total evenly; it never rejects input
func (EvenSplitStrategy) Distribute(total decimal.Decimal, fragments []string, _ []decimal.Decimal) ([]Attribution, bool) {
	if len(fragments) == 0 {
		return []Attribution{{Fragment: FallbackCategory, Amount: total, Synthetic: true}}, true
	}
	share := total.Div(decimal.NewFromInt(int64(len(fragments))))
	attrs := make([]Attribution, len(fragments))
	for i, fragment := range fragments {
		attrs[i] = Attribution{Fragment: fragment, Amount: share}
	}
	return attrs, true
}

// Attributor runs an ordered list of strategies and applies the first one
// that accepts the input. The default chain is positional then even split,
// which makes the result total-preserving for every input.
type Attributor struct {
	strategies []AttributionStrategy
}

// NewAttributor creates an attributor with the default strategy chain
func NewAttributor() *Attributor {
	return &Attributor{strategies: []AttributionStrategy{PositionalStrategy{}, EvenSplitStrategy{}}}
}

// NewAttributorWithStrategies creates an attributor with a custom chain
func NewAttributorWithStrategies(strategies ...AttributionStrategy) *Attributor {
	return &Attributor{strategies: strategies}
}

// Attribute distributes total across fragments. The returned amounts always
// sum to total, subject only to division rounding corrected at display time.
func (a *Attributor) Attribute(total decimal.Decimal, fragments []string, numbers []decimal.Decimal) []Attribution {
	for _, strategy := range a.strategies {
		if attrs, ok := strategy.Distribute(total, fragments, numbers); ok {
			return attrs
		}
	}
	// Unreachable with the default chain; kept for custom strategy sets.
	return []Attribution{{Fragment: FallbackCategory, Amount: total, Synthetic: true}}
}
