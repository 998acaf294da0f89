package ledger

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Plausible monetary band for digits embedded in a purpose string. Values
// outside it are assumed to be tooth numbers, quantities or dates.
var (
	minPlausibleAmount = decimal.NewFromInt(10)
	maxPlausibleAmount = decimal.NewFromInt(100000)
)

var (
	fragmentDelimiter = regexp.MustCompile(`(?i),|\s+and\s+`)
	digitRun          = regexp.MustCompile(`\d+`)
)

// SplitPurpose splits a payment's free-text purpose into billed-item
// fragments. Fragments are delimited by a comma or the word "and"; empty
// pieces are dropped. An empty purpose yields no fragments.
func SplitPurpose(purpose string) []string {
	if strings.TrimSpace(purpose) == "" {
		return nil
	}
	pieces := fragmentDelimiter.Split(purpose, -1)
	fragments := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			fragments = append(fragments, piece)
		}
	}
	return fragments
}

// ExtractAmounts scans the purpose for maximal runs of decimal digits and
// returns those inside the plausible monetary band, in left-to-right order.
func ExtractAmounts(purpose string) []decimal.Decimal {
	runs := digitRun.FindAllString(purpose, -1)
	amounts := make([]decimal.Decimal, 0, len(runs))
	for _, run := range runs {
		n, err := decimal.NewFromString(run)
		if err != nil {
			continue
		}
		if n.GreaterThan(minPlausibleAmount) && n.LessThan(maxPlausibleAmount) {
			amounts = append(amounts, n)
		}
	}
	return amounts
}
