package ledger

import "strings"

// Classifier maps a free-text purpose fragment to exactly one taxonomy label.
// It is pure and total: the worst case is the fallback label.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier creates a classifier over the given taxonomy. The taxonomy is
// injected rather than read from a package global so rule order and keyword
// sets stay independently testable and swappable per tenant.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Classify returns the label of the first rule with a keyword substring match
// in the normalized fragment, or FallbackCategory when nothing matches.
func (c *Classifier) Classify(fragment string) string {
	normalized := strings.ToLower(strings.TrimSpace(fragment))
	for _, rule := range c.taxonomy {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Label
			}
		}
	}
	return FallbackCategory
}
