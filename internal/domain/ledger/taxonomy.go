package ledger

// FallbackCategory is assigned when no taxonomy rule matches a fragment.
const FallbackCategory = "Other"

// CategoryRule maps a canonical billing category to its trigger keywords.
// Keywords are matched as case-insensitive substrings.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// Taxonomy is an ordered, immutable list of category rules. Rule order is
// part of the classification contract: the first matching rule wins, so more
// specific procedures must precede rules that could match a shared substring.
type Taxonomy []CategoryRule

// DefaultTaxonomy returns the canonical dental billing taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Label: "RCT", Keywords: []string{"rct", "root canal"}},
		{Label: "Crown & Bridge", Keywords: []string{"crown", "cap", "bridge", "pfm", "zirconia"}},
		{Label: "Extraction", Keywords: []string{"extraction", "removal"}},
		{Label: "Implant", Keywords: []string{"implant"}},
		{Label: "Scaling", Keywords: []string{"scaling", "cleaning", "polishing"}},
		{Label: "Restoration", Keywords: []string{"filling", "restoration", "gic", "composite"}},
		{Label: "Denture", Keywords: []string{"denture", "cd", "rpd"}},
		{Label: "X-Ray", Keywords: []string{"xray", "x-ray", "x ray", "radiograph"}},
		{Label: "Consultation", Keywords: []string{"consultation", "checkup", "opd", "examination"}},
		{Label: "Orthodontics", Keywords: []string{"ortho", "brace", "wire"}},
	}
}
