package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"root canal keyword", "Root canal treatment 26", "RCT"},
		{"rct abbreviation", "RCT 2000", "RCT"},
		{"crown", "PFM crown upper left", "Crown & Bridge"},
		{"zirconia", "Zirconia cap", "Crown & Bridge"},
		{"extraction", "wisdom tooth removal", "Extraction"},
		{"implant", "single implant placement", "Implant"},
		{"scaling", "scaling and polishing", "Scaling"},
		{"restoration", "composite filling", "Restoration"},
		{"denture", "RPD lower", "Denture"},
		{"xray spelled out", "opg x-ray", "X-Ray"},
		{"xray spaced", "full mouth x ray", "X-Ray"},
		{"consultation", "New patient consultation", "Consultation"},
		{"checkup", "routine checkup", "Consultation"},
		{"orthodontics", "braces adjustment", "Orthodontics"},
		{"no match", "misc charges", "Other"},
		{"empty fragment", "", "Other"},
		{"whitespace only", "   ", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.fragment))
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	// "Root Canal + Crown" matches both the RCT and Crown & Bridge rules;
	// the RCT rule is evaluated first so it must win.
	assert.Equal(t, "RCT", classifier.Classify("Root Canal + Crown"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	assert.Equal(t, "RCT", classifier.Classify("ROOT CANAL"))
	assert.Equal(t, "Scaling", classifier.Classify("CLEANING"))
}

func TestClassifyCustomTaxonomy(t *testing.T) {
	// Swapping rule order changes the outcome: taxonomy is configuration,
	// not a constant.
	reversed := Taxonomy{
		{Label: "Crown & Bridge", Keywords: []string{"crown"}},
		{Label: "RCT", Keywords: []string{"rct", "root canal"}},
	}
	classifier := NewClassifier(reversed)

	assert.Equal(t, "Crown & Bridge", classifier.Classify("root canal with crown"))
}
