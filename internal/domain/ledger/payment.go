package ledger

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one financial event in a patient's ledger. Records are
// written by hand over years of use, so every field except Amount is treated
// as unvalidated free text.
type PaymentRecord struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Purpose string          `json:"purpose"`
	Mode    string          `json:"mode"`
}

// ParsedDate parses the record's date field. Records whose date cannot be
// parsed are excluded from all aggregation.
func (p PaymentRecord) ParsedDate() (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DecodeLedger decodes a patient's raw payments column into a typed ledger.
// Parse failure is a first-class outcome, not an error: a null, absent or
// malformed column yields an empty ledger so one bad row never aborts a
// tenant-wide aggregation.
func DecodeLedger(raw []byte) []PaymentRecord {
	if len(raw) == 0 {
		return nil
	}
	var records []PaymentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}
	return records
}

// EncodeLedger encodes a ledger back to its JSON column representation.
func EncodeLedger(records []PaymentRecord) ([]byte, error) {
	if records == nil {
		records = []PaymentRecord{}
	}
	return json.Marshal(records)
}
