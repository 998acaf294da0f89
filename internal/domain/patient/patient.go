package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinic/backend/internal/domain/ledger"
	"github.com/clinic/backend/internal/domain/shared"
)

// Patient is a tenant-scoped patient record. Payments holds the patient's
// raw JSON-encoded ledger exactly as stored; it is decoded lazily and
// tolerantly because rows predate any schema validation.
type Patient struct {
	shared.TenantEntity
	Name         string
	Phone        string
	Email        string
	Gender       string
	DateOfBirth  *time.Time
	Address      string
	MedicalNotes string
	Payments     []byte
}

// NewPatient creates a new patient for a clinic
func NewPatient(tenantID uuid.UUID, name string) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Patient name is required")
	}
	return &Patient{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
	}, nil
}

// Ledger decodes the patient's payments column. A null, absent or malformed
// column yields an empty ledger.
func (p *Patient) Ledger() []ledger.PaymentRecord {
	return ledger.DecodeLedger(p.Payments)
}

// AppendPayment validates and appends one payment record to the ledger,
// re-encoding the column. The record date defaults to today when omitted.
func (p *Patient) AppendPayment(amount decimal.Decimal, date, purpose, mode string) (*ledger.PaymentRecord, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must not be negative")
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment date must be YYYY-MM-DD")
	}

	record := ledger.PaymentRecord{
		ID:      uuid.New().String(),
		Date:    date,
		Amount:  amount,
		Purpose: strings.TrimSpace(purpose),
		Mode:    strings.TrimSpace(mode),
	}

	records := append(p.Ledger(), record)
	encoded, err := ledger.EncodeLedger(records)
	if err != nil {
		return nil, err
	}
	p.Payments = encoded
	p.UpdatedAt = time.Now()
	return &record, nil
}

// Update replaces the patient's editable fields
func (p *Patient) Update(name, phone, email, gender, address, medicalNotes string, dateOfBirth *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Patient name is required")
	}
	p.Name = name
	p.Phone = strings.TrimSpace(phone)
	p.Email = strings.TrimSpace(email)
	p.Gender = gender
	p.Address = address
	p.MedicalNotes = medicalNotes
	p.DateOfBirth = dateOfBirth
	p.UpdatedAt = time.Now()
	return nil
}
