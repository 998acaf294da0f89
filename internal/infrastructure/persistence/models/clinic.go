package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinic/backend/internal/domain/expense"
	"github.com/clinic/backend/internal/domain/patient"
)

// PatientModel maps the patients table. The payments column carries the
// patient's ledger as raw JSON; it is decoded by the domain, never by the
// database layer.
type PatientModel struct {
	TenantScopedModel
	Name         string     `gorm:"size:255;not null;index"`
	Phone        string     `gorm:"size:50"`
	Email        string     `gorm:"size:255"`
	Gender       string     `gorm:"size:20"`
	DateOfBirth  *time.Time `gorm:""`
	Address      string     `gorm:"type:text"`
	MedicalNotes string     `gorm:"type:text"`
	Payments     []byte     `gorm:"type:jsonb"`
}

// TableName returns the table name
func (PatientModel) TableName() string { return "patients" }

// ToDomain converts the model to a domain Patient
func (m *PatientModel) ToDomain() *patient.Patient {
	return &patient.Patient{
		TenantEntity: m.ToDomainTenantEntity(),
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		Gender:       m.Gender,
		DateOfBirth:  m.DateOfBirth,
		Address:      m.Address,
		MedicalNotes: m.MedicalNotes,
		Payments:     m.Payments,
	}
}

// FromDomain populates the model from a domain Patient
func (m *PatientModel) FromDomain(p *patient.Patient) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.Name = p.Name
	m.Phone = p.Phone
	m.Email = p.Email
	m.Gender = p.Gender
	m.DateOfBirth = p.DateOfBirth
	m.Address = p.Address
	m.MedicalNotes = p.MedicalNotes
	m.Payments = p.Payments
}

// VisitModel maps the visits table
type VisitModel struct {
	TenantScopedModel
	PatientID uuid.UUID `gorm:"type:uuid;not null;index"`
	VisitedAt time.Time `gorm:"not null;index"`
	Procedure string    `gorm:"size:255;not null"`
	Notes     string    `gorm:"type:text"`
}

// TableName returns the table name
func (VisitModel) TableName() string { return "visits" }

// ToDomain converts the model to a domain Visit
func (m *VisitModel) ToDomain() *patient.Visit {
	return &patient.Visit{
		TenantEntity: m.ToDomainTenantEntity(),
		PatientID:    m.PatientID,
		VisitedAt:    m.VisitedAt,
		Procedure:    m.Procedure,
		Notes:        m.Notes,
	}
}

// FromDomain populates the model from a domain Visit
func (m *VisitModel) FromDomain(v *patient.Visit) {
	m.FromDomainTenantEntity(v.TenantEntity)
	m.PatientID = v.PatientID
	m.VisitedAt = v.VisitedAt
	m.Procedure = v.Procedure
	m.Notes = v.Notes
}

// ExpenseModel maps the expenses table
type ExpenseModel struct {
	TenantScopedModel
	IncurredAt  time.Time       `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name
func (ExpenseModel) TableName() string { return "expenses" }

// ToDomain converts the model to a domain Expense
func (m *ExpenseModel) ToDomain() *expense.Expense {
	return &expense.Expense{
		TenantEntity: m.ToDomainTenantEntity(),
		IncurredAt:   m.IncurredAt,
		Amount:       m.Amount,
		Category:     m.Category,
		Description:  m.Description,
	}
}

// FromDomain populates the model from a domain Expense
func (m *ExpenseModel) FromDomain(e *expense.Expense) {
	m.FromDomainTenantEntity(e.TenantEntity)
	m.IncurredAt = e.IncurredAt
	m.Amount = e.Amount
	m.Category = e.Category
	m.Description = e.Description
}
