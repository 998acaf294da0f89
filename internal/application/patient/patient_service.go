package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/domain/ledger"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
)

// Service provides application-level patient operations
type Service struct {
	repo   patient.Repository
	logger *zap.Logger
}

// NewService creates a new patient service
func NewService(repo patient.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput contains the input for creating a patient
type CreateInput struct {
	TenantID     uuid.UUID
	Name         string
	Phone        string
	Email        string
	Gender       string
	DateOfBirth  *time.Time
	Address      string
	MedicalNotes string
}

// UpdateInput contains the input for updating a patient
type UpdateInput struct {
	TenantID     uuid.UUID
	PatientID    uuid.UUID
	Name         string
	Phone        string
	Email        string
	Gender       string
	DateOfBirth  *time.Time
	Address      string
	MedicalNotes string
}

// AddPaymentInput contains the input for appending a payment to a patient's
// ledger. Date defaults to today when empty.
type AddPaymentInput struct {
	TenantID  uuid.UUID
	PatientID uuid.UUID
	Amount    decimal.Decimal
	Date      string
	Purpose   string
	Mode      string
}

// Create registers a new patient for a clinic
func (s *Service) Create(ctx context.Context, input CreateInput) (*patient.Patient, error) {
	p, err := patient.NewPatient(input.TenantID, input.Name)
	if err != nil {
		return nil, err
	}
	p.Phone = input.Phone
	p.Email = input.Email
	p.Gender = input.Gender
	p.DateOfBirth = input.DateOfBirth
	p.Address = input.Address
	p.MedicalNotes = input.MedicalNotes

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save patient", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save patient")
	}

	s.logger.Info("Patient created",
		zap.String("patient_id", p.ID.String()),
		zap.String("tenant_id", input.TenantID.String()))
	return p, nil
}

// Get returns one patient of the clinic
func (s *Service) Get(ctx context.Context, tenantID, patientID uuid.UUID) (*patient.Patient, error) {
	return s.repo.FindByIDForTenant(ctx, tenantID, patientID)
}

// List returns the clinic's patients with pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]patient.Patient, int64, error) {
	return s.repo.FindAllForTenant(ctx, tenantID, filter)
}

// Update modifies a patient's demographic fields
func (s *Service) Update(ctx context.Context, input UpdateInput) (*patient.Patient, error) {
	p, err := s.repo.FindByIDForTenant(ctx, input.TenantID, input.PatientID)
	if err != nil {
		return nil, err
	}

	if err := p.Update(input.Name, input.Phone, input.Email, input.Gender, input.Address, input.MedicalNotes, input.DateOfBirth); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update patient", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update patient")
	}
	return p, nil
}

// Delete removes a patient and their ledger from the clinic
func (s *Service) Delete(ctx context.Context, tenantID, patientID uuid.UUID) error {
	if err := s.repo.DeleteForTenant(ctx, tenantID, patientID); err != nil {
		return err
	}
	s.logger.Info("Patient deleted",
		zap.String("patient_id", patientID.String()),
		zap.String("tenant_id", tenantID.String()))
	return nil
}

// AddPayment appends a payment record to the patient's ledger
func (s *Service) AddPayment(ctx context.Context, input AddPaymentInput) (*ledger.PaymentRecord, error) {
	p, err := s.repo.FindByIDForTenant(ctx, input.TenantID, input.PatientID)
	if err != nil {
		return nil, err
	}

	record, err := p.AppendPayment(input.Amount, input.Date, input.Purpose, input.Mode)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save payment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save payment")
	}

	s.logger.Info("Payment recorded",
		zap.String("patient_id", p.ID.String()),
		zap.String("amount", input.Amount.String()))
	return record, nil
}

// Ledger returns the decoded payment history of a patient
func (s *Service) Ledger(ctx context.Context, tenantID, patientID uuid.UUID) ([]ledger.PaymentRecord, error) {
	p, err := s.repo.FindByIDForTenant(ctx, tenantID, patientID)
	if err != nil {
		return nil, err
	}
	records := p.Ledger()
	if records == nil {
		records = []ledger.PaymentRecord{}
	}
	return records, nil
}
