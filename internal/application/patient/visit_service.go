package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
)

// VisitService provides application-level visit operations
type VisitService struct {
	visitRepo   patient.VisitRepository
	patientRepo patient.Repository
	logger      *zap.Logger
}

// NewVisitService creates a new visit service
func NewVisitService(visitRepo patient.VisitRepository, patientRepo patient.Repository, logger *zap.Logger) *VisitService {
	return &VisitService{visitRepo: visitRepo, patientRepo: patientRepo, logger: logger}
}

// VisitInput contains the input for recording or updating a visit
type VisitInput struct {
	TenantID  uuid.UUID
	PatientID uuid.UUID
	VisitID   uuid.UUID // zero for create
	VisitedAt time.Time
	Procedure string
	Notes     string
}

// Record creates a visit entry for a patient. The patient must belong to
// the caller's clinic.
func (s *VisitService) Record(ctx context.Context, input VisitInput) (*patient.Visit, error) {
	if _, err := s.patientRepo.FindByIDForTenant(ctx, input.TenantID, input.PatientID); err != nil {
		return nil, err
	}

	v, err := patient.NewVisit(input.TenantID, input.PatientID, input.VisitedAt, input.Procedure, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.visitRepo.Save(ctx, v); err != nil {
		s.logger.Error("Failed to save visit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save visit")
	}

	s.logger.Info("Visit recorded",
		zap.String("visit_id", v.ID.String()),
		zap.String("patient_id", input.PatientID.String()))
	return v, nil
}

// ListForPatient returns a patient's visits
func (s *VisitService) ListForPatient(ctx context.Context, tenantID, patientID uuid.UUID) ([]patient.Visit, error) {
	if _, err := s.patientRepo.FindByIDForTenant(ctx, tenantID, patientID); err != nil {
		return nil, err
	}
	return s.visitRepo.FindByPatient(ctx, tenantID, patientID)
}

// Update modifies a visit entry
func (s *VisitService) Update(ctx context.Context, input VisitInput) (*patient.Visit, error) {
	v, err := s.visitRepo.FindByIDForTenant(ctx, input.TenantID, input.VisitID)
	if err != nil {
		return nil, err
	}

	if err := v.Update(input.VisitedAt, input.Procedure, input.Notes); err != nil {
		return nil, err
	}

	if err := s.visitRepo.Save(ctx, v); err != nil {
		s.logger.Error("Failed to update visit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update visit")
	}
	return v, nil
}

// Delete removes a visit entry
func (s *VisitService) Delete(ctx context.Context, tenantID, visitID uuid.UUID) error {
	return s.visitRepo.DeleteForTenant(ctx, tenantID, visitID)
}
