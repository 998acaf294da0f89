package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/backend/internal/domain/shared"
)

// Visit is one treatment entry for a patient.
type Visit struct {
	shared.TenantEntity
	PatientID uuid.UUID
	VisitedAt time.Time
	Procedure string
	Notes     string
}

// NewVisit creates a treatment entry for a patient
func NewVisit(tenantID, patientID uuid.UUID, visitedAt time.Time, procedure, notes string) (*Visit, error) {
	procedure = strings.TrimSpace(procedure)
	if procedure == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Visit procedure is required")
	}
	if visitedAt.IsZero() {
		visitedAt = time.Now()
	}
	return &Visit{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PatientID:    patientID,
		VisitedAt:    visitedAt,
		Procedure:    procedure,
		Notes:        notes,
	}, nil
}

// Update replaces the visit's editable fields
func (v *Visit) Update(visitedAt time.Time, procedure, notes string) error {
	procedure = strings.TrimSpace(procedure)
	if procedure == "" {
		return shared.NewDomainError("INVALID_INPUT", "Visit procedure is required")
	}
	if !visitedAt.IsZero() {
		v.VisitedAt = visitedAt
	}
	v.Procedure = procedure
	v.Notes = notes
	v.UpdatedAt = time.Now()
	return nil
}
