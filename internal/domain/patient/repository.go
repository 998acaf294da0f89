package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinic/backend/internal/domain/shared"
)

// Repository defines persistence operations for patients
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Patient, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Patient, int64, error)
	// LedgersForTenant returns the raw payments column of every patient in
	// the tenant, for report aggregation. Order is unspecified.
	LedgersForTenant(ctx context.Context, tenantID uuid.UUID) ([][]byte, error)
	Save(ctx context.Context, p *Patient) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// VisitRepository defines persistence operations for visits
type VisitRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Visit, error)
	FindByPatient(ctx context.Context, tenantID, patientID uuid.UUID) ([]Visit, error)
	Save(ctx context.Context, v *Visit) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
