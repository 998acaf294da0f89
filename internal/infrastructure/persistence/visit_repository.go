package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/infrastructure/persistence/models"
)

// GormVisitRepository implements patient.VisitRepository using GORM
type GormVisitRepository struct {
	db *gorm.DB
}

// NewGormVisitRepository creates a new GormVisitRepository
func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// FindByIDForTenant finds a visit by ID within a clinic
func (r *GormVisitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*patient.Visit, error) {
	var model models.VisitModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPatient returns a patient's visits, most recent first
func (r *GormVisitRepository) FindByPatient(ctx context.Context, tenantID, patientID uuid.UUID) ([]patient.Visit, error) {
	var visitModels []models.VisitModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND patient_id = ?", tenantID, patientID).
		Order("visited_at DESC").
		Find(&visitModels).Error; err != nil {
		return nil, err
	}

	visits := make([]patient.Visit, len(visitModels))
	for i, model := range visitModels {
		visits[i] = *model.ToDomain()
	}
	return visits, nil
}

// Save creates or updates a visit
func (r *GormVisitRepository) Save(ctx context.Context, v *patient.Visit) error {
	var model models.VisitModel
	model.FromDomain(v)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant removes a visit from a clinic
func (r *GormVisitRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.VisitModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ patient.VisitRepository = (*GormVisitRepository)(nil)
