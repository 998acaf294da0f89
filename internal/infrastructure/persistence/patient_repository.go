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

// GormPatientRepository implements patient.Repository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// FindByIDForTenant finds a patient by ID within a clinic
func (r *GormPatientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*patient.Patient, error) {
	var model models.PatientModel
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

// FindAllForTenant finds all patients for a clinic with pagination. A
// search term matches name or phone.
func (r *GormPatientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]patient.Patient, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PatientModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patientModels []models.PatientModel
	if err := applySort(query, filter, PatientSortFields).Find(&patientModels).Error; err != nil {
		return nil, 0, err
	}

	patients := make([]patient.Patient, len(patientModels))
	for i, model := range patientModels {
		patients[i] = *model.ToDomain()
	}
	return patients, total, nil
}

// LedgersForTenant returns the raw payments column of every patient in the
// clinic. Rows with a null column come back as nil slices, which decode to
// empty ledgers.
func (r *GormPatientRepository) LedgersForTenant(ctx context.Context, tenantID uuid.UUID) ([][]byte, error) {
	var ledgers [][]byte
	if err := r.db.WithContext(ctx).
		Model(&models.PatientModel{}).
		Where("tenant_id = ?", tenantID).
		Pluck("payments", &ledgers).Error; err != nil {
		return nil, err
	}
	return ledgers, nil
}

// Save creates or updates a patient
func (r *GormPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	var model models.PatientModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant removes a patient from a clinic
func (r *GormPatientRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PatientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ patient.Repository = (*GormPatientRepository)(nil)
