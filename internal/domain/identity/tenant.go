package identity

import (
	"strings"

	"github.com/clinic/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle state of a clinic
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusSuspended TenantStatus = "SUSPENDED"
)

// Tenant is one clinic. All patient, visit and expense data is scoped to
// exactly one tenant.
type Tenant struct {
	shared.BaseEntity
	Name   string
	Status TenantStatus
}

// NewTenant creates an active clinic
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Clinic name is required")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Status:     TenantStatusActive,
	}, nil
}

// IsActive reports whether the clinic may be used
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
