package models

import (
	"github.com/clinic/backend/internal/domain/identity"
)

// TenantModel maps the tenants table, one row per clinic
type TenantModel struct {
	BaseModel
	Name   string `gorm:"size:255;not null"`
	Status string `gorm:"size:20;not null;default:'ACTIVE'"`
}

// TableName returns the table name
func (TenantModel) TableName() string { return "tenants" }

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Status:     identity.TenantStatus(m.Status),
	}
}

// FromDomain populates the model from a domain Tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Status = string(t.Status)
}

// UserModel maps the users table
type UserModel struct {
	TenantScopedModel
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:'STAFF'"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name
func (UserModel) TableName() string { return "users" }

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantEntity: m.ToDomainTenantEntity(),
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		Active:       m.Active,
	}
}

// FromDomain populates the model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantEntity(u.TenantEntity)
	m.Email = u.Email
	m.Name = u.Name
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
	m.Active = u.Active
}
