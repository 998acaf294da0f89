package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinic/backend/internal/domain/shared"
)

// Expense is a flat, already-categorized clinic cost entry. No splitting or
// classification is applied to expenses.
type Expense struct {
	shared.TenantEntity
	IncurredAt  time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// NewExpense creates an expense entry for a clinic
func NewExpense(tenantID uuid.UUID, incurredAt time.Time, amount decimal.Decimal, category, description string) (*Expense, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount must not be negative")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "General"
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}
	return &Expense{
		TenantEntity: shared.NewTenantEntity(tenantID),
		IncurredAt:   incurredAt,
		Amount:       amount,
		Category:     category,
		Description:  description,
	}, nil
}

// Update replaces the expense's editable fields
func (e *Expense) Update(incurredAt time.Time, amount decimal.Decimal, category, description string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Expense amount must not be negative")
	}
	if !incurredAt.IsZero() {
		e.IncurredAt = incurredAt
	}
	e.Amount = amount
	if category = strings.TrimSpace(category); category != "" {
		e.Category = category
	}
	e.Description = description
	e.UpdatedAt = time.Now()
	return nil
}

// Repository defines persistence operations for expenses
type Repository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Expense, int64, error)
	// FindInRange returns the tenant's expenses with incurred_at inside the
	// inclusive date range, for report assembly.
	FindInRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]Expense, error)
	Save(ctx context.Context, e *Expense) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
