package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/domain/expense"
	"github.com/clinic/backend/internal/domain/shared"
)

// Service provides application-level expense operations
type Service struct {
	repo   expense.Repository
	logger *zap.Logger
}

// NewService creates a new expense service
func NewService(repo expense.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput contains the input for recording an expense
type CreateInput struct {
	TenantID    uuid.UUID
	IncurredAt  time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// UpdateInput contains the input for updating an expense
type UpdateInput struct {
	TenantID    uuid.UUID
	ExpenseID   uuid.UUID
	IncurredAt  time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// Create records a new expense for a clinic
func (s *Service) Create(ctx context.Context, input CreateInput) (*expense.Expense, error) {
	e, err := expense.NewExpense(input.TenantID, input.IncurredAt, input.Amount, input.Category, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save expense")
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", e.ID.String()),
		zap.String("amount", input.Amount.String()),
		zap.String("category", e.Category))
	return e, nil
}

// Get returns one expense of the clinic
func (s *Service) Get(ctx context.Context, tenantID, expenseID uuid.UUID) (*expense.Expense, error) {
	return s.repo.FindByIDForTenant(ctx, tenantID, expenseID)
}

// List returns the clinic's expenses with pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]expense.Expense, int64, error) {
	return s.repo.FindAllForTenant(ctx, tenantID, filter)
}

// Update modifies an expense entry
func (s *Service) Update(ctx context.Context, input UpdateInput) (*expense.Expense, error) {
	e, err := s.repo.FindByIDForTenant(ctx, input.TenantID, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if err := e.Update(input.IncurredAt, input.Amount, input.Category, input.Description); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, e); err != nil {
		s.logger.Error("Failed to update expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update expense")
	}
	return e, nil
}

// Delete removes an expense entry
func (s *Service) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	if err := s.repo.DeleteForTenant(ctx, tenantID, expenseID); err != nil {
		return err
	}
	s.logger.Info("Expense deleted",
		zap.String("expense_id", expenseID.String()),
		zap.String("tenant_id", tenantID.String()))
	return nil
}
