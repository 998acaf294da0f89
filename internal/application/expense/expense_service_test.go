package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/clinic/backend/internal/domain/expense"
	"github.com/clinic/backend/internal/domain/shared"
)

type memExpenseRepo struct {
	expenses map[uuid.UUID]*domain.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uuid.UUID]*domain.Expense)}
}

func (r *memExpenseRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*domain.Expense, error) {
	e, ok := r.expenses[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (r *memExpenseRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]domain.Expense, int64, error) {
	var out []domain.Expense
	for _, e := range r.expenses {
		if e.TenantID == tenantID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memExpenseRepo) FindInRange(_ context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range r.expenses {
		if e.TenantID == tenantID && !e.IncurredAt.Before(start) && !e.IncurredAt.After(end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Save(_ context.Context, e *domain.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memExpenseRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	e, ok := r.expenses[id]
	if !ok || e.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

func TestCreateExpense(t *testing.T) {
	svc := NewService(newMemExpenseRepo(), zap.NewNop())

	e, err := svc.Create(context.Background(), CreateInput{
		TenantID:    uuid.New(),
		IncurredAt:  time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(300),
		Category:    "Lab",
		Description: "Crown fabrication",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lab", e.Category)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(300)))
}

func TestCreateExpenseRejectsNegativeAmount(t *testing.T) {
	svc := NewService(newMemExpenseRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{
		TenantID: uuid.New(),
		Amount:   decimal.NewFromInt(-5),
	})
	assert.Error(t, err)
}

func TestUpdateExpense(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, zap.NewNop())
	tenantID := uuid.New()

	e, err := svc.Create(context.Background(), CreateInput{
		TenantID: tenantID,
		Amount:   decimal.NewFromInt(300),
		Category: "Lab",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), UpdateInput{
		TenantID:  tenantID,
		ExpenseID: e.ID,
		Amount:    decimal.NewFromInt(450),
		Category:  "Materials",
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "Materials", updated.Category)
}

func TestUpdateExpenseWrongTenant(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, zap.NewNop())

	e, err := svc.Create(context.Background(), CreateInput{
		TenantID: uuid.New(),
		Amount:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), UpdateInput{
		TenantID:  uuid.New(),
		ExpenseID: e.ID,
		Amount:    decimal.NewFromInt(450),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteExpense(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, zap.NewNop())
	tenantID := uuid.New()

	e, err := svc.Create(context.Background(), CreateInput{
		TenantID: tenantID,
		Amount:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tenantID, e.ID))

	_, err = svc.Get(context.Background(), tenantID, e.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
