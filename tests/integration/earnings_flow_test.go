package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/application/report"
	expensedomain "github.com/clinic/backend/internal/domain/expense"
	identitydomain "github.com/clinic/backend/internal/domain/identity"
	"github.com/clinic/backend/internal/domain/ledger"
	patientdomain "github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/infrastructure/persistence"
)

func seedExpense(t *testing.T, repo *persistence.GormExpenseRepository, clinic *identitydomain.Tenant, date string, amount int64, category string) {
	t.Helper()

	incurredAt, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	e, err := expensedomain.NewExpense(clinic.ID, incurredAt, decimal.NewFromInt(amount), category, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), e))
}

func seedPatient(t *testing.T, repo *persistence.GormPatientRepository, clinic *identitydomain.Tenant, name string, payments ...ledger.PaymentRecord) {
	t.Helper()

	p, err := patientdomain.NewPatient(clinic.ID, name)
	require.NoError(t, err)
	for _, rec := range payments {
		_, err := p.AppendPayment(rec.Amount, rec.Date, rec.Purpose, rec.Mode)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(context.Background(), p))
}

// TestEarningsReportFlow drives the earnings report end to end: patients
// and expenses persisted in PostgreSQL, ledgers aggregated, report
// assembled.
func TestEarningsReportFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	patientRepo := persistence.NewGormPatientRepository(testDB.DB)
	expenseRepo := persistence.NewGormExpenseRepository(testDB.DB)

	clinic, err := identitydomain.NewTenant("Smile Dental")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, clinic))

	seedPatient(t, patientRepo, clinic, "Asha Rao",
		ledger.PaymentRecord{Date: "2026-01-05", Amount: decimal.NewFromInt(2000), Purpose: "RCT", Mode: "cash"},
		ledger.PaymentRecord{Date: "2026-01-12", Amount: decimal.NewFromInt(300), Purpose: "Consultation", Mode: "upi"},
	)
	seedPatient(t, patientRepo, clinic, "Vikram Shah",
		ledger.PaymentRecord{Date: "2026-01-20", Amount: decimal.NewFromInt(200), Purpose: "X-Ray", Mode: "card"},
	)
	seedExpense(t, expenseRepo, clinic, "2026-01-15", 300, "Supplies")

	aggregator := ledger.NewAggregator(
		ledger.NewClassifier(ledger.DefaultTaxonomy()),
		ledger.NewAttributor(),
	)
	svc := report.NewEarningsService(patientRepo, expenseRepo, aggregator, zap.NewNop())

	result, err := svc.GetEarnings(ctx, report.EarningsInput{
		TenantID: clinic.ID,
		Start:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), result.TotalRevenue)
	assert.Equal(t, int64(300), result.TotalExpenses)
	assert.Equal(t, int64(2200), result.Profit)

	require.Len(t, result.PieData, 3)
	assert.Equal(t, ledger.PieSlice{Name: "RCT", Value: 2000}, result.PieData[0])
	assert.Equal(t, ledger.PieSlice{Name: "Consultation", Value: 300}, result.PieData[1])
	assert.Equal(t, ledger.PieSlice{Name: "X-Ray", Value: 200}, result.PieData[2])

	require.Len(t, result.MonthlyTrend, 1)
	assert.Equal(t, ledger.TrendPoint{Month: "Jan 26", Revenue: 2500}, result.MonthlyTrend[0])
}
