package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/clinic/backend/internal/domain/identity"
	patientdomain "github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/infrastructure/persistence"
)

type isolationSetup struct {
	DB          *TestDB
	PatientRepo *persistence.GormPatientRepository
	ExpenseRepo *persistence.GormExpenseRepository
	ClinicA     *identitydomain.Tenant
	ClinicB     *identitydomain.Tenant
}

func newIsolationSetup(t *testing.T) *isolationSetup {
	t.Helper()

	testDB := NewTestDB(t)
	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	ctx := context.Background()

	clinicA, err := identitydomain.NewTenant("Smile Dental")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, clinicA))

	clinicB, err := identitydomain.NewTenant("City Ortho")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Save(ctx, clinicB))

	return &isolationSetup{
		DB:          testDB,
		PatientRepo: persistence.NewGormPatientRepository(testDB.DB),
		ExpenseRepo: persistence.NewGormExpenseRepository(testDB.DB),
		ClinicA:     clinicA,
		ClinicB:     clinicB,
	}
}

func TestTenantIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newIsolationSetup(t)
	ctx := context.Background()

	p, err := patientdomain.NewPatient(setup.ClinicA.ID, "Asha Rao")
	require.NoError(t, err)
	_, err = p.AppendPayment(decimal.NewFromInt(500), "2026-01-10", "Consultation", "cash")
	require.NoError(t, err)
	require.NoError(t, setup.PatientRepo.Save(ctx, p))

	t.Run("patient_not_visible_to_other_clinic", func(t *testing.T) {
		_, err := setup.PatientRepo.FindByIDForTenant(ctx, setup.ClinicB.ID, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := setup.PatientRepo.FindByIDForTenant(ctx, setup.ClinicA.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", found.Name)
	})

	t.Run("ledgers_scoped_to_clinic", func(t *testing.T) {
		ledgersA, err := setup.PatientRepo.LedgersForTenant(ctx, setup.ClinicA.ID)
		require.NoError(t, err)
		assert.Len(t, ledgersA, 1)

		ledgersB, err := setup.PatientRepo.LedgersForTenant(ctx, setup.ClinicB.ID)
		require.NoError(t, err)
		assert.Empty(t, ledgersB)
	})

	t.Run("delete_scoped_to_clinic", func(t *testing.T) {
		err := setup.PatientRepo.DeleteForTenant(ctx, setup.ClinicB.ID, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = setup.PatientRepo.FindByIDForTenant(ctx, setup.ClinicA.ID, p.ID)
		require.NoError(t, err)
	})

	t.Run("expenses_scoped_to_clinic", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

		seedExpense(t, setup.ExpenseRepo, setup.ClinicA, "2026-03-01", 250, "Supplies")

		forA, err := setup.ExpenseRepo.FindInRange(ctx, setup.ClinicA.ID, start, end)
		require.NoError(t, err)
		assert.Len(t, forA, 1)

		forB, err := setup.ExpenseRepo.FindInRange(ctx, setup.ClinicB.ID, start, end)
		require.NoError(t, err)
		assert.Empty(t, forB)
	})
}
