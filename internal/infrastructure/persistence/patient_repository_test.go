package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinic/backend/internal/domain/shared"
)

// newMockPatientRepository creates a GormPatientRepository with a mocked SQL
// connection
func newMockPatientRepository(t *testing.T) (*GormPatientRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPatientRepository(gormDB), mock, mockDB
}

func TestGormPatientRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "phone", "payments"}).
			AddRow(patientID, tenantID, "Asha Verma", "9876543210", []byte(`[]`))

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, patientID, 1).
			WillReturnRows(rows)

		p, err := repo.FindByIDForTenant(context.Background(), tenantID, patientID)
		require.NoError(t, err)
		assert.Equal(t, patientID, p.ID)
		assert.Equal(t, tenantID, p.TenantID)
		assert.Equal(t, "Asha Verma", p.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		patientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, patientID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, patientID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPatientRepository_LedgersForTenant(t *testing.T) {
	repo, mock, mockDB := newMockPatientRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()

	rows := sqlmock.NewRows([]string{"payments"}).
		AddRow([]byte(`[{"amount":500}]`)).
		AddRow(nil).
		AddRow([]byte(`[]`))

	mock.ExpectQuery(`SELECT "payments" FROM "patients" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(rows)

	ledgers, err := repo.LedgersForTenant(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, ledgers, 3)
	assert.Equal(t, []byte(`[{"amount":500}]`), ledgers[0])
	assert.Nil(t, ledgers[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPatientRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		patientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "patients" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, patientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteForTenant(context.Background(), tenantID, patientID))
	})

	t.Run("missing patient returns ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		patientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "patients" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, patientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteForTenant(context.Background(), tenantID, patientID), shared.ErrNotFound)
	})
}
