package patient

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/domain/shared"
)

func TestImportPatients(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewImportService(repo, zap.NewNop())
	tenantID := uuid.New()

	csvData := strings.Join([]string{
		"name,phone,email,dob",
		"Asha Verma,9876543210,asha@example.com,1990-04-12",
		"Ravi Kumar,9123456780,,",
	}, "\n")

	result, err := svc.ImportPatients(context.Background(), tenantID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	patients, total, err := repo.FindAllForTenant(context.Background(), tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, patients, 2)
}

func TestImportSkipsInvalidRows(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewImportService(repo, zap.NewNop())

	csvData := strings.Join([]string{
		"name,dob",
		",1990-01-01",           // no name
		"Valid Patient,not-a-date", // bad dob
		"Another Patient,",
	}, "\n")

	result, err := svc.ImportPatients(context.Background(), uuid.New(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	svc := NewImportService(newMemPatientRepo(), zap.NewNop())

	_, err := svc.ImportPatients(context.Background(), uuid.New(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestImportRequiresNameColumn(t *testing.T) {
	svc := NewImportService(newMemPatientRepo(), zap.NewNop())

	_, err := svc.ImportPatients(context.Background(), uuid.New(), strings.NewReader("phone,email\n1,a@b.c"))
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestImportStripsBOMAndIgnoresUnknownColumns(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewImportService(repo, zap.NewNop())
	tenantID := uuid.New()

	csvData := "\xEF\xBB\xBFname,favourite_color\nAsha Verma,blue\n"

	result, err := svc.ImportPatients(context.Background(), tenantID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestImportInlineLedger(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewImportService(repo, zap.NewNop())
	tenantID := uuid.New()

	csvData := "name,payments\n" +
		`Asha Verma,"[{""date"":""2026-01-10"",""amount"":2000,""purpose"":""RCT""}]"` + "\n"

	result, err := svc.ImportPatients(context.Background(), tenantID, strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	patients, _, err := repo.FindAllForTenant(context.Background(), tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	records := patients[0].Ledger()
	require.Len(t, records, 1)
	assert.Equal(t, "RCT", records[0].Purpose)
}

func TestImportMalformedInlineLedgerTolerated(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewImportService(repo, zap.NewNop())
	tenantID := uuid.New()

	csvData := "name,payments\nAsha Verma,not-json\n"

	result, err := svc.ImportPatients(context.Background(), tenantID, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	patients, _, err := repo.FindAllForTenant(context.Background(), tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Empty(t, patients[0].Ledger())
}
