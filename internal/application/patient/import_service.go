package patient

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinic/backend/internal/domain/ledger"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
)

// Import errors
var (
	ErrEmptyFile     = errors.New("CSV file is empty")
	ErrMissingHeader = errors.New("CSV file missing header row")
	ErrMissingName   = errors.New("CSV file has no name column")
)

// Recognized CSV columns. Only name is required; unknown columns are
// ignored so exports from other systems import without cleanup.
const (
	columnName     = "name"
	columnPhone    = "phone"
	columnEmail    = "email"
	columnGender   = "gender"
	columnDOB      = "dob"
	columnAddress  = "address"
	columnNotes    = "notes"
	columnPayments = "payments"
)

// RowError describes why one CSV row was rejected. Row numbers are
// 1-based and count the header row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a CSV import run
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// ImportService imports patients from CSV files
type ImportService struct {
	repo   patient.Repository
	logger *zap.Logger
}

// NewImportService creates a new CSV import service
func NewImportService(repo patient.Repository, logger *zap.Logger) *ImportService {
	return &ImportService{repo: repo, logger: logger}
}

// ImportPatients reads a CSV stream and creates one patient per valid row.
// Invalid rows are skipped and reported; they never abort the import.
func (s *ImportService) ImportPatients(ctx context.Context, tenantID uuid.UUID, r io.Reader) (*ImportResult, error) {
	bufReader := bufio.NewReader(r)

	// Strip a UTF-8 BOM if present
	if head, err := bufReader.Peek(3); err == nil && len(head) == 3 &&
		head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := columns[columnName]; !ok {
		return nil, ErrMissingName
	}

	result := &ImportResult{}
	rowNum := 1 // header

	for {
		rowNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		p, err := s.buildPatient(tenantID, columns, record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if err := s.repo.Save(ctx, p); err != nil {
			s.logger.Error("Failed to save imported patient",
				zap.Int("row", rowNum), zap.Error(err))
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: "failed to save patient"})
			continue
		}
		result.Imported++
	}

	if result.Imported == 0 && result.Skipped == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "CSV file contains no data rows")
	}

	s.logger.Info("Patient import finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ImportService) buildPatient(tenantID uuid.UUID, columns map[string]int, record []string) (*patient.Patient, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	p, err := patient.NewPatient(tenantID, field(columnName))
	if err != nil {
		return nil, err
	}
	p.Phone = field(columnPhone)
	p.Email = field(columnEmail)
	p.Gender = field(columnGender)
	p.Address = field(columnAddress)
	p.MedicalNotes = field(columnNotes)

	if dob := field(columnDOB); dob != "" {
		t, err := time.Parse("2006-01-02", dob)
		if err != nil {
			return nil, fmt.Errorf("invalid dob %q, expected YYYY-MM-DD", dob)
		}
		p.DateOfBirth = &t
	}

	// A payments column carries the patient's ledger as inline JSON.
	// Malformed JSON is tolerated the same way the aggregator tolerates
	// it: the patient imports with an empty ledger.
	if payments := field(columnPayments); payments != "" {
		records := ledger.DecodeLedger([]byte(payments))
		if records != nil {
			encoded, err := ledger.EncodeLedger(records)
			if err != nil {
				return nil, err
			}
			p.Payments = encoded
		}
	}

	return p, nil
}
