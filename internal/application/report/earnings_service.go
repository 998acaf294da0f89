package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clinic/backend/internal/domain/expense"
	"github.com/clinic/backend/internal/domain/ledger"
	"github.com/clinic/backend/internal/domain/patient"
	"github.com/clinic/backend/internal/domain/shared"
)

// EarningsService produces the tenant-wide earnings report by aggregating
// every patient ledger and the clinic's expenses over a reporting window.
type EarningsService struct {
	patientRepo patient.Repository
	expenseRepo expense.Repository
	aggregator  *ledger.Aggregator
	logger      *zap.Logger
}

// NewEarningsService creates a new earnings report service
func NewEarningsService(
	patientRepo patient.Repository,
	expenseRepo expense.Repository,
	aggregator *ledger.Aggregator,
	logger *zap.Logger,
) *EarningsService {
	return &EarningsService{
		patientRepo: patientRepo,
		expenseRepo: expenseRepo,
		aggregator:  aggregator,
		logger:      logger,
	}
}

// EarningsInput bounds the report. A zero Start and End means the default
// window, the current calendar year through today.
type EarningsInput struct {
	TenantID uuid.UUID
	Start    time.Time
	End      time.Time
}

// Window returns the effective reporting window for the input
func (in EarningsInput) Window() ledger.Window {
	if in.Start.IsZero() && in.End.IsZero() {
		return ledger.CurrentYearToDate(time.Now())
	}
	return ledger.Window{Start: in.Start, End: in.End}
}

// GetEarnings builds the earnings report for a clinic. Ledgers and expenses
// are fetched concurrently; a failure of either fetch aborts the whole
// report rather than returning partial numbers.
func (s *EarningsService) GetEarnings(ctx context.Context, input EarningsInput) (*ledger.Report, error) {
	window := input.Window()
	if window.End.Before(window.Start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Report end date must not precede start date")
	}

	var (
		rawLedgers [][]byte
		expenses   []expense.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawLedgers, err = s.patientRepo.LedgersForTenant(gctx, input.TenantID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.FindInRange(gctx, input.TenantID, window.Start, window.End)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load report inputs",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load report data")
	}

	ledgers := make([][]ledger.PaymentRecord, 0, len(rawLedgers))
	for _, raw := range rawLedgers {
		ledgers = append(ledgers, ledger.DecodeLedger(raw))
	}

	result := s.aggregator.Aggregate(ledgers, window)

	lines := make([]ledger.ExpenseLine, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, ledger.ExpenseLine{Date: e.IncurredAt, Amount: e.Amount})
	}

	report := ledger.Assemble(result, lines, window)

	s.logger.Info("Earnings report assembled",
		zap.String("tenant_id", input.TenantID.String()),
		zap.Int("patients", len(ledgers)),
		zap.Int("expenses", len(lines)),
		zap.Int64("total_revenue", report.TotalRevenue),
		zap.Int64("profit", report.Profit))

	return &report, nil
}
