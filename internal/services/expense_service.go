package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/ledger"
	"dailyexpenses/internal/log"
	"dailyexpenses/internal/summary"
)

// EventPublisher announces recorded expenses to other systems.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, e core.Expense) error
	Close() error
}

// ExpenseService orchestrates the record store, the aggregator and the
// optional event publisher.
type ExpenseService struct {
	store     *ledger.Store
	publisher EventPublisher
	logger    *log.Logger
}

// NewExpenseService builds the service. publisher may be nil.
func NewExpenseService(store *ledger.Store, publisher EventPublisher, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

func (s *ExpenseService) Load(ctx context.Context) (ledger.LoadReport, error) {
	return s.store.Load(ctx)
}

// RecordExpense validates and stores a new expense, then publishes it.
// A save failure is returned but the expense stays in memory; a publish
// failure is only logged.
func (s *ExpenseService) RecordExpense(ctx context.Context, amount decimal.Decimal, category core.Category, description string, date core.Date) (core.Expense, error) {
	e := core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: core.SanitizeDescription(description),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.Add(ctx, e.Amount, e.Category, e.Description, e.Date); err != nil {
		return e, err
	}

	if err := s.publish(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish expense recorded message",
			log.NewFields().WithExpense(e).WithOperation(log.OpPublish).WithError(err).ToSlice()...)
	}

	return e, nil
}

func (s *ExpenseService) publish(ctx context.Context, e core.Expense) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishExpenseRecorded(ctx, e)
}

// SummaryByCategory totals the current collection per category.
func (s *ExpenseService) SummaryByCategory() []core.CategoryAmount {
	return summary.ByCategory(s.store.Expenses())
}

// ListByPeriod lists the current collection within [start, end].
func (s *ExpenseService) ListByPeriod(start, end core.Date) core.PeriodListing {
	return summary.ByPeriod(s.store.Expenses(), start, end)
}

// Close releases the publisher.
func (s *ExpenseService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close expense service: publisher: %w", err)
	}
	return nil
}
