// Package ledger owns the in-memory expense collection and keeps its
// persisted form in step with it. Every mutation rewrites the whole log.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/log"
)

// LoadReport summarizes what Store.Load recovered.
type LoadReport struct {
	Loaded  int
	Skipped []SkippedLine
	Fresh   bool
}

// Store is the single owner of the expense collection. It is not safe for
// concurrent use.
type Store struct {
	persister Persister
	logger    *log.Logger
	expenses  []core.Expense
}

func NewStore(p Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		persister: p,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// Load replaces the in-memory collection with the persisted one. Malformed
// entries are skipped. On an I/O error whatever was recovered before the
// failure is kept and the error is returned.
func (s *Store) Load(ctx context.Context) (LoadReport, error) {
	decoded, err := s.persister.Load(ctx)
	s.expenses = decoded.Expenses

	for _, sk := range decoded.Skipped {
		s.logger.WarnContext(ctx, "Skipping malformed expense entry",
			log.FieldOperation, log.OpParse,
			log.FieldLine, sk.Number,
			log.FieldReason, sk.Reason.Error())
	}

	report := LoadReport{
		Loaded:  len(decoded.Expenses),
		Skipped: decoded.Skipped,
		Fresh:   decoded.Fresh,
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load expenses",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).With(log.FieldCount, report.Loaded).ToSlice()...)
		return report, fmt.Errorf("load expenses: %w", err)
	}

	s.logger.InfoContext(ctx, "Expenses loaded",
		log.FieldCount, report.Loaded,
		"skipped", len(report.Skipped),
		"fresh", report.Fresh)
	return report, nil
}

// Add appends a new expense and rewrites the persisted log. Category
// membership is the caller's concern. When saving fails the expense stays in
// memory and the error is returned.
func (s *Store) Add(ctx context.Context, amount decimal.Decimal, category core.Category, description string, date core.Date) error {
	e := core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	s.expenses = append(s.expenses, e)

	if err := s.save(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Expense kept in memory but not persisted",
			log.NewFields().WithExpense(e).WithOperation(log.OpAdd).WithError(err).ToSlice()...)
		return err
	}

	s.logger.DebugContext(ctx, "Expense added",
		log.NewFields().WithExpense(e).WithOperation(log.OpAdd).ToSlice()...)
	return nil
}

func (s *Store) save(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.expenses); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// Expenses returns a snapshot of the collection in insertion order.
func (s *Store) Expenses() []core.Expense {
	return append([]core.Expense(nil), s.expenses...)
}

func (s *Store) Len() int {
	return len(s.expenses)
}
