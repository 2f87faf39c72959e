package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/ledger"
	"dailyexpenses/internal/log"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "expenses.db"), nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_LoadEmpty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Fresh || len(got.Expenses) != 0 {
		t.Fatalf("expected fresh empty result, got %+v", got)
	}
}

func TestSQLiteRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	in := []core.Expense{
		{Date: core.NewDate(2024, 1, 1), Amount: decimal.RequireFromString("12.5"), Category: core.Food, Description: "a | b"},
		{Date: core.NewDate(2024, 1, 15), Amount: decimal.RequireFromString("0.1"), Category: core.Travel, Description: ""},
		{Date: core.NewDate(2024, 2, 1), Amount: decimal.NewFromInt(300), Category: core.Utilities, Description: "rent share"},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Fresh || len(got.Expenses) != len(in) {
		t.Fatalf("unexpected result %+v", got)
	}
	for i := range in {
		w, g := in[i], got.Expenses[i]
		if !g.Date.Equal(w.Date) || !g.Amount.Equal(w.Amount) || g.Category != w.Category || g.Description != w.Description {
			t.Fatalf("row %d: expected %+v, got %+v", i, w, g)
		}
	}

	// A second save replaces, not appends.
	if err := repo.Save(ctx, in[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, _ = repo.Load(ctx)
	if len(got.Expenses) != 1 {
		t.Fatalf("expected 1 row after rewrite, got %d", len(got.Expenses))
	}
}

func TestSQLiteRepository_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.db.ExecContext(ctx, insertExpenseSQL, 1, "2024-01-01", "10", "Food", "ok")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = repo.db.ExecContext(ctx, insertExpenseSQL, 2, "2024-01-02", "ten", "Food", "bad amount")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = repo.db.ExecContext(ctx, insertExpenseSQL, 3, "yesterday", "1", "Food", "bad date")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Expenses) != 1 || len(got.Skipped) != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
	if !errors.Is(got.Skipped[0].Reason, ledger.ErrAmount) || !errors.Is(got.Skipped[1].Reason, ledger.ErrDate) {
		t.Fatalf("unexpected skip reasons %+v", got.Skipped)
	}
}

func TestSQLiteRepository_LogsMigrations(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf, Level: slog.LevelDebug})
	dbPath := filepath.Join(t.TempDir(), "expenses.db")

	repo, err := NewSQLiteRepository(dbPath, logger)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	repo.Close()
	if !strings.Contains(buf.String(), "Migrations applied") ||
		!strings.Contains(buf.String(), "component=storage") ||
		!strings.Contains(buf.String(), "operation=migrate") {
		t.Fatalf("missing migration log:\n%s", buf.String())
	}

	buf.Reset()
	reopened, err := NewSQLiteRepository(dbPath, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if !strings.Contains(buf.String(), "Schema up to date") {
		t.Fatalf("second open should find no change:\n%s", buf.String())
	}

	buf.Reset()
	if err := reopened.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(buf.String(), "operation=save") {
		t.Fatalf("missing save log:\n%s", buf.String())
	}
}

func TestSQLiteRepository_WithStore(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "expenses.db")

	repo, err := NewSQLiteRepository(dbPath, nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	store := ledger.NewStore(repo, nil)
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.Add(ctx, decimal.NewFromInt(8), core.Health, "dentist", core.NewDate(2024, 4, 4)); err != nil {
		t.Fatalf("add: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLiteRepository(dbPath, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	store = ledger.NewStore(reopened, nil)
	report, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if report.Loaded != 1 || store.Expenses()[0].Description != "dentist" {
		t.Fatalf("unexpected reload %+v", store.Expenses())
	}
}
