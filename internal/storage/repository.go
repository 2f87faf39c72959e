// Package storage keeps the expense collection in a SQLite database. It
// follows the same load-all/save-all contract as the flat file log.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/ledger"
	"dailyexpenses/internal/log"

	_ "modernc.org/sqlite"
)

const (
	selectExpensesSQL = `SELECT position, date, amount, category, description FROM expenses ORDER BY position`
	deleteExpensesSQL = `DELETE FROM expenses`
	insertExpenseSQL  = `INSERT INTO expenses (position, date, amount, category, description) VALUES (?, ?, ?, ?, ?)`
)

type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements ledger.Persister. Rows whose fields do not parse are
// reported as skipped, numbered by their position.
func (r *SQLiteRepository) Load(ctx context.Context) (ledger.Decoded, error) {
	var out ledger.Decoded

	rows, err := r.db.QueryContext(ctx, selectExpensesSQL)
	if err != nil {
		return out, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			position                            int
			date, amount, category, description string
		)
		if err := rows.Scan(&position, &date, &amount, &category, &description); err != nil {
			return out, fmt.Errorf("scan expense: %w", err)
		}
		e, err := ledger.ParseFields(date, amount, category, description)
		if err != nil {
			out.Skipped = append(out.Skipped, ledger.SkippedLine{Number: position, Reason: err})
			continue
		}
		out.Expenses = append(out.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("iterate expenses: %w", err)
	}

	out.Fresh = len(out.Expenses) == 0 && len(out.Skipped) == 0
	return out, nil
}

// Save implements ledger.Persister by replacing every row in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteExpensesSQL); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertExpenseSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		_, err := stmt.ExecContext(ctx, i+1,
			e.Date.String(),
			e.Amount.String(),
			string(e.Category),
			e.Description,
		)
		if err != nil {
			return fmt.Errorf("insert expense %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expenses: %w", err)
	}

	r.logger.DebugContext(ctx, "Expenses saved",
		log.FieldOperation, log.OpSave,
		log.FieldCount, len(expenses))
	return nil
}
