package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dailyexpenses/internal/core"
)

// Persister loads and saves the complete expense collection.
type Persister interface {
	// Load returns every recoverable expense. Missing data is not an error
	// and is reported through Decoded.Fresh.
	Load(ctx context.Context) (Decoded, error)
	// Save replaces all persisted data with expenses.
	Save(ctx context.Context, expenses []core.Expense) error
}

// FileLog persists expenses as a flat text file, rewritten in full on Save.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (f *FileLog) Path() string {
	return f.path
}

func (f *FileLog) Load(_ context.Context) (Decoded, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Decoded{Fresh: true}, nil
	}
	if err != nil {
		return Decoded{}, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	return Decode(file)
}

func (f *FileLog) Save(_ context.Context, expenses []core.Expense) error {
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}
	if err := Encode(file, expenses); err != nil {
		file.Close()
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}
