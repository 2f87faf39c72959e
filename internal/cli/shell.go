package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/ledger"
	"dailyexpenses/internal/log"
)

// maxInputBytes bounds one line of user input. Longer lines are drained and
// rejected.
const maxInputBytes = 64 * 1024

var errInputTooLong = errors.New("input too long")

const mainMenu = "\n1. Add Expense\n2. View Expenses by Period\n3. View Expenses by Category\n4. Exit\n"

const (
	menuAdd = iota + 1
	menuByPeriod
	menuByCategory
	menuExit
)

// Ledger is what the shell needs from the expense service.
type Ledger interface {
	RecordExpense(ctx context.Context, amount decimal.Decimal, category core.Category, description string, date core.Date) (core.Expense, error)
	SummaryByCategory() []core.CategoryAmount
	ListByPeriod(start, end core.Date) core.PeriodListing
}

// Shell runs the interactive menu loop. Bad input is reported and the menu
// shown again; the loop ends on Exit or at end of input.
type Shell struct {
	ledger Ledger
	in     *bufio.Reader
	out    io.Writer
	err    error
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Shell)

// WithClock overrides the clock used to date new expenses.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) { s.logger = logger.WithComponent(log.ComponentCLI) }
}

func NewShell(l Ledger, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		ledger: l,
		in:     bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportLoad tells the user how the startup load went.
func (s *Shell) ReportLoad(report ledger.LoadReport, err error) {
	if err != nil {
		s.printf("Error loading expenses: %v\n", err)
	}
	if report.Fresh {
		s.printf("No previous expenses found. Starting fresh.\n")
	}
	if n := len(report.Skipped); n > 0 {
		s.printf("Skipped %d malformed expense line(s).\n", n)
	}
}

func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.err != nil {
			return s.err
		}

		s.printf("%s", mainMenu)
		s.printf("Choose an option: ")
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			s.printf("\nExiting program.\n")
			return nil
		}
		if err != nil && !errors.Is(err, errInputTooLong) {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.printf("Invalid input. Please enter a number.\n")
			continue
		}

		switch choice {
		case menuAdd:
			s.addExpense(ctx)
		case menuByPeriod:
			s.viewByPeriod()
		case menuByCategory:
			s.printf("%s", formatCategorySummary(s.ledger.SummaryByCategory()))
		case menuExit:
			s.printf("Exiting program.\n")
			return nil
		default:
			s.printf("Invalid choice. Try again.\n")
		}
	}
}

func (s *Shell) addExpense(ctx context.Context) {
	line, ok := s.prompt("Enter amount: ")
	if !ok {
		return
	}
	amount, err := core.ParseAmount(line)
	if err != nil {
		if errors.Is(err, core.ErrNegativeAmount) {
			s.printf("Invalid input. Amount cannot be negative.\n")
		} else {
			s.printf("Invalid input. Amount must be a number.\n")
		}
		return
	}

	line, ok = s.prompt(formatCategoryMenu())
	if !ok {
		return
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		s.printf("Invalid category selection.\n")
		return
	}
	category, ok := core.CategoryAt(choice)
	if !ok {
		s.printf("Invalid category selection.\n")
		return
	}

	description, ok := s.prompt("Enter description: ")
	if !ok {
		return
	}

	if _, err := s.ledger.RecordExpense(ctx, amount, category, description, core.Today(s.now())); err != nil {
		s.logger.ErrorContext(ctx, "Add expense failed", log.FieldError, err)
		s.printf("Error saving expenses: %v\n", err)
		return
	}
	s.printf("Expense added successfully!\n")
}

func (s *Shell) viewByPeriod() {
	start, ok := s.promptDate("Enter start date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	end, ok := s.promptDate("Enter end date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	s.printf("%s", formatPeriodListing(s.ledger.ListByPeriod(start, end)))
}

func (s *Shell) promptDate(label string) (core.Date, bool) {
	line, ok := s.prompt(label)
	if !ok {
		return core.Date{}, false
	}
	d, err := core.ParseDate(line)
	if err != nil {
		s.printf("Invalid date format. Please use YYYY-MM-DD.\n")
		return core.Date{}, false
	}
	return d, true
}

// prompt writes label and reads one line. It reports false at end of input,
// on a read error and on over-long input; the action is then abandoned.
func (s *Shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	line, err := s.readLine()
	switch {
	case err == nil:
		return line, true
	case errors.Is(err, errInputTooLong):
		s.printf("Input too long.\n")
	case !errors.Is(err, io.EOF):
		s.err = err
	}
	return "", false
}

// readLine reads one line of input without its line ending. A line longer
// than maxInputBytes is consumed whole and reported as errInputTooLong.
// io.EOF is returned only when nothing was read.
func (s *Shell) readLine() (string, error) {
	var buf []byte
	read := 0
	for {
		chunk, err := s.in.ReadSlice('\n')
		read += len(chunk)
		if read <= maxInputBytes+1 {
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && read > 0 {
			err = nil
		}
		if err != nil {
			return "", err
		}
		line := strings.TrimRight(string(buf), "\r\n")
		if read > maxInputBytes+1 || len(line) > maxInputBytes {
			return "", errInputTooLong
		}
		return line, nil
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
