package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Food          Category = "Food"
	Travel        Category = "Travel"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Others        Category = "Others"
)

// Categories lists the closed category set in display order.
var Categories = []Category{Food, Travel, Utilities, Entertainment, Health, Others}

const dateLayout = "2006-01-02"

// FieldDelimiter separates the fields of a persisted expense line.
const FieldDelimiter = " | "

type (
	// Category labels an expense. Only values in Categories are accepted at
	// entry time, but a record loaded from disk may carry any label.
	Category string

	Date struct {
		time.Time
	}

	Expense struct {
		Date        Date
		Amount      decimal.Decimal
		Category    Category
		Description string
	}
)

var (
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrUnknownCategory = errors.New("unknown category")
)

// IsKnown reports whether c belongs to Categories.
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// CategoryAt returns the category for a 1-based menu choice.
func CategoryAt(choice int) (Category, bool) {
	if choice < 1 || choice > len(Categories) {
		return "", false
	}
	return Categories[choice-1], true
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the calendar date of now in its own location.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a zero-padded YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// SanitizeDescription removes sequences that would break the one-line,
// pipe-delimited persisted form.
func SanitizeDescription(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	for strings.Contains(s, FieldDelimiter) {
		s = strings.ReplaceAll(s, FieldDelimiter, " / ")
	}
	return s
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !AmountInRange(e.Amount) {
		return ErrInvalidAmount
	}
	if !e.Category.IsKnown() {
		return ErrUnknownCategory
	}
	return nil
}
