package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
)

const fieldCount = 4

// MaxLineBytes bounds a persisted line. Longer lines are skipped whole.
const MaxLineBytes = 1 << 20

// skippedTextBytes bounds the text kept for an over-long skipped line.
const skippedTextBytes = 80

// Reasons a persisted line is skipped on load.
var (
	ErrBlankLine   = errors.New("blank line")
	ErrFieldCount  = errors.New("unexpected field count")
	ErrAmount      = errors.New("unparseable amount")
	ErrDate        = errors.New("unparseable date")
	ErrLineTooLong = errors.New("line too long")
)

// SkippedLine records a persisted line that could not be turned into an expense.
type SkippedLine struct {
	Number int
	Text   string
	Reason error
}

// Decoded is the outcome of reading a persisted log.
type Decoded struct {
	Expenses []core.Expense
	Skipped  []SkippedLine
	// Fresh is set when no persisted log exists yet.
	Fresh bool
}

// FormatLine renders e as "<date> | <amount> | <category> | <description>".
func FormatLine(e core.Expense) string {
	return strings.Join([]string{
		e.Date.String(),
		e.Amount.String(),
		string(e.Category),
		core.SanitizeDescription(e.Description),
	}, core.FieldDelimiter)
}

// ParseLine parses one persisted line. The returned error is one of the
// skip reasons above, wrapped with detail.
func ParseLine(line string) (core.Expense, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return core.Expense{}, ErrBlankLine
	}
	parts := strings.Split(line, core.FieldDelimiter)
	if len(parts) != fieldCount {
		return core.Expense{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(parts), fieldCount)
	}
	return ParseFields(parts[0], parts[1], parts[2], parts[3])
}

// ParseFields builds an expense from its textual fields. Category membership
// is not checked here.
func ParseFields(date, amount, category, description string) (core.Expense, error) {
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %q", ErrDate, date)
	}
	a, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %q", ErrAmount, amount)
	}
	if a.IsNegative() {
		return core.Expense{}, fmt.Errorf("%w: %q is negative", ErrAmount, amount)
	}
	if !core.AmountInRange(a) {
		return core.Expense{}, fmt.Errorf("%w: %q is out of range", ErrAmount, amount)
	}
	return core.Expense{
		Date:        d,
		Amount:      a,
		Category:    core.Category(strings.TrimSpace(category)),
		Description: description,
	}, nil
}

// Decode reads r line by line. Lines that fail to parse, including lines
// longer than MaxLineBytes, are collected in Skipped and do not stop the
// scan. On a read error the partial result is returned together with the
// error.
func Decode(r io.Reader) (Decoded, error) {
	var out Decoded
	br := bufio.NewReader(r)
	n := 0
	for {
		text, size, err := readLine(br)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read line %d: %w", n+1, err)
		}
		n++

		if size > MaxLineBytes {
			out.Skipped = append(out.Skipped, SkippedLine{
				Number: n,
				Text:   text[:skippedTextBytes],
				Reason: fmt.Errorf("%w: %d bytes", ErrLineTooLong, size),
			})
			continue
		}

		e, err := ParseLine(text)
		if err != nil {
			out.Skipped = append(out.Skipped, SkippedLine{Number: n, Text: text, Reason: err})
			continue
		}
		out.Expenses = append(out.Expenses, e)
	}
}

// readLine reads one line and returns at most MaxLineBytes+1 bytes of it,
// without the newline, along with the full line length. The rest of an
// over-long line is drained. io.EOF is returned only when nothing was read.
func readLine(br *bufio.Reader) (string, int, error) {
	var buf []byte
	read := 0
	for {
		chunk, err := br.ReadSlice('\n')
		read += len(chunk)
		if room := MaxLineBytes + 1 - len(buf); room > 0 {
			buf = append(buf, chunk[:min(room, len(chunk))]...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		terminated := err == nil
		if errors.Is(err, io.EOF) && read > 0 {
			err = nil
		}
		if err != nil {
			return "", read, err
		}
		if terminated {
			read--
			if len(buf) > read {
				buf = buf[:read]
			}
		}
		return string(buf), read, nil
	}
}

// Encode writes one line per expense.
func Encode(w io.Writer, expenses []core.Expense) error {
	bw := bufio.NewWriter(w)
	for _, e := range expenses {
		if _, err := bw.WriteString(FormatLine(e) + "\n"); err != nil {
			return fmt.Errorf("write expense: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush expenses: %w", err)
	}
	return nil
}
