package cli

import (
	"fmt"
	"strings"

	"dailyexpenses/internal/core"
	"dailyexpenses/internal/ledger"
)

func formatCategorySummary(totals []core.CategoryAmount) string {
	var b strings.Builder
	b.WriteString("\nExpense Summary by Category:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "%s: %s\n", t.Category, core.FormatMoney(t.Amount))
	}
	return b.String()
}

func formatPeriodListing(l core.PeriodListing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nExpenses from %s to %s:\n", l.Start, l.End)
	for _, e := range l.Expenses {
		b.WriteString(ledger.FormatLine(e))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total Expenses: %s\n", core.FormatMoney(l.Total))
	return b.String()
}

func formatCategoryMenu() string {
	var b strings.Builder
	b.WriteString("Select a category:\n")
	for i, c := range core.Categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "Choose a category (1-%d): ", len(core.Categories))
	return b.String()
}
