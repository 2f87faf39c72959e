// Package summary derives read-only aggregates from a slice of expenses.
package summary

import (
	"github.com/shopspring/decimal"

	"dailyexpenses/internal/core"
)

// ByCategory totals expenses per category, in core.Categories order. Every
// known category is present, at zero when nothing was spent on it. Expenses
// carrying a label outside core.Categories do not contribute.
func ByCategory(expenses []core.Expense) []core.CategoryAmount {
	idx := make(map[core.Category]int, len(core.Categories))
	out := make([]core.CategoryAmount, len(core.Categories))
	for i, c := range core.Categories {
		idx[c] = i
		out[i] = core.CategoryAmount{Category: c, Amount: decimal.Zero}
	}

	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			continue
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// ByPeriod lists expenses dated within [start, end], both ends inclusive, in
// input order. An inverted range matches nothing.
func ByPeriod(expenses []core.Expense, start, end core.Date) core.PeriodListing {
	listing := core.PeriodListing{
		Start:    start,
		End:      end,
		Expenses: make([]core.Expense, 0),
		Total:    decimal.Zero,
	}
	if start.After(end) {
		return listing
	}

	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		listing.Expenses = append(listing.Expenses, e)
	}
	listing.Total = Total(listing.Expenses)
	return listing
}

// Total sums every expense amount regardless of category.
func Total(expenses []core.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
