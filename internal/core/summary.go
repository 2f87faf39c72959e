package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   decimal.Decimal
}

// PeriodListing is the set of expenses dated within [Start, End] and their sum.
type PeriodListing struct {
	Start    Date
	End      Date
	Expenses []Expense
	Total    decimal.Decimal
}
