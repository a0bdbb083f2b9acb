package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the spend of one category within a set of expenses.
type CategoryTotal struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Color      models.Color    `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// Sum adds up the amounts.
func Sum(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory totals expenses per category id, largest first. Equal totals
// are ordered by id. Ids missing from categories are reported as
// Uncategorized.
func ByCategory(expenses []models.Expense, categories []models.Category) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(sums))
	for id, amount := range sums {
		c := models.ResolveCategory(categories, id)
		out = append(out, CategoryTotal{
			ID:         id,
			Name:       c.Name,
			Color:      c.Color,
			Amount:     amount,
			Percentage: PercentOfTotal(amount, total),
		})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// PercentOfTotal is amount as a percentage of total, or 0 when total is 0.
func PercentOfTotal(amount, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return amount.Div(total).Mul(hundred).InexactFloat64()
}

// PercentChange is the change from previous to current in percent, or 0
// when previous is 0.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}

// ByMonth totals the expenses of year per calendar month. Index 0 is
// January.
func ByMonth(expenses []models.Expense, year int) [12]decimal.Decimal {
	var months [12]decimal.Decimal
	for i := range months {
		months[i] = decimal.Zero
	}
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		m := e.Date.Month() - 1
		months[m] = months[m].Add(e.Amount)
	}
	return months
}

// MonthTrend is one month of a year with its change against the month
// before.
type MonthTrend struct {
	Month      time.Month      `json:"month"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Change     float64         `json:"change"`
	IsIncrease bool            `json:"isIncrease"`
}

// Trends returns the twelve months of year. January is compared with
// December of the same year.
func Trends(expenses []models.Expense, year int) []MonthTrend {
	months := ByMonth(expenses, year)
	out := make([]MonthTrend, 12)
	for i, amount := range months {
		prev := months[(i+11)%12]
		out[i] = MonthTrend{
			Month:      time.Month(i + 1),
			Name:       time.Month(i + 1).String(),
			Amount:     amount,
			Change:     PercentChange(amount, prev),
			IsIncrease: amount.GreaterThan(prev),
		}
	}
	return out
}
