package report

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

// DashboardSummary holds the headline cards.
type DashboardSummary struct {
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	MonthlySpent     decimal.Decimal `json:"monthlySpent"`
	WeeklySpent      decimal.Decimal `json:"weeklySpent"`
	MonthlyBudget    decimal.Decimal `json:"monthlyBudget"`
	BudgetPercentage float64         `json:"budgetPercentage"`
}

// Dashboard computes the headline cards. Monthly spend covers the calendar
// month of now, weekly spend everything dated on or after seven days ago.
// The budget percentage is capped at 100.
func Dashboard(expenses []models.Expense, settings models.Settings, now time.Time) DashboardSummary {
	year, month, _ := now.Date()
	loc := now.Location()
	weekAgo := now.AddDate(0, 0, -7)

	summary := DashboardSummary{
		TotalSpent:    decimal.Zero,
		MonthlySpent:  decimal.Zero,
		WeeklySpent:   decimal.Zero,
		MonthlyBudget: settings.MonthlyBudget,
	}
	for _, e := range expenses {
		summary.TotalSpent = summary.TotalSpent.Add(e.Amount)
		if y, m, _ := e.Date.In(loc).Date(); y == year && m == month {
			summary.MonthlySpent = summary.MonthlySpent.Add(e.Amount)
		}
		if !e.Date.Before(weekAgo) {
			summary.WeeklySpent = summary.WeeklySpent.Add(e.Amount)
		}
	}

	if settings.MonthlyBudget.IsPositive() {
		summary.BudgetPercentage = min(PercentOfTotal(summary.MonthlySpent, settings.MonthlyBudget), 100)
	}
	return summary
}

// MonthlyReport lists one calendar month.
type MonthlyReport struct {
	Year       int              `json:"year"`
	Month      time.Month       `json:"month"`
	Expenses   []models.Expense `json:"expenses"`
	Total      decimal.Decimal  `json:"total"`
	Categories []CategoryTotal  `json:"categories"`
}

// Monthly reports the expenses dated in month of year, newest first.
func Monthly(expenses []models.Expense, categories []models.Category, year int, month time.Month) MonthlyReport {
	var in []models.Expense
	for _, e := range expenses {
		if y, m, _ := e.Date.Date(); y == year && m == month {
			in = append(in, e)
		}
	}
	in = SortByDateDesc(in)
	return MonthlyReport{
		Year:       year,
		Month:      month,
		Expenses:   in,
		Total:      Sum(in),
		Categories: ByCategory(in, categories),
	}
}

// CategoryReport is the category breakdown of one year.
type CategoryReport struct {
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}

// Yearly reports the category breakdown of year.
func Yearly(expenses []models.Expense, categories []models.Category, year int) CategoryReport {
	var in []models.Expense
	for _, e := range expenses {
		if e.Date.Year() == year {
			in = append(in, e)
		}
	}
	return CategoryReport{
		Year:       year,
		Total:      Sum(in),
		Categories: ByCategory(in, categories),
	}
}

// SortByDateDesc returns a copy of expenses, newest first. Equal dates keep
// their input order.
func SortByDateDesc(expenses []models.Expense) []models.Expense {
	out := make([]models.Expense, len(expenses))
	copy(out, expenses)
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Recent returns the n newest expenses.
func Recent(expenses []models.Expense, n int) []models.Expense {
	sorted := SortByDateDesc(expenses)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// CategoryAll matches every category in Search.
const CategoryAll = "all"

// Search filters by a case-insensitive description substring and a category
// id, newest first. An empty term matches everything, as does an empty or
// "all" category.
func Search(expenses []models.Expense, term, categoryID string) []models.Expense {
	term = strings.ToLower(strings.TrimSpace(term))
	anyCategory := categoryID == "" || categoryID == CategoryAll

	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if term != "" && !strings.Contains(strings.ToLower(e.Description), term) {
			continue
		}
		if !anyCategory && e.Category != categoryID {
			continue
		}
		out = append(out, e)
	}
	return SortByDateDesc(out)
}
