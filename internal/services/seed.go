package services

import (
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/uuid"
)

// sampleExpenses is the starter set a new user sees, dated relative to now.
func sampleExpenses(now time.Time) []models.Expense {
	today := now
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	lastMonth := now.AddDate(0, -1, 0)

	sample := func(description string, amount int64, category string, date time.Time, notes string) models.Expense {
		return models.Expense{
			ID:          uuid.New(),
			Description: description,
			Amount:      decimal.NewFromInt(amount),
			Category:    category,
			Date:        date,
			Notes:       notes,
		}
	}

	return []models.Expense{
		sample("Grocery shopping", 2575, "food", yesterday, "Weekly grocery run"),
		sample("Electricity bill", 1850, "utilities", lastWeek, ""),
		sample("Movie tickets", 600, "entertainment", today, "Weekend movie with friends"),
		sample("Petrol", 1200, "transportation", yesterday, ""),
		sample("Dinner at restaurant", 1450, "food", lastWeek, "Anniversary dinner"),
		sample("Internet subscription", 999, "utilities", lastMonth, ""),
		sample("Mobile recharge", 499, "utilities", lastWeek, ""),
		sample("Clothes shopping", 3200, "shopping", lastMonth, ""),
	}
}
