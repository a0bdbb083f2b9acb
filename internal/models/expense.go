package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. Category is a soft reference to a
// Category id and is not checked against the user's category set.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}

// NewExpense is an expense before an id is assigned.
type NewExpense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}

// WithID builds the stored record.
func (n NewExpense) WithID(id string) Expense {
	return Expense{
		ID:          id,
		Description: n.Description,
		Amount:      n.Amount,
		Category:    n.Category,
		Date:        n.Date,
		Notes:       n.Notes,
	}
}

// ExpensePatch carries the fields to change; nil fields are left alone.
type ExpensePatch struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil && p.Date == nil && p.Notes == nil
}

// Apply merges the patch into e.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
}
