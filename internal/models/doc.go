// Package models defines the records persisted per user: expenses,
// categories and settings, plus the account records kept in the global
// users list and the bulk backup document.
package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts were stored as plain JSON numbers by the browser store, so keep
	// that wire format for both persistence and backups.
	decimal.MarshalJSONWithoutQuotes = true
}
