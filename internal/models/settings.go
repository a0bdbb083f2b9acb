package models

import "github.com/shopspring/decimal"

// DateFormat is one of the display patterns a user can pick.
type DateFormat string

const (
	DateFormatDMY DateFormat = "DD/MM/YYYY"
	DateFormatMDY DateFormat = "MM/DD/YYYY"
	DateFormatISO DateFormat = "YYYY-MM-DD"
)

// Valid reports whether f is a known pattern.
func (f DateFormat) Valid() bool {
	switch f {
	case DateFormatDMY, DateFormatMDY, DateFormatISO:
		return true
	}
	return false
}

// Language is the UI language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageGerman  Language = "de"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageSpanish, LanguageFrench, LanguageGerman:
		return true
	}
	return false
}

// Settings is the per-user configuration record.
type Settings struct {
	Currency             string          `json:"currency"`
	DateFormat           DateFormat      `json:"dateFormat"`
	MonthlyBudget        decimal.Decimal `json:"monthlyBudget"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
	DarkMode             bool            `json:"darkMode"`
	Language             Language        `json:"language"`
}

// DefaultSettings is what a user gets on first access.
func DefaultSettings() Settings {
	return Settings{
		Currency:             "₹",
		DateFormat:           DateFormatDMY,
		MonthlyBudget:        decimal.NewFromInt(20000),
		NotificationsEnabled: true,
		DarkMode:             false,
		Language:             LanguageEnglish,
	}
}

// SettingsPatch carries the fields to change; nil fields are left alone.
type SettingsPatch struct {
	Currency             *string          `json:"currency,omitempty"`
	DateFormat           *DateFormat      `json:"dateFormat,omitempty"`
	MonthlyBudget        *decimal.Decimal `json:"monthlyBudget,omitempty"`
	NotificationsEnabled *bool            `json:"notificationsEnabled,omitempty"`
	DarkMode             *bool            `json:"darkMode,omitempty"`
	Language             *Language        `json:"language,omitempty"`
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}
	if p.MonthlyBudget != nil {
		s.MonthlyBudget = *p.MonthlyBudget
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
}

// Backup is the export document: a user's whole data set in one file.
type Backup struct {
	Expenses   []Expense  `json:"expenses"`
	Categories []Category `json:"categories"`
	Settings   Settings   `json:"settings"`
}
