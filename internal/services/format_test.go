package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"expensetracker/internal/models"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"2575", "₹2,575"},
		{"600", "₹600"},
		{"25.75", "₹25.75"},
		{"0", "₹0"},
		{"12.345", "₹12.35"},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			got := FormatCurrency("₹", decimal.RequireFromString(tc.amount), language.MustParse("en-IN"))
			if got != tc.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC)
	tests := map[models.DateFormat]string{
		models.DateFormatDMY: "09/01/2023",
		models.DateFormatMDY: "01/09/2023",
		models.DateFormatISO: "2023-01-09",
		"unknown":            "09/01/2023",
	}
	for format, want := range tests {
		if got := FormatDate(date, format); got != want {
			t.Errorf("FormatDate(%s) = %q, want %q", format, got, want)
		}
	}
}

func TestBackupFileName(t *testing.T) {
	got := BackupFileName(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))
	if got != "expense-tracker-backup-2024-02-29.json" {
		t.Errorf("unexpected name %q", got)
	}
}
