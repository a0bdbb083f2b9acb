package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"expensetracker/internal/models"
)

// FormatCurrency renders amount after symbol with the thousands grouping of
// locale and at most two fraction digits, e.g. "₹2,575".
func FormatCurrency(symbol string, amount decimal.Decimal, locale language.Tag) string {
	f, _ := amount.Round(2).Float64()
	p := message.NewPrinter(locale)
	return symbol + p.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatDate renders t with a zero-padded day, month, and four-digit year in
// the given pattern. Unknown patterns use DD/MM/YYYY.
func FormatDate(t time.Time, format models.DateFormat) string {
	y, m, d := t.Date()
	switch format {
	case models.DateFormatMDY:
		return fmt.Sprintf("%02d/%02d/%d", int(m), d, y)
	case models.DateFormatISO:
		return fmt.Sprintf("%d-%02d-%02d", y, int(m), d)
	default:
		return fmt.Sprintf("%02d/%02d/%d", d, int(m), y)
	}
}

// BackupFileName is the download name of an export taken at now.
func BackupFileName(now time.Time) string {
	return "expense-tracker-backup-" + now.UTC().Format("2006-01-02") + ".json"
}
