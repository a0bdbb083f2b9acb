package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

// Period is the span of a period-over-period comparison.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts week, month or year. An empty string means month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Comparison holds the current period [CurrentStart, now] against the
// previous one [PreviousStart, PreviousEnd). PreviousEnd equals
// CurrentStart.
type Comparison struct {
	Period        Period          `json:"period"`
	CurrentStart  time.Time       `json:"currentStart"`
	PreviousStart time.Time       `json:"previousStart"`
	PreviousEnd   time.Time       `json:"previousEnd"`
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePct     float64         `json:"changePct"`
}

// bounds returns the start of the current period and of the one before.
// A week is the last seven days; month and year follow the calendar.
func bounds(p Period, now time.Time) (current, previous time.Time) {
	switch p {
	case PeriodWeek:
		current = now.AddDate(0, 0, -7)
		previous = current.AddDate(0, 0, -7)
	case PeriodYear:
		current = startOfYear(now)
		previous = current.AddDate(-1, 0, 0)
	default:
		current = startOfMonth(now)
		previous = current.AddDate(0, -1, 0)
	}
	return current, previous
}

// Compare totals the current and previous p periods up to now.
func Compare(expenses []models.Expense, p Period, now time.Time) Comparison {
	currentStart, previousStart := bounds(p, now)

	current, previous := decimal.Zero, decimal.Zero
	for _, e := range expenses {
		switch {
		case !e.Date.Before(currentStart) && !e.Date.After(now):
			current = current.Add(e.Amount)
		case !e.Date.Before(previousStart) && e.Date.Before(currentStart):
			previous = previous.Add(e.Amount)
		}
	}

	return Comparison{
		Period:        p,
		CurrentStart:  currentStart,
		PreviousStart: previousStart,
		PreviousEnd:   currentStart,
		Current:       current,
		Previous:      previous,
		ChangePct:     PercentChange(current, previous),
	}
}

// PeriodSummary is the summary card: the current period's total, its
// category breakdown and the comparison with the previous period.
type PeriodSummary struct {
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryTotal `json:"categories"`
	Comparison Comparison      `json:"comparison"`
}

// Summary builds the summary card for p at now.
func Summary(expenses []models.Expense, categories []models.Category, p Period, now time.Time) PeriodSummary {
	comparison := Compare(expenses, p, now)
	current := FilterWindow(expenses, Window{Start: comparison.CurrentStart, End: now})
	return PeriodSummary{
		Total:      comparison.Current,
		Categories: ByCategory(current, categories),
		Comparison: comparison,
	}
}

// ChartData is the per-category breakdown over the lookback from now.
func ChartData(expenses []models.Expense, categories []models.Category, lb Lookback, now time.Time) []CategoryTotal {
	return ByCategory(FilterWindow(expenses, WindowFor(lb, now)), categories)
}
