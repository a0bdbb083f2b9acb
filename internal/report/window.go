// Package report computes dashboard and report figures from a snapshot of a
// user's expenses and categories. Nothing here reads or writes storage; every
// function that depends on the current time takes it as now and reads
// calendar fields in now.Location(). Functions keyed by a year or month read
// each expense date in its own zone.
package report

import (
	"fmt"
	"time"

	"expensetracker/internal/models"
)

// Lookback selects how far back a chart or filter reaches from now.
type Lookback string

const (
	LookbackWeek          Lookback = "week"
	LookbackMonth         Lookback = "month"
	LookbackQuarter       Lookback = "quarter"
	LookbackCalendarMonth Lookback = "calendar-month"
	LookbackCalendarYear  Lookback = "calendar-year"
)

// ParseLookback accepts the Lookback names. An empty string means week.
func ParseLookback(s string) (Lookback, error) {
	switch lb := Lookback(s); lb {
	case "":
		return LookbackWeek, nil
	case LookbackWeek, LookbackMonth, LookbackQuarter, LookbackCalendarMonth, LookbackCalendarYear:
		return lb, nil
	}
	return "", fmt.Errorf("unknown lookback %q", s)
}

// Window is an inclusive time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor returns the range [start, now] for lb. Unknown values use a
// week.
func WindowFor(lb Lookback, now time.Time) Window {
	var start time.Time
	switch lb {
	case LookbackMonth:
		start = now.AddDate(0, -1, 0)
	case LookbackQuarter:
		start = now.AddDate(0, -3, 0)
	case LookbackCalendarMonth:
		start = startOfMonth(now)
	case LookbackCalendarYear:
		start = startOfYear(now)
	default:
		start = now.AddDate(0, 0, -7)
	}
	return Window{Start: start, End: now}
}

// FilterWindow returns the expenses dated inside w, in input order.
func FilterWindow(expenses []models.Expense, w Window) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
