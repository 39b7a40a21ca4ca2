package domain

import (
	"fmt"
	"time"
)

// Date layouts accepted at the input boundary.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// MonthStart truncates t to the first day of its month (UTC).
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// IsMonthStart reports whether t is exactly the first instant of a month in UTC.
func IsMonthStart(t time.Time) bool {
	return t.Equal(MonthStart(t)) && t.Location() == time.UTC
}

// AddMonths returns the month start n months after t.
func AddMonths(t time.Time, n int) time.Time {
	m := MonthStart(t)
	return time.Date(m.Year(), m.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the whole-month distance from start to t:
// (year_t - year_s)*12 + (month_t - month_s). Negative when t is before start.
func MonthsBetween(start, t time.Time) int {
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseMonth parses "2006-01" or "2006-01-02" and returns the month start.
// Dates that are not the first of the month are rejected.
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse(MonthLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	if t.Day() != 1 {
		return time.Time{}, fmt.Errorf("parse month %q: not the first day of the month", s)
	}
	return t, nil
}

// FormatDate renders a month start as 2006-01-02.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Horizon is the inclusive monthly range a simulation covers.
type Horizon struct {
	Start time.Time // first month, first-of-month UTC
	End   time.Time // last month (inclusive)
}

// NewHorizon builds a horizon from two month strings.
func NewHorizon(start, end string) (Horizon, error) {
	s, err := ParseMonth(start)
	if err != nil {
		return Horizon{}, err
	}
	e, err := ParseMonth(end)
	if err != nil {
		return Horizon{}, err
	}
	h := Horizon{Start: s, End: e}
	return h, h.Validate()
}

// Validate checks that both ends are month starts and Start <= End.
func (h Horizon) Validate() error {
	if !IsMonthStart(h.Start) || !IsMonthStart(h.End) {
		return fmt.Errorf("horizon bounds must be first-of-month UTC: %s..%s", FormatDate(h.Start), FormatDate(h.End))
	}
	if h.End.Before(h.Start) {
		return fmt.Errorf("horizon end %s before start %s", FormatDate(h.End), FormatDate(h.Start))
	}
	return nil
}

// Len returns the number of months in the horizon.
func (h Horizon) Len() int {
	return MonthsBetween(h.Start, h.End) + 1
}

// Months enumerates every month start in the horizon, ascending.
func (h Horizon) Months() []time.Time {
	n := h.Len()
	if n <= 0 {
		return nil
	}
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = AddMonths(h.Start, i)
	}
	return months
}

// Contains reports whether month t lies within the horizon.
func (h Horizon) Contains(t time.Time) bool {
	return !t.Before(h.Start) && !t.After(h.End)
}

// String renders the horizon as "2005-01..2025-12".
func (h Horizon) String() string {
	return h.Start.Format(MonthLayout) + ".." + h.End.Format(MonthLayout)
}
