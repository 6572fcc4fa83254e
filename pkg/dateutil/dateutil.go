package dateutil

import (
	"fmt"
	"time"
)

// MonthStart returns midnight UTC on the first day of date's month
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds months to a month start. Callers pass month starts so day
// overflow (Jan 31 + 1 month) never applies.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// AlignToPeriod returns the start of the calendar-aligned period of
// monthsPerPeriod months (1, 3 or 12) containing date.
func AlignToPeriod(date time.Time, monthsPerPeriod int) time.Time {
	start := MonthStart(date)
	if monthsPerPeriod <= 1 {
		return start
	}
	offset := (int(start.Month()) - 1) % monthsPerPeriod
	return AddMonths(start, -offset)
}

// MonthsBetween counts the whole calendar months from -> to. A partial final
// month is not counted; the result is negative when to is before from.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	switch {
	case months > 0 && to.Day() < from.Day():
		months--
	case months < 0 && to.Day() > from.Day():
		months++
	}
	return months
}

// CalendarDate returns midnight UTC on the calendar day t shows in its own
// location, so "2025-02-28 22:00 -05:00" stays on February 28.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InRange reports whether t falls in the half-open interval [start, end).
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Quarter returns the calendar quarter (1-4) of date.
func Quarter(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}

// MonthLabel formats a month as "2006-01".
func MonthLabel(date time.Time) string {
	return date.Format("2006-01")
}

// QuarterLabel formats a quarter as "2006-Q1".
func QuarterLabel(date time.Time) string {
	return fmt.Sprintf("%d-Q%d", date.Year(), Quarter(date))
}

// YearLabel formats a year as "2006".
func YearLabel(date time.Time) string {
	return fmt.Sprintf("%d", date.Year())
}

// ParseMonth accepts "2006-01" or "2006-01-02" and returns the month start.
func ParseMonth(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return MonthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM or YYYY-MM-DD", value)
}
