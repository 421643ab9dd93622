// Package dateutil provides calendar-day arithmetic for habit aggregation.
//
// A calendar day is always represented as the "YYYY-MM-DD" string of the
// local wall-clock date of a time.Time. Formatting goes through the time's
// own location fields, never through a UTC conversion, so a day never
// shifts near midnight in non-UTC zones. The fixed-width format makes
// lexicographic comparison equivalent to chronological comparison.
package dateutil

import "time"

// DayFormat is the canonical calendar-day layout.
const DayFormat = "2006-01-02"

// Period selects an aggregation granularity.
type Period string

const (
	Weekly  Period = "WEEKLY"
	Monthly Period = "MONTHLY"
)

// DayString returns the calendar day of t in t's own location.
func DayString(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a "YYYY-MM-DD" string as local midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.Local)
}

// StartOfWeek returns the Monday at 00:00:00 of the week containing t.
// For any t, StartOfWeek(t) <= t < StartOfWeek(t)+7d, and the function is
// idempotent on its own output.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday → 7 in ISO week numbering
	}
	daysBack := weekday - 1 // Monday is day 1
	monday := t.AddDate(0, 0, -daysBack)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday calendar days of t's week.
func WeekRange(t time.Time) (start, end string) {
	monday := StartOfWeek(t)
	return DayString(monday), DayString(monday.AddDate(0, 0, 6))
}

// MonthRange returns the first and last calendar days of t's month.
func MonthRange(t time.Time) (start, end string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return DayString(first), DayString(last)
}

// ShiftPeriod moves t by one period in the given direction (+1 or -1).
// Weekly shifts by exactly 7 days. Monthly uses AddDate's native month
// normalization (Jan 31 + 1 month lands in March); that overflow rule is
// deliberate and not corrected further.
func ShiftPeriod(t time.Time, p Period, direction int) time.Time {
	if p == Weekly {
		return t.AddDate(0, 0, 7*direction)
	}
	return t.AddDate(0, direction, 0)
}

// GridCell is one slot of a Sunday-first month grid. Leading blanks before
// the 1st have Day == 0 and an empty Date.
type GridCell struct {
	Day  int
	Date string
}

// CalendarGrid returns the cells of t's month laid out for a Sunday-first
// seven-column calendar: one empty cell per weekday before the 1st, then
// one cell per day of the month. The slice is rebuilt on every call.
func CalendarGrid(t time.Time) []GridCell {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	cells := make([]GridCell, 0, int(first.Weekday())+last.Day())
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, GridCell{})
	}
	for day := 1; day <= last.Day(); day++ {
		cells = append(cells, GridCell{
			Day:  day,
			Date: DayString(first.AddDate(0, 0, day-1)),
		})
	}
	return cells
}

// DaysBetween returns every calendar day from start through end inclusive,
// in chronological order. Returns nil when end precedes start or either
// bound fails to parse.
func DaysBetween(start, end string) []string {
	s, err := ParseDay(start)
	if err != nil {
		return nil
	}
	e, err := ParseDay(end)
	if err != nil {
		return nil
	}

	var days []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, DayString(d))
	}
	return days
}
