package habit

import (
	"time"

	"github.com/habitflow/habitflow/internal/dateutil"
)

// WeekDay is one day of the weekly completion matrix.
type WeekDay struct {
	Date      string
	Label     string          // Sun..Sat display label
	Completed map[string]bool // habit id → completed on this date
	Total     int             // completed habits on this date
}

var dayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekData builds the 7-day completion matrix for the week containing
// anchor. Weeks start on Monday, but entries come back in Sunday-first
// display order: the week's Sunday, then Monday through Saturday.
func WeekData(habits []Habit, logs []HabitLog, anchor time.Time) []WeekDay {
	monday := dateutil.StartOfWeek(anchor)

	byDate := completedByDate(logs)

	days := make([]WeekDay, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		date := dateutil.DayString(d)

		entry := WeekDay{
			Date:      date,
			Label:     dayLabels[int(d.Weekday())],
			Completed: make(map[string]bool, len(habits)),
		}
		for _, h := range habits {
			if byDate[date][h.ID] {
				entry.Completed[h.ID] = true
				entry.Total++
			}
		}

		// Sunday is the last day of a Monday-start week; rotate it to
		// the front for display.
		days[(i+1)%7] = entry
	}
	return days
}

// MonthCell is one slot of the monthly calendar. Leading blanks have
// Day == 0. For populated cells, Ratio is completed/active clamped to 1;
// Active == 0 and Future are distinct not-applicable states, never
// conflated with a 0% day that had habits present.
type MonthCell struct {
	Day       int
	Date      string
	Active    int
	Completed int
	Ratio     float64
	Future    bool
}

// MonthData builds the Sunday-first calendar of completion ratios for the
// month containing anchor. Dates after today are marked Future and excluded
// from ratio computation entirely.
func MonthData(habits []Habit, logs []HabitLog, anchor, today time.Time) []MonthCell {
	todayStr := dateutil.DayString(today)
	byDate := completedByDate(logs)

	grid := dateutil.CalendarGrid(anchor)
	cells := make([]MonthCell, len(grid))
	for i, g := range grid {
		cell := MonthCell{Day: g.Day, Date: g.Date}
		if g.Day == 0 {
			cells[i] = cell
			continue
		}
		if g.Date > todayStr {
			cell.Future = true
			cells[i] = cell
			continue
		}

		for _, h := range habits {
			if h.CreatedDay() <= g.Date {
				cell.Active++
			}
		}
		cell.Completed = len(byDate[g.Date])
		if cell.Active > 0 {
			cell.Ratio = float64(cell.Completed) / float64(cell.Active)
			if cell.Ratio > 1 {
				cell.Ratio = 1
			}
		}
		cells[i] = cell
	}
	return cells
}

// TotalCompletedInRange counts completed logs with start <= date <= end.
// The bounds are fixed-width YYYY-MM-DD strings, so plain string comparison
// is chronologically correct.
func TotalCompletedInRange(logs []HabitLog, start, end string) int {
	n := 0
	for _, l := range logs {
		if l.Completed && l.Date >= start && l.Date <= end {
			n++
		}
	}
	return n
}

// RangeStat is one habit's completion count over a date interval.
type RangeStat struct {
	Name      string `json:"name"`
	Target    int    `json:"target"`
	Completed int    `json:"completed"`
}

// RangeStats computes per-habit completion counts over [start, end],
// preserving habit list order.
func RangeStats(habits []Habit, logs []HabitLog, start, end string) []RangeStat {
	stats := make([]RangeStat, 0, len(habits))
	for _, h := range habits {
		n := 0
		for _, l := range logs {
			if l.HabitID == h.ID && l.Completed && l.Date >= start && l.Date <= end {
				n++
			}
		}
		stats = append(stats, RangeStat{Name: h.Name, Target: h.TargetFrequency, Completed: n})
	}
	return stats
}

// CompletedOn reports whether the habit has a completed log on date.
func CompletedOn(logs []HabitLog, habitID, date string) bool {
	for _, l := range logs {
		if l.HabitID == habitID && l.Date == date && l.Completed {
			return true
		}
	}
	return false
}

// completedByDate indexes completed logs as date → set of habit ids.
func completedByDate(logs []HabitLog) map[string]map[string]bool {
	byDate := make(map[string]map[string]bool)
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		if byDate[l.Date] == nil {
			byDate[l.Date] = make(map[string]bool)
		}
		byDate[l.Date][l.HabitID] = true
	}
	return byDate
}
