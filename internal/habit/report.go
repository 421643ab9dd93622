package habit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/dateutil"
)

// Cell markers for the exported stats table.
const (
	markDone          = "✅"
	markMissed        = "⬜"
	markNotApplicable = "-" // habit did not exist yet on that date
)

// StatsReport renders the completion matrix for [start, end] as a markdown
// table: one row per calendar day, one column per habit (input list order),
// and a trailing completion-rate column. Days after today are omitted
// entirely. Identical inputs always produce byte-identical output.
func StatsReport(habits []Habit, logs []HabitLog, start, end string, today time.Time) string {
	var b strings.Builder

	b.WriteString("# Habit Stats\n\n")
	fmt.Fprintf(&b, "**Period**: %s ~ %s\n\n", start, end)

	b.WriteString("| Date |")
	for _, h := range habits {
		fmt.Fprintf(&b, " %s |", h.Name)
	}
	b.WriteString(" Rate |\n")

	b.WriteString("| :---: |")
	for range habits {
		b.WriteString(" :---: |")
	}
	b.WriteString(" :---: |\n")

	todayStr := dateutil.DayString(today)
	for _, date := range dateutil.DaysBetween(start, end) {
		if date > todayStr {
			continue
		}

		fmt.Fprintf(&b, "| %s |", date)

		active := 0
		completed := 0
		for _, h := range habits {
			if h.CreatedDay() > date {
				fmt.Fprintf(&b, " %s |", markNotApplicable)
				continue
			}
			active++
			if CompletedOn(logs, h.ID, date) {
				completed++
				fmt.Fprintf(&b, " %s |", markDone)
			} else {
				fmt.Fprintf(&b, " %s |", markMissed)
			}
		}

		rate := 0
		if active > 0 {
			rate = int(math.Round(float64(completed) / float64(active) * 100))
		}
		fmt.Fprintf(&b, " %d%% |\n", rate)
	}

	return b.String()
}

// StatsFilename names an exported stats report.
func StatsFilename(start, end string) string {
	return fmt.Sprintf("%s_%s_HabitStats.md", start, end)
}

// RetroFilename names a downloaded retrospective.
func RetroFilename(day string, period dateutil.Period) string {
	label := "Weekly"
	if period == dateutil.Monthly {
		label = "Monthly"
	}
	return fmt.Sprintf("%s-%s-Review.md", day, label)
}
