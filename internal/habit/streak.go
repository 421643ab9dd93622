package habit

import (
	"time"

	"github.com/habitflow/habitflow/internal/dateutil"
)

// streakWindow caps how far back StreakFor scans. A streak that actually
// reaches 365 consecutive days may be undercounted; the cap is a documented
// limitation, not a rolling window.
const streakWindow = 365

// StreakFor returns the current consecutive-completion streak for one habit,
// scanning backward from today. Today itself is forgiven when not yet
// completed (it neither counts nor breaks the chain); any other missing day
// ends the scan.
func StreakFor(logs []HabitLog, habitID string, today time.Time) int {
	done := make(map[string]bool)
	for _, l := range logs {
		if l.HabitID == habitID && l.Completed {
			done[l.Date] = true
		}
	}

	streak := 0
	for i := 0; i < streakWindow; i++ {
		day := dateutil.DayString(today.AddDate(0, 0, -i))
		if done[day] {
			streak++
			continue
		}
		if i == 0 {
			continue // today not done yet: skip, don't break
		}
		break
	}
	return streak
}

// BestStreak returns the habit with the longest current streak, or false
// when no habit has an active streak.
func BestStreak(habits []Habit, logs []HabitLog, today time.Time) (Habit, int, bool) {
	var best Habit
	bestLen := 0
	for _, h := range habits {
		if n := StreakFor(logs, h.ID, today); n > bestLen {
			best, bestLen = h, n
		}
	}
	return best, bestLen, bestLen > 0
}
