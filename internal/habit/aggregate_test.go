package habit

import (
	"math"
	"testing"
)

// Fixtures shared by aggregation tests: habit A exists from Jan 1,
// habit B only from Jan 10.
func aggFixture() ([]Habit, []HabitLog) {
	habits := []Habit{
		{ID: "a", Name: "A", TargetFrequency: 7, CreatedAt: mustDate("2024-01-01")},
		{ID: "b", Name: "B", TargetFrequency: 3, CreatedAt: mustDate("2024-01-10")},
	}
	logs := []HabitLog{
		{ID: "1", HabitID: "a", Date: "2024-01-10", Completed: true},
		{ID: "2", HabitID: "b", Date: "2024-01-10", Completed: true},
	}
	return habits, logs
}

func TestWeekData_SundayFirstOrder(t *testing.T) {
	habits, logs := aggFixture()
	// 2024-01-10 is a Wednesday; its week runs Mon Jan 8 .. Sun Jan 14.
	days := WeekData(habits, logs, mustDate("2024-01-10"))

	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if days[0].Label != "Sun" || days[0].Date != "2024-01-14" {
		t.Errorf("first entry = %s %s, want Sun 2024-01-14", days[0].Label, days[0].Date)
	}
	if days[1].Label != "Mon" || days[1].Date != "2024-01-08" {
		t.Errorf("second entry = %s %s, want Mon 2024-01-08", days[1].Label, days[1].Date)
	}
	if days[6].Label != "Sat" || days[6].Date != "2024-01-13" {
		t.Errorf("last entry = %s %s, want Sat 2024-01-13", days[6].Label, days[6].Date)
	}
}

func TestWeekData_FlagsAndTotals(t *testing.T) {
	habits, logs := aggFixture()
	days := WeekData(habits, logs, mustDate("2024-01-10"))

	var wed WeekDay
	for _, d := range days {
		if d.Date == "2024-01-10" {
			wed = d
		}
	}
	if !wed.Completed["a"] || !wed.Completed["b"] || wed.Total != 2 {
		t.Errorf("wednesday = %+v, want both habits completed, total 2", wed)
	}

	for _, d := range days {
		if d.Date != "2024-01-10" && d.Total != 0 {
			t.Errorf("day %s total = %d, want 0", d.Date, d.Total)
		}
	}
}

func TestMonthData_ActiveHabitDenominator(t *testing.T) {
	habits, logs := aggFixture()
	today := mustDate("2024-01-31")
	cells := MonthData(habits, logs, mustDate("2024-01-15"), today)

	byDate := make(map[string]MonthCell)
	for _, c := range cells {
		if c.Day != 0 {
			byDate[c.Date] = c
		}
	}

	// Jan 10: both active, both completed → 100%.
	if c := byDate["2024-01-10"]; c.Active != 2 || c.Completed != 2 || c.Ratio != 1 {
		t.Errorf("Jan 10 = %+v, want active 2, completed 2, ratio 1", c)
	}
	// Jan 5: only A active, nothing completed → a real 0%, not N/A.
	if c := byDate["2024-01-05"]; c.Active != 1 || c.Completed != 0 || c.Ratio != 0 {
		t.Errorf("Jan 5 = %+v, want active 1, completed 0, ratio 0", c)
	}
}

func TestMonthData_ZeroActiveIsNotApplicable(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "A", CreatedAt: mustDate("2024-01-20")},
	}
	cells := MonthData(habits, nil, mustDate("2024-01-15"), mustDate("2024-01-31"))

	for _, c := range cells {
		if c.Date == "2024-01-05" {
			if c.Active != 0 {
				t.Fatalf("Jan 5 active = %d, want 0", c.Active)
			}
			// Distinguishable from a 0% day: Active carries the state.
		}
	}
}

func TestMonthData_FutureDatesExcluded(t *testing.T) {
	habits, logs := aggFixture()
	today := mustDate("2024-01-15")
	cells := MonthData(habits, logs, mustDate("2024-01-15"), today)

	for _, c := range cells {
		if c.Day == 0 {
			continue
		}
		if c.Date > "2024-01-15" {
			if !c.Future {
				t.Errorf("%s should be future", c.Date)
			}
			if c.Active != 0 || c.Completed != 0 || c.Ratio != 0 {
				t.Errorf("%s future cell carries stats: %+v", c.Date, c)
			}
		} else if c.Future {
			t.Errorf("%s wrongly marked future", c.Date)
		}
	}
}

func TestMonthData_RatioClamped(t *testing.T) {
	// More completions recorded than active habits (stale logs from a
	// later-created habit) must clamp to 1.
	habits := []Habit{
		{ID: "a", Name: "A", CreatedAt: mustDate("2024-01-01")},
	}
	logs := []HabitLog{
		{ID: "1", HabitID: "a", Date: "2024-01-05", Completed: true},
		{ID: "2", HabitID: "ghost", Date: "2024-01-05", Completed: true},
	}
	cells := MonthData(habits, logs, mustDate("2024-01-15"), mustDate("2024-01-31"))
	for _, c := range cells {
		if c.Date == "2024-01-05" && c.Ratio > 1 {
			t.Errorf("ratio = %v, want clamped to 1", c.Ratio)
		}
	}
}

func TestTotalCompletedInRange(t *testing.T) {
	logs := []HabitLog{
		{ID: "1", HabitID: "a", Date: "2024-01-05", Completed: true},
		{ID: "2", HabitID: "a", Date: "2024-01-10", Completed: true},
		{ID: "3", HabitID: "b", Date: "2024-01-10", Completed: true},
		{ID: "4", HabitID: "b", Date: "2024-01-11", Completed: false},
		{ID: "5", HabitID: "b", Date: "2024-02-01", Completed: true},
	}

	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-31", 3},
		{"2024-01-10", "2024-01-10", 2}, // single-day range
		{"2024-01-01", "2024-02-29", 4},
		{"2024-03-01", "2024-03-31", 0},
	}
	for _, tt := range tests {
		if got := TotalCompletedInRange(logs, tt.start, tt.end); got != tt.want {
			t.Errorf("TotalCompletedInRange(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestRangeStats(t *testing.T) {
	habits, logs := aggFixture()
	stats := RangeStats(habits, logs, "2024-01-08", "2024-01-14")

	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2", len(stats))
	}
	if stats[0].Name != "A" || stats[0].Target != 7 || stats[0].Completed != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Name != "B" || stats[1].Target != 3 || stats[1].Completed != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestRatioNeverNaN(t *testing.T) {
	cells := MonthData(nil, nil, mustDate("2024-01-15"), mustDate("2024-01-31"))
	for _, c := range cells {
		if math.IsNaN(c.Ratio) {
			t.Fatalf("cell %s has NaN ratio", c.Date)
		}
	}
}
