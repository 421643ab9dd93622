// Package habit holds the core domain of habitflow: habit and log models,
// streak computation, and week/month aggregation. Everything here is a pure
// function of its inputs; persistence goes through the KV interface in
// store.go and nothing else does I/O.
package habit

import (
	"fmt"
	"time"

	"github.com/habitflow/habitflow/internal/dateutil"
)

// Habit is a recurring practice the user wants to build.
type Habit struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Color           string    `json:"color"`
	Icon            string    `json:"icon"`
	TargetFrequency int       `json:"targetFrequency"` // target completions per week, 1..7
	CreatedAt       time.Time `json:"createdAt"`
}

// CreatedDay returns the calendar day the habit was created. A habit is
// active on a date iff CreatedDay <= date; inactive habits are excluded
// from that day's completion denominator.
func (h Habit) CreatedDay() string {
	return dateutil.DayString(h.CreatedAt)
}

// HabitLog records completion of one habit on one calendar day. At most one
// log exists per (HabitID, Date) pair, and un-marking removes the entry
// entirely, so in steady state every stored log has Completed == true.
type HabitLog struct {
	ID        string `json:"id"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// Retrospective is a saved AI-generated review of a week or month.
// Immutable once created; deletable by id.
type Retrospective struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Period    dateutil.Period `json:"period"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Content   string          `json:"content"`
}

// Colors is the closed set of habit color tags.
var Colors = []string{
	"red", "orange", "amber", "green", "emerald", "teal", "cyan",
	"blue", "indigo", "violet", "purple", "fuchsia", "pink", "rose",
}

// Icons is the closed set of habit icon tags.
var Icons = []string{
	"sun", "moon", "dumbbell", "book", "droplets", "utensils",
	"briefcase", "heart", "music", "coffee", "activity", "zap",
}

// ValidColor reports whether c is a known color tag.
func ValidColor(c string) bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

// ValidIcon reports whether i is a known icon tag.
func ValidIcon(i string) bool {
	for _, v := range Icons {
		if v == i {
			return true
		}
	}
	return false
}

// ValidateTarget checks the weekly target frequency bounds.
func ValidateTarget(n int) error {
	if n < 1 || n > 7 {
		return fmt.Errorf("target frequency must be between 1 and 7, got %d", n)
	}
	return nil
}

// SeedHabits returns the starter habits used when no habit collection has
// been persisted yet.
func SeedHabits(now time.Time) []Habit {
	return []Habit{
		{
			ID:              "seed-water",
			Name:            "Drink 2L of water",
			Description:     "Stay hydrated through the day",
			Color:           "blue",
			Icon:            "droplets",
			TargetFrequency: 7,
			CreatedAt:       now,
		},
		{
			ID:              "seed-reading",
			Name:            "Read for 30 minutes",
			Description:     "A little self-improvement time",
			Color:           "emerald",
			Icon:            "book",
			TargetFrequency: 5,
			CreatedAt:       now,
		},
		{
			ID:              "seed-run",
			Name:            "Morning run",
			Description:     "Build up stamina",
			Color:           "orange",
			Icon:            "activity",
			TargetFrequency: 3,
			CreatedAt:       now,
		},
	}
}
