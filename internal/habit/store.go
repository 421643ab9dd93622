package habit

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Well-known persistence keys. Each collection is serialized independently
// as a JSON array; there is no transactional coupling between them.
const (
	keyHabits = "habits"
	keyLogs   = "logs"
	keyRetros = "retrospectives"
)

// KV is the durable key-value storage the store persists into.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store owns the canonical habit, log, and retrospective collections.
// All mutation goes through its methods; the aggregation functions in this
// package only ever read the slices it hands out.
type Store struct {
	kv KV

	habits []Habit
	logs   []HabitLog
	retros []Retrospective
}

// Load reads all three collections from kv. A missing habits key yields the
// seed habits; missing logs/retrospectives yield empty collections. A
// collection that fails to unmarshal is replaced by its default with a
// warning instead of failing the whole load.
func Load(kv KV, now time.Time) (*Store, error) {
	s := &Store{kv: kv}

	if err := loadCollection(kv, keyHabits, &s.habits, func() { s.habits = SeedHabits(now) }); err != nil {
		return nil, err
	}
	if err := loadCollection(kv, keyLogs, &s.logs, func() { s.logs = nil }); err != nil {
		return nil, err
	}
	if err := loadCollection(kv, keyRetros, &s.retros, func() { s.retros = nil }); err != nil {
		return nil, err
	}
	return s, nil
}

// loadCollection fills dst from the JSON stored under key, calling fallback
// when the key is absent or holds corrupt JSON.
func loadCollection[T any](kv KV, key string, dst *[]T, fallback func()) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		fallback()
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored %s are corrupt (%v), starting from defaults\n", key, err)
		fallback()
	}
	return nil
}

// Habits returns the habit list in insertion order.
func (s *Store) Habits() []Habit { return s.habits }

// Logs returns all completion logs.
func (s *Store) Logs() []HabitLog { return s.logs }

// Retrospectives returns saved retrospectives, newest first.
func (s *Store) Retrospectives() []Retrospective { return s.retros }

// HabitByID returns the habit with the given id, or false.
func (s *Store) HabitByID(id string) (Habit, bool) {
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// AddHabit validates and appends a new habit, returning it with a fresh id.
func (s *Store) AddHabit(name, description, color, icon string, target int, now time.Time) (Habit, error) {
	if name == "" {
		return Habit{}, fmt.Errorf("habit name is required")
	}
	if !ValidColor(color) {
		return Habit{}, fmt.Errorf("unknown color %q", color)
	}
	if !ValidIcon(icon) {
		return Habit{}, fmt.Errorf("unknown icon %q", icon)
	}
	if err := ValidateTarget(target); err != nil {
		return Habit{}, err
	}

	h := Habit{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     description,
		Color:           color,
		Icon:            icon,
		TargetFrequency: target,
		CreatedAt:       now,
	}
	s.habits = append(s.habits, h)
	return h, s.saveHabits()
}

// UpdateHabit replaces the stored habit with the same id.
func (s *Store) UpdateHabit(h Habit) error {
	if !ValidColor(h.Color) {
		return fmt.Errorf("unknown color %q", h.Color)
	}
	if !ValidIcon(h.Icon) {
		return fmt.Errorf("unknown icon %q", h.Icon)
	}
	if err := ValidateTarget(h.TargetFrequency); err != nil {
		return err
	}

	for i := range s.habits {
		if s.habits[i].ID == h.ID {
			s.habits[i] = h
			return s.saveHabits()
		}
	}
	return fmt.Errorf("habit %q not found", h.ID)
}

// DeleteHabit removes a habit and cascades deletion of all its logs.
// The two collections are persisted independently.
func (s *Store) DeleteHabit(id string) error {
	found := false
	habits := s.habits[:0]
	for _, h := range s.habits {
		if h.ID == id {
			found = true
			continue
		}
		habits = append(habits, h)
	}
	if !found {
		return fmt.Errorf("habit %q not found", id)
	}
	s.habits = habits

	logs := s.logs[:0]
	for _, l := range s.logs {
		if l.HabitID != id {
			logs = append(logs, l)
		}
	}
	s.logs = logs

	if err := s.saveHabits(); err != nil {
		return err
	}
	return s.saveLogs()
}

// Toggle flips completion of a habit on a calendar day and reports the new
// state. Marking creates a {completed: true} log; un-marking removes the
// entry entirely rather than persisting completed=false, so a third toggle
// recreates the log just like the first.
func (s *Store) Toggle(habitID, date string) (completed bool, err error) {
	if _, ok := s.HabitByID(habitID); !ok {
		return false, fmt.Errorf("habit %q not found", habitID)
	}

	for i, l := range s.logs {
		if l.HabitID != habitID || l.Date != date {
			continue
		}
		if l.Completed {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			return false, s.saveLogs()
		}
		// A stored completed=false row is legacy data; repair it in place.
		s.logs[i].Completed = true
		return true, s.saveLogs()
	}

	s.logs = append(s.logs, HabitLog{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		Date:      date,
		Completed: true,
	})
	return true, s.saveLogs()
}

// AddRetrospective prepends a new retrospective (newest first).
func (s *Store) AddRetrospective(r Retrospective, now time.Time) (Retrospective, error) {
	r.ID = uuid.NewString()
	r.CreatedAt = now
	s.retros = append([]Retrospective{r}, s.retros...)
	return r, s.saveRetros()
}

// DeleteRetrospective removes a retrospective by id.
func (s *Store) DeleteRetrospective(id string) error {
	for i, r := range s.retros {
		if r.ID == id {
			s.retros = append(s.retros[:i], s.retros[i+1:]...)
			return s.saveRetros()
		}
	}
	return fmt.Errorf("retrospective %q not found", id)
}

func (s *Store) saveHabits() error { return s.save(keyHabits, s.habits) }
func (s *Store) saveLogs() error   { return s.save(keyLogs, s.logs) }
func (s *Store) saveRetros() error { return s.save(keyRetros, s.retros) }

func (s *Store) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}
