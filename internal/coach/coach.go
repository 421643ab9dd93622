// Package coach builds the AI coaching payloads and parses the structured
// responses. It is transport-agnostic: callers inject an ai.Provider, so
// tests run against a stub.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/ai"
	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
)

// recentLogDays bounds how much completion history goes into the
// analysis payload.
const recentLogDays = 14

// Analysis is the structured habit analysis returned by the provider.
type Analysis struct {
	Summary    string   `json:"summary"`
	Tips       []string `json:"tips"`
	Motivation string   `json:"motivation"`
}

// Suggestion is one AI-proposed habit.
type Suggestion struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	TargetFrequency int    `json:"targetFrequency"`
}

type analyzePayload struct {
	CurrentDate string           `json:"currentDate"`
	Habits      []payloadHabit   `json:"habits"`
	RecentLogs  []habit.HabitLog `json:"recentLogs"`
}

type payloadHabit struct {
	Name        string `json:"name"`
	Target      int    `json:"target"`
	Description string `json:"description,omitempty"`
}

// Analyze sends the habit list and the last two weeks of logs to the
// provider and returns its structured assessment.
func Analyze(ctx context.Context, p ai.Provider, habits []habit.Habit, logs []habit.HabitLog, now time.Time) (*Analysis, error) {
	payload := analyzePayload{
		CurrentDate: dateutil.DayString(now),
		Habits:      toPayloadHabits(habits),
		RecentLogs:  recentLogs(logs, now),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis payload: %w", err)
	}

	req := ai.NewRequest(fmt.Sprintf(
		"Analyze this habit tracking data and return JSON with keys "+
			"\"summary\" (string), \"tips\" (array of exactly 3 short actionable strings), "+
			"and \"motivation\" (one encouraging sentence).\n\nData:\n%s", data))
	req.System = "You are an encouraging but honest habit coach."
	req.JSONResponse = true

	resp, err := p.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var out Analysis
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &out); err != nil {
		return nil, fmt.Errorf("parsing analysis response: %w", err)
	}
	if out.Summary == "" || len(out.Tips) == 0 || out.Motivation == "" {
		return nil, fmt.Errorf("analysis response missing required fields")
	}
	return &out, nil
}

// Suggest asks the provider for up to three habits matching a goal.
func Suggest(ctx context.Context, p ai.Provider, goal string) ([]Suggestion, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, fmt.Errorf("a goal is required")
	}

	req := ai.NewRequest(fmt.Sprintf(
		"Suggest exactly 3 concrete daily-trackable habits for this goal: %q. "+
			"Return a JSON array of objects with keys \"name\" (short), "+
			"\"description\" (one sentence), and \"targetFrequency\" "+
			"(integer 1-7, times per week).", goal))
	req.System = "You are a habit coach helping someone design a sustainable routine."
	req.JSONResponse = true

	resp, err := p.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &out); err != nil {
		return nil, fmt.Errorf("parsing suggestions: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("provider returned no suggestions")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	for i := range out {
		if out[i].TargetFrequency < 1 {
			out[i].TargetFrequency = 1
		}
		if out[i].TargetFrequency > 7 {
			out[i].TargetFrequency = 7
		}
	}
	return out, nil
}

// Retrospective generates the markdown review for a completed period.
// The provider must follow the fixed section outline so saved
// retrospectives render consistently.
func Retrospective(ctx context.Context, p ai.Provider, period dateutil.Period, start, end string, habits []habit.Habit, logs []habit.HabitLog) (string, error) {
	stats := habit.RangeStats(habits, logs, start, end)
	data, err := json.Marshal(map[string]any{
		"period":    period,
		"startDate": start,
		"endDate":   end,
		"habits":    stats,
	})
	if err != nil {
		return "", fmt.Errorf("encoding retrospective payload: %w", err)
	}

	label := "week"
	if period == dateutil.Monthly {
		label = "month"
	}

	req := ai.NewRequest(fmt.Sprintf(
		"Write a retrospective of my %s in markdown using exactly these sections:\n"+
			"## How the %s went\n## Wins\n## What got in the way\n## Intentions for the next %s\n\n"+
			"Base it only on this data. Be specific about completion counts versus targets.\n\nData:\n%s",
		label, label, label, data))
	req.System = "You are a thoughtful habit coach writing a personal review."

	resp, err := p.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(stripFences(resp.Content))
	if content == "" {
		return "", fmt.Errorf("provider returned an empty retrospective")
	}
	return content, nil
}

func toPayloadHabits(habits []habit.Habit) []payloadHabit {
	out := make([]payloadHabit, 0, len(habits))
	for _, h := range habits {
		out = append(out, payloadHabit{
			Name:        h.Name,
			Target:      h.TargetFrequency,
			Description: h.Description,
		})
	}
	return out
}

// recentLogs keeps completed logs from the trailing window, newest data
// only. Fixed-width date strings compare chronologically.
func recentLogs(logs []habit.HabitLog, now time.Time) []habit.HabitLog {
	cutoff := dateutil.DayString(now.AddDate(0, 0, -recentLogDays))
	out := make([]habit.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.Date >= cutoff {
			out = append(out, l)
		}
	}
	return out
}

// stripFences removes a ```json ... ``` wrapper some models insist on
// adding even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
