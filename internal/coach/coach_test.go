package coach

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/habitflow/habitflow/internal/ai"
	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
)

// stubProvider records the last request and returns a canned response.
type stubProvider struct {
	lastReq *ai.Request
	content string
	err     error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req *ai.Request) (*ai.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Response{Content: s.content}, nil
}

func mustDate(s string) time.Time {
	t, err := dateutil.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testHabits() []habit.Habit {
	return []habit.Habit{
		{ID: "h1", Name: "Run", TargetFrequency: 3, Description: "morning jog", CreatedAt: mustDate("2024-01-01")},
	}
}

func TestAnalyze_ParsesResponse(t *testing.T) {
	p := &stubProvider{content: `{"summary":"Solid week.","tips":["a","b","c"],"motivation":"Keep going!"}`}

	got, err := Analyze(context.Background(), p, testHabits(), nil, mustDate("2024-03-15"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Summary != "Solid week." || len(got.Tips) != 3 || got.Motivation != "Keep going!" {
		t.Errorf("analysis = %+v", got)
	}
	if !p.lastReq.JSONResponse {
		t.Error("analysis request should ask for JSON")
	}
}

func TestAnalyze_PayloadContents(t *testing.T) {
	logs := []habit.HabitLog{
		{ID: "recent", HabitID: "h1", Date: "2024-03-10", Completed: true},
		{ID: "stale", HabitID: "h1", Date: "2024-02-01", Completed: true},
	}
	p := &stubProvider{content: `{"summary":"s","tips":["t"],"motivation":"m"}`}

	if _, err := Analyze(context.Background(), p, testHabits(), logs, mustDate("2024-03-15")); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	prompt := p.lastReq.Prompt
	if !strings.Contains(prompt, "2024-03-15") {
		t.Error("payload missing current date")
	}
	if !strings.Contains(prompt, `"Run"`) || !strings.Contains(prompt, `"target":3`) {
		t.Errorf("payload missing habit fields:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2024-03-10") {
		t.Error("recent log dropped from payload")
	}
	if strings.Contains(prompt, "2024-02-01") {
		t.Error("log older than the window leaked into payload")
	}
}

func TestAnalyze_MalformedResponse(t *testing.T) {
	for _, content := range []string{
		"not json at all",
		`{"summary":"","tips":[],"motivation":""}`,
		`{"tips":["a"]}`,
	} {
		p := &stubProvider{content: content}
		if _, err := Analyze(context.Background(), p, testHabits(), nil, mustDate("2024-03-15")); err == nil {
			t.Errorf("content %q should fail", content)
		}
	}
}

func TestAnalyze_StripsFences(t *testing.T) {
	p := &stubProvider{content: "```json\n{\"summary\":\"s\",\"tips\":[\"t\"],\"motivation\":\"m\"}\n```"}
	got, err := Analyze(context.Background(), p, testHabits(), nil, mustDate("2024-03-15"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Summary != "s" {
		t.Errorf("analysis = %+v", got)
	}
}

func TestSuggest(t *testing.T) {
	p := &stubProvider{content: `[
		{"name":"Walk","description":"d","targetFrequency":5},
		{"name":"Stretch","description":"d","targetFrequency":0},
		{"name":"Sleep early","description":"d","targetFrequency":9},
		{"name":"Extra","description":"d","targetFrequency":3}
	]`}

	got, err := Suggest(context.Background(), p, "be healthier")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want capped at 3", len(got))
	}
	if got[1].TargetFrequency != 1 || got[2].TargetFrequency != 7 {
		t.Errorf("target frequencies not clamped: %+v", got)
	}
	if !strings.Contains(p.lastReq.Prompt, "be healthier") {
		t.Error("goal missing from prompt")
	}
}

func TestSuggest_EmptyGoal(t *testing.T) {
	p := &stubProvider{content: `[]`}
	if _, err := Suggest(context.Background(), p, "  "); err == nil {
		t.Fatal("expected error for blank goal")
	}
}

func TestSuggest_NoSuggestions(t *testing.T) {
	p := &stubProvider{content: `[]`}
	if _, err := Suggest(context.Background(), p, "goal"); err == nil {
		t.Fatal("expected error for empty suggestion list")
	}
}

func TestRetrospective(t *testing.T) {
	p := &stubProvider{content: "## How the week went\nGood.\n"}
	habits := testHabits()
	logs := []habit.HabitLog{
		{ID: "1", HabitID: "h1", Date: "2024-03-12", Completed: true},
	}

	got, err := Retrospective(context.Background(), p, dateutil.Weekly, "2024-03-11", "2024-03-17", habits, logs)
	if err != nil {
		t.Fatalf("Retrospective: %v", err)
	}
	if !strings.HasPrefix(got, "## How the week went") {
		t.Errorf("content = %q", got)
	}

	prompt := p.lastReq.Prompt
	for _, want := range []string{"## Wins", "## What got in the way", `"completed":1`, "2024-03-11", "2024-03-17"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestRetrospective_MonthlyLabel(t *testing.T) {
	p := &stubProvider{content: "ok"}
	if _, err := Retrospective(context.Background(), p, dateutil.Monthly, "2024-03-01", "2024-03-31", testHabits(), nil); err != nil {
		t.Fatalf("Retrospective: %v", err)
	}
	if !strings.Contains(p.lastReq.Prompt, "month") {
		t.Error("monthly prompt should say month")
	}
}

func TestRetrospective_EmptyResponse(t *testing.T) {
	p := &stubProvider{content: "   \n"}
	if _, err := Retrospective(context.Background(), p, dateutil.Weekly, "2024-03-11", "2024-03-17", testHabits(), nil); err == nil {
		t.Fatal("expected error for empty retrospective")
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"plain":                     "plain",
		"```json\n{\"a\":1}\n```":   `{"a":1}`,
		"```\n[1,2]\n```":           "[1,2]",
		"  {\"a\":1}  ":             `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
