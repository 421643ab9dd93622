package cmd

import (
	"testing"
	"time"

	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
)

func TestRetroTitle(t *testing.T) {
	weekly := habit.Retrospective{Period: dateutil.Weekly, StartDate: "2024-03-11", EndDate: "2024-03-17"}
	if got := retroTitle(weekly); got != "Week 2024-03-11 to 2024-03-17" {
		t.Errorf("got %q", got)
	}

	monthly := habit.Retrospective{Period: dateutil.Monthly, StartDate: "2024-03-01", EndDate: "2024-03-31"}
	if got := retroTitle(monthly); got != "Month 2024-03-01 to 2024-03-31" {
		t.Errorf("got %q", got)
	}
}

func TestFindRetro(t *testing.T) {
	hs := testStore(t)

	first, err := hs.AddRetrospective(habit.Retrospective{
		Period:    dateutil.Weekly,
		StartDate: "2024-03-04",
		EndDate:   "2024-03-10",
		Content:   "## How the week went",
	}, time.Now())
	if err != nil {
		t.Fatalf("AddRetrospective: %v", err)
	}
	second, err := hs.AddRetrospective(habit.Retrospective{
		Period:    dateutil.Weekly,
		StartDate: "2024-03-11",
		EndDate:   "2024-03-17",
		Content:   "## How the week went",
	}, time.Now())
	if err != nil {
		t.Fatalf("AddRetrospective: %v", err)
	}

	// Newest first, so #1 is the most recently added.
	got, err := findRetro(hs, "1")
	if err != nil {
		t.Fatalf("findRetro: %v", err)
	}
	if got.ID != second.ID {
		t.Error("#1 should be the newest retrospective")
	}

	got, err = findRetro(hs, "2")
	if err != nil {
		t.Fatalf("findRetro: %v", err)
	}
	if got.ID != first.ID {
		t.Error("#2 should be the older retrospective")
	}

	for _, bad := range []string{"0", "3", "abc"} {
		if _, err := findRetro(hs, bad); err == nil {
			t.Errorf("findRetro(%q) should fail", bad)
		}
	}
}
