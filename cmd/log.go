package cmd

import (
	"fmt"
	"time"

	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/tui"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doneDate   string
	undoneDate string
	dayDate    string
)

var doneCmd = &cobra.Command{
	Use:   "done <habit>",
	Short: "Mark a habit done for a day",
	Long: `Mark a habit completed. Defaults to today; use --date for backfill.

Examples:
  habitflow done water
  habitflow done 2 --date 2024-03-14`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var undoneCmd = &cobra.Command{
	Use:   "undone <habit>",
	Short: "Un-mark a habit for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndone,
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Interactive checklist for a day",
	RunE:  runDay,
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "Day to mark (YYYY-MM-DD, default today)")
	undoneCmd.Flags().StringVar(&undoneDate, "date", "", "Day to un-mark (YYYY-MM-DD, default today)")
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Day to review (YYYY-MM-DD, default today)")
}

func runDone(_ *cobra.Command, args []string) error {
	return toggleTo(args[0], doneDate, true)
}

func runUndone(_ *cobra.Command, args []string) error {
	return toggleTo(args[0], undoneDate, false)
}

// toggleTo drives the habit to the wanted completion state for a day.
// Already being in that state is not an error, just a note.
func toggleTo(ref, dateFlag string, want bool) error {
	date, err := resolveDate(dateFlag)
	if err != nil {
		return err
	}

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := findHabit(hs, ref)
	if err != nil {
		return err
	}

	if habit.CompletedOn(hs.Logs(), h.ID, date) == want {
		state := "already done"
		if !want {
			state = "not marked"
		}
		fmt.Printf("  %s %s was %s on %s\n", ui.Muted.Render(ui.IconDot), h.Name, state, date)
		return nil
	}

	completed, err := hs.Toggle(h.ID, date)
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("  %s %s done on %s\n", ui.Success.Render("✓"), ui.HabitStyle(h.Color).Render(h.Name), date)
		if streak := habit.StreakFor(hs.Logs(), h.ID, time.Now()); streak > 1 {
			fmt.Printf("    %s %d day streak!\n", ui.IconFire, streak)
		}
	} else {
		fmt.Printf("  %s %s un-marked on %s\n", ui.Warning.Render("↺"), h.Name, date)
	}
	fmt.Println()
	return nil
}

func runDay(_ *cobra.Command, _ []string) error {
	date, err := resolveDate(dayDate)
	if err != nil {
		return err
	}

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	habits := hs.Habits()
	done := make(map[string]bool, len(habits))
	streaks := make(map[string]int, len(habits))
	now := time.Now()
	for _, h := range habits {
		done[h.ID] = habit.CompletedOn(hs.Logs(), h.ID, date)
		streaks[h.ID] = habit.StreakFor(hs.Logs(), h.ID, now)
	}

	actions, err := tui.RunDay(date, habits, done, streaks)
	if err != nil {
		return err
	}

	for _, a := range actions {
		switch a.Type {
		case "toggle":
			if _, err := hs.Toggle(a.HabitID, date); err != nil {
				return err
			}
		case "delete":
			if err := hs.DeleteHabit(a.HabitID); err != nil {
				return err
			}
		}
	}

	if len(actions) > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d change(s) saved for %s", len(actions), date)))
	}
	return nil
}
