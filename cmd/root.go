package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/config"
	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/store"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/habitflow/habitflow/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habitflow",
	Short: "Track habits, build streaks, get coached",
	Long:  `habitflow — a local habit tracker with streaks, stats, and an AI coach.`,
	RunE:  runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(retroCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the database and loads the habit collections.
// Callers own closing the returned DB.
func openStore() (*store.DB, *habit.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	hs, err := habit.Load(db, time.Now())
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("loading habits: %w", err)
	}
	return db, hs, nil
}

// findHabit resolves a CLI habit reference: the 1-based position shown by
// `habitflow habit list`, an exact id, or a unique case-insensitive name
// prefix.
func findHabit(hs *habit.Store, ref string) (habit.Habit, error) {
	habits := hs.Habits()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(habits) {
			return habit.Habit{}, fmt.Errorf("no habit #%d — use %s to see the list",
				n, ui.Accent.Render("habitflow habit list"))
		}
		return habits[n-1], nil
	}

	if h, ok := hs.HabitByID(ref); ok {
		return h, nil
	}

	q := strings.ToLower(ref)
	var matches []habit.Habit
	for _, h := range habits {
		if strings.HasPrefix(strings.ToLower(h.Name), q) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return habit.Habit{}, fmt.Errorf("no habit matching %q — use %s to see the list",
			ref, ui.Accent.Render("habitflow habit list"))
	default:
		names := make([]string, len(matches))
		for i, h := range matches {
			names[i] = h.Name
		}
		return habit.Habit{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

// dateToday returns today's calendar day string.
func dateToday() string {
	return dateutil.DayString(time.Now())
}

// resolveDate turns a --date flag into a YYYY-MM-DD string, defaulting to
// today.
func resolveDate(flag string) (string, error) {
	if flag == "" {
		return dateutil.DayString(time.Now()), nil
	}
	if _, err := dateutil.ParseDay(flag); err != nil {
		return "", fmt.Errorf("invalid date %q — expected %s", flag, ui.Accent.Render("YYYY-MM-DD"))
	}
	return flag, nil
}

// confirmPrompt asks a yes/no question on stdin.
func confirmPrompt(question string) bool {
	fmt.Printf("  %s [y/N] ", question)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// runDashboard shows the at-a-glance status when you just type `habitflow`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println()

	now := time.Now()
	today := dateutil.DayString(now)

	habits := hs.Habits()
	completed := 0
	for _, h := range habits {
		if habit.CompletedOn(hs.Logs(), h.ID, today) {
			completed++
		}
	}
	ui.Kv(ui.IconHabit+" Today", fmt.Sprintf("%d/%d habits done", completed, len(habits)))

	if best, n, ok := habit.BestStreak(habits, hs.Logs(), now); ok {
		ui.Kv(ui.IconFire+" Streak", fmt.Sprintf("%d day streak on %s", n, best.Name))
	}

	ui.Kv("📅 Date", now.Format("Monday, January 2"))
	ui.Kv("⚙️  Version", version.Short())

	if completed < len(habits) {
		ui.Tip("`habitflow day` to check off today's habits.")
	} else if len(habits) > 0 {
		ui.Tip("All done for today! `habitflow stats` to admire the week.")
	} else {
		ui.Tip("`habitflow habit add \"Drink water\"` to start tracking.")
	}

	fmt.Println()
	return nil
}
