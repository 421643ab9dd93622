package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/spf13/cobra"
)

// Flags for habit commands.
var (
	habitAddDesc   string
	habitAddColor  string
	habitAddIcon   string
	habitAddTarget int

	habitEditName   string
	habitEditDesc   string
	habitEditColor  string
	habitEditIcon   string
	habitEditTarget int

	habitRmYes bool
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage your habits",
	RunE:  runHabitList,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit to track",
	Long: `Add a habit with an optional description, color, icon, and weekly target.

Examples:
  habitflow habit add "Drink 2L of water" --target 7 --color blue --icon droplets
  habitflow habit add "Morning run" --target 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all habits with streaks",
	RunE:  runHabitList,
}

var habitEditCmd = &cobra.Command{
	Use:   "edit <habit>",
	Short: "Change a habit's name, target, color, or icon",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitEdit,
}

var habitRmCmd = &cobra.Command{
	Use:     "rm <habit>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a habit and all its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitRm,
}

func init() {
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitEditCmd)
	habitCmd.AddCommand(habitRmCmd)

	habitAddCmd.Flags().StringVar(&habitAddDesc, "desc", "", "Short description")
	habitAddCmd.Flags().StringVar(&habitAddColor, "color", "indigo", "Color tag ("+strings.Join(habit.Colors, ", ")+")")
	habitAddCmd.Flags().StringVar(&habitAddIcon, "icon", "zap", "Icon tag ("+strings.Join(habit.Icons, ", ")+")")
	habitAddCmd.Flags().IntVar(&habitAddTarget, "target", 7, "Target completions per week (1-7)")

	habitEditCmd.Flags().StringVar(&habitEditName, "name", "", "New name")
	habitEditCmd.Flags().StringVar(&habitEditDesc, "desc", "", "New description")
	habitEditCmd.Flags().StringVar(&habitEditColor, "color", "", "New color tag")
	habitEditCmd.Flags().StringVar(&habitEditIcon, "icon", "", "New icon tag")
	habitEditCmd.Flags().IntVar(&habitEditTarget, "target", 0, "New weekly target (1-7)")

	habitRmCmd.Flags().BoolVarP(&habitRmYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runHabitAdd(_ *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := hs.AddHabit(name, habitAddDesc, habitAddColor, habitAddIcon, habitAddTarget, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("  %s Habit added %s\n", ui.Success.Render("✓"), ui.HabitStyle(h.Color).Render(h.Name))
	fmt.Printf("    Target: %s\n", ui.Muted.Render(fmt.Sprintf("%d×/week", h.TargetFrequency)))
	fmt.Println()
	return nil
}

func runHabitList(_ *cobra.Command, _ []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	habits := hs.Habits()
	if len(habits) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No habits yet."))
		fmt.Printf("  Add one: %s\n", ui.Accent.Render(`habitflow habit add "Drink water" --target 7`))
		fmt.Println()
		return nil
	}

	now := time.Now()
	today := dateToday()

	fmt.Println()
	for i, h := range habits {
		idx := ui.Muted.Render(fmt.Sprintf("#%-2d", i+1))
		name := ui.HabitStyle(h.Color).Render(h.Name)

		marker := ui.Muted.Render("·")
		if habit.CompletedOn(hs.Logs(), h.ID, today) {
			marker = ui.Success.Render("✓")
		}

		line := fmt.Sprintf("  %s %s %s", idx, marker, name)
		if streak := habit.StreakFor(hs.Logs(), h.ID, now); streak > 0 {
			line += ui.Warning.Render(fmt.Sprintf(" %s%d", ui.IconFire, streak))
		}
		line += ui.Muted.Render(fmt.Sprintf("  %d×/wk", h.TargetFrequency))
		fmt.Println(line)

		if h.Description != "" {
			fmt.Println(ui.Muted.Render("       " + h.Description))
		}
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d habit(s)", len(habits))))
	fmt.Println()
	return nil
}

func runHabitEdit(_ *cobra.Command, args []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := findHabit(hs, args[0])
	if err != nil {
		return err
	}

	changed := false
	if habitEditName != "" {
		h.Name = habitEditName
		changed = true
	}
	if habitEditDesc != "" {
		h.Description = habitEditDesc
		changed = true
	}
	if habitEditColor != "" {
		h.Color = habitEditColor
		changed = true
	}
	if habitEditIcon != "" {
		h.Icon = habitEditIcon
		changed = true
	}
	if habitEditTarget != 0 {
		h.TargetFrequency = habitEditTarget
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change — pass --name, --desc, --color, --icon, or --target")
	}

	if err := hs.UpdateHabit(h); err != nil {
		return err
	}

	fmt.Printf("  %s Updated %s\n", ui.Success.Render("✓"), ui.HabitStyle(h.Color).Render(h.Name))
	fmt.Println()
	return nil
}

func runHabitRm(_ *cobra.Command, args []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := findHabit(hs, args[0])
	if err != nil {
		return err
	}

	if !habitRmYes {
		if !confirmPrompt(fmt.Sprintf("Delete %q and all its history?", h.Name)) {
			fmt.Println(ui.Muted.Render("  Cancelled."))
			return nil
		}
	}

	if err := hs.DeleteHabit(h.ID); err != nil {
		return err
	}

	fmt.Printf("  %s Deleted %s\n", ui.Success.Render("✓"), ui.Muted.Render(h.Name))
	fmt.Println()
	return nil
}
