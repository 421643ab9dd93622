package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/habitflow/habitflow/internal/coach"
	"github.com/habitflow/habitflow/internal/config"
	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/spf13/cobra"
)

var (
	retroNewMonth bool
	retroNewDate  string
	retroNewYes   bool
	retroRmYes    bool
)

var retroCmd = &cobra.Command{
	Use:   "retro",
	Short: "AI-written weekly and monthly reviews",
	RunE:  runRetroList,
}

var retroNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a review for the current week (or month)",
	Long: `Generate a retrospective from your completion data and save it.

Examples:
  habitflow retro new
  habitflow retro new --month
  habitflow retro new --date 2024-02-15 --month`,
	RunE: runRetroNew,
}

var retroListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved retrospectives, newest first",
	RunE:  runRetroList,
}

var retroShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Show a retrospective from the list",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetroShow,
}

var retroRmCmd = &cobra.Command{
	Use:     "rm <n>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a retrospective",
	Args:    cobra.ExactArgs(1),
	RunE:    runRetroRm,
}

var retroExportCmd = &cobra.Command{
	Use:   "export <n>",
	Short: "Write a retrospective to a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRetroExport,
}

func init() {
	retroCmd.AddCommand(retroNewCmd)
	retroCmd.AddCommand(retroListCmd)
	retroCmd.AddCommand(retroShowCmd)
	retroCmd.AddCommand(retroRmCmd)
	retroCmd.AddCommand(retroExportCmd)

	retroNewCmd.Flags().BoolVar(&retroNewMonth, "month", false, "Review the month instead of the week")
	retroNewCmd.Flags().StringVar(&retroNewDate, "date", "", "Anchor day (YYYY-MM-DD, default today)")
	retroNewCmd.Flags().BoolVarP(&retroNewYes, "yes", "y", false, "Save without asking")
	retroRmCmd.Flags().BoolVarP(&retroRmYes, "yes", "y", false, "Skip the confirmation prompt")
}

// findRetro resolves the 1-based position shown by `habitflow retro list`.
func findRetro(hs *habit.Store, ref string) (habit.Retrospective, error) {
	retros := hs.Retrospectives()
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(retros) {
		return habit.Retrospective{}, fmt.Errorf("no retrospective #%s — use %s to see the list",
			ref, ui.Accent.Render("habitflow retro list"))
	}
	return retros[n-1], nil
}

func retroTitle(r habit.Retrospective) string {
	label := "Week"
	if r.Period == dateutil.Monthly {
		label = "Month"
	}
	return fmt.Sprintf("%s %s to %s", label, r.StartDate, r.EndDate)
}

func runRetroNew(_ *cobra.Command, _ []string) error {
	date, err := resolveDate(retroNewDate)
	if err != nil {
		return err
	}
	anchor, err := dateutil.ParseDay(date)
	if err != nil {
		return err
	}

	period := dateutil.Weekly
	start, end := dateutil.WeekRange(anchor)
	if retroNewMonth {
		period = dateutil.Monthly
		start, end = dateutil.MonthRange(anchor)
	}

	p, err := coachProvider()
	if err != nil {
		return err
	}

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(hs.Habits()) == 0 {
		return fmt.Errorf("no habits to review — add one first")
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  " + ui.IconRetro + " Writing your review..."))

	ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
	defer cancel()

	content, err := coach.Retrospective(ctx, p, period, start, end, hs.Habits(), hs.Logs())
	if err != nil {
		return err
	}

	fmt.Println()
	if err := printMarkdown(content); err != nil {
		return err
	}
	fmt.Println()

	if !retroNewYes && !confirmPrompt("Save this retrospective?") {
		fmt.Println(ui.Muted.Render("  Discarded."))
		return nil
	}

	r, err := hs.AddRetrospective(habit.Retrospective{
		Period:    period,
		StartDate: start,
		EndDate:   end,
		Content:   content,
	}, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("  %s Saved %s\n", ui.Success.Render("✓"), ui.Accent.Render(retroTitle(r)))
	fmt.Println()
	return nil
}

func runRetroList(_ *cobra.Command, _ []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	retros := hs.Retrospectives()

	fmt.Println()
	fmt.Println(ui.Title.Render("  " + ui.IconRetro + " Retrospectives"))
	fmt.Println()

	if len(retros) == 0 {
		fmt.Println(ui.Muted.Render("  None yet."))
		fmt.Printf("  Generate one: %s\n", ui.Accent.Render("habitflow retro new"))
		fmt.Println()
		return nil
	}

	for i, r := range retros {
		idx := ui.Muted.Render(fmt.Sprintf("#%-2d", i+1))
		created := ui.Muted.Render(r.CreatedAt.Format("Jan 2 2006"))
		fmt.Printf("  %s %s %s\n", idx, ui.KeyStyle.Render(retroTitle(r)), created)
	}
	fmt.Println()
	return nil
}

func runRetroShow(_ *cobra.Command, args []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := findRetro(hs, args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  " + ui.IconRetro + " " + retroTitle(r)))
	fmt.Println()
	return printMarkdown(r.Content)
}

func runRetroRm(_ *cobra.Command, args []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := findRetro(hs, args[0])
	if err != nil {
		return err
	}

	if !retroRmYes {
		if !confirmPrompt(fmt.Sprintf("Delete the review for %s?", retroTitle(r))) {
			fmt.Println(ui.Muted.Render("  Cancelled."))
			return nil
		}
	}

	if err := hs.DeleteRetrospective(r.ID); err != nil {
		return err
	}
	fmt.Printf("  %s Deleted %s\n", ui.Success.Render("✓"), ui.Muted.Render(retroTitle(r)))
	fmt.Println()
	return nil
}

func runRetroExport(_ *cobra.Command, args []string) error {
	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := findRetro(hs, args[0])
	if err != nil {
		return err
	}

	name := habit.RetroFilename(dateutil.DayString(r.CreatedAt), r.Period)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Habits.ExportDir != "" {
		name = filepath.Join(cfg.Habits.ExportDir, name)
	}

	if err := os.WriteFile(name, []byte(r.Content), 0o644); err != nil {
		return fmt.Errorf("writing retrospective: %w", err)
	}

	fmt.Printf("  %s Written to %s\n", ui.Success.Render("✓"), ui.Accent.Render(name))
	fmt.Println()
	return nil
}

// printMarkdown renders through glamour when the config and terminal allow
// it, plain text otherwise.
func printMarkdown(content string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.UI.RenderMarkdown() && ui.IsStdoutTTY() {
		fmt.Println(ui.RenderMarkdown(content))
		return nil
	}
	fmt.Println(content)
	return nil
}
