package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/config"
	"github.com/habitflow/habitflow/internal/dateutil"
	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statsMonth  bool
	statsDate   string
	statsExport bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly chart or monthly calendar of completions",
	Long: `Show the completion matrix for the current week, or the monthly
calendar with --month. --export writes the period's report as markdown.

Examples:
  habitflow stats
  habitflow stats --month --date 2024-02-15
  habitflow stats --export`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsMonth, "month", false, "Show the monthly calendar instead of the week")
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Anchor day (YYYY-MM-DD, default today)")
	statsCmd.Flags().BoolVar(&statsExport, "export", false, "Write the period report to a markdown file")
}

func runStats(_ *cobra.Command, _ []string) error {
	date, err := resolveDate(statsDate)
	if err != nil {
		return err
	}
	anchor, err := dateutil.ParseDay(date)
	if err != nil {
		return err
	}

	db, hs, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	habits := hs.Habits()
	logs := hs.Logs()
	now := time.Now()

	var start, end string
	if statsMonth {
		start, end = dateutil.MonthRange(anchor)
		renderMonth(habits, logs, anchor, now)
	} else {
		start, end = dateutil.WeekRange(anchor)
		renderWeek(habits, logs, anchor)
	}

	if statsExport {
		return exportStats(habits, logs, start, end, now)
	}
	return nil
}

// renderWeek prints the Sunday-first completion matrix for the week.
func renderWeek(habits []habit.Habit, logs []habit.HabitLog, anchor time.Time) {
	days := habit.WeekData(habits, logs, anchor)

	fmt.Println()
	ui.Puts(ui.Title.Render("  " + ui.IconStats + " This Week"))
	fmt.Println()

	if len(habits) == 0 {
		fmt.Println(ui.Muted.Render("  No habits to chart."))
		fmt.Println()
		return
	}

	for _, d := range days {
		bar := ""
		for _, h := range habits {
			if d.Completed[h.ID] {
				bar += ui.HabitStyle(h.Color).Render("█")
			} else {
				bar += ui.Muted.Render("░")
			}
		}
		count := ui.Muted.Render(fmt.Sprintf(" %d/%d", d.Total, len(habits)))
		fmt.Printf("  %s %s %s%s\n", ui.Subtitle.Render(d.Label), ui.Muted.Render(d.Date), bar, count)
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  one block per habit, in list order"))
	fmt.Println()
}

// renderMonth prints the Sunday-first calendar of daily completion ratios.
func renderMonth(habits []habit.Habit, logs []habit.HabitLog, anchor, now time.Time) {
	cells := habit.MonthData(habits, logs, anchor, now)

	fmt.Println()
	ui.Puts(ui.Title.Render("  " + ui.IconStats + " " + anchor.Format("January 2006")))
	fmt.Println()
	fmt.Println(ui.Muted.Render("   Su  Mo  Tu  We  Th  Fr  Sa"))

	var row strings.Builder
	row.WriteString("  ")
	for i, c := range cells {
		row.WriteString(renderMonthCell(c))
		if (i+1)%7 == 0 {
			fmt.Println(row.String())
			row.Reset()
			row.WriteString("  ")
		}
	}
	if strings.TrimSpace(row.String()) != "" {
		fmt.Println(row.String())
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  dim = future or no habits yet, shading = completion"))
	fmt.Println()
}

func renderMonthCell(c habit.MonthCell) string {
	if c.Day == 0 {
		return "    "
	}
	label := fmt.Sprintf("%3d ", c.Day)
	switch {
	case c.Future:
		return ui.Muted.Render(label)
	case c.Active == 0:
		return ui.Muted.Render(label)
	case c.Ratio >= 1:
		return ui.Success.Bold(true).Render(label)
	case c.Ratio >= 0.5:
		return ui.Success.Render(label)
	case c.Ratio > 0:
		return ui.Warning.Render(label)
	default:
		return ui.Error.Render(label)
	}
}

// exportStats writes the period's markdown report next to the configured
// export directory (or the working directory).
func exportStats(habits []habit.Habit, logs []habit.HabitLog, start, end string, now time.Time) error {
	report := habit.StatsReport(habits, logs, start, end, now)
	name := habit.StatsFilename(start, end)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Habits.ExportDir != "" {
		name = filepath.Join(cfg.Habits.ExportDir, name)
	}

	if err := os.WriteFile(name, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("  %s Report written to %s\n", ui.Success.Render("✓"), ui.Accent.Render(name))
	fmt.Println()
	return nil
}
