package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/habitflow/habitflow/internal/ai"
	"github.com/habitflow/habitflow/internal/coach"
	"github.com/habitflow/habitflow/internal/config"
	"github.com/habitflow/habitflow/internal/ui"
	"github.com/spf13/cobra"
)

const coachTimeout = 2 * time.Minute

var (
	coachConfigProvider string
	coachConfigKey      string
	coachConfigModel    string
	coachConfigList     bool
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "AI coaching on your habit data",
	Long: `Ask the configured AI provider to look at your habits and recent logs.

Examples:
  habitflow coach
  habitflow coach suggest "sleep better"
  habitflow coach config --provider gemini --key AIza...`,
	RunE: runCoachAnalyze,
}

var coachSuggestCmd = &cobra.Command{
	Use:   "suggest <goal>",
	Short: "Get habit suggestions for a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCoachSuggest,
}

var coachConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Set up the AI provider and API key",
	RunE:  runCoachConfig,
}

func init() {
	coachCmd.AddCommand(coachSuggestCmd)
	coachCmd.AddCommand(coachConfigCmd)

	coachConfigCmd.Flags().StringVarP(&coachConfigProvider, "provider", "p", "", "Provider name (gemini, claude)")
	coachConfigCmd.Flags().StringVarP(&coachConfigKey, "key", "k", "", "API key")
	coachConfigCmd.Flags().StringVar(&coachConfigModel, "model", "", "Default model")
	coachConfigCmd.Flags().BoolVarP(&coachConfigList, "list", "l", false, "List configured providers")
}

// coachProvider resolves the configured provider, with a setup tip when no
// key is available.
func coachProvider() (ai.Provider, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	p, err := ai.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w\n  Set one up: %s", err,
			ui.Accent.Render("habitflow coach config --provider gemini --key <key>"))
	}
	return p, nil
}

func runCoachAnalyze(_ *cobra.Command, _ []string) error {
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
		return fmt.Errorf("no habits to analyze — add one first")
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  " + ui.IconCoach + " Thinking..."))

	ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
	defer cancel()

	analysis, err := coach.Analyze(ctx, p, hs.Habits(), hs.Logs(), time.Now())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  " + ui.IconCoach + " Coach"))
	fmt.Println()
	fmt.Println("  " + analysis.Summary)
	fmt.Println()
	for _, tip := range analysis.Tips {
		fmt.Printf("  %s %s\n", ui.Accent.Render(ui.IconArrow), tip)
	}
	fmt.Println()
	fmt.Println(ui.Subtitle.Render("  " + analysis.Motivation))
	fmt.Println()
	return nil
}

func runCoachSuggest(_ *cobra.Command, args []string) error {
	goal := strings.Join(args, " ")

	p, err := coachProvider()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  " + ui.IconCoach + " Thinking..."))

	ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
	defer cancel()

	suggestions, err := coach.Suggest(ctx, p, goal)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  " + ui.IconCoach + " Suggestions for: " + goal))
	fmt.Println()
	for _, s := range suggestions {
		fmt.Printf("  %s %s %s\n", ui.Accent.Render(ui.IconDot),
			ui.KeyStyle.Render(s.Name),
			ui.Muted.Render(fmt.Sprintf("%d×/week", s.TargetFrequency)))
		if s.Description != "" {
			fmt.Println(ui.Muted.Render("     " + s.Description))
		}
	}
	fmt.Println()
	ui.Tip(`habitflow habit add "<name>" --target N to start one.`)
	fmt.Println()
	return nil
}

func runCoachConfig(_ *cobra.Command, _ []string) error {
	if coachConfigList {
		return listCoachProviders()
	}

	if coachConfigProvider == "" {
		return fmt.Errorf("--provider is required (use --list to see configured providers)")
	}

	if coachConfigKey != "" {
		ks, err := ai.NewKeystore()
		if err != nil {
			return err
		}
		if err := ks.Set(coachConfigProvider, coachConfigKey); err != nil {
			return fmt.Errorf("storing API key: %w", err)
		}
		fmt.Println()
		fmt.Printf("  %s API key stored for %s\n", ui.IconOk, ui.Accent.Render(coachConfigProvider))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.AI.Provider = coachConfigProvider
	if coachConfigModel != "" {
		cfg.AI.Model = coachConfigModel
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("  %s Default provider set to %s\n", ui.IconOk, ui.Accent.Render(cfg.AI.Provider))
	if cfg.AI.Model != "" {
		fmt.Printf("  %s Default model: %s\n", ui.IconOk, ui.Muted.Render(cfg.AI.Model))
	}
	fmt.Println()
	return nil
}

func listCoachProviders() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ks, err := ai.NewKeystore()
	if err != nil {
		return err
	}
	stored, err := ks.List()
	if err != nil {
		return err
	}
	hasKey := make(map[string]bool, len(stored))
	for _, p := range stored {
		hasKey[p] = true
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  AI Providers"))
	fmt.Println()

	defaultName := cfg.AI.Provider
	if defaultName == "" {
		defaultName = "gemini"
	}

	for _, name := range ai.ListProviders() {
		marker := "  "
		if name == defaultName {
			marker = ui.Success.Render("✓ ")
		}

		status := ui.Muted.Render("no key")
		if _, err := ai.ResolveKey(name); err == nil {
			if hasKey[name] {
				status = ui.Success.Render("key in keystore")
			} else {
				status = ui.Success.Render("key from environment")
			}
		}

		fmt.Printf("%s %s %s\n", marker, ui.KeyStyle.Render(name), status)
		if name == defaultName && cfg.AI.Model != "" {
			fmt.Printf("     %s\n", ui.Muted.Render("model: "+cfg.AI.Model))
		}
	}
	fmt.Println()
	return nil
}
