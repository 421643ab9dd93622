package ui

import "github.com/charmbracelet/lipgloss"

// habitflow's color palette: indigo core with fresh greens and warm accents.
var (
	// Primary colors
	Indigo  = lipgloss.Color("#6366F1")
	Violet  = lipgloss.Color("#8B5CF6")
	Emerald = lipgloss.Color("#10B981")
	Amber   = lipgloss.Color("#F59E0B")
	Rose    = lipgloss.Color("#F43F5E")
	Sky     = lipgloss.Color("#0EA5E9")
	Slate   = lipgloss.Color("#64748B")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")
	Subtle  = lipgloss.Color("#AAAAAA")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	Subtitle = lipgloss.NewStyle().
			Foreground(Violet)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Violet).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Violet).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Icon constants for a consistent emoji language.
const (
	IconHabit  = "🌱"
	IconDone   = "✅"
	IconMissed = "⬜"
	IconFire   = "🔥"
	IconStar   = "⭐"
	IconCoach  = "💡"
	IconRetro  = "📝"
	IconStats  = "📊"
	IconWarn   = "⚠️ "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconDot    = "·"
)

// habitColors maps habit color tags to their display colors.
var habitColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("#EF4444"),
	"orange":  lipgloss.Color("#F97316"),
	"amber":   lipgloss.Color("#F59E0B"),
	"green":   lipgloss.Color("#22C55E"),
	"emerald": lipgloss.Color("#10B981"),
	"teal":    lipgloss.Color("#14B8A6"),
	"cyan":    lipgloss.Color("#06B6D4"),
	"blue":    lipgloss.Color("#3B82F6"),
	"indigo":  lipgloss.Color("#6366F1"),
	"violet":  lipgloss.Color("#8B5CF6"),
	"purple":  lipgloss.Color("#A855F7"),
	"fuchsia": lipgloss.Color("#D946EF"),
	"pink":    lipgloss.Color("#EC4899"),
	"rose":    lipgloss.Color("#F43F5E"),
}

// HabitColor returns the display color for a habit color tag, falling
// back to the theme primary for unknown tags.
func HabitColor(tag string) lipgloss.Color {
	if c, ok := habitColors[tag]; ok {
		return c
	}
	return Indigo
}

// HabitStyle returns a foreground style in the habit's color.
func HabitStyle(tag string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(HabitColor(tag))
}
