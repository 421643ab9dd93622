// Package tui holds the interactive bubbletea views. Models never touch
// storage: they collect actions the caller applies after the program quits.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/ui"
)

// DayAction represents an action taken in the daily checklist TUI.
type DayAction struct {
	Type    string // "toggle", "delete"
	HabitID string
}

// DayModel is the interactive checklist of habits for one calendar day.
type DayModel struct {
	date    string
	habits  []habit.Habit
	done    map[string]bool // habit id → completed on date
	streaks map[string]int  // habit id → current streak
	cursor  int

	width  int
	height int

	// pending actions to apply after quitting
	Actions []DayAction

	// armed delete waiting for confirmation
	pendingDelete bool

	quitting bool
}

// NewDayModel creates the checklist for date with the current completion
// and streak state.
func NewDayModel(date string, habits []habit.Habit, done map[string]bool, streaks map[string]int) *DayModel {
	if done == nil {
		done = make(map[string]bool)
	}
	return &DayModel{
		date:    date,
		habits:  habits,
		done:    done,
		streaks: streaks,
		width:   80,
		height:  24,
	}
}

// RunDay launches the daily checklist TUI. Returns actions for the caller to apply.
func RunDay(date string, habits []habit.Habit, done map[string]bool, streaks map[string]int) ([]DayAction, error) {
	m := NewDayModel(date, habits, done, streaks)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("day tui: %w", err)
	}
	final := result.(*DayModel)
	return final.Actions, nil
}

func (m *DayModel) Init() tea.Cmd {
	return nil
}

func (m *DayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.pendingDelete {
			return m.handleDeleteConfirm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleDeleteConfirm resolves an armed delete. Only an explicit yes
// applies it; any other key cancels.
func (m *DayModel) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.pendingDelete = false

	switch msg.String() {
	case "y", "enter":
		h := m.habits[m.cursor]
		m.Actions = append(m.Actions, DayAction{Type: "delete", HabitID: h.ID})
		m.habits = append(m.habits[:m.cursor], m.habits[m.cursor+1:]...)
		if m.cursor >= len(m.habits) && m.cursor > 0 {
			m.cursor = len(m.habits) - 1
		}

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *DayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "g":
		m.cursor = 0

	case "G":
		if len(m.habits) > 0 {
			m.cursor = len(m.habits) - 1
		}

	case "x", " ", "enter":
		if len(m.habits) > 0 {
			h := m.habits[m.cursor]
			m.Actions = append(m.Actions, DayAction{Type: "toggle", HabitID: h.ID})
			// Toggle locally for immediate feedback
			m.done[h.ID] = !m.done[h.ID]
		}

	case "d":
		// Deleting cascades all history, so arm and ask first.
		if len(m.habits) > 0 {
			m.pendingDelete = true
		}
	}

	return m, nil
}

func (m *DayModel) View() string {
	var b strings.Builder

	header := ui.Title.Render("  " + ui.IconHabit + " " + m.date)
	b.WriteString(header + "\n\n")

	if len(m.habits) == 0 {
		b.WriteString("  " + ui.Muted.Render("No habits yet. Run `habitflow habit add` first.") + "\n")
	} else {
		for i, h := range m.habits {
			b.WriteString(m.renderHabitItem(h, i == m.cursor) + "\n")
		}
	}

	b.WriteString("\n")

	completed := 0
	for _, h := range m.habits {
		if m.done[h.ID] {
			completed++
		}
	}
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d done", completed, len(m.habits))) + "\n")
	if m.pendingDelete {
		name := m.habits[m.cursor].Name
		b.WriteString(ui.Warning.Render(fmt.Sprintf("  Delete %q and all its history? y confirms, any other key cancels", name)) + "\n")
	} else {
		b.WriteString(ui.Muted.Render("  j/k move · x toggle · d delete · q quit") + "\n")
	}

	return b.String()
}

func (m *DayModel) renderHabitItem(h habit.Habit, selected bool) string {
	pointer := "  "
	nameStyle := lipgloss.NewStyle()

	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		nameStyle = lipgloss.NewStyle().Foreground(ui.HabitColor(h.Color)).Bold(true)
	}

	marker := ui.Muted.Render("·")
	if m.done[h.ID] {
		marker = ui.Success.Render("✓")
	}

	name := h.Name
	if m.done[h.ID] {
		name = ui.Muted.Render(name)
	} else {
		name = nameStyle.Render(name)
	}

	line := fmt.Sprintf("  %s %s %s", pointer, marker, name)

	if streak := m.streaks[h.ID]; streak > 0 {
		line += ui.Warning.Render(fmt.Sprintf(" %s%d", ui.IconFire, streak))
	}

	return line
}
