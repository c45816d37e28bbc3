package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/survivalist/internal/config"
)

// MenuItem is one selectable difficulty.
type MenuItem struct {
	Difficulty config.DifficultyPreset
	Title      string
	Detail     string
}

// DefaultMenuItems lists the difficulty presets in menu order.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{config.DifficultyEasy, "Easy", "slower enemies"},
		{config.DifficultyNormal, "Normal", "the classic game"},
		{config.DifficultyHard, "Hard", "three fast enemies from the start"},
		{config.DifficultyFixed, "Fixed", "speeds never ramp up"},
	}
}

// MenuKeyMap defines the key bindings for the menu.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s")),
		Select:     key.NewBinding(key.WithKeys("enter", " ", "space")),
		Scoreboard: key.NewBinding(key.WithKeys("tab")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	best           int
	keys           MenuKeyMap
	quitting       bool
	selected       *MenuItem // Set when user selects a difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu with the cursor on initial. best is shown
// under the title.
func NewMenuModel(initial config.DifficultyPreset, best, width, height int) MenuModel {
	m := MenuModel{
		items:  DefaultMenuItems(),
		width:  width,
		height: height,
		best:   best,
		keys:   DefaultMenuKeyMap(),
	}
	for i, item := range m.items {
		if item.Difficulty == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S U R V I V A L I S T   R E C T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High Score: %d", m.best), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-7s %s", item.Title, dimStyle.Render(item.Detail))
		if i == m.cursor {
			line = activeStyle.Render("> "+fmt.Sprintf("%-7s", item.Title)) + " " + dimStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(initial config.DifficultyPreset, best, width, height int) (MenuResult, error) {
	model := NewMenuModel(initial, best, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.result(), nil
}

func (m MenuModel) result() MenuResult {
	switch {
	case m.WantsScoreboard():
		return MenuResult{WantsScoreboard: true}
	case m.Selected() != nil:
		return MenuResult{Difficulty: m.Selected().Difficulty}
	default:
		return MenuResult{Quit: true}
	}
}
