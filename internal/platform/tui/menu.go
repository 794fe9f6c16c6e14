package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	variants       []variant.Variant
	best           map[string]int
	cursor         int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *variant.Variant // Set when user selects a variant
	openScoreboard bool             // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model with the cursor on current.
func NewMenuModel(store *storage.Store, current string, width, height int) MenuModel {
	variants := variant.List()
	best := make(map[string]int, len(variants))

	cursor := 0
	for i, v := range variants {
		if v.ID == current {
			cursor = i
		}
		if store == nil {
			continue
		}
		if hs, err := store.HighScore(v.ID); err == nil {
			best[v.ID] = hs
		}
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		variants: variants,
		best:     best,
		cursor:   cursor,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     h,
	}
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
		m.help.Width = msg.Width
		return m, nil
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
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.variants) > 0 {
			selected := m.variants[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("2 0 4 8"))
	b.WriteString("\n\n")
	b.WriteString("Select a variant")
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	for i, v := range m.variants {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		target := "endless"
		if !v.Endless() {
			target = fmt.Sprintf("to %d", v.Target)
		}

		line := fmt.Sprintf("%s%-18s %dx%d  %-8s best %d", cursor, v.Title, v.Size, v.Size, target, m.best[v.ID])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return centerBlock(b.String(), m.width, m.height)
}

// Selected returns the selected variant, or nil if none selected.
func (m MenuModel) Selected() *variant.Variant {
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

// Cursor returns the variant under the cursor.
func (m MenuModel) Cursor() variant.Variant {
	return m.variants[m.cursor]
}
