package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/variant"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game -> menu, plus the leaderboard.
// It is the top-level model for both local and SSH play.
type AppModel struct {
	opts     Options
	current  string // Last played or highlighted variant
	screen   screen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewAppModel creates the app. A known startVariant skips the menu;
// otherwise the menu opens on opts.Variant.
func NewAppModel(opts Options, startVariant string) AppModel {
	m := AppModel{
		opts:    opts,
		current: startVariant,
	}

	if v, err := variant.Get(startVariant); err == nil {
		m.startGame(v)
		return m
	}

	m.current = variant.Default
	if variant.Exists(opts.Variant) {
		m.current = opts.Variant
	}
	m.menu = NewMenuModel(opts.Store, m.current, opts.Width, opts.Height)
	return m
}

func (m *AppModel) startGame(v variant.Variant) {
	game := NewGameModel(v, m.opts)
	m.game = &game
	m.current = v.ID
	m.screen = screenGame
}

func (m *AppModel) showMenu() {
	if m.game != nil {
		// Keep the name typed for the leaderboard.
		m.opts.Player = m.game.opts.Player
	}
	m.game = nil
	m.menu = NewMenuModel(m.opts.Store, m.current, m.opts.Width, m.opts.Height)
	m.screen = screenMenu
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.current = m.menu.Cursor().ID
		m.scores = NewScoreboardModel(m.opts.Store, m.current, m.opts.Width, m.opts.Height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.startGame(*m.menu.Selected())
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.showMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates on the leaderboard screen.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.showMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Screen reports which screen is active: "menu", "game" or "scores".
func (m AppModel) Screen() string {
	switch m.screen {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	}
	return "menu"
}

// Run starts the Bubble Tea program on the local terminal.
// An empty or unknown startVariant opens the menu first.
func Run(opts Options, startVariant string) error {
	p := tea.NewProgram(
		NewAppModel(opts, startVariant),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
