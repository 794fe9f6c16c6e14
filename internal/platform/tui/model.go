package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/replay"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

// Options configures the interactive front end.
type Options struct {
	Store     *storage.Store // Nil = scores are not persisted
	Logger    *log.Logger
	Player    string // Default leaderboard name
	Seed      int64  // 0 = seed every game from the clock
	ReplayDir string // Empty = replays are not saved
	Variant   string // Variant selected in the menu at start; empty = variant.Default
	Width     int
	Height    int
}

type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseNaming            // Game finished, asking for a leaderboard name
	phaseDone              // Game finished, nothing left to ask
)

// GameModel is the Bubble Tea model for a single board.
// A fresh session.Session is created for every game.
type GameModel struct {
	variant variant.Variant
	opts    Options
	session *session.Session
	record  replay.Record
	games   int

	keys  GameKeyMap
	help  help.Model
	input textinput.Model

	phase      gamePhase
	recorded   bool // Score (and replay) stored for the current game
	status     string
	statusID   int
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model and starts the first game of v.
func NewGameModel(v variant.Variant, opts Options) GameModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "3-20 characters"
	ti.CharLimit = 20
	ti.Width = 22

	m := GameModel{
		variant: v,
		opts:    opts,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		input:   ti,
		width:   opts.Width,
		height:  opts.Height,
	}
	m.help.Width = opts.Width
	m.newGame()
	return m
}

// newGame replaces the session, carrying the best score over.
func (m *GameModel) newGame() {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(m.games)
	}
	m.games++

	best := 0
	if m.session != nil {
		best = m.session.Best()
	}
	if m.opts.Store != nil {
		hs, err := m.opts.Store.HighScore(m.variant.ID)
		if err != nil {
			m.opts.Logger.Warn("could not load high score", "variant", m.variant.ID, "error", err)
		} else if hs > best {
			best = hs
		}
	}

	m.record = replay.NewRecord(m.variant, seed)
	opts := m.record.Options()
	opts.Best = best
	opts.Logger = m.opts.Logger
	if m.opts.Store != nil {
		opts.Notifier = m.opts.Store.BestScoreSink(m.variant.ID)
	}

	m.session = session.New(opts)
	m.phase = phasePlaying
	m.recorded = false
	m.keys.Continue.SetEnabled(false)
	m.keys.Submit.SetEnabled(false)
	m.input.Reset()
	m.input.Blur()

	m.opts.Logger.Debug("new game", "variant", m.variant.ID, "seed", seed, "id", m.session.ID())
}

// recordGame stores the finished (or abandoned) game once.
// Games without a single accepted move are not recorded.
func (m *GameModel) recordGame() {
	if m.recorded {
		return
	}
	snap := m.session.Snapshot()
	if snap.Moves == 0 {
		return
	}
	m.recorded = true

	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
			GameID:  snap.ID,
			Variant: m.variant.ID,
			Player:  m.opts.Player,
			Score:   snap.Score,
			MaxTile: snap.MaxTile,
			Moves:   snap.Moves,
		})
		if err != nil {
			m.opts.Logger.Warn("could not save score", "variant", m.variant.ID, "error", err)
		}
	}

	if m.opts.ReplayDir != "" {
		m.record.Capture(m.session)
		path := filepath.Join(m.opts.ReplayDir, fmt.Sprintf("%s-%s.yaml", m.variant.ID, snap.ID))
		if err := replay.Save(m.record, path); err != nil {
			m.opts.Logger.Warn("could not save replay", "path", path, "error", err)
		} else {
			m.opts.Logger.Debug("replay saved", "path", path)
		}
	}

	m.opts.Logger.Info("game recorded",
		"variant", m.variant.ID,
		"id", snap.ID,
		"score", snap.Score,
		"max_tile", snap.MaxTile,
		"moves", snap.Moves,
	)
}

// setStatus shows a transient message under the board.
func (m *GameModel) setStatus(s string) tea.Cmd {
	m.statusID++
	m.status = s
	return clearStatusAfter(m.statusID, statusDuration)
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseNaming {
			return m.handleNamingKey(msg)
		}
		return m.handleKey(msg)
	}

	// Cursor blink and other input messages
	if m.phase == phaseNaming {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input outside of name entry.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordGame()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.recordGame()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.recordGame()
		m.newGame()
		return m, m.setStatus("New game")

	case key.Matches(msg, m.keys.Continue):
		m.session.KeepPlaying()
		m.keys.Continue.SetEnabled(false)
		m.keys.Submit.SetEnabled(false)
		return m, m.setStatus("Keep going!")

	case key.Matches(msg, m.keys.Submit):
		return m.finish()
	}

	if dir, ok := m.keys.Direction(msg); ok {
		return m.move(dir)
	}
	return m, nil
}

// move applies one direction and reacts to the outcome.
func (m GameModel) move(dir engine.Direction) (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying || m.session.Finished() {
		return m, nil
	}

	res, err := m.session.ApplyMove(dir)
	if err != nil {
		m.opts.Logger.Warn("move failed", "dir", dir, "error", err)
		return m, nil
	}
	if !res.Moved {
		return m, nil
	}

	switch {
	case res.Over:
		return m.finish()
	case m.session.Finished():
		// Target reached; wait for the player to continue or submit.
		m.keys.Continue.SetEnabled(true)
		m.keys.Submit.SetEnabled(true)
		m.opts.Logger.Debug("waiting after win", "id", m.session.ID())
	}
	return m, nil
}

// finish ends the current game and asks for a leaderboard name when scores are kept.
func (m GameModel) finish() (tea.Model, tea.Cmd) {
	m.recordGame()
	m.keys.Continue.SetEnabled(false)
	m.keys.Submit.SetEnabled(false)

	if m.opts.Store == nil || m.session.Score() == 0 {
		m.phase = phaseDone
		return m, nil
	}

	m.phase = phaseNaming
	m.input.SetValue(m.opts.Player)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// handleNamingKey routes keys to the name field.
func (m GameModel) handleNamingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		m.input.Blur()
		m.phase = phaseDone
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the final score to the local leaderboard.
func (m GameModel) submit() (tea.Model, tea.Cmd) {
	updated, best, err := m.opts.Store.SubmitScore(m.variant.ID, m.input.Value(), m.session.Score())
	switch {
	case errors.Is(err, storage.ErrInvalidPlayerName):
		return m, m.setStatus("Name must be 3-20 characters")
	case err != nil:
		m.opts.Logger.Error("could not submit score", "variant", m.variant.ID, "error", err)
		m.input.Blur()
		m.phase = phaseDone
		return m, m.setStatus("Could not submit score")
	}

	if name, err := storage.NormalizePlayerName(m.input.Value()); err == nil {
		m.opts.Player = name
	}
	m.input.Blur()
	m.phase = phaseDone

	if updated {
		return m, m.setStatus(fmt.Sprintf("New personal best: %d", best))
	}
	return m, m.setStatus(fmt.Sprintf("Your best is still %d", best))
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()

	target := "endless"
	if snap.Target > 0 {
		target = "target " + strconv.Itoa(snap.Target)
	}
	header := titleStyle.Render(fmt.Sprintf("2048 · %s · %s", m.variant.Title, target))

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		renderStat("SCORE", snap.Score), " ",
		renderStat("BEST", snap.Best), " ",
		renderStat("MOVES", snap.Moves),
	)

	parts := []string{header, "", stats, "", RenderBoard(snap.Grid)}
	if overlay := m.overlay(snap); overlay != "" {
		parts = append(parts, overlayStyle.Render(overlay))
	}
	parts = append(parts, statusStyle.Render(m.status), helpStyle.Render(m.help.View(m.keys)))

	return centerBlock(lipgloss.JoinVertical(lipgloss.Center, parts...), m.width, m.height)
}

// overlay returns the message box for finished games.
func (m GameModel) overlay(snap session.Snapshot) string {
	var lines []string
	switch {
	case snap.Over:
		lines = append(lines, "GAME OVER", fmt.Sprintf("Score %d · max tile %d", snap.Score, snap.MaxTile))
	case m.session.Finished():
		lines = append(lines, "YOU WIN!", fmt.Sprintf("Reached %d in %d moves", snap.Target, snap.Moves))
	default:
		return ""
	}

	switch m.phase {
	case phaseNaming:
		lines = append(lines, "", m.input.View(), "enter: submit · esc: skip")
	case phaseDone:
		lines = append(lines, "r: new game · b: menu · q: quit")
	default:
		lines = append(lines, "c: keep going · enter: submit · r: new game")
	}
	return strings.Join(lines, "\n")
}

// Snapshot returns the state of the current game.
func (m GameModel) Snapshot() session.Snapshot {
	return m.session.Snapshot()
}

// Naming reports whether the model is waiting for a leaderboard name.
func (m GameModel) Naming() bool {
	return m.phase == phaseNaming
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
