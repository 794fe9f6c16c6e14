package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/variant"
)

func updateApp(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am
}

func TestAppStartsInMenu(t *testing.T) {
	m := NewAppModel(Options{Seed: 1}, "")
	if m.Screen() != "menu" {
		t.Fatalf("Screen = %q, want menu", m.Screen())
	}
	if got := m.menu.Cursor().ID; got != variant.Default {
		t.Errorf("cursor on %q, want %q", got, variant.Default)
	}
}

func TestAppUnknownVariantOpensMenu(t *testing.T) {
	m := NewAppModel(Options{Seed: 1}, "nope")
	if m.Screen() != "menu" {
		t.Errorf("Screen = %q, want menu", m.Screen())
	}
}

func TestAppMenuOpensOnConfiguredVariant(t *testing.T) {
	m := NewAppModel(Options{Seed: 1, Variant: "big"}, "")
	if m.Screen() != "menu" {
		t.Fatalf("Screen = %q, want menu", m.Screen())
	}
	if got := m.menu.Cursor().ID; got != "big" {
		t.Errorf("cursor on %q, want big", got)
	}

	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != "big" {
		t.Errorf("current = %q, want big", m.current)
	}

	unknown := NewAppModel(Options{Seed: 1, Variant: "nope"}, "")
	if got := unknown.menu.Cursor().ID; got != variant.Default {
		t.Errorf("unknown configured variant: cursor on %q, want %q", got, variant.Default)
	}
}

func TestAppStartVariantSkipsMenu(t *testing.T) {
	m := NewAppModel(Options{Seed: 1}, "mini")
	if m.Screen() != "game" {
		t.Fatalf("Screen = %q, want game", m.Screen())
	}
	if size := m.game.Snapshot().Size; size != 3 {
		t.Errorf("board size = %d, want 3", size)
	}
}

func TestAppMenuToGameAndBack(t *testing.T) {
	m := NewAppModel(Options{Seed: 1}, "")

	// Move from classic to the next variant and play it.
	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyDown})
	want := m.menu.Cursor().ID
	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "game" {
		t.Fatalf("Screen = %q, want game", m.Screen())
	}
	if m.current != want {
		t.Errorf("current = %q, want %q", m.current, want)
	}

	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Fatalf("Screen = %q, want menu", m.Screen())
	}
	if got := m.menu.Cursor().ID; got != want {
		t.Errorf("menu cursor = %q, want last played %q", got, want)
	}
}

func TestAppScoreboardRoundTrip(t *testing.T) {
	store := openTestStore(t)
	if _, _, err := store.SubmitScore("classic", "alice", 256); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	m := NewAppModel(Options{Store: store, Width: 100, Height: 40}, "")
	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Screen() != "scores" {
		t.Fatalf("Screen = %q, want scores", m.Screen())
	}

	entries := m.scores.Entries()
	if len(entries) != 1 || entries[0].Player != "alice" {
		t.Errorf("entries = %+v", entries)
	}

	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.scores.Entries()) != 0 {
		t.Errorf("next variant should have no entries: %+v", m.scores.Entries())
	}

	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Errorf("Screen = %q, want menu", m.Screen())
	}
}

func TestAppQuitFromEveryScreen(t *testing.T) {
	quit := runeKey('q')

	menu := updateApp(t, NewAppModel(Options{Seed: 1}, ""), quit)
	game := updateApp(t, NewAppModel(Options{Seed: 1}, "classic"), quit)
	scores := NewAppModel(Options{Seed: 1}, "")
	scores = updateApp(t, scores, tea.KeyMsg{Type: tea.KeyTab})
	scores = updateApp(t, scores, quit)

	for name, m := range map[string]AppModel{"menu": menu, "game": game, "scores": scores} {
		if !m.quitting {
			t.Errorf("%s: q did not quit", name)
		}
		if m.View() != "" {
			t.Errorf("%s: view not empty after quit", name)
		}
	}
}

func TestAppResizeReachesNewGame(t *testing.T) {
	m := NewAppModel(Options{Seed: 1}, "")
	m = updateApp(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	m = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.game.width != 120 || m.game.height != 50 {
		t.Errorf("game size = %dx%d, want 120x50", m.game.width, m.game.height)
	}
}
