package replay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

// playGame cycles through the directions until the game ends or max moves
// have been accepted.
func playGame(t *testing.T, s *session.Session, max int) {
	t.Helper()
	accepted := 0
	for i := 0; accepted < max && !s.Finished(); i++ {
		res, err := s.ApplyMove(engine.Directions[i%len(engine.Directions)])
		if err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if res.Moved {
			accepted++
		}
	}
}

func recordedGame(t *testing.T, variantID string, seed int64) (Record, *session.Session) {
	t.Helper()
	v, err := variant.Get(variantID)
	if err != nil {
		t.Fatalf("variant.Get: %v", err)
	}
	rec := NewRecord(v, seed)
	s := session.New(rec.Options())
	playGame(t, s, 150)
	rec.Capture(s)
	return rec, s
}

func TestRunReproducesGame(t *testing.T) {
	for _, id := range []string{"classic", "mini", "big", "hard", "endless"} {
		t.Run(id, func(t *testing.T) {
			rec, s := recordedGame(t, id, 42)
			if len(rec.Moves) == 0 {
				t.Fatal("no moves recorded")
			}

			snap, err := Run(rec)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if !snap.Grid.Equal(s.Grid()) {
				t.Errorf("replayed grid:\n%s\nwant:\n%s", snap.Grid, s.Grid())
			}
			if snap.Score != s.Score() {
				t.Errorf("Score = %d, want %d", snap.Score, s.Score())
			}
			if snap.Moves != len(rec.Moves) {
				t.Errorf("Moves = %d, want %d", snap.Moves, len(rec.Moves))
			}
		})
	}
}

func TestRunDetectsScoreMismatch(t *testing.T) {
	rec, _ := recordedGame(t, "classic", 3)
	rec.FinalScore += 4

	if _, err := Run(rec); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("err = %v, want ErrReplayMismatch", err)
	}
}

func TestRunDetectsWrongSeed(t *testing.T) {
	rec, _ := recordedGame(t, "classic", 3)
	rec.Seed = 4

	if _, err := Run(rec); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("err = %v, want ErrReplayMismatch", err)
	}
}

func TestRunRejectsBadMove(t *testing.T) {
	v, _ := variant.Get("classic")
	rec := NewRecord(v, 1)
	rec.Moves = []string{"sideways"}

	_, err := Run(rec)
	if !errors.Is(err, engine.ErrInvalidDirection) {
		t.Errorf("err = %v, want ErrInvalidDirection", err)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	if _, err := Run(Record{Size: 1}); err == nil {
		t.Error("size 1 should fail")
	}
}

func TestSaveLoad(t *testing.T) {
	rec, _ := recordedGame(t, "mini", 9)
	path := filepath.Join(t.TempDir(), "replays", "game.yaml")

	if err := Save(rec, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(rec, loaded); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	if _, err := Run(loaded); err != nil {
		t.Errorf("Run(loaded) error: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestEndlessRecordOptions(t *testing.T) {
	v, _ := variant.Get("endless")
	opts := NewRecord(v, 1).Options()
	if opts.Target >= 0 {
		t.Errorf("Target = %d, want negative for endless", opts.Target)
	}
	if opts.Rand == nil {
		t.Error("Rand should be seeded")
	}
}
