// Package replay records finished games as YAML and plays them back.
// A record holds the rules, the random seed and the accepted moves, which is
// enough to rebuild every grid of the game.
package replay

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/variant"
)

// ErrReplayMismatch is returned when a record does not reproduce its game.
var ErrReplayMismatch = errors.New("replay: record does not reproduce the game")

// Record describes one game.
type Record struct {
	GameID     string    `yaml:"game_id,omitempty"`
	Variant    string    `yaml:"variant"`
	Size       int       `yaml:"size"`
	Target     int       `yaml:"target"` // 0 = endless
	Spawn4Prob float64   `yaml:"spawn4_prob"`
	Seed       int64     `yaml:"seed"`
	Moves      []string  `yaml:"moves"`
	FinalScore int       `yaml:"final_score"`
	MaxTile    int       `yaml:"max_tile"`
	CreatedAt  time.Time `yaml:"created_at,omitempty"`
}

// NewRecord starts a record for a game of v seeded with seed.
func NewRecord(v variant.Variant, seed int64) Record {
	return Record{
		Variant:    v.ID,
		Size:       v.Size,
		Target:     v.Target,
		Spawn4Prob: v.Spawn4Prob,
		Seed:       seed,
	}
}

// Options returns session options that reproduce the recorded game.
func (r Record) Options() session.Options {
	v := variant.Variant{ID: r.Variant, Size: r.Size, Target: r.Target, Spawn4Prob: r.Spawn4Prob}
	opts := v.Options()
	opts.Rand = rand.New(rand.NewSource(r.Seed))
	return opts
}

// Capture copies the moves and result of s into the record.
func (r *Record) Capture(s *session.Session) {
	snap := s.Snapshot()
	history := s.History()

	r.GameID = snap.ID
	r.Moves = make([]string, len(history))
	for i, dir := range history {
		r.Moves[i] = dir.String()
	}
	r.FinalScore = snap.Score
	r.MaxTile = snap.MaxTile
	r.CreatedAt = time.Now().UTC().Truncate(time.Second)
}

// Run plays the record back and returns the final state.
func Run(rec Record) (session.Snapshot, error) {
	if rec.Size < 2 {
		return session.Snapshot{}, fmt.Errorf("replay: invalid board size %d", rec.Size)
	}

	s := session.New(rec.Options())
	for i, m := range rec.Moves {
		dir, err := engine.ParseDirection(m)
		if err != nil {
			return s.Snapshot(), fmt.Errorf("replay: move %d: %w", i+1, err)
		}
		if s.Finished() {
			// Recorded moves after a win mean the player chose to continue.
			s.KeepPlaying()
		}
		res, err := s.ApplyMove(dir)
		if err != nil {
			return s.Snapshot(), fmt.Errorf("%w: move %d (%s): %w", ErrReplayMismatch, i+1, m, err)
		}
		if !res.Moved {
			return s.Snapshot(), fmt.Errorf("%w: move %d (%s) changed nothing", ErrReplayMismatch, i+1, m)
		}
	}

	snap := s.Snapshot()
	if snap.Score != rec.FinalScore {
		return snap, fmt.Errorf("%w: score %d, recorded %d", ErrReplayMismatch, snap.Score, rec.FinalScore)
	}
	return snap, nil
}

// Save writes rec to path as YAML.
func Save(rec Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory: %w", err)
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return nil
}

// Load reads a record from path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("replay: cannot parse %s: %w", path, err)
	}
	return rec, nil
}
