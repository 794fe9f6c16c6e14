// Package session holds the state of one 2048 game: the grid, the running
// score and the best score. Each Session is independent and owned by a
// single caller, so no locking is done.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrGameFinished is returned by ApplyMove once no further move is accepted.
var ErrGameFinished = errors.New("session: game is finished")

// BestScoreNotifier is told about every new best score. Persistence layers
// implement it; errors are logged and never interrupt play.
type BestScoreNotifier interface {
	NotifyBestScore(score int) error
}

// NotifierFunc adapts a function to BestScoreNotifier.
type NotifierFunc func(score int) error

// NotifyBestScore calls f(score).
func (f NotifierFunc) NotifyBestScore(score int) error {
	return f(score)
}

// Options configures a new Session. Zero values select the classic rules.
type Options struct {
	Size       int                 // Board dimension (default 4)
	Target     int                 // Winning tile; 0 = default, negative = endless
	Spawn4Prob float64             // Chance of spawning a 4 (default 0.10)
	Rand       engine.RandomSource // Nil = time-seeded source
	Best       int                 // Best score carried over from storage
	Notifier   BestScoreNotifier
	Logger     *log.Logger
}

// State summarizes the terminal status of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateOver    State = "game_over"
)

// Snapshot is an immutable view of a Session for renderers.
type Snapshot struct {
	ID      string
	Size    int
	Target  int
	Grid    engine.Grid
	Tiles   []engine.Tile
	Score   int
	Best    int
	MaxTile int
	Moves   int
	Won     bool
	Over    bool
	State   State
}

// Session sequences engine moves and keeps score.
type Session struct {
	id       string
	size     int
	engine   *engine.Engine
	notifier BestScoreNotifier
	logger   *log.Logger

	grid        engine.Grid
	score       int
	best        int
	won         bool
	over        bool
	keepPlaying bool
	history     []engine.Direction
	last        engine.MoveResult
}

// New creates a session with a fresh grid seeded with two tiles.
func New(opts Options) *Session {
	size := opts.Size
	if size == 0 {
		size = engine.DefaultSize
	}

	target := opts.Target
	if target == 0 {
		target = engine.DefaultTarget
	}

	spawn4 := opts.Spawn4Prob
	if spawn4 == 0 {
		spawn4 = engine.DefaultSpawn4Prob
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		size:     size,
		engine:   engine.New(engine.NewSpawner(rng, spawn4), target),
		notifier: opts.Notifier,
		logger:   logger,
		best:     opts.Best,
	}
	s.reset()
	return s
}

// reset starts a new game on the same rules, keeping the best score.
func (s *Session) reset() {
	s.id = uuid.NewString()
	s.grid = s.engine.NewGame(s.size)
	s.score = 0
	s.won = false
	s.over = engine.IsOver(s.grid)
	s.keepPlaying = false
	s.history = nil
	s.last = engine.MoveResult{Grid: s.grid}
}

// Restart begins a new game. The best score is kept.
func (s *Session) Restart() {
	s.reset()
	s.logger.Debug("game restarted", "id", s.id)
}

// ID returns the identifier of the current game; it changes on Restart.
func (s *Session) ID() string {
	return s.id
}

// Finished reports whether ApplyMove will refuse further moves.
func (s *Session) Finished() bool {
	return s.over || (s.won && !s.keepPlaying)
}

// KeepPlaying lets a won game continue towards higher tiles.
func (s *Session) KeepPlaying() {
	if s.won {
		s.keepPlaying = true
	}
}

// ApplyMove plays dir. Rejected moves (no tile can slide) return a result
// with Moved false and leave the session unchanged.
func (s *Session) ApplyMove(dir engine.Direction) (engine.MoveResult, error) {
	if !dir.Valid() {
		return engine.MoveResult{Grid: s.grid.Clone()}, fmt.Errorf("session: %w: %d", engine.ErrInvalidDirection, int(dir))
	}
	if s.Finished() {
		return engine.MoveResult{Grid: s.grid.Clone()}, ErrGameFinished
	}

	res, err := s.engine.Move(s.grid, dir)
	if err != nil {
		return engine.MoveResult{Grid: s.grid.Clone()}, fmt.Errorf("session: move %v: %w", dir, err)
	}
	if !res.Moved {
		// An unmoved result carries the session's own grid.
		s.logger.Debug("move rejected", "dir", dir)
		res.Grid = res.Grid.Clone()
		return res, nil
	}

	s.grid = res.Grid
	s.score += res.ScoreDelta
	s.history = append(s.history, dir)
	s.last = res

	if s.score > s.best {
		s.best = s.score
		s.notifyBest()
	}

	if res.Won && !s.won {
		s.won = true
		s.logger.Info("target reached", "id", s.id, "target", s.engine.Target(), "score", s.score)
	}
	s.over = res.Over
	if s.over {
		s.logger.Info("game over", "id", s.id, "score", s.score, "max_tile", s.grid.MaxTile())
	}

	res.Grid = res.Grid.Clone()
	return res, nil
}

func (s *Session) notifyBest() {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyBestScore(s.best); err != nil {
		s.logger.Warn("could not record best score", "score", s.best, "error", err)
	}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score seen by this session.
func (s *Session) Best() int {
	return s.best
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() engine.Grid {
	return s.grid.Clone()
}

// LastMove returns the result of the last accepted move. The grid is a copy.
func (s *Session) LastMove() engine.MoveResult {
	last := s.last
	last.Grid = s.last.Grid.Clone()
	last.Moves = append([]engine.TileMove(nil), s.last.Moves...)
	if s.last.Spawned != nil {
		spawned := *s.last.Spawned
		last.Spawned = &spawned
	}
	return last
}

// History returns the accepted moves of the current game, in order.
func (s *Session) History() []engine.Direction {
	out := make([]engine.Direction, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case s.over:
		state = StateOver
	case s.won:
		state = StateWon
	}

	return Snapshot{
		ID:      s.id,
		Size:    s.size,
		Target:  s.engine.Target(),
		Grid:    s.grid.Clone(),
		Tiles:   s.grid.Tiles(),
		Score:   s.score,
		Best:    s.best,
		MaxTile: s.grid.MaxTile(),
		Moves:   len(s.history),
		Won:     s.won,
		Over:    s.over,
		State:   state,
	}
}
