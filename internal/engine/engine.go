package engine

// DefaultTarget is the tile value that wins a classic game.
const DefaultTarget = 2048

// MoveResult is the outcome of one Engine.Move call.
type MoveResult struct {
	Grid       Grid
	ScoreDelta int
	Moved      bool
	Won        bool
	Over       bool
	Spawned    *Tile      // Tile added after an accepted move, nil otherwise
	Moves      []TileMove // Prior positions of tiles that moved or merged
}

// Engine applies moves and spawns tiles for a fixed rule set.
type Engine struct {
	spawner *Spawner
	target  int
}

// New creates an engine. A target <= 0 disables win detection (endless play).
func New(spawner *Spawner, target int) *Engine {
	if spawner == nil {
		spawner = NewSpawner(nil, DefaultSpawn4Prob)
	}
	return &Engine{spawner: spawner, target: target}
}

// Target returns the winning tile value, or 0 when winning is disabled.
func (e *Engine) Target() int {
	if e.target < 0 {
		return 0
	}
	return e.target
}

// Spawner returns the spawner used after accepted moves.
func (e *Engine) Spawner() *Spawner {
	return e.spawner
}

// NewGame returns an empty n×n grid seeded with two tiles.
func (e *Engine) NewGame(n int) Grid {
	grid := NewGrid(n)
	grid, _ = e.spawner.SpawnTile(grid)
	grid, _ = e.spawner.SpawnTile(grid)
	return grid
}

// Move slides the grid in dir. On an accepted move exactly one tile is
// spawned before the terminal conditions are evaluated. A move that changes
// nothing returns the input grid untouched with Moved false.
func (e *Engine) Move(grid Grid, dir Direction) (MoveResult, error) {
	next, score, moves, moved, err := Slide(grid, dir)
	if err != nil {
		return MoveResult{Grid: grid}, err
	}

	if !moved {
		return MoveResult{
			Grid: grid,
			Won:  IsWon(grid, e.target),
			Over: IsOver(grid),
		}, nil
	}

	next, spawned := e.spawner.SpawnTile(next)

	return MoveResult{
		Grid:       next,
		ScoreDelta: score,
		Moved:      true,
		Won:        IsWon(next, e.target),
		Over:       IsOver(next),
		Spawned:    spawned,
		Moves:      moves,
	}, nil
}

// IsWon returns true if any cell holds exactly target. A target <= 0 never
// wins.
func IsWon(grid Grid, target int) bool {
	if target <= 0 {
		return false
	}
	for _, v := range grid.cells {
		if v == target {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent
// tiles hold equal values.
func HasPossibleMerge(grid Grid) bool {
	n := grid.Size()
	for r := range n {
		for c := range n {
			val := grid.At(Pos{Row: r, Col: c})
			if val == 0 {
				continue
			}
			// Check right neighbor
			if c < n-1 && grid.At(Pos{Row: r, Col: c + 1}) == val {
				return true
			}
			// Check bottom neighbor
			if r < n-1 && grid.At(Pos{Row: r + 1, Col: c}) == val {
				return true
			}
		}
	}
	return false
}

// IsOver returns true if no move is possible: the grid is full and no two
// adjacent tiles match.
func IsOver(grid Grid) bool {
	return !grid.HasEmptyCell() && !HasPossibleMerge(grid)
}
