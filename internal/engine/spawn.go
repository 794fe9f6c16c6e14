package engine

import "math/rand"

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// fallbackSeed seeds the generator used when no RandomSource is supplied.
const fallbackSeed = 1

// RandomSource is the randomness the spawner draws from.
// *rand.Rand satisfies it; tests substitute seeded or scripted sources.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Spawner places new tiles on empty cells.
type Spawner struct {
	rng        RandomSource
	spawn4Prob float64
}

// NewSpawner creates a spawner. A nil source falls back to a deterministic
// generator so spawning never fails. A negative probability selects the default.
func NewSpawner(rng RandomSource, spawn4Prob float64) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(fallbackSeed))
	}
	if spawn4Prob < 0 {
		spawn4Prob = DefaultSpawn4Prob
	}
	if spawn4Prob > 1 {
		spawn4Prob = 1
	}
	return &Spawner{rng: rng, spawn4Prob: spawn4Prob}
}

// Spawn4Prob returns the configured probability of spawning a 4.
func (s *Spawner) Spawn4Prob() float64 {
	return s.spawn4Prob
}

// SpawnTile returns a copy of grid with one new tile on a uniformly chosen
// empty cell, and the tile placed. A full grid is returned unchanged with a
// nil tile.
func (s *Spawner) SpawnTile(grid Grid) (Grid, *Tile) {
	empty := grid.EmptyCells()
	if len(empty) == 0 {
		return grid, nil
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.spawn4Prob {
		value = 4
	}

	next := grid.Clone()
	next.Set(cell, value)
	return next, &Tile{Row: cell.Row, Col: cell.Col, Value: value}
}
