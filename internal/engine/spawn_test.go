package engine

import (
	"math/rand"
	"testing"
)

// scriptedSource replays fixed draws, for placing tiles exactly.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestSpawnTilePlacement(t *testing.T) {
	grid := MustFromRows([][]int{
		{2, 0},
		{0, 4},
	})
	src := &scriptedSource{ints: []int{1}, floats: []float64{0.5}}

	next, tile := NewSpawner(src, DefaultSpawn4Prob).SpawnTile(grid)
	if tile == nil {
		t.Fatal("expected a spawned tile")
	}

	// Empty cells in row-major order are (0,1) and (1,0); index 1 picks (1,0).
	want := Tile{Row: 1, Col: 0, Value: 2}
	if *tile != want {
		t.Errorf("spawned %+v, want %+v", *tile, want)
	}
	if next.At(Pos{1, 0}) != 2 {
		t.Errorf("grid not updated:\n%s", next)
	}
	if grid.At(Pos{1, 0}) != 0 {
		t.Error("SpawnTile modified its input")
	}
}

func TestSpawnTileFour(t *testing.T) {
	src := &scriptedSource{ints: []int{0}, floats: []float64{0.05}}
	_, tile := NewSpawner(src, DefaultSpawn4Prob).SpawnTile(NewGrid(2))
	if tile == nil || tile.Value != 4 {
		t.Errorf("spawned %+v, want a 4", tile)
	}
}

func TestSpawnTileFullGrid(t *testing.T) {
	grid := MustFromRows([][]int{
		{2, 4},
		{4, 2},
	})

	next, tile := NewSpawner(rand.New(rand.NewSource(1)), DefaultSpawn4Prob).SpawnTile(grid)
	if tile != nil {
		t.Errorf("spawned %+v on a full grid", *tile)
	}
	if !next.Equal(grid) {
		t.Error("full grid changed by SpawnTile")
	}
}

func TestSpawnDistribution(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(12345)), DefaultSpawn4Prob)
	empty := NewGrid(DefaultSize)

	const trials = 20000
	fours := 0
	for range trials {
		_, tile := spawner.SpawnTile(empty)
		switch tile.Value {
		case 4:
			fours++
		case 2:
		default:
			t.Fatalf("unexpected spawn value %d", tile.Value)
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("4s spawned in %.3f of trials, want about 0.10", ratio)
	}
}

func TestSpawnCellsUniform(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(99)), DefaultSpawn4Prob)
	empty := NewGrid(2)

	counts := make(map[Pos]int)
	const trials = 8000
	for range trials {
		_, tile := spawner.SpawnTile(empty)
		counts[tile.Pos()]++
	}

	for _, p := range empty.EmptyCells() {
		share := float64(counts[p]) / trials
		if share < 0.2 || share > 0.3 {
			t.Errorf("cell %+v chosen in %.3f of trials, want about 0.25", p, share)
		}
	}
}

func TestNilSourceIsDeterministic(t *testing.T) {
	a, tileA := NewSpawner(nil, DefaultSpawn4Prob).SpawnTile(NewGrid(DefaultSize))
	b, tileB := NewSpawner(nil, DefaultSpawn4Prob).SpawnTile(NewGrid(DefaultSize))

	if tileA == nil || tileB == nil {
		t.Fatal("fallback source failed to spawn")
	}
	if !a.Equal(b) {
		t.Errorf("fallback spawns differ:\n%s\nvs\n%s", a, b)
	}
}

func TestNewSpawnerClampsProbability(t *testing.T) {
	if p := NewSpawner(nil, -1).Spawn4Prob(); p != DefaultSpawn4Prob {
		t.Errorf("negative probability = %v, want default", p)
	}
	if p := NewSpawner(nil, 3).Spawn4Prob(); p != 1 {
		t.Errorf("probability above 1 = %v, want 1", p)
	}
}
