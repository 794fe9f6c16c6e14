package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine(seed int64, target int) *Engine {
	return New(NewSpawner(rand.New(rand.NewSource(seed)), DefaultSpawn4Prob), target)
}

func TestNewGameHasTwoTiles(t *testing.T) {
	grid := newTestEngine(42, DefaultTarget).NewGame(DefaultSize)

	if grid.Size() != DefaultSize {
		t.Fatalf("size = %d, want %d", grid.Size(), DefaultSize)
	}
	if n := len(grid.Tiles()); n != 2 {
		t.Errorf("new game has %d tiles, want 2", n)
	}
}

func TestDeterministicNewGame(t *testing.T) {
	a := newTestEngine(12345, DefaultTarget).NewGame(DefaultSize)
	b := newTestEngine(12345, DefaultTarget).NewGame(DefaultSize)

	if !a.Equal(b) {
		t.Errorf("Same seed should produce same initial board:\n%s\nvs\n%s", a, b)
	}
}

func TestMoveSpawnsOneTile(t *testing.T) {
	grid := MustFromRows([][]int{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res, err := newTestEngine(1, DefaultTarget).Move(grid, DirLeft)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if !res.Moved {
		t.Fatal("move should be accepted")
	}
	if res.ScoreDelta != 8 {
		t.Errorf("ScoreDelta = %d, want 8", res.ScoreDelta)
	}
	if res.Spawned == nil {
		t.Fatal("accepted move did not spawn")
	}
	if got := len(res.Grid.Tiles()); got != 3 {
		t.Errorf("tiles after move = %d, want 3 (two merged + one spawned)", got)
	}

	row := res.Grid.Rows()[0]
	if row[0] != 4 || row[1] != 4 {
		t.Errorf("row 0 = %v, want [4 4 ...]", row)
	}
}

func TestMoveNoOpIsIdempotent(t *testing.T) {
	grid := MustFromRows([][]int{
		{2, 4, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := grid.Clone()

	res, err := newTestEngine(1, DefaultTarget).Move(grid, DirLeft)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if res.Moved || res.Spawned != nil || res.ScoreDelta != 0 {
		t.Errorf("no-op move reported %+v", res)
	}
	if !res.Grid.Equal(before) {
		t.Errorf("no-op move changed grid:\n%s", res.Grid)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	grid := newTestEngine(1, DefaultTarget).NewGame(DefaultSize)
	before := grid.Clone()

	res, err := newTestEngine(1, DefaultTarget).Move(grid, Direction(9))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
	if !res.Grid.Equal(before) {
		t.Error("invalid move changed the grid")
	}
}

func TestMoveConservation(t *testing.T) {
	e := newTestEngine(2024, 0)
	grid := e.NewGame(DefaultSize)
	rng := rand.New(rand.NewSource(3))

	for step := 0; step < 500 && !IsOver(grid); step++ {
		dir := Directions[rng.Intn(len(Directions))]
		res, err := e.Move(grid, dir)
		if err != nil {
			t.Fatalf("Move() error: %v", err)
		}
		if !res.Moved {
			continue
		}
		if res.Spawned == nil {
			t.Fatalf("step %d: accepted move without spawn", step)
		}
		if grid.Sum() != res.Grid.Sum()-res.Spawned.Value {
			t.Fatalf("step %d: sum %d -> %d with spawn %d", step, grid.Sum(), res.Grid.Sum(), res.Spawned.Value)
		}
		grid = res.Grid
	}
}

func TestMoveDetectsWin(t *testing.T) {
	grid := MustFromRows([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res, err := newTestEngine(5, DefaultTarget).Move(grid, DirLeft)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if !res.Won {
		t.Error("merging to 2048 should win")
	}
	if res.ScoreDelta != 2048 {
		t.Errorf("ScoreDelta = %d, want 2048", res.ScoreDelta)
	}
}

func TestIsWon(t *testing.T) {
	grid := MustFromRows([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})

	if !IsWon(grid, DefaultTarget) {
		t.Error("grid with 2048 should be won")
	}
	if IsWon(grid, 4096) {
		t.Error("grid without 4096 should not win a 4096 target")
	}
	if IsWon(grid, 0) {
		t.Error("target 0 must never win")
	}

	past := MustFromRows([][]int{
		{4096, 0},
		{0, 2},
	})
	if IsWon(past, DefaultTarget) {
		t.Error("a grid without the exact target tile should not be won")
	}
}

func TestIsOver(t *testing.T) {
	checkerboard := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	if !IsOver(MustFromRows(checkerboard)) {
		t.Error("full checkerboard should be game over")
	}

	withPair := MustFromRows(checkerboard)
	withPair.Set(Pos{0, 1}, 2)
	if IsOver(withPair) {
		t.Error("board with adjacent equal pair should not be game over")
	}

	withEmpty := MustFromRows(checkerboard)
	withEmpty.Set(Pos{3, 3}, 0)
	if IsOver(withEmpty) {
		t.Error("board with empty cell should not be game over")
	}
}

func TestEngineTarget(t *testing.T) {
	if got := New(nil, -5).Target(); got != 0 {
		t.Errorf("Target() = %d, want 0", got)
	}
	if got := New(nil, DefaultTarget).Target(); got != DefaultTarget {
		t.Errorf("Target() = %d, want %d", got, DefaultTarget)
	}
}
