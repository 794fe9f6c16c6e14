// Package engine implements the sliding-tile merge rules of 2048.
// It contains no I/O and no platform dependencies: every operation takes a
// grid and returns a new one, so game state can be held, copied and replayed
// freely by the caller.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// ErrInvalidGrid is returned when grid data is not a square of empty or
// power-of-two cells.
var ErrInvalidGrid = errors.New("engine: invalid grid")

// Pos is a cell coordinate on the grid.
type Pos struct {
	Row int
	Col int
}

// Add returns the position offset by v.
func (p Pos) Add(v Vector) Pos {
	return Pos{Row: p.Row + v.Row, Col: p.Col + v.Col}
}

// Tile is a non-empty cell, used by snapshots and renderers.
type Tile struct {
	Row   int
	Col   int
	Value int
}

// Pos returns the tile position.
func (t Tile) Pos() Pos {
	return Pos{Row: t.Row, Col: t.Col}
}

// Grid is an N×N board of cell values stored row-major. A zero value means
// the cell is empty. Methods that change cells operate on the receiver, so
// callers that need the old state must Clone first.
type Grid struct {
	n     int
	cells []int
}

// NewGrid returns an empty n×n grid. It panics if n < 2.
func NewGrid(n int) Grid {
	if n < 2 {
		panic(fmt.Sprintf("engine: grid size %d is too small", n))
	}
	return Grid{n: n, cells: make([]int, n*n)}
}

// FromRows builds a grid from row data, validating shape and values.
func FromRows(rows [][]int) (Grid, error) {
	n := len(rows)
	if n < 2 {
		return Grid{}, fmt.Errorf("%w: need at least 2 rows, got %d", ErrInvalidGrid, n)
	}

	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), n)
		}
		for c, v := range row {
			if v != 0 && !isTileValue(v) {
				return Grid{}, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidGrid, r, c, v)
			}
			g.cells[r*n+c] = v
		}
	}
	return g, nil
}

// MustFromRows is FromRows for literals in tests and tables.
func MustFromRows(rows [][]int) Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return g.n
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.n && p.Col >= 0 && p.Col < g.n
}

// At returns the value at p. Out-of-bounds positions read as empty.
func (g Grid) At(p Pos) int {
	if !g.InBounds(p) {
		return 0
	}
	return g.cells[p.Row*g.n+p.Col]
}

// Set writes v at p. Out-of-bounds writes are ignored.
func (g Grid) Set(p Pos, v int) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Row*g.n+p.Col] = v
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{n: g.n, cells: cells}
}

// Equal reports whether both grids have the same size and cells.
func (g Grid) Equal(other Grid) bool {
	if g.n != other.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the cells as a fresh slice of rows.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.n)
	for r := range g.n {
		rows[r] = make([]int, g.n)
		copy(rows[r], g.cells[r*g.n:(r+1)*g.n])
	}
	return rows
}

// Tiles lists the occupied cells in row-major order.
func (g Grid) Tiles() []Tile {
	var tiles []Tile
	for r := range g.n {
		for c := range g.n {
			if v := g.cells[r*g.n+c]; v != 0 {
				tiles = append(tiles, Tile{Row: r, Col: c, Value: v})
			}
		}
	}
	return tiles
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (g Grid) EmptyCells() []Pos {
	var cells []Pos
	for r := range g.n {
		for c := range g.n {
			if g.cells[r*g.n+c] == 0 {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// MaxTile returns the highest value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Sum returns the total of all cell values.
func (g Grid) Sum() int {
	total := 0
	for _, v := range g.cells {
		total += v
	}
	return total
}

// String renders the grid as right-aligned columns, "." for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	for r := range g.n {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range g.n {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if v := g.cells[r*g.n+c]; v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
	}
	return b.String()
}
