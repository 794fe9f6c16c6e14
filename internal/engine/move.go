package engine

// TileMove records where a tile travelled during a slide. Renderers use it
// to animate from the prior position; it plays no part in correctness.
type TileMove struct {
	From   Pos
	To     Pos
	Value  int  // Value before the move
	Merged bool // The tile was absorbed into the tile at To
}

// traversals holds the visiting order for rows and columns.
type traversals struct {
	rows []int
	cols []int
}

// buildTraversals orders rows and columns so that cells nearest the edge
// being moved towards are visited first.
func buildTraversals(n int, v Vector) traversals {
	t := traversals{rows: make([]int, n), cols: make([]int, n)}
	for i := range n {
		t.rows[i] = i
		t.cols[i] = i
	}
	if v.Row == 1 {
		reverse(t.rows)
	}
	if v.Col == 1 {
		reverse(t.cols)
	}
	return t
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// findFarthest walks from p along v while the next cell is on the grid and
// empty. It returns the last empty cell reached and the first blocking cell,
// which may be off the grid.
func findFarthest(g Grid, p Pos, v Vector) (farthest, next Pos) {
	farthest = p
	next = p.Add(v)
	for g.InBounds(next) && g.At(next) == 0 {
		farthest = next
		next = next.Add(v)
	}
	return farthest, next
}

// Slide moves every tile as far as possible in dir, merging equal
// neighbours. A cell produced by a merge cannot absorb another tile during
// the same slide. The input grid is not modified; no tile is spawned.
// Returns the new grid, the points scored, the per-tile moves and whether
// anything changed.
func Slide(grid Grid, dir Direction) (Grid, int, []TileMove, bool, error) {
	v, err := dir.Vector()
	if err != nil {
		return grid, 0, nil, false, err
	}

	next := grid.Clone()
	n := next.Size()
	mergedAt := make([]bool, n*n)
	order := buildTraversals(n, v)

	score := 0
	moved := false
	var moves []TileMove

	for _, r := range order.rows {
		for _, c := range order.cols {
			from := Pos{Row: r, Col: c}
			value := next.At(from)
			if value == 0 {
				continue
			}

			farthest, blocker := findFarthest(next, from, v)

			if next.InBounds(blocker) && next.At(blocker) == value && !mergedAt[blocker.Row*n+blocker.Col] {
				doubled := value * 2
				next.Set(from, 0)
				next.Set(blocker, doubled)
				mergedAt[blocker.Row*n+blocker.Col] = true
				score += doubled
				moved = true
				moves = append(moves, TileMove{From: from, To: blocker, Value: value, Merged: true})
				continue
			}

			if farthest != from {
				next.Set(from, 0)
				next.Set(farthest, value)
				moved = true
				moves = append(moves, TileMove{From: from, To: farthest, Value: value})
			}
		}
	}

	if !moved {
		return grid, 0, nil, false, nil
	}
	return next, score, moves, true, nil
}

// CanMove reports whether sliding in dir would change the grid.
func CanMove(grid Grid, dir Direction) bool {
	_, _, _, moved, err := Slide(grid, dir)
	return err == nil && moved
}
