package grid

import "github.com/lixenwraith/drop-puzzle/drop"

// Move describes one drop's fall within its column
// Spawned drops enter from above the board, so FromY >= Rows()
type Move struct {
	X       int
	FromY   int
	ToY     int
	Drop    *drop.Drop
	Spawned bool
}

// FallResult is the logical outcome of gravity, computed before any animation
type FallResult struct {
	Grid  *Grid
	Moves []Move
}

// Fall compacts every column toward row 0 and refills vacated top cells
//
// Surviving drops keep their relative order within a column. A nil refill
// fills vacated cells with empty sentinels (clear mode / skyfall off).
// The receiver is left untouched; drops are shared with the result.
func (g *Grid) Fall(refill drop.Factory) FallResult {
	next := &Grid{cols: g.cols, rows: g.rows}
	next.cells = make([][]*drop.Drop, g.rows)
	for y := range next.cells {
		next.cells[y] = make([]*drop.Drop, g.cols)
	}

	var moves []Move
	for x := 0; x < g.cols; x++ {
		to := 0
		for y := 0; y < g.rows; y++ {
			d := g.cells[y][x]
			if d.IsEmpty() {
				continue
			}
			next.cells[to][x] = d
			if to != y {
				moves = append(moves, Move{X: x, FromY: y, ToY: to, Drop: d})
			}
			to++
		}

		spawned := 0
		for y := to; y < g.rows; y++ {
			if refill == nil {
				next.cells[y][x] = drop.NewEmpty()
				continue
			}
			d := refill()
			next.cells[y][x] = d
			moves = append(moves, Move{X: x, FromY: g.rows + spawned, ToY: y, Drop: d, Spawned: true})
			spawned++
		}
	}

	return FallResult{Grid: next, Moves: moves}
}

// HasEmpty reports whether any cell holds the empty sentinel
func (g *Grid) HasEmpty() bool {
	for _, row := range g.cells {
		for _, d := range row {
			if d.IsEmpty() {
				return true
			}
		}
	}
	return false
}
