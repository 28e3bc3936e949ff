// Package grid holds the board matrix, cell coordinates, the swap engine,
// drag-path emulation and gravity compaction.
//
// Coordinates: x grows to the right, y grows upward. Row 0 is the bottom row,
// gravity pulls toward it and refills enter from row Rows()-1.
package grid

import (
	"fmt"

	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
)

// Grid is a Cols() x Rows() matrix of drops with Rows() == Cols()-1
// Every cell holds a non-nil drop; removed cells hold an empty-sentinel drop
type Grid struct {
	cols, rows int
	cells      [][]*drop.Drop // [y][x]
}

// New builds a grid of size columns and size-1 rows filled by factory
// A nil factory draws from the playable palette. Panics on size < 2
func New(size int, factory drop.Factory) *Grid {
	if size < constants.MinBoardSize {
		panic(fmt.Sprintf("grid: invalid size %d (minimum %d)", size, constants.MinBoardSize))
	}
	if factory == nil {
		factory = drop.RandomFactory(nil)
	}
	g := &Grid{cols: size, rows: size - 1}
	g.cells = make([][]*drop.Drop, g.rows)
	for y := range g.cells {
		g.cells[y] = make([]*drop.Drop, g.cols)
		for x := range g.cells[y] {
			g.cells[y][x] = factory()
		}
	}
	return g
}

// FromIDs builds a grid from bottom-up rows of ids (rows[0] is y=0)
// Panics unless the rows form an N x (N-1) rectangle
func FromIDs(rows [][]drop.ID) *Grid {
	if len(rows) == 0 {
		panic("grid: no rows")
	}
	cols := len(rows[0])
	if cols != len(rows)+1 {
		panic(fmt.Sprintf("grid: %d rows need %d columns, got %d", len(rows), len(rows)+1, cols))
	}
	g := &Grid{cols: cols, rows: len(rows)}
	g.cells = make([][]*drop.Drop, g.rows)
	for y, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("grid: row %d has %d columns, want %d", y, len(row), cols))
		}
		g.cells[y] = make([]*drop.Drop, cols)
		for x, id := range row {
			g.cells[y][x] = drop.New(id)
		}
	}
	return g
}

// Cols returns the board width N
func (g *Grid) Cols() int { return g.cols }

// Rows returns the board height N-1
func (g *Grid) Rows() int { return g.rows }

// Size returns the column count, the value board sizes are expressed in
func (g *Grid) Size() int { return g.cols }

// InBounds reports whether p is a concrete cell of this grid
func (g *Grid) InBounds(p Position) bool {
	return !p.IsEmpty() && p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Grid) mustInBounds(p Position) {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: position %v out of range for %dx%d board", p, g.cols, g.rows))
	}
}

// At returns the drop at p; panics when p is out of range
func (g *Grid) At(p Position) *drop.Drop {
	g.mustInBounds(p)
	return g.cells[p.Y][p.X]
}

// Set replaces the drop at p; panics when p is out of range or d is nil
func (g *Grid) Set(p Position, d *drop.Drop) {
	g.mustInBounds(p)
	if d == nil {
		panic(fmt.Sprintf("grid: nil drop at %v", p))
	}
	g.cells[p.Y][p.X] = d
}

// Each visits cells bottom row first, left to right
func (g *Grid) Each(fn func(p Position, d *drop.Drop)) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(Pos(x, y), g.cells[y][x])
		}
	}
}

// Clone deep-copies every drop including flags
func (g *Grid) Clone() *Grid {
	c := &Grid{cols: g.cols, rows: g.rows}
	c.cells = make([][]*drop.Drop, g.rows)
	for y, row := range g.cells {
		c.cells[y] = make([]*drop.Drop, g.cols)
		for x, d := range row {
			c.cells[y][x] = d.Clone()
		}
	}
	return c
}

// CopyFrom adopts the drops of o in place so holders of g observe the new layout
// Panics on dimension mismatch
func (g *Grid) CopyFrom(o *Grid) {
	if o.cols != g.cols || o.rows != g.rows {
		panic(fmt.Sprintf("grid: copy %dx%d into %dx%d", o.cols, o.rows, g.cols, g.rows))
	}
	for y := range g.cells {
		copy(g.cells[y], o.cells[y])
	}
}

// Fill replaces every cell with a factory product
func (g *Grid) Fill(factory drop.Factory) {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = factory()
		}
	}
}

// Resized builds a size-column grid, cloning the top-left region of g
// and filling the remainder from factory
func (g *Grid) Resized(size int, factory drop.Factory) *Grid {
	n := New(size, factory)
	// Rows align at the top edge; a shrink drops bottom rows, a grow adds them
	for k := 0; k < min(g.rows, n.rows); k++ {
		src, dst := g.rows-1-k, n.rows-1-k
		for x := 0; x < min(g.cols, n.cols); x++ {
			n.cells[dst][x] = g.cells[src][x].Clone()
		}
	}
	return n
}

// IDs returns the id matrix, bottom row first
func (g *Grid) IDs() [][]drop.ID {
	out := make([][]drop.ID, g.rows)
	for y, row := range g.cells {
		out[y] = make([]drop.ID, g.cols)
		for x, d := range row {
			out[y][x] = d.ID()
		}
	}
	return out
}

// Equal compares dimensions, ids and modifiers cell by cell
func (g *Grid) Equal(o *Grid) bool {
	if g.cols != o.cols || g.rows != o.rows {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if !g.cells[y][x].Equal(o.cells[y][x]) {
				return false
			}
		}
	}
	return true
}
