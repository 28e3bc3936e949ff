package board

import (
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// Cell is the drawable state of one board cell
type Cell struct {
	ID       drop.ID `json:"id"`
	Lock     bool    `json:"lock,omitempty"`
	Power    int     `json:"power,omitempty"`
	Combo    bool    `json:"combo,omitempty"`
	Nail     bool    `json:"nail,omitempty"`
	Disabled bool    `json:"disabled,omitempty"`
	Held     bool    `json:"held,omitempty"`
}

// Snapshot is a read-only copy of the board, safe to hand to other goroutines
// Cells is indexed [y][x] with row 0 at the bottom
type Snapshot struct {
	Cols     int           `json:"cols"`
	Rows     int           `json:"rows"`
	Mode     Mode          `json:"mode"`
	Skyfall  bool          `json:"skyfall"`
	Cleared  bool          `json:"cleared"`
	Busy     bool          `json:"busy"`
	State    string        `json:"state"`
	Held     grid.Position `json:"held"`
	Disabled []drop.ID     `json:"disabled"`
	Cells    [][]Cell      `json:"cells"`
}

// At returns the cell at p; p must be in range
func (s *Snapshot) At(p grid.Position) Cell {
	return s.Cells[p.Y][p.X]
}

// Snapshot copies the current board state
func (b *Board) Snapshot() Snapshot {
	g := b.current
	held := b.Held()
	s := Snapshot{
		Cols:     g.Cols(),
		Rows:     g.Rows(),
		Mode:     b.mode,
		Skyfall:  b.skyfall,
		Cleared:  b.cleared,
		Busy:     b.resolver.Busy(),
		State:    b.resolver.State(),
		Held:     held,
		Disabled: b.disabled.Sorted(),
		Cells:    make([][]Cell, g.Rows()),
	}
	for y := range s.Cells {
		s.Cells[y] = make([]Cell, g.Cols())
	}
	g.Each(func(p grid.Position, d *drop.Drop) {
		s.Cells[p.Y][p.X] = Cell{
			ID:       d.ID(),
			Lock:     d.Lock(),
			Power:    d.Power(),
			Combo:    d.Combo(),
			Nail:     d.Nail(),
			Disabled: b.disabled.Has(d.ID()),
			Held:     p.Equal(held),
		}
	})
	return s
}
