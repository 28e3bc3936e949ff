// Package combo finds combo groups: maximal connected regions of one drop id
// built from horizontal and vertical runs of at least three.
package combo

import (
	"sort"

	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// Group is one logically simultaneous removal unit
// Rank orders fade animation only and is not stable across cascade rounds
type Group struct {
	Rank      int
	ID        drop.ID
	Positions []grid.Position
}

// Result lists groups by ascending rank; Groups[i].Rank == i+1
type Result struct {
	Count  int
	Groups []Group
}

// Removed returns the number of cells covered by all groups
func (r Result) Removed() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Positions)
	}
	return n
}

// Positions returns the union of all group footprints in rank order
func (r Result) Positions() []grid.Position {
	out := make([]grid.Position, 0, r.Removed())
	for _, g := range r.Groups {
		out = append(out, g.Positions...)
	}
	return out
}

// Find scans a stable grid for combo groups
// Empty and disabled ids never participate; lock/power/combo/nail are ignored
func Find(g *grid.Grid, disabled drop.Set) Result {
	ids := g.IDs()
	marked := markRuns(ids, disabled)
	groups := mergeAdjacent(ids, marked)
	return rank(ids, groups)
}

// markRuns flags cells on a horizontal run starting at the cell or a vertical
// run ending at it
func markRuns(ids [][]drop.ID, disabled drop.Set) [][]bool {
	rows, cols := len(ids), len(ids[0])
	n := constants.MinMatchLength

	marked := make([][]bool, rows)
	for y := range marked {
		marked[y] = make([]bool, cols)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id := ids[y][x]
			if !disabled.Matchable(id) {
				continue
			}

			if x+n-1 < cols {
				run := true
				for i := 1; i < n; i++ {
					if ids[y][x+i] != id {
						run = false
						break
					}
				}
				if run {
					for i := 0; i < n; i++ {
						marked[y][x+i] = true
					}
				}
			}

			if y-n+1 >= 0 {
				run := true
				for i := 1; i < n; i++ {
					if ids[y-i][x] != id {
						run = false
						break
					}
				}
				if run {
					for i := 0; i < n; i++ {
						marked[y-i][x] = true
					}
				}
			}
		}
	}
	return marked
}

// mergeAdjacent labels every marked cell and unions same-id right/up neighbours
// The smaller label absorbs the larger one; member lists are concatenated
func mergeAdjacent(ids [][]drop.ID, marked [][]bool) map[int][]grid.Position {
	rows, cols := len(ids), len(ids[0])

	labels := make([][]int, rows)
	members := make(map[int][]grid.Position)
	for y := 0; y < rows; y++ {
		labels[y] = make([]int, cols)
		for x := 0; x < cols; x++ {
			if !marked[y][x] {
				continue
			}
			l := y*cols + x + 1
			labels[y][x] = l
			members[l] = []grid.Position{grid.Pos(x, y)}
		}
	}

	union := func(a, b grid.Position) {
		la, lb := labels[a.Y][a.X], labels[b.Y][b.X]
		if la == lb {
			return
		}
		small, large := la, lb
		if large < small {
			small, large = large, small
		}
		for _, p := range members[large] {
			labels[p.Y][p.X] = small
		}
		members[small] = append(members[small], members[large]...)
		delete(members, large)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !marked[y][x] {
				continue
			}
			if x+1 < cols && marked[y][x+1] && ids[y][x+1] == ids[y][x] {
				union(grid.Pos(x, y), grid.Pos(x+1, y))
			}
			if y+1 < rows && marked[y+1][x] && ids[y+1][x] == ids[y][x] {
				union(grid.Pos(x, y), grid.Pos(x, y+1))
			}
		}
	}
	return members
}

// rank renumbers surviving labels to 1..K in label order
func rank(ids [][]drop.ID, members map[int][]grid.Position) Result {
	labels := make([]int, 0, len(members))
	for l := range members {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	res := Result{Count: len(labels), Groups: make([]Group, 0, len(labels))}
	for i, l := range labels {
		ps := members[l]
		res.Groups = append(res.Groups, Group{
			Rank:      i + 1,
			ID:        ids[ps[0].Y][ps[0].X],
			Positions: ps,
		})
	}
	return res
}
