package grid

// Swap exchanges the drops at p1 and p2; swapping a cell with itself is a no-op
// Both positions must be in range, the call panics otherwise
func (g *Grid) Swap(p1, p2 Position) {
	g.mustInBounds(p1)
	g.mustInBounds(p2)
	g.cells[p1.Y][p1.X], g.cells[p2.Y][p2.X] = g.cells[p2.Y][p2.X], g.cells[p1.Y][p1.X]
}

// Swap is the package-level form used as a path-emulation step
func Swap(g *Grid, p1, p2 Position) {
	g.Swap(p1, p2)
}
