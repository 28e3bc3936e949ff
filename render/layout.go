package render

import (
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// Layout maps board cells to screen tiles
// Row 0 is the bottom row, so it is drawn last on screen
type Layout struct {
	OriginX int
	OriginY int
	Cols    int
	Rows    int
}

// NewLayout places a cols x rows board at the standard offsets
func NewLayout(cols, rows int) Layout {
	return Layout{
		OriginX: constants.BoardOffsetX,
		OriginY: constants.BoardOffsetY,
		Cols:    cols,
		Rows:    rows,
	}
}

// Width returns the board width in screen columns
func (l Layout) Width() int { return l.Cols * constants.TileWidth }

// Height returns the board height in screen rows
func (l Layout) Height() int { return l.Rows * constants.TileHeight }

// TileOrigin returns the top-left screen cell of p's tile
func (l Layout) TileOrigin(p grid.Position) (int, int) {
	return l.OriginX + p.X*constants.TileWidth, l.rowTop(float64(p.Y))
}

// rowTop converts a fractional board row to the screen row of its tile top
func (l Layout) rowTop(y float64) int {
	return l.OriginY + int((float64(l.Rows-1)-y)*constants.TileHeight+0.5)
}

// CellAt returns the board cell under screen position (sx, sy)
func (l Layout) CellAt(sx, sy int) (grid.Position, bool) {
	dx, dy := sx-l.OriginX, sy-l.OriginY
	if dx < 0 || dy < 0 || dx >= l.Width() || dy >= l.Height() {
		return grid.EmptyPos(), false
	}
	return grid.Pos(dx/constants.TileWidth, l.Rows-1-dy/constants.TileHeight), true
}

// ClampCell returns the nearest board cell to (sx, sy)
// Drags leaving the board keep tracking along its edge
func (l Layout) ClampCell(sx, sy int) grid.Position {
	if l.Cols == 0 || l.Rows == 0 {
		return grid.EmptyPos()
	}
	sx = min(max(sx, l.OriginX), l.OriginX+l.Width()-1)
	sy = min(max(sy, l.OriginY), l.OriginY+l.Height()-1)
	p, _ := l.CellAt(sx, sy)
	return p
}
