package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// disabledLevel is the brightness of drops excluded from matching
const disabledLevel = 0.35

// backgroundLayer paints the screen and the checkered tiles
type backgroundLayer struct{}

func (backgroundLayer) Render(ctx *RenderContext, scr tcell.Screen) {
	scr.Fill(' ', tcell.StyleDefault.Background(RgbBackground))

	l := ctx.Layout
	for y := 0; y < l.Rows; y++ {
		for x := 0; x < l.Cols; x++ {
			p := grid.Pos(x, y)
			bg := tileColor(x, y)
			if p.Equal(ctx.Board.Held) {
				bg = RgbHeld
			}
			tx, ty := l.TileOrigin(p)
			st := tcell.StyleDefault.Background(bg)
			for dy := 0; dy < constants.TileHeight; dy++ {
				for dx := 0; dx < constants.TileWidth; dx++ {
					scr.SetContent(tx+dx, ty+dy, ' ', nil, st)
				}
			}
		}
	}
}

// dropLayer draws resting drops with their modifier markers
type dropLayer struct{}

func (dropLayer) Render(ctx *RenderContext, scr tcell.Screen) {
	l := ctx.Layout
	for y := 0; y < l.Rows; y++ {
		for x := 0; x < l.Cols; x++ {
			p := grid.Pos(x, y)
			c := ctx.Board.At(p)
			if c.ID < 0 || ctx.Anim.Covered(p) {
				continue
			}
			tx, ty := l.TileOrigin(p)
			level := 1.0
			if c.Disabled {
				level = disabledLevel
			}
			drawDrop(scr, tx, ty, c, level)
		}
	}
}

// effectLayer draws fading groups and falling drops
type effectLayer struct{}

func (effectLayer) Render(ctx *RenderContext, scr tcell.Screen) {
	l := ctx.Layout
	for _, f := range ctx.Anim.fades {
		level := fadeLevel(f, ctx.Now)
		if level <= 0 || f.pos.X >= l.Cols || f.pos.Y >= l.Rows {
			continue
		}
		tx, ty := l.TileOrigin(f.pos)
		drawDrop(scr, tx, ty, board.Cell{ID: f.id}, level)
	}
	for _, f := range ctx.Anim.falls {
		if f.x >= l.Cols {
			continue
		}
		ty := l.rowTop(fallRow(f, ctx.Now))
		// Spawned drops stay hidden until they cross the top edge
		if ty < l.OriginY || ty >= l.OriginY+l.Height() {
			continue
		}
		drawDrop(scr, l.OriginX+f.x*constants.TileWidth, ty, f.cell, 1)
	}
}

// statusLayer draws the mode line and metrics under the board
type statusLayer struct{}

func (statusLayer) Render(ctx *RenderContext, scr tcell.Screen) {
	l := ctx.Layout
	y := l.OriginY + l.Height() + 1
	x := l.OriginX

	modeColor := RgbModePuzzle
	if ctx.Board.Mode == board.ModePalette {
		modeColor = RgbModeEdit
	}
	base := tcell.StyleDefault.Background(RgbBackground)
	x = drawText(scr, x, y, "["+ctx.Board.Mode.String()+"]", base.Foreground(modeColor).Bold(true))

	sky := "off"
	if ctx.Board.Skyfall {
		sky = "on"
	}
	line := " " + ctx.Board.State + "  skyfall " + sky
	if ctx.Status != "" {
		line += "  " + ctx.Status
	}
	drawText(scr, x, y, line, base.Foreground(RgbStatusBar))

	if ctx.Stats != "" && constants.StatusBarHeight > 1 {
		drawText(scr, l.OriginX, y+1, ctx.Stats, base.Foreground(RgbStatusDim))
	}
}

// drawDrop draws one drop into the tile at (tx, ty), keeping the tile background
func drawDrop(scr tcell.Screen, tx, ty int, c board.Cell, level float64) {
	glyph, color := DropGlyph(c.ID)
	putFg(scr, tx+1, ty, glyph, Dim(color, level))

	marker := Dim(RgbMarker, level)
	switch {
	case c.Power > 0:
		putFg(scr, tx+2, ty, '+', marker)
	case c.Power < 0:
		putFg(scr, tx+2, ty, '-', marker)
	}
	if c.Lock {
		putFg(scr, tx+3, ty, '#', Dim(RgbLock, level))
	}
	if c.Combo {
		putFg(scr, tx+1, ty+1, 'c', marker)
	}
	if c.Nail {
		putFg(scr, tx+2, ty+1, 'n', marker)
	}
}

// putFg sets a rune and foreground, preserving the cell's background
func putFg(scr tcell.Screen, x, y int, r rune, fg tcell.Color) {
	_, _, st, _ := scr.GetContent(x, y)
	scr.SetContent(x, y, r, nil, st.Foreground(fg))
}

// drawText writes s starting at (x, y) and returns the column after it
func drawText(scr tcell.Screen, x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		scr.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}
