package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/drop"
)

// Board colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbTileLight  = tcell.NewRGBColor(52, 40, 30) // Checker light
	RgbTileDark   = tcell.NewRGBColor(38, 28, 22) // Checker dark
	RgbHeld       = tcell.NewRGBColor(90, 90, 110)
	RgbMarker     = tcell.NewRGBColor(255, 255, 255)
	RgbLock       = tcell.NewRGBColor(200, 200, 200)
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusDim  = tcell.NewRGBColor(140, 140, 150)
	RgbModePuzzle = tcell.NewRGBColor(0, 200, 0)
	RgbModeEdit   = tcell.NewRGBColor(255, 165, 0)
)

// dropStyles is indexed by drop id
var dropStyles = [drop.Count]struct {
	glyph rune
	color tcell.Color
}{
	drop.Fire:         {'▲', tcell.NewRGBColor(255, 80, 60)},
	drop.Water:        {'●', tcell.NewRGBColor(80, 150, 255)},
	drop.Wood:         {'♣', tcell.NewRGBColor(60, 200, 80)},
	drop.Light:        {'✦', tcell.NewRGBColor(255, 230, 90)},
	drop.Dark:         {'◆', tcell.NewRGBColor(180, 90, 220)},
	drop.Heal:         {'♥', tcell.NewRGBColor(255, 130, 190)},
	drop.Poison:       {'✚', tcell.NewRGBColor(150, 60, 200)},
	drop.DeadlyPoison: {'✖', tcell.NewRGBColor(110, 0, 130)},
	drop.Trash:        {'▪', tcell.NewRGBColor(130, 130, 130)},
	drop.Bomb:         {'✹', tcell.NewRGBColor(255, 140, 0)},
}

// DropGlyph returns the glyph and color of id; Empty and unknown ids render blank
func DropGlyph(id drop.ID) (rune, tcell.Color) {
	if id < 0 || int(id) >= len(dropStyles) {
		return ' ', tcell.ColorDefault
	}
	s := dropStyles[id]
	return s.glyph, s.color
}

// Dim scales c toward black; factor 1 keeps c, 0 yields black
func Dim(c tcell.Color, factor float64) tcell.Color {
	factor = min(max(factor, 0), 1)
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	return tcell.NewRGBColor(
		int32(float64(r)*factor),
		int32(float64(g)*factor),
		int32(float64(b)*factor),
	)
}

// tileColor returns the checkerboard background of a cell
func tileColor(x, y int) tcell.Color {
	if (x+y)%2 == 0 {
		return RgbTileDark
	}
	return RgbTileLight
}
