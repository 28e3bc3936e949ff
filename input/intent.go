package input

import (
	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/grid"
	"github.com/lixenwraith/drop-puzzle/palette"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentToggleMute // Ctrl+S
	IntentResize     // Terminal resize event

	// Pointer
	IntentPointerDown
	IntentPointerMove
	IntentPointerUp

	// Board operations
	IntentMode          // p, e
	IntentRandomize     // r
	IntentClear         // c
	IntentReset         // space
	IntentShrink        // [
	IntentGrow          // ]
	IntentBoardSize     // F1-F3
	IntentToggleSkyfall // s

	// Palette
	IntentBrushID        // 0-9
	IntentBrushTool      // l, +, -, m, n, x
	IntentToggleDisabled // d
)

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type IntentType
	Pos  grid.Position
	Mode board.Mode
	ID   drop.ID
	Tool palette.Tool
	Size int
}
