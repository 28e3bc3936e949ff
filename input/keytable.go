package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/palette"
)

// KeyEntry describes a key's action without function pointers
type KeyEntry struct {
	Intent IntentType
	Mode   board.Mode
	ID     drop.ID
	Tool   palette.Tool
	Size   int
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyCtrlS:  {Intent: IntentToggleMute},
		},

		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},

			// Board
			'p': {Intent: IntentMode, Mode: board.ModePuzzle},
			'e': {Intent: IntentMode, Mode: board.ModePalette},
			'r': {Intent: IntentRandomize},
			'c': {Intent: IntentClear},
			' ': {Intent: IntentReset},
			'[': {Intent: IntentShrink},
			']': {Intent: IntentGrow},
			's': {Intent: IntentToggleSkyfall},

			// Brush tools
			'l': {Intent: IntentBrushTool, Tool: palette.ToolLock},
			'+': {Intent: IntentBrushTool, Tool: palette.ToolPowerUp},
			'-': {Intent: IntentBrushTool, Tool: palette.ToolPowerDown},
			'm': {Intent: IntentBrushTool, Tool: palette.ToolCombo},
			'n': {Intent: IntentBrushTool, Tool: palette.ToolNail},
			'x': {Intent: IntentBrushTool, Tool: palette.ToolErase},
			'd': {Intent: IntentToggleDisabled},
		},
	}

	// F1.. jump to the quick board sizes
	for i, n := range constants.BoardSizes {
		kt.SpecialKeys[tcell.KeyF1+tcell.Key(i)] = KeyEntry{Intent: IntentBoardSize, Size: n}
	}

	// Digits select the brush id in palette order
	for i := 0; i < drop.Count; i++ {
		kt.Runes[rune('0'+i)] = KeyEntry{Intent: IntentBrushID, ID: drop.ID(i)}
	}
	return kt
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: cloneMap(kt.SpecialKeys),
		Runes:       cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]KeyEntry) map[K]KeyEntry {
	c := make(map[K]KeyEntry, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
