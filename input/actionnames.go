package input

import (
	"sort"
	"strconv"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/palette"
)

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	r := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		// System
		"quit":        {Intent: IntentQuit},
		"toggle_mute": {Intent: IntentToggleMute},

		// Board
		"mode_puzzle":     {Intent: IntentMode, Mode: board.ModePuzzle},
		"mode_palette":    {Intent: IntentMode, Mode: board.ModePalette},
		"randomize":       {Intent: IntentRandomize},
		"clear":           {Intent: IntentClear},
		"reset":           {Intent: IntentReset},
		"shrink":          {Intent: IntentShrink},
		"grow":            {Intent: IntentGrow},
		"toggle_skyfall":  {Intent: IntentToggleSkyfall},
		"toggle_disabled": {Intent: IntentToggleDisabled},

		// Brush tools
		"tool_lock":       {Intent: IntentBrushTool, Tool: palette.ToolLock},
		"tool_power_up":   {Intent: IntentBrushTool, Tool: palette.ToolPowerUp},
		"tool_power_down": {Intent: IntentBrushTool, Tool: palette.ToolPowerDown},
		"tool_combo":      {Intent: IntentBrushTool, Tool: palette.ToolCombo},
		"tool_nail":       {Intent: IntentBrushTool, Tool: palette.ToolNail},
		"tool_erase":      {Intent: IntentBrushTool, Tool: palette.ToolErase},
	}

	// size_5, size_6, size_7
	for _, n := range constants.BoardSizes {
		r["size_"+strconv.Itoa(n)] = KeyEntry{Intent: IntentBoardSize, Size: n}
	}

	// brush_fire, brush_water, ...
	for i := 0; i < drop.Count; i++ {
		id := drop.ID(i)
		r["brush_"+id.String()] = KeyEntry{Intent: IntentBrushID, ID: id}
	}
	return r
}

// ActionEntry resolves a canonical action name to its KeyEntry
// Returns zero KeyEntry and false if name is unknown
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
