// Package palette is the edit tool applied to cells visited by palette-mode drags.
package palette

import (
	"fmt"

	"github.com/lixenwraith/drop-puzzle/drop"
)

// Tool selects what a brush stroke does to a drop
type Tool int

const (
	ToolSetID Tool = iota
	ToolLock
	ToolPowerUp
	ToolPowerDown
	ToolCombo
	ToolNail
	ToolErase
)

var toolNames = [...]string{
	ToolSetID:     "id",
	ToolLock:      "lock",
	ToolPowerUp:   "power+",
	ToolPowerDown: "power-",
	ToolCombo:     "combo",
	ToolNail:      "nail",
	ToolErase:     "erase",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Brush is the palette selection: a tool plus the drop id used by ToolSetID
type Brush struct {
	Tool Tool
	ID   drop.ID
}

// NewBrush returns a brush painting fire drops
func NewBrush() *Brush {
	return &Brush{Tool: ToolSetID, ID: drop.Fire}
}

// SelectID switches to painting id
func (b *Brush) SelectID(id drop.ID) {
	b.Tool = ToolSetID
	b.ID = id
}

// SelectTool switches to a modifier tool, keeping the selected id
func (b *Brush) SelectTool(t Tool) {
	b.Tool = t
}

// Apply performs one stroke on d
// Modifier tools on non-playable drops are silently ignored by the drop itself
func (b *Brush) Apply(d *drop.Drop) {
	switch b.Tool {
	case ToolSetID:
		d.SetID(b.ID)
	case ToolLock:
		d.SetLock(!d.Lock())
	case ToolPowerUp:
		d.SetPower(d.Power() + 1)
	case ToolPowerDown:
		d.SetPower(d.Power() - 1)
	case ToolCombo:
		d.SetCombo(!d.Combo())
	case ToolNail:
		d.SetNail(!d.Nail())
	case ToolErase:
		d.SetID(drop.Empty)
	}
}

// String describes the brush for the status line
func (b *Brush) String() string {
	if b.Tool == ToolSetID {
		return "paint " + b.ID.String()
	}
	return b.Tool.String()
}
