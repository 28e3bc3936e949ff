// Package input turns terminal events into board commands.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/grid"
)

// CellMapper converts screen coordinates to board cells
type CellMapper interface {
	CellAt(sx, sy int) (grid.Position, bool)
	ClampCell(sx, sy int) grid.Position
}

// Translator parses tcell events into Intents
// The left mouse button is the single pointer; a press off the board starts no session
type Translator struct {
	keys   *KeyTable
	mapper CellMapper

	pressed bool // left button held
	active  bool // press landed on the board
}

// NewTranslator creates a translator; nil keys uses the default table
func NewTranslator(keys *KeyTable, mapper CellMapper) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Translator{keys: keys, mapper: mapper}
}

// Process parses a terminal event and returns an Intent
// Returns nil if the event maps to nothing
func (t *Translator) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return t.processKey(ev)
	case *tcell.EventMouse:
		return t.processMouse(ev)
	}
	return nil
}

func (t *Translator) processKey(ev *tcell.EventKey) *Intent {
	return t.lookup(ev.Key(), ev.Rune())
}

// lookup resolves a key press; r is only consulted for tcell.KeyRune
func (t *Translator) lookup(k tcell.Key, r rune) *Intent {
	var (
		entry KeyEntry
		ok    bool
	)
	if k == tcell.KeyRune {
		entry, ok = t.keys.Runes[r]
	} else {
		entry, ok = t.keys.SpecialKeys[k]
	}
	if !ok || entry.Intent == IntentNone {
		return nil
	}
	return &Intent{Type: entry.Intent, Mode: entry.Mode, ID: entry.ID, Tool: entry.Tool, Size: entry.Size}
}

func (t *Translator) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !t.pressed:
		t.pressed = true
		p, ok := t.mapper.CellAt(x, y)
		if !ok {
			return nil
		}
		t.active = true
		return &Intent{Type: IntentPointerDown, Pos: p}

	case down && t.active:
		// Drags leaving the board track along its edge
		return &Intent{Type: IntentPointerMove, Pos: t.mapper.ClampCell(x, y)}

	case !down && t.pressed:
		t.pressed = false
		if !t.active {
			return nil
		}
		t.active = false
		return &Intent{Type: IntentPointerUp}
	}
	return nil
}

// Reset forgets the tracked button state
func (t *Translator) Reset() {
	t.pressed = false
	t.active = false
}
