package input

import (
	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/engine"
	"github.com/lixenwraith/drop-puzzle/palette"
)

// terminalPointer is the pointer id of the local mouse
const terminalPointer = 0

// Submitter accepts loop commands
type Submitter interface {
	Submit(c engine.Command) bool
}

// Controller applies Intents by submitting loop commands
// The brush is only touched inside submitted commands, so it stays owned by the loop goroutine
type Controller struct {
	loop   Submitter
	brush  *palette.Brush
	onMute func()
}

// NewController creates a controller; onMute may be nil
func NewController(loop Submitter, brush *palette.Brush, onMute func()) *Controller {
	return &Controller{loop: loop, brush: brush, onMute: onMute}
}

// Apply executes in and returns false when the application should quit
func (c *Controller) Apply(in *Intent) bool {
	if in == nil {
		return true
	}

	switch in.Type {
	case IntentQuit:
		return false

	case IntentResize:
		c.loop.Submit(engine.Redraw())

	case IntentToggleMute:
		if c.onMute != nil {
			c.onMute()
		}
		c.loop.Submit(engine.Redraw())

	case IntentPointerDown:
		c.loop.Submit(engine.PointerDown(terminalPointer, in.Pos))
	case IntentPointerMove:
		c.loop.Submit(engine.PointerMove(terminalPointer, in.Pos))
	case IntentPointerUp:
		c.loop.Submit(engine.PointerUp(terminalPointer))

	case IntentMode:
		mode := in.Mode
		c.do(func(b *board.Board) { b.SetMode(mode) })
	case IntentRandomize:
		c.do((*board.Board).RandomizeBoard)
	case IntentClear:
		c.do((*board.Board).ClearBoard)
	case IntentReset:
		c.do((*board.Board).ResetPuzzle)
	case IntentShrink:
		c.do(func(b *board.Board) {
			if n := b.Start().Size() - 1; n >= constants.MinBoardSize {
				b.Resize(n)
			}
		})
	case IntentGrow:
		c.do(func(b *board.Board) {
			if n := b.Start().Size() + 1; n <= constants.MaxBoardSize {
				b.Resize(n)
			}
		})
	case IntentBoardSize:
		if n := in.Size; n >= constants.MinBoardSize && n <= constants.MaxBoardSize {
			c.do(func(b *board.Board) { b.Resize(n) })
		}
	case IntentToggleSkyfall:
		c.do(func(b *board.Board) { b.SetSkyfall(!b.Skyfall()) })

	case IntentBrushID:
		id := in.ID
		c.do(func(*board.Board) { c.brush.SelectID(id) })
		c.loop.Submit(engine.Redraw())
	case IntentBrushTool:
		tool := in.Tool
		c.do(func(*board.Board) { c.brush.SelectTool(tool) })
		c.loop.Submit(engine.Redraw())
	case IntentToggleDisabled:
		c.do(func(b *board.Board) { b.ToggleDisabled(c.brush.ID) })
	}
	return true
}

func (c *Controller) do(fn func(b *board.Board)) {
	c.loop.Submit(engine.Do(fn))
}
