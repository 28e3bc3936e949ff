package palette

import (
	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/event"
)

// Handler applies the brush to every cell a palette-mode drag enters
// Runs on the loop goroutine, so the board and brush need no locking
type Handler struct {
	brush *Brush
	board *board.Board
}

// NewHandler binds brush to b
func NewHandler(brush *Brush, b *board.Board) *Handler {
	return &Handler{brush: brush, board: b}
}

// EventTypes returns the drop-pushed notification
func (h *Handler) EventTypes() []event.EventType {
	return []event.EventType{event.EventDropPushed}
}

// HandleEvent strokes the pushed cell
func (h *Handler) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.DropPushedPayload)
	if !ok || h.board.Mode() != board.ModePalette {
		return
	}
	// The board may have been resized since the push was queued
	if !h.board.Start().InBounds(p.Position) {
		return
	}
	h.board.ModifyDropAt(p.Position, h.brush.Apply)
}
