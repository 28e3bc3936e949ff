package network

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/engine"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// Client message types
const (
	MsgPointerDown = "pointer_down"
	MsgPointerMove = "pointer_move"
	MsgPointerUp   = "pointer_up"
	MsgMode        = "mode"
	MsgResize      = "resize"
	MsgSkyfall     = "skyfall"
	MsgClear       = "clear"
	MsgRandomize   = "randomize"
	MsgReset       = "reset"
)

// Server message types
const (
	MsgWelcome  = "welcome"
	MsgSnapshot = "snapshot"
	MsgEvent    = "event"
	MsgError    = "error"
)

// maxClientPointers bounds the pointer ids one peer may use
const maxClientPointers = 1 << 8

var (
	ErrUnknownType = errors.New("unknown message type")
	ErrOutOfRange  = errors.New("position out of range")
	ErrBadPointer  = errors.New("pointer id out of range")
	ErrBadSize     = errors.New("board size out of range")
	ErrMissing     = errors.New("missing field")
)

// ClientMessage is one request from a remote client
type ClientMessage struct {
	Type    string `json:"type"`
	Pointer int    `json:"pointer"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Mode    string `json:"mode,omitempty"`
	Size    int    `json:"size,omitempty"`
	Skyfall *bool  `json:"skyfall,omitempty"`
}

type welcomeMessage struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Board board.Snapshot `json:"board"`
}

type snapshotMessage struct {
	Type  string         `json:"type"`
	Board board.Snapshot `json:"board"`
}

type eventMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Dims is the board geometry used to validate remote coordinates
type Dims struct {
	Cols int
	Rows int
}

func (d Dims) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Cols && y < d.Rows
}

// boardPointer namespaces a client pointer id by peer slot; slot 0 belongs to the terminal
func boardPointer(slot, pointer int) int {
	return slot*maxClientPointers + pointer
}

// decodeCommand validates msg and converts it to a loop command
// Coordinates are checked against dims here and again on the loop goroutine,
// since a resize may land between the two
func decodeCommand(msg ClientMessage, slot int, dims Dims) (engine.Command, error) {
	switch msg.Type {
	case MsgPointerDown, MsgPointerMove, MsgPointerUp:
		if msg.Pointer < 0 || msg.Pointer >= maxClientPointers {
			return engine.Command{}, fmt.Errorf("%w: %d", ErrBadPointer, msg.Pointer)
		}
		id := boardPointer(slot, msg.Pointer)
		if msg.Type == MsgPointerUp {
			return engine.PointerUp(id), nil
		}
		if !dims.contains(msg.X, msg.Y) {
			return engine.Command{}, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfRange, msg.X, msg.Y, dims.Cols, dims.Rows)
		}
		p := grid.Pos(msg.X, msg.Y)
		down := msg.Type == MsgPointerDown
		return engine.Do(func(b *board.Board) {
			if !b.Grid().InBounds(p) {
				return
			}
			if down {
				b.PointerDown(id, p)
			} else {
				b.PointerMove(id, p)
			}
		}), nil

	case MsgMode:
		m, err := board.ParseMode(msg.Mode)
		if err != nil {
			return engine.Command{}, err
		}
		return engine.Do(func(b *board.Board) { b.ApplyUpdates(board.Updates{Mode: &m}) }), nil

	case MsgResize:
		size := msg.Size
		if size < constants.MinBoardSize || size > constants.MaxBoardSize {
			return engine.Command{}, fmt.Errorf("%w: %d", ErrBadSize, size)
		}
		return engine.Do(func(b *board.Board) { b.ApplyUpdates(board.Updates{Size: &size}) }), nil

	case MsgSkyfall:
		if msg.Skyfall == nil {
			return engine.Command{}, fmt.Errorf("%w: skyfall", ErrMissing)
		}
		on := *msg.Skyfall
		return engine.Do(func(b *board.Board) { b.ApplyUpdates(board.Updates{Skyfall: &on}) }), nil

	case MsgClear:
		return engine.Do((*board.Board).ClearBoard), nil
	case MsgRandomize:
		return engine.Do((*board.Board).RandomizeBoard), nil
	case MsgReset:
		return engine.Do((*board.Board).ResetPuzzle), nil
	}
	return engine.Command{}, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
}
