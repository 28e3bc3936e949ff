package engine

import (
	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// CommandKind identifies a loop command
type CommandKind int

const (
	CmdPointerDown CommandKind = iota
	CmdPointerMove
	CmdPointerUp
	// CmdFunc runs Fn against the board on the loop goroutine
	CmdFunc
	// CmdRedraw forces a frame without a board change
	CmdRedraw
)

// Command is one unit of input for the loop
type Command struct {
	Kind    CommandKind
	Pointer int
	Pos     grid.Position
	Fn      func(b *board.Board)
}

// PointerDown builds a pointer-down command
func PointerDown(pointer int, p grid.Position) Command {
	return Command{Kind: CmdPointerDown, Pointer: pointer, Pos: p}
}

// PointerMove builds a pointer-move command
func PointerMove(pointer int, p grid.Position) Command {
	return Command{Kind: CmdPointerMove, Pointer: pointer, Pos: p}
}

// PointerUp builds a pointer-up command
func PointerUp(pointer int) Command {
	return Command{Kind: CmdPointerUp, Pointer: pointer}
}

// Do wraps an arbitrary board operation
func Do(fn func(b *board.Board)) Command {
	return Command{Kind: CmdFunc, Fn: fn}
}

// Redraw requests a frame, e.g. after a terminal resize or a brush change
func Redraw() Command {
	return Command{Kind: CmdRedraw}
}

// apply runs c on the loop goroutine
// Pointer cells were mapped against the layout of an earlier frame; cells the
// board no longer holds after a resize are dropped here
func (c Command) apply(b *board.Board) {
	switch c.Kind {
	case CmdPointerDown:
		if b.Grid().InBounds(c.Pos) {
			b.PointerDown(c.Pointer, c.Pos)
		}
	case CmdPointerMove:
		if b.Grid().InBounds(c.Pos) {
			b.PointerMove(c.Pointer, c.Pos)
		}
	case CmdPointerUp:
		b.PointerUp(c.Pointer)
	case CmdFunc:
		if c.Fn != nil {
			c.Fn(b)
		}
	}
}

// coalesceMoves drops a pointer move immediately superseded by a move of the
// same pointer; path emulation rebuilds the skipped steps from the last cell
func coalesceMoves(batch []Command) []Command {
	out := batch[:0]
	for i, c := range batch {
		if c.Kind == CmdPointerMove && i+1 < len(batch) {
			next := batch[i+1]
			if next.Kind == CmdPointerMove && next.Pointer == c.Pointer {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
