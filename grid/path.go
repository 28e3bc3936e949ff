package grid

import (
	"fmt"

	"github.com/lixenwraith/drop-puzzle/constants"
)

// StepFunc receives the cell entered and the cell left by one path step
type StepFunc func(cur, prev Position)

// EmulatePath expands a pointer jump into single-cell steps
//
// Empty to: no-op. Empty from: one pick-up call onStep(to, from). Otherwise each
// step moves x and y one cell toward to independently (diagonal when both differ)
// and reports it, so a fast drag still yields every intermediate swap.
// Exceeding constants.PathStepLimit panics: the from/to pair is malformed.
func EmulatePath(from, to Position, onStep StepFunc) {
	if to.IsEmpty() {
		return
	}
	if from.IsEmpty() {
		onStep(to, from)
		return
	}

	dx, dy := 1, 1
	if from.X > to.X {
		dx = -1
	}
	if from.Y > to.Y {
		dy = -1
	}

	cur, prev := from, from
	for i := 0; ; i++ {
		if i >= constants.PathStepLimit {
			panic(fmt.Sprintf("grid: path %v -> %v exceeded %d steps", from, to, constants.PathStepLimit))
		}
		moved := false
		if cur.X != to.X {
			cur.X += dx
			moved = true
		}
		if cur.Y != to.Y {
			cur.Y += dy
			moved = true
		}
		if !moved {
			return
		}
		onStep(cur, prev)
		prev = cur
	}
}
