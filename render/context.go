package render

import (
	"time"

	"github.com/lixenwraith/drop-puzzle/board"
)

// RenderContext is the per-frame input shared by all layers
type RenderContext struct {
	Board  board.Snapshot
	Layout Layout
	Now    time.Time
	Anim   *Animator
	// Status is the caller-provided left part of the status line
	Status string
	// Stats is the metrics summary drawn right of Status
	Stats string
}
