package event

import (
	"time"

	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// DropSwappedPayload carries the two cells exchanged by one swap step
type DropSwappedPayload struct {
	From grid.Position `json:"from"`
	To   grid.Position `json:"to"`
}

// DropPushedPayload carries the cell a palette touch entered
type DropPushedPayload struct {
	Position grid.Position `json:"position"`
}

// ModeChangedPayload carries the new mode name
type ModeChangedPayload struct {
	Mode string `json:"mode"`
}

// BoardResizedPayload carries the new dimensions
type BoardResizedPayload struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// GroupFadePayload stages one combo group's fade
// Delay is measured from the start of the fade phase: (Rank-1) * Duration
type GroupFadePayload struct {
	Rank      int             `json:"rank"`
	ID        drop.ID         `json:"id"`
	Positions []grid.Position `json:"positions"`
	Delay     time.Duration   `json:"delay"`
	Duration  time.Duration   `json:"duration"`
}

// DropFallPayload stages one drop moving from FromY to ToY in column X
// FromY >= rows marks a drop spawned above the board
type DropFallPayload struct {
	X        int           `json:"x"`
	FromY    int           `json:"fromY"`
	ToY      int           `json:"toY"`
	ID       drop.ID       `json:"id"`
	Lock     bool          `json:"lock"`
	Power    int           `json:"power"`
	Spawned  bool          `json:"spawned"`
	Duration time.Duration `json:"duration"`
}

// CascadeRoundPayload summarizes one completed round
type CascadeRoundPayload struct {
	Round   int `json:"round"`
	Groups  int `json:"groups"`
	Removed int `json:"removed"`
}

// CascadeCompletePayload summarizes a whole cascade
// Aborted cascades were cut short by an edit operation and left no committed fall
type CascadeCompletePayload struct {
	Rounds  int  `json:"rounds"`
	Combos  int  `json:"combos"`
	Removed int  `json:"removed"`
	Capped  bool `json:"capped"`
	Aborted bool `json:"aborted"`
}
