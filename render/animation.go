package render

import (
	"time"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// fade is one cell of a combo group fading out
type fade struct {
	pos   grid.Position
	id    drop.ID
	delay time.Duration
	dur   time.Duration
	start time.Time
}

// fall is one drop moving down its column
type fall struct {
	x, fromY, toY int
	cell          board.Cell
	dur           time.Duration
	start         time.Time
}

// Animator turns cascade events into time-based visuals
//
// Events carry durations but no timestamps; an animation starts on the
// first frame after it was received. Entries stay until the round commits
// so a finished fall keeps covering the cell it left.
type Animator struct {
	fades []fade
	falls []fall
}

// NewAnimator creates an empty animator
func NewAnimator() *Animator {
	return &Animator{}
}

// EventTypes returns the cascade events that drive animation
func (a *Animator) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGroupFade,
		event.EventDropFall,
		event.EventCascadeRound,
		event.EventCascadeComplete,
		event.EventBoardResized,
		event.EventModeChanged,
	}
}

// HandleEvent records or clears animations
func (a *Animator) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGroupFade:
		p, ok := ev.Payload.(*event.GroupFadePayload)
		if !ok {
			return
		}
		for _, pos := range p.Positions {
			a.fades = append(a.fades, fade{pos: pos, id: p.ID, delay: p.Delay, dur: p.Duration})
		}
	case event.EventDropFall:
		p, ok := ev.Payload.(*event.DropFallPayload)
		if !ok {
			return
		}
		a.falls = append(a.falls, fall{
			x: p.X, fromY: p.FromY, toY: p.ToY,
			cell: board.Cell{ID: p.ID, Lock: p.Lock, Power: p.Power},
			dur:  p.Duration,
		})
	case event.EventCascadeRound, event.EventCascadeComplete, event.EventBoardResized, event.EventModeChanged:
		a.Reset()
	}
}

// Reset drops every pending animation
func (a *Animator) Reset() {
	a.fades = a.fades[:0]
	a.falls = a.falls[:0]
}

// begin stamps animations received since the previous frame
func (a *Animator) begin(now time.Time) {
	for i := range a.fades {
		if a.fades[i].start.IsZero() {
			a.fades[i].start = now
		}
	}
	for i := range a.falls {
		if a.falls[i].start.IsZero() {
			a.falls[i].start = now
		}
	}
}

// Active reports whether any animation still changes between frames
func (a *Animator) Active(now time.Time) bool {
	for _, f := range a.fades {
		if f.start.IsZero() || now.Before(f.start.Add(f.delay+f.dur)) {
			return true
		}
	}
	for _, f := range a.falls {
		if f.start.IsZero() || now.Before(f.start.Add(f.dur)) {
			return true
		}
	}
	return false
}

// Covered reports whether a falling drop has left p; the board still holds it there
func (a *Animator) Covered(p grid.Position) bool {
	for _, f := range a.falls {
		if f.x == p.X && f.fromY == p.Y {
			return true
		}
	}
	return false
}

// fadeLevel returns remaining brightness of f, 0 once gone
func fadeLevel(f fade, now time.Time) float64 {
	elapsed := now.Sub(f.start) - f.delay
	if elapsed <= 0 {
		return 1
	}
	if f.dur <= 0 || elapsed >= f.dur {
		return 0
	}
	return 1 - float64(elapsed)/float64(f.dur)
}

// fallRow returns the fractional row of f at now, eased in like gravity
func fallRow(f fall, now time.Time) float64 {
	t := 1.0
	if f.dur > 0 {
		t = min(max(float64(now.Sub(f.start))/float64(f.dur), 0), 1)
	}
	t *= t
	return float64(f.fromY) + (float64(f.toY)-float64(f.fromY))*t
}
