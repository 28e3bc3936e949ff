// Package render draws the board to a tcell screen.
package render

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/grid"
	"github.com/lixenwraith/drop-puzzle/status"
)

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Renderer coordinates the render pipeline
// Frame and HandleEvent run on the loop goroutine; Layout may be read from any goroutine
type Renderer struct {
	screen   tcell.Screen
	layers   []layerEntry
	regCount int
	anim     *Animator
	layout   atomic.Pointer[Layout]
	status   func() string
	metrics  *status.Registry
}

// NewRenderer creates a renderer with the standard board layers
// metrics may be nil
func NewRenderer(screen tcell.Screen, metrics *status.Registry) *Renderer {
	r := &Renderer{
		screen:  screen,
		layers:  make([]layerEntry, 0, 8),
		anim:    NewAnimator(),
		metrics: metrics,
	}
	r.layout.Store(&Layout{})

	r.Register(backgroundLayer{}, PriorityBackground)
	r.Register(dropLayer{}, PriorityDrops)
	r.Register(effectLayer{}, PriorityEffects)
	r.Register(statusLayer{}, PriorityUI)
	return r
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (r *Renderer) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    r.regCount,
	}
	r.regCount++

	pos := len(r.layers)
	for i, e := range r.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	r.layers = append(r.layers, layerEntry{})
	copy(r.layers[pos+1:], r.layers[pos:])
	r.layers[pos] = entry
}

// SetStatus installs the provider of the status line text, called on every frame
func (r *Renderer) SetStatus(fn func() string) {
	r.status = fn
}

// Layout returns the geometry of the last drawn frame
func (r *Renderer) Layout() Layout {
	return *r.layout.Load()
}

// CellAt maps a screen position through the last drawn layout
func (r *Renderer) CellAt(sx, sy int) (grid.Position, bool) {
	return r.Layout().CellAt(sx, sy)
}

// ClampCell maps a screen position to the nearest cell of the last drawn layout
func (r *Renderer) ClampCell(sx, sy int) grid.Position {
	return r.Layout().ClampCell(sx, sy)
}

// Frame executes the render pipeline: clear, render all layers, show
func (r *Renderer) Frame(b *board.Board, now time.Time) {
	snap := b.Snapshot()
	layout := NewLayout(snap.Cols, snap.Rows)
	r.layout.Store(&layout)
	r.anim.begin(now)

	ctx := &RenderContext{
		Board:  snap,
		Layout: layout,
		Now:    now,
		Anim:   r.anim,
		Stats:  r.stats(),
	}
	if r.status != nil {
		ctx.Status = r.status()
	}

	r.screen.Clear()
	for _, e := range r.layers {
		if vt, ok := e.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		e.layer.Render(ctx, r.screen)
	}
	r.screen.Show()
}

// Animating reports whether a fade or fall is still in progress
func (r *Renderer) Animating(now time.Time) bool {
	return r.anim.Active(now)
}

// HandleEvent forwards cascade events to the animator
func (r *Renderer) HandleEvent(ev event.GameEvent) {
	r.anim.HandleEvent(ev)
}

// EventTypes returns the events the renderer animates
func (r *Renderer) EventTypes() []event.EventType {
	return r.anim.EventTypes()
}

func (r *Renderer) stats() string {
	if r.metrics == nil {
		return ""
	}
	ints := r.metrics.Ints
	return fmt.Sprintf("swaps %d  cascades %d  combos %d  removed %d  tick %.2fms",
		ints.Get(status.KeySwaps).Load(),
		ints.Get(status.KeyCascadeRuns).Load(),
		ints.Get(status.KeyCascadeCombos).Load(),
		ints.Get(status.KeyCascadeRemoved).Load(),
		r.metrics.Floats.Get(status.KeyTickLoad).Get(),
	)
}
