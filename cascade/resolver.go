// Package cascade resolves a board after a puzzle move: it repeatedly detects
// combo groups, fades them out one after another, lets the survivors fall and
// refills from above until no group remains.
//
// The resolver never blocks. Fade and fall waits are tick-gated FSM states
// advanced by Update from the game loop, so board mutation stays on one goroutine.
package cascade

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/drop-puzzle/combo"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/engine/fsm"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/grid"
)

// Resolver states
const (
	StateIdle fsm.StateID = iota + 1
	StateDetecting
	StateFading
	StateFalling
)

// Config holds resolver timing
type Config struct {
	FadeDuration time.Duration
	FallDuration time.Duration
	// MaxRounds caps one cascade; 0 means rows x columns of the board
	MaxRounds int
}

// DefaultConfig returns the standard animation timing
func DefaultConfig() Config {
	return Config{
		FadeDuration: constants.FadeDuration,
		FallDuration: constants.FallDuration,
	}
}

// Summary reports a finished cascade
type Summary struct {
	Rounds  int
	Combos  int
	Removed int
	Capped  bool
	Aborted bool
}

// Resolver runs at most one cascade at a time over a caller-owned grid
type Resolver struct {
	machine *fsm.Machine[*Resolver]
	queue   *event.EventQueue
	cfg     Config

	// Active cascade
	running   bool
	grid      *grid.Grid
	disabled  drop.Set
	refill    drop.Factory
	maxRounds int
	found     combo.Result
	pending   grid.FallResult
	summary   Summary

	onDone func(Summary)
}

// NewResolver creates an idle resolver publishing visual events to queue
// queue may be nil when no consumer needs the event stream
func NewResolver(cfg Config, queue *event.EventQueue) *Resolver {
	r := &Resolver{
		queue:   queue,
		cfg:     cfg,
		machine: fsm.NewMachine[*Resolver](),
	}

	m := r.machine
	m.AddState(StateIdle, "Idle").WithEnter((*Resolver).enterIdle)
	m.AddState(StateDetecting, "Detecting").WithEnter((*Resolver).enterDetecting)
	m.AddState(StateFading, "Fading").WithEnter((*Resolver).enterFading)
	m.AddState(StateFalling, "Falling").WithEnter((*Resolver).enterFalling).WithExit((*Resolver).exitFalling)

	m.AddTransition(StateIdle, fsm.Transition[*Resolver]{
		TargetID: StateDetecting,
		Event:    event.EventCascadeStart,
	})
	m.AddTransition(StateDetecting, fsm.Transition[*Resolver]{
		TargetID: StateIdle,
		Guard:    func(r *Resolver, _ time.Duration) bool { return r.found.Count == 0 || r.summary.Capped },
	})
	m.AddTransition(StateDetecting, fsm.Transition[*Resolver]{
		TargetID: StateFading,
	})
	m.AddTransition(StateFading, fsm.Transition[*Resolver]{
		TargetID: StateFalling,
		Guard:    fsm.AfterFunc((*Resolver).fadeWait),
	})
	m.AddTransition(StateFalling, fsm.Transition[*Resolver]{
		TargetID: StateDetecting,
		Guard:    fsm.After[*Resolver](cfg.FallDuration),
	})

	if err := m.Init(r, StateIdle); err != nil {
		panic(fmt.Sprintf("cascade: %v", err))
	}
	return r
}

// OnDone registers the completion callback, replacing any previous one
func (r *Resolver) OnDone(fn func(Summary)) {
	r.onDone = fn
}

// Busy reports whether a cascade is in flight
func (r *Resolver) Busy() bool {
	return r.machine.Current() != StateIdle
}

// State returns the active state name
func (r *Resolver) State() string {
	return r.machine.CurrentName()
}

// Start begins a cascade over g, mutating it in place as rounds commit
// Detection runs immediately; fading and falling advance through Update.
// A nil refill leaves vacated cells empty. Returns false if a cascade is
// already in flight. Panics on a grid with fewer than two rows.
func (r *Resolver) Start(g *grid.Grid, disabled drop.Set, refill drop.Factory) bool {
	if g.Rows() < 2 {
		panic(fmt.Sprintf("cascade: resolver needs at least 2 rows, got %d", g.Rows()))
	}
	if r.Busy() {
		return false
	}

	r.grid = g
	r.disabled = disabled.Clone()
	r.refill = refill
	r.maxRounds = r.cfg.MaxRounds
	if r.maxRounds <= 0 {
		r.maxRounds = g.Rows() * g.Cols()
	}
	r.summary = Summary{}
	r.running = true

	r.emit(event.EventCascadeStart, nil)
	return r.machine.HandleEvent(r, event.EventCascadeStart)
}

// Update advances fade and fall waits by dt
func (r *Resolver) Update(dt time.Duration) {
	r.machine.Update(r, dt)
}

// Abort drops an in-flight cascade without committing the pending fall
// Cells already faded stay empty; the caller is expected to replace the grid
func (r *Resolver) Abort() {
	if !r.Busy() {
		return
	}
	r.summary.Aborted = true
	r.finish()
	r.running = false
	_ = r.machine.Reset(r)
}

func (r *Resolver) enterIdle() {
	if !r.running {
		return
	}
	r.finish()
	r.running = false
}

func (r *Resolver) enterDetecting() {
	r.found = combo.Find(r.grid, r.disabled)
	if r.found.Count > 0 && r.summary.Rounds >= r.maxRounds {
		r.summary.Capped = true
		log.Printf("cascade: round cap %d reached with %d groups left", r.maxRounds, r.found.Count)
	}
}

func (r *Resolver) fadeWait() time.Duration {
	return time.Duration(r.found.Count) * r.cfg.FadeDuration
}

// enterFading empties every matched cell and stages one fade per group,
// serialized by rank
func (r *Resolver) enterFading() {
	for _, g := range r.found.Groups {
		r.emit(event.EventGroupFade, &event.GroupFadePayload{
			Rank:      g.Rank,
			ID:        g.ID,
			Positions: g.Positions,
			Delay:     time.Duration(g.Rank-1) * r.cfg.FadeDuration,
			Duration:  r.cfg.FadeDuration,
		})
		for _, p := range g.Positions {
			r.grid.At(p).SetID(drop.Empty)
		}
	}
}

// enterFalling computes gravity on the faded grid and stages every move
func (r *Resolver) enterFalling() {
	r.pending = r.grid.Fall(r.refill)
	for _, mv := range r.pending.Moves {
		r.emit(event.EventDropFall, &event.DropFallPayload{
			X:        mv.X,
			FromY:    mv.FromY,
			ToY:      mv.ToY,
			ID:       mv.Drop.ID(),
			Lock:     mv.Drop.Lock(),
			Power:    mv.Drop.Power(),
			Spawned:  mv.Spawned,
			Duration: r.cfg.FallDuration,
		})
	}
}

// exitFalling commits the compacted grid and closes the round
func (r *Resolver) exitFalling() {
	r.grid.CopyFrom(r.pending.Grid)
	r.pending = grid.FallResult{}

	removed := r.found.Removed()
	r.summary.Rounds++
	r.summary.Combos += r.found.Count
	r.summary.Removed += removed

	r.emit(event.EventCascadeRound, &event.CascadeRoundPayload{
		Round:   r.summary.Rounds,
		Groups:  r.found.Count,
		Removed: removed,
	})
}

func (r *Resolver) finish() {
	s := r.summary
	r.emit(event.EventCascadeComplete, &event.CascadeCompletePayload{
		Rounds:  s.Rounds,
		Combos:  s.Combos,
		Removed: s.Removed,
		Capped:  s.Capped,
		Aborted: s.Aborted,
	})
	r.grid = nil
	r.found = combo.Result{}
	if r.onDone != nil {
		r.onDone(s)
	}
}

func (r *Resolver) emit(t event.EventType, payload any) {
	if r.queue != nil {
		r.queue.Emit(t, payload)
	}
}
