package fsm

import (
	"time"

	"github.com/lixenwraith/drop-puzzle/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// Machine is a flat finite state machine runtime driven by clock ticks
// T is the context type passed to actions and guards (e.g., *cascade.Resolver)
type Machine[T any] struct {
	// Graph Data (Immutable after Init)
	nodes map[StateID]*Node[T]

	// InitialStateID is stored for Init and Reset
	InitialStateID StateID

	// Runtime State
	activeStateID StateID
	timeInState   time.Duration
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // 0 = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// GuardFunc returns true if the transition should occur
// elapsed is the time spent in the source state
type GuardFunc[T any] func(ctx T, elapsed time.Duration) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
