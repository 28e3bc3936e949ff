package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	m.InitialStateID = initial
	m.activeStateID = initial
	m.timeInState = 0

	for _, action := range node.OnEnter {
		action(ctx)
	}
	return nil
}

// Update advances the FSM by delta time, handling per-tick actions and
// automatic transitions (Event == 0)
// Zero-time transitions chain within the same tick up to MaxChainedTransitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action(ctx)
	}

	for i := 0; i < constants.MaxChainedTransitions; i++ {
		if !m.evaluateTick(ctx) {
			return
		}
	}
}

// evaluateTick takes the first passing tick transition of the active state
func (m *Machine[T]) evaluateTick(ctx T) bool {
	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != event.EventNone {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// HandleEvent routes an external event to the active state
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventNone {
		return false
	}

	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event == eventType {
			if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
	}
	return false
}

// transition performs the state change, running exit then enter actions
// Self-transitions re-run both and reset the state timer
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	if current, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range current.OnExit {
			action(ctx)
		}
	}

	m.activeStateID = targetID
	m.timeInState = 0

	for _, action := range target.OnEnter {
		action(ctx)
	}
}

// Reset returns the FSM to its initial state without running exit actions
func (m *Machine[T]) Reset(ctx T) error {
	return m.Init(ctx, m.InitialStateID)
}

// Current returns the active StateID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active state name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the active state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
