package fsm

import "time"

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0),
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// WithEnter appends an enter action to the node
func (n *Node[T]) WithEnter(fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, fn)
	return n
}

// WithUpdate appends a per-tick action to the node
func (n *Node[T]) WithUpdate(fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, fn)
	return n
}

// WithExit appends an exit action to the node
func (n *Node[T]) WithExit(fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, fn)
	return n
}

// Always is a guard that always passes
func Always[T any](T, time.Duration) bool { return true }

// After returns a guard that passes once the source state has lasted d
func After[T any](d time.Duration) GuardFunc[T] {
	return func(_ T, elapsed time.Duration) bool {
		return elapsed >= d
	}
}

// AfterFunc returns a guard whose wait time is computed from the context on each evaluation
func AfterFunc[T any](d func(ctx T) time.Duration) GuardFunc[T] {
	return func(ctx T, elapsed time.Duration) bool {
		return elapsed >= d(ctx)
	}
}
