package service

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
)

type phase int

const (
	phaseRegistered phase = iota
	phaseReady
	phaseRunning
)

type slot struct {
	svc   Service
	phase phase
}

// Hub owns the drop-puzzle services and drives their lifecycle
// Init runs in dependency order without holding the hub lock, so a service
// may look up the services it depends on from inside its own Init
type Hub struct {
	mu    sync.RWMutex
	slots map[string]*slot
	order []string
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{slots: make(map[string]*slot)}
}

// Register adds a service; names are unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.slots[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.slots[name] = &slot{svc: svc}
	h.order = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.slots[name]
	if !ok {
		return nil, false
	}
	return s.svc, true
}

// Lookup returns the named service as T once it has initialized
// Services call it from Init to reach a declared dependency
func Lookup[T any](h *Hub, name string) (T, error) {
	var zero T

	h.mu.RLock()
	s, ok := h.slots[name]
	var p phase
	if ok {
		p = s.phase
	}
	h.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("service not found: %s", name)
	}
	if p < phaseReady {
		return zero, fmt.Errorf("service %s not initialized", name)
	}
	typed, ok := s.svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %s: type mismatch, got %T", name, s.svc)
	}
	return typed, nil
}

// MustGet retrieves a registered service as T regardless of lifecycle phase
// Panics if the service is missing or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll initializes every service in dependency order
// Each Init receives the hub followed by args
// A failure stops the services already initialized, newest first
func (h *Hub) InitAll(args ...any) error {
	order, err := h.resolve()
	if err != nil {
		return err
	}

	initArgs := append([]any{h}, args...)
	for i, name := range order {
		svc := h.slot(name).svc
		if err := svc.Init(initArgs...); err != nil {
			h.rollback(order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.setPhase(name, phaseReady)
	}
	return nil
}

// StartAll starts every initialized service in dependency order
// A failure stops every service, newest first
func (h *Hub) StartAll() error {
	order := h.Order()
	for _, name := range order {
		s := h.slot(name)
		if h.phaseOf(name) != phaseReady {
			h.rollback(order)
			return fmt.Errorf("service %s start failed: not initialized", name)
		}
		if err := s.svc.Start(); err != nil {
			h.rollback(order)
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.setPhase(name, phaseRunning)
	}
	return nil
}

// StopAll stops every initialized service in reverse dependency order
// Stop errors are logged; every service still gets its Stop call
func (h *Hub) StopAll() {
	h.rollback(h.Order())
}

// rollback stops names in reverse and returns them to the registered phase
func (h *Hub) rollback(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if h.phaseOf(name) == phaseRegistered {
			continue
		}
		if err := h.slot(name).svc.Stop(); err != nil {
			log.Printf("service %s stop: %v", name, err)
		}
		h.setPhase(name, phaseRegistered)
	}
}

// resolve computes and caches the dependency order
func (h *Hub) resolve() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.sortLocked()
		if err != nil {
			return nil, err
		}
		h.order = order
	}
	return slices.Clone(h.order), nil
}

// sortLocked orders services depth-first, dependencies before dependents
// Names and dependencies are walked alphabetically for a stable result
func (h *Hub) sortLocked() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(h.slots))
	order := make([]string, 0, len(h.slots))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch marks[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular dependency: %s -> %s", strings.Join(path, " -> "), name)
		}
		marks[name] = visiting
		path = append(path, name)

		deps := slices.Sorted(slices.Values(h.slots[name].svc.Dependencies()))
		for _, dep := range deps {
			if _, ok := h.slots[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		marks[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.namesLocked() {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (h *Hub) slot(name string) *slot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.slots[name]
}

func (h *Hub) phaseOf(name string) phase {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.slots[name].phase
}

func (h *Hub) setPhase(name string, p phase) {
	h.mu.Lock()
	h.slots[name].phase = p
	h.mu.Unlock()
}

func (h *Hub) namesLocked() []string {
	names := make([]string, 0, len(h.slots))
	for name := range h.slots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Names returns all registered service names in sorted order
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.namesLocked()
}

// Order returns the dependency order computed by InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.order)
}
