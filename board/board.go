// Package board is the controller between pointer input and the board core.
// It owns the start layout, the play grid, the pointer session and the
// cascade resolver, and publishes changes on the event queue.
//
// Board is not safe for concurrent use; the game loop is its only caller.
package board

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/drop-puzzle/cascade"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/drop"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/grid"
	"github.com/lixenwraith/drop-puzzle/status"
)

// Config holds the initial board setup
type Config struct {
	Size     int
	Mode     Mode
	Skyfall  bool
	Disabled []drop.ID
	Cascade  cascade.Config
	// Factory generates new drops for layouts and refills; nil draws from the playable palette
	Factory drop.Factory
}

// DefaultConfig returns a 6x5 puzzle board with skyfall on
func DefaultConfig() Config {
	return Config{
		Size:    constants.DefaultBoardSize,
		Mode:    ModePuzzle,
		Skyfall: true,
		Cascade: cascade.DefaultConfig(),
	}
}

// Board is the observable board state
type Board struct {
	start    *grid.Grid
	current  *grid.Grid
	disabled drop.Set
	mode     Mode
	skyfall  bool
	cleared  bool

	factory  drop.Factory
	resolver *cascade.Resolver
	session  session

	queue    *event.EventQueue
	listener func()
	batching bool

	// Cached metric pointers, nil when no registry is attached
	swaps    *atomic.Int64
	sessions *atomic.Int64
	runs     *atomic.Int64
	rounds   *atomic.Int64
	combos   *atomic.Int64
	removed  *atomic.Int64
	busy     *atomic.Bool
	modeName *status.AtomicString
	state    *status.AtomicString
}

// New builds a board from cfg; queue and metrics may be nil
// Panics on size < 2
func New(cfg Config, queue *event.EventQueue, metrics *status.Registry) *Board {
	factory := cfg.Factory
	if factory == nil {
		factory = drop.RandomFactory(nil)
	}

	b := &Board{
		start:    grid.New(cfg.Size, factory),
		disabled: drop.NewSet(cfg.Disabled...),
		mode:     cfg.Mode,
		skyfall:  cfg.Skyfall,
		factory:  factory,
		resolver: cascade.NewResolver(cfg.Cascade, queue),
		queue:    queue,
	}
	b.current = b.start.Clone()
	b.session.end()
	b.resolver.OnDone(b.cascadeDone)

	if metrics != nil {
		b.swaps = metrics.Ints.Get(status.KeySwaps)
		b.sessions = metrics.Ints.Get(status.KeySessions)
		b.runs = metrics.Ints.Get(status.KeyCascadeRuns)
		b.rounds = metrics.Ints.Get(status.KeyCascadeRounds)
		b.combos = metrics.Ints.Get(status.KeyCascadeCombos)
		b.removed = metrics.Ints.Get(status.KeyCascadeRemoved)
		b.busy = metrics.Bools.Get(status.KeyCascadeBusy)
		b.modeName = metrics.Strings.Get(status.KeyMode)
		b.state = metrics.Strings.Get(status.KeyCascadeState)
		b.modeName.Store(b.mode.String())
		b.state.Store(b.resolver.State())
	}
	return b
}

// OnChange registers the render trigger, replacing any previous one
func (b *Board) OnChange(fn func()) {
	b.listener = fn
}

// Grid returns the play grid; callers must not retain it across loop ticks
func (b *Board) Grid() *grid.Grid { return b.current }

// Start returns the canonical start layout
func (b *Board) Start() *grid.Grid { return b.start }

func (b *Board) Mode() Mode         { return b.mode }
func (b *Board) Skyfall() bool      { return b.skyfall }
func (b *Board) Cleared() bool      { return b.cleared }
func (b *Board) Busy() bool         { return b.resolver.Busy() }
func (b *Board) Disabled() drop.Set { return b.disabled.Clone() }

// Held returns the cell under an active puzzle-mode drag, or an empty position
func (b *Board) Held() grid.Position {
	if b.session.active && b.mode == ModePuzzle {
		return b.session.last
	}
	return grid.EmptyPos()
}

// === Pointer Session ===

// PointerDown opens a session for pointer; ignored while another pointer is active
// p must be inside the board
func (b *Board) PointerDown(pointer int, p grid.Position) {
	b.mustInBounds(p)
	if b.session.active {
		return
	}
	b.session.begin(pointer)
	if b.sessions != nil {
		b.sessions.Add(1)
	}
	b.moveTo(p)
	b.notify()
}

// PointerMove walks the session from its last cell to p
// Moves from a non-active pointer, or onto the same cell, are ignored
func (b *Board) PointerMove(pointer int, p grid.Position) {
	if !b.session.owns(pointer) {
		return
	}
	b.mustInBounds(p)
	if p.Equal(b.session.last) {
		return
	}
	b.moveTo(p)
	b.notify()
}

// PointerUp closes the matching session and, after a puzzle move, starts a cascade
func (b *Board) PointerUp(pointer int) {
	if !b.session.owns(pointer) {
		return
	}
	moved := b.session.moved
	b.session.end()

	if b.mode == ModePuzzle && moved {
		b.startCascade()
	}
	b.notify()
}

// moveTo emulates the path from the last cell so every crossed boundary
// produces its own step
func (b *Board) moveTo(p grid.Position) {
	grid.EmulatePath(b.session.last, p, b.step)
	b.session.last = p
}

func (b *Board) step(cur, prev grid.Position) {
	switch b.mode {
	case ModePuzzle:
		if prev.IsEmpty() || b.resolver.Busy() {
			return
		}
		b.current.Swap(prev, cur)
		b.session.moved = true
		if b.swaps != nil {
			b.swaps.Add(1)
		}
		b.emit(event.EventDropSwapped, &event.DropSwappedPayload{From: prev, To: cur})
	case ModePalette:
		b.emit(event.EventDropPushed, &event.DropPushedPayload{Position: cur})
	}
}

func (b *Board) mustInBounds(p grid.Position) {
	if !b.current.InBounds(p) {
		panic(fmt.Sprintf("board: pointer position %s outside %dx%d board", p, b.current.Cols(), b.current.Rows()))
	}
}

// === Cascade ===

func (b *Board) refill() drop.Factory {
	if !b.skyfall || b.cleared {
		return nil
	}
	return b.factory
}

func (b *Board) startCascade() {
	if b.current.Rows() < 2 {
		return
	}
	if !b.resolver.Start(b.current, b.disabled, b.refill()) {
		return
	}
	if b.runs != nil {
		b.runs.Add(1)
	}
	b.syncCascadeMetrics()
}

// Tick advances the cascade by dt
func (b *Board) Tick(dt time.Duration) {
	if !b.resolver.Busy() {
		return
	}
	before := b.resolver.State()
	b.resolver.Update(dt)
	if b.resolver.State() != before {
		b.syncCascadeMetrics()
		b.notify()
	}
}

func (b *Board) cascadeDone(s cascade.Summary) {
	if b.rounds != nil {
		b.rounds.Add(int64(s.Rounds))
		b.combos.Add(int64(s.Combos))
		b.removed.Add(int64(s.Removed))
	}
	if s.Rounds > 0 || s.Aborted {
		log.Printf("board: cascade done rounds=%d combos=%d removed=%d capped=%v aborted=%v",
			s.Rounds, s.Combos, s.Removed, s.Capped, s.Aborted)
	}
}

func (b *Board) syncCascadeMetrics() {
	if b.busy == nil {
		return
	}
	b.busy.Store(b.resolver.Busy())
	b.state.Store(b.resolver.State())
}

// interrupt drops any cascade in flight before a layout replacement
func (b *Board) interrupt() {
	if b.resolver.Busy() {
		b.resolver.Abort()
		b.syncCascadeMetrics()
	}
}

// === Edit Operations ===

// SetMode switches mode, ending any session and restoring the start layout
func (b *Board) SetMode(m Mode) {
	if m == b.mode {
		return
	}
	b.interrupt()
	b.session.end()
	b.mode = m
	b.current = b.start.Clone()
	if b.modeName != nil {
		b.modeName.Store(m.String())
	}
	b.emit(event.EventModeChanged, &event.ModeChangedPayload{Mode: m.String()})
	b.notify()
}

// SetSkyfall toggles refilling during cascades
func (b *Board) SetSkyfall(on bool) {
	if on == b.skyfall {
		return
	}
	b.skyfall = on
	b.notify()
}

// ClearBoard empties the start layout; cascades on a cleared board never refill
func (b *Board) ClearBoard() {
	b.interrupt()
	b.start.Fill(drop.EmptyFactory)
	b.cleared = true
	b.current = b.start.Clone()
	b.notify()
}

// RandomizeBoard regenerates the start layout
func (b *Board) RandomizeBoard() {
	b.interrupt()
	b.start.Fill(b.factory)
	b.cleared = false
	b.current = b.start.Clone()
	b.notify()
}

// ResetPuzzle restores the play grid to a clone of the start layout
func (b *Board) ResetPuzzle() {
	b.interrupt()
	b.session.end()
	b.current = b.start.Clone()
	b.notify()
}

// ModifyDropAt applies fn to the start drop at p and mirrors it onto the play grid
// Panics if p is out of range
func (b *Board) ModifyDropAt(p grid.Position, fn func(*drop.Drop)) {
	d := b.start.At(p)
	fn(d)
	b.current.Set(p, d.Clone())
	b.notify()
}

// ToggleDisabled flips whether id takes part in matching
// Returns the new disabled state; the empty sentinel is ignored
func (b *Board) ToggleDisabled(id drop.ID) bool {
	if id == drop.Empty || !id.Valid() {
		return false
	}
	on := b.disabled.Toggle(id)
	b.notify()
	return on
}

// Resize rebuilds the start layout at size columns, keeping the top-left
// region, and resets the play grid. A cleared board stays empty
// Panics on size < 2
func (b *Board) Resize(size int) {
	if size < constants.MinBoardSize {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	if size == b.start.Size() {
		return
	}
	b.interrupt()
	b.session.end()
	fill := b.factory
	if b.cleared {
		fill = drop.EmptyFactory
	}
	b.start = b.start.Resized(size, fill)
	b.current = b.start.Clone()
	b.emit(event.EventBoardResized, &event.BoardResizedPayload{Cols: b.start.Cols(), Rows: b.start.Rows()})
	b.notify()
}

// === Notification ===

func (b *Board) notify() {
	if b.batching {
		return
	}
	b.emit(event.EventBoardChanged, nil)
	if b.listener != nil {
		b.listener()
	}
}

func (b *Board) emit(t event.EventType, payload any) {
	if b.queue != nil {
		b.queue.Emit(t, payload)
	}
}
