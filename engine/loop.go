package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/constants"
	"github.com/lixenwraith/drop-puzzle/core"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/status"
)

// maxDispatchPasses bounds re-dispatch when handlers emit further events
const maxDispatchPasses = 4

// tickLoadAlpha weights the newest tick in the reported load average
const tickLoadAlpha = 0.1

// FrameSink draws the board
// Frame runs on the loop goroutine, so it may read the board directly
type FrameSink interface {
	Frame(b *board.Board, now time.Time)
	// Animating reports whether frames are needed without a board change
	Animating(now time.Time) bool
}

// LoopConfig configures the game loop
type LoopConfig struct {
	TickInterval time.Duration
	// CoalesceMoves merges consecutive pointer moves received within one batch
	CoalesceMoves bool
}

// Loop is the single logical thread that owns the board
// Commands from input, network and tools are applied in arrival order;
// ticks advance the cascade; queued events are dispatched after each step.
type Loop struct {
	board  *board.Board
	queue  *event.EventQueue
	router *event.Router
	clock  Clock
	cfg    LoopConfig
	sink   FrameSink

	commands chan Command
	dirty    bool
	lastTick time.Time

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	done     chan struct{}

	// Cached metric pointers
	statTicks *atomic.Int64
	statLoad  *status.AtomicFloat
}

// NewLoop wires a loop around b; the board must publish to queue
// metrics may be nil
func NewLoop(b *board.Board, queue *event.EventQueue, clock Clock, cfg LoopConfig, metrics *status.Registry) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = constants.GameUpdateInterval
	}
	if clock == nil {
		clock = NewTimeProvider()
	}
	l := &Loop{
		board:    b,
		queue:    queue,
		router:   event.NewRouter(queue),
		clock:    clock,
		cfg:      cfg,
		commands: make(chan Command, constants.CommandQueueSize),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		dirty:    true,
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	l.statTicks = metrics.Ints.Get("engine.ticks")
	l.statLoad = metrics.Floats.Get(status.KeyTickLoad)

	b.OnChange(func() { l.dirty = true })
	return l
}

// RegisterEventHandler adds an event handler to router, must be called before Start()
func (l *Loop) RegisterEventHandler(h event.Handler) {
	l.router.Register(h)
}

// SetFrameSink attaches the renderer, must be called before Start()
func (l *Loop) SetFrameSink(s FrameSink) {
	l.sink = s
}

// Submit queues a command, blocking while the queue is full
// Returns false once the loop has stopped
func (l *Loop) Submit(c Command) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.commands <- c:
		return true
	case <-l.stopChan:
		return false
	}
}

// Snapshot copies the board state through the loop goroutine
func (l *Loop) Snapshot() (board.Snapshot, bool) {
	reply := make(chan board.Snapshot, 1)
	if !l.Submit(Do(func(b *board.Board) { reply <- b.Snapshot() })) {
		return board.Snapshot{}, false
	}
	select {
	case s := <-reply:
		return s, true
	case <-l.done:
		return board.Snapshot{}, false
	}
}

// Done is closed when the loop goroutine exits
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	select {
	case <-l.stopChan:
		return
	default:
	}
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for it to exit
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Load() {
			l.wg.Wait()
		} else {
			close(l.done)
		}
	})
}

func (l *Loop) run() {
	defer l.wg.Done()
	defer close(l.done)

	ticker := time.NewTicker(l.cfg.TickInterval)
	defer ticker.Stop()

	l.lastTick = l.clock.Now()
	l.flush()

	for {
		select {
		case <-l.stopChan:
			return
		case c := <-l.commands:
			l.processCommands(l.drain(c))
		case <-ticker.C:
			l.processTick()
		}
	}
}

// drain collects every command already queued behind first
func (l *Loop) drain(first Command) []Command {
	batch := []Command{first}
	for {
		select {
		case c := <-l.commands:
			batch = append(batch, c)
		default:
			return batch
		}
	}
}

func (l *Loop) processCommands(batch []Command) {
	if l.cfg.CoalesceMoves {
		batch = coalesceMoves(batch)
	}
	for _, c := range batch {
		if c.Kind == CmdRedraw {
			l.dirty = true
			continue
		}
		c.apply(l.board)
		// Palette strokes raised by this command apply before the next one
		l.dispatch()
	}
	l.flush()
}

func (l *Loop) processTick() {
	start := time.Now()
	now := l.clock.Now()
	dt := now.Sub(l.lastTick)
	l.lastTick = now

	l.board.Tick(dt)
	l.flush()

	l.statTicks.Add(1)
	l.statLoad.Smooth(float64(time.Since(start).Microseconds())/1000.0, tickLoadAlpha)
}

// dispatch routes queued events until handlers stop emitting new ones
func (l *Loop) dispatch() {
	for pass := 0; pass < maxDispatchPasses; pass++ {
		if l.router.DispatchAll() == 0 {
			return
		}
	}
	if n := l.queue.Len(); n > 0 {
		log.Printf("engine: %d events deferred to next step", n)
	}
}

// flush dispatches events and renders if anything changed
func (l *Loop) flush() {
	l.dispatch()
	if l.sink == nil {
		l.dirty = false
		return
	}
	now := l.clock.Now()
	if l.dirty || l.sink.Animating(now) {
		l.sink.Frame(l.board, now)
		l.dirty = false
	}
}
