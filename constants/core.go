package constants

import "time"

// Game Loop & Engine Timing
const (
	// GameUpdateInterval is the board logic update interval (clock tick)
	GameUpdateInterval = 16 * time.Millisecond

	// CommandQueueSize is the buffered capacity of the loop command channel
	CommandQueueSize = 256
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	// A full 7x6 cascade round emits at most ~50 events; sized for several rounds per frame
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// MaxChainedTransitions bounds zero-time FSM transitions evaluated within one tick
const MaxChainedTransitions = 8
