package event

// EventType represents the type of board event
type EventType int

const (
	// EventNone is the zero value; the FSM uses it for tick transitions
	EventNone EventType = iota

	// === Board Controller ===

	// EventBoardChanged signals any state change that needs a redraw
	// Trigger: Board mutation, pointer move, mode/size change
	// Consumer: Renderer, Network | Payload: nil
	EventBoardChanged

	// EventDropSwapped reports one swap-engine step in puzzle mode
	// Trigger: Board pointer move | Consumer: Audio, Renderer | Payload: *DropSwappedPayload
	EventDropSwapped

	// EventDropPushed reports a palette-mode touch entering a cell
	// Trigger: Board pointer down/move in palette mode
	// Consumer: palette tool (application) | Payload: *DropPushedPayload
	EventDropPushed

	// EventModeChanged reports a puzzle/palette switch
	// Consumer: Renderer, Network | Payload: *ModeChangedPayload
	EventModeChanged

	// EventBoardResized reports a new column count
	// Consumer: Renderer, Network | Payload: *BoardResizedPayload
	EventBoardResized

	// === Cascade Resolver ===

	// EventCascadeStart signals the resolver left Idle
	// Consumer: Renderer, Audio | Payload: nil
	EventCascadeStart

	// EventGroupFade stages the fade-out of one combo group
	// Consumer: Renderer, Audio | Payload: *GroupFadePayload
	EventGroupFade

	// EventDropFall stages one drop's fall within its column
	// Consumer: Renderer | Payload: *DropFallPayload
	EventDropFall

	// EventCascadeRound closes one detect/fade/fall round
	// Consumer: Audio, Network | Payload: *CascadeRoundPayload
	EventCascadeRound

	// EventCascadeComplete signals the board is quiescent again
	// Consumer: Renderer, Network | Payload: *CascadeCompletePayload
	EventCascadeComplete
)
