package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/status"
)

// EventHandler turns board events into cues
type EventHandler struct {
	player Player
	cues   *atomic.Int64
}

// NewEventHandler creates a handler playing through p
// Accepted cues are counted in reg when it is non-nil
func NewEventHandler(p Player, reg *status.Registry) *EventHandler {
	h := &EventHandler{player: p}
	if reg != nil {
		h.cues = reg.Ints.Get(status.KeyAudioCues)
	}
	return h
}

func (h *EventHandler) count(played bool) {
	if played && h.cues != nil {
		h.cues.Add(1)
	}
}

// EventTypes implements event.Handler
func (h *EventHandler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDropSwapped,
		event.EventGroupFade,
		event.EventCascadeRound,
	}
}

// HandleEvent implements event.Handler
func (h *EventHandler) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventDropSwapped:
		h.count(h.player.Play(SoundSwap))
	case event.EventGroupFade:
		if p, ok := ev.Payload.(*event.GroupFadePayload); ok {
			h.count(h.player.PlayCombo(p.Rank, p.Delay))
		}
	case event.EventCascadeRound:
		h.count(h.player.Play(SoundFall))
	}
}
