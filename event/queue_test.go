package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/drop-puzzle/constants"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	q.Emit(EventCascadeStart, nil)
	q.Emit(EventGroupFade, &GroupFadePayload{Rank: 1})
	q.Emit(EventCascadeComplete, &CascadeCompletePayload{Rounds: 1})

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}

	got := q.Consume()
	want := []EventType{EventCascadeStart, EventGroupFade, EventCascadeComplete}
	if len(got) != len(want) {
		t.Fatalf("consumed %d events, want %d", len(got), len(want))
	}
	for i, ev := range got {
		if ev.Type != want[i] {
			t.Errorf("event %d: type %d, want %d", i, ev.Type, want[i])
		}
	}
	if q.Consume() != nil {
		t.Error("queue should be empty after Consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	total := constants.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Emit(EventDropFall, &DropFallPayload{X: i})
	}

	got := q.Consume()
	if len(got) != constants.EventQueueSize {
		t.Fatalf("consumed %d, want %d", len(got), constants.EventQueueSize)
	}
	first := got[0].Payload.(*DropFallPayload).X
	if first != 10 {
		t.Errorf("oldest surviving event X = %d, want 10", first)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Emit(EventDropSwapped, nil)
			}
		}()
	}
	wg.Wait()

	if n := len(q.Consume()); n != 400 {
		t.Errorf("consumed %d, want 400", n)
	}
}

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	var fades, all []EventType
	r.Register(HandlerFunc{
		Types: []EventType{EventGroupFade},
		Fn:    func(ev GameEvent) { fades = append(fades, ev.Type) },
	})
	r.Register(HandlerFunc{
		Types: []EventType{EventGroupFade, EventDropFall},
		Fn:    func(ev GameEvent) { all = append(all, ev.Type) },
	})

	q.Emit(EventGroupFade, nil)
	q.Emit(EventDropFall, nil)
	q.Emit(EventBoardChanged, nil)

	if n := r.DispatchAll(); n != 3 {
		t.Errorf("DispatchAll = %d, want 3", n)
	}
	if len(fades) != 1 || len(all) != 2 {
		t.Errorf("fades=%v all=%v", fades, all)
	}
	if r.HandlerCount(EventBoardChanged) != 0 {
		t.Error("no handler registered for EventBoardChanged")
	}
}

func TestRegistryNames(t *testing.T) {
	for _, et := range []EventType{EventGroupFade, EventDropFall, EventCascadeComplete, EventDropPushed} {
		name := GetEventName(et)
		if name == "" {
			t.Fatalf("type %d has no name", et)
		}
		back, ok := GetEventType(name)
		if !ok || back != et {
			t.Errorf("round trip of %q gave %d", name, back)
		}
	}
}
