package pomodoro

import "testing"

func TestBroadcaster_DeliversToSubscribers(t *testing.T) {
	broadcaster := NewBroadcaster()
	first := broadcaster.Subscribe(2)
	second := broadcaster.Subscribe(2)

	broadcaster.Emit(Event{Type: EventPaused, Message: MessagePaused})

	for i, ch := range []<-chan Event{first, second} {
		select {
		case event := <-ch:
			if event.Type != EventPaused {
				t.Errorf("subscriber %d got %q, want %q", i, event.Type, EventPaused)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestBroadcaster_DropsWhenFull(t *testing.T) {
	broadcaster := NewBroadcaster()
	ch := broadcaster.Subscribe(1)

	broadcaster.Emit(Event{Type: EventDisplayUpdate, Seconds: 1})
	broadcaster.Emit(Event{Type: EventDisplayUpdate, Seconds: 2})

	event := <-ch
	if event.Seconds != 1 {
		t.Errorf("Seconds = %d, want 1", event.Seconds)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected second event %+v", extra)
	default:
	}
}

func TestBroadcaster_Close(t *testing.T) {
	broadcaster := NewBroadcaster()
	ch := broadcaster.Subscribe(1)

	broadcaster.Close()
	broadcaster.Emit(Event{Type: EventPaused})

	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
	late := broadcaster.Subscribe(1)
	if _, ok := <-late; ok {
		t.Error("subscription after close should be closed")
	}
}
