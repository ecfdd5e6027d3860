package pomodoro

import "sync"

// Broadcaster is a Sink that fans events out to subscriber channels.
// Delivery never blocks: a subscriber whose buffer is full misses the event.
type Broadcaster struct {
	mu     sync.Mutex
	events []chan Event
	closed bool
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a new observer channel.
func (broadcaster *Broadcaster) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	if broadcaster.closed {
		close(ch)
		return ch
	}
	broadcaster.events = append(broadcaster.events, ch)
	return ch
}

// Emit delivers the event to every subscriber with room for it.
func (broadcaster *Broadcaster) Emit(event Event) {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	for _, ch := range broadcaster.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes every subscriber channel. Later events are dropped.
func (broadcaster *Broadcaster) Close() {
	broadcaster.mu.Lock()
	events := broadcaster.events
	broadcaster.events = nil
	broadcaster.closed = true
	broadcaster.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
