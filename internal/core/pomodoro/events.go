package pomodoro

import "time"

// Phase is one of the two mutually exclusive countdown modes.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Next returns the phase that follows a completed countdown.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// EventType defines the type of engine event.
type EventType string

const (
	EventDisplayUpdate    EventType = "display_update"
	EventPhaseComplete    EventType = "phase_complete"
	EventLongBreakGranted EventType = "long_break_granted"
	EventPaused           EventType = "paused"
	EventAlertRequested   EventType = "alert_requested"
	EventStateChange      EventType = "state_change"
)

// Alert messages carried by engine events.
const (
	MessagePaused    = "Timer paused!"
	MessageBreakOver = "Break time over - get back to work!"
	MessageBreakTime = "It's break time - kick back and relax!"
	MessageLongBreak = "Well done! Time for a long break!"
)

// Event represents an engine update for the host.
type Event struct {
	Type            EventType
	Phase           Phase
	EndedPhase      Phase
	Minutes         int
	Seconds         int
	Running         bool
	ContinuePending bool
	Message         string
	At              time.Time
}

// Sink receives engine events. Emit is called on the engine's thread and must not block.
type Sink interface {
	Emit(event Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls fn(event).
func (fn SinkFunc) Emit(event Event) {
	fn(event)
}

type fanout []Sink

func (sinks fanout) Emit(event Event) {
	for _, sink := range sinks {
		sink.Emit(event)
	}
}

// Fanout returns a Sink that forwards every event to each non-nil sink in order.
func Fanout(sinks ...Sink) Sink {
	out := make(fanout, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			out = append(out, sink)
		}
	}
	return out
}
