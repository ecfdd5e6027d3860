package pomodoro

import (
	"time"

	"cinamodoro/internal/core/model"
)

// TickInterval is the countdown cadence requested from the scheduler.
const TickInterval = time.Second

// Handle identifies a scheduled repeating callback. The zero Handle is never issued.
type Handle uint64

// Scheduler delivers repeating callbacks on the engine's thread.
// A callback returning false is not invoked again.
type Scheduler interface {
	ScheduleRepeating(interval time.Duration, callback func() bool) Handle
	Cancel(handle Handle)
}

// State is a read-only snapshot of the engine.
type State struct {
	Running          bool
	Phase            Phase
	RemainingSeconds int
	CyclesCompleted  int
	ContinuePending  bool
	Config           model.TimerConfig
}

// Engine is the Pomodoro state machine. It is not safe for concurrent use:
// commands and scheduler callbacks must arrive serialized on one thread.
type Engine struct {
	config    model.TimerConfig
	pending   *model.TimerConfig
	scheduler Scheduler
	sink      Sink
	now       func() time.Time

	running         bool
	phase           Phase
	remaining       int
	cycles          int
	continuePending bool
	handle          Handle
}

// New creates an Engine in the paused work phase. A nil sink discards events.
func New(config model.TimerConfig, scheduler Scheduler, sink Sink) *Engine {
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	config = config.Normalize()
	return &Engine{
		config:    config,
		scheduler: scheduler,
		sink:      sink,
		now:       time.Now,
		phase:     PhaseWork,
		remaining: config.WorkSeconds(),
	}
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() State {
	return State{
		Running:          engine.running,
		Phase:            engine.phase,
		RemainingSeconds: engine.remaining,
		CyclesCompleted:  engine.cycles,
		ContinuePending:  engine.continuePending,
		Config:           engine.config,
	}
}

// Start begins ticking. It is a no-op while already running.
func (engine *Engine) Start() {
	if engine.running {
		return
	}
	if engine.remaining == 0 {
		engine.applyPending()
		engine.advancePhase()
		engine.emitDisplay()
	}
	engine.running = true
	engine.continuePending = false
	engine.handle = engine.scheduler.ScheduleRepeating(TickInterval, engine.Tick)
	engine.emitState()
}

// Pause stops ticking and emits a paused event. It is a no-op while paused.
func (engine *Engine) Pause() {
	if !engine.running {
		return
	}
	engine.stopTicking()
	engine.emit(Event{Type: EventPaused, Phase: engine.phase, Message: MessagePaused})
	engine.emitState()
}

// Toggle pauses a running timer and starts (or continues) a paused one.
func (engine *Engine) Toggle() {
	if engine.running {
		engine.Pause()
		return
	}
	engine.Start()
}

// Reset returns to the start of a work phase with no completed cycles.
// Resetting a running timer pauses it first.
func (engine *Engine) Reset() {
	engine.Pause()
	engine.stopTicking()
	engine.applyPending()
	engine.phase = PhaseWork
	engine.cycles = 0
	engine.continuePending = false
	engine.remaining = engine.config.WorkSeconds()
	engine.emitDisplay()
	engine.emitState()
}

// Shutdown cancels ticking without emitting events.
func (engine *Engine) Shutdown() {
	engine.stopTicking()
}

// UpdateConfig replaces the configuration. While running the new config is
// held until the next phase boundary; while paused a schedule change resets the timer.
func (engine *Engine) UpdateConfig(config model.TimerConfig) {
	config = config.Normalize()
	if engine.running {
		engine.pending = &config
		return
	}
	engine.pending = nil
	scheduleChanged := !engine.config.SameSchedule(config)
	engine.config = config
	if scheduleChanged {
		engine.Reset()
	}
}

// Tick advances the countdown by one second and reports whether ticking should continue.
func (engine *Engine) Tick() bool {
	if !engine.running {
		return false
	}
	if engine.remaining > 0 {
		engine.remaining--
		engine.emitDisplay()
	}
	if engine.remaining > 0 {
		return true
	}
	engine.completePhase()
	return false
}

func (engine *Engine) completePhase() {
	ended := engine.phase
	engine.stopTicking()
	engine.emit(Event{Type: EventPhaseComplete, Phase: ended, EndedPhase: ended})

	engine.applyPending()
	engine.advancePhase()
	engine.emitDisplay()

	if engine.config.AutoStartNext {
		engine.Start()
		return
	}
	engine.continuePending = true
	engine.emitState()
}

// advancePhase flips the phase and assigns its duration.
func (engine *Engine) advancePhase() {
	engine.phase = engine.phase.Next()
	if engine.phase == PhaseBreak {
		engine.cycles++
	}

	if engine.phase == PhaseBreak && engine.cycles >= engine.config.CyclesBeforeLongBreak {
		engine.remaining = engine.config.LongBreakSeconds()
		engine.cycles = 0
		engine.emit(Event{Type: EventLongBreakGranted, Phase: engine.phase, Message: MessageLongBreak})
		return
	}

	if engine.phase == PhaseWork {
		engine.remaining = engine.config.WorkSeconds()
		engine.emit(Event{Type: EventAlertRequested, Phase: engine.phase, Message: MessageBreakOver})
		return
	}
	engine.remaining = engine.config.BreakSeconds()
	engine.emit(Event{Type: EventAlertRequested, Phase: engine.phase, Message: MessageBreakTime})
}

func (engine *Engine) applyPending() {
	if engine.pending == nil {
		return
	}
	engine.config = *engine.pending
	engine.pending = nil
}

func (engine *Engine) stopTicking() {
	if engine.handle != 0 {
		engine.scheduler.Cancel(engine.handle)
		engine.handle = 0
	}
	engine.running = false
}

func (engine *Engine) emitDisplay() {
	engine.emit(Event{
		Type:    EventDisplayUpdate,
		Phase:   engine.phase,
		Minutes: engine.remaining / 60,
		Seconds: engine.remaining % 60,
	})
}

func (engine *Engine) emitState() {
	engine.emit(Event{
		Type:            EventStateChange,
		Phase:           engine.phase,
		Running:         engine.running,
		ContinuePending: engine.continuePending,
	})
}

func (engine *Engine) emit(event Event) {
	event.At = engine.now()
	engine.sink.Emit(event)
}
