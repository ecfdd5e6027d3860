package pomodoro

import (
	"testing"
	"time"

	"cinamodoro/internal/core/model"
)

type fakeScheduler struct {
	next      Handle
	active    map[Handle]func() bool
	scheduled int
	cancelled []Handle
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{active: make(map[Handle]func() bool)}
}

func (scheduler *fakeScheduler) ScheduleRepeating(interval time.Duration, callback func() bool) Handle {
	scheduler.next++
	scheduler.scheduled++
	scheduler.active[scheduler.next] = callback
	return scheduler.next
}

func (scheduler *fakeScheduler) Cancel(handle Handle) {
	delete(scheduler.active, handle)
	scheduler.cancelled = append(scheduler.cancelled, handle)
}

// fire delivers one tick to every callback active before the call, dropping those that ask to stop.
func (scheduler *fakeScheduler) fire() {
	handles := make([]Handle, 0, len(scheduler.active))
	for handle := range scheduler.active {
		handles = append(handles, handle)
	}
	for _, handle := range handles {
		callback, ok := scheduler.active[handle]
		if !ok {
			continue
		}
		if !callback() {
			delete(scheduler.active, handle)
		}
	}
}

type recorder struct {
	events []Event
}

func (rec *recorder) Emit(event Event) {
	rec.events = append(rec.events, event)
}

func (rec *recorder) count(eventType EventType) int {
	total := 0
	for _, event := range rec.events {
		if event.Type == eventType {
			total++
		}
	}
	return total
}

func (rec *recorder) last(eventType EventType) (Event, bool) {
	for i := len(rec.events) - 1; i >= 0; i-- {
		if rec.events[i].Type == eventType {
			return rec.events[i], true
		}
	}
	return Event{}, false
}

func classicConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkMinutes:           25,
		BreakMinutes:          5,
		LongBreakMinutes:      15,
		CyclesBeforeLongBreak: 4,
	}
}

func newTestEngine(config model.TimerConfig) (*Engine, *fakeScheduler, *recorder) {
	scheduler := newFakeScheduler()
	rec := &recorder{}
	return New(config, scheduler, rec), scheduler, rec
}

func tickN(engine *Engine, n int) {
	for i := 0; i < n; i++ {
		engine.Tick()
	}
}

func TestNew_InitialState(t *testing.T) {
	engine, scheduler, rec := newTestEngine(classicConfig())

	state := engine.Snapshot()
	if state.Running {
		t.Error("new engine should not be running")
	}
	if state.Phase != PhaseWork {
		t.Errorf("Phase = %q, want %q", state.Phase, PhaseWork)
	}
	if state.RemainingSeconds != 1500 {
		t.Errorf("RemainingSeconds = %d, want 1500", state.RemainingSeconds)
	}
	if scheduler.scheduled != 0 {
		t.Errorf("scheduled = %d, want 0", scheduler.scheduled)
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no events from New, got %d", len(rec.events))
	}
}

func TestStart_Idempotent(t *testing.T) {
	engine, scheduler, _ := newTestEngine(classicConfig())

	engine.Start()
	engine.Start()

	if scheduler.scheduled != 1 {
		t.Errorf("scheduled = %d, want 1", scheduler.scheduled)
	}
	if len(scheduler.active) != 1 {
		t.Errorf("active handles = %d, want 1", len(scheduler.active))
	}
	if !engine.Snapshot().Running {
		t.Error("engine should be running")
	}
}

func TestTick_Decrements(t *testing.T) {
	engine, scheduler, rec := newTestEngine(classicConfig())
	engine.Start()

	scheduler.fire()
	scheduler.fire()

	if got := engine.Snapshot().RemainingSeconds; got != 1498 {
		t.Errorf("RemainingSeconds = %d, want 1498", got)
	}
	display, ok := rec.last(EventDisplayUpdate)
	if !ok {
		t.Fatal("expected a display update")
	}
	if display.Minutes != 24 || display.Seconds != 58 {
		t.Errorf("display = %d:%02d, want 24:58", display.Minutes, display.Seconds)
	}
	if display.Phase != PhaseWork {
		t.Errorf("display phase = %q, want %q", display.Phase, PhaseWork)
	}
}

func TestTick_NTicksCompleteOnce(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
	}{
		{"one minute", 1},
		{"two minutes", 2},
		{"five minutes", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := classicConfig()
			config.WorkMinutes = tt.minutes
			engine, _, rec := newTestEngine(config)
			engine.Start()

			n := tt.minutes * 60
			for i := 0; i < n-1; i++ {
				if !engine.Tick() {
					t.Fatalf("tick %d asked to stop early", i+1)
				}
			}
			if rec.count(EventPhaseComplete) != 0 {
				t.Fatal("phase completed before the last tick")
			}

			if engine.Tick() {
				t.Error("completing tick should ask the scheduler to stop")
			}
			if got := rec.count(EventPhaseComplete); got != 1 {
				t.Fatalf("phase completions = %d, want 1", got)
			}

			// The display reached 0:00 right before completion.
			var zeroSeen bool
			for _, event := range rec.events {
				if event.Type == EventPhaseComplete {
					break
				}
				if event.Type == EventDisplayUpdate && event.Minutes == 0 && event.Seconds == 0 {
					zeroSeen = true
				}
			}
			if !zeroSeen {
				t.Error("expected a 0:00 display update before completion")
			}
		})
	}
}

func TestPause_FreezesCountdown(t *testing.T) {
	engine, scheduler, rec := newTestEngine(classicConfig())
	engine.Start()
	tickN(engine, 10)

	engine.Pause()
	before := engine.Snapshot().RemainingSeconds
	tickN(engine, 100)
	scheduler.fire()

	if got := engine.Snapshot().RemainingSeconds; got != before {
		t.Errorf("RemainingSeconds = %d after paused ticks, want %d", got, before)
	}
	if len(scheduler.active) != 0 {
		t.Errorf("active handles = %d after pause, want 0", len(scheduler.active))
	}
	paused, ok := rec.last(EventPaused)
	if !ok {
		t.Fatal("expected a paused event")
	}
	if paused.Message != MessagePaused {
		t.Errorf("paused message = %q, want %q", paused.Message, MessagePaused)
	}
}

func TestPause_NoopWhenPaused(t *testing.T) {
	engine, _, rec := newTestEngine(classicConfig())

	engine.Pause()

	if rec.count(EventPaused) != 0 {
		t.Error("pause on an idle engine should not emit")
	}
}

func TestReset_FromAnyState(t *testing.T) {
	config := classicConfig()
	config.WorkMinutes = 1
	config.BreakMinutes = 1
	engine, scheduler, rec := newTestEngine(config)

	engine.Start()
	tickN(engine, 60) // into break
	engine.Start()
	tickN(engine, 30)

	engine.Reset()

	state := engine.Snapshot()
	if state.Running {
		t.Error("Running should be false after reset")
	}
	if state.Phase != PhaseWork {
		t.Errorf("Phase = %q, want %q", state.Phase, PhaseWork)
	}
	if state.CyclesCompleted != 0 {
		t.Errorf("CyclesCompleted = %d, want 0", state.CyclesCompleted)
	}
	if state.RemainingSeconds != 60 {
		t.Errorf("RemainingSeconds = %d, want 60", state.RemainingSeconds)
	}
	if len(scheduler.active) != 0 {
		t.Errorf("active handles = %d after reset, want 0", len(scheduler.active))
	}
	display, _ := rec.last(EventDisplayUpdate)
	if display.Minutes != 1 || display.Seconds != 0 || display.Phase != PhaseWork {
		t.Errorf("display after reset = %d:%02d %s, want 1:00 work", display.Minutes, display.Seconds, display.Phase)
	}
}

func TestReset_WhileRunningPauses(t *testing.T) {
	engine, _, rec := newTestEngine(classicConfig())
	engine.Start()
	tickN(engine, 5)

	engine.Reset()

	if got := rec.count(EventPaused); got != 1 {
		t.Fatalf("paused events = %d, want 1", got)
	}
	paused, _ := rec.last(EventPaused)
	if paused.Message != MessagePaused {
		t.Errorf("paused message = %q, want %q", paused.Message, MessagePaused)
	}

	engine.Reset()
	if got := rec.count(EventPaused); got != 1 {
		t.Errorf("paused events after idle reset = %d, want 1", got)
	}
}

func TestStaleTickAfterReset(t *testing.T) {
	engine, _, _ := newTestEngine(classicConfig())
	engine.Start()
	stale := engine.Tick

	engine.Reset()

	if stale() {
		t.Error("stale tick should ask to stop")
	}
	if got := engine.Snapshot().RemainingSeconds; got != 1500 {
		t.Errorf("RemainingSeconds = %d, want 1500", got)
	}
}

func TestScenario_WorkToBreakManual(t *testing.T) {
	engine, scheduler, rec := newTestEngine(classicConfig())
	engine.Start()

	tickN(engine, 1500)

	state := engine.Snapshot()
	if state.Phase != PhaseBreak {
		t.Errorf("Phase = %q, want %q", state.Phase, PhaseBreak)
	}
	if state.RemainingSeconds != 300 {
		t.Errorf("RemainingSeconds = %d, want 300", state.RemainingSeconds)
	}
	if state.Running {
		t.Error("Running should be false with auto-start off")
	}
	if !state.ContinuePending {
		t.Error("ContinuePending should be set")
	}
	if state.CyclesCompleted != 1 {
		t.Errorf("CyclesCompleted = %d, want 1", state.CyclesCompleted)
	}
	if len(scheduler.active) != 0 {
		t.Errorf("active handles = %d, want 0", len(scheduler.active))
	}

	complete, _ := rec.last(EventPhaseComplete)
	if complete.EndedPhase != PhaseWork {
		t.Errorf("EndedPhase = %q, want %q", complete.EndedPhase, PhaseWork)
	}
	alert, _ := rec.last(EventAlertRequested)
	if alert.Message != MessageBreakTime {
		t.Errorf("alert = %q, want %q", alert.Message, MessageBreakTime)
	}

	// Continue resumes the break countdown.
	engine.Toggle()
	tickN(engine, 1)
	if got := engine.Snapshot().RemainingSeconds; got != 299 {
		t.Errorf("RemainingSeconds after continue = %d, want 299", got)
	}
}

func TestScenario_WorkToBreakAutoStart(t *testing.T) {
	config := classicConfig()
	config.AutoStartNext = true
	engine, scheduler, _ := newTestEngine(config)
	engine.Start()

	for i := 0; i < 1500; i++ {
		scheduler.fire()
	}

	state := engine.Snapshot()
	if !state.Running {
		t.Fatal("Running should be true with auto-start on")
	}
	if state.RemainingSeconds != 300 {
		t.Fatalf("RemainingSeconds = %d, want 300", state.RemainingSeconds)
	}
	if len(scheduler.active) != 1 {
		t.Fatalf("active handles = %d, want 1", len(scheduler.active))
	}

	scheduler.fire()
	if got := engine.Snapshot().RemainingSeconds; got != 299 {
		t.Errorf("RemainingSeconds = %d, want 299", got)
	}
}

func TestScenario_LongBreakAfterCycles(t *testing.T) {
	engine, _, rec := newTestEngine(classicConfig())

	for cycle := 1; cycle <= 4; cycle++ {
		engine.Start()
		tickN(engine, 1500)

		state := engine.Snapshot()
		if state.Phase != PhaseBreak {
			t.Fatalf("cycle %d: Phase = %q, want break", cycle, state.Phase)
		}
		if cycle < 4 {
			if state.RemainingSeconds != 300 {
				t.Errorf("cycle %d: RemainingSeconds = %d, want 300", cycle, state.RemainingSeconds)
			}
			if state.CyclesCompleted != cycle {
				t.Errorf("cycle %d: CyclesCompleted = %d, want %d", cycle, state.CyclesCompleted, cycle)
			}
			engine.Start()
			tickN(engine, 300)
			if got := engine.Snapshot().Phase; got != PhaseWork {
				t.Fatalf("cycle %d: Phase after break = %q, want work", cycle, got)
			}
			continue
		}

		if state.RemainingSeconds != 900 {
			t.Errorf("long break RemainingSeconds = %d, want 900", state.RemainingSeconds)
		}
		if state.CyclesCompleted != 0 {
			t.Errorf("CyclesCompleted after long break = %d, want 0", state.CyclesCompleted)
		}
	}

	if got := rec.count(EventLongBreakGranted); got != 1 {
		t.Errorf("long breaks granted = %d, want 1", got)
	}
	granted, _ := rec.last(EventLongBreakGranted)
	if granted.Message != MessageLongBreak {
		t.Errorf("long break message = %q, want %q", granted.Message, MessageLongBreak)
	}
	alert, _ := rec.last(EventAlertRequested)
	if alert.Message != MessageBreakOver {
		t.Errorf("last alert = %q, want %q", alert.Message, MessageBreakOver)
	}
}

func TestNew_ZeroWorkMinutesClamped(t *testing.T) {
	config := classicConfig()
	config.WorkMinutes = 0
	engine, _, _ := newTestEngine(config)

	engine.Start()

	state := engine.Snapshot()
	if state.Phase != PhaseWork {
		t.Errorf("Phase = %q, want %q", state.Phase, PhaseWork)
	}
	if state.RemainingSeconds != 60 {
		t.Errorf("RemainingSeconds = %d, want 60", state.RemainingSeconds)
	}
	if state.CyclesCompleted != 0 {
		t.Errorf("CyclesCompleted = %d, want 0", state.CyclesCompleted)
	}
}

func TestStart_ZeroRemainingArmsNextPhase(t *testing.T) {
	engine, scheduler, _ := newTestEngine(classicConfig())
	engine.remaining = 0

	engine.Start()

	state := engine.Snapshot()
	if state.Phase != PhaseBreak {
		t.Errorf("Phase = %q, want %q", state.Phase, PhaseBreak)
	}
	if state.RemainingSeconds != 300 {
		t.Errorf("RemainingSeconds = %d, want 300", state.RemainingSeconds)
	}
	if !state.Running || len(scheduler.active) != 1 {
		t.Error("engine should be running with one handle")
	}
}

func TestUpdateConfig_WhilePausedResets(t *testing.T) {
	engine, _, _ := newTestEngine(classicConfig())
	engine.Start()
	tickN(engine, 42)
	engine.Pause()

	config := classicConfig()
	config.WorkMinutes = 50
	engine.UpdateConfig(config)

	if got := engine.Snapshot().RemainingSeconds; got != 3000 {
		t.Errorf("RemainingSeconds = %d, want 3000", got)
	}
}

func TestUpdateConfig_AutoStartOnlyKeepsProgress(t *testing.T) {
	engine, _, _ := newTestEngine(classicConfig())
	engine.Start()
	tickN(engine, 42)
	engine.Pause()

	config := classicConfig()
	config.AutoStartNext = true
	engine.UpdateConfig(config)

	state := engine.Snapshot()
	if state.RemainingSeconds != 1458 {
		t.Errorf("RemainingSeconds = %d, want 1458", state.RemainingSeconds)
	}
	if !state.Config.AutoStartNext {
		t.Error("AutoStartNext should be applied")
	}
}

func TestUpdateConfig_WhileRunningDefersToBoundary(t *testing.T) {
	config := classicConfig()
	config.WorkMinutes = 1
	engine, _, _ := newTestEngine(config)
	engine.Start()
	tickN(engine, 10)

	updated := config
	updated.BreakMinutes = 7
	engine.UpdateConfig(updated)

	state := engine.Snapshot()
	if state.RemainingSeconds != 50 {
		t.Errorf("RemainingSeconds = %d, want 50 (countdown untouched)", state.RemainingSeconds)
	}
	if state.Config.BreakMinutes != 5 {
		t.Errorf("BreakMinutes = %d before boundary, want 5", state.Config.BreakMinutes)
	}

	tickN(engine, 50)

	state = engine.Snapshot()
	if state.RemainingSeconds != 420 {
		t.Errorf("RemainingSeconds = %d, want 420 from the new config", state.RemainingSeconds)
	}
}

func TestStateChangeEvents(t *testing.T) {
	config := classicConfig()
	config.WorkMinutes = 1
	engine, _, rec := newTestEngine(config)

	engine.Start()
	state, _ := rec.last(EventStateChange)
	if !state.Running || state.ContinuePending {
		t.Errorf("after start: running=%v continue=%v", state.Running, state.ContinuePending)
	}

	tickN(engine, 60)
	state, _ = rec.last(EventStateChange)
	if state.Running || !state.ContinuePending {
		t.Errorf("after completion: running=%v continue=%v", state.Running, state.ContinuePending)
	}
}

func TestShutdown_CancelsSilently(t *testing.T) {
	engine, scheduler, rec := newTestEngine(classicConfig())
	engine.Start()
	before := len(rec.events)

	engine.Shutdown()

	if len(scheduler.active) != 0 {
		t.Errorf("active handles = %d, want 0", len(scheduler.active))
	}
	if len(rec.events) != before {
		t.Error("shutdown should not emit")
	}
}

func TestFanout_SkipsNil(t *testing.T) {
	first := &recorder{}
	second := &recorder{}
	sink := Fanout(first, nil, second)

	sink.Emit(Event{Type: EventPaused})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Errorf("fanout delivered %d and %d events, want 1 each", len(first.events), len(second.events))
	}
}
