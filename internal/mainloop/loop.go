// Package mainloop provides repeating timer sources whose callbacks run on a
// single dispatch thread, typically the UI event loop.
package mainloop

import (
	"sync"
	"time"

	"cinamodoro/internal/core/pomodoro"
)

// Dispatcher queues fn for execution on the loop thread.
type Dispatcher func(fn func())

// Loop implements pomodoro.Scheduler on top of time.Ticker.
type Loop struct {
	mu       sync.Mutex
	dispatch Dispatcher
	next     pomodoro.Handle
	sources  map[pomodoro.Handle]chan struct{}
}

// New creates a Loop. A nil dispatcher runs callbacks on the ticker goroutine.
func New(dispatch Dispatcher) *Loop {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Loop{
		dispatch: dispatch,
		sources:  make(map[pomodoro.Handle]chan struct{}),
	}
}

// ScheduleRepeating invokes callback every interval until it returns false or the handle is cancelled.
func (loop *Loop) ScheduleRepeating(interval time.Duration, callback func() bool) pomodoro.Handle {
	if interval <= 0 {
		interval = pomodoro.TickInterval
	}
	stop := make(chan struct{})

	loop.mu.Lock()
	loop.next++
	handle := loop.next
	loop.sources[handle] = stop
	loop.mu.Unlock()

	go loop.run(handle, stop, interval, callback)
	return handle
}

// Cancel removes the source. A callback already queued on the dispatcher will not run.
func (loop *Loop) Cancel(handle pomodoro.Handle) {
	loop.mu.Lock()
	stop, ok := loop.sources[handle]
	delete(loop.sources, handle)
	loop.mu.Unlock()

	if ok {
		close(stop)
	}
}

// Close cancels every source.
func (loop *Loop) Close() {
	loop.mu.Lock()
	sources := loop.sources
	loop.sources = make(map[pomodoro.Handle]chan struct{})
	loop.mu.Unlock()

	for _, stop := range sources {
		close(stop)
	}
}

// Active returns the number of live sources.
func (loop *Loop) Active() int {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.sources)
}

func (loop *Loop) run(handle pomodoro.Handle, stop <-chan struct{}, interval time.Duration, callback func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			loop.dispatch(func() {
				if !loop.alive(handle) {
					return
				}
				if !callback() {
					loop.Cancel(handle)
				}
			})
		}
	}
}

func (loop *Loop) alive(handle pomodoro.Handle) bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	_, ok := loop.sources[handle]
	return ok
}
