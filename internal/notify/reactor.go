package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cinamodoro/internal/core/pomodoro"
)

// NotificationTitle is the summary line of every popup.
const NotificationTitle = "Pomodoro Timer"

// Options selects which reactions are enabled.
type Options struct {
	PlaySound         bool
	ShowNotifications bool
	WorkEndSound      string
	BreakEndSound     string
}

// Reactor maps engine events to sounds and notifications. Failures are
// logged and never reach the engine.
type Reactor struct {
	mu       sync.Mutex
	options  Options
	notifier Notifier
	player   Player
	logger   *slog.Logger
}

// NewReactor creates a Reactor.
func NewReactor(options Options, notifier Notifier, player Player, logger *slog.Logger) *Reactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reactor{
		options:  options,
		notifier: notifier,
		player:   player,
		logger:   logger,
	}
}

// SetOptions replaces the reaction options.
func (reactor *Reactor) SetOptions(options Options) {
	reactor.mu.Lock()
	reactor.options = options
	reactor.mu.Unlock()
}

// Run handles events until the channel closes or ctx is done.
func (reactor *Reactor) Run(ctx context.Context, events <-chan pomodoro.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			reactor.Handle(event)
		}
	}
}

// Handle reacts to a single event.
func (reactor *Reactor) Handle(event pomodoro.Event) {
	reactor.mu.Lock()
	options := reactor.options
	reactor.mu.Unlock()

	switch event.Type {
	case pomodoro.EventPhaseComplete:
		reactor.logger.Info("phase complete", "ended", string(event.EndedPhase))
		if options.PlaySound {
			reactor.playFor(event.EndedPhase, options)
		}
	case pomodoro.EventPaused, pomodoro.EventAlertRequested, pomodoro.EventLongBreakGranted:
		reactor.logger.Debug("alert", "type", string(event.Type), "message", event.Message)
		if options.ShowNotifications {
			reactor.notify(event.Message)
		}
	}
}

func (reactor *Reactor) playFor(ended pomodoro.Phase, options Options) {
	path := options.BreakEndSound
	if ended == pomodoro.PhaseWork {
		path = options.WorkEndSound
	}

	err := reactor.player.Play(path)
	if err == nil {
		return
	}
	reactor.logger.Warn("play sound", "path", path, "error", err)
	if errors.Is(err, ErrNoPlayer) && options.ShowNotifications {
		reactor.notify("Sound player is not available.")
	}
}

func (reactor *Reactor) notify(message string) {
	if message == "" {
		return
	}
	if err := reactor.notifier.Notify(NotificationTitle, message); err != nil {
		reactor.logger.Warn("send notification", "error", err)
	}
}
