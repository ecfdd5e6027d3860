package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"cinamodoro/internal/core/pomodoro"
	"cinamodoro/internal/ui/desklet"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. It implements pomodoro.Sink and must be
// fed on the fyne thread.
type Manager struct {
	app        desktop.App
	title      string
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	clock      string
	phase      pomodoro.Phase
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
		phase:     pomodoro.PhaseWork,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(desklet.ToggleLabel(false, false), func() {
		call(manager.callbacks.OnToggle)
	})

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			call(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItem("Show timer", func() {
			call(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	)

	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
		app.SetSystemTrayIcon(theme.MediaPlayIcon())
	}
	return manager
}

// Emit implements pomodoro.Sink.
func (manager *Manager) Emit(event pomodoro.Event) {
	switch event.Type {
	case pomodoro.EventDisplayUpdate:
		manager.phase = event.Phase
		manager.clock = desklet.FormatClock(event.Minutes, event.Seconds)
		manager.refreshStatus()
	case pomodoro.EventStateChange:
		manager.running = event.Running
		manager.toggleItem.Label = desklet.ToggleLabel(event.Running, event.ContinuePending)
		manager.refreshStatus()
		manager.refreshIcon()
	}
}

// Status returns the status line currently shown.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the start/pause entry label.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) refreshStatus() {
	status := fmt.Sprintf("%s %s", desklet.PhaseLabel(manager.phase), manager.clock)
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	if manager.running {
		manager.app.SetSystemTrayIcon(theme.MediaPauseIcon())
		return
	}
	manager.app.SetSystemTrayIcon(theme.MediaPlayIcon())
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
