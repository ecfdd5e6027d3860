package desklet

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cinamodoro/internal/core/pomodoro"
)

// Callbacks defines desklet button handlers.
type Callbacks struct {
	OnToggle func()
	OnReset  func()
}

// Window renders engine events as a small always-visible timer panel.
// Emit must be called on the fyne thread.
type Window struct {
	window       fyne.Window
	style        Style
	timeText     *canvas.Text
	stateText    *canvas.Text
	background   *canvas.Rectangle
	toggleButton *widget.Button
	resetButton  *widget.Button
	callbacks    Callbacks
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the desklet window.
func New(app fyne.App, title string, style Style, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash windows have no frame, which is what a desklet looks like.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	timeText := canvas.NewText(FormatClock(0, 0), style.TextColor)
	timeText.Alignment = fyne.TextAlignCenter
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	stateText := canvas.NewText(PhaseLabel(pomodoro.PhaseWork), style.TextColor)
	stateText.Alignment = fyne.TextAlignCenter

	background := canvas.NewRectangle(style.BackgroundColor)

	desklet := &Window{
		window:     window,
		timeText:   timeText,
		stateText:  stateText,
		background: background,
		callbacks:  callbacks,
	}

	desklet.toggleButton = widget.NewButton(ToggleLabel(false, false), desklet.handleToggle)
	desklet.resetButton = widget.NewButton("Reset", desklet.handleReset)

	timer := container.New(&timerLayout{}, timeText, stateText)
	controls := container.NewGridWithColumns(2, desklet.toggleButton, desklet.resetButton)
	content := container.NewBorder(nil, controls, nil, nil, timer)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))

	desklet.ApplyStyle(style)
	return desklet
}

// Show displays the desklet.
func (desklet *Window) Show() {
	desklet.window.Show()
}

// ApplyStyle updates font size and colors.
func (desklet *Window) ApplyStyle(style Style) {
	desklet.style = style
	desklet.timeText.TextSize = style.FontSize
	desklet.timeText.Color = style.TextColor
	desklet.stateText.TextSize = style.StateFontSize()
	desklet.stateText.Color = style.TextColor
	desklet.background.FillColor = style.BackgroundColor

	desklet.timeText.Refresh()
	desklet.stateText.Refresh()
	canvas.Refresh(desklet.background)
	desklet.window.Resize(desklet.window.Content().MinSize())
}

// Emit implements pomodoro.Sink.
func (desklet *Window) Emit(event pomodoro.Event) {
	switch event.Type {
	case pomodoro.EventDisplayUpdate:
		desklet.timeText.Text = FormatClock(event.Minutes, event.Seconds)
		desklet.stateText.Text = PhaseLabel(event.Phase)
		desklet.timeText.Refresh()
		desklet.stateText.Refresh()
	case pomodoro.EventStateChange:
		desklet.toggleButton.SetText(ToggleLabel(event.Running, event.ContinuePending))
	}
}

// ClockText returns the text currently shown on the clock.
func (desklet *Window) ClockText() string {
	return desklet.timeText.Text
}

// StateText returns the phase label text.
func (desklet *Window) StateText() string {
	return desklet.stateText.Text
}

// ToggleText returns the start/pause button label.
func (desklet *Window) ToggleText() string {
	return desklet.toggleButton.Text
}

func (desklet *Window) handleToggle() {
	if desklet.callbacks.OnToggle != nil {
		desklet.callbacks.OnToggle()
	}
}

func (desklet *Window) handleReset() {
	if desklet.callbacks.OnReset != nil {
		desklet.callbacks.OnReset()
	}
}

// timerLayout stacks the clock above the phase label, both centered.
type timerLayout struct{}

func (layout *timerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	clock := objects[0]
	state := objects[1]

	clockSize := clock.MinSize()
	stateSize := state.MinSize()
	top := (size.Height - clockSize.Height - stateSize.Height) / 2
	if top < 0 {
		top = 0
	}

	clock.Move(fyne.NewPos(0, top))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))
	state.Move(fyne.NewPos(0, top+clockSize.Height))
	state.Resize(fyne.NewSize(size.Width, stateSize.Height))
}

func (layout *timerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	clockSize := objects[0].MinSize()
	stateSize := objects[1].MinSize()

	width := clockSize.Width
	if stateSize.Width > width {
		width = stateSize.Width
	}
	return fyne.NewSize(width+20, clockSize.Height+stateSize.Height+8)
}
