package preferences

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	workMinutes   *widget.Entry
	breakMinutes  *widget.Entry
	longMinutes   *widget.Entry
	cycles        *widget.Entry
	autoStart     *widget.Check
	playSound     *widget.Check
	notifications *widget.Check
	fontSize      *widget.Entry
	textColor     *widget.Entry
	bgColor       *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Cinamodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		workMinutes:   widget.NewEntry(),
		breakMinutes:  widget.NewEntry(),
		longMinutes:   widget.NewEntry(),
		cycles:        widget.NewEntry(),
		autoStart:     widget.NewCheck("Auto-start next timer", nil),
		playSound:     widget.NewCheck("Play sound", nil),
		notifications: widget.NewCheck("Show notifications", nil),
		fontSize:      widget.NewEntry(),
		textColor:     widget.NewEntry(),
		bgColor:       widget.NewEntry(),
	}
	prefs.textColor.SetPlaceHolder("rgb(255,255,255)")
	prefs.bgColor.SetPlaceHolder("rgba(0,0,0,0.6)")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work duration"), prefs.workMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break duration"), prefs.breakMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break duration"), prefs.longMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Cycles before long break"), prefs.cycles),
		prefs.autoStart,
		prefs.playSound,
		prefs.notifications,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Font size"), prefs.fontSize, widget.NewLabel("px")),
		widget.NewLabel("Text color"),
		prefs.textColor,
		widget.NewLabel("Background color"),
		prefs.bgColor,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 520))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMinutes.SetText(strconv.Itoa(settings.WorkMinutes))
	prefs.breakMinutes.SetText(strconv.Itoa(settings.BreakMinutes))
	prefs.longMinutes.SetText(strconv.Itoa(settings.LongBreakMinutes))
	prefs.cycles.SetText(strconv.Itoa(settings.CyclesBeforeLongBreak))
	prefs.autoStart.SetChecked(settings.AutoStartNext)
	prefs.playSound.SetChecked(settings.PlaySound)
	prefs.notifications.SetChecked(settings.ShowNotifications)
	prefs.fontSize.SetText(strconv.Itoa(settings.FontSize))
	prefs.textColor.SetText(settings.TextColor)
	prefs.bgColor.SetText(settings.BackgroundColor)
}

// SetOnSave sets the handler run with the normalized settings after Save.
func (prefs *Window) SetOnSave(handler func(Settings)) {
	prefs.onSave = handler
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMinutes.Text); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.breakMinutes.Text); ok {
		settings.BreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.longMinutes.Text); ok {
		settings.LongBreakMinutes = minutes
	}
	if cycles, ok := parsePositiveInt(prefs.cycles.Text); ok {
		settings.CyclesBeforeLongBreak = cycles
	}
	if size, ok := parsePositiveInt(prefs.fontSize.Text); ok {
		settings.FontSize = size
	}

	settings.AutoStartNext = prefs.autoStart.Checked
	settings.PlaySound = prefs.playSound.Checked
	settings.ShowNotifications = prefs.notifications.Checked
	settings.TextColor = strings.TrimSpace(prefs.textColor.Text)
	settings.BackgroundColor = strings.TrimSpace(prefs.bgColor.Text)

	settings = settings.Normalize()
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
