package preferences

import (
	"cinamodoro/internal/core/model"
	"cinamodoro/internal/ui/desklet"
)

// Bounds for user-editable values.
const (
	MinMinutes  = 1
	MaxMinutes  = 180
	MinCycles   = 1
	MaxCycles   = 12
	MinFontSize = 8
	MaxFontSize = 200
)

const defaultFontSize = 40

// Freedesktop sound theme files played when a phase ends.
const (
	DefaultWorkEndSound  = "/usr/share/sounds/freedesktop/stereo/complete.oga"
	DefaultBreakEndSound = "/usr/share/sounds/freedesktop/stereo/bell.oga"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes           int
	BreakMinutes          int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
	AutoStartNext         bool

	PlaySound         bool
	ShowNotifications bool
	WorkEndSound      string
	BreakEndSound     string

	FontSize        int
	TextColor       string
	BackgroundColor string
}

// DefaultSettings returns default settings for Cinamodoro.
func DefaultSettings() Settings {
	timer := model.DefaultTimerConfig()
	return Settings{
		WorkMinutes:           timer.WorkMinutes,
		BreakMinutes:          timer.BreakMinutes,
		LongBreakMinutes:      timer.LongBreakMinutes,
		CyclesBeforeLongBreak: timer.CyclesBeforeLongBreak,
		AutoStartNext:         timer.AutoStartNext,
		PlaySound:             true,
		ShowNotifications:     true,
		WorkEndSound:          DefaultWorkEndSound,
		BreakEndSound:         DefaultBreakEndSound,
		FontSize:              defaultFontSize,
		TextColor:             "rgb(255,255,255)",
		BackgroundColor:       "rgba(0,0,0,0.6)",
	}
}

// Normalize clamps numeric values into their allowed ranges and fills empty strings with defaults.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	settings.WorkMinutes = clamp(settings.WorkMinutes, MinMinutes, MaxMinutes)
	settings.BreakMinutes = clamp(settings.BreakMinutes, MinMinutes, MaxMinutes)
	settings.LongBreakMinutes = clamp(settings.LongBreakMinutes, MinMinutes, MaxMinutes)
	settings.CyclesBeforeLongBreak = clamp(settings.CyclesBeforeLongBreak, MinCycles, MaxCycles)
	settings.FontSize = clamp(settings.FontSize, MinFontSize, MaxFontSize)

	if settings.WorkEndSound == "" {
		settings.WorkEndSound = defaults.WorkEndSound
	}
	if settings.BreakEndSound == "" {
		settings.BreakEndSound = defaults.BreakEndSound
	}
	if settings.TextColor == "" {
		settings.TextColor = defaults.TextColor
	}
	if settings.BackgroundColor == "" {
		settings.BackgroundColor = defaults.BackgroundColor
	}
	return settings
}

// TimerConfig converts settings to the engine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkMinutes:           settings.WorkMinutes,
		BreakMinutes:          settings.BreakMinutes,
		LongBreakMinutes:      settings.LongBreakMinutes,
		CyclesBeforeLongBreak: settings.CyclesBeforeLongBreak,
		AutoStartNext:         settings.AutoStartNext,
	}
}

// Style converts settings to desklet visuals.
func (settings Settings) Style() (desklet.Style, error) {
	return desklet.ParseStyle(settings.FontSize, settings.TextColor, settings.BackgroundColor)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
