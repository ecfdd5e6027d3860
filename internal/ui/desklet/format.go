package desklet

import (
	"fmt"

	"cinamodoro/internal/core/pomodoro"
)

// FormatClock renders the countdown as M:SS.
func FormatClock(minutes, seconds int) string {
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PhaseLabel returns the text shown under the clock.
func PhaseLabel(phase pomodoro.Phase) string {
	if phase == pomodoro.PhaseBreak {
		return "Break Time"
	}
	return "Work Time"
}

// ToggleLabel returns the text of the start/pause button.
func ToggleLabel(running, continuePending bool) string {
	switch {
	case running:
		return "Pause"
	case continuePending:
		return "Continue"
	default:
		return "Start"
	}
}
