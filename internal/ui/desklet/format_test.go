package desklet

import (
	"testing"

	"cinamodoro/internal/core/pomodoro"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes, seconds int
		want             string
	}{
		{25, 0, "25:00"},
		{4, 59, "4:59"},
		{0, 5, "0:05"},
		{120, 30, "120:30"},
		{-1, -1, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes, tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d, %d) = %q, want %q", tt.minutes, tt.seconds, got, tt.want)
		}
	}
}

func TestPhaseLabel(t *testing.T) {
	if got := PhaseLabel(pomodoro.PhaseWork); got != "Work Time" {
		t.Errorf("work label = %q", got)
	}
	if got := PhaseLabel(pomodoro.PhaseBreak); got != "Break Time" {
		t.Errorf("break label = %q", got)
	}
}

func TestToggleLabel(t *testing.T) {
	tests := []struct {
		running, continuePending bool
		want                     string
	}{
		{false, false, "Start"},
		{true, false, "Pause"},
		{false, true, "Continue"},
		{true, true, "Pause"},
	}

	for _, tt := range tests {
		if got := ToggleLabel(tt.running, tt.continuePending); got != tt.want {
			t.Errorf("ToggleLabel(%v, %v) = %q, want %q", tt.running, tt.continuePending, got, tt.want)
		}
	}
}
