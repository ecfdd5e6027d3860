package model

// TimerConfig contains runtime settings for the Pomodoro engine.
type TimerConfig struct {
	WorkMinutes           int
	BreakMinutes          int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
	AutoStartNext         bool
}

// DefaultTimerConfig returns the classic 25/5/15 schedule with a long break every four cycles.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkMinutes:           25,
		BreakMinutes:          5,
		LongBreakMinutes:      15,
		CyclesBeforeLongBreak: 4,
	}
}

// Normalize raises every duration to at least one minute and the cycle count to at least one.
func (config TimerConfig) Normalize() TimerConfig {
	config.WorkMinutes = atLeast(config.WorkMinutes, 1)
	config.BreakMinutes = atLeast(config.BreakMinutes, 1)
	config.LongBreakMinutes = atLeast(config.LongBreakMinutes, 1)
	config.CyclesBeforeLongBreak = atLeast(config.CyclesBeforeLongBreak, 1)
	return config
}

// SameSchedule reports whether both configs describe the same durations and cycle count.
func (config TimerConfig) SameSchedule(other TimerConfig) bool {
	return config.WorkMinutes == other.WorkMinutes &&
		config.BreakMinutes == other.BreakMinutes &&
		config.LongBreakMinutes == other.LongBreakMinutes &&
		config.CyclesBeforeLongBreak == other.CyclesBeforeLongBreak
}

// WorkSeconds returns the work phase length in seconds.
func (config TimerConfig) WorkSeconds() int {
	return config.WorkMinutes * 60
}

// BreakSeconds returns the short break length in seconds.
func (config TimerConfig) BreakSeconds() int {
	return config.BreakMinutes * 60
}

// LongBreakSeconds returns the long break length in seconds.
func (config TimerConfig) LongBreakSeconds() int {
	return config.LongBreakMinutes * 60
}

func atLeast(value, low int) int {
	if value < low {
		return low
	}
	return value
}
