package main

// Flag names for Viper binding
const (
	FlagInstance = "instance"
	FlagConfig   = "config"
	FlagLogFile  = "log-file"
	FlagVerbose  = "verbose"

	// Session overrides for the timer schedule
	FlagWorkMinutes      = "work-minutes"
	FlagBreakMinutes     = "break-minutes"
	FlagLongBreakMinutes = "long-break-minutes"
	FlagCycles           = "cycles"
	FlagAutoStartNext    = "auto-start-next"
)

const envPrefix = "CINAMODORO"
