package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cinamodoro/internal/core/pomodoro"
	"cinamodoro/internal/logging"
	"cinamodoro/internal/mainloop"
	"cinamodoro/internal/notify"
	"cinamodoro/internal/platform"
	"cinamodoro/internal/storage"
	"cinamodoro/internal/ui/desklet"
	"cinamodoro/internal/ui/preferences"
	"cinamodoro/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName = "Cinamodoro"
	appID   = "io.github.cinamodoro"
)

var version = "dev"

func main() {
	if err := newRootCommand(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:          "cinamodoro",
		Short:        "Cinamodoro - a pomodoro timer",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesklet(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(FlagInstance, "default", "timer instance id; each instance has its own settings")
	flags.String(FlagConfig, "", "settings file (default $XDG_CONFIG_HOME/cinamodoro/settings-<instance>.yaml)")
	flags.String(FlagLogFile, "", "write JSON logs to this rotating file instead of stderr")
	flags.BoolP(FlagVerbose, "v", false, "enable debug logging")

	runFlags := root.Flags()
	runFlags.Int(FlagWorkMinutes, 0, "work duration in minutes for this session")
	runFlags.Int(FlagBreakMinutes, 0, "break duration in minutes for this session")
	runFlags.Int(FlagLongBreakMinutes, 0, "long break duration in minutes for this session")
	runFlags.Int(FlagCycles, 0, "work/break cycles before a long break for this session")
	runFlags.Bool(FlagAutoStartNext, false, "start the next phase automatically for this session")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(runFlags)

	root.AddCommand(newAutostartCommand(v))
	return root
}

func newAutostartCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "autostart enable|disable",
		Short:     "Start this timer instance at login",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"enable", "disable"},
		RunE: func(cmd *cobra.Command, args []string) error {
			autostart := platform.NewAutostart()
			instance := v.GetString(FlagInstance)
			if args[0] == "disable" {
				return autostart.Disable(appName, instance)
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			return autostart.Enable(platform.Entry{AppName: appName, Instance: instance, ExecPath: execPath})
		},
	}
	return cmd
}

func runDesklet(v *viper.Viper) error {
	logs := logging.Setup(v.GetString(FlagLogFile), logging.Level(v.GetBool(FlagVerbose)), logging.DefaultRotation())
	defer func() {
		_ = logs.Close()
	}()
	logger := logs.Logger
	instance := v.GetString(FlagInstance)

	lock, err := platform.LockInstance(appName, instance)
	if err != nil {
		logger.Error("single instance", "instance", instance, "error", err)
		return err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	settingsPath := v.GetString(FlagConfig)
	if settingsPath == "" {
		settingsPath, err = storage.SettingsPath(appName, instance)
		if err != nil {
			return err
		}
	}
	saved, settings, err := loadSettings(v, settingsPath)
	if err != nil {
		logger.Warn("load settings, using defaults", "path", settingsPath, "error", err)
	}
	logger.Info("starting", "version", version, "instance", instance, "settings", settingsPath)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.MediaPlayIcon())

	style, err := settings.Style()
	if err != nil {
		logger.Warn("parse style", "error", err)
	}

	var engine *pomodoro.Engine
	loop := mainloop.New(fyne.Do)
	broadcaster := pomodoro.NewBroadcaster()

	deskletWindow := desklet.New(fyneApp, appName, style, desklet.Callbacks{
		OnToggle: func() { engine.Toggle() },
		OnReset:  func() { engine.Reset() },
	})

	prefsWindow := preferences.New(fyneApp, saved, nil)

	sinks := []pomodoro.Sink{deskletWindow, broadcaster, debugSink(logger)}
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		sinks = append(sinks, tray.New(desktopApp, appName, tray.Callbacks{
			OnToggle:      func() { engine.Toggle() },
			OnReset:       func() { engine.Reset() },
			OnShow:        deskletWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		}))
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	engine = pomodoro.New(settings.TimerConfig(), loop, pomodoro.Fanout(sinks...))

	reactor := notify.NewReactor(reactorOptions(settings), notify.NewDesktopNotifier(""), notify.NewSoundPlayer(), logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reactor.Run(ctx, broadcaster.Subscribe(16))

	prefsWindow.SetOnSave(func(updated preferences.Settings) {
		session, err := saveSettings(v, settingsPath, updated)
		if err != nil {
			logger.Error("save settings", "path", settingsPath, "error", err)
		}
		updatedStyle, err := session.Style()
		if err != nil {
			logger.Warn("parse style", "error", err)
		}
		deskletWindow.ApplyStyle(updatedStyle)
		reactor.SetOptions(reactorOptions(session))
		engine.UpdateConfig(session.TimerConfig())
	})

	fyneApp.Lifecycle().SetOnStopped(func() {
		engine.Shutdown()
		loop.Close()
		broadcaster.Close()
		logger.Info("stopped")
	})

	engine.Reset()
	deskletWindow.Show()
	fyneApp.Run()
	return nil
}

// loadSettings returns the settings stored at path and the settings for this
// session, which also carry the command-line overrides. Only saved is shown in
// the preferences window, so overrides never reach the file.
func loadSettings(v *viper.Viper, path string) (saved, session preferences.Settings, err error) {
	saved, err = storage.LoadSettings(path)
	return saved, applyOverrides(v, saved), err
}

// saveSettings writes the edited settings and returns them with the session
// overrides applied again.
func saveSettings(v *viper.Viper, path string, updated preferences.Settings) (preferences.Settings, error) {
	err := storage.SaveSettings(path, updated)
	return applyOverrides(v, updated), err
}

// applyOverrides applies schedule flags and CINAMODORO_* variables on top of saved settings.
func applyOverrides(v *viper.Viper, settings preferences.Settings) preferences.Settings {
	if v.IsSet(FlagWorkMinutes) {
		settings.WorkMinutes = v.GetInt(FlagWorkMinutes)
	}
	if v.IsSet(FlagBreakMinutes) {
		settings.BreakMinutes = v.GetInt(FlagBreakMinutes)
	}
	if v.IsSet(FlagLongBreakMinutes) {
		settings.LongBreakMinutes = v.GetInt(FlagLongBreakMinutes)
	}
	if v.IsSet(FlagCycles) {
		settings.CyclesBeforeLongBreak = v.GetInt(FlagCycles)
	}
	if v.IsSet(FlagAutoStartNext) {
		settings.AutoStartNext = v.GetBool(FlagAutoStartNext)
	}
	return settings.Normalize()
}

func reactorOptions(settings preferences.Settings) notify.Options {
	return notify.Options{
		PlaySound:         settings.PlaySound,
		ShowNotifications: settings.ShowNotifications,
		WorkEndSound:      settings.WorkEndSound,
		BreakEndSound:     settings.BreakEndSound,
	}
}

func debugSink(logger *slog.Logger) pomodoro.Sink {
	return pomodoro.SinkFunc(func(event pomodoro.Event) {
		if event.Type == pomodoro.EventDisplayUpdate {
			return
		}
		logger.Debug("timer event",
			"type", string(event.Type),
			"phase", string(event.Phase),
			"running", event.Running,
			"message", event.Message,
		)
	})
}
