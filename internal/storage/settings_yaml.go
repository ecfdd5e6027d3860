package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinamodoro/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const defaultInstance = "default"

// yamlSettings mirrors the desklet settings keys. Booleans are pointers so a
// missing key keeps its default instead of becoming false.
type yamlSettings struct {
	WorkDuration          int    `yaml:"work-duration"`
	BreakDuration         int    `yaml:"break-duration"`
	LongBreakDuration     int    `yaml:"long-break-duration"`
	CyclesBeforeLongBreak int    `yaml:"cycles-before-long-break"`
	AutoStartNextTimer    *bool  `yaml:"auto-start-next-timer,omitempty"`
	PlaySound             *bool  `yaml:"play-sound,omitempty"`
	ShowNotifications     *bool  `yaml:"show-notifications,omitempty"`
	WorkEndSound          string `yaml:"work-end-sound,omitempty"`
	BreakEndSound         string `yaml:"break-end-sound,omitempty"`
	FontSize              int    `yaml:"font-size"`
	TextColor             string `yaml:"text-color,omitempty"`
	BackgroundColor       string `yaml:"background-color,omitempty"`
}

// SettingsPath returns the settings file for one desklet instance.
func SettingsPath(appName, instance string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, strings.ToLower(appName), settingsFileName(instance)), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		WorkDuration:          settings.WorkMinutes,
		BreakDuration:         settings.BreakMinutes,
		LongBreakDuration:     settings.LongBreakMinutes,
		CyclesBeforeLongBreak: settings.CyclesBeforeLongBreak,
		AutoStartNextTimer:    boolPtr(settings.AutoStartNext),
		PlaySound:             boolPtr(settings.PlaySound),
		ShowNotifications:     boolPtr(settings.ShowNotifications),
		WorkEndSound:          settings.WorkEndSound,
		BreakEndSound:         settings.BreakEndSound,
		FontSize:              settings.FontSize,
		TextColor:             settings.TextColor,
		BackgroundColor:       settings.BackgroundColor,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func settingsFileName(instance string) string {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		instance = defaultInstance
	}
	instance = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '-'
		}
		return r
	}, instance)
	return "settings-" + instance + ".yaml"
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkDuration > 0 {
		settings.WorkMinutes = fileData.WorkDuration
	}
	if fileData.BreakDuration > 0 {
		settings.BreakMinutes = fileData.BreakDuration
	}
	if fileData.LongBreakDuration > 0 {
		settings.LongBreakMinutes = fileData.LongBreakDuration
	}
	if fileData.CyclesBeforeLongBreak > 0 {
		settings.CyclesBeforeLongBreak = fileData.CyclesBeforeLongBreak
	}
	if fileData.FontSize > 0 {
		settings.FontSize = fileData.FontSize
	}

	if fileData.AutoStartNextTimer != nil {
		settings.AutoStartNext = *fileData.AutoStartNextTimer
	}
	if fileData.PlaySound != nil {
		settings.PlaySound = *fileData.PlaySound
	}
	if fileData.ShowNotifications != nil {
		settings.ShowNotifications = *fileData.ShowNotifications
	}

	if fileData.WorkEndSound != "" {
		settings.WorkEndSound = fileData.WorkEndSound
	}
	if fileData.BreakEndSound != "" {
		settings.BreakEndSound = fileData.BreakEndSound
	}
	if fileData.TextColor != "" {
		settings.TextColor = fileData.TextColor
	}
	if fileData.BackgroundColor != "" {
		settings.BackgroundColor = fileData.BackgroundColor
	}
}

func boolPtr(value bool) *bool {
	return &value
}
