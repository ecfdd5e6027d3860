package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Autostart manages XDG autostart entries.
type Autostart struct {
	configDir func() (string, error)
}

// NewAutostart returns an Autostart rooted at the user's config directory.
func NewAutostart() *Autostart {
	return &Autostart{configDir: configDir}
}

// Entry describes the program launched at login.
type Entry struct {
	AppName  string
	Instance string
	ExecPath string
}

// Enable writes the desktop entry for one timer instance.
func (autostart *Autostart) Enable(entry Entry) error {
	if entry.AppName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if entry.ExecPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	dir, err := autostart.configDir()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	autostartDir := filepath.Join(dir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}

	desktopFilePath := filepath.Join(autostartDir, desktopFileName(entry.AppName, entry.Instance))
	if err := os.WriteFile(desktopFilePath, []byte(buildDesktopEntry(entry)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}

	return nil
}

// Disable removes the desktop entry. A missing entry is not an error.
func (autostart *Autostart) Disable(appName, instance string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	dir, err := autostart.configDir()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}

	desktopFilePath := filepath.Join(dir, "autostart", desktopFileName(appName, instance))
	if err := os.Remove(desktopFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}

	return nil
}

// configDir returns the XDG configuration directory.
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err == nil && dir != "" {
		return dir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(homeDir, ".config"), nil
}

func desktopFileName(appName, instance string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "cinamodoro"
	}
	if instance = strings.TrimSpace(instance); instance != "" && instance != "default" {
		name += "-" + instance
	}
	name = strings.ReplaceAll(name, " ", "-")
	return name + ".desktop"
}

func buildDesktopEntry(entry Entry) string {
	execLine := entry.ExecPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}
	if instance := strings.TrimSpace(entry.Instance); instance != "" {
		execLine += " --instance " + instance
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		entry.AppName,
		execLine,
	)
}
