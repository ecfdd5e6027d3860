// Package notify turns timer events into desktop notifications and sounds.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier delivers notifications through the freedesktop notification service.
type DesktopNotifier struct {
	icon string
}

// NewDesktopNotifier creates a notifier. icon may be empty or a path/icon name.
func NewDesktopNotifier(icon string) *DesktopNotifier {
	return &DesktopNotifier{icon: icon}
}

// Notify sends a notification with the given title and message.
func (notifier *DesktopNotifier) Notify(title, message string) error {
	if err := beeep.Notify(title, message, notifier.icon); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
