package platform

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when another process holds the instance lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceLock keeps a timer instance to one process. It is held as a Linux
// abstract unix socket, so the kernel drops it when the process dies.
type InstanceLock struct {
	listener net.Listener
	name     string
}

// LockInstance takes the lock for one app instance.
func LockInstance(appName, instance string) (*InstanceLock, error) {
	name := lockName(appName, instance)
	listener, err := net.Listen("unix", name)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, name)
		}
		return nil, fmt.Errorf("lock instance %s: %w", name, err)
	}
	return &InstanceLock{listener: listener, name: name}, nil
}

// Unlock releases the lock. It is safe on a nil lock.
func (lock *InstanceLock) Unlock() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	return lock.listener.Close()
}

// Name returns the socket name backing the lock.
func (lock *InstanceLock) Name() string {
	if lock == nil {
		return ""
	}
	return lock.name
}

// lockName maps app and instance to an abstract socket name ("@" prefix).
func lockName(appName, instance string) string {
	app := strings.ToLower(strings.TrimSpace(appName))
	if app == "" {
		app = "cinamodoro"
	}
	instance = strings.TrimSpace(instance)
	if instance == "" {
		instance = "default"
	}
	return "@" + app + "/instance/" + strings.ReplaceAll(instance, "/", "-")
}
