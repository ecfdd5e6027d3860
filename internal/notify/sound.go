package notify

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/gen2brain/beeep"
)

// ErrNoPlayer indicates that no way of playing sounds was found.
var ErrNoPlayer = errors.New("sound player is not available")

// Player plays a sound file.
type Player interface {
	Play(path string) error
}

// command describes one external audio player.
type command struct {
	name string
	args func(path string) []string
}

var playerCommands = []command{
	{name: "paplay", args: func(path string) []string { return []string{path} }},
	{name: "pw-play", args: func(path string) []string { return []string{path} }},
	{name: "canberra-gtk-play", args: func(path string) []string { return []string{"-f", path} }},
}

// SoundPlayer plays files with the first audio player found on PATH and
// falls back to a plain beep.
type SoundPlayer struct {
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
	beep     func() error
}

// NewSoundPlayer creates a SoundPlayer using the system PATH.
func NewSoundPlayer() *SoundPlayer {
	return &SoundPlayer{
		lookPath: exec.LookPath,
		start:    startDetached,
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Play starts playback and returns without waiting for it to finish.
func (player *SoundPlayer) Play(path string) error {
	for _, candidate := range playerCommands {
		binary, err := player.lookPath(candidate.name)
		if err != nil {
			continue
		}
		if err := player.start(binary, candidate.args(path)...); err != nil {
			return fmt.Errorf("play %s with %s: %w", path, candidate.name, err)
		}
		return nil
	}

	if err := player.beep(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoPlayer, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
