package audio

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Player plays a single cue.
type Player interface {
	Play(c Cue) error
}

// NopPlayer discards every cue.
type NopPlayer struct{}

func (NopPlayer) Play(Cue) error { return nil }

// LogPlayer logs cues instead of playing them. Useful for headless setups
// and for the simulator.
type LogPlayer struct {
	Logger *log.Logger
}

func (p LogPlayer) Play(c Cue) error {
	if p.Logger != nil {
		p.Logger.Info("cue", "name", c.String())
	}
	return nil
}

// ExecPlayer spawns an external command (e.g. aplay) with the cue's asset
// file. Playback is fire-and-forget; the process is not waited on.
type ExecPlayer struct {
	Command  string
	AssetDir string
}

func (p ExecPlayer) Play(c Cue) error {
	if p.Command == "" {
		return fmt.Errorf("audio: no player command configured")
	}
	name := c.FileName()
	if name == "" {
		return fmt.Errorf("audio: no asset for cue %d", int(c))
	}
	cmd := exec.Command(p.Command, filepath.Join(p.AssetDir, name))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("audio: cannot start %s: %w", p.Command, err)
	}
	go cmd.Wait() //nolint:errcheck // reap the child, outcome is irrelevant
	return nil
}
