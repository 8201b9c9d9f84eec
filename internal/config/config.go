// Package config provides YAML-based configuration for the laser maze:
// beam wiring, session rules, and audio output.
package config

import (
	"fmt"
	"sort"
)

// Beam describes one laser/sensor pair as wired into the maze.
type Beam struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	SensorIndex  int     `yaml:"sensor_index"`
	Sensitivity  float64 `yaml:"sensitivity"` // percent of full scale; readings below this count as broken
	Enabled      bool    `yaml:"enabled"`
	DisplayOrder int     `yaml:"display_order"`
}

// Session defines the rules applied to every run.
type Session struct {
	// MaxTouches is the number of accepted triggers that ends the run
	// as a failure. 0 means unlimited.
	MaxTouches int `yaml:"max_touches"`

	// Reactivate re-arms a triggered beam after ReactivationSeconds.
	// When false a triggered beam stays dark until the run ends.
	Reactivate          bool    `yaml:"reactivate"`
	ReactivationSeconds float64 `yaml:"reactivation_seconds"`
}

// Audio configures the cue player.
type Audio struct {
	Enabled bool `yaml:"enabled"`

	// Command is the external player invoked with a cue file path
	// (e.g. "aplay"). Empty means cues are only logged.
	Command string `yaml:"command"`

	// AssetDir is where the cue .wav files live.
	AssetDir string `yaml:"asset_dir"`
}

// Config is the full maze configuration.
type Config struct {
	Session Session `yaml:"session"`
	Beams   []Beam  `yaml:"beams"`
	Audio   Audio   `yaml:"audio"`
}

// Validate checks the configuration for wiring mistakes.
func (c *Config) Validate() error {
	if len(c.Beams) == 0 {
		return fmt.Errorf("config: no beams configured")
	}

	ids := make(map[string]bool)
	indexes := make(map[int]string)
	for _, b := range c.Beams {
		if b.ID == "" {
			return fmt.Errorf("config: beam with empty id")
		}
		if ids[b.ID] {
			return fmt.Errorf("config: duplicate beam id %q", b.ID)
		}
		ids[b.ID] = true

		if b.SensorIndex < 0 {
			return fmt.Errorf("config: beam %q has negative sensor_index", b.ID)
		}
		if other, taken := indexes[b.SensorIndex]; taken {
			return fmt.Errorf("config: beams %q and %q share sensor_index %d", other, b.ID, b.SensorIndex)
		}
		indexes[b.SensorIndex] = b.ID

		if b.Sensitivity < 0 || b.Sensitivity > 100 {
			return fmt.Errorf("config: beam %q sensitivity %.1f outside 0-100", b.ID, b.Sensitivity)
		}
	}

	if c.Session.MaxTouches < 0 {
		return fmt.Errorf("config: max_touches must be >= 0")
	}
	if c.Session.Reactivate && c.Session.ReactivationSeconds <= 0 {
		return fmt.Errorf("config: reactivation_seconds must be positive when reactivate is on")
	}

	return nil
}

// SortedBeams returns the beams ordered by display_order, then id.
func (c *Config) SortedBeams() []Beam {
	beams := make([]Beam, len(c.Beams))
	copy(beams, c.Beams)
	sort.Slice(beams, func(i, j int) bool {
		if beams[i].DisplayOrder != beams[j].DisplayOrder {
			return beams[i].DisplayOrder < beams[j].DisplayOrder
		}
		return beams[i].ID < beams[j].ID
	})
	return beams
}
