package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// Default returns the built-in maze configuration: four beams at 50%
// sensitivity, three allowed touches, 5 second reactivation.
func Default() Config {
	return Config{
		Session: Session{
			MaxTouches:          3,
			Reactivate:          true,
			ReactivationSeconds: 5,
		},
		Beams: []Beam{
			{ID: "beam-1", Name: "Entry low", SensorIndex: 0, Sensitivity: 50, Enabled: true, DisplayOrder: 1},
			{ID: "beam-2", Name: "Entry high", SensorIndex: 1, Sensitivity: 50, Enabled: true, DisplayOrder: 2},
			{ID: "beam-3", Name: "Corridor", SensorIndex: 2, Sensitivity: 50, Enabled: true, DisplayOrder: 3},
			{ID: "beam-4", Name: "Exit", SensorIndex: 3, Sensitivity: 50, Enabled: true, DisplayOrder: 4},
		},
		Audio: Audio{
			Enabled:  true,
			AssetDir: "assets/audio",
		},
	}
}
