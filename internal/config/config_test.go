package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Session: Session{MaxTouches: 3, Reactivate: true, ReactivationSeconds: 5},
		Beams: []Beam{
			{ID: "a", Name: "A", SensorIndex: 0, Sensitivity: 50, Enabled: true, DisplayOrder: 2},
			{ID: "b", Name: "B", SensorIndex: 1, Sensitivity: 30, Enabled: true, DisplayOrder: 1},
		},
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsWiringMistakes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no beams", func(c *Config) { c.Beams = nil }},
		{"empty id", func(c *Config) { c.Beams[0].ID = "" }},
		{"duplicate id", func(c *Config) { c.Beams[1].ID = c.Beams[0].ID }},
		{"negative sensor index", func(c *Config) { c.Beams[0].SensorIndex = -1 }},
		{"shared sensor index", func(c *Config) { c.Beams[1].SensorIndex = c.Beams[0].SensorIndex }},
		{"sensitivity below range", func(c *Config) { c.Beams[0].Sensitivity = -0.1 }},
		{"sensitivity above range", func(c *Config) { c.Beams[0].Sensitivity = 100.1 }},
		{"negative max touches", func(c *Config) { c.Session.MaxTouches = -1 }},
		{"reactivate without time", func(c *Config) { c.Session.ReactivationSeconds = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a broken config")
			}
		})
	}
}

func TestSortedBeamsByDisplayOrder(t *testing.T) {
	cfg := validConfig()
	beams := cfg.SortedBeams()
	if beams[0].ID != "b" || beams[1].ID != "a" {
		t.Errorf("sorted order = [%s %s], want [b a]", beams[0].ID, beams[1].ID)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	yaml := `
session:
  max_touches: 2
  reactivate: false
beams:
  - id: only
    name: "Only"
    sensor_index: 4
    sensitivity: 25
    enabled: true
    display_order: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.MaxTouches != 2 || cfg.Session.Reactivate {
		t.Errorf("session = %+v", cfg.Session)
	}
	if len(cfg.Beams) != 1 || cfg.Beams[0].SensorIndex != 4 || cfg.Beams[0].Sensitivity != 25 {
		t.Errorf("beams = %+v", cfg.Beams)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("beams: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a config with no beams")
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load succeeded for a missing explicit path")
	}
}

func TestEmbeddedDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("built-in default invalid: %v", err)
	}
}
