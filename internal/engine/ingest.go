package engine

import "github.com/vovakirdan/laser-maze/internal/config"

// sensorFullScale is the maximum raw reading the firmware reports (10-bit ADC).
const sensorFullScale = 1023

// SensorFrame is one sample of raw readings, one per physical sensor.
// Indices map to beams via their configured sensor_index; the frame may
// contain indices no beam uses.
type SensorFrame []int

// brokenSet normalizes a frame against the beam configuration and returns
// the set of enabled beams whose reading fell below their sensitivity
// threshold. ok is false when the frame is unusable (too short for a
// configured beam, or an out-of-range reading); such frames are dropped
// whole, never applied partially.
func brokenSet(frame SensorFrame, beams []config.Beam) (broken map[string]bool, ok bool) {
	broken = make(map[string]bool)
	for _, b := range beams {
		if !b.Enabled {
			continue
		}
		if b.SensorIndex >= len(frame) {
			return nil, false
		}
		raw := frame[b.SensorIndex]
		if raw < 0 || raw > sensorFullScale {
			return nil, false
		}
		percent := float64(raw) / sensorFullScale * 100
		if percent < b.Sensitivity {
			broken[b.ID] = true
		}
	}
	return broken, true
}
