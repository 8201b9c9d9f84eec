// Package audio routes named sound cues fired by the session engine to a
// pluggable player. Decoding and playback of the actual files is the
// player's problem; this package only decides which cue fires and when.
package audio

// Cue identifies one of the maze's sound effects.
type Cue int

const (
	CueLaserBroken Cue = iota
	CueBuzzer
	CueGameOver
	CueCountdown
	CueGameStart
)

func (c Cue) String() string {
	switch c {
	case CueLaserBroken:
		return "laser_broken"
	case CueBuzzer:
		return "buzzer"
	case CueGameOver:
		return "game_over"
	case CueCountdown:
		return "countdown"
	case CueGameStart:
		return "game_start"
	default:
		return "unknown"
	}
}

// FileName returns the asset file for the cue.
func (c Cue) FileName() string {
	switch c {
	case CueLaserBroken:
		return "laser_broken.wav"
	case CueBuzzer:
		return "game_finished.wav"
	case CueGameOver:
		return "game_over.wav"
	case CueCountdown:
		return "countdown.wav"
	case CueGameStart:
		return "game_start.wav"
	default:
		return ""
	}
}
