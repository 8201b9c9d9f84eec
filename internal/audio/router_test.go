package audio

import (
	"testing"
	"time"
)

// countingPlayer records how often each cue actually played.
type countingPlayer struct {
	played map[Cue]int
}

func newCountingPlayer() *countingPlayer {
	return &countingPlayer{played: make(map[Cue]int)}
}

func (p *countingPlayer) Play(c Cue) error {
	p.played[c]++
	return nil
}

// testRouter returns a router whose clock the test controls.
func testRouter(p Player) (*Router, func(time.Duration)) {
	r := NewRouter(p, 0, nil)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, func(d time.Duration) { now = now.Add(d) }
}

func TestRouterDebouncesRapidRepeats(t *testing.T) {
	p := newCountingPlayer()
	r, advance := testRouter(p)

	r.Play(CueLaserBroken)
	advance(50 * time.Millisecond)
	r.Play(CueLaserBroken)
	advance(50 * time.Millisecond)
	r.Play(CueLaserBroken)

	if got := p.played[CueLaserBroken]; got != 1 {
		t.Errorf("cue played %d times within the window, want 1", got)
	}

	advance(DefaultDebounce)
	r.Play(CueLaserBroken)
	if got := p.played[CueLaserBroken]; got != 2 {
		t.Errorf("cue played %d times after the window, want 2", got)
	}
}

func TestRouterDebouncesCuesIndependently(t *testing.T) {
	p := newCountingPlayer()
	r, advance := testRouter(p)

	r.Play(CueLaserBroken)
	advance(10 * time.Millisecond)
	r.Play(CueBuzzer) // a different cue is not suppressed

	if p.played[CueLaserBroken] != 1 || p.played[CueBuzzer] != 1 {
		t.Errorf("played = %v, want one of each", p.played)
	}
}

func TestCueFileNames(t *testing.T) {
	for _, c := range []Cue{CueLaserBroken, CueBuzzer, CueGameOver, CueCountdown, CueGameStart} {
		if c.FileName() == "" {
			t.Errorf("cue %v has no asset file", c)
		}
		if c.String() == "unknown" {
			t.Errorf("cue %v has no name", c)
		}
	}
}
