package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDebounce is how long a cue stays suppressed after it fires.
// Rapid repeats (a hand sweeping through two beams) collapse into one sound.
const DefaultDebounce = 150 * time.Millisecond

// Router forwards cues to a Player, debouncing each cue independently.
type Router struct {
	mu     sync.Mutex
	player Player
	window time.Duration
	now    func() time.Time
	last   map[Cue]time.Time
	logger *log.Logger
}

// NewRouter creates a router in front of the given player.
// A window of 0 uses DefaultDebounce.
func NewRouter(player Player, window time.Duration, logger *log.Logger) *Router {
	if player == nil {
		player = NopPlayer{}
	}
	if window <= 0 {
		window = DefaultDebounce
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		player: player,
		window: window,
		now:    time.Now,
		last:   make(map[Cue]time.Time),
		logger: logger,
	}
}

// Play fires the cue unless the same cue fired within the debounce window.
func (r *Router) Play(c Cue) {
	r.mu.Lock()
	now := r.now()
	if prev, ok := r.last[c]; ok && now.Sub(prev) < r.window {
		r.mu.Unlock()
		return
	}
	r.last[c] = now
	r.mu.Unlock()

	if err := r.player.Play(c); err != nil {
		r.logger.Warn("could not play cue", "cue", c.String(), "error", err)
	}
}
