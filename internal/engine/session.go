// Package engine implements the real-time laser maze session engine: a
// state machine that consumes sensor frames and button edges and derives
// beam activation, trigger counts, elapsed time and the final run outcome.
//
// All engine entry points and timer callbacks serialize on one mutex, so
// events are processed strictly in arrival order. Every scheduled timer
// belongs to the current session generation; a reset or restart bumps the
// generation and sweeps the timer group, so a timer completing after a
// reset can never touch a later session.
package engine

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laser-maze/internal/audio"
	"github.com/vovakirdan/laser-maze/internal/config"
)

// Timings holds the presentation-level durations of the session engine.
// These are tunable constants, not protocol contracts.
type Timings struct {
	BlinkCycle       time.Duration // one blink cycle
	BlinkCycles      int           // cycles per blink window
	ReactivationTick time.Duration // progress update interval
	CountdownSteps   []time.Duration // display time of 3, 2, 1, GO
	SettleDelay      time.Duration // pause between implicit stop and restart
	ElapsedTick      time.Duration // run clock resolution
	StartDebounce    time.Duration
	BuzzerDebounce   time.Duration
}

// DefaultTimings returns the timings of the original installation.
func DefaultTimings() Timings {
	return Timings{
		BlinkCycle:       300 * time.Millisecond,
		BlinkCycles:      3,
		ReactivationTick: 50 * time.Millisecond,
		CountdownSteps: []time.Duration{
			800 * time.Millisecond,
			800 * time.Millisecond,
			700 * time.Millisecond,
			500 * time.Millisecond,
		},
		SettleDelay:    300 * time.Millisecond,
		ElapsedTick:    100 * time.Millisecond,
		StartDebounce:  time.Second,
		BuzzerDebounce: time.Second,
	}
}

// CueSink receives the engine's sound cues.
type CueSink interface {
	Play(c audio.Cue)
}

// Options configures a new Engine.
type Options struct {
	// Beams is the configuration snapshot the engine runs with. The engine
	// copies it; later edits to the config take effect only through a new
	// engine (built while idle).
	Beams []config.Beam

	// Session are the rules for every run: touch limit and reactivation.
	Session config.Session

	// Clock defaults to WallClock.
	Clock Clock

	// Timings defaults to DefaultTimings().
	Timings Timings

	// Sink receives engine events. The engine holds this single sink for
	// its whole lifetime; use a Broadcaster for multiple consumers.
	Sink Sink

	// Cues receives sound cues. Optional.
	Cues CueSink

	// Gate is the cross-engine session mutual exclusion. Engines wired to
	// the same physical maze must share one. Defaults to a private gate.
	Gate *Gate

	// Runs receives committed run records. Optional.
	Runs RunSink

	// Logger defaults to a discard logger.
	Logger *log.Logger
}

// Engine is the session controller: Idle -> CountingDown -> Running ->
// Finished, plus the per-beam state machines and trigger accounting.
type Engine struct {
	mu       sync.Mutex
	clock    Clock
	timings  Timings
	sink     Sink
	cues     CueSink
	gate     *Gate
	logger   *log.Logger
	settings config.Session

	beams []*beam
	cfgs  []config.Beam

	state        SessionState
	elapsed      time.Duration
	rules        triggerRules
	rec          recorder
	holding      bool
	startPending bool

	gen    uint64
	timers *timerGroup

	lastStart  time.Time
	lastBuzzer time.Time
}

// New creates an engine from a beam configuration snapshot.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = WallClock{}
	}
	if opts.Timings.BlinkCycle == 0 {
		opts.Timings = DefaultTimings()
	}
	if opts.Sink == nil {
		opts.Sink = SinkFunc(func(Event) {})
	}
	if opts.Gate == nil {
		opts.Gate = NewGate()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cfgs := make([]config.Beam, len(opts.Beams))
	copy(cfgs, opts.Beams)
	sort.Slice(cfgs, func(i, j int) bool {
		if cfgs[i].DisplayOrder != cfgs[j].DisplayOrder {
			return cfgs[i].DisplayOrder < cfgs[j].DisplayOrder
		}
		return cfgs[i].ID < cfgs[j].ID
	})

	e := &Engine{
		clock:    opts.Clock,
		timings:  opts.Timings,
		sink:     opts.Sink,
		cues:     opts.Cues,
		gate:     opts.Gate,
		logger:   opts.Logger,
		settings: opts.Session,
		cfgs:     cfgs,
		state:    StateIdle,
		timers:   newTimerGroup(opts.Clock),
		rec:      recorder{sink: opts.Runs},
	}
	e.rules.reset(opts.Session.MaxTouches)

	for _, cfg := range cfgs {
		b := &beam{cfg: cfg, state: BeamDisabled}
		if cfg.Enabled {
			b.state = BeamArmed
		}
		e.beams = append(e.beams, b)
	}

	return e
}

// PressStart handles the physical start button. Edges are debounced here
// even though the transport already debounces on the hardware side, to
// absorb duplicate deliveries.
func (e *Engine) PressStart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if !e.lastStart.IsZero() && now.Sub(e.lastStart) < e.timings.StartDebounce {
		e.logger.Debug("start edge debounced")
		return
	}
	e.lastStart = now
	e.startLocked()
}

// Start begins a new session. If one is already running it is stopped
// first and the countdown begins after a short settle delay. A start during
// an in-progress countdown is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

func (e *Engine) startLocked() {
	if e.startPending || e.state == StateCountingDown {
		e.logger.Debug("start ignored: countdown already in progress")
		return
	}

	wasRunning := e.state == StateRunning
	if wasRunning {
		e.finishLocked(OutcomeSuccess)
	}

	if !e.holding {
		if !e.gate.tryAcquire(e) {
			e.logger.Warn("start ignored: another controller owns the maze")
			return
		}
		e.holding = true
	}

	// New session generation: sweep every timer the old one left behind.
	e.gen++
	e.timers.cancelAll()
	e.startPending = true

	if wasRunning && e.timings.SettleDelay > 0 {
		e.schedule(taskKey{kind: taskSettle}, e.timings.SettleDelay, e.beginCountdownLocked)
		return
	}
	e.beginCountdownLocked()
}

func (e *Engine) beginCountdownLocked() {
	e.state = StateCountingDown
	e.emit(SessionEvent{State: StateCountingDown})
	e.armBeamsLocked()
	e.countdownStepLocked(0)
}

func (e *Engine) countdownStepLocked(i int) {
	steps := e.timings.CountdownSteps
	if i >= len(steps) {
		e.beginRunningLocked()
		return
	}

	label := len(steps) - 1 - i // 3, 2, 1, then 0 for GO
	e.emit(CountdownEvent{Step: label})
	if label == 0 {
		e.playCue(audio.CueGameStart)
	} else {
		e.playCue(audio.CueCountdown)
	}
	e.schedule(taskKey{kind: taskCountdown}, steps[i], func() {
		e.countdownStepLocked(i + 1)
	})
}

func (e *Engine) beginRunningLocked() {
	e.startPending = false
	e.state = StateRunning
	e.elapsed = 0
	e.rules.reset(e.settings.MaxTouches)
	e.rec.discard()
	e.armBeamsLocked()
	e.emit(SessionEvent{State: StateRunning})
	e.emit(TriggerEvent{Count: 0})
	e.emit(ElapsedEvent{ElapsedMs: 0})
	e.schedule(taskKey{kind: taskElapsed}, e.timings.ElapsedTick, e.elapsedTickLocked)
}

func (e *Engine) elapsedTickLocked() {
	if e.state != StateRunning {
		return
	}
	e.elapsed += e.timings.ElapsedTick
	e.emit(ElapsedEvent{ElapsedMs: e.elapsed.Milliseconds()})
	e.schedule(taskKey{kind: taskElapsed}, e.timings.ElapsedTick, e.elapsedTickLocked)
}

// PressBuzzer handles the physical stop/buzzer button.
func (e *Engine) PressBuzzer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if !e.lastBuzzer.IsZero() && now.Sub(e.lastBuzzer) < e.timings.BuzzerDebounce {
		e.logger.Debug("buzzer edge debounced")
		return
	}
	e.lastBuzzer = now
	e.stopLocked()
}

// Stop ends the running session as a success. Outside Running it is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.state != StateRunning {
		return
	}
	e.playCue(audio.CueBuzzer)
	e.finishLocked(OutcomeSuccess)
}

// finishLocked ends the running session. Called for the buzzer (success)
// and for a touch-limit breach (failure).
func (e *Engine) finishLocked(outcome Outcome) {
	e.state = StateFinished
	e.startPending = false
	e.timers.cancel(taskKey{kind: taskElapsed})
	e.gate.release(e)
	e.holding = false

	rec := RunRecord{
		ElapsedMs:           e.elapsed.Milliseconds(),
		TriggeredCount:      e.rules.count,
		MaxTouches:          e.settings.MaxTouches,
		ReactivateEnabled:   e.settings.Reactivate,
		ReactivationSeconds: e.settings.ReactivationSeconds,
		Outcome:             outcome,
		RecordedAt:          e.clock.Now(),
	}
	e.rec.capture(rec)

	if outcome == OutcomeFailure {
		e.playCue(audio.CueGameOver)
	}
	e.emit(SessionEvent{State: StateFinished})
	e.emit(FinishedEvent{Outcome: outcome, Record: rec})
}

// Reset returns the engine to Idle from any state. Idempotent. Cancels
// every per-beam timer and releases the session gate if held.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	e.timers.cancelAll()
	e.startPending = false
	e.gate.release(e)
	e.holding = false
	e.state = StateIdle
	e.elapsed = 0
	e.rules.reset(e.settings.MaxTouches)
	e.rec.discard()
	e.armBeamsLocked()
	e.emit(SessionEvent{State: StateIdle})
}

// HandleFrame routes one sensor frame into the beam state machines.
// Frames are applied while Running; while Idle a broken beam only plays
// the blink preview. In other states frames are ignored.
func (e *Engine) HandleFrame(frame SensorFrame) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning && e.state != StateIdle {
		return
	}

	broken, ok := brokenSet(frame, e.cfgs)
	if !ok {
		e.logger.Debug("dropped malformed sensor frame", "len", len(frame))
		return
	}

	for _, b := range e.beams {
		if e.state == StateFinished {
			// A touch-limit breach ended the session mid-frame.
			break
		}
		if broken[b.cfg.ID] {
			e.breakBeamLocked(b)
		}
	}
}

// CommitRun persists the finished run under the given player name.
// Blank names are rejected; a run can be committed at most once.
func (e *Engine) CommitRun(name string) (RunRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rec.commit(name)
}

// BeamSnapshot is one beam's state for display.
type BeamSnapshot struct {
	ID       string
	Name     string
	State    BeamState
	BlinkOn  bool
	Progress float64
}

// Snapshot is a point-in-time copy of the engine state for display.
type Snapshot struct {
	State          SessionState
	ElapsedMs      int64
	TriggeredCount int
	MaxTouches     int
	Beams          []BeamSnapshot
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:          e.state,
		ElapsedMs:      e.elapsed.Milliseconds(),
		TriggeredCount: e.rules.count,
		MaxTouches:     e.settings.MaxTouches,
	}
	for _, b := range e.beams {
		snap.Beams = append(snap.Beams, BeamSnapshot{
			ID:       b.cfg.ID,
			Name:     b.cfg.Name,
			State:    b.state,
			BlinkOn:  b.blinkOn,
			Progress: b.progress,
		})
	}
	return snap
}

// schedule arms a task bound to the current session generation. If a reset
// or restart sweeps the group before the timer fires, the callback finds a
// newer generation and does nothing.
func (e *Engine) schedule(key taskKey, d time.Duration, f func()) {
	gen := e.gen
	e.timers.schedule(key, d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.gen {
			return
		}
		f()
	})
}

func (e *Engine) emit(evt Event) {
	e.sink.Send(evt)
}

func (e *Engine) playCue(c audio.Cue) {
	if e.cues != nil {
		e.cues.Play(c)
	}
}
