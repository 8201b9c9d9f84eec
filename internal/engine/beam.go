package engine

import (
	"time"

	"github.com/vovakirdan/laser-maze/internal/audio"
	"github.com/vovakirdan/laser-maze/internal/config"
)

// BeamState is the runtime state of one beam.
type BeamState int

const (
	// BeamArmed: the beam is live; breaking it triggers.
	BeamArmed BeamState = iota
	// BeamBlinking: the beam was just broken and is flashing.
	BeamBlinking
	// BeamReactivating: the beam is counting down to re-arm.
	BeamReactivating
	// BeamDisabled: the beam is dark, either by configuration or because it
	// was triggered in a session without reactivation.
	BeamDisabled
)

func (s BeamState) String() string {
	switch s {
	case BeamArmed:
		return "armed"
	case BeamBlinking:
		return "blinking"
	case BeamReactivating:
		return "reactivating"
	case BeamDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// beam is the mutable runtime state behind one configured beam.
// Mutated only under the engine lock.
type beam struct {
	cfg config.Beam

	state      BeamState
	blinkOn    bool
	blinkTicks int
	progress   float64 // reactivation progress, 0-100

	// processing is set synchronously when a trigger is accepted and
	// cleared only on leaving Blinking. It is the single-flight guard that
	// keeps a beam reported broken on every frame from triggering twice.
	processing bool

	reactivatedAt time.Time
}

// breakBeamLocked handles a broken reading for one beam. A beam that is not
// armed, or whose trigger is still being processed, ignores the reading.
func (e *Engine) breakBeamLocked(b *beam) {
	if b.state != BeamArmed || b.processing {
		return
	}

	b.processing = true
	b.state = BeamBlinking
	b.blinkOn = true
	b.blinkTicks = 0
	e.playCue(audio.CueLaserBroken)
	e.emitBeamLocked(b)

	running := e.state == StateRunning
	e.schedule(taskKey{beam: b.cfg.ID, kind: taskBlink}, e.timings.BlinkCycle, func() {
		e.blinkTickLocked(b)
	})

	if running {
		count, breach := e.rules.record()
		e.emit(TriggerEvent{Count: count})
		if breach {
			e.finishLocked(OutcomeFailure)
		}
	}
	// Outside Running this is the preview path: the blink still plays but
	// nothing is counted.
}

// blinkTickLocked advances the blink animation by one cycle.
func (e *Engine) blinkTickLocked(b *beam) {
	b.blinkTicks++
	if b.blinkTicks >= e.timings.BlinkCycles {
		e.endBlinkLocked(b)
		return
	}
	b.blinkOn = !b.blinkOn
	e.emitBeamLocked(b)
	e.schedule(taskKey{beam: b.cfg.ID, kind: taskBlink}, e.timings.BlinkCycle, func() {
		e.blinkTickLocked(b)
	})
}

// endBlinkLocked leaves Blinking. Only here does the processing mark clear.
func (e *Engine) endBlinkLocked(b *beam) {
	b.processing = false
	b.blinkOn = false

	switch {
	case e.state == StateRunning && e.settings.Reactivate:
		b.state = BeamReactivating
		b.progress = 0
		b.reactivatedAt = e.clock.Now()
		e.emitBeamLocked(b)
		e.schedule(taskKey{beam: b.cfg.ID, kind: taskReactivate}, e.timings.ReactivationTick, func() {
			e.reactivateTickLocked(b)
		})
	case e.state == StateRunning:
		b.state = BeamDisabled
		e.emitBeamLocked(b)
	default:
		// Preview outside a run: re-arm straight away.
		b.state = BeamArmed
		e.emitBeamLocked(b)
	}
}

// reactivateTickLocked updates reactivation progress and re-arms the beam
// once the configured time has fully elapsed.
func (e *Engine) reactivateTickLocked(b *beam) {
	if b.state != BeamReactivating {
		return
	}

	total := time.Duration(e.settings.ReactivationSeconds * float64(time.Second))
	elapsed := e.clock.Now().Sub(b.reactivatedAt)
	if total <= 0 || elapsed >= total {
		b.state = BeamArmed
		b.progress = 0
		e.emitBeamLocked(b)
		return
	}

	b.progress = float64(elapsed) / float64(total) * 100
	e.emitBeamLocked(b)
	e.schedule(taskKey{beam: b.cfg.ID, kind: taskReactivate}, e.timings.ReactivationTick, func() {
		e.reactivateTickLocked(b)
	})
}

// armBeamsLocked forces every beam back to its ground state.
// Pending blink/reactivation timers must already be canceled.
func (e *Engine) armBeamsLocked() {
	for _, b := range e.beams {
		b.processing = false
		b.blinkOn = false
		b.blinkTicks = 0
		b.progress = 0
		if b.cfg.Enabled {
			b.state = BeamArmed
		} else {
			b.state = BeamDisabled
		}
		e.emitBeamLocked(b)
	}
}

func (e *Engine) emitBeamLocked(b *beam) {
	e.emit(BeamEvent{
		ID:       b.cfg.ID,
		State:    b.state,
		BlinkOn:  b.blinkOn,
		Progress: b.progress,
	})
}
