package engine

import "time"

// taskKind names the timer-driven stages the engine schedules.
type taskKind int

const (
	taskSettle taskKind = iota
	taskCountdown
	taskElapsed
	taskBlink
	taskReactivate
)

// taskKey identifies one scheduled task. Beam tasks carry the beam id so a
// new blink replaces the previous one instead of stacking.
type taskKey struct {
	beam string
	kind taskKind
}

// timerGroup tracks every scheduled task belonging to the current session.
// A reset cancels all of them in one sweep; nothing scheduled for an old
// session can survive into a new one. Mutated only under the engine lock.
type timerGroup struct {
	clock Clock
	tasks map[taskKey]Timer
}

func newTimerGroup(clock Clock) *timerGroup {
	return &timerGroup{clock: clock, tasks: make(map[taskKey]Timer)}
}

// schedule arms a task, replacing any pending task with the same key.
func (g *timerGroup) schedule(key taskKey, d time.Duration, f func()) {
	if prev, ok := g.tasks[key]; ok {
		prev.Stop()
	}
	g.tasks[key] = g.clock.AfterFunc(d, f)
}

func (g *timerGroup) cancel(key taskKey) {
	if t, ok := g.tasks[key]; ok {
		t.Stop()
		delete(g.tasks, key)
	}
}

func (g *timerGroup) cancelAll() {
	for key, t := range g.tasks {
		t.Stop()
		delete(g.tasks, key)
	}
}

func (g *timerGroup) pending() int { return len(g.tasks) }
