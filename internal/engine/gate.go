package engine

import "sync"

// Gate is the cross-engine mutual exclusion for live sessions. At most one
// engine holds it at a time; a second, independently wired command source
// cannot start a competing session while the maze is in use.
//
// There is deliberately no package-level gate: the owner is an explicit
// token passed into every engine that shares the physical maze.
type Gate struct {
	mu     sync.Mutex
	holder *Engine
}

// NewGate creates a released gate.
func NewGate() *Gate {
	return &Gate{}
}

// tryAcquire claims the gate for e. Re-acquiring by the current holder
// succeeds.
func (g *Gate) tryAcquire(e *Engine) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holder != nil && g.holder != e {
		return false
	}
	g.holder = e
	return true
}

// release lets go of the gate if e holds it.
func (g *Gate) release(e *Engine) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.holder == e {
		g.holder = nil
	}
}

// Held reports whether any engine currently owns the gate.
func (g *Gate) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder != nil
}
