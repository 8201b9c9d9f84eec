package engine

// triggerRules counts accepted triggers and decides when the run is over.
type triggerRules struct {
	maxTouches int
	count      int
	breached   bool
}

// record registers one accepted trigger. breach is true exactly once per
// session, on the trigger that reaches the touch limit; later calls during
// the same session never report a second breach.
func (r *triggerRules) record() (count int, breach bool) {
	r.count++
	if r.maxTouches > 0 && r.count >= r.maxTouches && !r.breached {
		r.breached = true
		return r.count, true
	}
	return r.count, false
}

func (r *triggerRules) reset(maxTouches int) {
	r.maxTouches = maxTouches
	r.count = 0
	r.breached = false
}
