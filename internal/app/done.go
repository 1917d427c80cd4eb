package app

import "hypercube/internal/core"

// finisher is implemented by sims with a fixed number of steps.
type finisher interface {
	Done() bool
}

// finished reports whether sim has run out of steps.
func finished(sim core.Sim) bool {
	f, ok := sim.(finisher)
	return ok && f.Done()
}
