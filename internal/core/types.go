package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is a 2-D view of an automaton that the viewer can draw and advance.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// StatusProvider is implemented by sims that expose a line of run status for
// the overlay.
type StatusProvider interface {
	Status() string
}
