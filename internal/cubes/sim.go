package cubes

import (
	"fmt"
	"log"
	"time"

	"hypercube/internal/core"
)

// Simulation runs the symmetry-reduced automaton for a fixed number of rounds.
type Simulation struct {
	layout  Layout
	table   *Table
	counter *Counter
	active  []Pos
	round   int

	workers    int
	exhaustive bool
	trace      *log.Logger

	tableTime time.Duration
	stepTime  time.Duration
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithWorkers shards neighbor accumulation over n goroutines.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.workers = n }
}

// WithExhaustiveTable builds the weight table by enumerating every offset
// vector instead of per-magnitude group choices.
func WithExhaustiveTable() Option {
	return func(s *Simulation) { s.exhaustive = true }
}

// WithTrace logs the active classes after every round.
func WithTrace(logger *log.Logger) Option {
	return func(s *Simulation) { s.trace = logger }
}

// New plans a layout for the seed cells, builds the weight table and places
// the seed cells at the origin of every extra axis. Seed coordinates must be
// non-negative.
func New(seed []core.Point, dims, rounds int, opts ...Option) (*Simulation, error) {
	maxX, maxY := 0, 0
	for _, p := range seed {
		if p.X < 0 || p.Y < 0 {
			return nil, fmt.Errorf("%w: seed cell (%d,%d)", ErrCoordinate, p.X, p.Y)
		}
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	layout, err := Plan(maxX, maxY, rounds, dims)
	if err != nil {
		return nil, err
	}

	s := &Simulation{layout: layout, workers: 1, counter: NewCounter(layout)}
	for _, opt := range opts {
		opt(s)
	}

	start := time.Now()
	if s.exhaustive {
		s.table = BuildTableExhaustive(layout)
	} else {
		s.table = BuildTable(layout)
	}
	s.tableTime = time.Since(start)

	origin := make([]int, layout.Extra())
	s.active = make([]Pos, 0, len(seed))
	for _, p := range seed {
		s.active = append(s.active, layout.Compress(p.X, p.Y, origin))
	}
	return s, nil
}

// Step advances one round. It reports false once the planned rounds are
// exhausted, since the layout has no room for further growth.
func (s *Simulation) Step() bool {
	if s.round >= s.layout.Rounds {
		return false
	}
	start := time.Now()
	s.active = Step(s.active, s.table, s.layout, s.workers)
	s.stepTime += time.Since(start)
	s.round++
	if s.trace != nil {
		s.logRound()
	}
	return true
}

// Run steps until the planned number of rounds is reached.
func (s *Simulation) Run() {
	for s.Step() {
	}
}

func (s *Simulation) logRound() {
	pop, err := s.Population()
	if err != nil {
		s.trace.Printf("t=%d classes=%d population: %v", s.round, len(s.active), err)
	} else {
		s.trace.Printf("t=%d classes=%d population=%d", s.round, len(s.active), pop)
	}
	for _, p := range s.active {
		x, y, extra := s.layout.Decompress(p)
		s.trace.Printf("  %d,%d %v", x, y, extra)
	}
}

// Population returns the number of active lattice cells.
func (s *Simulation) Population() (uint64, error) { return s.counter.Population(s.active) }

// Active returns the current active classes, sorted. The slice must not be
// modified.
func (s *Simulation) Active() []Pos { return s.active }

// Round returns the number of completed rounds.
func (s *Simulation) Round() int { return s.round }

// Layout returns the key layout in use.
func (s *Simulation) Layout() Layout { return s.layout }

// Table returns the neighbor-weight table in use.
func (s *Simulation) Table() *Table { return s.table }

// TableTime returns how long the weight table took to build.
func (s *Simulation) TableTime() time.Duration { return s.tableTime }

// StepTime returns the total time spent stepping.
func (s *Simulation) StepTime() time.Duration { return s.stepTime }
