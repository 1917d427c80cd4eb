package core

import "time"

// Lap is a named interval recorded by a Stopwatch.
type Lap struct {
	Name    string
	Elapsed time.Duration
}

// Stopwatch records consecutive phases of a run.
type Stopwatch struct {
	start time.Time
	last  time.Time
	laps  []Lap
	now   func() time.Time
}

// NewStopwatch starts a Stopwatch at the current time.
func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	t := now()
	return &Stopwatch{start: t, last: t, now: now}
}

// Lap closes the current phase under name and returns its duration.
func (s *Stopwatch) Lap(name string) time.Duration {
	t := s.now()
	d := t.Sub(s.last)
	s.last = t
	s.laps = append(s.laps, Lap{Name: name, Elapsed: d})
	return d
}

// Laps returns the recorded phases in order.
func (s *Stopwatch) Laps() []Lap { return s.laps }

// Total returns the time since the Stopwatch started.
func (s *Stopwatch) Total() time.Duration { return s.now().Sub(s.start) }
