package cubes

import (
	"fmt"
	"math"
)

// Counter expands canonical keys into the number of lattice cells they stand
// for.
type Counter struct {
	layout Layout
	binom  pascal
}

// NewCounter returns a Counter for keys of the given layout.
func NewCounter(l Layout) *Counter {
	return &Counter{layout: l, binom: newPascal(l.Extra())}
}

// ClassSize returns the number of lattice cells in the class of p: the number
// of ways to assign the extra axes to the magnitudes, times a sign choice for
// every axis at a nonzero magnitude.
func (c *Counter) ClassSize(p Pos) (uint64, error) {
	l := c.layout
	size := uint64(1)
	left := l.Extra()
	for m := 0; m <= l.Rounds; m++ {
		n := l.Count(p, m)
		if n > left {
			panic(fmt.Sprintf("cubes: key %#x holds more than %d extra axes", uint64(p), l.Extra()))
		}
		ways := c.binom.choose(left, n)
		if ways == math.MaxUint64 {
			return 0, fmt.Errorf("%w: C(%d,%d)", ErrPopulationOverflow, left, n)
		}
		var ok bool
		if size, ok = checkedMul(size, ways); !ok {
			return 0, ErrPopulationOverflow
		}
		if m > 0 && n > 0 {
			if n >= 64 {
				return 0, ErrPopulationOverflow
			}
			if size, ok = checkedMul(size, 1<<n); !ok {
				return 0, ErrPopulationOverflow
			}
		}
		left -= n
	}
	if left != 0 {
		panic(fmt.Sprintf("cubes: key %#x leaves %d extra axes unassigned", uint64(p), left))
	}
	return size, nil
}

// Population sums ClassSize over the active set.
func (c *Counter) Population(active []Pos) (uint64, error) {
	var total uint64
	for _, p := range active {
		n, err := c.ClassSize(p)
		if err != nil {
			return 0, err
		}
		sum := total + n
		if sum < total {
			return 0, ErrPopulationOverflow
		}
		total = sum
	}
	return total, nil
}
