// Package naive simulates the D-dimensional automaton cell by cell. It is
// exponential in the dimension and exists to check the symmetry-reduced
// engine on small inputs.
package naive

import (
	"fmt"

	"hypercube/internal/core"
)

// MaxDims bounds the dimensionality accepted by New.
const MaxDims = 6

// cell packs one int8 coordinate per axis into a string map key.
type cell string

func pack(coords []int) cell {
	b := make([]byte, len(coords))
	for i, c := range coords {
		b[i] = byte(int8(c))
	}
	return cell(b)
}

func (c cell) coords() []int {
	out := make([]int, len(c))
	for i := 0; i < len(c); i++ {
		out[i] = int(int8(c[i]))
	}
	return out
}

// Lattice holds the explicit set of active cells.
type Lattice struct {
	dims    int
	rounds  int
	active  map[cell]struct{}
	offsets [][]int
}

// New places the seed cells at the origin of every extra axis.
func New(seed []core.Point, dims int) (*Lattice, error) {
	if dims < 2 || dims > MaxDims {
		return nil, fmt.Errorf("naive: dimensions %d outside [2,%d]", dims, MaxDims)
	}
	l := &Lattice{dims: dims, active: make(map[cell]struct{}, len(seed)), offsets: offsets(dims)}
	coords := make([]int, dims)
	for _, p := range seed {
		if p.X < -64 || p.X > 63 || p.Y < -64 || p.Y > 63 {
			return nil, fmt.Errorf("naive: seed cell (%d,%d) too far from origin", p.X, p.Y)
		}
		coords[0], coords[1] = p.X, p.Y
		l.active[pack(coords)] = struct{}{}
	}
	return l, nil
}

// offsets lists every nonzero vector in {-1,0,1}^dims.
func offsets(dims int) [][]int {
	var out [][]int
	off := make([]int, dims)
	var walk func(i int)
	walk = func(i int) {
		if i == dims {
			for _, d := range off {
				if d != 0 {
					out = append(out, append([]int(nil), off...))
					return
				}
			}
			return
		}
		for d := -1; d <= 1; d++ {
			off[i] = d
			walk(i + 1)
		}
	}
	walk(0)
	return out
}

// Step advances every cell by one round.
func (l *Lattice) Step() {
	if l.rounds >= 64 {
		panic("naive: coordinates would leave the int8 range")
	}
	l.rounds++
	counts := make(map[cell]uint8, len(l.active)*len(l.offsets)/4)
	n := make([]int, l.dims)
	for c := range l.active {
		coords := c.coords()
		for _, off := range l.offsets {
			for i := range n {
				n[i] = coords[i] + off[i]
			}
			k := pack(n)
			if counts[k] < 4 {
				counts[k]++
			}
		}
	}
	next := make(map[cell]struct{}, len(l.active))
	for k, v := range counts {
		_, alive := l.active[k]
		if v == 3 || (v == 2 && alive) {
			next[k] = struct{}{}
		}
	}
	l.active = next
}

// Population returns the number of active cells.
func (l *Lattice) Population() int { return len(l.active) }

// Active reports whether the cell at coords is active.
func (l *Lattice) Active(coords ...int) bool {
	if len(coords) != l.dims {
		return false
	}
	_, ok := l.active[pack(coords)]
	return ok
}

// Simulate runs rounds steps from the seed and returns the final population.
func Simulate(seed []core.Point, dims, rounds int) (int, error) {
	l, err := New(seed, dims)
	if err != nil {
		return 0, err
	}
	for i := 0; i < rounds; i++ {
		l.Step()
	}
	return l.Population(), nil
}
