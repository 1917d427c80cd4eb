package cubes

import (
	"cmp"
	"math"
	"slices"
)

// Edge is one entry of a neighbor-weight list: the extra key of a class and
// the number of extra-axis offset vectors linking it to the table key.
type Edge struct {
	Key    Pos
	Weight uint64
}

// Table maps the extra key of a class A to every class C whose cells have a
// neighbor in A, weighted by the number of nonzero extra-axis offsets that
// take a fixed representative of C into A. The step engine looks up the
// classes of active cells and credits the listed classes.
//
// A Table is read-only once built and may be shared between goroutines.
type Table struct {
	layout  Layout
	edges   map[Pos][]Edge
	sources int
}

// Edges returns the classes crediting a neighbor at extra key k, sorted by key.
func (t *Table) Edges(k Pos) []Edge { return t.edges[k] }

// Len returns the number of classes with at least one edge.
func (t *Table) Len() int { return len(t.edges) }

// EdgeCount returns the total number of edges.
func (t *Table) EdgeCount() int {
	n := 0
	for _, es := range t.edges {
		n += len(es)
	}
	return n
}

// Sources returns the number of representative tuples enumerated.
func (t *Table) Sources() int { return t.sources }

// Keys returns the keyed classes in ascending order.
func (t *Table) Keys() []Pos {
	keys := make([]Pos, 0, len(t.edges))
	for k := range t.edges {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type weights map[Pos]map[Pos]uint64

func (w weights) add(to, from Pos, n uint64) {
	m, ok := w[to]
	if !ok {
		m = make(map[Pos]uint64)
		w[to] = m
	}
	m[from] = satAdd(m[from], n)
}

func (w weights) table(l Layout, sources int) *Table {
	t := &Table{layout: l, edges: make(map[Pos][]Edge, len(w)), sources: sources}
	for to, from := range w {
		es := make([]Edge, 0, len(from))
		for k, n := range from {
			es = append(es, Edge{Key: k, Weight: n})
		}
		slices.SortFunc(es, func(a, b Edge) int { return cmp.Compare(a.Key, b.Key) })
		t.edges[to] = es
	}
	return t
}

// representatives calls visit with every non-decreasing tuple over [lo,hi]
// that extends pt[:i]. The slice passed to visit is reused between calls.
func representatives(pt []int, i, lo, hi int, visit func([]int)) {
	if i == len(pt) {
		visit(pt)
		return
	}
	for v := lo; v <= hi; v++ {
		pt[i] = v
		representatives(pt, i+1, v, hi, visit)
	}
}

// BuildTableExhaustive builds the table by applying each of the 3^(D-2)-1
// nonzero extra-axis offset vectors to every representative tuple. Offsets
// that push a coordinate to the horizon or beyond are dropped.
func BuildTableExhaustive(l Layout) *Table {
	n, r := l.Extra(), l.Rounds
	w := make(weights)
	sources := 0
	off := make([]int, n)
	npt := make([]int, n)
	representatives(make([]int, n), 0, 0, r, func(pt []int) {
		sources++
		from := l.extraKey(pt)
		for i := range off {
			off[i] = -1
		}
		for {
			zero, inside := true, true
			for i, d := range off {
				if d != 0 {
					zero = false
				}
				npt[i] = pt[i] + d
				if abs(npt[i]) >= r {
					inside = false
				}
			}
			if !zero && inside {
				w.add(l.extraKey(npt), from, 1)
			}
			i := 0
			for ; i < n; i++ {
				off[i]++
				if off[i] <= 1 {
					break
				}
				off[i] = -1
			}
			if i == n {
				break
			}
		}
	})
	return w.table(l, sources)
}

// BuildTable builds the same table as BuildTableExhaustive without visiting
// individual offset vectors. For each magnitude group of a representative it
// chooses how many axes move out, stay or move in, and weighs the choice by
// the number of offset vectors realising it: a multinomial coefficient, times
// two per axis leaving magnitude zero since either sign lands on one.
func BuildTable(l Layout) *Table {
	s := &spreader{
		l:      l,
		w:      make(weights),
		binom:  newPascal(l.Extra()),
		counts: make([]int, l.Rounds+1),
		dest:   make([]int, l.Rounds+2),
	}
	sources := 0
	representatives(make([]int, l.Extra()), 0, 0, l.Rounds, func(pt []int) {
		sources++
		clear(s.counts)
		for _, v := range pt {
			s.counts[v]++
		}
		s.from = l.extraKeyFromCounts(s.counts)
		clear(s.dest)
		s.spread(0, 1, false)
	})
	return s.w.table(l, sources)
}

// spreader distributes the axes of one source class over destination
// magnitudes, one magnitude group at a time.
type spreader struct {
	l      Layout
	w      weights
	binom  pascal
	counts []int
	dest   []int
	from   Pos
}

func (s *spreader) spread(m int, weight uint64, moved bool) {
	r := s.l.Rounds
	if m > r {
		if moved {
			s.w.add(s.l.extraKeyFromCounts(s.dest[:r+1]), s.from, weight)
		}
		return
	}
	c := s.counts[m]
	if c == 0 {
		s.spread(m+1, weight, moved)
		return
	}
	if m == 0 {
		for out := 0; out <= c; out++ {
			stay := c - out
			if (stay > 0 && r == 0) || (out > 0 && r <= 1) {
				continue
			}
			s.dest[0] += stay
			s.dest[1] += out
			s.spread(1, satMul(weight, satMul(s.binom.choose(c, out), pow2(out))), moved || out > 0)
			s.dest[0] -= stay
			s.dest[1] -= out
		}
		return
	}
	for out := 0; out <= c; out++ {
		if out > 0 && m+1 >= r {
			break
		}
		for in := 0; in <= c-out; in++ {
			stay := c - out - in
			if stay > 0 && m >= r {
				continue
			}
			s.dest[m+1] += out
			s.dest[m] += stay
			s.dest[m-1] += in
			s.spread(m+1, satMul(weight, s.binom.multinomial(out, stay, in)), moved || out > 0 || in > 0)
			s.dest[m+1] -= out
			s.dest[m] -= stay
			s.dest[m-1] -= in
		}
	}
}

func pow2(k int) uint64 {
	if k >= 64 {
		return math.MaxUint64
	}
	return 1 << k
}
