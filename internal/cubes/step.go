package cubes

import (
	"slices"

	"golang.org/x/sync/errgroup"
)

// Accumulator values hold (neighbor count << 1) | self. Only counts up to four
// change the outcome, so sums saturate at four neighbors.
const (
	selfBit      = 1
	neighborUnit = 2
	saturated    = 4 * neighborUnit

	// 2 neighbors + self, 3 neighbors, 3 neighbors + self.
	surviveMin = 2*neighborUnit | selfBit
	surviveMax = 3*neighborUnit | selfBit
)

type accumulator map[Pos]uint8

func (a accumulator) credit(p Pos, weight uint64) {
	v := a[p]
	if v >= saturated {
		return
	}
	a[p] = uint8(min(uint64(v)+min(weight, 4)*neighborUnit, saturated))
}

// planeDeltas returns the key offsets of the 3x3 plane neighborhood, the
// centre last.
func planeDeltas(l Layout) []Pos {
	deltas := make([]Pos, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			deltas = append(deltas, l.Delta(dx, dy))
		}
	}
	return append(deltas, 0)
}

// accumulate credits every neighbor of the given active cells.
func accumulate(acc accumulator, active []Pos, t *Table, l Layout, deltas []Pos) {
	ring := deltas[:len(deltas)-1]
	for _, p := range active {
		plane, extra := l.PlaneKey(p), l.ExtraKey(p)
		for _, e := range t.Edges(extra) {
			base := plane + e.Key
			for _, d := range deltas {
				acc.credit(base+d, e.Weight)
			}
		}
		// Moving only in the plane keeps the extra coordinates, which the
		// table leaves out since its offsets are nonzero.
		for _, d := range ring {
			acc.credit(p+d, 1)
		}
	}
}

// Step advances the active set by one round. With workers > 1 the active set
// is split into shards accumulated concurrently and merged afterwards. The
// result is sorted.
func Step(active []Pos, t *Table, l Layout, workers int) []Pos {
	deltas := planeDeltas(l)
	var acc accumulator
	if workers <= 1 || len(active) < 2*workers {
		acc = make(accumulator, len(active)*9)
		accumulate(acc, active, t, l, deltas)
	} else {
		acc = accumulateSharded(active, t, l, deltas, workers)
	}

	for _, p := range active {
		if v, ok := acc[p]; ok {
			acc[p] = v | selfBit
		}
	}

	next := make([]Pos, 0, len(active))
	for p, v := range acc {
		if v >= surviveMin && v <= surviveMax {
			next = append(next, p)
		}
	}
	slices.Sort(next)
	return next
}

func accumulateSharded(active []Pos, t *Table, l Layout, deltas []Pos, workers int) accumulator {
	shards := make([]accumulator, workers)
	per := (len(active) + workers - 1) / workers

	var eg errgroup.Group
	for i := range shards {
		lo := i * per
		hi := min(lo+per, len(active))
		if lo >= hi {
			break
		}
		shard := make(accumulator, (hi-lo)*9)
		shards[i] = shard
		eg.Go(func() error {
			accumulate(shard, active[lo:hi], t, l, deltas)
			return nil
		})
	}
	// Accumulation cannot fail; the group only joins the shards.
	_ = eg.Wait()

	merged := shards[0]
	for _, shard := range shards[1:] {
		for p, v := range shard {
			merged.credit(p, uint64(v/neighborUnit))
		}
	}
	return merged
}
