package cubes

import (
	"slices"
	"testing"
)

func mustPlan(t *testing.T, maxX, maxY, rounds, dims int) Layout {
	t.Helper()
	l, err := Plan(maxX, maxY, rounds, dims)
	if err != nil {
		t.Fatalf("Plan(%d,%d,%d,%d): %v", maxX, maxY, rounds, dims, err)
	}
	return l
}

func weightOf(t *Table, to, from Pos) uint64 {
	for _, e := range t.Edges(to) {
		if e.Key == from {
			return e.Weight
		}
	}
	return 0
}

func TestTableKnownWeights(t *testing.T) {
	l := mustPlan(t, 2, 2, 6, 4)
	tab := BuildTable(l)

	origin := l.extraKey([]int{0, 0})
	one := l.extraKey([]int{0, 1})
	two := l.extraKey([]int{1, 1})

	// (0,0) reaches {0,1} through (±1,0),(0,±1) and {1,1} through the four
	// diagonals.
	if w := weightOf(tab, one, origin); w != 4 {
		t.Fatalf("weight {0,1} <- {0,0} = %d, want 4", w)
	}
	if w := weightOf(tab, two, origin); w != 4 {
		t.Fatalf("weight {1,1} <- {0,0} = %d, want 4", w)
	}
	// (0,1) reaches (0,0) only via (0,-1).
	if w := weightOf(tab, origin, one); w != 1 {
		t.Fatalf("weight {0,0} <- {0,1} = %d, want 1", w)
	}
	// (0,1) reaches its own class via (±1,-1) landing on (±1,0).
	if w := weightOf(tab, one, one); w != 2 {
		t.Fatalf("weight {0,1} <- {0,1} = %d, want 2", w)
	}
}

func TestTableThreeDimensions(t *testing.T) {
	l := mustPlan(t, 2, 2, 3, 3)
	tab := BuildTable(l)
	z := func(v int) Pos { return l.extraKey([]int{v}) }

	want := map[[2]Pos]uint64{
		{z(1), z(0)}: 2,
		{z(0), z(1)}: 1,
		{z(2), z(1)}: 1,
		{z(1), z(2)}: 1,
	}
	for k, w := range want {
		if got := weightOf(tab, k[0], k[1]); got != w {
			t.Fatalf("weight %#x <- %#x = %d, want %d", uint64(k[0]), uint64(k[1]), got, w)
		}
	}
	// Active cells never reach magnitude 3 before the last round ends, so no
	// key may hold it.
	for _, k := range tab.Keys() {
		if l.Count(k, 3) != 0 {
			t.Fatalf("key %#x reaches the horizon", uint64(k))
		}
	}
	if tab.Len() != 3 {
		t.Fatalf("got %d keyed classes, want 3", tab.Len())
	}
}

func TestTableBuildersAgree(t *testing.T) {
	for _, tc := range []struct{ dims, rounds int }{
		{3, 0}, {3, 1}, {3, 6}, {4, 2}, {4, 6}, {5, 3}, {6, 4}, {7, 3},
	} {
		l := mustPlan(t, 3, 3, tc.rounds, tc.dims)
		fast, slow := BuildTable(l), BuildTableExhaustive(l)
		if fast.Sources() != slow.Sources() {
			t.Fatalf("dims=%d rounds=%d: sources %d vs %d", tc.dims, tc.rounds, fast.Sources(), slow.Sources())
		}
		if !slices.Equal(fast.Keys(), slow.Keys()) {
			t.Fatalf("dims=%d rounds=%d: keyed classes differ", tc.dims, tc.rounds)
		}
		for _, k := range fast.Keys() {
			if !slices.Equal(fast.Edges(k), slow.Edges(k)) {
				t.Fatalf("dims=%d rounds=%d: edges of %#x differ:\n%v\n%v", tc.dims, tc.rounds, uint64(k), fast.Edges(k), slow.Edges(k))
			}
		}
	}
}

func TestTableWeightsCoverAllOffsets(t *testing.T) {
	for _, tc := range []struct{ dims, rounds int }{{3, 6}, {4, 5}, {5, 4}, {8, 4}} {
		l := mustPlan(t, 2, 2, tc.rounds, tc.dims)
		tab := BuildTable(l)

		sums := map[Pos]uint64{}
		for _, k := range tab.Keys() {
			for _, e := range tab.Edges(k) {
				if e.Weight == 0 {
					t.Fatalf("zero weight edge %#x -> %#x", uint64(e.Key), uint64(k))
				}
				sums[e.Key] += e.Weight
			}
		}

		full := uint64(1)
		for i := 0; i < l.Extra(); i++ {
			full *= 3
		}
		full--

		representatives(make([]int, l.Extra()), 0, 0, l.Rounds, func(pt []int) {
			from := l.extraKey(pt)
			inner := slices.Max(pt) <= l.Rounds-2
			switch {
			case inner && sums[from] != full:
				t.Fatalf("dims=%d: %v credits %d offsets, want %d", tc.dims, pt, sums[from], full)
			case sums[from] > full:
				t.Fatalf("dims=%d: %v credits %d offsets, more than %d", tc.dims, pt, sums[from], full)
			}
		})
	}
}

func TestRepresentativesNonDecreasing(t *testing.T) {
	var got [][]int
	representatives(make([]int, 2), 0, 0, 2, func(pt []int) {
		got = append(got, append([]int(nil), pt...))
	})
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
