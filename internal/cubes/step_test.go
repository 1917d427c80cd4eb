package cubes

import "testing"

func TestCreditSaturates(t *testing.T) {
	acc := accumulator{}
	acc.credit(7, 1)
	acc.credit(7, 1)
	if acc[7] != 2*neighborUnit {
		t.Fatalf("two credits = %d, want %d", acc[7], 2*neighborUnit)
	}
	acc.credit(7, 1<<40)
	if acc[7] != saturated {
		t.Fatalf("large credit = %d, want %d", acc[7], saturated)
	}
	acc.credit(7, 1)
	if acc[7] != saturated {
		t.Fatalf("credit past saturation = %d, want %d", acc[7], saturated)
	}
}

func TestStepLoneCellDies(t *testing.T) {
	l := mustPlan(t, 0, 0, 3, 4)
	tab := BuildTable(l)
	next := Step([]Pos{l.Compress(0, 0, []int{0, 0})}, tab, l, 1)
	if len(next) != 0 {
		t.Fatalf("lone cell left %d classes", len(next))
	}
}

func TestStepBlinkerInPlane(t *testing.T) {
	// A plane blinker in 3-D: the row (0..2, 1) at z=0 turns into a column
	// at z=0 plus copies at z=±1, since each of those cells sees the three
	// row cells.
	l := mustPlan(t, 2, 2, 2, 3)
	tab := BuildTable(l)
	var row []Pos
	for x := 0; x <= 2; x++ {
		row = append(row, l.Compress(x, 1, []int{0}))
	}
	next := Step(row, tab, l, 1)

	got := map[[3]int]bool{}
	for _, p := range next {
		x, y, extra := l.Decompress(p)
		got[[3]int{x, y, extra[0]}] = true
	}
	want := [][3]int{
		{1, 0, 0}, {1, 1, 0}, {1, 2, 0},
		{1, 0, 1}, {1, 1, 1}, {1, 2, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, w := range want {
		if !got[w] {
			t.Fatalf("missing %v in %v", w, got)
		}
	}
}
