package cubes

import (
	"errors"
	"fmt"
	"math/bits"
)

// Pos is a canonical key. From most to least significant it packs the biased
// x coordinate, the biased y coordinate and one count field per extra
// magnitude 0..Rounds holding how many extra axes sit at that magnitude.
type Pos uint64

var (
	// ErrDimension reports a dimensionality below three.
	ErrDimension = errors.New("cubes: dimensions must be at least 3")
	// ErrRounds reports a negative round count.
	ErrRounds = errors.New("cubes: rounds must not be negative")
	// ErrCapacity reports a configuration whose fields do not fit in a Pos.
	ErrCapacity = errors.New("cubes: bit budget exceeds 64 bits")
	// ErrCoordinate reports an input cell outside the planned extent.
	ErrCoordinate = errors.New("cubes: coordinate outside planned extent")
)

// Layout describes the bit fields of a Pos for one (dimensions, rounds) run.
type Layout struct {
	Dims   int
	Rounds int
	// Offset biases x and y so that coordinates down to -Rounds stay
	// non-negative.
	Offset int
	XBits  int
	YBits  int
	WZBits int

	wzTotal int
	wzMask  Pos
	field   Pos
}

// Plan computes the field widths for an input whose cells lie in
// [0,maxX]x[0,maxY], simulated for the given number of rounds.
func Plan(maxX, maxY, rounds, dims int) (Layout, error) {
	if dims < 3 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrDimension, dims)
	}
	if rounds < 0 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrRounds, rounds)
	}
	if maxX < 0 || maxY < 0 {
		return Layout{}, fmt.Errorf("%w: negative extent %dx%d", ErrCoordinate, maxX, maxY)
	}
	l := Layout{
		Dims:   dims,
		Rounds: rounds,
		Offset: rounds,
		XBits:  bitWidth(maxX + 2*rounds + 1),
		YBits:  bitWidth(maxY + 2*rounds + 1),
		WZBits: bitWidth(max(rounds, dims-2)),
	}
	l.wzTotal = (rounds + 1) * l.WZBits
	if total := l.XBits + l.YBits + l.wzTotal; total > 64 {
		return Layout{}, fmt.Errorf("%w: need %d bits for %d dimensions over %d rounds", ErrCapacity, total, dims, rounds)
	}
	l.field = Pos(1)<<l.WZBits - 1
	// x and y take at least one bit each, so wzTotal < 64.
	l.wzMask = Pos(1)<<l.wzTotal - 1
	return l, nil
}

// TotalBits returns the number of low bits a valid key may occupy.
func (l Layout) TotalBits() int { return l.XBits + l.YBits + l.wzTotal }

// Extra returns the number of extra (interchangeable) axes.
func (l Layout) Extra() int { return l.Dims - 2 }

func (l Layout) shift(mag int) int { return (l.Rounds - mag) * l.WZBits }

// Compress packs x, y and the extra coordinates into a key. Only the
// magnitudes of the extra coordinates matter, so any permutation or sign
// flip of extra yields the same key.
func (l Layout) Compress(x, y int, extra []int) Pos {
	if len(extra) != l.Extra() {
		panic(fmt.Sprintf("cubes: compress got %d extra coordinates, want %d", len(extra), l.Extra()))
	}
	bx, by := x+l.Offset, y+l.Offset
	if bx < 0 || bx >= 1<<l.XBits || by < 0 || by >= 1<<l.YBits {
		panic(fmt.Sprintf("cubes: (%d,%d) does not fit %d+%d bits", x, y, l.XBits, l.YBits))
	}
	p := l.xy(bx, by)
	for _, c := range extra {
		m := abs(c)
		if m > l.Rounds {
			panic(fmt.Sprintf("cubes: extra magnitude %d beyond horizon %d", m, l.Rounds))
		}
		p += Pos(1) << l.shift(m)
	}
	return p
}

func (l Layout) xy(bx, by int) Pos {
	return (Pos(bx)<<l.YBits | Pos(by)) << l.wzTotal
}

// Decompress unpacks a key into x, y and the extra magnitudes in ascending
// order.
func (l Layout) Decompress(p Pos) (x, y int, extra []int) {
	extra = make([]int, 0, l.Extra())
	for m := 0; m <= l.Rounds; m++ {
		for c := l.Count(p, m); c > 0; c-- {
			extra = append(extra, m)
		}
	}
	if len(extra) != l.Extra() {
		panic(fmt.Sprintf("cubes: key %#x decodes to %d extra axes, want %d", uint64(p), len(extra), l.Extra()))
	}
	x, y = l.XY(p)
	return x, y, extra
}

// XY returns the unbiased x and y coordinates of a key.
func (l Layout) XY(p Pos) (x, y int) {
	rest := p >> l.wzTotal
	y = int(rest&(Pos(1)<<l.YBits-1)) - l.Offset
	x = int(rest>>l.YBits) - l.Offset
	return x, y
}

// Count returns how many extra axes of p hold magnitude mag.
func (l Layout) Count(p Pos, mag int) int {
	return int(p >> l.shift(mag) & l.field)
}

// Counts returns the per-magnitude counts of p, indexed by magnitude.
func (l Layout) Counts(p Pos) []int {
	counts := make([]int, l.Rounds+1)
	for m := range counts {
		counts[m] = l.Count(p, m)
	}
	return counts
}

// ExtraKey keeps only the count fields of p.
func (l Layout) ExtraKey(p Pos) Pos { return p & l.wzMask }

// PlaneKey keeps only the x and y fields of p.
func (l Layout) PlaneKey(p Pos) Pos { return p &^ l.wzMask }

// Delta returns the key difference for moving dx, dy in the plane, to be added
// with wrapping arithmetic.
func (l Layout) Delta(dx, dy int) Pos {
	d := int64(dx)<<(l.YBits+l.wzTotal) + int64(dy)<<l.wzTotal
	return Pos(uint64(d))
}

// extraKey builds the count fields from a list of magnitudes without any
// plane component.
func (l Layout) extraKey(mags []int) Pos {
	var p Pos
	for _, m := range mags {
		p += Pos(1) << l.shift(abs(m))
	}
	return p
}

// extraKeyFromCounts builds the count fields from per-magnitude counts.
func (l Layout) extraKeyFromCounts(counts []int) Pos {
	var p Pos
	for m, c := range counts {
		p += Pos(c) << l.shift(m)
	}
	return p
}

// Valid reports whether p has a well-formed extra part and fits the layout.
func (l Layout) Valid(p Pos) bool {
	if l.TotalBits() < 64 && p>>l.TotalBits() != 0 {
		return false
	}
	sum := 0
	for m := 0; m <= l.Rounds; m++ {
		sum += l.Count(p, m)
	}
	return sum == l.Extra()
}

func bitWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
