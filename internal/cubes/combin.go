package cubes

import (
	"errors"
	"math"
	"math/bits"
)

// ErrPopulationOverflow reports a population that does not fit in a uint64.
var ErrPopulationOverflow = errors.New("cubes: population overflows uint64")

// pascal holds binomial coefficients C(n, k) for n up to the number of extra
// axes. Entries that would overflow are clamped to math.MaxUint64.
type pascal [][]uint64

func newPascal(n int) pascal {
	rows := make(pascal, n+1)
	for r := range rows {
		rows[r] = make([]uint64, r+1)
		rows[r][0], rows[r][r] = 1, 1
		for c := 1; c < r; c++ {
			rows[r][c] = satAdd(rows[r-1][c-1], rows[r-1][c])
		}
	}
	return rows
}

func (p pascal) choose(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	return p[n][k]
}

// multinomial returns n!/(a!b!c!) for a+b+c == n, clamped on overflow.
func (p pascal) multinomial(a, b, c int) uint64 {
	return satMul(p.choose(a+b+c, a), p.choose(b+c, b))
}

func satAdd(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return s
}

func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func checkedMul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
