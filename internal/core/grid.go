package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pcore "hypercube/pkg/core"
)

// ErrRaggedGrid reports input lines of differing widths.
var ErrRaggedGrid = errors.New("grid: lines have inconsistent widths")

// ActiveRune marks an active cell in the text format; any other rune is
// inactive.
const ActiveRune = '#'

// Point is a cell of the 2-D seed grid.
type Point struct {
	X, Y int
}

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// ParseGrid reads lines of equal length where '#' marks an active cell.
// Trailing blank lines are ignored.
func ParseGrid(r io.Reader) (*ByteGrid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return NewByteGrid(0, 0), nil
	}

	w := len([]rune(lines[0]))
	g := NewByteGrid(w, len(lines))
	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != w {
			return nil, fmt.Errorf("%w: line %d has %d cells, line 1 has %d", ErrRaggedGrid, y+1, len(runes), w)
		}
		for x, c := range runes {
			if c == ActiveRune {
				g.Set(x, y, 1)
			}
		}
	}
	return g, nil
}

// LoadGrid parses the grid stored at path; "-" reads standard input.
func LoadGrid(path string) (*ByteGrid, error) {
	if path == "-" || path == "" {
		return ParseGrid(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	defer f.Close()
	g, err := ParseGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// RandomGrid fills a w*h grid with live cells drawn from the seeded RNG.
func RandomGrid(w, h int, seed int64) *ByteGrid {
	g := NewByteGrid(w, h)
	pcore.FillBinary(pcore.NewRNG(seed).Source(), g.data)
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *ByteGrid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[g.Index(x, y)] = v }

// Get returns the value at (x, y).
func (g *ByteGrid) Get(x, y int) uint8 { return g.data[g.Index(x, y)] }

// Active lists the nonzero cells in row-major order.
func (g *ByteGrid) Active() []Point {
	var pts []Point
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Get(x, y) != 0 {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// String renders the grid in the input format.
func (g *ByteGrid) String() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Get(x, y) != 0 {
				b.WriteRune(ActiveRune)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
