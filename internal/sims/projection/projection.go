// Package projection exposes a hypercube simulation as a 2-D grid: the plane
// cells whose extra coordinates are all zero, plus a dimmer mark for plane
// positions active only away from that slice.
package projection

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"hypercube/internal/core"
	"hypercube/internal/cubes"
)

const (
	cellEmpty  = 0
	cellShadow = 1
	cellSlice  = 2
)

var palette = []color.RGBA{
	cellEmpty:  {A: 255},
	cellShadow: {R: 40, G: 70, B: 120, A: 255},
	cellSlice:  {R: 240, G: 240, B: 240, A: 255},
}

// Config controls the projected simulation.
type Config struct {
	// Width and Height size the random seed grid used when Input is empty.
	Width  int
	Height int
	Dims   int
	Rounds int
	Input  string
	Seed   int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 16, Height: 16, Dims: 4, Rounds: 6, Seed: 1337}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["d"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Dims = parsed
		}
	}
	if v, ok := cfg["t"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rounds = parsed
		}
	}
	if v, ok := cfg["input"]; ok {
		c.Input = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// ParseSettings splits comma-separated key=value pairs into the map FromMap
// reads. An empty string yields an empty map.
func ParseSettings(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("projection: setting %q is not key=value", part)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// View adapts a cubes.Simulation to core.Sim.
type View struct {
	cfg   Config
	fixed []core.Point
	seedW int
	seedH int

	sim  *cubes.Simulation
	grid *core.ByteGrid
	err  error
}

// New builds a View and resets it with the configured seed.
func New(cfg Config) (*View, error) {
	v := &View{cfg: cfg, seedW: cfg.Width, seedH: cfg.Height}
	if cfg.Input != "" {
		g, err := core.LoadGrid(cfg.Input)
		if err != nil {
			return nil, err
		}
		v.fixed = g.Active()
		if v.fixed == nil {
			v.fixed = []core.Point{}
		}
		v.seedW, v.seedH = g.W, g.H
	}
	v.grid = core.NewByteGrid(v.seedW+2*cfg.Rounds, v.seedH+2*cfg.Rounds)
	v.Reset(cfg.Seed)
	if v.err != nil {
		return nil, v.err
	}
	return v, nil
}

// Name returns the simulation identifier.
func (v *View) Name() string { return fmt.Sprintf("cubes %dD", v.cfg.Dims) }

// Size returns the viewport, which leaves room for growth on every side.
func (v *View) Size() core.Size { return core.Size{W: v.grid.W, H: v.grid.H} }

// Cells exposes the projected grid.
func (v *View) Cells() []uint8 { return v.grid.Cells() }

// Palette maps projected cell values to colors.
func (v *View) Palette() []color.RGBA { return palette }

// Reset restarts from round zero. Seeds loaded from a file are kept; random
// seeds are redrawn from seed.
func (v *View) Reset(seed int64) {
	pts := v.fixed
	if pts == nil {
		pts = core.RandomGrid(v.seedW, v.seedH, seed).Active()
	}
	v.sim, v.err = cubes.New(pts, v.cfg.Dims, v.cfg.Rounds)
	v.render()
}

// Step advances one round until the planned rounds are used up.
func (v *View) Step() {
	if v.sim != nil && v.sim.Step() {
		v.render()
	}
}

// Done reports whether the final round has been reached.
func (v *View) Done() bool { return v.sim == nil || v.sim.Round() >= v.cfg.Rounds }

// Status summarises the run for the overlay.
func (v *View) Status() string {
	if v.err != nil {
		return v.err.Error()
	}
	pop, err := v.sim.Population()
	if err != nil {
		return fmt.Sprintf("t=%d/%d classes=%d population: %v", v.sim.Round(), v.cfg.Rounds, len(v.sim.Active()), err)
	}
	return fmt.Sprintf("t=%d/%d classes=%d population=%d", v.sim.Round(), v.cfg.Rounds, len(v.sim.Active()), pop)
}

func (v *View) render() {
	v.grid.Clear()
	if v.sim == nil {
		return
	}
	l := v.sim.Layout()
	for _, p := range v.sim.Active() {
		x, y := l.XY(p)
		x, y = x+v.cfg.Rounds, y+v.cfg.Rounds
		if !v.grid.In(x, y) {
			continue
		}
		if l.Count(p, 0) == l.Extra() {
			v.grid.Set(x, y, cellSlice)
		} else if v.grid.Get(x, y) == cellEmpty {
			v.grid.Set(x, y, cellShadow)
		}
	}
}
