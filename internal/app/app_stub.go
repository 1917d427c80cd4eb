//go:build !ebiten

package app

import (
	"fmt"

	"hypercube/internal/core"
)

// Game stands in for the hypercube viewer in headless builds.
type Game struct{}

// New panics: the viewer window needs the ebiten build tag.
func New(core.Sim, int, int64) *Game {
	panic("app.New: the hypercube viewer requires the 'ebiten' build tag")
}

// Reset does nothing without a window.
func (g *Game) Reset(int64) {}

// Update reports that no viewer was compiled in.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update: hypercube viewer built without the 'ebiten' tag")
}

// Draw does nothing without a window.
func (g *Game) Draw(any) {}

// Layout has no screen to size in headless builds.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
