//go:build ebiten

package ui

import (
	"image/color"

	"hypercube/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	overlayPad    = 4
	overlayHeight = 18
)

// Overlay draws a status line with the round and population over the grid.
type Overlay struct {
	sim    core.Sim
	hidden bool
	band   *ebiten.Image
}

// NewOverlay constructs an overlay for sim.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim}
	o.band = ebiten.NewImage(1, 1)
	o.band.Fill(color.RGBA{A: 160})
	return o
}

// Update toggles visibility on H.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.hidden = !o.hidden
	}
}

// Draw renders the status line onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.hidden {
		return
	}
	line := o.sim.Name()
	if provider, ok := o.sim.(core.StatusProvider); ok {
		line += "  " + provider.Status()
	}
	w := screen.Bounds().Dx()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), overlayHeight)
	screen.DrawImage(o.band, op)
	text.Draw(screen, line, basicfont.Face7x13, overlayPad, overlayHeight-overlayPad, color.White)
}
