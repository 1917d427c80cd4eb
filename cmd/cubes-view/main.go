//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"hypercube/internal/app"
	"hypercube/internal/sims/projection"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cubes-view: ")

	settings := flag.String("cfg", "", "viewer settings as key=value pairs: d, t, input, w, h, seed")
	scale := flag.Int("scale", 16, "pixel scale multiplier")
	tps := flag.Int("tps", 2, "rounds per second while running")
	flag.Parse()

	kv, err := projection.ParseSettings(*settings)
	if err != nil {
		log.Fatal(err)
	}
	cfg := projection.FromMap(kv)

	view, err := projection.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(view, *scale, cfg.Seed)
	size := view.Size()

	ebiten.SetWindowTitle("hypercube: " + view.Name())
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(size.W**scale, size.H**scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
