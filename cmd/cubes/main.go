// Command cubes simulates Conway Cubes in any number of dimensions and prints
// the active population after the requested rounds, one line per dimension.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"hypercube/internal/config"
	"hypercube/internal/core"
	"hypercube/internal/cubes"
	"hypercube/internal/sims/naive"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// verifyMaxDims bounds the dimensions cross-checked by -verify.
const verifyMaxDims = 5

func main() {
	log.SetFlags(0)
	log.SetPrefix("cubes: ")

	cfg := config.DefaultConfig()
	if path := config.ConfigPath(os.Args[1:]); path != "" {
		if err := cfg.Load(path); err != nil {
			log.Fatal(err)
		}
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if flag.NArg() > 0 {
		cfg.Input = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, seed, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func loadSeed(cfg config.Config) ([]core.Point, error) {
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	return g.Active(), nil
}

func run(cfg config.Config, seed []core.Point, out io.Writer) error {
	p := message.NewPrinter(language.English)
	for _, dims := range cfg.Dimensions {
		opts := []cubes.Option{cubes.WithWorkers(cfg.Workers)}
		if cfg.Exhaustive {
			opts = append(opts, cubes.WithExhaustiveTable())
		}
		if cfg.Trace {
			opts = append(opts, cubes.WithTrace(log.New(os.Stderr, fmt.Sprintf("d=%d ", dims), 0)))
		}

		sw := core.NewStopwatch()
		sim, err := cubes.New(seed, dims, cfg.Rounds, opts...)
		if err != nil {
			return fmt.Errorf("dimension %d: %w", dims, err)
		}
		neigh := sw.Lap("neigh")
		sim.Run()
		steps := sw.Lap("steps")

		pop, err := sim.Population()
		if err != nil {
			return fmt.Errorf("dimension %d: %w", dims, err)
		}
		fmt.Fprintln(out, pop)

		if cfg.Verbose || dims > 4 {
			tab := sim.Table()
			p.Fprintf(out, "table: %d classes, %d edges from %d representatives\n", tab.Len(), tab.EdgeCount(), tab.Sources())
			p.Fprintf(out, "active classes: %d\n", len(sim.Active()))
			p.Fprintf(out, "neigh: %d ms\n", neigh.Milliseconds())
			p.Fprintf(out, "steps: %d ms\n", steps.Milliseconds())
			p.Fprintf(out, "total: %d ms\n", sw.Total().Milliseconds())
		}

		if cfg.Verify && dims <= verifyMaxDims {
			want, err := naive.Simulate(seed, dims, cfg.Rounds)
			if err != nil {
				return fmt.Errorf("verify dimension %d: %w", dims, err)
			}
			if uint64(want) != pop {
				return fmt.Errorf("verify dimension %d: population %d, brute force %d", dims, pop, want)
			}
			if cfg.Verbose {
				p.Fprintf(out, "verified against %d explicit cells\n", want)
			}
		}
	}
	return nil
}
