// Command cubes-sweep runs the same seed grid across a range of dimensions in
// parallel and reports population, class counts and timings per dimension.
// It accepts the flags and -config files of cubes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"hypercube/internal/config"
	"hypercube/internal/core"
	"hypercube/internal/cubes"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type sweepResult struct {
	dims       int
	population uint64
	classes    int
	tableRows  int
	tableEdges int
	tableTime  time.Duration
	stepTime   time.Duration
	err        error
}

// options holds the sweep flags on top of the shared run configuration.
type options struct {
	cfg      config.Config
	dims     []int
	parallel int
}

// parseArgs applies a -config file, then flags. Without -from the sweep
// covers the configured dimensions.
func parseArgs(args []string) (options, error) {
	opts := options{cfg: config.DefaultConfig()}
	if path := config.ConfigPath(args); path != "" {
		if err := opts.cfg.Load(path); err != nil {
			return opts, err
		}
	}
	fs := flag.NewFlagSet("cubes-sweep", flag.ContinueOnError)
	opts.cfg.Bind(fs)
	from := fs.Int("from", 0, "lowest dimension of a range (default: the -d list)")
	to := fs.Int("to", 10, "highest dimension of a range")
	fs.IntVar(&opts.parallel, "parallel", runtime.NumCPU(), "dimensions simulated concurrently")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *from > 0 {
		if *to < *from {
			return opts, fmt.Errorf("bad dimension range %d..%d", *from, *to)
		}
		opts.cfg.Dimensions = nil
		for d := *from; d <= *to; d++ {
			opts.cfg.Dimensions = append(opts.cfg.Dimensions, d)
		}
	}
	if err := opts.cfg.Validate(); err != nil {
		return opts, err
	}
	if opts.parallel < 1 {
		return opts, fmt.Errorf("parallel %d below 1", opts.parallel)
	}
	opts.dims = opts.cfg.Dimensions
	return opts, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cubes-sweep: ")

	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}
	grid, err := opts.cfg.Grid()
	if err != nil {
		log.Fatal(err)
	}

	results := sweep(grid.Active(), opts.dims, opts.cfg, opts.parallel)
	if err := report(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
}

func sweep(seed []core.Point, dims []int, cfg config.Config, parallel int) []sweepResult {
	jobs := make(chan int)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				results <- runDimension(seed, d, cfg)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, d := range dims {
			jobs <- d
		}
		close(jobs)
	}()

	var all []sweepResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dims < all[j].dims })
	return all
}

func runDimension(seed []core.Point, dims int, cfg config.Config) sweepResult {
	res := sweepResult{dims: dims}
	opts := []cubes.Option{cubes.WithWorkers(cfg.Workers)}
	if cfg.Exhaustive {
		opts = append(opts, cubes.WithExhaustiveTable())
	}
	sim, err := cubes.New(seed, dims, cfg.Rounds, opts...)
	if err != nil {
		res.err = err
		return res
	}
	sim.Run()
	res.population, res.err = sim.Population()
	res.classes = len(sim.Active())
	res.tableRows = sim.Table().Len()
	res.tableEdges = sim.Table().EdgeCount()
	res.tableTime = sim.TableTime()
	res.stepTime = sim.StepTime()
	return res
}

func report(out io.Writer, results []sweepResult) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "%4s %24s %10s %10s %12s %10s %10s\n", "dims", "population", "classes", "rows", "edges", "neigh ms", "steps ms")
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(out, "%4d %v\n", r.dims, r.err)
			if firstErr == nil {
				firstErr = fmt.Errorf("dimension %d: %w", r.dims, r.err)
			}
			continue
		}
		p.Fprintf(out, "%4d %24d %10d %10d %12d %10d %10d\n",
			r.dims, r.population, r.classes, r.tableRows, r.tableEdges, r.tableTime.Milliseconds(), r.stepTime.Milliseconds())
	}
	return firstErr
}
