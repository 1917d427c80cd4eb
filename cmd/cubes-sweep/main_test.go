package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"hypercube/internal/config"
	"hypercube/internal/core"
)

func TestSweepOrdersByDimension(t *testing.T) {
	g, err := core.ParseGrid(strings.NewReader(".#.\n..#\n###\n"))
	if err != nil {
		t.Fatal(err)
	}
	results := sweep(g.Active(), []int{5, 3, 4}, config.DefaultConfig(), 3)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []int{3, 4, 5} {
		if results[i].dims != want {
			t.Fatalf("result %d is dimension %d, want %d", i, results[i].dims, want)
		}
		if results[i].err != nil {
			t.Fatalf("dimension %d: %v", want, results[i].err)
		}
	}
	if results[0].population != 112 || results[1].population != 848 {
		t.Fatalf("populations %d, %d, want 112, 848", results[0].population, results[1].population)
	}

	var out strings.Builder
	if err := report(&out, results); err != nil {
		t.Fatalf("report: %v", err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 4 {
		t.Fatalf("report has %d lines, want 4:\n%s", lines, out.String())
	}
}

func TestSweepReportsCapacityErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rounds = 40
	results := sweep([]core.Point{{X: 0, Y: 0}}, []int{3}, cfg, 1)
	var out strings.Builder
	if err := report(&out, results); err == nil {
		t.Fatal("expected capacity error for 40 rounds")
	}
}

func TestParseArgsReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	doc := "dimensions: [4, 6]\nrounds: 3\nrandom: 5x5\nworkers: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := parseArgs([]string{"-config", path, "-parallel", "2"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !slices.Equal(opts.dims, []int{4, 6}) || opts.cfg.Rounds != 3 || opts.cfg.Workers != 2 || opts.parallel != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := opts.cfg.Grid(); err != nil {
		t.Fatalf("random grid from config: %v", err)
	}

	opts, err = parseArgs([]string{"-config", path, "-from", "3", "-to", "5", "-t", "2"})
	if err != nil {
		t.Fatalf("parseArgs with range: %v", err)
	}
	if !slices.Equal(opts.dims, []int{3, 4, 5}) || opts.cfg.Rounds != 2 {
		t.Fatalf("flags must override the file: %+v", opts)
	}
}

func TestParseArgsRejectsBadRange(t *testing.T) {
	if _, err := parseArgs([]string{"-from", "6", "-to", "4"}); err == nil {
		t.Fatal("expected error for an empty range")
	}
	if _, err := parseArgs([]string{"-parallel", "0"}); err == nil {
		t.Fatal("expected error for zero parallel sweeps")
	}
}
