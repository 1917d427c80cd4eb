package config

import (
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !slices.Equal(cfg.Dimensions, []int{3, 4}) || cfg.Rounds != 6 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestBindParsesFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("cubes", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-d", "5,6", "-d", "7", "-t", "3", "-v", "-workers", "4", "-random", "8x5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !slices.Equal(cfg.Dimensions, []int{5, 6, 7}) {
		t.Fatalf("dimensions %v, want [5 6 7]", cfg.Dimensions)
	}
	if cfg.Rounds != 3 || !cfg.Verbose || cfg.Workers != 4 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	w, h, ok, err := cfg.RandomSize()
	if err != nil || !ok || w != 8 || h != 5 {
		t.Fatalf("RandomSize = %d,%d,%v,%v", w, h, ok, err)
	}
}

func TestBindRejectsBadDimension(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("cubes", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-d", "four"}); err == nil {
		t.Fatal("expected parse error for non-numeric dimension")
	}
}

func TestDecodeOverlaysYAML(t *testing.T) {
	cfg := DefaultConfig()
	doc := "dimensions: [4, 8]\nrounds: 4\nworkers: 2\nexhaustive_table: true\n"
	if err := cfg.Decode(strings.NewReader(doc)); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(cfg.Dimensions, []int{4, 8}) || cfg.Rounds != 4 || cfg.Workers != 2 || !cfg.Exhaustive {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Input != "/dev/stdin" {
		t.Fatalf("input default lost: %q", cfg.Input)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Decode(strings.NewReader("dimension: 4\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Decode(strings.NewReader("")); err != nil {
		t.Fatalf("empty document: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"low dimension":   func(c *Config) { c.Dimensions = []int{3, 2} },
		"no dimensions":   func(c *Config) { c.Dimensions = nil },
		"negative rounds": func(c *Config) { c.Rounds = -1 },
		"no workers":      func(c *Config) { c.Workers = 0 },
		"bad random":      func(c *Config) { c.Random = "8by5" },
		"zero random":     func(c *Config) { c.Random = "0x5" },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestConfigPath(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-v", "-config", "run.yaml"}, "run.yaml"},
		{[]string{"--config=run.yaml", "-t", "3"}, "run.yaml"},
		{[]string{"-t", "3"}, ""},
		{[]string{"config"}, ""},
	}
	for _, tc := range cases {
		if got := ConfigPath(tc.args); got != tc.want {
			t.Fatalf("ConfigPath(%v) = %q, want %q", tc.args, got, tc.want)
		}
	}
}

func TestGridRandomAndFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Random = "5x4"
	a, err := cfg.Grid()
	if err != nil {
		t.Fatalf("random grid: %v", err)
	}
	b, _ := cfg.Grid()
	if a.W != 5 || a.H != 4 || a.String() != b.String() {
		t.Fatalf("random grid not deterministic:\n%s\n%s", a, b)
	}

	cfg = DefaultConfig()
	cfg.Input = filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(cfg.Input, []byte("#.\n.#\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := cfg.Grid()
	if err != nil {
		t.Fatalf("file grid: %v", err)
	}
	if len(g.Active()) != 2 {
		t.Fatalf("active %v", g.Active())
	}
}
