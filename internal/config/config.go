// Package config holds the run parameters shared by the hypercube commands.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hypercube/internal/core"

	"gopkg.in/yaml.v3"
)

// Config represents the parameters of a simulation run.
type Config struct {
	Dimensions []int  `yaml:"dimensions"`
	Rounds     int    `yaml:"rounds"`
	Input      string `yaml:"input"`
	Verbose    bool   `yaml:"verbose"`
	Workers    int    `yaml:"workers"`
	Verify     bool   `yaml:"verify"`
	Trace      bool   `yaml:"trace"`
	Exhaustive bool   `yaml:"exhaustive_table"`
	// Random replaces the input with a WxH random grid when set.
	Random string `yaml:"random"`
	Seed   int64  `yaml:"seed"`

	// File is the YAML file the other fields were loaded from.
	File string `yaml:"-"`
}

// DefaultConfig returns the standard configuration: both 3 and 4 dimensions
// over six rounds, reading the grid from stdin.
func DefaultConfig() Config {
	return Config{
		Dimensions: []int{3, 4},
		Rounds:     6,
		Input:      "/dev/stdin",
		Workers:    1,
		Seed:       1337,
	}
}

// intList is a flag.Value holding comma-separated integers.
type intList struct {
	dst *[]int
	set bool
}

func (l *intList) String() string {
	if l == nil || l.dst == nil {
		return ""
	}
	parts := make([]string, len(*l.dst))
	for i, v := range *l.dst {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	if !l.set {
		*l.dst = nil
		l.set = true
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("parse dimension %q: %w", part, err)
		}
		*l.dst = append(*l.dst, v)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Var(&intList{dst: &c.Dimensions}, "d", "dimensions to simulate (comma-separated, repeatable)")
	fs.IntVar(&c.Rounds, "t", c.Rounds, "number of rounds")
	fs.StringVar(&c.Input, "input", c.Input, "grid file ('-' or /dev/stdin for standard input)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "print table and step timings")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines accumulating neighbor counts")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "cross-check against the brute-force simulator")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "log every active class after each round")
	fs.BoolVar(&c.Exhaustive, "exhaustive", c.Exhaustive, "build the weight table from every offset vector")
	fs.StringVar(&c.Random, "random", c.Random, "simulate a random WxH grid instead of reading input")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for -random")
	fs.StringVar(&c.File, "config", c.File, "YAML file providing defaults for these flags")
}

// Load overlays the YAML document at path onto c. Unknown keys are rejected.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.File = path
	return c.Decode(bytes.NewReader(data))
}

// Decode overlays a YAML document read from r onto c.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RandomSize parses the Random field. ok is false when no random grid is
// requested.
func (c *Config) RandomSize() (w, h int, ok bool, err error) {
	if c.Random == "" {
		return 0, 0, false, nil
	}
	ws, hs, found := strings.Cut(strings.ToLower(c.Random), "x")
	if !found {
		return 0, 0, false, fmt.Errorf("config: random size %q is not WxH", c.Random)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, false, fmt.Errorf("config: random width %q", ws)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, false, fmt.Errorf("config: random height %q", hs)
	}
	return w, h, true, nil
}

// Grid returns the seed grid: a random WxH grid when Random is set,
// otherwise the grid read from Input.
func (c *Config) Grid() (*core.ByteGrid, error) {
	w, h, random, err := c.RandomSize()
	if err != nil {
		return nil, err
	}
	if random {
		return core.RandomGrid(w, h, c.Seed), nil
	}
	return core.LoadGrid(c.Input)
}

// Validate rejects parameters the simulation cannot run with.
func (c *Config) Validate() error {
	if len(c.Dimensions) == 0 {
		return errors.New("config: no dimensions requested")
	}
	for _, d := range c.Dimensions {
		if d < 3 {
			return fmt.Errorf("config: dimension %d below 3", d)
		}
	}
	if c.Rounds < 0 {
		return fmt.Errorf("config: negative rounds %d", c.Rounds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers %d below 1", c.Workers)
	}
	if _, _, _, err := c.RandomSize(); err != nil {
		return err
	}
	return nil
}

// ConfigPath scans args for -config/--config before regular flag parsing so
// the file can provide defaults that flags then override.
func ConfigPath(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
