package main

import (
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"natmerge/logutil"
	"natmerge/store"
)

const (
	algoNatural         = "natural_mergesort"
	algoParallelNatural = "parallel_natural_mergesort"
	algoMerge           = "mergesort"
	algoParallelMerge   = "parallel_mergesort"
)

var allAlgorithms = []string{algoNatural, algoParallelNatural, algoMerge, algoParallelMerge}

// Config is the benchmark configuration file.
type Config struct {
	Bench BenchConfig       `toml:"bench"`
	Store StoreConfig       `toml:"store"`
	Log   logutil.LogConfig `toml:"log"`
}

type BenchConfig struct {
	Lengths    []int    `toml:"lengths"`
	Runs       int      `toml:"runs"`
	Min        float64  `toml:"min"`
	Max        float64  `toml:"max"`
	Seed       int64    `toml:"seed"`
	Workers    int      `toml:"workers"`
	Algorithms []string `toml:"algorithms"`
	// datasets at least this long go through a file round trip
	FileThreshold int    `toml:"file-threshold"`
	DataDir       string `toml:"data-dir"`
	ReportDir     string `toml:"report-dir"`
	Preview       int    `toml:"preview"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

func defaultConfig() *Config {
	return &Config{
		Bench: BenchConfig{
			Lengths:       []int{1000, 10000, 100000},
			Runs:          3,
			Min:           0,
			Max:           100,
			Seed:          42,
			Workers:       4,
			Algorithms:    slices.Clone(allAlgorithms),
			FileThreshold: 100000,
			DataDir:       ".",
			ReportDir:     ".",
			Preview:       10,
		},
		Store: StoreConfig{Backend: store.Memory},
		Log:   logutil.LogConfig{Level: "info", Format: "console"},
	}
}

// parseConfigFromFile overlays the file on the defaults. An empty name
// returns the defaults.
func parseConfigFromFile(name string) (*Config, error) {
	cfg := defaultConfig()
	if name != "" {
		if _, err := toml.DecodeFile(name, cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config %s", name)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	b := &c.Bench
	for _, n := range b.Lengths {
		if n < 0 {
			return errors.Errorf("invalid length %d: must not be negative", n)
		}
	}
	if b.Runs < 1 {
		return errors.Errorf("invalid runs %d: must be at least 1", b.Runs)
	}
	if b.Min > b.Max {
		return errors.Errorf("invalid range [%g, %g]", b.Min, b.Max)
	}
	if b.Workers < 1 {
		b.Workers = 1
	}
	for _, algo := range b.Algorithms {
		if !slices.Contains(allAlgorithms, algo) {
			return errors.Errorf("unknown algorithm %q", algo)
		}
	}
	switch c.Store.Backend {
	case store.Memory, "":
	case store.Bolt, store.Badger, store.Pebble:
		if c.Store.Path == "" {
			return errors.Errorf("store backend %s needs a path", c.Store.Backend)
		}
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
