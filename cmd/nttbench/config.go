package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tuneinsight/nttbench/bench"
	"github.com/tuneinsight/nttbench/ring"
	"gopkg.in/yaml.v3"
)

// Case is one (N, Q) instance of the configuration. Q, when zero, is the
// first NTT-friendly prime of LogQ bits for N.
type Case struct {
	LogN int    `yaml:"logn"`
	LogQ int    `yaml:"logq"`
	Q    uint64 `yaml:"q,omitempty"`
}

// Config is the configuration of a benchmark run, read from a YAML file and
// overridden by the command line flags.
type Config struct {
	Platform  string `yaml:"platform"`
	Seed      string `yaml:"seed"`
	Warmup    int    `yaml:"warmup"`
	Runs      int    `yaml:"runs"`
	Unit      string `yaml:"unit"`
	Direction string `yaml:"direction"`
	Variant   string `yaml:"variant"`
	Cases     []Case `yaml:"cases"`
}

const (
	defaultLogQ  = 42
	directionAll = "both"
)

var defaultLogN = []int{10, 11, 12, 13, 14}

// DefaultConfig returns the configuration used when neither a file nor flags
// set a value.
func DefaultConfig() Config {
	return Config{
		Platform:  bench.Auto,
		Seed:      "nttbench",
		Warmup:    bench.DefaultTimer.Warmup,
		Runs:      bench.DefaultTimer.Runs,
		Unit:      bench.Nanoseconds.String(),
		Direction: directionAll,
		Cases:     casesOf(defaultLogN, defaultLogQ),
	}
}

func casesOf(logN []int, logQ int) (cases []Case) {
	for _, l := range logN {
		cases = append(cases, Case{LogN: l, LogQ: logQ})
	}
	return
}

// ReadConfig decodes a YAML configuration from r on top of base.
// Unknown fields are rejected.
func ReadConfig(r io.Reader, base Config) (Config, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := base
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot ReadConfig: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads the YAML configuration file at path on top of base.
func LoadConfig(path string, base Config) (Config, error) {

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot LoadConfig: %w", err)
	}
	defer f.Close()

	return ReadConfig(f, base)
}

// Validate checks the consistency of the configuration.
func (c Config) Validate() error {

	if c.Platform != bench.Auto {
		if _, err := bench.ParseCapability(c.Platform); err != nil {
			return err
		}
	}

	if _, err := bench.ParseUnit(c.Unit); err != nil {
		return err
	}

	if c.Direction != directionAll {
		if _, err := bench.ParseDirection(c.Direction); err != nil {
			return err
		}
	}

	if c.Variant != "" {
		if _, err := bench.ParseVariantID(c.Variant); err != nil {
			return err
		}
	}

	if c.Warmup < 0 || c.Runs < 1 {
		return fmt.Errorf("invalid timer: warmup=%d must be non-negative and runs=%d positive", c.Warmup, c.Runs)
	}

	if len(c.Cases) == 0 {
		return fmt.Errorf("invalid configuration: no case")
	}

	for _, cc := range c.Cases {
		if cc.LogN < 4 || cc.LogN > 20 {
			return fmt.Errorf("invalid case: logn=%d must be in [4, 20]", cc.LogN)
		}
		if cc.Q == 0 && (cc.LogQ < 1 || cc.LogQ > ring.MaxModulusBits-1) {
			return fmt.Errorf("invalid case: logq=%d must be in [1, %d]", cc.LogQ, ring.MaxModulusBits-1)
		}
	}

	return nil
}

// Timer returns the timer of the configuration.
func (c Config) Timer() bench.Timer {
	return bench.Timer{Warmup: c.Warmup, Runs: c.Runs}
}

// TestCases generates the test cases of the configuration for reg.
// A case without Q uses the largest NTT-friendly prime below 2^LogQ.
func (c Config) TestCases(reg *bench.Registry) (cases []*bench.TestCase, err error) {

	cases = make([]*bench.TestCase, len(c.Cases))

	for i, cc := range c.Cases {

		N := 1 << cc.LogN

		Q := cc.Q
		if Q == 0 {
			var primes []uint64
			if primes, err = ring.GenerateNTTPrimesP(cc.LogQ, 2*N, 1); err != nil {
				return nil, err
			}
			Q = primes[0]
		}

		if cases[i], err = bench.NewTestCase(cc.LogN, N, Q, reg); err != nil {
			return nil, err
		}
	}

	return
}
