package main

import (
	"bytes"
	"flag"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/nttbench/bench"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		cfg, opts, err := parseFlags(nil, io.Discard)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
		require.False(t, opts.list)
		require.Len(t, cfg.Cases, 5)
	})

	t.Run("Example", func(t *testing.T) {
		cfg, err := LoadConfig("nttbench.yaml", Config{})
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("FileThenFlags", func(t *testing.T) {
		path := writeConfig(t, `
platform: generic
runs: 4
unit: us
cases:
  - {logn: 5, logq: 30}
  - {logn: 6, q: 0x3001}
`)
		cfg, _, err := parseFlags([]string{"-config", path, "-runs", "2", "-v"}, io.Discard)
		require.NoError(t, err)
		require.Equal(t, "generic", cfg.Platform)
		require.Equal(t, 2, cfg.Runs)
		require.Equal(t, "us", cfg.Unit)
		require.Equal(t, DefaultConfig().Warmup, cfg.Warmup)
		require.Equal(t, []Case{{LogN: 5, LogQ: 30}, {LogN: 6, Q: 0x3001}}, cfg.Cases)

		cfg, _, err = parseFlags([]string{"-config", path, "-logn", "4,7", "-logq", "33"}, io.Discard)
		require.NoError(t, err)
		require.Equal(t, []Case{{LogN: 4, LogQ: 33}, {LogN: 7, LogQ: 33}}, cfg.Cases)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := ReadConfig(strings.NewReader("plattform: generic\n"), DefaultConfig())
		require.Error(t, err)

		_, _, err = parseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard)
		require.Error(t, err)

		for _, args := range [][]string{
			{"-platform", "sparc-vis"},
			{"-unit", "ms"},
			{"-direction", "sideways"},
			{"-variant", "FWD_R8"},
			{"-runs", "0"},
			{"-logn", "3"},
			{"-logn", "ten"},
			{"-logq", "62"},
		} {
			_, _, err := parseFlags(args, io.Discard)
			require.Error(t, err, args)
		}

		_, _, err = parseFlags([]string{"-h"}, io.Discard)
		require.ErrorIs(t, err, flag.ErrHelp)
	})

	t.Run("Moduli", func(t *testing.T) {
		reg, err := bench.Resolve(bench.Generic.String())
		require.NoError(t, err)

		cfg := DefaultConfig()
		cfg.Cases = []Case{{LogN: 4, LogQ: 50}, {LogN: 10, LogQ: 61}, {LogN: 6, Q: 0x3001}}

		cases, err := cfg.TestCases(reg)
		require.NoError(t, err)
		require.Len(t, cases, 3)
		require.Equal(t, 50, bits.Len64(cases[0].Q))
		require.Equal(t, 61, bits.Len64(cases[1].Q))
		require.Equal(t, uint64(0x3001), cases[2].Q)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		cfg, err := ReadConfig(strings.NewReader(""), DefaultConfig())
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Platform = bench.Generic.String()
	cfg.Warmup, cfg.Runs = 0, 1
	cfg.Cases = casesOf([]int{4, 6}, 30)
	return cfg
}

func TestRun(t *testing.T) {

	t.Run("Tables", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, testConfig(), options{}, nil))

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		// forward: 3 header lines and 2 rows, a blank line, inverse: 3 header lines and 2 rows
		require.Len(t, lines, 11)
		require.Contains(t, lines[0], "fwd-lazy")
		require.Empty(t, lines[5])
		require.Contains(t, lines[6], "inv")
		require.True(t, strings.HasPrefix(lines[3], "  4 "))
		require.True(t, strings.HasPrefix(lines[4], "  6 "))
	})

	t.Run("Direction", func(t *testing.T) {
		cfg := testConfig()
		cfg.Direction = "inverse"
		var out bytes.Buffer
		require.NoError(t, run(&out, cfg, options{}, nil))
		require.NotContains(t, out.String(), "fwd")
		require.Len(t, strings.Split(strings.TrimRight(out.String(), "\n"), "\n"), 5)
	})

	t.Run("Single", func(t *testing.T) {
		cfg := testConfig()
		cfg.Variant = "FWD_R4x4"
		var out bytes.Buffer
		require.NoError(t, run(&out, cfg, options{}, nil))
		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		require.Contains(t, lines[0], "FWD_R4x4(rad4x4)")
	})

	t.Run("Unsupported", func(t *testing.T) {
		cfg := testConfig()
		cfg.Variant = "FWD_R4_VMSL"
		err := run(io.Discard, cfg, options{}, nil)
		require.ErrorIs(t, err, bench.ErrUnsupportedVariant)
	})

	t.Run("RandomSeed", func(t *testing.T) {
		cfg := testConfig()
		cfg.Seed = ""
		cfg.Variant = "INV_REF"
		require.NoError(t, run(io.Discard, cfg, options{}, nil))
	})

	t.Run("List", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, testConfig(), options{list: true}, nil))
		require.Contains(t, out.String(), "active:   generic")
		require.Contains(t, out.String(), "FWD_REF_LAZY")
		require.Contains(t, out.String(), "INV_R4")
	})
}
