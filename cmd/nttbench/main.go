// nttbench measures the NTT kernels compiled for the target architecture
// and prints one table per transform direction, one row per (N, Q) case.
//
// Usage:
//
//	nttbench [-config file.yaml] [-platform auto|generic|s390x-vef|avx512-ifma]
//	         [-logn 10,11,12] [-logq 42] [-variant FWD_R4] [-direction forward|inverse|both]
//	         [-warmup 1] [-runs 9] [-unit ns|us] [-seed s] [-list] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tuneinsight/nttbench/bench"
	"github.com/tuneinsight/nttbench/utils/sampling"
)

// options are the flags that are not part of the configuration.
type options struct {
	list    bool
	verbose bool
}

// intList is a comma-separated list of integers flag.
type intList []int

func (l *intList) String() string {
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func (l *intList) Set(value string) error {
	*l = (*l)[:0]
	for _, f := range strings.Split(value, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("invalid integer %q", f)
		}
		*l = append(*l, v)
	}
	return nil
}

// parseFlags parses args and returns the configuration: the defaults,
// overridden by the file given with -config, overridden by the flags set in args.
func parseFlags(args []string, output io.Writer) (cfg Config, opts options, err error) {

	fs := flag.NewFlagSet("nttbench", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
		fmt.Fprintf(fs.Output(), "  Measures the NTT kernels compiled for this architecture\n\n")
		fs.PrintDefaults()
	}

	def := DefaultConfig()

	var configPath string
	var flagged Config
	logN := intList(append([]int{}, defaultLogN...))
	var logQ int

	fs.StringVar(&configPath, "config", "", "YAML configuration file, overridden by the other flags")
	fs.StringVar(&flagged.Platform, "platform", def.Platform, "kernel family: auto, generic, s390x-vef or avx512-ifma")
	fs.StringVar(&flagged.Seed, "seed", def.Seed, "seed of the input buffers, random if empty")
	fs.IntVar(&flagged.Warmup, "warmup", def.Warmup, "untimed calls before the samples")
	fs.IntVar(&flagged.Runs, "runs", def.Runs, "timed samples per variant")
	fs.StringVar(&flagged.Unit, "unit", def.Unit, "unit of the reported medians: ns or us")
	fs.StringVar(&flagged.Direction, "direction", def.Direction, "tables to print: forward, inverse or both")
	fs.StringVar(&flagged.Variant, "variant", def.Variant, "measure a single variant, e.g. FWD_R4")
	fs.Var(&logN, "logn", "comma-separated log2 of the transform lengths")
	fs.IntVar(&logQ, "logq", defaultLogQ, "bit-size of the moduli, taken as the largest NTT-friendly prime below 2^logq")
	fs.BoolVar(&opts.list, "list", false, "print the compiled platforms and variants and exit")
	fs.BoolVar(&opts.verbose, "v", false, "log the full statistics of every measurement")

	if err = fs.Parse(args); err != nil {
		return
	}

	cfg = def
	if configPath != "" {
		if cfg, err = LoadConfig(configPath, def); err != nil {
			return
		}
	}

	casesSet := false

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "platform":
			cfg.Platform = flagged.Platform
		case "seed":
			cfg.Seed = flagged.Seed
		case "warmup":
			cfg.Warmup = flagged.Warmup
		case "runs":
			cfg.Runs = flagged.Runs
		case "unit":
			cfg.Unit = flagged.Unit
		case "direction":
			cfg.Direction = flagged.Direction
		case "variant":
			cfg.Variant = flagged.Variant
		case "logn", "logq":
			casesSet = true
		}
	})

	if casesSet {
		cfg.Cases = casesOf(logN, logQ)
	}

	err = cfg.Validate()

	return
}

func main() {

	cfg, opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	var logger *log.Logger
	if opts.verbose {
		logger = log.New(os.Stderr, "nttbench: ", log.LstdFlags)
	}

	if err = run(os.Stdout, cfg, opts, logger); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, cfg Config, opts options, logger *log.Logger) error {

	reg, err := bench.Resolve(cfg.Platform)
	if err != nil {
		return err
	}

	if !bench.Supported(reg.Capability()) {
		log.Printf("warning: %s is not supported by this CPU, running its portable kernels", reg.Capability())
	}

	if opts.list {
		return list(w, reg)
	}

	cases, err := cfg.TestCases(reg)
	if err != nil {
		return err
	}

	seed := []byte(cfg.Seed)
	if len(seed) == 0 {
		seed = sampling.RandBytes(sampling.KeySize)
		log.Printf("seed: %x", seed)
	}

	h := bench.NewHarness(reg, seed)
	h.Timer = cfg.Timer()
	h.Logger = logger

	unit, err := bench.ParseUnit(cfg.Unit)
	if err != nil {
		return err
	}

	if cfg.Variant != "" {
		id, err := bench.ParseVariantID(cfg.Variant)
		if err != nil {
			return err
		}
		return runSingle(w, h, cases, id, unit)
	}

	forward, inverse := true, true
	if cfg.Direction != directionAll {
		d, err := bench.ParseDirection(cfg.Direction)
		if err != nil {
			return err
		}
		forward, inverse = d == bench.Forward, d == bench.Inverse
	}

	if forward {
		if err = runTable(w, bench.ForwardTable(reg), cases, h.RunForward, unit); err != nil {
			return err
		}
	}

	if forward && inverse {
		fmt.Fprintln(w)
	}

	if inverse {
		if err = runTable(w, bench.InverseTable(reg), cases, h.RunInverse, unit); err != nil {
			return err
		}
	}

	return nil
}

func runTable(w io.Writer, table bench.Table, cases []*bench.TestCase, measure func(*bench.TestCase) (bench.Row, error), unit bench.Unit) (err error) {

	r := bench.NewReporter(w, table, unit)

	if err = r.PrintHeader(); err != nil {
		return
	}

	for _, tc := range cases {

		var row bench.Row
		if row, err = measure(tc); err != nil {
			return
		}

		if err = r.PrintRow(row); err != nil {
			return
		}
	}

	return
}

func runSingle(w io.Writer, h *bench.Harness, cases []*bench.TestCase, id bench.VariantID, unit bench.Unit) (err error) {
	for _, tc := range cases {

		var c bench.Cell
		if c, err = h.RunSingle(tc, id); err != nil {
			return
		}

		if _, err = fmt.Fprintf(w, "%3d %#18x %s %s %s\n", tc.M, tc.Q, c.Variant, unit.Format(c.Measurement.Median), unit); err != nil {
			return
		}
	}
	return
}

func list(w io.Writer, reg *bench.Registry) (err error) {

	var b strings.Builder

	fmt.Fprintf(&b, "compiled:")
	for _, c := range bench.Compiled() {
		fmt.Fprintf(&b, " %s", c)
	}
	fmt.Fprintf(&b, "\ndetected: %s\nactive:   %s\n", bench.Detect(), reg.Capability())

	for _, d := range []bench.Direction{bench.Forward, bench.Inverse} {
		for _, v := range reg.Variants(d) {
			lazy := ""
			if v.Lazy {
				lazy = " lazy"
			}
			fmt.Fprintf(&b, "%-7s %-28s %s%s\n", d, v.ID, v.Label, lazy)
		}
	}

	_, err = io.WriteString(w, b.String())
	return
}
