package bench

import (
	"fmt"
	"log"

	"github.com/tuneinsight/nttbench/ring"
	"github.com/tuneinsight/nttbench/utils/sampling"
)

// Harness measures the variants of a Registry.
type Harness struct {
	Registry *Registry
	Timer    Timer
	// Seed keys the generation of the input buffers: the input of a case is
	// a deterministic function of (Seed, M, Q).
	Seed []byte
	// Logger, if not nil, receives the full statistics of every measurement.
	Logger *log.Logger
}

// NewHarness returns a Harness over reg with the DefaultTimer.
func NewHarness(reg *Registry, seed []byte) *Harness {
	return &Harness{Registry: reg, Timer: DefaultTimer, Seed: seed}
}

// Cell is the measurement of one variant.
type Cell struct {
	Variant     Variant
	Measurement Measurement
}

// Row is the measurements of one case, in the column order of the registry.
type Row struct {
	M     int
	Q     uint64
	Cells []Cell
}

// Pass owns the buffers of the measurement of one case: the buffer handed to
// the variants, the auxiliary buffer of the double variants and the
// canonical input, which is never mutated.
type Pass struct {
	h         *Harness
	tc        *TestCase
	buffer    []uint64
	aux       []uint64
	canonical []uint64
}

// NewPass generates the canonical input of tc, uniformly distributed in
// [0, Q-1], and returns a Pass over it.
func (h *Harness) NewPass(tc *TestCase) (*Pass, error) {

	prng, err := sampling.NewKeyedPRNG(h.Seed, uint64(tc.M), tc.Q)
	if err != nil {
		return nil, fmt.Errorf("cannot NewPass: %w", err)
	}

	p := &Pass{
		h:         h,
		tc:        tc,
		canonical: ring.NewUniformSampler(prng, tc.Q).ReadNew(tc.N),
		buffer:    make([]uint64, tc.N),
		aux:       make([]uint64, tc.N),
	}

	restore(p.buffer, p.aux, p.canonical)

	return p, nil
}

// Input returns a copy of the canonical input of the pass.
func (p *Pass) Input() []uint64 {
	return append([]uint64{}, p.canonical...)
}

// Measure measures v on the case of the pass.
func (p *Pass) Measure(v Variant) Measurement {

	m := MeasureVariant(p.h.Timer, p.buffer, p.aux, p.canonical, v, p.tc)

	if p.h.Logger != nil {
		p.h.Logger.Printf("%s %s: %s", p.tc, v, m)
	}

	return m
}

// MeasureByID measures the variant of the given identifier on the case of the pass.
// Returns an error wrapping ErrUnsupportedVariant, and leaves the buffers
// untouched, if the identifier is not registered for the active capability.
func (p *Pass) MeasureByID(id VariantID) (Cell, error) {

	v, err := p.h.Registry.Lookup(id)
	if err != nil {
		return Cell{}, err
	}

	return Cell{Variant: v, Measurement: p.Measure(v)}, nil
}

// restore copies canonical into buffer and, if not nil, into aux.
func restore(buffer, aux, canonical []uint64) {
	copy(buffer, canonical)
	if aux != nil {
		copy(aux, canonical)
	}
}

// MeasureVariant times v on buffer with the tables of tc.
// buffer and aux are restored from canonical before every call, outside of
// the timed region, and once more when MeasureVariant returns, including
// when v panics, in which case the panic is propagated.
// aux is handed to v as its second buffer and may be nil for variants that
// are not Double.
func MeasureVariant(timer Timer, buffer, aux, canonical []uint64, v Variant, tc *TestCase) Measurement {

	defer restore(buffer, aux, canonical)

	return timer.Measure(
		func() { restore(buffer, aux, canonical) },
		func() { v.Run(tc, buffer, aux) },
	)
}

func (h *Harness) run(tc *TestCase, variants []Variant) (row Row, err error) {

	p, err := h.NewPass(tc)
	if err != nil {
		return Row{}, err
	}

	row = Row{M: tc.M, Q: tc.Q, Cells: make([]Cell, len(variants))}

	for i, v := range variants {
		row.Cells[i] = Cell{Variant: v, Measurement: p.Measure(v)}
	}

	return
}

// RunForward measures every forward variant of the registry, non-lazy then
// lazy, on tc.
func (h *Harness) RunForward(tc *TestCase) (Row, error) {
	return h.run(tc, h.Registry.Variants(Forward))
}

// RunInverse measures every inverse variant of the registry on tc.
func (h *Harness) RunInverse(tc *TestCase) (Row, error) {
	return h.run(tc, h.Registry.Variants(Inverse))
}

// RunSingle measures the variant of the given identifier on tc.
// Returns an error wrapping ErrUnsupportedVariant if the identifier is not
// registered for the active capability.
func (h *Harness) RunSingle(tc *TestCase, id VariantID) (Cell, error) {

	if _, err := h.Registry.Lookup(id); err != nil {
		return Cell{}, err
	}

	p, err := h.NewPass(tc)
	if err != nil {
		return Cell{}, err
	}

	return p.MeasureByID(id)
}
