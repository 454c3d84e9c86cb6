package bench

import (
	"fmt"
)

// Registry is the closed set of variants of one capability, in the column
// order of the reports. It is resolved once and read-only afterwards.
type Registry struct {
	capability  Capability
	forward     []Variant
	forwardLazy []Variant
	inverse     []Variant
	byID        map[VariantID]Variant
	precompute  func(tc *TestCase) error
}

// NewRegistry returns the Registry of the given capability.
// Returns an error wrapping ErrCapabilityNotCompiled if the capability is
// not compiled in this build. The capability is not required to be supported
// by the CPU.
func NewRegistry(c Capability) (*Registry, error) {

	p, ok := platforms[c]
	if !ok {
		return nil, fmt.Errorf("%s: %w", c, ErrCapabilityNotCompiled)
	}

	r := &Registry{
		capability:  c,
		forward:     p.forward,
		forwardLazy: p.forwardLazy,
		inverse:     p.inverse,
		byID:        map[VariantID]Variant{},
		precompute:  p.precompute,
	}

	for _, vs := range [][]Variant{r.forward, r.forwardLazy, r.inverse} {
		for _, v := range vs {
			if _, ok := r.byID[v.ID]; ok {
				panic(fmt.Errorf("variant %s registered twice for %s", v.ID, c))
			}
			r.byID[v.ID] = v
		}
	}

	return r, nil
}

// Resolve returns the Registry of the named platform: "auto" (or the empty
// string) selects the capability returned by Detect, any other name must be
// a compiled capability.
func Resolve(name string) (*Registry, error) {

	if name == "" || name == Auto {
		return NewRegistry(Detect())
	}

	c, err := ParseCapability(name)
	if err != nil {
		return nil, err
	}

	return NewRegistry(c)
}

// Capability returns the capability of the registry.
func (r *Registry) Capability() Capability {
	return r.capability
}

// Forward returns the non-lazy forward variants in column order.
func (r *Registry) Forward() []Variant {
	return append([]Variant{}, r.forward...)
}

// ForwardLazy returns the lazy forward variants in column order.
func (r *Registry) ForwardLazy() []Variant {
	return append([]Variant{}, r.forwardLazy...)
}

// Inverse returns the inverse variants in column order.
func (r *Registry) Inverse() []Variant {
	return append([]Variant{}, r.inverse...)
}

// Variants returns all the variants of the given direction in column order.
func (r *Registry) Variants(d Direction) []Variant {
	if d == Inverse {
		return r.Inverse()
	}
	return append(r.Forward(), r.forwardLazy...)
}

// Lookup returns the variant of the given identifier.
// Returns an error wrapping ErrUnsupportedVariant if the identifier is not
// registered for the capability of the registry.
func (r *Registry) Lookup(id VariantID) (Variant, error) {
	v, ok := r.byID[id]
	if !ok {
		return Variant{}, fmt.Errorf("%s on %s: %w", id, r.capability, ErrUnsupportedVariant)
	}
	return v, nil
}
