package bench

import (
	"fmt"

	"github.com/tuneinsight/nttbench/utils"
)

// Capability names a platform family of kernel variants.
type Capability int

const (
	// Generic is the architecture-independent baseline, always compiled.
	Generic = Capability(iota)
	// S390XVectorFacility is the s390x vector-facility family.
	S390XVectorFacility
	// AVX512IFMA is the amd64 AVX-512 IFMA family.
	AVX512IFMA
)

// Auto is the platform name requesting CPU detection.
const Auto = "auto"

var capabilityNames = [...]string{
	Generic:             "generic",
	S390XVectorFacility: "s390x-vef",
	AVX512IFMA:          "avx512-ifma",
}

func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return fmt.Sprintf("Capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// ParseCapability returns the Capability of the given name.
func ParseCapability(name string) (Capability, error) {
	for i, s := range capabilityNames {
		if s == name {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q", name)
}

// platform is the set of variants of a capability and the hooks building
// their auxiliary tables.
type platform struct {
	// supported reports whether the CPU executing the process has the capability.
	supported func() bool

	forward     []Variant
	forwardLazy []Variant
	inverse     []Variant

	// precompute populates the architecture-specific tables of tc.
	precompute func(tc *TestCase) error
}

// platforms holds the families compiled in this build, registered by init.
var platforms = map[Capability]platform{}

func registerPlatform(c Capability, p platform) {
	if _, ok := platforms[c]; ok {
		panic(fmt.Errorf("platform %s registered twice", c))
	}
	platforms[c] = p
}

// Compiled returns the capabilities compiled in this build, in increasing order.
func Compiled() []Capability {
	return utils.GetSortedKeys(platforms)
}

// Detect returns the most specific compiled capability supported by the CPU
// executing the process.
func Detect() Capability {
	best := Generic
	for _, c := range Compiled() {
		if platforms[c].supported() {
			best = c
		}
	}
	return best
}

// Supported reports whether c is compiled and supported by the CPU
// executing the process.
func Supported(c Capability) bool {
	p, ok := platforms[c]
	return ok && p.supported()
}
