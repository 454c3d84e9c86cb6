package bench

import (
	"fmt"
)

// VariantID identifies a kernel variant.
type VariantID int

// Identifiers of the variants.
const (
	FwdRef = VariantID(iota)
	FwdSEAL
	FwdR4
	FwdR4x4
	FwdR4VMSL
	FwdR4HEXL
	FwdR4AVX512IFMA
	FwdR4AVX512IFMAUnordered
	FwdR4R2AVX512IFMA
	FwdR2R16AVX512IFMA
	FwdRefDouble
	FwdR4VMSLDouble
	FwdRefLazy
	FwdSEALLazy
	FwdR4Lazy
	FwdR4VMSLLazy
	InvRef
	InvSEAL
	InvR4
	InvR4VMSL
)

var variantNames = [...]string{
	FwdRef:                   "FWD_REF",
	FwdSEAL:                  "FWD_SEAL",
	FwdR4:                    "FWD_R4",
	FwdR4x4:                  "FWD_R4x4",
	FwdR4VMSL:                "FWD_R4_VMSL",
	FwdR4HEXL:                "FWD_R4_HEXL",
	FwdR4AVX512IFMA:          "FWD_R4_AVX512_IFMA",
	FwdR4AVX512IFMAUnordered: "FWD_R4_AVX512_IFMA_UNORDERED",
	FwdR4R2AVX512IFMA:        "FWD_R4R2_AVX512_IFMA",
	FwdR2R16AVX512IFMA:       "FWD_R2_R16_AVX512_IFMA",
	FwdRefDouble:             "FWD_REF_DBL",
	FwdR4VMSLDouble:          "FWD_R4_VMSL_DBL",
	FwdRefLazy:               "FWD_REF_LAZY",
	FwdSEALLazy:              "FWD_SEAL_LAZY",
	FwdR4Lazy:                "FWD_R4_LAZY",
	FwdR4VMSLLazy:            "FWD_R4_VMSL_LAZY",
	InvRef:                   "INV_REF",
	InvSEAL:                  "INV_SEAL",
	InvR4:                    "INV_R4",
	InvR4VMSL:                "INV_R4_VMSL",
}

// VariantIDs returns all the variant identifiers, whether or not they are
// compiled in this build.
func VariantIDs() (ids []VariantID) {
	ids = make([]VariantID, len(variantNames))
	for i := range ids {
		ids[i] = VariantID(i)
	}
	return
}

func (id VariantID) String() string {
	if id < 0 || int(id) >= len(variantNames) {
		return fmt.Sprintf("VariantID(%d)", int(id))
	}
	return variantNames[id]
}

// ParseVariantID returns the VariantID of the given name, e.g. "FWD_R4".
func ParseVariantID(name string) (VariantID, error) {
	for i, s := range variantNames {
		if s == name {
			return VariantID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", name)
}

// Direction is the direction of a transform.
type Direction int

const (
	Forward = Direction(iota)
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection returns the Direction of the given name: "forward"/"fwd"
// or "inverse"/"inv".
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "forward", "fwd":
		return Forward, nil
	case "inverse", "inv":
		return Inverse, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", name)
	}
}

// Variant is a kernel of package ntt bound to the tables of a TestCase it consumes.
type Variant struct {
	ID        VariantID
	Label     string
	Direction Direction
	// Lazy variants return values in [0, 4q-1].
	Lazy bool
	// Double variants transform a second buffer alongside the first one.
	Double bool

	run func(tc *TestCase, a, b []uint64)
}

// Run invokes the kernel on a (and b for double variants) with the tables of tc.
func (v Variant) Run(tc *TestCase, a, b []uint64) {
	v.run(tc, a, b)
}

func (v Variant) String() string {
	return fmt.Sprintf("%s(%s)", v.ID, v.Label)
}
