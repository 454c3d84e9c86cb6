// Package bench implements a comparative benchmark harness for the NTT
// kernels of package ntt.
//
// A Registry resolves, once at start-up, the closed set of kernel variants
// compiled for the target architecture and supported by the CPU. A TestCase
// bundles the twiddle tables of one (N, Q) instance for every variant of the
// registry. A Harness measures the variants of a registry on a TestCase,
// restoring the input buffer from a canonical copy around every call so that
// all variants observe the same input, and a Reporter prints the measurements
// as column-aligned tables.
package bench

import (
	"errors"
)

var (
	// ErrUnsupportedVariant is returned when a variant identifier is not
	// registered for the active capability.
	ErrUnsupportedVariant = errors.New("variant not supported on this platform")

	// ErrCapabilityNotCompiled is returned when a capability is requested
	// whose kernels are not compiled in this build.
	ErrCapabilityNotCompiled = errors.New("capability not compiled in this build")
)
