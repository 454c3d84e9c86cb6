// Package sampling implements the sampling of random bytes used to
// generate benchmark inputs.
package sampling

import (
	"crypto/rand"
)

// RandBytes returns n bytes read from the system's secure random source.
func RandBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
