package sampling

import (
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a source of random bytes.
type PRNG interface {
	io.Reader
}

// KeyedPRNG is a blake2b XOF keyed by DeriveKey(seed, labels...).
// The same seed and labels always yield the same stream of bytes, so a
// benchmark case regenerates the same input in every run that shares the seed.
// A KeyedPRNG must not be read from several goroutines.
type KeyedPRNG struct {
	xof blake2b.XOF
}

// NewKeyedPRNG returns the KeyedPRNG of seed and labels.
// Labels are hashed in order: (1, 2) and (2, 1) give different streams.
func NewKeyedPRNG(seed []byte, labels ...uint64) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, DeriveKey(seed, labels...))
	if err != nil {
		return nil, fmt.Errorf("cannot NewKeyedPRNG: %w", err)
	}
	return &KeyedPRNG{xof: xof}, nil
}

// Read fills sum with the next len(sum) bytes of the stream.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}
