package sampling

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// KeySize is the byte size of the keys returned by DeriveKey.
const KeySize = 32

// DeriveKey derives a KeySize-byte PRNG key from a seed and a list of labels.
// The same seed and labels always yield the same key.
func DeriveKey(seed []byte, labels ...uint64) []byte {
	hasher := blake3.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(seed)))
	hasher.Write(buf[:])
	hasher.Write(seed)

	for _, label := range labels {
		binary.BigEndian.PutUint64(buf[:], label)
		hasher.Write(buf[:])
	}

	return hasher.Sum(nil)[:KeySize]
}
