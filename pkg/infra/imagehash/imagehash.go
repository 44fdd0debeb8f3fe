// Package imagehash computes a low-fidelity digest of input-image bytes for
// coarse duplicate detection. It is not perceptual and plays no part in
// risk scoring; events simply carry the digest so identical uploads can be
// spotted cheaply.
package imagehash

import "fmt"

const (
	djb2Seed = 5381

	// sampleStride keeps hashing cheap on large uploads; a low-fidelity
	// digest does not need every byte.
	sampleStride = 64
)

// Sum returns a rolling djb2 hash over a sampled subset of the data,
// rendered as a fixed-width hex string. Empty input yields an empty string.
func Sum(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var hash uint64 = djb2Seed
	for i := 0; i < len(data); i += sampleStride {
		hash = hash*33 + uint64(data[i])
	}
	// Fold in the length so truncations of the same image differ.
	hash = hash*33 + uint64(len(data))

	return fmt.Sprintf("%016x", hash)
}
