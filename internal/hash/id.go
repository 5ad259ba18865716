// Package hash computes the FNV-1a 64-bit identifier used to key send
// properties (spec.md §4.1). The standard offset basis and prime are exactly
// those of Go's hash/fnv implementation, so no custom arithmetic is needed.
package hash

import "hash/fnv"

// ID feeds each of parts into an FNV-1a 64 hasher, in order, with no
// separator or length prefix between them, and returns the final digest.
// Hashing "table", "prop" this way is equivalent to hashing their
// concatenation, which is what SendPropIdentifier relies on.
func ID(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
	}

	return h.Sum64()
}
