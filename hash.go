package dtnsim

// hash.go implements a process-independent stable hash: successor-list
// ordering, Dijkstra tie-breaking, and route-ranking tuples must never
// depend on Go's randomized map/string hash seed. We use xxhash seeded
// explicitly, rather than the builtin hash/maps machinery, which reseeds
// per process.

import "github.com/cespare/xxhash/v2"

// DefaultHashSeed is used when a Simulator is not given an explicit seed.
// Any fixed value works; what matters is that it is fixed across runs.
const DefaultHashSeed uint64 = 0x646c6e736174

// stableHash returns a deterministic 64-bit hash of id, seeded by seed.
// Equal (id, seed) pairs hash identically on every process and every run.
func stableHash(id string, seed uint64) uint64 {
	var digest xxhash.Digest
	digest.Reset()
	var seedBytes [8]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	_, _ = digest.Write(seedBytes[:])
	_, _ = digest.WriteString(id)
	return digest.Sum64()
}
