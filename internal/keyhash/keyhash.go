// Package keyhash computes the 32-bit key hash the cache core sharding and
// hash-table indexing depend on.
package keyhash

import "github.com/zeebo/xxh3"

// Hash32 derives a 32-bit hash from b with seed 0, matching the external
// "hash function over byte slices" collaborator assumed by the cache core.
// It truncates xxh3's 64-bit seeded hash rather than reimplementing a
// narrower algorithm, since the cache only ever reads the low 32 bits
// (shard selection uses the high 4 of those, bucket indexing uses the rest).
func Hash32(b []byte) uint32 {
	return uint32(xxh3.HashSeed(b, 0))
}
