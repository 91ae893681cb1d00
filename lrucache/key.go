package lrucache

import "github.com/guancheng-lai/leveldb-ACKey/internal/keyhash"

// Key is the cache core's stand-in for the "immutable borrow over contiguous
// bytes" key type the surrounding storage engine is assumed to provide. It
// is copied on Insert, so callers may reuse or mutate their source buffer
// once an Insert call returns.
type Key []byte

// Hash returns the key's 32-bit hash (seed 0), used for both shard selection
// and in-shard bucket indexing.
func (k Key) Hash() uint32 {
	return keyhash.Hash32(k)
}

// clone copies the key bytes so the entry's lifetime is independent of the
// caller's buffer.
func (k Key) clone() Key {
	c := make(Key, len(k))
	copy(c, k)
	return c
}

func (k Key) equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}
