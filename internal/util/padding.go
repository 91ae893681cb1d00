// Package util holds the cache-line padding used to keep the per-shard
// hit/miss/evict counters and the ghost-hit counter from false-sharing a
// cache line with their neighbors under concurrent atomic increments.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"sync/atomic"
	"unsafe"
)

// cacheLineSize is a reasonable default for most modern CPUs. 64 works well
// in practice; std has runtime/internal/sys.CacheLineSize but it's unexported.
const cacheLineSize = 64

// PaddedAtomicInt64 is an atomic int64 padded to exactly one cache line.
// ShardedLRU's per-shard hits/misses/evicts counters and AdaptiveCache's
// ghostHits counter are each one of these, so that many goroutines bumping
// different counters concurrently never contend over a shared cache line.
type PaddedAtomicInt64 struct {
	atomic.Int64
	_ [cacheLineSize - 8]byte // 8 = size of int64; pad to 64 bytes
}

var _ [cacheLineSize - int(unsafe.Sizeof(PaddedAtomicInt64{}))]byte
