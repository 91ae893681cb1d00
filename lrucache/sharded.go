package lrucache

import (
	"sync"
	"sync/atomic"
)

// numShardBits is kNumShardBits from the original source: fixed at 4
// (16 shards). Kept a constant rather than a configurable constructor
// parameter — the fan-out is part of this cache's documented behavior, not
// a deployment knob.
const numShardBits = 4
const numShards = 1 << numShardBits

// capacityFloor mirrors the `8 << 18` (2MiB) floor below which a negative
// AdjustCapacity is refused outright.
const capacityFloor = 8 << 18

// ShardedLRU fans a cache out across numShards independently-locked
// LRUShards, selecting a shard by the top numShardBits of the key's 32-bit
// hash. It is the direct translation of LevelDB's ShardedLRUCache.
type ShardedLRU struct {
	shards [numShards]*LRUShard

	idMu   sync.Mutex
	lastID uint64

	totalCapacity atomic.Int64
}

// NewShardedLRU builds a ShardedLRU with capacity split evenly (ceil) across
// the fixed shard count.
func NewShardedLRU(capacity int64) *ShardedLRU {
	perShard := ceilDiv(capacity, numShards)
	c := &ShardedLRU{}
	for i := range c.shards {
		c.shards[i] = NewLRUShard(perShard)
	}
	c.totalCapacity.Store(capacity)
	return c
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// shardFor selects a shard by the hash's top numShardBits, independent of
// the low bits the in-shard hash table uses for bucket indexing.
func (c *ShardedLRU) shardFor(hash uint32) *LRUShard {
	return c.shards[hash>>(32-numShardBits)]
}

// Insert implements Cache.
func (c *ShardedLRU) Insert(key Key, value any, charge int64, deleter Deleter) Handle {
	hash := key.Hash()
	return c.shardFor(hash).Insert(key, value, charge, deleter, nil)
}

// InsertARC is the ghost-aware insert: entries evicted to make room are
// recorded into ghost (another *ShardedLRU) keyed by their original key,
// valued by their original charge.
func (c *ShardedLRU) InsertARC(key Key, value any, charge int64, ghost *ShardedLRU, deleter Deleter) Handle {
	hash := key.Hash()
	return c.shardFor(hash).Insert(key, value, charge, deleter, ghost)
}

// insertGhostCharge implements ghostRecorder: it records an evicted key's
// charge into this cache (acting as a ghost), with a nil deleter since the
// stored int64 needs no cleanup in Go. The returned handle is released at
// once, so the ghost entry sits on its shard's LRU list and can be evicted.
func (c *ShardedLRU) insertGhostCharge(key Key, hash uint32, charge int64) {
	s := c.shardFor(hash)
	s.Release(s.Insert(key, charge, 1, nil, nil))
}

// Lookup implements Cache.
func (c *ShardedLRU) Lookup(key Key) (Handle, bool) {
	hash := key.Hash()
	return c.shardFor(hash).Lookup(key, hash)
}

// Release implements Cache.
func (c *ShardedLRU) Release(h Handle) {
	c.shardFor(h.e.hash).Release(h)
}

// Value implements Cache.
func (c *ShardedLRU) Value(h Handle) any {
	return h.e.value
}

// Erase implements Cache.
func (c *ShardedLRU) Erase(key Key) {
	hash := key.Hash()
	c.shardFor(hash).Erase(key, hash)
}

// NewId returns a monotonically increasing id, guarded by its own mutex
// (kept separate from the shard locks so id allocation never contends with
// cache traffic).
func (c *ShardedLRU) NewId() uint64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.lastID++
	return c.lastID
}

// Prune implements Cache.
func (c *ShardedLRU) Prune() {
	for _, s := range c.shards {
		s.Prune()
	}
}

// TotalCharge sums each shard's usage. Since each shard is read under its
// own lock in turn, this is a monotonically-stale sum, not an atomic
// snapshot across the whole cache.
func (c *ShardedLRU) TotalCharge() int64 {
	var total int64
	for _, s := range c.shards {
		total += s.TotalCharge()
	}
	return total
}

// HitMissEvict sums every shard's cumulative hit/miss/eviction counters, for
// the telemetry sampler. Like TotalCharge, it is a monotonically-stale sum
// across shards read one at a time, not an atomic snapshot.
func (c *ShardedLRU) HitMissEvict() (hits, misses, evicts int64) {
	for _, s := range c.shards {
		h, m, e := s.hitMissEvict()
		hits += h
		misses += m
		evicts += e
	}
	return hits, misses, evicts
}

// GetCapacity returns the tracked total capacity.
func (c *ShardedLRU) GetCapacity() int64 {
	return c.totalCapacity.Load()
}

// AdjustCapacity distributes delta/numShards to every shard. A negative
// delta is refused outright once the tracked total capacity has already
// fallen below capacityFloor.
func (c *ShardedLRU) AdjustCapacity(delta int64) {
	if delta < 0 && c.totalCapacity.Load() < capacityFloor {
		return
	}
	per := delta / numShards
	for _, s := range c.shards {
		s.AdjustCapacity(per)
	}
	c.totalCapacity.Add(delta)
}
