package adaptive

import "github.com/guancheng-lai/leveldb-ACKey/lrucache"

// BlockCache is a thin wrapper over a single AdaptiveCache, carrying no
// additional state of its own, matching BlockCache's one-to-one delegation
// in the original source.
type BlockCache struct {
	bk *AdaptiveCache
}

// NewBlockCache builds a BlockCache with the given total capacity, split
// between its AdaptiveCache's real and ghost layers.
func NewBlockCache(capacity int64) *BlockCache {
	return &BlockCache{bk: NewAdaptiveCache(capacity)}
}

func (b *BlockCache) Insert(key lrucache.Key, value any, charge int64, deleter lrucache.Deleter) lrucache.Handle {
	return b.bk.Insert(key, value, charge, deleter)
}

// LookupGhost looks up key in the real cache, falling back to report a
// ghost hit's original charge through ghostHit on a real miss. This is the
// Go rendition of the original's overloaded two-argument `Lookup(key,
// ghostHit)`, distinctly named from the single-argument Lookup below since
// Go has no method overloading.
func (b *BlockCache) LookupGhost(key lrucache.Key, ghostHit *int64) (lrucache.Handle, bool) {
	return b.bk.LookupGhost(key, ghostHit)
}

// Lookup is the single-argument form BlockCache exposes for parity with the
// plain lrucache.Cache contract. BlockCache has no charge-blind notion of
// "found" separate from the ghost-aware lookup above: the original's own
// BlockCache::Lookup(key) just forwards into AdaptiveCache::Lookup(key),
// whose body is `assert(false)`. Calling it is a programming error, not a
// degraded hit.
func (b *BlockCache) Lookup(key lrucache.Key) (lrucache.Handle, bool) {
	panic("adaptive: BlockCache.Lookup(key) is unsupported; use LookupGhost")
}

// Erase is exposed for contract parity but, as AdaptiveCache declares no
// Erase at all, calling it is a programming error: entries leave the real cache only
// through capacity-driven eviction or a same-key re-insert, never an
// explicit Erase, so there is nothing for BlockCache to delegate this to.
func (b *BlockCache) Erase(key lrucache.Key) {
	panic("adaptive: BlockCache.Erase is unsupported")
}

func (b *BlockCache) Release(h lrucache.Handle) { b.bk.Release(h) }

func (b *BlockCache) Value(h lrucache.Handle) any { return b.bk.Value(h) }

func (b *BlockCache) NewId() uint64 { return b.bk.NewId() }

func (b *BlockCache) TotalCharge() int64 { return b.bk.TotalCharge() }

func (b *BlockCache) TotalRealCharge() int64 { return b.bk.TotalRealCharge() }

func (b *BlockCache) TotalGhostCharge() int64 { return b.bk.TotalGhostCharge() }

// Stats exposes the wrapped AdaptiveCache's cumulative counters for the
// telemetry sampler.
func (b *BlockCache) Stats() (hits, misses, evicts, ghostHits int64) { return b.bk.Stats() }

func (b *BlockCache) AdjustCapacity(delta int64) { b.bk.AdjustCapacity(delta) }

func (b *BlockCache) GetCapacity() int64 { return b.bk.GetCapacity() }
