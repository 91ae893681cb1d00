// Package adaptive implements the ghost-shadowed cache layer: AdaptiveCache
// (real LRU + ghost LRU, charge-weighted capacity rebalancing), and the
// BlockCache/PointCache compositions built on it.
package adaptive

import (
	"sync"

	"github.com/guancheng-lai/leveldb-ACKey/internal/util"
	"github.com/guancheng-lai/leveldb-ACKey/lrucache"
)

// adjustThreshold is the accumulated-adjustment threshold (in charge units)
// that flushes a rebalance between real and ghost. Kept a named constant
// rather than a config knob: its sensitivity to workload is uncharacterized,
// and exposing an unstudied number as a tunable would just relocate the
// magic, not remove it.
const adjustThreshold = 4096

// AdaptiveCache augments a real sharded LRU with a ghost shadow cache that
// records recently evicted keys. Ghost hits are the caller's signal that the
// real cache is undersized for the current workload; AdjustCapacity uses the
// ghost/real charge ratio to decide how a future capacity delta should be
// split between the two.
//
// Lookup(key) (single-arg), Erase, and Prune are deliberately unsupported —
// calling them is a programming error, matching the C++ source's
// `assert(false)` bodies for the same three methods.
type AdaptiveCache struct {
	real  *lrucache.ShardedLRU
	ghost *lrucache.ShardedLRU

	mu                   sync.Mutex
	accumulateAdjustment int64

	ghostHits util.PaddedAtomicInt64
}

// NewAdaptiveCache builds an AdaptiveCache with capacity split evenly
// between the real cache and its ghost, matching
// AdaptiveCache::AdaptiveCache(capacity) in the original source.
func NewAdaptiveCache(capacity int64) *AdaptiveCache {
	return &AdaptiveCache{
		real:  lrucache.NewShardedLRU(capacity / 2),
		ghost: lrucache.NewShardedLRU(capacity / 2),
	}
}

// Insert routes to the real cache's ghost-aware InsertARC: entries evicted
// under capacity pressure are recorded into ghost, keyed by their original
// key and valued by their original charge.
func (a *AdaptiveCache) Insert(key lrucache.Key, value any, charge int64, deleter lrucache.Deleter) lrucache.Handle {
	return a.real.InsertARC(key, value, charge, a.ghost, deleter)
}

// LookupGhost looks up key in the real cache first. On a real miss it falls
// back to the ghost cache; if found there, *ghostHit is set to the evicted
// entry's original charge and the ghost handle is released immediately.
// ghostHit is left untouched on a real hit or a total miss. The returned
// Handle is always the real cache's handle (or invalid on any kind of miss);
// ghost handles are never surfaced to callers.
//
// Named distinctly from a single-argument Lookup (which this type does not
// declare at all, see below) since Go has no overloading by argument count,
// unlike the two `Lookup` overloads the original C++ source declares.
func (a *AdaptiveCache) LookupGhost(key lrucache.Key, ghostHit *int64) (lrucache.Handle, bool) {
	if h, ok := a.real.Lookup(key); ok {
		return h, true
	}
	gh, ok := a.ghost.Lookup(key)
	if !ok {
		return lrucache.Handle{}, false
	}
	a.ghostHits.Add(1)
	if ghostHit != nil {
		*ghostHit = a.ghost.Value(gh).(int64)
	}
	a.ghost.Release(gh)
	return lrucache.Handle{}, false
}

// GhostHits returns the cumulative count of Lookups that missed the real
// cache but found their key in ghost, for the telemetry sampler.
func (a *AdaptiveCache) GhostHits() int64 { return a.ghostHits.Load() }

// Release delegates to the real cache.
func (a *AdaptiveCache) Release(h lrucache.Handle) { a.real.Release(h) }

// Value delegates to the real cache.
func (a *AdaptiveCache) Value(h lrucache.Handle) any { return a.real.Value(h) }

// NewId delegates to the real cache.
func (a *AdaptiveCache) NewId() uint64 { return a.real.NewId() }

// TotalCharge is the sum of the real and ghost caches' charge.
func (a *AdaptiveCache) TotalCharge() int64 {
	return a.real.TotalCharge() + a.ghost.TotalCharge()
}

// TotalRealCharge is the real cache's charge alone.
func (a *AdaptiveCache) TotalRealCharge() int64 { return a.real.TotalCharge() }

// TotalGhostCharge is the ghost cache's charge alone.
func (a *AdaptiveCache) TotalGhostCharge() int64 { return a.ghost.TotalCharge() }

// GetCapacity returns the real cache's capacity (the ghost's capacity is an
// implementation detail of the rebalancer, not part of the advertised
// capacity), matching AdaptiveCache::GetCapacity in the original source.
func (a *AdaptiveCache) GetCapacity() int64 { return a.real.GetCapacity() }

// AdjustCapacity accumulates delta under a dedicated mutex purely as a
// threshold gate: once the absolute accumulation exceeds adjustThreshold,
// the accumulator resets to 0 and this call's own delta (not the
// accumulated total) is split as a charge-weighted ratio between real and
// ghost, matching AdaptiveCache::AdjustCapacity in the original source,
// which splits `adjustment` (the parameter) on the triggering call and
// simply discards whatever the prior sub-threshold calls contributed beyond
// serving as the trigger. When the real cache is still empty (charge 0),
// the full delta goes to real: this lets a cold real cache start admitting
// entries instead of growing an already-populated ghost further.
func (a *AdaptiveCache) AdjustCapacity(delta int64) {
	a.mu.Lock()
	a.accumulateAdjustment += delta
	flush := a.accumulateAdjustment > adjustThreshold || a.accumulateAdjustment < -adjustThreshold
	if flush {
		a.accumulateAdjustment = 0
	}
	a.mu.Unlock()

	if !flush {
		return
	}

	realCharge := a.real.TotalCharge()
	if realCharge == 0 {
		a.real.AdjustCapacity(delta)
		return
	}
	ghostCharge := a.ghost.TotalCharge()
	ratio := float64(ghostCharge) / float64(realCharge)
	ghostDelta := int64(float64(delta) * ratio / (ratio + 1.0))
	realDelta := int64(float64(delta) / (ratio + 1.0))
	a.ghost.AdjustCapacity(ghostDelta)
	a.real.AdjustCapacity(realDelta)
}

// A single-argument Lookup, Erase, and Prune have no valid contract on
// AdaptiveCache: calling them is a programming error, which the original
// source enforces with assert(false) method bodies. Go's type system gives a
// stronger enforcement for free: AdaptiveCache simply never declares those
// methods, so a caller who tries to use it as a plain lrucache.Cache (which
// does declare them) gets a compile error instead of a runtime assertion.
// That is why no Erase/Prune/single-arg-Lookup stubs appear on this type.

// Stats returns the cumulative counters the telemetry sampler needs: the
// real cache's hits/misses/evictions, and the count of Lookups that fell
// through to a ghost hit.
func (a *AdaptiveCache) Stats() (realHits, realMisses, realEvicts, ghostHits int64) {
	realHits, realMisses, realEvicts = a.real.HitMissEvict()
	return realHits, realMisses, realEvicts, a.GhostHits()
}

// realCache and ghostCache expose the two underlying ShardedLRUs, matching
// AdaptiveCache::realCache/ghostCache in the original source. Only the
// package's tests call them, to read each layer's capacity separately.
func (a *AdaptiveCache) realCache() *lrucache.ShardedLRU  { return a.real }
func (a *AdaptiveCache) ghostCache() *lrucache.ShardedLRU { return a.ghost }
