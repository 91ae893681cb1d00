package adaptive

import "github.com/guancheng-lai/leveldb-ACKey/lrucache"

// PointCache composes two AdaptiveCaches for the competing planes of an
// embedded engine's point-lookup path: kv (materialized values) and kp
// (pointers/indirections to them). The optimal split between the two is
// workload-dependent, so AdjustCapacity rebalances across planes the same
// charge-weighted way AdaptiveCache rebalances real vs. ghost within a
// plane — the ghost-hit signal that drives it is supplied externally by the
// caller.
type PointCache struct {
	kv *AdaptiveCache
	kp *AdaptiveCache
}

// NewPointCache builds a PointCache with capacity split evenly between the
// KV and KP planes.
func NewPointCache(capacity int64) *PointCache {
	return &PointCache{
		kv: NewAdaptiveCache(capacity / 2),
		kp: NewAdaptiveCache(capacity / 2),
	}
}

func (p *PointCache) InsertKV(key lrucache.Key, value any, charge int64, deleter lrucache.Deleter) lrucache.Handle {
	return p.kv.Insert(key, value, charge, deleter)
}

func (p *PointCache) InsertKP(key lrucache.Key, value any, charge int64, deleter lrucache.Deleter) lrucache.Handle {
	return p.kp.Insert(key, value, charge, deleter)
}

func (p *PointCache) LookupKV(key lrucache.Key, ghostHit *int64) (lrucache.Handle, bool) {
	return p.kv.LookupGhost(key, ghostHit)
}

func (p *PointCache) LookupKP(key lrucache.Key, ghostHit *int64) (lrucache.Handle, bool) {
	return p.kp.LookupGhost(key, ghostHit)
}

func (p *PointCache) ValueKV(h lrucache.Handle) any { return p.kv.Value(h) }
func (p *PointCache) ValueKP(h lrucache.Handle) any { return p.kp.Value(h) }

func (p *PointCache) ReleaseKV(h lrucache.Handle) { p.kv.Release(h) }
func (p *PointCache) ReleaseKP(h lrucache.Handle) { p.kp.Release(h) }

// TotalCharge is the sum of both planes' charge.
func (p *PointCache) TotalCharge() int64 { return p.kv.TotalCharge() + p.kp.TotalCharge() }

// TotalKVCharge and TotalKPCharge expose each plane's charge alone.
func (p *PointCache) TotalKVCharge() int64 { return p.kv.TotalCharge() }
func (p *PointCache) TotalKPCharge() int64 { return p.kp.TotalCharge() }

// AdjustCapacity rebalances a capacity delta across the KV and KP planes in
// proportion to their current charge: ratio = kv/kp, KV gets
// delta*ratio/(1+ratio), KP gets delta/(1+ratio). When KP is empty the
// ratio is undefined (division by zero); the full delta then goes to KV,
// mirroring AdaptiveCache.AdjustCapacity's real-charge-zero rule.
func (p *PointCache) AdjustCapacity(delta int64) {
	kpCharge := p.TotalKPCharge()
	if kpCharge == 0 {
		p.kv.AdjustCapacity(delta)
		return
	}
	ratio := float64(p.TotalKVCharge()) / float64(kpCharge)
	p.kv.AdjustCapacity(int64(float64(delta) * ratio / (1.0 + ratio)))
	p.kp.AdjustCapacity(int64(float64(delta) / (1.0 + ratio)))
}

// AdjustKVCapacity and AdjustKPCapacity adjust one plane directly, bypassing
// the cross-plane rebalance.
func (p *PointCache) AdjustKVCapacity(delta int64) { p.kv.AdjustCapacity(delta) }
func (p *PointCache) AdjustKPCapacity(delta int64) { p.kp.AdjustCapacity(delta) }

// GetKVCapacity and GetKPCapacity expose each plane's capacity (§4.6
// expansion note), matching PointCache::GetKVCapacity/GetKPCapacity in the original
// source.
func (p *PointCache) GetKVCapacity() int64 { return p.kv.GetCapacity() }
func (p *PointCache) GetKPCapacity() int64 { return p.kp.GetCapacity() }

// KVCache and KPCache expose the underlying AdaptiveCaches, matching
// PointCache::kvCache/kpCache in the original source — used by the
// telemetry sampler for per-plane ghost-hit accounting.
func (p *PointCache) KVCache() *AdaptiveCache { return p.kv }
func (p *PointCache) KPCache() *AdaptiveCache { return p.kp }
