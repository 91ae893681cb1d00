package telemetry

// Sampled is the subset of adaptive.AdaptiveCache (and its BlockCache
// wrapper) the sampler needs. adaptive.AdaptiveCache, adaptive.BlockCache,
// and the values returned by adaptive.PointCache's KVCache/KPCache all
// satisfy it.
type Sampled interface {
	Stats() (hits, misses, evicts, ghostHits int64)
	TotalRealCharge() int64
	TotalGhostCharge() int64
	GetCapacity() int64
}

// Target pairs a label (e.g. "block", "point.kv") with the cache it names,
// for both the sampler and any metrics.Sink the logger forwards to.
type Target struct {
	Name  string
	Cache Sampled
}

type sampler struct {
	targets []Target
}

func newSampler(targets ...Target) sampler {
	return sampler{targets: targets}
}

// snapshot holds one named cache's cumulative counters, read at one instant.
type snapshot struct {
	name                    string
	hits, misses            int64
	evicts, ghostHits       int64
	realCharge, ghostCharge int64
	capacity                int64
}

func (s sampler) snapshot() []snapshot {
	out := make([]snapshot, len(s.targets))
	for i, t := range s.targets {
		hits, misses, evicts, ghostHits := t.Cache.Stats()
		out[i] = snapshot{
			name:        t.Name,
			hits:        hits,
			misses:      misses,
			evicts:      evicts,
			ghostHits:   ghostHits,
			realCharge:  t.Cache.TotalRealCharge(),
			ghostCharge: t.Cache.TotalGhostCharge(),
			capacity:    t.Cache.GetCapacity(),
		}
	}
	return out
}

// delta returns cur's per-interval counters relative to prev (matched by
// position; both come from the same sampler, so the order is the same). Charge/capacity fields are point-in-time, not deltas,
// and are copied from cur as-is. If a counter went backwards (e.g. a
// process restart the caller didn't detect), cur is treated as the delta.
func deltaSnapshots(prev, cur []snapshot) []snapshot {
	out := make([]snapshot, len(cur))
	for i, c := range cur {
		p := prev[i]
		out[i] = snapshot{
			name:        c.name,
			hits:        delta(p.hits, c.hits),
			misses:      delta(p.misses, c.misses),
			evicts:      delta(p.evicts, c.evicts),
			ghostHits:   delta(p.ghostHits, c.ghostHits),
			realCharge:  c.realCharge,
			ghostCharge: c.ghostCharge,
			capacity:    c.capacity,
		}
	}
	return out
}

func delta(prev, cur int64) int64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
