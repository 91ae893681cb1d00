package config

// CacheCfg sizes one cache instance. CapacityBytes is the total charge
// budget passed to adaptive.NewBlockCache/NewPointCache — for AdaptiveCache
// this is split again between the real and ghost layers, so the effective
// resident budget is roughly half of CapacityBytes.
type CacheCfg struct {
	CapacityBytes int64 `yaml:"capacity_bytes"`
}

func (cfg *CacheCfg) Enabled() bool { return cfg != nil }
