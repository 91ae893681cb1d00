package config

// MetricsCfg groups the optional metrics.Sink backends. Any subsection left
// nil is simply not wired up; metrics.NoopSink covers the rest.
type MetricsCfg struct {
	// Prometheus, if set, exposes counters/gauges via metrics/prom.Adapter.
	Prometheus *PrometheusCfg `yaml:"prometheus"`

	// File, if set, accumulates a human-readable report via
	// metrics.FileSink, flushed on process shutdown.
	File *FileSinkCfg `yaml:"file"`
}

type PrometheusCfg struct {
	// Addr is the listen address for the /metrics HTTP endpoint, e.g. ":9090".
	Addr string `yaml:"addr"`

	// Namespace and Subsystem prefix every exported metric name.
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

func (cfg *PrometheusCfg) Enabled() bool { return cfg != nil }

type FileSinkCfg struct {
	// Path is the file the report is appended to.
	Path string `yaml:"path"`
}

func (cfg *FileSinkCfg) Enabled() bool { return cfg != nil }
