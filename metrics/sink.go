// Package metrics defines the cache core's external, optional metrics
// contract: a process-wide accumulator is explicitly out of scope for the
// cache's correctness, so this package models metrics as an injected sink a
// sampler calls periodically, never as a dependency the cache core itself
// imports.
package metrics

// Sink receives periodic, cumulative-delta samples of cache activity. Every
// method reports the count observed *since the previous sample* for the
// named cache instance (e.g. "block", "point.kv", "point.kp") — not a
// running total — so sinks like metrics/prom.Adapter can simply Add() them
// into a counter.
type Sink interface {
	Hits(cache string, n int64)
	Misses(cache string, n int64)
	GhostHits(cache string, n int64)
	Evictions(cache string, n int64)

	// Size reports a point-in-time sample, not a delta: the real and ghost
	// charge currently resident, and the cache's current capacity.
	Size(cache string, real, ghost, capacity int64)
}

// NoopSink discards every sample. It is the default so that correctness
// never depends on a sink being configured.
type NoopSink struct{}

func (NoopSink) Hits(string, int64)               {}
func (NoopSink) Misses(string, int64)             {}
func (NoopSink) GhostHits(string, int64)          {}
func (NoopSink) Evictions(string, int64)          {}
func (NoopSink) Size(string, int64, int64, int64) {}

var _ Sink = NoopSink{}
