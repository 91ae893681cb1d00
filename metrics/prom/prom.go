// Package prom adapts metrics.Sink onto Prometheus client metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/guancheng-lai/leveldb-ACKey/metrics"
)

// Adapter implements metrics.Sink and exports Prometheus counters/gauges,
// dimensioned by a "cache" label so a single Adapter can serve a BlockCache
// and both planes of a PointCache ("block", "point.kv", "point.kp", ...).
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	ghostHits *prometheus.CounterVec
	evicts    *prometheus.CounterVec
	sizeReal  *prometheus.GaugeVec
	sizeGhost *prometheus.GaugeVec
	sizeCap   *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:     registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub: Prometheus namespace and subsystem
func New(reg prometheus.Registerer, ns, sub string) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"cache"}
	a := &Adapter{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "hits_total", Help: "Real-cache hits",
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "misses_total", Help: "Real-cache misses",
		}, labels),
		ghostHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "ghost_hits_total", Help: "Lookups resolved by the ghost shadow cache",
		}, labels),
		evicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "evictions_total", Help: "Capacity evictions from the real cache",
		}, labels),
		sizeReal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_real", Help: "Resident charge in the real cache",
		}, labels),
		sizeGhost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_ghost", Help: "Resident charge in the ghost cache",
		}, labels),
		sizeCap: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_capacity", Help: "Current real-cache capacity",
		}, labels),
	}
	reg.MustRegister(a.hits, a.misses, a.ghostHits, a.evicts, a.sizeReal, a.sizeGhost, a.sizeCap)
	return a
}

func (a *Adapter) Hits(cache string, n int64)      { a.hits.WithLabelValues(cache).Add(float64(n)) }
func (a *Adapter) Misses(cache string, n int64)    { a.misses.WithLabelValues(cache).Add(float64(n)) }
func (a *Adapter) GhostHits(cache string, n int64) { a.ghostHits.WithLabelValues(cache).Add(float64(n)) }
func (a *Adapter) Evictions(cache string, n int64) { a.evicts.WithLabelValues(cache).Add(float64(n)) }

func (a *Adapter) Size(cache string, real, ghost, capacity int64) {
	a.sizeReal.WithLabelValues(cache).Set(float64(real))
	a.sizeGhost.WithLabelValues(cache).Set(float64(ghost))
	a.sizeCap.WithLabelValues(cache).Set(float64(capacity))
}

var _ metrics.Sink = (*Adapter)(nil)
