// Package telemetry periodically samples one or more adaptive caches and
// reports the per-interval deltas through structured logging and,
// optionally, a metrics.Sink — grounded on the ticker-driven
// snapshot-and-delta logger the rest of the retrieved pack uses for exactly
// this kind of ambient cache reporting.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/guancheng-lai/leveldb-ACKey/metrics"
)

// Logger runs a background sampling loop until Close.
type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs is a Logger that logs via slog and forwards the same deltas to an
// optional metrics.Sink.
type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	clock    clock.Clock
	sink     metrics.Sink
	sampler  sampler
	interval time.Duration
	done     chan struct{}
}

// New starts a Logs sampling every interval. sink may be nil, in which case
// samples are only logged, not forwarded. clk may be nil, in which case the
// real wall clock drives the ticker; tests inject clock.NewMock().
func New(ctx context.Context, logger *slog.Logger, clk clock.Clock, sink metrics.Sink, interval time.Duration, targets ...Target) *Logs {
	if clk == nil {
		clk = clock.New()
	}
	if sink == nil {
		sink = metrics.NoopSink{}
	}
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		clock:    clk,
		sink:     sink,
		sampler:  newSampler(targets...),
		interval: interval,
		done:     make(chan struct{}),
	}
	go l.loop()
	return l
}

func (l *Logs) Interval() time.Duration { return l.interval }

// Close stops the sampling loop and waits for it to exit.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) loop() {
	defer close(l.done)

	ticker := l.clock.Ticker(l.interval)
	defer ticker.Stop()

	prev := l.sampler.snapshot()
	l.report(prev)

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			cur := l.sampler.snapshot()
			d := deltaSnapshots(prev, cur)
			prev = cur
			l.report(d)
		}
	}
}

func (l *Logs) report(deltas []snapshot) {
	for _, d := range deltas {
		l.sink.Hits(d.name, d.hits)
		l.sink.Misses(d.name, d.misses)
		l.sink.GhostHits(d.name, d.ghostHits)
		l.sink.Evictions(d.name, d.evicts)
		l.sink.Size(d.name, d.realCharge, d.ghostCharge, d.capacity)

		l.logger.Info("cache",
			"name", d.name,
			"interval", l.interval.String(),
			"hits", d.hits,
			"misses", d.misses,
			"ghost_hits", d.ghostHits,
			"evictions", d.evicts,
			"real_charge", d.realCharge,
			"ghost_charge", d.ghostCharge,
			"capacity", d.capacity,
		)
	}
}

var _ Logger = (*Logs)(nil)
