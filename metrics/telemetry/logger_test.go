package telemetry

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// recordingSink counts Hits calls (one per target per report), guarded by a
// mutex since Logs reports from its own background goroutine.
type recordingSink struct {
	mu      sync.Mutex
	samples int
}

func (r *recordingSink) Hits(string, int64)      { r.mu.Lock(); r.samples++; r.mu.Unlock() }
func (r *recordingSink) Misses(string, int64)    {}
func (r *recordingSink) GhostHits(string, int64) {}
func (r *recordingSink) Evictions(string, int64) {}
func (r *recordingSink) Size(string, int64, int64, int64) {}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.samples
}

func TestLogs_SamplesOnEveryTick(t *testing.T) {
	mock := clock.NewMock()
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := &fakeCache{hits: 1}

	l := New(context.Background(), logger, mock, sink, time.Second, Target{Name: "x", Cache: c})
	defer l.Close()

	waitForSamples(t, sink, 1)

	mock.Add(time.Second)
	waitForSamples(t, sink, 2)

	mock.Add(3 * time.Second)
	waitForSamples(t, sink, 3)
}

func TestLogs_CloseStopsSampling(t *testing.T) {
	mock := clock.NewMock()
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	l := New(context.Background(), logger, mock, sink, time.Second, Target{Name: "x", Cache: &fakeCache{}})
	waitForSamples(t, sink, 1)

	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	before := sink.count()
	mock.Add(10 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if after := sink.count(); after != before {
		t.Fatalf("sampling continued after Close: %d -> %d", before, after)
	}
}

func waitForSamples(t *testing.T, sink *recordingSink, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sink.count() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d samples, got %d", want, sink.count())
}
