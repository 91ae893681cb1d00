package metrics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// perCache accumulates the activity-rate counters SimpleMetrics keyed by
// "property" in the original source: hits/misses/ghostHits/evictions for
// one named cache, plus its most recent size sample.
type perCache struct {
	hits, misses, ghostHits, evictions int64
	real, ghost, capacity              int64
}

// FileSink is a Sink that accumulates totals in memory and writes a single
// human-readable report on Close, grounded on original_source's
// SimpleMetrics: a process-lifetime accumulator that dumps activity rates
// and elapsed time to an append-only file when torn down. Unlike
// SimpleMetrics' global singleton destructor, FileSink is an explicit value
// with an explicit Close — nothing here relies on static destruction order.
type FileSink struct {
	mu      sync.Mutex
	caches  map[string]*perCache
	order   []string
	w       io.WriteCloser
	clock   clock.Clock
	start   time.Time
	message map[string]string
}

// NewFileSink opens path for append (creating it if absent) and returns a
// FileSink that writes its report to it on Close. c may be nil, in which
// case the real wall clock is used; tests inject clock.NewMock().
func NewFileSink(path string, c clock.Clock) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("metrics: open sink file %q: %w", path, err)
	}
	if c == nil {
		c = clock.New()
	}
	return &FileSink{
		caches:  make(map[string]*perCache),
		w:       f,
		clock:   c,
		start:   c.Now(),
		message: make(map[string]string),
	}, nil
}

func (f *FileSink) entry(cache string) *perCache {
	pc, ok := f.caches[cache]
	if !ok {
		pc = &perCache{}
		f.caches[cache] = pc
		f.order = append(f.order, cache)
	}
	return pc
}

// AddMessage records a free-form key/value line (e.g. a build version or
// config summary) emitted verbatim in the report header, matching
// SimpleMetrics::AddMessage.
func (f *FileSink) AddMessage(title, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message[title] = value
}

func (f *FileSink) Hits(cache string, n int64) {
	f.mu.Lock()
	f.entry(cache).hits += n
	f.mu.Unlock()
}

func (f *FileSink) Misses(cache string, n int64) {
	f.mu.Lock()
	f.entry(cache).misses += n
	f.mu.Unlock()
}

func (f *FileSink) GhostHits(cache string, n int64) {
	f.mu.Lock()
	f.entry(cache).ghostHits += n
	f.mu.Unlock()
}

func (f *FileSink) Evictions(cache string, n int64) {
	f.mu.Lock()
	f.entry(cache).evictions += n
	f.mu.Unlock()
}

func (f *FileSink) Size(cache string, real, ghost, capacity int64) {
	f.mu.Lock()
	pc := f.entry(cache)
	pc.real, pc.ghost, pc.capacity = real, ghost, capacity
	f.mu.Unlock()
}

// Close writes the accumulated report and closes the underlying file. It is
// safe to call at most once.
func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	end := f.clock.Now()
	fmt.Fprintln(f.w, "\n---------------------------------------------")
	fmt.Fprintf(f.w, "Finished computation at %s\n", end.Format(time.ANSIC))
	fmt.Fprintf(f.w, "Elapsed time: %gs\n", end.Sub(f.start).Seconds())

	for _, title := range sortedKeys(f.message) {
		fmt.Fprintf(f.w, "%s = %s\n", title, f.message[title])
	}

	for _, name := range f.order {
		pc := f.caches[name]
		total := pc.hits + pc.misses + pc.ghostHits + pc.evictions
		fmt.Fprintf(f.w, "--------------%s--------------\n", name)
		if total > 0 {
			fmt.Fprintf(f.w, "hits rate = %g\n", float64(pc.hits)/float64(total))
			fmt.Fprintf(f.w, "misses rate = %g\n", float64(pc.misses)/float64(total))
			fmt.Fprintf(f.w, "ghostHits rate = %g\n", float64(pc.ghostHits)/float64(total))
			fmt.Fprintf(f.w, "evictions rate = %g\n", float64(pc.evictions)/float64(total))
		}
		fmt.Fprintf(f.w, "real = %d ghost = %d capacity = %d\n", pc.real, pc.ghost, pc.capacity)
		fmt.Fprintf(f.w, "--------------%s--------------\n\n", name)
	}

	fmt.Fprintln(f.w, "---------------------------------------------")
	return f.w.Close()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Sink = (*FileSink)(nil)
