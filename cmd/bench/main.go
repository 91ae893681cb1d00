// Command bench runs a synthetic Zipf-skewed workload against a BlockCache
// or PointCache, serves Prometheus metrics at /metrics, and optionally
// serves pprof.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guancheng-lai/leveldb-ACKey/adaptive"
	"github.com/guancheng-lai/leveldb-ACKey/lrucache"
	"github.com/guancheng-lai/leveldb-ACKey/metrics/prom"
	"github.com/guancheng-lai/leveldb-ACKey/metrics/telemetry"
)

func main() {
	var (
		kind     = flag.String("kind", "block", "cache under test: block | point")
		capacity = flag.Int64("cap", 256<<20, "cache capacity in charge units")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys  = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		charge = flag.Int64("charge", 4096, "charge per entry")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
		logInterval = flag.Duration("log-interval", 5*time.Second, "telemetry sampling interval")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	adapter := prom.New(nil, "ackey", "bench")
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	var targets []telemetry.Target

	var (
		lookup  func(k lrucache.Key, ghostHit *int64) (lrucache.Handle, bool)
		insert  func(k lrucache.Key, v any, charge int64) lrucache.Handle
		release func(h lrucache.Handle)
	)

	switch *kind {
	case "block":
		bc := adaptive.NewBlockCache(*capacity)
		lookup = bc.LookupGhost
		insert = func(k lrucache.Key, v any, c int64) lrucache.Handle { return bc.Insert(k, v, c, nil) }
		release = bc.Release
		targets = append(targets, telemetry.Target{Name: "block", Cache: bc})
	case "point":
		pc := adaptive.NewPointCache(*capacity)
		lookup = pc.LookupKV
		insert = func(k lrucache.Key, v any, c int64) lrucache.Handle { return pc.InsertKV(k, v, c, nil) }
		release = pc.ReleaseKV
		targets = append(targets,
			telemetry.Target{Name: "point.kv", Cache: pc.KVCache()},
			telemetry.Target{Name: "point.kp", Cache: pc.KPCache()},
		)
	default:
		log.Fatalf("unknown kind: %q (use block or point)", *kind)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	tlog := telemetry.New(context.Background(), logger, nil, adapter, *logInterval, targets...)
	defer tlog.Close()

	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}
	chargeVal := *charge

	var reads, writes, hits, misses, ghostHits, total uint64

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyFor := func() lrucache.Key {
				return lrucache.Key("k:" + strconv.FormatUint(localZipf.Uint64(), 10))
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					var ghostHit int64
					h, ok := lookup(keyFor(), &ghostHit)
					if ok {
						atomic.AddUint64(&hits, 1)
						release(h)
					} else if ghostHit > 0 {
						atomic.AddUint64(&ghostHits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					insert(keyFor(), "v"+strconv.Itoa(localR.Int()), chargeVal)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)
	ghostHitsN := atomic.LoadUint64(&ghostHits)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("kind=%s cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		*kind, *capacity, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  ghost-hits=%d  hit-rate=%.2f%%\n", hitsN, missesN, ghostHitsN, hitRate)
}
