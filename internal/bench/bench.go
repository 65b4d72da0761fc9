// Package bench drives broadcastlog.Log and the baseline stores under a
// concurrent producer/reader workload and reports throughput and push latency.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"

	"github.com/aradilov/broadcastlog"
	"github.com/aradilov/broadcastlog/internal/baseline"
)

// Store is the surface shared by the log and its baselines.
type Store interface {
	Push(v uint64) (int, error)
	Get(index int) (uint64, bool)
	Len() int
}

// Workload describes one run.
type Workload struct {
	Producers int
	Items     int // pushes per producer
	Readers   int
}

// Result holds the measurements of one run.
type Result struct {
	Impl       string
	Pushes     int
	Elapsed    time.Duration
	Throughput float64 // pushes per second
	P50        time.Duration
	P99        time.Duration
	Max        time.Duration
	Reads      uint64
	Misses     uint64 // Get failures below the Len observed just before
}

// NewStore builds the named store with the given capacity.
func NewStore(impl string, capacity int, logger *slog.Logger) (Store, error) {
	switch impl {
	case "log":
		return broadcastlog.New[uint64](capacity, broadcastlog.WithLogger(logger)), nil
	case "mutex":
		return baseline.NewMutexSlice[uint64](capacity), nil
	case "rwmutex":
		return baseline.NewRWMutexSlice[uint64](capacity), nil
	case "ring":
		return baseline.NewCASRing[uint64](capacity), nil
	default:
		return nil, fmt.Errorf("unknown implementation %q", impl)
	}
}

// Run executes the workload against store. The store must hold exactly
// Producers*Items entries; every push is expected to succeed.
func Run(ctx context.Context, impl string, store Store, w Workload) (Result, error) {
	res := Result{Impl: impl}
	latencies := make([][]time.Duration, w.Producers)

	var stop atomic.Bool
	var reads, misses atomic.Uint64

	var readers conc.WaitGroup
	for r := 0; r < w.Readers; r++ {
		readers.Go(func() {
			var n, miss uint64
			for !stop.Load() {
				l := store.Len()
				if l == 0 {
					continue
				}
				if _, ok := store.Get(int(fastrand.Uint32n(uint32(l)))); !ok {
					miss++
				}
				n++
			}
			reads.Add(n)
			misses.Add(miss)
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for p := 0; p < w.Producers; p++ {
		lat := make([]time.Duration, 0, w.Items)
		g.Go(func() error {
			// fixed payloads keep the cost of the value out of the measurement
			base := uint64(p) * uint64(w.Items)
			for i := 0; i < w.Items; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				t0 := time.Now()
				_, err := store.Push(base + uint64(i))
				lat = append(lat, time.Since(t0))
				if err != nil {
					return fmt.Errorf("producer %d push %d: %w", p, i, err)
				}
			}
			latencies[p] = lat
			return nil
		})
	}
	err := g.Wait()
	res.Elapsed = time.Since(start)

	stop.Store(true)
	readers.Wait()

	if err != nil {
		return res, err
	}

	res.Pushes = w.Producers * w.Items
	res.Throughput = float64(res.Pushes) / res.Elapsed.Seconds()
	res.Reads = reads.Load()
	res.Misses = misses.Load()
	res.P50, res.P99, res.Max = percentiles(slices.Concat(latencies...))

	if err := verify(store, res.Pushes); err != nil {
		return res, err
	}
	return res, nil
}

// verify checks that every pushed entry is readable once producers are done.
func verify(store Store, n int) error {
	if l := store.Len(); l != n {
		return fmt.Errorf("expected len %d after run, got %d", n, l)
	}
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		v, ok := store.Get(i)
		if !ok {
			return fmt.Errorf("entry %d is not readable", i)
		}
		if v >= uint64(n) || seen[v] {
			return fmt.Errorf("entry %d holds unexpected value %d", i, v)
		}
		seen[v] = true
	}
	return nil
}

func percentiles(d []time.Duration) (p50, p99, maxLat time.Duration) {
	if len(d) == 0 {
		return 0, 0, 0
	}
	slices.Sort(d)
	return d[len(d)*50/100], d[len(d)*99/100], d[len(d)-1]
}

// Suite runs every implementation rounds times and keeps the best round of each.
func Suite(ctx context.Context, impls []string, w Workload, rounds int, logger *slog.Logger) ([]Result, error) {
	if w.Producers < 1 || w.Items < 1 {
		return nil, errors.New("workload needs at least one producer and one item")
	}

	results := make([]Result, 0, len(impls))
	for _, impl := range impls {
		var best Result
		for round := 0; round < max(rounds, 1); round++ {
			store, err := NewStore(impl, w.Producers*w.Items, logger)
			if err != nil {
				return results, err
			}

			res, err := Run(ctx, impl, store, w)
			if err != nil {
				return results, fmt.Errorf("%s round %d: %w", impl, round, err)
			}
			logger.Debug("round done",
				slog.String("impl", impl),
				slog.Int("round", round),
				slog.Duration("elapsed", res.Elapsed),
				slog.Float64("throughput", res.Throughput),
			)

			if res.Throughput > best.Throughput {
				best = res
			}
		}
		logger.Info("implementation done",
			slog.String("impl", impl),
			slog.Float64("throughput", best.Throughput),
			slog.Duration("p99", best.P99),
		)
		results = append(results, best)
	}
	return results, nil
}
