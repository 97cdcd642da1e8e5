// Package enumerator runs a fixed worker pool over disjoint rank-range
// shards of a SeedPattern, checksum-filters each word list as it is
// produced, and feeds the survivors to a bounded queue the Backend Driver
// drains. Ordering across workers is not preserved; within one worker,
// words are emitted in strictly ascending rank, matching §4.6 and §5.
//
// Structurally grounded on the Worker{Run(ctx) <-chan T; Stats(); Close()}
// contract in internal/worker/interface.go, generalized from "generate a
// random mnemonic and check an address set" to "iterate an assigned rank
// range and checksum-filter it".
package enumerator

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"seedcat/internal/pattern"
)

// QueueCapacity mirrors the "bounded by approximately 64K candidates"
// queue size from §4.6.
const QueueCapacity = 1 << 16

// Candidate is one checksum-valid word list the enumerator has emitted.
type Candidate struct {
	Words []uint32
}

// Stats are the counters Stats() reports: how many word lists were
// visited before the checksum filter, and how many survived it.
type Stats struct {
	Generated int64
	Valid     int64
}

// Enumerator is the Worker-shaped wrapper around a sharded SeedPattern.
type Enumerator struct {
	shards []*pattern.SeedPattern
	queue  chan Candidate

	generated int64
	valid     int64
	stop      atomic.Bool
	wg        sync.WaitGroup
}

// New builds an Enumerator over seeds.Shard(workers) (workers defaulting to
// runtime.NumCPU() when workers <= 0, matching §5's "worker pool sized to
// the number of logical CPUs"). Shard can return more shards than workers.
func New(seeds *pattern.SeedPattern, workers int) *Enumerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	return &Enumerator{
		shards: seeds.Shard(workers),
		queue:  make(chan Candidate, QueueCapacity),
	}
}

// Run launches one goroutine per shard and returns the channel they feed.
// The channel closes once every shard is exhausted, the stop flag is set,
// or ctx is cancelled.
func (e *Enumerator) Run(ctx context.Context) <-chan Candidate {
	for _, shard := range e.shards {
		e.wg.Add(1)
		go e.runShard(ctx, shard)
	}
	go func() {
		e.wg.Wait()
		close(e.queue)
	}()
	return e.queue
}

func (e *Enumerator) runShard(ctx context.Context, shard *pattern.SeedPattern) {
	defer e.wg.Done()

	for {
		if e.stop.Load() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		words := shard.Next()
		if words == nil {
			return
		}
		atomic.AddInt64(&e.generated, 1)
		if !shard.Valid(words) {
			continue
		}
		atomic.AddInt64(&e.valid, 1)

		// shard.Next() reuses and mutates its returned slice's backing array
		// on every call, so the copy sent downstream must not alias it --
		// otherwise the next iteration's Next() call races the consumer
		// goroutine still reading this Candidate.
		select {
		case e.queue <- Candidate{Words: append([]uint32(nil), words...)}:
		case <-ctx.Done():
			return
		}
	}
}

// Stop sets the shared cancellation flag: every worker exits at its next
// iteration boundary, matching §5's "single atomic stop flag" model. Safe
// to call more than once, and from any goroutine.
func (e *Enumerator) Stop() {
	e.stop.Store(true)
}

// Stats reports the current generated/valid counters.
func (e *Enumerator) Stats() Stats {
	return Stats{
		Generated: atomic.LoadInt64(&e.generated),
		Valid:     atomic.LoadInt64(&e.valid),
	}
}

// Close releases resources. The Enumerator owns none beyond its channel
// and goroutines, which Run's ctx cancellation already reclaims.
func (e *Enumerator) Close() error {
	e.Stop()
	return nil
}
