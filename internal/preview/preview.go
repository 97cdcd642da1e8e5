// Package preview prints the "Seedcat Configuration" block the CLI shows
// before a recovery attempt, and drives the "Seedcat Recovery" progress
// display while one runs.
//
// Grounded on Logger/Timer in original_source/src/logger.rs:
// format_attempt/format_num/Timer::format_eta/format_time, reimplemented
// over log/sync/atomic/time.Ticker instead of crossterm -- no
// terminal-styling library appears anywhere in the retrieval pack's Go
// repos, so plain stdout writes are the idiomatic choice here.
package preview

import (
	"fmt"
	"log"
	"math/big"
	"sync/atomic"
	"time"

	"seedcat/internal/attempt"
)

const (
	minute = 60
	hour   = minute * 60
	day    = hour * 24
)

// Heading prints a "--- name ---" section header, matching Logger::heading.
func Heading(name string) {
	log.Printf("\n--- %s ---\n", name)
}

// FormatAttempt prints name's total count plus its lexicographically first
// and last members, matching Logger::format_attempt -- the single code
// path SeedPattern, DerivationSet, and PassphraseAttack alike are printed
// through, since all three implement attempt.Attempt.
func FormatAttempt(name string, a attempt.Attempt) {
	log.Printf("%s: %s", name, FormatNum(a.Total()))
	log.Printf("Begin: %s", a.Begin())
	log.Printf("End:   %s\n", a.End())
}

// PrintNum prints prefix followed by n formatted with K/M/B/T suffixes,
// matching Logger::print_num.
func PrintNum(prefix string, n *big.Int) {
	log.Printf("%s%s", prefix, FormatNum(n))
}

// FormatNum renders n with a K/M/B/T suffix the way Logger::format_num
// does, upgraded to math/big so it never silently saturates the way the
// reference's u64 does at 2^64.
func FormatNum(n *big.Int) string {
	denominations := []string{"", "K", "M", "B", "T", "Q"}
	thousand := big.NewFloat(1000)

	value := new(big.Float).SetInt(n)
	denomination := denominations[0]
	for i := 0; i < len(denominations); i++ {
		denomination = denominations[i]
		if i == len(denominations)-1 || value.Cmp(thousand) < 0 {
			break
		}
		value.Quo(value, thousand)
	}

	f, _ := value.Float64()
	switch {
	case denomination == "" || f >= 100:
		return fmt.Sprintf("%.0f%s", f, denomination)
	case f >= 10:
		return fmt.Sprintf("%.1f%s", f, denomination)
	default:
		return fmt.Sprintf("%.2f%s", f, denomination)
	}
}

// FormatTime renders a duration in seconds as "X days, Y hours, Z mins, W
// secs", dropping leading zero units, matching Timer::format_time.
func FormatTime(remainingSeconds int64) string {
	remaining := remainingSeconds
	var parts []string

	if remaining/day > 0 {
		parts = append(parts, fmt.Sprintf("%d days", remaining/day))
		remaining %= day
	}
	if remaining/hour > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", remaining/hour))
		remaining %= hour
	}
	if remaining/minute > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%d mins", remaining/minute))
		remaining %= minute
	}
	parts = append(parts, fmt.Sprintf("%d secs", remaining))

	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

// FormatETA estimates remaining time from percent complete and elapsed
// seconds, matching Timer::format_eta.
func FormatETA(percent float64, elapsedSeconds int64) string {
	if percent != percent || percent == 0 {
		return "Unknown"
	}
	total := float64(elapsedSeconds) * (100.0 / percent)
	return FormatTime(int64(total) - elapsedSeconds)
}

// Timer periodically prints a one-line progress report while a recovery
// attempt runs, matching Logger::time/Timer::start_at. Multiplier scales
// the printed count (e.g. by the number of derivation paths hashed per
// seed) without the underlying counter itself changing.
type Timer struct {
	name       string
	total      int64
	multiplier int64
	counter    atomic.Int64
	ended      atomic.Bool
	startedAt  time.Time
	stop       chan struct{}
	done       chan struct{}
}

// NewTimer builds a Timer for a named attempt phase with the given total
// and multiplier.
func NewTimer(name string, total int64, multiplier int64) *Timer {
	if multiplier < 1 {
		multiplier = 1
	}
	return &Timer{name: name, total: total, multiplier: multiplier}
}

// Add increments the progress counter by amt.
func (t *Timer) Add(amt int64) {
	t.counter.Add(amt)
}

// Store sets the progress counter to amt.
func (t *Timer) Store(amt int64) {
	t.counter.Store(amt)
}

// End marks the attempt finished: the next tick freezes Total at the
// counter's current value and the ticker goroutine exits.
func (t *Timer) End() {
	t.ended.Store(true)
}

// Start launches the ticker goroutine at startedSecondsAgo seconds before
// now (used when the backend process itself reports an earlier start
// time), printing a progress line on each 200ms tick where the count has
// changed, until End or Stop.
func (t *Timer) Start(startedSecondsAgo int64) {
	t.startedAt = time.Now().Add(-time.Duration(startedSecondsAgo) * time.Second)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		total := t.total
		var lastCount int64 = -1
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				count := t.counter.Load() * t.multiplier
				ended := t.ended.Load()
				if count == lastCount && !ended {
					continue
				}
				if ended {
					total = count
				}
				lastCount = count

				elapsed := int64(time.Since(t.startedAt).Seconds())
				if elapsed < 1 {
					elapsed = 1
				}
				percent := float64(count) / float64(total) * 100

				log.Printf(
					"%s %.2f%% (%s/%s) Speed: %s/sec ETA: %s Elapsed: %s",
					t.name, percent, FormatNum(big.NewInt(count)), FormatNum(big.NewInt(total)),
					FormatNum(big.NewInt(count/elapsed)), FormatETA(percent, elapsed), FormatTime(elapsed),
				)

				if count == total {
					return
				}
			}
		}
	}()
}

// Stop halts the ticker goroutine immediately without waiting for a final
// tick -- used on cancellation, as opposed to End which lets the next
// regularly scheduled tick print a final 100% line.
func (t *Timer) Stop() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
}

// Wait blocks until the ticker goroutine exits on its own (End plus the
// next tick, or the counter reaching total).
func (t *Timer) Wait() {
	if t.done == nil {
		return
	}
	<-t.done
}
