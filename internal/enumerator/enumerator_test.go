package enumerator

import (
	"context"
	"sort"
	"testing"

	"seedcat/internal/pattern"
	"seedcat/internal/wordlist"
)

func seedPattern(t *testing.T, arg string) *pattern.SeedPattern {
	t.Helper()
	wl := wordlist.Load()
	s, err := pattern.ParseSeed(arg, nil, wl)
	if err != nil {
		t.Fatalf("ParseSeed(%q): %v", arg, err)
	}
	return s
}

func drain(e *Enumerator) []string {
	var out []string
	for c := range e.Run(context.Background()) {
		out = append(out, keyOf(c.Words))
	}
	return out
}

func keyOf(words []uint32) string {
	key := make([]byte, 0, len(words)*4)
	for _, w := range words {
		key = append(key, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	}
	return string(key)
}

// "ability,zoo,?" ranges over a tractable 2048-member space (the third
// slot varies) small enough to fully enumerate, single- and multi-worker
// alike, within a test's time budget.
const smallPattern = "ability,zoo,?"

func TestEnumeratorEmitsOnlyChecksumValid(t *testing.T) {
	s := seedPattern(t, smallPattern)
	e := New(s, 4)
	got := drain(e)

	fresh := seedPattern(t, smallPattern)
	var want []string
	for words := fresh.NextValid(); words != nil; words = fresh.NextValid() {
		want = append(want, keyOf(words))
	}

	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %d valid candidates, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("candidate multiset mismatch at %d", i)
		}
	}
}

func TestEnumeratorSplitCoversWholeWithNoDuplicates(t *testing.T) {
	one := drain(New(seedPattern(t, smallPattern), 1))
	many := drain(New(seedPattern(t, smallPattern), 5))

	seen := map[string]int{}
	for _, k := range many {
		seen[k]++
	}
	for _, k := range one {
		if seen[k] != 1 {
			t.Fatalf("candidate %q covered %d times across shards, want 1", k, seen[k])
		}
		delete(seen, k)
	}
	if len(seen) != 0 {
		t.Fatalf("sharded run produced %d candidates absent from the single-worker run", len(seen))
	}
}

func TestEnumeratorStopHaltsWorkers(t *testing.T) {
	s := seedPattern(t, "?,?,?,?,?,?,?,?,?,?,?,?")
	e := New(s, 4)
	ch := e.Run(context.Background())

	<-ch
	e.Stop()
	for range ch {
	}

	stats := e.Stats()
	if stats.Generated == 0 {
		t.Fatalf("expected some candidates to have been generated before stop")
	}
}

func TestEnumeratorRespectsContextCancellation(t *testing.T) {
	s := seedPattern(t, "?,?,?,?,?,?,?,?,?,?,?,?")
	e := New(s, 4)
	ctx, cancel := context.WithCancel(context.Background())
	ch := e.Run(ctx)

	<-ch
	cancel()
	for range ch {
	}
}
