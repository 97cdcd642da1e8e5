package wordlist

import "testing"

func TestLoadIsBijective(t *testing.T) {
	wl := Load()
	if wl.Len() != Size {
		t.Fatalf("expected %d words, got %d", Size, wl.Len())
	}
	for i := 0; i < wl.Len(); i++ {
		word := wl.Word(uint16(i))
		idx, ok := wl.Index(word)
		if !ok || int(idx) != i {
			t.Fatalf("round trip failed for index %d (%q) -> %d", i, word, idx)
		}
	}
}

func TestLoadIsSorted(t *testing.T) {
	wl := Load()
	for i := 1; i < wl.Len(); i++ {
		if wl.Word(uint16(i-1)) >= wl.Word(uint16(i)) {
			t.Fatalf("wordlist not sorted at %d: %q >= %q", i, wl.Word(uint16(i-1)), wl.Word(uint16(i)))
		}
	}
}

func TestIndexSetMembership(t *testing.T) {
	s := NewIndexSet([]uint16{5, 1, 3, 1, 5})
	if s.Len() != 3 {
		t.Fatalf("expected 3 distinct members, got %d", s.Len())
	}
	for _, want := range []uint16{1, 3, 5} {
		if !s.Contains(want) {
			t.Fatalf("expected set to contain %d", want)
		}
	}
	if s.Contains(2) {
		t.Fatalf("did not expect set to contain 2")
	}
	if s.At(0) != 1 || s.At(1) != 3 || s.At(2) != 5 {
		t.Fatalf("unexpected sorted order: %v", s.All())
	}
	if s.RankOf(3) != 1 {
		t.Fatalf("expected rank of 3 to be 1, got %d", s.RankOf(3))
	}
	if s.RankOf(99) != -1 {
		t.Fatalf("expected rank of absent member to be -1")
	}
}
