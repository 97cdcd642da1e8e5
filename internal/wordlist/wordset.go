package wordlist

import "sort"

// IndexSet is a sorted, deduplicated set of word indices supporting
// O(log n) membership and O(1) rank access. The shape is lifted from the
// teacher's AddressHashSet (internal/lookup/hashset.go in the reference
// module): a sorted slice searched with sort.Search, rebound here from
// 8-byte address-hash prefixes to 11-bit word indices. Immutable after
// construction, so unlike the original there is no mutex to guard it.
type IndexSet struct {
	indices []uint16
}

// NewIndexSet sorts and deduplicates indices into an IndexSet.
func NewIndexSet(indices []uint16) *IndexSet {
	cp := make([]uint16, len(indices))
	copy(cp, indices)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })

	out := cp[:0]
	for i, v := range cp {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return &IndexSet{indices: out}
}

// Contains reports whether i is a member of the set.
func (s *IndexSet) Contains(i uint16) bool {
	pos := sort.Search(len(s.indices), func(p int) bool { return s.indices[p] >= i })
	return pos < len(s.indices) && s.indices[pos] == i
}

// Len returns the number of distinct members.
func (s *IndexSet) Len() int {
	return len(s.indices)
}

// At returns the rank-th smallest member (0-based).
func (s *IndexSet) At(rank int) uint16 {
	return s.indices[rank]
}

// RankOf returns the position of i within the sorted set, or -1 if absent.
func (s *IndexSet) RankOf(i uint16) int {
	pos := sort.Search(len(s.indices), func(p int) bool { return s.indices[p] >= i })
	if pos < len(s.indices) && s.indices[pos] == i {
		return pos
	}
	return -1
}

// All returns the sorted members. The caller must not mutate the result.
func (s *IndexSet) All() []uint16 {
	return s.indices
}
