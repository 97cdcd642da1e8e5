package combination

import "testing"

func TestBeginAndEnd(t *testing.T) {
	c := Permute([][]int{{1}, {2}, {3}, {4}}, []int{0, 1, 2, 3}, 3)
	if got := c.Begin(); !intsEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Begin() = %v, want [1 2 3]", got)
	}
	if got := c.End(); !intsEqual(got, []int{4, 3, 2}) {
		t.Fatalf("End() = %v, want [4 3 2]", got)
	}
}

func TestWritesAllCombinations(t *testing.T) {
	c := New([][]int{{1, 2}, {3, 4}, {5, 6, 7}})
	want := [][]int{
		{1, 3, 5}, {1, 3, 6}, {1, 3, 7},
		{1, 4, 5}, {1, 4, 6}, {1, 4, 7},
		{2, 3, 5}, {2, 3, 6}, {2, 3, 7},
		{2, 4, 5}, {2, 4, 6}, {2, 4, 7},
	}
	for _, w := range want {
		got := c.Next()
		if !intsEqual(got, w) {
			t.Fatalf("Next() = %v, want %v", got, w)
		}
	}
	if c.Next() != nil {
		t.Fatalf("expected exhaustion")
	}
}

func TestWritesPermutations(t *testing.T) {
	c := Permute([][]int{{1, 2}, {3}, {4}}, []int{0, 1, 2}, 2)
	want := [][]int{
		{1, 3}, {2, 3}, {3, 1}, {3, 2},
		{1, 4}, {2, 4}, {4, 1}, {4, 2},
		{3, 4}, {4, 3},
	}
	for _, w := range want {
		got := c.Next()
		if !intsEqual(got, w) {
			t.Fatalf("Next() = %v, want %v", got, w)
		}
	}
	if c.Next() != nil {
		t.Fatalf("expected exhaustion")
	}
}

func TestWritesPermutations2(t *testing.T) {
	c := Permute([][]int{{1}, {2}, {3, 4}}, []int{0, 2}, 3)
	if got := c.Total().Int64(); got != 4 {
		t.Fatalf("Total() = %d, want 4", got)
	}
	want := [][]int{{1, 2, 3}, {1, 2, 4}, {3, 2, 1}, {4, 2, 1}}
	for _, w := range want {
		got := c.Next()
		if !intsEqual(got, w) {
			t.Fatalf("Next() = %v, want %v", got, w)
		}
	}
	if c.Next() != nil {
		t.Fatalf("expected exhaustion")
	}
}

func TestTotalMatchesPermuteAssertCases(t *testing.T) {
	cases := []struct {
		elements [][]int
		permute  []int
		length   int
		perms    uint64
		exact    int64
	}{
		{[][]int{{1, 2}, {4, 5}, {7, 8}}, []int{0, 1, 2}, 3, 6, 48},
		{[][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, []int{0, 1, 2}, 2, 6, 54},
		{[][]int{{10, 11}, {1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, []int{1, 2, 3}, 3, 6, 108},
		{[][]int{{0, 1, 2}, {3, 4}, {5, 6, 7, 8, 9}, {10, 11, 12}}, []int{0, 1, 2, 3}, 3, 24, 738},
	}
	for _, c := range cases {
		comb := Permute(c.elements, c.permute, c.length)
		if got := comb.Permutations(); got != c.perms {
			t.Fatalf("Permutations() = %d, want %d", got, c.perms)
		}
		if got := comb.Total().Int64(); got != c.exact {
			t.Fatalf("Total() = %d, want %d", got, c.exact)
		}
		count := int64(0)
		seen := map[string]bool{}
		for {
			next := comb.Next()
			if next == nil {
				break
			}
			k := key(next)
			if seen[k] {
				t.Fatalf("duplicate member produced: %v", next)
			}
			seen[k] = true
			count++
		}
		if count != c.exact {
			t.Fatalf("iterated %d members, want %d", count, c.exact)
		}
	}
}

func TestShardCoversSameMembers(t *testing.T) {
	c := New([][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	whole := explode(New([][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}}))
	sharded := explodeMany(c.Shard(3))
	assertSameSet(t, whole, sharded)

	wholePerm := explode(Permute([][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}}, []int{0, 1, 2, 3}, 2))
	cPerm := Permute([][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}}, []int{0, 1, 2, 3}, 2)
	shardedPerm := explodeMany(cPerm.Shard(1000))
	if len(shardedPerm) != len(wholePerm) {
		t.Fatalf("sharded permuted total %d != whole %d", len(shardedPerm), len(wholePerm))
	}
}

func explode(c *Combinations[int]) [][]int {
	var all [][]int
	for {
		next := c.Next()
		if next == nil {
			break
		}
		all = append(all, append([]int(nil), next...))
	}
	return all
}

func explodeMany(cs []*Combinations[int]) [][]int {
	var all [][]int
	for _, c := range cs {
		all = append(all, explode(c)...)
	}
	return all
}

func assertSameSet(t *testing.T, a, b [][]int) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("set sizes differ: %d vs %d", len(a), len(b))
	}
	seen := map[string]bool{}
	for _, v := range a {
		seen[key(v)] = true
	}
	for _, v := range b {
		if !seen[key(v)] {
			t.Fatalf("member %v not found in reference set", v)
		}
	}
}

func key(v []int) string {
	s := ""
	for _, x := range v {
		s += string(rune('a' + x))
	}
	return s
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
