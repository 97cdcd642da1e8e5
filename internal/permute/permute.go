// Package permute generates PERMUTE(N, K) permutations in a fixed order
// (k-subsets in lexicographic order, and each subset's orderings in
// lexicographic order) so that ranges can be split across workers without locking: each
// worker walks a contiguous slice of the index space and no two workers
// ever produce the same permutation.
//
// Grounded line-for-line on original_source/src/permutations.rs.
package permute

// factorial holds 0! through 20!; original_source caps the number of
// permuted (unanchored) words at 20 (validate_combinations bails at
// num >= 21), so this table
// never needs to go further.
var factorial = [21]uint64{
	1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800,
	39916800, 479001600, 6227020800, 87178291200, 1307674368000,
	20922789888000, 355687428096000, 6402373705728000,
	121645100408832000, 2432902008176640000,
}

// NPermuteK returns n!/(n-k)!, saturating at the u64 ceiling.
func NPermuteK(n, k int) uint64 {
	end := uint64(1)
	for i := n - k + 1; i <= n; i++ {
		end = saturatingMul(end, uint64(i))
	}
	return end
}

// NChooseK returns the binomial coefficient n choose k.
func NChooseK(n, k int) uint64 {
	if k > n {
		return 0
	}
	if n <= 20 {
		return factorial[n] / factorial[k] / factorial[n-k]
	}
	end := k
	if n-k < end {
		end = n - k
	}
	acc := uint64(1)
	for val := 1; val <= end; val++ {
		acc = acc * (uint64(n) - uint64(val) + 1) / uint64(val)
	}
	return acc
}

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b != a {
		return ^uint64(0)
	}
	return product
}

// IndexedCombination returns the i-th (0-based) lexicographic k-subset of
// {0, ..., n-1}, where 0 <= i < NChooseK(n, k).
func IndexedCombination(i uint64, n, k int) []int {
	combo := make([]int, 0, k)
	r := i + 1
	j := 0
	for s := 1; s <= k; s++ {
		cs := j + 1
		for r > NChooseK(n-cs, k-s) {
			r -= NChooseK(n-cs, k-s)
			cs++
		}
		combo = append(combo, cs-1)
		j = cs
	}
	return combo
}

// IndexedPermutation returns the index-th (0-based) lexicographic
// permutation of list, leaving the input slice's order unspecified (it is
// sorted internally as part of the algorithm).
func IndexedPermutation(index uint64, list []int) []int {
	size := len(list)
	sorted := append([]int(nil), list...)
	sortInts(sorted)

	used := make([]bool, size)
	lower := factorial[size]
	resultIndices := make([]int, size)

	for i := 0; i < size; i++ {
		bigger := lower
		lower = factorial[size-i-1]
		counter := int(index % bigger / lower)
		resultIndex := 0
		for {
			if !used[resultIndex] {
				counter--
				if counter < 0 {
					break
				}
			}
			resultIndex++
		}
		resultIndices[i] = resultIndex
		used[resultIndex] = true
	}

	result := make([]int, size)
	for i, sortedIndex := range resultIndices {
		result[i] = sorted[sortedIndex]
	}
	return result
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// nextPermutation advances list to the next lexicographic permutation in
// place, reporting false once the last permutation has been reached.
func nextPermutation(list []int) bool {
	largest := -1
	for i := len(list) - 2; i >= 0; i-- {
		if list[i] < list[i+1] {
			largest = i
			break
		}
	}
	if largest == -1 {
		return false
	}

	largest2 := -1
	for i := len(list) - 1; i >= 0; i-- {
		if list[largest] < list[i] {
			largest2 = i
			break
		}
	}
	list[largest], list[largest2] = list[largest2], list[largest]

	for i, j := largest+1, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return true
}

// Permutations walks PERMUTE(len(elements), k) permutations of elements,
// k at a time: k-subsets in lexicographic order, each subset's orderings
// in lexicographic order before the next subset.
type Permutations struct {
	elements         []int
	indices          []int
	combinationIndex uint64
	permutationIndex uint64
	length           uint64
	kPermutations    uint64
	k                int
	index            uint64
}

// New builds a Permutations walking the full PERMUTE(len(elements), k) space.
func New(elements []int, k int) *Permutations {
	return newShard(elements, k, 0, NPermuteK(len(elements), k))
}

func newShard(elements []int, k int, index, length uint64) *Permutations {
	kPermutations := NPermuteK(k, k)
	return &Permutations{
		elements:         elements,
		combinationIndex: index / kPermutations,
		permutationIndex: index % kPermutations,
		length:           length,
		kPermutations:    kPermutations,
		k:                k,
		index:            index,
	}
}

// Len returns the total permutation count this instance walks.
func (p *Permutations) Len() uint64 {
	return p.length
}

// Shard splits the permutation space into disjoint, consecutive ranges of
// Len()/num permutations each, plus one shorter range for any remainder,
// so it can return more than num Permutations.
func (p *Permutations) Shard(num int) []*Permutations {
	shardSize := p.length / uint64(num)
	var shards []*Permutations
	index := uint64(0)
	for index < p.length {
		end := p.length
		if index+shardSize < end {
			end = index + shardSize
		}
		shards = append(shards, newShard(p.elements, p.k, index, end))
		index += shardSize
	}
	return shards
}

// Next returns the next permutation of k elements, or nil when exhausted.
func (p *Permutations) Next() []int {
	if p.indices == nil {
		p.nextCombo()
		return p.indices
	}

	p.index++
	if p.index >= p.length {
		return nil
	}
	p.nextPerm()
	return p.indices
}

func (p *Permutations) nextCombo() {
	indices := IndexedCombination(p.combinationIndex, len(p.elements), p.k)
	combo := make([]int, len(indices))
	for i, idx := range indices {
		combo[i] = p.elements[idx]
	}
	p.indices = IndexedPermutation(p.permutationIndex, combo)
}

func (p *Permutations) nextPerm() {
	if p.permutationIndex == p.kPermutations-1 {
		p.combinationIndex++
		p.permutationIndex = 0
		p.nextCombo()
	} else {
		p.permutationIndex++
		nextPermutation(p.indices)
	}
}
