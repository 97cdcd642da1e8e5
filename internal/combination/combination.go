// Package combination generates the Cartesian product of a list of choice
// sets, with an optional subset of positions permuted among themselves
// (the --combinations floating-word mode). Iteration order matches an
// odometer: the rightmost position advances fastest.
//
// Grounded on original_source/src/combination.rs, with its u64 saturating
// arithmetic upgraded to math/big throughout -- the floating-word space
// easily exceeds 2^64 for 21+ anchored positions and must not silently
// saturate.
package combination

import (
	"math/big"

	"seedcat/internal/permute"
)

// Combinations walks every element of the Cartesian product of elements,
// with the positions named in permuteIndices additionally permuted among
// themselves rather than iterated independently.
type Combinations[T any] struct {
	permuteIndices map[int]bool
	elements       [][]T
	indices        []int
	next           []T
	position       uint64
	combinations   uint64
	permutations   *permute.Permutations
	length         int
	permutation    []int
}

// New builds a plain Cartesian product over elements, no permuted positions.
func New[T any](elements [][]T) *Combinations[T] {
	return Permute(elements, nil, len(elements))
}

// Permute builds a Combinations where permuteIndices are permuted length-at-a-time
// among themselves and the remaining positions (0..length, minus any anchored
// positions beyond length) vary independently.
func Permute[T any](elements [][]T, permuteIndices []int, length int) *Combinations[T] {
	permuteLen := len(permuteIndices) - (len(elements) - length)
	permutations := permute.New(intsCopy(permuteIndices), permuteLen)
	set := make(map[int]bool, len(permuteIndices))
	for _, i := range permuteIndices {
		set[i] = true
	}
	permutation := permutations.Next()
	if permutation == nil {
		permutation = []int{}
	}
	return newShard(elements, permutations, set, length, permutation)
}

func newShard[T any](elements [][]T, permutations *permute.Permutations, permuteIndices map[int]bool, length int, permutation []int) *Combinations[T] {
	return &Combinations[T]{
		permuteIndices: permuteIndices,
		permutations:   permutations,
		permutation:    permutation,
		elements:       elements,
		indices:        make([]int, len(elements)),
		combinations:   1,
		length:         length,
	}
}

func intsCopy(s []int) []int {
	cp := make([]int, len(s))
	copy(cp, s)
	return cp
}

// FixedPositions returns, for each position, the single element it is
// pinned to, or nil if that position still varies.
func (c *Combinations[T]) FixedPositions() []*T {
	fixed := make([]*T, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.permuteIndices[i] && len(c.elements[i]) == 1 {
			v := c.elements[i][0]
			fixed[i] = &v
		}
	}
	return fixed
}

// Begin returns the lexicographically first member of the product.
func (c *Combinations[T]) Begin() []T {
	out := make([]T, c.length)
	for i := 0; i < c.length; i++ {
		out[i] = c.elements[i][0]
	}
	return out
}

// End returns the lexicographically last member of the product.
func (c *Combinations[T]) End() []T {
	out := make([]T, c.length)
	permuted := sortedKeys(c.permuteIndices)
	p := len(permuted)
	for i := 0; i < c.length; i++ {
		j := i
		if c.permuteIndices[i] {
			p--
			j = permuted[p]
		}
		out[i] = c.elements[j][len(c.elements[j])-1]
	}
	return out
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Elements returns the raw choice sets, one per position.
func (c *Combinations[T]) Elements() [][]T {
	return c.elements
}

// Len returns the number of positions.
func (c *Combinations[T]) Len() int {
	return c.length
}

// Permutations reports how many distinct orderings the permuted positions
// can take (1 if there are none).
func (c *Combinations[T]) Permutations() uint64 {
	n := uint64(len(c.permuteIndices))
	r := uint64(len(c.permutation))
	if n == 0 {
		return 1
	}
	perms := uint64(1)
	for i := n - r + 1; i <= n; i++ {
		perms *= i
	}
	return perms
}

// Total returns the exact number of members of the product, computed
// without sampling via an elementary-symmetric-polynomial identity: the
// sum over every ordered k-selection of the permuted positions' sizes
// equals k! * e_k(sizes), where e_k is the degree-k elementary symmetric
// polynomial of the sizes. This replaces the reference's sampled
// saturating-u64 estimate with an exact math/big computation.
func (c *Combinations[T]) Total() *big.Int {
	totalCombo := big.NewInt(1)
	var sizes []uint64
	for i := 0; i < len(c.elements); i++ {
		length := uint64(len(c.elements[i]))
		if c.permuteIndices[i] {
			sizes = append(sizes, length)
		} else {
			totalCombo.Mul(totalCombo, big.NewInt(0).SetUint64(length))
		}
	}
	if len(sizes) == 0 {
		return totalCombo
	}

	k := len(c.permutation)
	e := elementarySymmetric(sizes, k)
	kFactorial := factorialBig(k)
	e.Mul(e, kFactorial)
	return e.Mul(e, totalCombo)
}

func elementarySymmetric(sizes []uint64, k int) *big.Int {
	e := make([]*big.Int, k+1)
	e[0] = big.NewInt(1)
	for j := 1; j <= k; j++ {
		e[j] = big.NewInt(0)
	}
	for _, s := range sizes {
		sBig := new(big.Int).SetUint64(s)
		for j := k; j >= 1; j-- {
			term := new(big.Int).Mul(e[j-1], sBig)
			e[j].Add(e[j], term)
		}
	}
	return e[k]
}

func factorialBig(n int) *big.Int {
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result
}

func (c *Combinations[T]) combinationsAt() uint64 {
	permutationIndex := len(c.permutation)
	combinations := uint64(1)
	for i := c.length - 1; i >= 0; i-- {
		j := c.nextIndexRev(i, &permutationIndex)
		combinations *= uint64(len(c.elements[j]))
	}
	return combinations
}

func (c *Combinations[T]) nextIndexRev(index int, permutationIndex *int) int {
	if c.permuteIndices[index] {
		*permutationIndex--
		return c.permutation[*permutationIndex]
	}
	return index
}

func (c *Combinations[T]) nextPermute() {
	if c.position == c.combinations && c.permutations.Len() > 1 {
		if permutation := c.permutations.Next(); permutation != nil {
			c.permutation = permutation
			c.combinations = c.combinationsAt()
			c.position = 0
			c.indices = make([]int, len(c.elements))
		}
	}
}

// Next returns the next member of the product in odometer order, or nil
// once exhausted.
func (c *Combinations[T]) Next() []T {
	if c.position >= c.combinations {
		return nil
	}

	c.position++
	permutationIndex := len(c.permutation)

	if c.position == 1 {
		c.next = make([]T, 0, c.length)
		for i := c.length - 1; i >= 0; i-- {
			j := c.nextIndexRev(i, &permutationIndex)
			c.next = append(c.next, c.elements[j][0])
		}
		c.combinations = c.combinationsAt()
		reverse(c.next)
		c.nextPermute()
		return c.next
	}

	for i := c.length - 1; i >= 0; i-- {
		j := c.nextIndexRev(i, &permutationIndex)
		if c.indices[j] < len(c.elements[j])-1 {
			c.indices[j]++
			c.next[i] = c.elements[j][c.indices[j]]
			break
		}
		c.indices[j] = 0
		c.next[i] = c.elements[j][0]
	}
	c.nextPermute()
	return c.next
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Shard splits the product into disjoint Combinations that together cover
// exactly the same members as the whole: at least num of them where the
// product has enough varying positions to split on, otherwise fewer.
func (c *Combinations[T]) Shard(num int) []*Combinations[T] {
	var shards []*Combinations[T]

	if c.permutations.Len() > 1 {
		permShards := num
		if uint64(permShards) > c.permutations.Len() {
			permShards = int(c.permutations.Len())
		}
		for _, perm := range c.permutations.Shard(permShards) {
			permutation := perm.Next()
			if permutation == nil {
				permutation = []int{}
			}
			shards = append(shards, newShard(c.elements, perm, c.permuteIndices, c.length, permutation))
		}
	} else {
		shards = append(shards, c.clone())
	}

	for i := 0; i < len(c.elements); i++ {
		if !c.permuteIndices[i] {
			shards = shardIndex(shards, i)
			if len(shards) >= num {
				break
			}
		}
	}

	return shards
}

func (c *Combinations[T]) clone() *Combinations[T] {
	elements := make([][]T, len(c.elements))
	copy(elements, c.elements)
	return newShard(elements, c.permutations, c.permuteIndices, c.length, c.permutation)
}

func shardIndex[T any](shards []*Combinations[T], index int) []*Combinations[T] {
	var next []*Combinations[T]
	for _, s := range shards {
		for _, choice := range s.elements[index] {
			elements := make([][]T, len(s.elements))
			copy(elements, s.elements)
			elements[index] = []T{choice}
			next = append(next, newShard(elements, s.permutations, s.permuteIndices, s.length, s.permutation))
		}
	}
	return next
}
