// Package pattern parses the CLI's seed-word, derivation, and passphrase
// pattern arguments into the candidate-generating types the rest of
// seedcat drives.
//
// Seed parsing is grounded on Seed::from_args in
// original_source/src/seed.rs: comma/space-separated word slots, each
// either an exact word, a '?'/'|' wildcard expression, or '^'-anchored
// (fixed in place when --combinations permutes the remaining slots).
package pattern

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"seedcat/internal/attempt"
	"seedcat/internal/checksum"
	"seedcat/internal/combination"
	"seedcat/internal/wordlist"
)

// validLengths mirrors VALID_LENGTHS in original_source/src/seed.rs.
var validLengths = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

const errHint = `Seed takes 1 arg with comma or space-separated values:
 Unknown word:    '?' expands into all possible 2048 words
 Unknown suffix:  'zo?' expands into 'zone|zoo'
 Unknown prefix:  '?ppy' expands into 'happy|puppy|unhappy'
 Unknown both:    '?orro?' expands into 'borrow|horror|tomorrow'
 Multiple words:  'puppy|zo?' expands into 'puppy|zone|zoo'
 Anchor word:     '^able' when using --combinations this word stays in place
                   (wildcards may also be used in anchored words e.g. '^s?')`

// SeedPattern is a parsed --seed argument: a per-slot set of candidate
// word indices, optionally permuted across a --combinations window.
type SeedPattern struct {
	wl             *wordlist.Wordlist
	elements       [][]uint32
	permuteIndices []int
	length         int
	words          *combination.Combinations[uint32]
	filter         *checksum.Filter
}

var _ attempt.Attempt = (*SeedPattern)(nil)

// ParseSeed parses arg into a SeedPattern. combinations, when non-nil, is
// the --combinations word count: the slots not marked with '^' are
// permuted among themselves to fill that many positions.
func ParseSeed(arg string, combinations *int, wl *wordlist.Wordlist) (*SeedPattern, error) {
	sep := " "
	if strings.Contains(arg, ",") {
		sep = ","
	}

	var anchored []int
	var elements [][]uint32
	for index, word := range strings.Split(arg, sep) {
		isAnchor := strings.HasPrefix(word, "^")
		if isAnchor {
			anchored = append(anchored, index)
		}
		word = strings.ReplaceAll(word, "^", "")

		if strings.ContainsAny(word, "?|") {
			var all []uint32
			for _, alt := range strings.Split(word, "|") {
				matching, err := matchWildcard(alt, wl)
				if err != nil {
					return nil, err
				}
				all = append(all, matching...)
			}
			elements = append(elements, all)
		} else if idx, ok := wl.Index(word); ok {
			elements = append(elements, []uint32{uint32(idx)})
		} else {
			return nil, fmt.Errorf("pattern: unknown seed word %q found\n%s", word, errHint)
		}
	}

	var permuteIndices []int
	length := len(elements)
	if combinations != nil {
		var err error
		permuteIndices, length, err = validateCombinations(elements, *combinations, anchored)
		if err != nil {
			return nil, err
		}
	}

	return newSeedPattern(wl, elements, permuteIndices, length), nil
}

func matchWildcard(word string, wl *wordlist.Wordlist) ([]uint32, error) {
	bare := strings.ReplaceAll(word, "?", "")
	prefix := strings.HasPrefix(word, "?")
	suffix := strings.HasSuffix(word, "?")

	var matching []uint32
	for i := 0; i < wl.Len(); i++ {
		candidate := wl.Word(uint16(i))
		switch {
		case prefix && suffix:
			if strings.Contains(candidate, bare) {
				matching = append(matching, uint32(i))
			}
		case prefix:
			if strings.HasSuffix(candidate, bare) {
				matching = append(matching, uint32(i))
			}
		case suffix:
			if strings.HasPrefix(candidate, bare) {
				matching = append(matching, uint32(i))
			}
		default:
			if candidate == bare {
				matching = append(matching, uint32(i))
			}
		}
	}
	if len(matching) == 0 {
		return nil, fmt.Errorf("pattern: no matching seed words for %q found\n%s", word, errHint)
	}
	return matching, nil
}

func validateCombinations(elements [][]uint32, combo int, anchored []int) ([]int, int, error) {
	comboStr := fmt.Sprintf("seed word length from --combinations is %d", combo)
	anchoredSet := make(map[int]bool, len(anchored))
	for _, a := range anchored {
		anchoredSet[a] = true
	}
	num := combo - len(anchored)

	if !validLengths[combo] {
		return nil, 0, fmt.Errorf("pattern: %s but must be one of 12, 15, 18, 21, 24", comboStr)
	}
	if len(elements) < combo {
		return nil, 0, fmt.Errorf("pattern: %s but only %d possible words supplied", comboStr, len(elements))
	}
	if num >= 21 {
		return nil, 0, fmt.Errorf("pattern: attempting %d! permutations is infeasible, try anchoring more words with '^' prefix", num)
	}

	var indices []int
	for i := 0; i < len(elements); i++ {
		if anchoredSet[i] && i >= combo {
			return nil, 0, fmt.Errorf("pattern: %s but attempting to anchor a word at location %d", comboStr, i+1)
		}
		if !anchoredSet[i] {
			indices = append(indices, i)
		}
	}
	return indices, combo, nil
}

func newSeedPattern(wl *wordlist.Wordlist, elements [][]uint32, permuteIndices []int, length int) *SeedPattern {
	words := combination.Permute(elements, permuteIndices, length)
	return &SeedPattern{
		wl:             wl,
		elements:       elements,
		permuteIndices: permuteIndices,
		length:         length,
		words:          words,
		filter:         checksum.New(length),
	}
}

// Total returns the number of word lists this pattern produces before the
// checksum filter is applied.
func (s *SeedPattern) Total() *big.Int {
	return s.words.Total()
}

// Begin returns the lexicographically first word list, joined with commas.
func (s *SeedPattern) Begin() string {
	return s.toWords(s.words.Begin())
}

// End returns the lexicographically last word list, joined with commas.
func (s *SeedPattern) End() string {
	return s.toWords(s.words.End())
}

// Len returns the number of word slots (the seed phrase length).
func (s *SeedPattern) Len() int {
	return s.length
}

// EntropyBits returns the number of entropy bits carried by the last
// word, the width of the checksum filter's free-bits window -- used by
// the Mode Planner to size Binary-Charset wildcards.
func (s *SeedPattern) EntropyBits() int {
	return s.filter.EntropyBits()
}

// ValidateLength reports an error unless Len() is a valid BIP-39 mnemonic
// length (12, 15, 18, 21, or 24).
func (s *SeedPattern) ValidateLength() error {
	if validLengths[s.length] {
		return nil
	}
	return fmt.Errorf("pattern: invalid number of seed words %d, should be one of 12, 15, 18, 21, 24", s.length)
}

// Next returns the next word list, or nil once exhausted.
func (s *SeedPattern) Next() []uint32 {
	return s.words.Next()
}

// NextValid returns the next word list that also passes the BIP-39
// checksum test, or nil once exhausted.
func (s *SeedPattern) NextValid() []uint32 {
	for {
		next := s.Next()
		if next == nil {
			return nil
		}
		if s.filter.Valid(next) {
			return next
		}
	}
}

// Valid reports whether words passes the BIP-39 checksum test, exposing
// the Checksum Filter to callers (the Enumerator) that iterate with Next
// directly instead of NextValid.
func (s *SeedPattern) Valid(words []uint32) bool {
	return s.filter.Valid(words)
}

// Shard splits the pattern into independent SeedPatterns whose
// Next/NextValid sequences together cover exactly the same word lists as s,
// with no duplicates and no omissions -- the partitioning the Enumerator
// runs one goroutine per shard over. The shard count follows
// combination.Combinations.Shard: at least num where the pattern has
// enough varying slots, and often many more (splitting on a '?' slot
// yields 2048 shards).
func (s *SeedPattern) Shard(num int) []*SeedPattern {
	shards := s.words.Shard(num)
	out := make([]*SeedPattern, len(shards))
	for i, words := range shards {
		out[i] = &SeedPattern{
			wl:             s.wl,
			elements:       s.elements,
			permuteIndices: s.permuteIndices,
			length:         s.length,
			words:          words,
			filter:         s.filter,
		}
	}
	return out
}

// FormatWords renders a raw word-index list using the pattern's own
// wordlist, for callers (the Backend Driver) that hold word indices
// produced by a sharded copy of this pattern.
func (s *SeedPattern) FormatWords(words []uint32) string {
	return s.toWords(words)
}

// ValidSeeds returns the exact count of checksum-valid word lists when
// the total space is small enough to enumerate directly (matching
// EXACT_VALID_MAX in original_source/src/seed.rs), otherwise the
// reference's 2^(len/3) division estimate.
func (s *SeedPattern) ValidSeeds() *big.Int {
	const exactValidMax = 100_000
	total := s.Total()
	if total.Cmp(big.NewInt(exactValidMax)) < 0 {
		return s.exactValidSeeds()
	}
	divisor := new(big.Int).Lsh(big.NewInt(1), uint(s.length/3))
	return new(big.Int).Div(total, divisor)
}

func (s *SeedPattern) exactValidSeeds() *big.Int {
	fresh := newSeedPattern(s.wl, s.elements, s.permuteIndices, s.length)
	count := big.NewInt(0)
	for fresh.NextValid() != nil {
		count.Add(count, big.NewInt(1))
	}
	return count
}

// HashRatio is Total()/max(1, ValidSeeds()) as a float, the reference's
// "how many candidates per valid seed" metric used to size dictionary
// attacks.
func (s *SeedPattern) HashRatio() float64 {
	valid := s.ValidSeeds()
	if valid.Sign() == 0 {
		valid = big.NewInt(1)
	}
	totalF := new(big.Float).SetInt(s.Total())
	validF := new(big.Float).SetInt(valid)
	ratio, _ := new(big.Float).Quo(totalF, validF).Float64()
	return ratio
}

func (s *SeedPattern) toWords(indices []uint32) string {
	words := make([]string, len(indices))
	for i, idx := range indices {
		words[i] = s.wl.Word(uint16(idx))
	}
	return strings.Join(words, ",")
}

// ToWords renders a raw word-index list using wl, independent of any
// particular SeedPattern instance.
func ToWords(wl *wordlist.Wordlist, indices []uint32) string {
	words := make([]string, len(indices))
	for i, idx := range indices {
		words[i] = wl.Word(uint16(idx))
	}
	return strings.Join(words, ",")
}

// BinaryCharsetSeed is the literal-argument residue of a SeedPattern once
// its full-wordlist ("guessed") slots have been rewritten to be resolved
// by the backend's passphrase mask instead of pre-enumerated into the
// hashes file. Next walks every combination of the pattern's remaining
// literal/alternation slots; guessed slots are rendered as a literal "?"
// sentinel the Backend Driver leaves for the GPU to fill in.
//
// Grounded on the Seed returned by Seed::binary_charsets in
// original_source/src/seed.rs.
type BinaryCharsetSeed struct {
	args    *combination.Combinations[string]
	guesses int
}

// Next returns the next literal-argument combination, or nil once exhausted.
func (b *BinaryCharsetSeed) Next() []string {
	return b.args.Next()
}

// Total is the number of literal-argument combinations -- the hashes-file
// record count Binary-Charset mode writes, in place of the full
// checksum-valid seed count Pure-GPU mode writes.
func (b *BinaryCharsetSeed) Total() *big.Int {
	return b.args.Total()
}

// Guesses is the number of full-wordlist slots rewritten into the
// passphrase mask, the guesses argument PassphraseAttack.AddBinaryCharsets
// expects.
func (b *BinaryCharsetSeed) Guesses() int {
	return b.guesses
}

// BinaryCharsets attempts the seed-side half of Binary-Charset mode:
// rewriting every slot that ranges over the entire wordlist into a literal
// "?" guessed by the backend's passphrase mask, leaving every other slot's
// literal value or alternation list untouched. It returns ok=false,
// matching Seed::binary_charsets's None cases, when the pattern still has
// unresolved --combinations permutations, its last slot is not itself a
// full wildcard, or the resulting literal-argument space exceeds maxArgs.
func (s *SeedPattern) BinaryCharsets(maxArgs int64) (*BinaryCharsetSeed, bool) {
	if s.words.Permutations() > 1 {
		return nil, false
	}

	args := make([][]string, len(s.elements))
	guesses := 0
	lastGuessed := false
	for i, element := range s.elements {
		if len(element) == s.wl.Len() {
			guesses++
			args[i] = []string{"?"}
			lastGuessed = true
			continue
		}
		lastGuessed = false
		if len(element) > 1 {
			alts := make([]string, len(element))
			for j, idx := range element {
				alts[j] = "=" + strconv.FormatUint(uint64(idx), 10)
			}
			args[i] = alts
		} else {
			args[i] = []string{strconv.FormatUint(uint64(element[0]), 10)}
		}
	}
	if !lastGuessed {
		return nil, false
	}

	combos := combination.New(args)
	if combos.Total().Cmp(big.NewInt(maxArgs)) > 0 {
		return nil, false
	}
	return &BinaryCharsetSeed{args: combos, guesses: guesses}, true
}

// FixedPositions returns, for each slot, the single word index it is
// pinned to, or -1 if that slot still varies.
func (s *SeedPattern) FixedPositions() []int32 {
	fixed := s.words.FixedPositions()
	out := make([]int32, len(fixed))
	for i, f := range fixed {
		if f == nil {
			out[i] = -1
		} else {
			out[i] = int32(*f)
		}
	}
	return out
}
