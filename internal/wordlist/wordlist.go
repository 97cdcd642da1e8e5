// Package wordlist holds the canonical BIP-39 English word list and the
// bidirectional word<->index mapping the rest of seedcat is built on.
package wordlist

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// Size is the fixed length of the BIP-39 English word list. Every word
// carries exactly 11 bits of entropy (2^11 == Size).
const Size = 2048

// Wordlist is the loaded, immutable word<->index map. The underlying slice
// is already sorted (the standard BIP-39 list ships in lexicographic order),
// so index order and byte-wise spelling order coincide.
type Wordlist struct {
	words []string
	index map[string]uint16
}

// Load builds the Wordlist from the reference library's embedded English
// list rather than shipping our own copy of the 2048 words.
func Load() *Wordlist {
	words := bip39.GetWordList()
	index := make(map[string]uint16, len(words))
	for i, w := range words {
		index[w] = uint16(i)
	}
	return &Wordlist{words: words, index: index}
}

// Word returns the canonical spelling for i. Panics if i is out of range;
// callers are expected to have validated indices against Size already.
func (w *Wordlist) Word(i uint16) string {
	return w.words[i]
}

// Index returns the word index for a lowercase spelling.
func (w *Wordlist) Index(word string) (uint16, bool) {
	i, ok := w.index[word]
	return i, ok
}

// MustIndex is Index for call sites that already know the word is valid.
func (w *Wordlist) MustIndex(word string) uint16 {
	i, ok := w.Index(word)
	if !ok {
		panic(fmt.Sprintf("wordlist: %q is not a BIP-39 word", word))
	}
	return i
}

// Len returns the number of words (always Size for a loaded list).
func (w *Wordlist) Len() int {
	return len(w.words)
}
