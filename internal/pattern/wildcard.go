package pattern

import "fmt"

// Wildcard is one hashcat-style mask character class: a flag letter/digit,
// how many distinct characters it spans, and the lexicographically first
// and last characters it contributes to a mask's example strings.
//
// Grounded on Wildcard::new/new_chars/new_binary/new_custom in
// original_source/src/passphrase.rs.
type Wildcard struct {
	Flag         byte
	Display      string
	Length       uint64
	ExampleStart string
	ExampleEnd   string
	Charset      []byte
}

// builtinWildcards mirrors the literal map built by wildcards() in
// original_source/src/passphrase.rs.
func builtinWildcards() []Wildcard {
	return []Wildcard{
		{Flag: 'l', Display: "abcdefghijklmnopqrstuvwxyz", Length: 26, ExampleStart: "a", ExampleEnd: "z"},
		{Flag: 'u', Display: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", Length: 26, ExampleStart: "A", ExampleEnd: "Z"},
		{Flag: 'd', Display: "0123456789", Length: 10, ExampleStart: "0", ExampleEnd: "9"},
		{Flag: 'h', Display: "0123456789abcdef", Length: 16, ExampleStart: "0", ExampleEnd: "f"},
		{Flag: 'H', Display: "0123456789ABCDEF", Length: 16, ExampleStart: "0", ExampleEnd: "F"},
		{Flag: 's', Display: "«space»!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", Length: 33, ExampleStart: " ", ExampleEnd: "~"},
		{Flag: 'a', Display: "all printable ASCII", Length: 95, ExampleStart: "a", ExampleEnd: "~"},
		{Flag: 'b', Display: "all 256 byte values", Length: 256, ExampleStart: "0x00", ExampleEnd: "0xFF"},
		{Flag: '?', Display: "a literal ?", Length: 1, ExampleStart: "?", ExampleEnd: "?"},
	}
}

// UserCharsets holds the custom charsets bound to ?1-?4, from
// --custom-charset1..4 and, when the Mode Planner picks Binary-Charset
// mode, synthesized binary charsets filling whichever slots are free.
type UserCharsets struct {
	charsets map[int]Wildcard
}

// NewUserCharsets builds a UserCharsets from the four (possibly nil)
// --custom-charset1..4 values.
func NewUserCharsets(customCharsets [4]*string) (*UserCharsets, error) {
	u := NewEmptyUserCharsets()
	for i, c := range customCharsets {
		if c == nil {
			continue
		}
		w, err := newCustomWildcard(byte('1'+i), *c)
		if err != nil {
			return nil, err
		}
		u.charsets[i+1] = w
	}
	return u, nil
}

// NewEmptyUserCharsets returns a UserCharsets with no custom charsets bound.
func NewEmptyUserCharsets() *UserCharsets {
	return &UserCharsets{charsets: map[int]Wildcard{}}
}

func (u *UserCharsets) clone() *UserCharsets {
	c := make(map[int]Wildcard, len(u.charsets))
	for k, v := range u.charsets {
		c[k] = v
	}
	return &UserCharsets{charsets: c}
}

// ToWildcards returns the bound custom charsets, in slot order.
func (u *UserCharsets) ToWildcards() []Wildcard {
	var out []Wildcard
	for slot := 1; slot <= 4; slot++ {
		if w, ok := u.charsets[slot]; ok {
			out = append(out, w)
		}
	}
	return out
}

// AddBinaryCharsets fills whichever of ?1-?4 are still unbound with
// synthetic charsets sized entropyBits, 6, and 5 bits, assigning each to
// the lowest-numbered free slot. It returns the three wildcards in
// [5-bit, 6-bit, entropy-bit] order, or fewer than 3 if there weren't
// enough free slots -- the caller (PassphraseAttack.AddBinaryCharsets)
// treats anything short of 3 as "can't use this mode" rather than an error.
//
// Grounded on UserCharsets::add_binary_charsets.
func (u *UserCharsets) AddBinaryCharsets(entropyBits int) ([]Wildcard, error) {
	occupied := make(map[int]bool, len(u.charsets))
	for slot := range u.charsets {
		occupied[slot] = true
	}

	stack := []int{entropyBits, 6, 5}
	var added []Wildcard
	for len(stack) > 0 {
		bits := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		slot := -1
		for s := 1; s <= 4; s++ {
			if !occupied[s] {
				slot = s
				break
			}
		}
		if slot == -1 {
			return added, nil
		}

		w, err := newBinaryWildcard(byte('0'+slot), bits)
		if err != nil {
			return added, err
		}
		u.charsets[slot] = w
		occupied[slot] = true
		added = append(added, w)
	}
	return added, nil
}

func newCustomWildcard(flag byte, chars string) (Wildcard, error) {
	runes := []rune(chars)
	if len(runes) == 0 {
		return Wildcard{}, fmt.Errorf("pattern: custom charset ?%c is empty", flag)
	}
	return Wildcard{
		Flag:         flag,
		Display:      fmt.Sprintf("custom charset %q", chars),
		Length:       uint64(len(runes)),
		ExampleStart: string(runes[0]),
		ExampleEnd:   string(runes[len(runes)-1]),
		Charset:      []byte(chars),
	}, nil
}

func newBinaryWildcard(flag byte, bits int) (Wildcard, error) {
	if bits <= 0 || bits > 8 {
		return Wildcard{}, fmt.Errorf("pattern: binary charset width %d bits out of range", bits)
	}
	size := 1 << bits
	charset := make([]byte, size)
	for i := range charset {
		charset[i] = byte(i)
	}
	return Wildcard{
		Flag:    flag,
		Display: fmt.Sprintf("synthetic binary charset (%d bits)", bits),
		Length:  uint64(size),
		Charset: charset,
	}, nil
}

func wildcardTable(u *UserCharsets) map[byte]Wildcard {
	table := make(map[byte]Wildcard)
	for _, w := range builtinWildcards() {
		table[w.Flag] = w
	}
	for _, w := range u.charsets {
		table[w.Flag] = w
	}
	return table
}
