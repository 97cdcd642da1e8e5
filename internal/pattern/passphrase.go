package pattern

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"seedcat/internal/attempt"
	"seedcat/internal/combination"
)

// maxDict mirrors MAX_DICT in original_source/src/passphrase.rs.
const maxDict = 1_000_000_000

const passphraseErrHint = `Passphrase takes at most 2 args with the following possibilities:
  DICT attack:            --passphrase 'prefix,./dicts/dict.txt,suffix'
  MASK attack:            --passphrase 'prefix?l?l?l?d?d?1suffix'
  DICT DICT attack:       --passphrase './dicts/dict.txt,deliminator' './dicts/dict.txt'
  DICT MASK attack:       --passphrase './dict.txt' '?l?l?l?d?1'
  MASK DICT attack:       --passphrase '?l?l?l?d?1' './dict.txt'

  DICT files should be comma-separated relative paths starting with './' or deliminators
  MASK attacks should contain a mix of wildcards and normal characters
  To escape special characters '?' ',' '/' just double them, e.g. '??' ',,' '//'`

// PassphraseArg is either a Mask or a Dictionary -- the left or right half
// of a PassphraseAttack.
type PassphraseArg interface {
	attempt.Attempt
}

// PassphraseAttack is a parsed --passphrase argument set, one or two
// PassphraseArgs combined the way hashcat's attack modes combine them.
//
// Grounded on Passphrase::from_arg/validate_arg in
// original_source/src/passphrase.rs. AttackMode numbering matches
// hashcat's -a flag: 0 dict, 1 dict+dict, 3 mask, 6 dict+mask, 7 mask+dict.
type PassphraseAttack struct {
	AttackMode int
	Left       PassphraseArg
	Right      PassphraseArg
	Charsets   *UserCharsets
}

var _ attempt.Attempt = (*PassphraseAttack)(nil)

// EmptyMask is the zero passphrase: a single empty mask, attack mode 3.
func EmptyMask() *PassphraseAttack {
	return &PassphraseAttack{AttackMode: 3, Left: &Mask{count: 1}, Charsets: NewEmptyUserCharsets()}
}

func (p *PassphraseAttack) Total() *big.Int {
	total := new(big.Int).Set(p.Left.Total())
	if p.Right != nil {
		total.Mul(total, p.Right.Total())
	}
	return total
}

func (p *PassphraseAttack) Begin() string {
	if p.Right != nil {
		return p.Left.Begin() + p.Right.Begin()
	}
	return p.Left.Begin()
}

func (p *PassphraseAttack) End() string {
	if p.Right != nil {
		return p.Left.End() + p.Right.End()
	}
	return p.Left.End()
}

// ParsePassphrase parses one or two --passphrase arguments, and the four
// --custom-charset1..4 values, into a PassphraseAttack.
func ParsePassphrase(args []string, customCharsets [4]*string) (*PassphraseAttack, error) {
	charsets, err := NewUserCharsets(customCharsets)
	if err != nil {
		return nil, err
	}

	var parsed []PassphraseArg
	for _, a := range args {
		arg, err := validateArg(a, charsets)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, arg)
	}

	switch len(parsed) {
	case 1:
		if _, ok := parsed[0].(*Mask); ok {
			return &PassphraseAttack{AttackMode: 3, Left: parsed[0], Charsets: charsets}, nil
		}
		return &PassphraseAttack{AttackMode: 0, Left: parsed[0], Charsets: charsets}, nil
	case 2:
		_, leftDict := parsed[0].(*Dictionary)
		_, rightDict := parsed[1].(*Dictionary)
		switch {
		case leftDict && rightDict:
			return &PassphraseAttack{AttackMode: 1, Left: parsed[0], Right: parsed[1], Charsets: charsets}, nil
		case leftDict && !rightDict:
			return &PassphraseAttack{AttackMode: 6, Left: parsed[0], Right: parsed[1], Charsets: charsets}, nil
		case !leftDict && rightDict:
			return &PassphraseAttack{AttackMode: 7, Left: parsed[0], Right: parsed[1], Charsets: charsets}, nil
		default:
			return nil, fmt.Errorf("pattern: invalid passphrase args %v (two masks not allowed)\n%s", args, passphraseErrHint)
		}
	default:
		return nil, fmt.Errorf("pattern: invalid passphrase args %v\n%s", args, passphraseErrHint)
	}
}

// AddBinaryCharsets rewrites p into the Binary-Charset form used when the
// Mode Planner selects that mode: the guessed seed words become binary
// wildcards prefixed onto the mask -- a 5-bit + 6-bit pair for each guessed
// word but the last, and a single entropyBits-wide wildcard for the last
// (checksum-carrying) one. Returns nil, nil (not an error) if three free
// custom-charset slots aren't available.
//
// Grounded on Passphrase::add_binary_charsets.
func (p *PassphraseAttack) AddBinaryCharsets(guesses, entropyBits int) (*PassphraseAttack, error) {
	charsets := p.Charsets.clone()
	wildcards, err := charsets.AddBinaryCharsets(entropyBits)
	if err != nil {
		return nil, err
	}
	if len(wildcards) != 3 {
		return nil, nil
	}

	left := p.Left
	right := p.Right
	mode := p.AttackMode
	if d, ok := p.Left.(*Dictionary); ok && right == nil {
		right = d
		left = &Mask{count: 1}
		mode = 7
	}

	m, ok := left.(*Mask)
	if !ok {
		return nil, nil
	}
	m = m.clone()
	m.prefixWild(wildcards[2])
	for i := 1; i < guesses; i++ {
		m.prefixWild(wildcards[1])
		m.prefixWild(wildcards[0])
	}

	return &PassphraseAttack{AttackMode: mode, Left: m, Right: right, Charsets: charsets}, nil
}

func validateArg(arg string, charsets *UserCharsets) (PassphraseArg, error) {
	if strings.Contains(strings.ReplaceAll(arg, "??", ""), "?") {
		return mask(arg, charsets)
	}
	return dict(arg)
}

// Mask is a hashcat-style mask: a mix of literal characters and
// ?<flag> wildcards.
type Mask struct {
	Arg          string
	count        uint64
	ExampleStart string
	ExampleEnd   string
}

var _ attempt.Attempt = (*Mask)(nil)

func (m *Mask) Total() *big.Int { return new(big.Int).SetUint64(m.count) }
func (m *Mask) Begin() string   { return m.ExampleStart }
func (m *Mask) End() string     { return m.ExampleEnd }

func (m *Mask) clone() *Mask {
	c := *m
	return &c
}

func (m *Mask) prefixWild(w Wildcard) {
	m.count = saturatingMulU64(m.count, w.Length)
	m.Arg = fmt.Sprintf("?%c%s", w.Flag, m.Arg)
}

func mask(arg string, charsets *UserCharsets) (*Mask, error) {
	arg = strings.ReplaceAll(arg, "//", "/")
	arg = strings.ReplaceAll(arg, ",,", ",")

	table := wildcardTable(charsets)
	var start, end strings.Builder
	total := uint64(1)
	question := false

	for _, c := range arg {
		if question {
			w, ok := table[byte(c)]
			if !ok {
				return nil, wildcardErr(c, table)
			}
			start.WriteString(w.ExampleStart)
			end.WriteString(w.ExampleEnd)
			total = saturatingMulU64(total, w.Length)
			question = false
			continue
		}
		if c == '?' {
			question = true
			continue
		}
		start.WriteRune(c)
		end.WriteRune(c)
	}
	if question {
		return nil, fmt.Errorf("pattern: mask %q ends in a ? use ?? to escape", arg)
	}

	return &Mask{Arg: arg, count: total, ExampleStart: start.String(), ExampleEnd: end.String()}, nil
}

func wildcardErr(unknown rune, table map[byte]Wildcard) error {
	flags := make([]byte, 0, len(table))
	for f := range table {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	var valid []string
	for _, f := range flags {
		valid = append(valid, fmt.Sprintf("  ?%c - %s", f, table[f].Display))
	}
	return fmt.Errorf("pattern: wildcard '?%c' is unknown, valid wildcards are:\n%s", unknown, strings.Join(valid, "\n"))
}

// Dictionary is a Cartesian product of comma-separated literal and
// dictionary-file segments, concatenated with no separator.
type Dictionary struct {
	combinations *combination.Combinations[string]
}

var _ attempt.Attempt = (*Dictionary)(nil)

func (d *Dictionary) Total() *big.Int { return d.combinations.Total() }
func (d *Dictionary) Begin() string   { return strings.Join(d.combinations.Begin(), "") }
func (d *Dictionary) End() string     { return strings.Join(d.combinations.End(), "") }

// Next returns the next candidate passphrase segment-concatenation, or
// "", false once exhausted.
func (d *Dictionary) Next() (string, bool) {
	next := d.combinations.Next()
	if next == nil {
		return "", false
	}
	return strings.Join(next, ""), true
}

func newDictionary(segments [][]string, arg string) (*Dictionary, error) {
	combinations := combination.New(segments)
	if combinations.Total().Cmp(big.NewInt(maxDict)) > 0 {
		return nil, fmt.Errorf("pattern: dictionaries %q exceed 1B combinations\n  Try splitting into 2 args or reducing size", arg)
	}
	return &Dictionary{combinations: combinations}, nil
}

func dict(arg string) (*Dictionary, error) {
	var segments [][]string
	for _, seg := range strings.Split(arg, ",") {
		switch {
		case strings.HasPrefix(seg, "./") && !strings.HasPrefix(seg, ".//"):
			lines, err := readDictFile(seg)
			if err != nil {
				return nil, fmt.Errorf("pattern: failed to read file %q\n%s: %w", seg, passphraseErrHint, err)
			}
			segments = append(segments, lines)
		case seg == "":
			segments = append(segments, []string{","})
		default:
			replaced := strings.ReplaceAll(strings.ReplaceAll(seg, "??", "?"), "//", "/")
			segments = append(segments, []string{replaced})
		}
	}
	return newDictionary(segments, arg)
}

// readDictFile loads one dictionary segment file, one candidate word per
// line. Adapted from the bufio.Scanner idiom in the reference module's
// internal/lookup/loader.go LoadFromReader, rebound from "TSV address
// rows" to "newline-delimited dictionary words".
func readDictFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// NormalizeNFKD applies Unicode NFKD normalization to a passphrase, as
// BIP-39 requires before it is fed into PBKDF2. Not part of
// original_source (which only ever handles ASCII passphrase charsets);
// supplied here because a real BIP-39 implementation must do it.
func NormalizeNFKD(passphrase string) string {
	return norm.NFKD.String(passphrase)
}

func saturatingMulU64(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b != a {
		return ^uint64(0)
	}
	return product
}
