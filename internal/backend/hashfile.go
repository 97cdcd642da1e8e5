package backend

import (
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"seedcat/internal/checksum"
	"seedcat/internal/modeplanner"
	"seedcat/internal/pattern"
)

// WriteHashesFile writes one gzip-compressed "kind:path:seedbytes:address"
// record per derivation path hashcat's custom -m 28510 hash mode expects,
// for every seed candidate the chosen Mode puts in the hashes file.
//
// In BinaryCharset mode the seed's full-wordlist slots are resolved by the
// backend's passphrase mask, not pre-enumerated here -- only the seed's
// literal/alternation residue (r.BinarySeed) is written, each "?" guessed
// slot rendered as a literal '?' byte the -m 28510 hash mode treats as a
// charset placeholder. Writing the full checksum-valid seed space in this
// mode would double-count: the same entropy would be searched both via
// the hashes file and via the mask's charset wildcards.
//
// Grounded on Hashcat::write_hashes and the self.seed.total_args() record
// count it uses for the binary-charsets branch, both in
// original_source/src/hashcat.rs; gzp's parallel-gzip writer has no
// counterpart anywhere in the pack, so this uses the standard library's
// compress/gzip instead.
func (r *Runner) WriteHashesFile() error {
	f, err := os.Create(r.HashesFile())
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	kind := []byte(r.Target.Kind.String())
	addr := []byte(r.Target.Formatted)
	sep := []byte(":")
	newline := []byte("\n")

	if r.Mode == modeplanner.BinaryCharset && r.BinarySeed != nil {
		for args := r.BinarySeed.Next(); args != nil; args = r.BinarySeed.Next() {
			seedBytes := encodeLiteralArgs(args)
			for _, path := range r.Derivations.Paths {
				if err := writeAll(gz, kind, sep, []byte(path.String()), sep, seedBytes, sep, addr, newline); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for words := r.Seeds.NextValid(); words != nil; words = r.Seeds.NextValid() {
		seedBytes := encodeSeedWords(words)
		for _, path := range r.Derivations.Paths {
			if err := writeAll(gz, kind, sep, []byte(path.String()), sep, seedBytes, sep, addr, newline); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDictionaryFile renders one side of a Dict/Dict+Mask/Mask+Dict
// passphrase attack to a gzip-compressed newline-delimited file hashcat
// reads as a dictionary, returning the filename hashcat should be
// pointed at.
func (r *Runner) writeDictionaryFile(slot int, d *pattern.Dictionary) (string, error) {
	name := r.dictFile(slot)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	for phrase, ok := d.Next(); ok; phrase, ok = d.Next() {
		if err := writeAll(gz, []byte(phrase), []byte("\n")); err != nil {
			return "", err
		}
	}
	return name, nil
}

func encodeSeedWords(words []uint32) []byte {
	buf := make([]byte, 0, len(words)*2)
	for _, w := range words {
		buf = checksum.EncodeWord(buf, w)
	}
	return buf
}

// encodeLiteralArgs packs one BinaryCharsetSeed.Next() combination to
// bytes: a "?" arg (a guessed slot the mask resolves) becomes a literal
// '?' byte, everything else is the word index the arg names -- "=i" for
// one alternative out of a combination's alternation list, or a plain
// index for a single-valued slot -- packed with checksum.EncodeWord same
// as encodeSeedWords.
func encodeLiteralArgs(args []string) []byte {
	buf := make([]byte, 0, len(args)*2)
	for _, a := range args {
		if a == "?" {
			buf = append(buf, '?')
			continue
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(a, "="), 10, 32)
		if err != nil {
			continue
		}
		buf = checksum.EncodeWord(buf, uint32(n))
	}
	return buf
}

func writeAll(w io.Writer, chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}
	return nil
}
