// Package checksum implements the BIP-39 checksum test at the level of
// raw word indices, independent of any mnemonic string encoding. It lets
// the enumerator discard candidate word lists before ever formatting them
// as a mnemonic.
//
// Grounded bit-for-bit on SeedEncoder::valid_checksum/encode_word/char_offset
// in original_source/src/seed.rs, and cross-checked against the
// independent stdlib bit-packer in
// _examples/other_examples/nchhillar2004-brute-bip39__main.go.
package checksum

import "crypto/sha256"

// byteOffset mirrors BIP39_BYTE_OFFSET in original_source/src/seed.rs --
// used only by EncodeWord, the Backend Driver's hashes-file word encoding,
// kept here alongside the checksum math it was derived with.
const byteOffset = 48

// Filter validates the BIP-39 checksum for a fixed word-list length,
// pre-computing the entropy/checksum bit split once at construction.
type Filter struct {
	entropyBits   int
	checksumBits  int
	totalEntropy  int
	numWords      int
}

// New builds a Filter for a word list of the given length (one of
// 12, 15, 18, 21, 24).
func New(numWords int) *Filter {
	totalBits := numWords * 11
	totalEntropy := totalBits - totalBits%32
	checksumBits := totalBits - totalEntropy
	entropyBits := 11 - checksumBits
	if entropyBits < 0 {
		entropyBits = 0
	}
	return &Filter{
		entropyBits:  entropyBits,
		checksumBits: checksumBits,
		totalEntropy: totalEntropy,
		numWords:     numWords,
	}
}

// EntropyBits returns the number of entropy bits carried by the last
// word (11 minus the checksum bits it also carries).
func (f *Filter) EntropyBits() int {
	return f.entropyBits
}

// ChecksumBits returns the number of checksum bits carried by the last word.
func (f *Filter) ChecksumBits() int {
	return f.checksumBits
}

// Valid reports whether words (11-bit indices, len == f.numWords) forms a
// checksum-valid BIP-39 entropy + checksum pair.
func (f *Filter) Valid(words []uint32) bool {
	last := words[len(words)-1]
	lastEntropy := last & (0xFFFFFFFF << uint(f.checksumBits))

	entropy := make([]uint32, f.totalEntropy/32)
	offset := 32
	index := 0
	for i := 0; i < len(words)-1; i++ {
		offset -= 11
		if offset < 0 {
			entropy[index] |= words[i] >> uint(-offset)
			index++
			offset += 32
		}
		entropy[index] |= words[i] << uint(offset)
	}
	offset -= 11
	entropy[index] |= lastEntropy >> uint(-offset)

	h := sha256.New()
	for _, e := range entropy {
		var buf [4]byte
		buf[0] = byte(e >> 24)
		buf[1] = byte(e >> 16)
		buf[2] = byte(e >> 8)
		buf[3] = byte(e)
		h.Write(buf[:])
	}
	hash := h.Sum(nil)

	checksumMask := uint32(0xFFFFFFFF) >> uint(32-f.checksumBits)
	checksum := uint32(hash[0]) >> uint(8-f.checksumBits)

	return last&checksumMask == checksum
}

// EncodeWord packs one 11-bit word index into the byte alphabet the
// backend's hashes-file seed records use: a 5-bit
// high group followed by a 6-bit low group, each offset into a printable
// byte range by CharOffset.
func EncodeWord(buf []byte, num uint32) []byte {
	buf = append(buf, CharOffset(byte(num>>6), 5))
	buf = append(buf, CharOffset(byte(num&0x3F), 6))
	return buf
}

// CharOffset maps a bits-wide value into a printable byte, matching
// SeedEncoder::char_offset exactly.
func CharOffset(char byte, bits byte) byte {
	return char + byteOffset + bits
}
