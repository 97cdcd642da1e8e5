// Package modeplanner chooses how the Backend Driver hands candidates to
// the external process: Binary-Charset (seed words folded into the mask
// as literal wildcards), Pure-GPU (hashes file only, no stdin streaming),
// or Stdin (candidates streamed one per line).
//
// Grounded on original_source/src/hashcat.rs's pure_gpu/within_max_hashes/
// has_enough_passphrases/uses_binary_charsets and its exact thresholds.
package modeplanner

import (
	"math/big"

	"seedcat/internal/cardinality"
	"seedcat/internal/pattern"
)

// DefaultMaxHashes mirrors DEFAULT_MAX_HASHES in original_source/src/hashcat.rs.
const DefaultMaxHashes = 10_000_000

// DefaultMinPassphrases mirrors DEFAULT_MIN_PASSPHRASES.
const DefaultMinPassphrases = 10_000

// Mode is the chosen Backend Driver dispatch strategy.
type Mode int

const (
	PureGPU Mode = iota
	BinaryCharset
	Stdin
)

func (m Mode) String() string {
	switch m {
	case PureGPU:
		return "pure-gpu"
	case BinaryCharset:
		return "binary-charset"
	case Stdin:
		return "stdin"
	default:
		return "unknown"
	}
}

// Plan is the chosen mode plus the passphrase attack the Backend Driver
// should actually run -- rewritten to embed seed words as mask wildcards
// when Mode is BinaryCharset -- and, for that mode, the seed-side literal
// residue the Backend Driver writes to the hashes file instead of the full
// checksum-valid seed space.
type Plan struct {
	Mode        Mode
	Passphrases *pattern.PassphraseAttack
	BinarySeed  *pattern.BinaryCharsetSeed
	Report      *cardinality.Report
}

// Choose picks a Plan for one recovery attempt.
//
// Binary-Charset is tried first and wins unconditionally when it applies,
// matching uses_binary_charsets() || (...) short-circuiting on the left.
// It only applies when the seed pattern itself qualifies -- its last slot
// must be a full wildcard with no unresolved --combinations permutations,
// see SeedPattern.BinaryCharsets -- and the passphrase attack's mask side
// then has room for the resulting guesses to be rewritten onto it, see
// PassphraseAttack.AddBinaryCharsets.
func Choose(seeds *pattern.SeedPattern, passphrases *pattern.PassphraseAttack, report *cardinality.Report) *Plan {
	if binarySeed, ok := seeds.BinaryCharsets(DefaultMaxHashes); ok {
		if rewritten, err := passphrases.AddBinaryCharsets(binarySeed.Guesses(), seeds.EntropyBits()); err == nil && rewritten != nil {
			return &Plan{Mode: BinaryCharset, Passphrases: rewritten, BinarySeed: binarySeed, Report: report}
		}
	}

	hashes := new(big.Int).Mul(report.ValidSeedTotal, report.DerivationTotal)
	if withinMaxHashes(hashes) && hasEnoughPassphrases(report.PassphraseTotal) {
		return &Plan{Mode: PureGPU, Passphrases: passphrases, Report: report}
	}

	return &Plan{Mode: Stdin, Passphrases: passphrases, Report: report}
}

func withinMaxHashes(total *big.Int) bool {
	return total.Cmp(big.NewInt(DefaultMaxHashes)) <= 0
}

func hasEnoughPassphrases(total *big.Int) bool {
	return total.Cmp(big.NewInt(DefaultMinPassphrases)) >= 0
}
