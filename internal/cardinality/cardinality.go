// Package cardinality combines the exact candidate counts each attack
// dimension reports into the size estimate seedcat prints before asking
// the operator to confirm a run.
//
// Grounded on the multiplication original_source/src/main.rs's configure()
// performs across the parsed Seed, derivation, and Passphrase totals
// before its confirmation prompt.
package cardinality

import (
	"math/big"

	"seedcat/internal/attempt"
)

// Report is the full size estimate for one recovery attempt: how many
// seed word lists, derivation paths, and passphrases exist, how many of
// the word lists are checksum-valid, and the resulting number of guesses
// the Backend Driver will actually run.
type Report struct {
	SeedTotal       *big.Int
	ValidSeedTotal  *big.Int
	HashRatio       float64
	DerivationTotal *big.Int
	PassphraseTotal *big.Int
	CandidateTotal  *big.Int
	HashTotal       *big.Int
}

// validator is implemented by *pattern.SeedPattern. It's kept as a narrow
// local interface, rather than importing internal/pattern directly, so
// this package stays a leaf that anything can depend on.
type validator interface {
	ValidSeeds() *big.Int
	HashRatio() float64
}

// Estimate multiplies seeds, derivations, and passphrases's Total()s
// together into CandidateTotal (every word list before the checksum
// filter runs), and into HashTotal using seeds' checksum-valid count
// instead when seeds also implements validator.
func Estimate(seeds, derivations, passphrases attempt.Attempt) *Report {
	r := &Report{
		SeedTotal:       seeds.Total(),
		DerivationTotal: derivations.Total(),
		PassphraseTotal: passphrases.Total(),
	}

	r.CandidateTotal = new(big.Int).Mul(r.SeedTotal, r.DerivationTotal)
	r.CandidateTotal.Mul(r.CandidateTotal, r.PassphraseTotal)

	if v, ok := seeds.(validator); ok {
		r.ValidSeedTotal = v.ValidSeeds()
		r.HashRatio = v.HashRatio()
	} else {
		r.ValidSeedTotal = new(big.Int).Set(r.SeedTotal)
		r.HashRatio = 1
	}

	r.HashTotal = new(big.Int).Mul(r.ValidSeedTotal, r.DerivationTotal)
	r.HashTotal.Mul(r.HashTotal, r.PassphraseTotal)

	return r
}
