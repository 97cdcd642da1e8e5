package cardinality

import (
	"testing"

	"seedcat/internal/address"
	"seedcat/internal/pattern"
	"seedcat/internal/wordlist"
)

func TestEstimateMultipliesTotals(t *testing.T) {
	wl := wordlist.Load()
	seeds, err := pattern.ParseSeed("ability,?,zoo", nil, wl)
	if err != nil {
		t.Fatal(err)
	}

	derivations, err := address.ParseDerivation(nil, address.P2PKH)
	if err != nil {
		t.Fatal(err)
	}

	passphrases, err := pattern.ParsePassphrase([]string{"?l?l"}, [4]*string{})
	if err != nil {
		t.Fatal(err)
	}

	report := Estimate(seeds, derivations, passphrases)

	want := seeds.Total().Int64() * derivations.Total().Int64() * passphrases.Total().Int64()
	if report.CandidateTotal.Int64() != want {
		t.Fatalf("CandidateTotal = %s, want %d", report.CandidateTotal, want)
	}
	if report.ValidSeedTotal == nil {
		t.Fatal("ValidSeedTotal is nil")
	}
	if report.HashRatio <= 0 {
		t.Fatalf("HashRatio = %v, want > 0", report.HashRatio)
	}

	wantHashes := report.ValidSeedTotal.Int64() * derivations.Total().Int64() * passphrases.Total().Int64()
	if report.HashTotal.Int64() != wantHashes {
		t.Fatalf("HashTotal = %s, want %d", report.HashTotal, wantHashes)
	}
}

func TestEstimateWithoutValidator(t *testing.T) {
	wl := wordlist.Load()
	seeds, err := pattern.ParseSeed("ability,?,zoo", nil, wl)
	if err != nil {
		t.Fatal(err)
	}
	derivations, err := address.ParseDerivation(nil, address.P2PKH)
	if err != nil {
		t.Fatal(err)
	}

	report := Estimate(derivations, derivations, seeds)
	if report.HashRatio != 1 {
		t.Fatalf("HashRatio = %v, want 1 for a non-validator Attempt", report.HashRatio)
	}
	if report.ValidSeedTotal.Cmp(report.SeedTotal) != 0 {
		t.Fatalf("ValidSeedTotal = %s, want SeedTotal %s", report.ValidSeedTotal, report.SeedTotal)
	}
}
