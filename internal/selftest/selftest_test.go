package selftest

import "testing"

func TestScenariosMatchKnownAddresses(t *testing.T) {
	for _, s := range Scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			if err != nil {
				t.Fatalf("Run(%s): %v", s.Name, err)
			}
			if !result.Matched {
				t.Fatalf("scenario %q: no derivation path for %s matched %s", s.Name, s.Mnemonic, s.Address)
			}
		})
	}
}

func TestRunAllReportsEveryScenario(t *testing.T) {
	results, err := RunAll()
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(Scenarios) {
		t.Fatalf("RunAll returned %d results, want %d", len(results), len(Scenarios))
	}
	for _, r := range results {
		if !r.Matched {
			t.Errorf("scenario %q did not match", r.Scenario.Name)
		}
	}
}

func TestRunRejectsInvalidMnemonic(t *testing.T) {
	s := Scenario{
		Name:     "invalid checksum",
		Mnemonic: "toy toy toy toy toy toy toy toy toy toy toy toy",
		Address:  "1AtD3g5AmR4fMsCRa1haNGmvCTVWq7YfzD",
	}
	if _, err := Run(s); err == nil {
		t.Fatalf("expected an error for an invalid-checksum mnemonic")
	}
}
