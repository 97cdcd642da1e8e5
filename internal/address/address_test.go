package address

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		addr string
		kind Kind
		ok   bool
	}{
		{"1BoatSLRHtKNngkdXEeobR76b53LETtpyT", P2PKH, true},
		{"3P14159f73E4gFr7JterCCQh9QjiTjiZrG", P2SHP2WPKH, true},
		{"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", P2WPKH, true},
		{"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8", XPUB, true},
		{"not-an-address", 0, false},
	}
	for _, c := range cases {
		target, err := Classify(c.addr)
		if c.ok && err != nil {
			t.Fatalf("Classify(%q): unexpected error: %v", c.addr, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("Classify(%q): expected error, got none", c.addr)
		}
		if c.ok && target.Kind != c.kind {
			t.Fatalf("Classify(%q): expected kind %v, got %v", c.addr, c.kind, target.Kind)
		}
	}
}

func TestClassifyRejectsNonMasterXPub(t *testing.T) {
	// A valid xpub string that is a derived (non-master) key should be
	// rejected, per AddressValid::kind in original_source/src/address.rs.
	_, err := Classify("xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6oKGwg8yit52V2aZm1Vqpnwj32fHXVd31CkLb6KBzXcPoiLMSHZ2")
	if err == nil {
		t.Fatalf("expected error classifying a non-master xpub")
	}
}

func TestDerivationNodesPlain(t *testing.T) {
	nodes, err := derivationNodes("44'")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].Index != 44 || !nodes[0].Hardened {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}

	nodes, err = derivationNodes("0")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].Index != 0 || nodes[0].Hardened {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
}

func TestDerivationNodesWildcard(t *testing.T) {
	nodes, err := derivationNodes("?2")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 0..=2 inclusive (3 nodes), got %d", len(nodes))
	}
	for i, n := range nodes {
		if n.Index != uint32(i) {
			t.Fatalf("expected index %d at position %d, got %d", i, i, n.Index)
		}
	}
}

func TestDerivationPathsExpandsCartesian(t *testing.T) {
	paths, err := derivationPaths("44'/0'/0'/0/?1")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 expanded paths, got %d", len(paths))
	}
	if paths[0].String() != "m/44'/0'/0'/0/0" {
		t.Fatalf("unexpected first path: %s", paths[0].String())
	}
	if paths[1].String() != "m/44'/0'/0'/0/1" {
		t.Fatalf("unexpected second path: %s", paths[1].String())
	}
}

func TestParseDerivationDefaultsP2PKH(t *testing.T) {
	ds, err := ParseDerivation(nil, P2PKH)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Paths) != 2 {
		t.Fatalf("expected 2 default P2PKH paths, got %d", len(ds.Paths))
	}
	if ds.Begin() != "m/0/0" || ds.End() != "m/44'/0'/0'/0/0" {
		t.Fatalf("unexpected begin/end: %s .. %s", ds.Begin(), ds.End())
	}
}

func TestParseDerivationXPubIgnoresSpec(t *testing.T) {
	spec := "m/1"
	ds, err := ParseDerivation(&spec, XPUB)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Paths) != 1 || ds.Begin() != "m" {
		t.Fatalf("expected derivations to be ignored for XPUB, got %+v", ds.Paths)
	}
}

func TestParseDerivationRejectsMissingPrefix(t *testing.T) {
	spec := "44'/0'/0'/0/0"
	if _, err := ParseDerivation(&spec, P2PKH); err == nil {
		t.Fatalf("expected error for template missing m/ prefix")
	}
}
