// Package address classifies recovery targets and parses derivation-path
// patterns. Grounded on original_source/src/address.rs.
package address

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"seedcat/internal/attempt"
)

// Kind tags the four address variants the core recognizes.
type Kind int

const (
	XPUB Kind = iota
	P2PKH
	P2SHP2WPKH
	P2WPKH
)

func (k Kind) String() string {
	switch k {
	case XPUB:
		return "XPUB"
	case P2PKH:
		return "P2PKH"
	case P2SHP2WPKH:
		return "P2SH-P2WPKH"
	case P2WPKH:
		return "P2WPKH"
	default:
		return "UNKNOWN"
	}
}

// kindInfo mirrors AddressKind in original_source/src/address.rs: a
// textual prefix used for classification, a human name, and the default
// derivation templates used when --derivation is omitted.
type kindInfo struct {
	kind              Kind
	name              string
	start             string
	defaultTemplates  []string
}

// kinds is evaluated in order; the first textual-prefix match wins, same
// as address_kinds() in original_source/src/address.rs. P2PKH and
// P2SH-P2WPKH each carry two default templates (unhardened + hardened
// BIP44/49), a correction over spec.md's simplified single-default table
// -- see SPEC_FULL.md §4.2 and DESIGN.md.
var kinds = []kindInfo{
	{XPUB, "Master Extended Public Key", "xpub", nil},
	{P2PKH, "Legacy", "1", []string{"m/0/0", "m/44'/0'/0'/0/0"}},
	{P2SHP2WPKH, "Nested Segwit", "3", []string{"m/0/0", "m/49'/0'/0'/0/0"}},
	{P2WPKH, "Native Segwit", "bc1", []string{"m/84'/0'/0'/0/0"}},
}

// Target is a classified, validated recovery address.
type Target struct {
	Formatted string
	Kind      Kind
	Hash160   []byte                  // P2PKH / P2SH-P2WPKH / P2WPKH
	XPub      *hdkeychain.ExtendedKey // XPUB only
}

// Classify decodes and validates address, returning its Kind and decoded
// payload. An invalid address is a fatal configuration error (InvalidAddress).
func Classify(address string) (*Target, error) {
	for _, ki := range kinds {
		if !strings.HasPrefix(address, ki.start) {
			continue
		}
		if ki.kind == XPUB {
			key, err := hdkeychain.NewKeyFromString(address)
			if err != nil {
				return nil, fmt.Errorf("address: InvalidAddress: xpub is not correctly encoded: %w", err)
			}
			if !isMasterXPub(key) {
				return nil, fmt.Errorf("address: InvalidAddress: xpub is not a master public key (use an address instead)")
			}
			return &Target{Formatted: address, Kind: XPUB, XPub: key}, nil
		}

		decoded, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
		if err != nil {
			return nil, fmt.Errorf("address: InvalidAddress: not correctly encoded: %w", err)
		}
		hash, err := hash160Of(decoded)
		if err != nil {
			return nil, fmt.Errorf("address: InvalidAddress: %w", err)
		}
		return &Target{Formatted: address, Kind: ki.kind, Hash160: hash}, nil
	}
	return nil, fmt.Errorf("address: InvalidAddress: %q matches none of XPUB/P2PKH/P2SH-P2WPKH/P2WPKH prefixes", address)
}

func hash160Of(addr btcutil.Address) ([]byte, error) {
	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		h := a.Hash160()
		return h[:], nil
	case *btcutil.AddressScriptHash:
		h := a.Hash160()
		return h[:], nil
	case *btcutil.AddressWitnessPubKeyHash:
		h := a.Hash160()
		return h[:], nil
	default:
		return nil, fmt.Errorf("unsupported address encoding %T", addr)
	}
}

func isMasterXPub(key *hdkeychain.ExtendedKey) bool {
	return !key.IsPrivate() && key.Depth() == 0 && key.ChildIndex() == 0
}

// Component is one element of a derivation path: a child index and
// whether it is hardened.
type Component struct {
	Index    uint32
	Hardened bool
}

// Path is a fully-resolved derivation path, e.g. m/44'/0'/0'/0/0.
type Path []Component

// String renders the path in its canonical form, hardened components
// marked with ' (§3 calls ' canonical; derivationNodes also accepts the
// equivalent h spelling on input, e.g. in --derivation arguments, but
// String never echoes that spelling back).
func (p Path) String() string {
	parts := make([]string, 0, len(p)+1)
	parts = append(parts, "m")
	for _, c := range p {
		if c.Hardened {
			parts = append(parts, fmt.Sprintf("%d'", c.Index))
		} else {
			parts = append(parts, strconv.FormatUint(uint64(c.Index), 10))
		}
	}
	return strings.Join(parts, "/")
}

// DerivationSet is the effective cartesian union of derivation templates,
// implementing attempt.Attempt so the Preview can summarize it uniformly.
type DerivationSet struct {
	Paths []Path
	arg   string
}

var _ attempt.Attempt = (*DerivationSet)(nil)

func (d *DerivationSet) Total() *big.Int { return big.NewInt(int64(len(d.Paths))) }
func (d *DerivationSet) Begin() string   { return d.Paths[0].String() }
func (d *DerivationSet) End() string     { return d.Paths[len(d.Paths)-1].String() }
func (d *DerivationSet) Arg() string     { return d.arg }

// ParseDerivation parses --derivation's spec for the given address kind,
// falling back to the kind's default templates when spec is nil. For XPUB
// targets, derivations are always ignored (a single root path "m"), matching §3's
// "For master-XPUB targets, derivations are ignored" invariant.
func ParseDerivation(spec *string, kind Kind) (*DerivationSet, error) {
	ki := kindInfo{}
	for _, k := range kinds {
		if k.kind == kind {
			ki = k
			break
		}
	}
	if kind == XPUB {
		return &DerivationSet{Paths: []Path{{}}, arg: "m/"}, nil
	}

	var templates []string
	var arg string
	if spec == nil {
		templates = ki.defaultTemplates
		arg = strings.Join(templates, ",")
	} else {
		sep := " "
		if strings.Contains(*spec, ",") {
			sep = ","
		}
		for _, t := range strings.Split(*spec, sep) {
			templates = append(templates, t)
		}
		arg = strings.Join(templates, ",")
	}

	var paths []Path
	for _, tmpl := range templates {
		rest, ok := strings.CutPrefix(tmpl, "m/")
		if !ok {
			return nil, fmt.Errorf("address: InvalidDerivationPath: %q must start with 'm/'", tmpl)
		}
		expanded, err := derivationPaths(rest)
		if err != nil {
			return nil, fmt.Errorf("address: InvalidDerivationPath: bad element in %q: %w", tmpl, err)
		}
		paths = append(paths, expanded...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("address: InvalidDerivationPath: no derivation templates supplied")
	}
	return &DerivationSet{Paths: paths, arg: arg}, nil
}

// derivationPaths expands one slash-separated template (sans leading "m/")
// into every concrete Path implied by its ?-wildcards, via the same
// left-to-right cartesian accumulation as derivation_paths() in
// original_source/src/address.rs.
func derivationPaths(tmpl string) ([]Path, error) {
	output := []Path{{}}
	for _, segment := range strings.Split(tmpl, "/") {
		nodes, err := derivationNodes(segment)
		if err != nil {
			return nil, err
		}
		var next []Path
		for _, existing := range output {
			for _, node := range nodes {
				p := make(Path, len(existing), len(existing)+1)
				copy(p, existing)
				p = append(p, node)
				next = append(next, p)
			}
		}
		output = next
	}
	return output, nil
}

// derivationNodes parses one path component: an optional "?" prefix means
// expand 0..=num inclusive (PathTooDeep-free expansion), and an "h" or "'"
// suffix marks the component hardened.
func derivationNodes(segment string) ([]Component, error) {
	hardened := false
	if strings.HasSuffix(segment, "h") || strings.HasSuffix(segment, "'") {
		hardened = true
		segment = segment[:len(segment)-1]
	}
	wildcard := false
	if strings.HasPrefix(segment, "?") {
		wildcard = true
		segment = segment[1:]
	}

	num, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", segment)
	}

	if !wildcard {
		return []Component{{Index: uint32(num), Hardened: hardened}}, nil
	}

	nodes := make([]Component, 0, num+1)
	for i := uint64(0); i <= num; i++ {
		nodes = append(nodes, Component{Index: uint32(i), Hardened: hardened})
	}
	return nodes, nil
}
