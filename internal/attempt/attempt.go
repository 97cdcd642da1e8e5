// Package attempt defines the shared contract printed by the Preview
// component for seed patterns, derivation sets, and passphrase attacks
// alike. It is split into its own package (no other imports) purely to
// avoid a dependency cycle between internal/pattern and internal/preview.
//
// Grounded on the Attempt trait in original_source/src/logger.rs.
package attempt

import "math/big"

// Attempt is implemented by anything the Preview needs to summarize:
// a total candidate count plus the lexicographically first and last
// members it would produce.
type Attempt interface {
	Total() *big.Int
	Begin() string
	End() string
}
