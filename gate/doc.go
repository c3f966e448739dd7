// Package gate provides the stateless library of supported quantum gates.
//
// Gates are identified by a closed Kind enum; unknown names are rejected at
// parse time rather than at application time. Matrix returns the unitary for
// a kind (2x2 for single-qubit gates, 4x4 for two-qubit gates) in
// computational-basis ordering |control,target⟩. All fixed matrices are
// package-level immutable tables built once at startup.
package gate
