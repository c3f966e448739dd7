// Package statevec implements the exact pure-state representation of a
// qubit register and its mutations.
//
// Amplitudes are stored as a flat []complex128 of length 2^n with the
// little-endian bit convention: qubit q of basis index i is bit q of i.
// Gates are applied by direct bit-indexed arithmetic over amplitude pairs
// (single-qubit) or 4-way groups (two-qubit); no tensor-product matrix is
// ever materialized, which is what lets the engine scale toward n=30.
//
// Single-qubit diagnostics (reduced density matrix, Bloch vector, purity)
// are computed in a single O(2^n) pass, never through the full 2^n x 2^n
// density matrix.
package statevec
