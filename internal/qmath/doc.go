// Package qmath provides small dense complex-matrix helpers: products,
// adjoints, Kronecker products and unitarity checks over the 2x2 and 4x4
// matrices the gate library deals in.
//
// The full 2^n x 2^n density representation lives in the density package
// and is never routed through these helpers.
package qmath
