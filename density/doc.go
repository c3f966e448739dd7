// Package density provides the ephemeral 2^n x 2^n density-matrix
// representation used for noise injection and entanglement measures.
//
// A Matrix is always derived from a statevec.StateVector, mutated by noise
// channels, and eventually collapsed back into a vector by taking its
// dominant eigenvector. It never outlives a single simulation and is capped
// at MaxQubits because every operation on it is O(4^n).
package density
