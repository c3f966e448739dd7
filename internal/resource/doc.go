// Package resource implements the pre-flight resource guard: memory
// estimation for the exponentially-sized state representations, admission
// against available system memory with a fixed safety margin, optional
// shared-budget accounting for concurrent simulations, and automatic
// feature degradation (noise disablement) above the density-matrix qubit
// cap.
package resource
