// Package circuit defines the circuit descriptor consumed by the simulation
// engine: the gate sequence, its validation rules and the initial-state
// specifier.
//
// A Circuit is a plain value type. Validation is strict and happens before
// any state is allocated: qubit counts outside [1,30], out-of-range or
// duplicate qubit indices, arity mismatches and missing rotation parameters
// all fail fast with typed errors and no partial mutation.
package circuit
