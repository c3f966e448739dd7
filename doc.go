// Package qsim provides an embedded quantum-circuit simulation engine for Go.
//
// Qsim maintains an exact complex state vector for up to 30 qubits, applies
// gate sequences by bit-indexed tensor arithmetic, optionally injects
// hardware-realistic noise (decoherence, gate error, readout error,
// crosstalk, thermal bias) and extracts per-qubit diagnostics (Bloch
// vector, purity, entanglement measures) under strict memory bounds.
//
// # Quick Start
//
//	sim := qsim.New(qsim.WithSeed(42))
//
//	bell := qsim.Build(2).H(0).CNOT(0, 1).Circuit()
//	res, err := sim.Run(ctx, qsim.Request{Circuit: bell})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Concurrence) // ≈1.0
//
// # Noise
//
// Noise channels operate on a density-matrix representation and are capped
// at 14 qubits; above that the engine force-disables noise and flags the
// result approximate:
//
//	p := noise.IBM()
//	res, _ := sim.Run(ctx, qsim.Request{Circuit: bell, Noise: &p})
//	fmt.Println(res.NoiseSummary)
//
// # Resource safety
//
// Before allocating a 2^n-sized state vector the engine estimates the
// required bytes and compares them against available system memory with a
// fixed safety margin; oversized requests fail with ErrInsufficientMemory
// before any computation.
//
// # Concurrency
//
// A single simulation is synchronous and single-threaded. Independent
// simulations may run in parallel; Runner provides a bounded-parallel batch
// executor with optional admission rate limiting.
package qsim
