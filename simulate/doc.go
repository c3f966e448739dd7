// Package simulate implements the per-circuit simulation orchestrator.
//
// An Orchestrator owns the lifecycle of one circuit execution: validation,
// resource-guard admission, state initialization, gate-by-gate application
// with per-gate timing accumulation, conditional promotion to a density
// matrix for noise injection (and demotion back to the dominant pure
// component), optional measurement collapse, entanglement measures and
// per-qubit diagnostics.
//
// Every internal failure is funneled into the single exit-point Result;
// nothing panics or throws across the package boundary. The run progresses
// through a strict phase sequence (Uninitialized → StateInitialized →
// GatesApplied → DiagnosticsComputed → Terminal) and no phase is revisited.
package simulate
