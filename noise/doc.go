// Package noise implements composable hardware-noise channels operating on
// density matrices: T1/T2 amplitude and phase damping, depolarizing gate
// error, thermal population bias, ZZ crosstalk and asymmetric readout
// error.
//
// Each channel is individually toggleable through Parameters; disabled
// channels are no-ops. The orchestrator composes the enabled channels in a
// fixed order: thermal → T1/T2 → gate error (per gate) → crosstalk, with
// readout error applied last and only to measurement outcomes, never to
// the state itself.
//
// Channel application is O(4^n) per invocation (density-matrix sized),
// which is why noise is auto-disabled above the density-matrix qubit cap.
package noise
