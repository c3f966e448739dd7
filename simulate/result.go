package simulate

import (
	"github.com/hupe1980/qsim/noise"
)

// ErrorKind classifies a failed run for the API layer.
type ErrorKind string

const (
	ErrorKindNone                  ErrorKind = ""
	ErrorKindValidation            ErrorKind = "validation"
	ErrorKindUnknownGate           ErrorKind = "unknown_gate"
	ErrorKindUnsupportedGateArity  ErrorKind = "unsupported_gate_arity"
	ErrorKindInsufficientMemory    ErrorKind = "insufficient_memory"
	ErrorKindDegenerateMeasurement ErrorKind = "degenerate_measurement"
	ErrorKindNumericalInstability  ErrorKind = "numerical_instability"
	ErrorKindCanceled              ErrorKind = "canceled"
	ErrorKindInternal              ErrorKind = "internal"
)

// Complex is the serialized form of one complex number.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

func complexOf(c complex128) Complex {
	return Complex{Real: real(c), Imag: imag(c)}
}

// Bloch is a single qubit's Bloch vector.
type Bloch struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// QubitResult holds the per-qubit diagnostics.
type QubitResult struct {
	Index  int     `json:"index"`
	Bloch  Bloch   `json:"blochVector"`
	Purity float64 `json:"purity"`

	// ReducedDensityMatrix is the qubit's 2x2 reduced state.
	ReducedDensityMatrix [][]Complex `json:"reducedDensityMatrix,omitempty"`

	// StateVector is the full amplitude array, attached only to qubit 0
	// and only for small registers (payload-size guard).
	StateVector []Complex `json:"statevector,omitempty"`
}

// Measurement is the outcome of one Monte Carlo measurement collapse,
// after readout error.
type Measurement struct {
	Qubit       int     `json:"qubit"`
	Outcome     int     `json:"outcome"`
	Probability float64 `json:"probability"`

	// ReadP0 and ReadP1 are the ideal marginals pushed through the
	// readout confusion matrix.
	ReadP0 float64 `json:"readP0"`
	ReadP1 float64 `json:"readP1"`
}

// Result is the single exit point of a simulation run. Constructed once per
// call and immutable after return.
type Result struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`

	// Err is the underlying typed error for programmatic matching; the
	// serialized form carries only Error and ErrorKind.
	Err error `json:"-"`

	NumQubits int           `json:"numQubits"`
	Qubits    []QubitResult `json:"qubits,omitempty"`

	Measurements []Measurement `json:"measurements,omitempty"`

	// Concurrence is the 2-qubit entanglement measure; zero for other sizes.
	Concurrence       float64 `json:"concurrence"`
	VonNeumannEntropy float64 `json:"vonNeumannEntropy"`
	Entangled         bool    `json:"isEntangled"`

	// Approximate is set whenever a requested feature was degraded by the
	// resource guard or skipped above the density-matrix cap.
	Approximate bool `json:"approximate"`

	TotalCircuitTimeNs float64 `json:"totalCircuitTimeNs"`
	WallClockSeconds   float64 `json:"wallClockSeconds"`

	NoiseSummary *noise.Summary `json:"noiseSummary,omitempty"`
}

func matrixOf(rho [2][2]complex128) [][]Complex {
	out := make([][]Complex, 2)
	for i := 0; i < 2; i++ {
		out[i] = []Complex{complexOf(rho[i][0]), complexOf(rho[i][1])}
	}
	return out
}
