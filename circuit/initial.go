package circuit

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// InitialState specifies how the register is prepared before the first gate.
//
// Three forms are supported: the canonical kets "ket0".."ket5", a custom
// (alpha, beta) superposition on qubit 0, and a parsable ket or amplitude
// string such as "|01⟩" or "0.707,0.707".
type InitialState struct {
	spec   string
	alpha  complex128
	beta   complex128
	custom bool
}

// DefaultState prepares |0...0⟩.
func DefaultState() InitialState {
	return InitialState{spec: "ket0"}
}

// Ket selects a named or parsable initial state.
func Ket(spec string) InitialState {
	return InitialState{spec: spec}
}

// Superposition prepares qubit 0 as alpha|0⟩ + beta|1⟩ (normalized first;
// if both are zero the state falls back to |0⟩). Remaining qubits start
// in |0⟩.
func Superposition(alpha, beta complex128) InitialState {
	return InitialState{alpha: alpha, beta: beta, custom: true}
}

// ErrBadInitialState indicates an unparsable initial-state specifier.
type ErrBadInitialState struct {
	Spec string
}

func (e *ErrBadInitialState) Error() string {
	return fmt.Sprintf("unparsable initial state: %q", e.Spec)
}

// Preparation is the resolved form of an InitialState: either a basis index
// or a single-qubit superposition on qubit 0.
type Preparation struct {
	// BasisIndex is the computational-basis index to set to amplitude 1.
	// Only meaningful when Superposed is false.
	BasisIndex int

	// Superposed selects the (Alpha, Beta) preparation on qubit 0.
	Superposed bool
	Alpha      complex128
	Beta       complex128
}

// Canonical single-qubit states for ket0..ket5: |0⟩, |1⟩, |+⟩, |−⟩, |+i⟩, |−i⟩.
var canonicalKets = map[string][2]complex128{
	"ket0": {1, 0},
	"ket1": {0, 1},
	"ket2": {complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
	"ket3": {complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	"ket4": {complex(1/math.Sqrt2, 0), complex(0, 1/math.Sqrt2)},
	"ket5": {complex(1/math.Sqrt2, 0), complex(0, -1/math.Sqrt2)},
}

// Resolve turns the specifier into a concrete preparation for a register of
// the given size.
func (s InitialState) Resolve(numQubits int) (Preparation, error) {
	if s.custom {
		alpha, beta, ok := normalizePair(s.alpha, s.beta)
		if !ok {
			// Both amplitudes zero: fall back to |0⟩.
			return Preparation{BasisIndex: 0}, nil
		}
		return Preparation{Superposed: true, Alpha: alpha, Beta: beta}, nil
	}

	spec := strings.TrimSpace(s.spec)
	if spec == "" {
		return Preparation{BasisIndex: 0}, nil
	}

	if amps, ok := canonicalKets[strings.ToLower(spec)]; ok {
		if amps[1] == 0 {
			return Preparation{BasisIndex: 0}, nil
		}
		if amps[0] == 0 {
			return Preparation{BasisIndex: 1}, nil
		}
		return Preparation{Superposed: true, Alpha: amps[0], Beta: amps[1]}, nil
	}

	if idx, ok := parseBasisKet(spec, numQubits); ok {
		return Preparation{BasisIndex: idx}, nil
	}

	if alpha, beta, ok := parseAmplitudePair(spec); ok {
		alpha, beta, nonzero := normalizePair(alpha, beta)
		if !nonzero {
			return Preparation{BasisIndex: 0}, nil
		}
		return Preparation{Superposed: true, Alpha: alpha, Beta: beta}, nil
	}

	return Preparation{}, &ErrBadInitialState{Spec: s.spec}
}

// parseBasisKet parses "|010⟩" or a bare bitstring "010" into a basis index.
// The leftmost character is qubit 0 (the register's little-endian convention).
func parseBasisKet(spec string, numQubits int) (int, bool) {
	bits := strings.TrimSuffix(strings.TrimPrefix(spec, "|"), "⟩")
	bits = strings.TrimSuffix(bits, ">")
	if bits == "" || len(bits) > numQubits {
		return 0, false
	}
	idx := 0
	for i, c := range bits {
		switch c {
		case '0':
		case '1':
			idx |= 1 << i
		default:
			return 0, false
		}
	}
	return idx, true
}

// parseAmplitudePair parses "a,b" where each part is a real or complex
// literal accepted by strconv.ParseComplex.
func parseAmplitudePair(spec string) (complex128, complex128, bool) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	alpha, err := parseComplexPart(parts[0])
	if err != nil {
		return 0, 0, false
	}
	beta, err := parseComplexPart(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return alpha, beta, true
}

func parseComplexPart(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	if c, err := strconv.ParseComplex(s, 128); err == nil {
		return c, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return complex(f, 0), nil
}

// normalizePair scales (alpha, beta) to unit norm. ok is false when both
// amplitudes are zero.
func normalizePair(alpha, beta complex128) (complex128, complex128, bool) {
	norm := math.Sqrt(real(alpha)*real(alpha) + imag(alpha)*imag(alpha) +
		real(beta)*real(beta) + imag(beta)*imag(beta))
	if norm == 0 || math.IsNaN(norm) {
		return 0, 0, false
	}
	n := complex(norm, 0)
	a, b := alpha/n, beta/n
	if cmplx.IsNaN(a) || cmplx.IsNaN(b) {
		return 0, 0, false
	}
	return a, b, true
}
