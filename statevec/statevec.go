package statevec

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

// NormTolerance is the maximum allowed drift of the squared-magnitude sum
// from 1 after initialization and after every gate application.
const NormTolerance = 1e-9

// ErrQubitOutOfRange indicates an operation referencing a qubit outside the
// register.
type ErrQubitOutOfRange struct {
	Qubit int
	Size  int
}

func (e *ErrQubitOutOfRange) Error() string {
	return fmt.Sprintf("qubit %d out of range for %d-qubit register", e.Qubit, e.Size)
}

// ErrUnsupportedArity indicates a gate matrix targeting more qubits than the
// bit-indexed kernels support.
type ErrUnsupportedArity struct {
	Qubits int
}

func (e *ErrUnsupportedArity) Error() string {
	return fmt.Sprintf("unsupported gate arity: %d target qubits (engine applies 1- and 2-qubit unitaries)", e.Qubits)
}

// ErrDegenerateMeasurement indicates a collapse onto a zero-probability
// outcome, which would divide by zero during renormalization.
type ErrDegenerateMeasurement struct {
	Qubit   int
	Outcome int
}

func (e *ErrDegenerateMeasurement) Error() string {
	return fmt.Sprintf("degenerate measurement: outcome %d on qubit %d has zero probability", e.Outcome, e.Qubit)
}

// ErrBadBasisIndex indicates a basis-state index outside [0, 2^n).
type ErrBadBasisIndex struct {
	Index int
	Dim   int
}

func (e *ErrBadBasisIndex) Error() string {
	return fmt.Sprintf("basis index %d out of range [0,%d)", e.Index, e.Dim)
}

// ErrBadMatrixShape indicates a gate matrix whose shape does not match the
// number of target qubits.
type ErrBadMatrixShape struct {
	Rows   int
	Qubits int
}

func (e *ErrBadMatrixShape) Error() string {
	return fmt.Sprintf("matrix with %d rows cannot act on %d qubit(s)", e.Rows, e.Qubits)
}

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
//
// A StateVector is exclusively owned by one simulation for its lifetime;
// no internal locking is performed.
type StateVector struct {
	numQubits int
	amps      []complex128
}

// NewBasis creates an n-qubit register collapsed onto the given
// computational-basis index.
func NewBasis(numQubits, basisIndex int) (*StateVector, error) {
	dim := 1 << numQubits
	if basisIndex < 0 || basisIndex >= dim {
		return nil, &ErrBadBasisIndex{Index: basisIndex, Dim: dim}
	}
	amps := make([]complex128, dim)
	amps[basisIndex] = 1
	return &StateVector{numQubits: numQubits, amps: amps}, nil
}

// NewCustom creates an n-qubit register with qubit 0 in the normalized
// superposition alpha|0⟩ + beta|1⟩ and all other qubits in |0⟩. If both
// amplitudes are zero the register defaults to |0...0⟩.
func NewCustom(numQubits int, alpha, beta complex128) (*StateVector, error) {
	norm := math.Sqrt(absSq(alpha) + absSq(beta))
	if norm == 0 {
		return NewBasis(numQubits, 0)
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = alpha / complex(norm, 0)
	amps[1] = beta / complex(norm, 0)
	return &StateVector{numQubits: numQubits, amps: amps}, nil
}

// FromAmplitudes wraps an amplitude slice as a state vector. The slice is
// copied. Used when demoting a density matrix back to a pure state.
func FromAmplitudes(numQubits int, amps []complex128) (*StateVector, error) {
	if len(amps) != 1<<numQubits {
		return nil, &ErrBadMatrixShape{Rows: len(amps), Qubits: numQubits}
	}
	cp := make([]complex128, len(amps))
	copy(cp, amps)
	return &StateVector{numQubits: numQubits, amps: cp}, nil
}

// NumQubits returns the register size.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Dim returns the amplitude-array length 2^n.
func (s *StateVector) Dim() int { return len(s.amps) }

// Amplitude returns the amplitude of basis index i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amps[i] }

// Amplitudes returns a copy of the amplitude array.
func (s *StateVector) Amplitudes() []complex128 {
	cp := make([]complex128, len(s.amps))
	copy(cp, s.amps)
	return cp
}

// Clone returns a deep copy.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{numQubits: s.numQubits, amps: s.Amplitudes()}
}

// Norm returns the square root of the summed squared magnitudes.
func (s *StateVector) Norm() float64 {
	var sum float64
	for _, a := range s.amps {
		sum += absSq(a)
	}
	return math.Sqrt(sum)
}

// Renormalize rescales all amplitudes to unit norm. It is a no-op on a
// zero vector.
func (s *StateVector) Renormalize() {
	n := s.Norm()
	if n == 0 || n == 1 {
		return
	}
	inv := complex(1/n, 0)
	for i := range s.amps {
		s.amps[i] *= inv
	}
}

// ApplyMatrix applies a unitary to the target qubits in place.
//
// Single-qubit gates pair each index with its bit-flipped partner on the
// target; two-qubit gates generalize to 4-way groups indexed by the two
// target bits, with matrix basis ordering |qubits[0],qubits[1]⟩. Three or
// more targets return *ErrUnsupportedArity.
func (s *StateVector) ApplyMatrix(m [][]complex128, qubits []int) error {
	for _, q := range qubits {
		if q < 0 || q >= s.numQubits {
			return &ErrQubitOutOfRange{Qubit: q, Size: s.numQubits}
		}
	}
	switch len(qubits) {
	case 1:
		if len(m) != 2 {
			return &ErrBadMatrixShape{Rows: len(m), Qubits: 1}
		}
		s.applySingle(m, qubits[0])
		return nil
	case 2:
		if len(m) != 4 {
			return &ErrBadMatrixShape{Rows: len(m), Qubits: 2}
		}
		s.applyPair(m, qubits[0], qubits[1])
		return nil
	default:
		return &ErrUnsupportedArity{Qubits: len(qubits)}
	}
}

func (s *StateVector) applySingle(m [][]complex128, q int) {
	bit := 1 << q
	n := len(s.amps)
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.amps[i], s.amps[j]
		s.amps[i] = m[0][0]*a0 + m[0][1]*a1
		s.amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func (s *StateVector) applyPair(m [][]complex128, q0, q1 int) {
	bit0 := 1 << q0
	bit1 := 1 << q1
	n := len(s.amps)
	for i := 0; i < n; i++ {
		if i&bit0 != 0 || i&bit1 != 0 {
			continue
		}
		// Matrix basis index b = (bit of qubits[0])<<1 | (bit of qubits[1]).
		idx := [4]int{i, i | bit1, i | bit0, i | bit0 | bit1}
		var v [4]complex128
		for b := 0; b < 4; b++ {
			v[b] = s.amps[idx[b]]
		}
		for b := 0; b < 4; b++ {
			s.amps[idx[b]] = m[b][0]*v[0] + m[b][1]*v[1] + m[b][2]*v[2] + m[b][3]*v[3]
		}
	}
}

// Probabilities returns the marginal P(0) and P(1) of the target qubit.
func (s *StateVector) Probabilities(q int) (p0, p1 float64, err error) {
	if q < 0 || q >= s.numQubits {
		return 0, 0, &ErrQubitOutOfRange{Qubit: q, Size: s.numQubits}
	}
	bit := 1 << q
	for i, a := range s.amps {
		if i&bit == 0 {
			p0 += absSq(a)
		} else {
			p1 += absSq(a)
		}
	}
	return p0, p1, nil
}

// Measure draws a single outcome for the target qubit using the supplied
// random source and returns the outcome, its precomputed probability and a
// new collapsed state vector. The receiver is left untouched so callers can
// inspect the pre-collapse state.
func (s *StateVector) Measure(q int, rng *rand.Rand) (outcome int, probability float64, collapsed *StateVector, err error) {
	p0, p1, err := s.Probabilities(q)
	if err != nil {
		return 0, 0, nil, err
	}
	outcome = 0
	probability = p0
	if rng.Float64() >= p0 {
		outcome = 1
		probability = p1
	}
	collapsed, err = s.Collapse(q, outcome, probability)
	if err != nil {
		return 0, 0, nil, err
	}
	return outcome, probability, collapsed, nil
}

// Collapse returns a new state vector with the non-matching amplitudes
// zeroed and the rest renormalized by 1/sqrt(probability). A zero
// probability returns *ErrDegenerateMeasurement instead of dividing by zero.
func (s *StateVector) Collapse(q, outcome int, probability float64) (*StateVector, error) {
	if q < 0 || q >= s.numQubits {
		return nil, &ErrQubitOutOfRange{Qubit: q, Size: s.numQubits}
	}
	if probability <= 0 {
		return nil, &ErrDegenerateMeasurement{Qubit: q, Outcome: outcome}
	}
	bit := 1 << q
	scale := complex(1/math.Sqrt(probability), 0)
	out := make([]complex128, len(s.amps))
	for i, a := range s.amps {
		if (i&bit != 0) == (outcome == 1) {
			out[i] = a * scale
		}
	}
	return &StateVector{numQubits: s.numQubits, amps: out}, nil
}

// ReducedDensityMatrix computes the 2x2 reduced density matrix of the target
// qubit by tracing out every other qubit.
//
// Indices are grouped by their other-bits pattern in a single O(2^n) pass:
// each index with the target bit clear is paired with its bit-set partner,
// contributing one outer-product term. The full 2^n x 2^n density matrix is
// never formed, so this works up to n=30.
func (s *StateVector) ReducedDensityMatrix(q int) ([2][2]complex128, error) {
	var rho [2][2]complex128
	if q < 0 || q >= s.numQubits {
		return rho, &ErrQubitOutOfRange{Qubit: q, Size: s.numQubits}
	}
	bit := 1 << q
	n := len(s.amps)
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			continue
		}
		a0 := s.amps[i]
		a1 := s.amps[i|bit]
		rho[0][0] += a0 * cmplx.Conj(a0)
		rho[0][1] += a0 * cmplx.Conj(a1)
		rho[1][1] += a1 * cmplx.Conj(a1)
	}
	rho[1][0] = cmplx.Conj(rho[0][1])
	return rho, nil
}

// BlochVector returns the (x, y, z) Bloch coordinates of the target qubit:
// x = 2·Re(ρ01), y = 2·Im(ρ01), z = ρ00 − ρ11.
func (s *StateVector) BlochVector(q int) (x, y, z float64, err error) {
	rho, err := s.ReducedDensityMatrix(q)
	if err != nil {
		return 0, 0, 0, err
	}
	x = 2 * real(rho[0][1])
	y = 2 * imag(rho[0][1])
	z = real(rho[0][0]) - real(rho[1][1])
	return x, y, z, nil
}

// Purity returns Re(tr ρ²) of the target qubit's reduced state: 1 for a
// pure (unentangled) qubit, down to 0.5 for a maximally mixed one.
func (s *StateVector) Purity(q int) (float64, error) {
	rho, err := s.ReducedDensityMatrix(q)
	if err != nil {
		return 0, err
	}
	return purityOf(rho), nil
}

func purityOf(rho [2][2]complex128) float64 {
	var tr complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			tr += rho[i][j] * rho[j][i]
		}
	}
	return real(tr)
}

func absSq(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
