package density

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/hupe1980/qsim/statevec"
)

// MaxQubits is the largest register size for which a full density matrix
// may be materialized. Above this, noise injection is disabled by the
// resource guard and results are flagged approximate.
const MaxQubits = 14

// ErrTooLarge indicates an attempt to materialize a density matrix beyond
// MaxQubits.
type ErrTooLarge struct {
	NumQubits int
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("density matrix for %d qubits exceeds the %d-qubit cap", e.NumQubits, MaxQubits)
}

// ErrNotTwoQubit indicates a two-qubit-only measure requested on a register
// of a different size.
type ErrNotTwoQubit struct {
	NumQubits int
}

func (e *ErrNotTwoQubit) Error() string {
	return fmt.Sprintf("concurrence is defined for 2-qubit registers, got %d", e.NumQubits)
}

// Matrix is a dense row-major 2^n x 2^n complex matrix.
//
// Exclusively owned by one simulation orchestrator for its lifetime; no
// internal locking.
type Matrix struct {
	numQubits int
	dim       int
	data      []complex128
}

// New creates a zero matrix for the given register size.
func New(numQubits int) (*Matrix, error) {
	if numQubits > MaxQubits {
		return nil, &ErrTooLarge{NumQubits: numQubits}
	}
	dim := 1 << numQubits
	return &Matrix{
		numQubits: numQubits,
		dim:       dim,
		data:      make([]complex128, dim*dim),
	}, nil
}

// FromStateVector materializes |ψ⟩⟨ψ| as a density matrix.
func FromStateVector(sv *statevec.StateVector) (*Matrix, error) {
	m, err := New(sv.NumQubits())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.dim; i++ {
		ai := sv.Amplitude(i)
		if ai == 0 {
			continue
		}
		for j := 0; j < m.dim; j++ {
			m.data[i*m.dim+j] = ai * cmplx.Conj(sv.Amplitude(j))
		}
	}
	return m, nil
}

// NumQubits returns the register size.
func (m *Matrix) NumQubits() int { return m.numQubits }

// Dim returns the matrix dimension 2^n.
func (m *Matrix) Dim() int { return m.dim }

// At returns element (i, j).
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.dim+j] }

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.dim+j] = v }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]complex128, len(m.data))
	copy(data, m.data)
	return &Matrix{numQubits: m.numQubits, dim: m.dim, data: data}
}

// Trace returns the matrix trace (1 for any valid state).
func (m *Matrix) Trace() complex128 {
	var tr complex128
	for i := 0; i < m.dim; i++ {
		tr += m.data[i*m.dim+i]
	}
	return tr
}

// Purity returns Re(tr ρ²).
func (m *Matrix) Purity() float64 {
	var tr complex128
	for i := 0; i < m.dim; i++ {
		for j := 0; j < m.dim; j++ {
			tr += m.data[i*m.dim+j] * m.data[j*m.dim+i]
		}
	}
	return real(tr)
}

// Renormalize rescales the matrix so its trace is 1. No-op on zero trace.
func (m *Matrix) Renormalize() {
	tr := real(m.Trace())
	if tr == 0 || tr == 1 {
		return
	}
	inv := complex(1/tr, 0)
	for i := range m.data {
		m.data[i] *= inv
	}
}

// MixWith replaces the matrix with (1-w)·ρ + w·other, element-wise.
func (m *Matrix) MixWith(other *Matrix, w float64) {
	cw := complex(w, 0)
	ci := complex(1-w, 0)
	for i := range m.data {
		m.data[i] = ci*m.data[i] + cw*other.data[i]
	}
}

// Depolarize applies ρ → (1-p)·ρ + (p/dim)·I in place.
func (m *Matrix) Depolarize(p float64) {
	if p <= 0 {
		return
	}
	keep := complex(1-p, 0)
	fill := complex(p/float64(m.dim), 0)
	for i := 0; i < m.dim; i++ {
		for j := 0; j < m.dim; j++ {
			v := m.data[i*m.dim+j] * keep
			if i == j {
				v += fill
			}
			m.data[i*m.dim+j] = v
		}
	}
}

// ApplySingleQubitKraus applies ρ → Σ_k K_k ρ K_k† where each K_k is a 2x2
// operator acting on the target qubit, implicitly tensored with identity on
// every other qubit. The target may sit at any bit position.
func (m *Matrix) ApplySingleQubitKraus(ks [][2][2]complex128, q int) {
	bit := 1 << q
	out := make([]complex128, len(m.data))
	for _, k := range ks {
		for i := 0; i < m.dim; i++ {
			bi := (i & bit) >> q
			i0 := i &^ bit
			for j := 0; j < m.dim; j++ {
				bj := (j & bit) >> q
				j0 := j &^ bit
				var sum complex128
				for b := 0; b < 2; b++ {
					kb := k[bi][b]
					if kb == 0 {
						continue
					}
					row := i0 | (b << q)
					for bp := 0; bp < 2; bp++ {
						kc := cmplx.Conj(k[bj][bp])
						if kc == 0 {
							continue
						}
						sum += kb * m.data[row*m.dim+(j0|(bp<<q))] * kc
					}
				}
				out[i*m.dim+j] += sum
			}
		}
	}
	m.data = out
}

// ApplyDiagonalPhase multiplies ρ[i][j] by phase(i)·conj(phase(j)) for a
// channel diagonal in the computational basis (e.g. ZZ crosstalk).
func (m *Matrix) ApplyDiagonalPhase(phase func(basis int) complex128) {
	ph := make([]complex128, m.dim)
	for i := 0; i < m.dim; i++ {
		ph[i] = phase(i)
	}
	for i := 0; i < m.dim; i++ {
		for j := 0; j < m.dim; j++ {
			m.data[i*m.dim+j] *= ph[i] * cmplx.Conj(ph[j])
		}
	}
}

// mulVec computes ρ·v.
func (m *Matrix) mulVec(v []complex128) []complex128 {
	out := make([]complex128, m.dim)
	for i := 0; i < m.dim; i++ {
		row := m.data[i*m.dim : (i+1)*m.dim]
		var sum complex128
		for j, rv := range row {
			if rv != 0 {
				sum += rv * v[j]
			}
		}
		out[i] = sum
	}
	return out
}

const (
	powerIterations = 200
	powerTolerance  = 1e-12
)

// DominantEigenvector returns the eigenvector of the statistically dominant
// pure component together with its eigenvalue (the component's weight).
//
// Power iteration suffices here: density matrices are Hermitian positive
// semidefinite, so the dominant eigenvalue is real and maximal in magnitude.
// The returned vector has unit norm and a fixed global phase (its largest
// component is real and non-negative) so demotion is deterministic.
func (m *Matrix) DominantEigenvector() ([]complex128, float64) {
	v := m.startVector()
	lambda := 0.0
	for iter := 0; iter < powerIterations; iter++ {
		next := m.mulVec(v)
		norm := vecNorm(next)
		if norm == 0 {
			break
		}
		inv := complex(1/norm, 0)
		for i := range next {
			next[i] *= inv
		}
		if math.Abs(norm-lambda) < powerTolerance {
			v = next
			lambda = norm
			break
		}
		v = next
		lambda = norm
	}
	fixGlobalPhase(v)
	return v, lambda
}

// startVector picks the column under the largest diagonal entry, which is
// never orthogonal to the dominant eigenspace of a density matrix.
func (m *Matrix) startVector() []complex128 {
	best := 0
	bestDiag := real(m.data[0])
	for i := 1; i < m.dim; i++ {
		if d := real(m.data[i*m.dim+i]); d > bestDiag {
			best, bestDiag = i, d
		}
	}
	v := make([]complex128, m.dim)
	if bestDiag <= 0 {
		v[0] = 1
		return v
	}
	for i := 0; i < m.dim; i++ {
		v[i] = m.data[i*m.dim+best]
	}
	norm := vecNorm(v)
	if norm == 0 {
		v[best] = 1
		return v
	}
	inv := complex(1/norm, 0)
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Eigenvalues returns the eigenvalue spectrum, extracted by repeated power
// iteration with Hotelling deflation. Valid for Hermitian PSD matrices,
// which is the only kind this package holds. Values below numerical noise
// are dropped.
func (m *Matrix) Eigenvalues() []float64 {
	work := m.Clone()
	var eigs []float64
	remaining := real(work.Trace())
	for len(eigs) < m.dim && remaining > 1e-12 {
		v, lambda := work.DominantEigenvector()
		if lambda <= 1e-12 {
			break
		}
		eigs = append(eigs, lambda)
		// Deflate: ρ ← ρ − λ·vv†.
		for i := 0; i < work.dim; i++ {
			vi := v[i] * complex(lambda, 0)
			if vi == 0 {
				continue
			}
			for j := 0; j < work.dim; j++ {
				work.data[i*work.dim+j] -= vi * cmplx.Conj(v[j])
			}
		}
		remaining -= lambda
	}
	return eigs
}

// VonNeumannEntropy returns −Σ λ·log2(λ) over the nonzero eigenvalues.
// Zero for any pure state.
func (m *Matrix) VonNeumannEntropy() float64 {
	var entropy float64
	for _, l := range m.Eigenvalues() {
		if l > 1e-12 {
			entropy -= l * math.Log2(l)
		}
	}
	if entropy < 0 {
		return 0
	}
	return entropy
}

// Concurrence returns the two-qubit entanglement measure computed from the
// off-diagonal/diagonal combination of the density matrix, clamped to
// [0, 1]: 0 for separable states, 1 for maximally entangled ones.
func (m *Matrix) Concurrence() (float64, error) {
	if m.numQubits != 2 {
		return 0, &ErrNotTwoQubit{NumQubits: m.numQubits}
	}
	d := m.dim
	p00 := real(m.data[0])
	p01 := real(m.data[1*d+1])
	p10 := real(m.data[2*d+2])
	p11 := real(m.data[3*d+3])
	inner := cmplx.Abs(m.data[0*d+3]) - math.Sqrt(math.Max(0, p01*p10))
	outer := cmplx.Abs(m.data[1*d+2]) - math.Sqrt(math.Max(0, p00*p11))
	c := 2 * math.Max(inner, outer)
	return math.Min(1, math.Max(0, c)), nil
}

// ToStateVector demotes the matrix to its dominant pure component,
// renormalized to unit norm.
//
// This is a deliberate approximation: a mixed state cannot be represented
// by a single vector, so only the statistically dominant component survives
// the round trip.
func (m *Matrix) ToStateVector() (*statevec.StateVector, error) {
	v, _ := m.DominantEigenvector()
	sv, err := statevec.FromAmplitudes(m.numQubits, v)
	if err != nil {
		return nil, err
	}
	sv.Renormalize()
	return sv, nil
}

func vecNorm(v []complex128) float64 {
	var sum float64
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}

// fixGlobalPhase rotates v so its largest-magnitude component is real and
// non-negative.
func fixGlobalPhase(v []complex128) {
	best := 0
	bestAbs := 0.0
	for i, c := range v {
		if a := cmplx.Abs(c); a > bestAbs {
			best, bestAbs = i, a
		}
	}
	if bestAbs == 0 {
		return
	}
	phase := v[best] / complex(bestAbs, 0)
	inv := cmplx.Conj(phase)
	for i := range v {
		v[i] *= inv
	}
}
