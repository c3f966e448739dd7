package density

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qsim/gate"
	"github.com/hupe1980/qsim/statevec"
)

func bellState(t *testing.T) *statevec.StateVector {
	t.Helper()
	sv, err := statevec.NewBasis(2, 0)
	require.NoError(t, err)
	h, err := gate.Matrix(gate.KindH, nil)
	require.NoError(t, err)
	cnot, err := gate.Matrix(gate.KindCNOT, nil)
	require.NoError(t, err)
	require.NoError(t, sv.ApplyMatrix(h, []int{0}))
	require.NoError(t, sv.ApplyMatrix(cnot, []int{0, 1}))
	return sv
}

func TestNew_TooLarge(t *testing.T) {
	_, err := New(MaxQubits + 1)

	var largeErr *ErrTooLarge
	require.ErrorAs(t, err, &largeErr)
	assert.Equal(t, MaxQubits+1, largeErr.NumQubits)
}

func TestFromStateVector(t *testing.T) {
	rho, err := FromStateVector(bellState(t))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)
	assert.InDelta(t, 1.0, rho.Purity(), 1e-12)
	assert.InDelta(t, 0.5, real(rho.At(0, 0)), 1e-12)
	assert.InDelta(t, 0.5, real(rho.At(0, 3)), 1e-12)
	assert.InDelta(t, 0.5, real(rho.At(3, 3)), 1e-12)
	assert.InDelta(t, 0, real(rho.At(1, 1)), 1e-12)
}

func TestDepolarize(t *testing.T) {
	rho, err := FromStateVector(bellState(t))
	require.NoError(t, err)

	rho.Depolarize(0.1)

	// Trace preserved, purity reduced.
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)
	assert.Less(t, rho.Purity(), 1.0)
	assert.Greater(t, rho.Purity(), 0.25)
}

func TestMixWith(t *testing.T) {
	sv0, err := statevec.NewBasis(1, 0)
	require.NoError(t, err)
	sv1, err := statevec.NewBasis(1, 1)
	require.NoError(t, err)

	rho, err := FromStateVector(sv0)
	require.NoError(t, err)
	other, err := FromStateVector(sv1)
	require.NoError(t, err)

	rho.MixWith(other, 0.25)
	assert.InDelta(t, 0.75, real(rho.At(0, 0)), 1e-12)
	assert.InDelta(t, 0.25, real(rho.At(1, 1)), 1e-12)
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)
}

func TestApplySingleQubitKraus_BitFlip(t *testing.T) {
	// A full bit flip as a single Kraus operator on qubit 1 of |00⟩.
	sv, err := statevec.NewBasis(2, 0)
	require.NoError(t, err)
	rho, err := FromStateVector(sv)
	require.NoError(t, err)

	x := [][2][2]complex128{{{0, 1}, {1, 0}}}
	rho.ApplySingleQubitKraus(x, 1)

	assert.InDelta(t, 1.0, real(rho.At(2, 2)), 1e-12)
	assert.InDelta(t, 0, real(rho.At(0, 0)), 1e-12)
}

func TestApplySingleQubitKraus_TracePreserving(t *testing.T) {
	rho, err := FromStateVector(bellState(t))
	require.NoError(t, err)

	// Amplitude damping with p=0.3 keeps the trace at 1.
	p := 0.3
	ks := [][2][2]complex128{
		{{1, 0}, {0, complex(math.Sqrt(1-p), 0)}},
		{{0, complex(math.Sqrt(p), 0)}, {0, 0}},
	}
	rho.ApplySingleQubitKraus(ks, 0)

	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-9)
	assert.Less(t, rho.Purity(), 1.0)
}

func TestDominantEigenvector_Pure(t *testing.T) {
	sv := bellState(t)
	rho, err := FromStateVector(sv)
	require.NoError(t, err)

	v, lambda := rho.DominantEigenvector()
	assert.InDelta(t, 1.0, lambda, 1e-9)

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(v[0]), 1e-9)
	assert.InDelta(t, inv, real(v[3]), 1e-9)
}

func TestEigenvalues(t *testing.T) {
	// 0.75·|0⟩⟨0| + 0.25·|1⟩⟨1|.
	rho, err := New(1)
	require.NoError(t, err)
	rho.Set(0, 0, 0.75)
	rho.Set(1, 1, 0.25)

	eigs := rho.Eigenvalues()
	require.Len(t, eigs, 2)
	assert.InDelta(t, 0.75, eigs[0], 1e-9)
	assert.InDelta(t, 0.25, eigs[1], 1e-9)
}

func TestVonNeumannEntropy(t *testing.T) {
	// Pure state: zero entropy.
	rho, err := FromStateVector(bellState(t))
	require.NoError(t, err)
	assert.InDelta(t, 0, rho.VonNeumannEntropy(), 1e-6)

	// Maximally mixed qubit: one bit of entropy.
	mixed, err := New(1)
	require.NoError(t, err)
	mixed.Set(0, 0, 0.5)
	mixed.Set(1, 1, 0.5)
	assert.InDelta(t, 1.0, mixed.VonNeumannEntropy(), 1e-9)
}

func TestConcurrence_Bell(t *testing.T) {
	rho, err := FromStateVector(bellState(t))
	require.NoError(t, err)

	c, err := rho.Concurrence()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c, 1e-9)
}

func TestConcurrence_Product(t *testing.T) {
	sv, err := statevec.NewBasis(2, 0)
	require.NoError(t, err)
	h, err := gate.Matrix(gate.KindH, nil)
	require.NoError(t, err)
	require.NoError(t, sv.ApplyMatrix(h, []int{0}))

	rho, err := FromStateVector(sv)
	require.NoError(t, err)

	c, err := rho.Concurrence()
	require.NoError(t, err)
	assert.InDelta(t, 0, c, 1e-9)
}

func TestConcurrence_WrongSize(t *testing.T) {
	rho, err := New(3)
	require.NoError(t, err)

	_, err = rho.Concurrence()
	var sizeErr *ErrNotTwoQubit
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 3, sizeErr.NumQubits)
}

func TestToStateVector_RoundTrip(t *testing.T) {
	sv := bellState(t)
	rho, err := FromStateVector(sv)
	require.NoError(t, err)

	back, err := rho.ToStateVector()
	require.NoError(t, err)

	assert.InDelta(t, 1.0, back.Norm(), 1e-9)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(back.Amplitude(0)), 1e-9)
	assert.InDelta(t, inv, real(back.Amplitude(3)), 1e-9)
}

func TestRenormalize(t *testing.T) {
	rho, err := New(1)
	require.NoError(t, err)
	rho.Set(0, 0, 2)
	rho.Set(1, 1, 2)

	rho.Renormalize()
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)
}
