package simulate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/qsim/circuit"
	"github.com/hupe1980/qsim/gate"
	"github.com/hupe1980/qsim/internal/resource"
	"github.com/hupe1980/qsim/noise"
)

func testGuard() *resource.Guard {
	return resource.NewGuard(resource.Config{
		AvailableMemory: func() (uint64, error) { return 1 << 60, nil },
	})
}

func bellCircuit() circuit.Circuit {
	return circuit.Circuit{
		NumQubits: 2,
		Gates: []circuit.Gate{
			{Kind: gate.KindH, Qubits: []int{0}},
			{Kind: gate.KindCNOT, Qubits: []int{0, 1}},
		},
	}
}

func TestRun_Bell(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{Circuit: bellCircuit()})
	require.True(t, res.Success, res.Error)

	assert.Equal(t, 2, res.NumQubits)
	assert.InDelta(t, 1.0, res.Concurrence, 1e-6)
	assert.True(t, res.Entangled)
	assert.False(t, res.Approximate)
	assert.InDelta(t, 220, res.TotalCircuitTimeNs, 1e-9) // H 20ns + CNOT 200ns

	require.Len(t, res.Qubits, 2)
	for _, q := range res.Qubits {
		assert.InDelta(t, 0.5, q.Purity, 1e-6)
		assert.InDelta(t, 0, q.Bloch.Z, 1e-6)
	}

	// Small register: the amplitude array rides along on qubit 0.
	require.NotEmpty(t, res.Qubits[0].StateVector)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, res.Qubits[0].StateVector[0].Real, 1e-9)
	assert.InDelta(t, inv, res.Qubits[0].StateVector[3].Real, 1e-9)
	assert.Empty(t, res.Qubits[1].StateVector)
}

func TestRun_GHZ(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: 3,
			Gates: []circuit.Gate{
				{Kind: gate.KindH, Qubits: []int{0}},
				{Kind: gate.KindCNOT, Qubits: []int{0, 1}},
				{Kind: gate.KindCNOT, Qubits: []int{1, 2}},
			},
		},
	})
	require.True(t, res.Success, res.Error)

	// Nonzero amplitude only at |000⟩ and |111⟩, each 1/√2.
	amps := res.Qubits[0].StateVector
	require.Len(t, amps, 8)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, amps[0].Real, 1e-9)
	assert.InDelta(t, inv, amps[7].Real, 1e-9)
	for i := 1; i < 7; i++ {
		assert.InDelta(t, 0, amps[i].Real, 1e-9)
		assert.InDelta(t, 0, amps[i].Imag, 1e-9)
	}

	assert.True(t, res.Entangled)
	for _, q := range res.Qubits {
		assert.InDelta(t, 0.5, q.Purity, 1e-9)
	}
}

func TestRun_ProductState(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: 2,
			Gates: []circuit.Gate{
				{Kind: gate.KindX, Qubits: []int{1}},
			},
		},
	})
	require.True(t, res.Success, res.Error)

	assert.InDelta(t, 0, res.Concurrence, 1e-9)
	assert.False(t, res.Entangled)
	assert.InDelta(t, 0, res.VonNeumannEntropy, 1e-6)
	assert.InDelta(t, 1, res.Qubits[0].Bloch.Z, 1e-9)
	assert.InDelta(t, -1, res.Qubits[1].Bloch.Z, 1e-9)
}

func TestRun_InitialState(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{NumQubits: 2},
		Initial: circuit.Ket("|11⟩"),
	})
	require.True(t, res.Success, res.Error)

	assert.InDelta(t, -1, res.Qubits[0].Bloch.Z, 1e-9)
	assert.InDelta(t, -1, res.Qubits[1].Bloch.Z, 1e-9)
}

func TestRun_ValidationFailure(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{NumQubits: 31},
	})
	require.False(t, res.Success)
	assert.Equal(t, ErrorKindValidation, res.ErrorKind)
	assert.NotEmpty(t, res.Error)
	require.Error(t, res.Err)
}

func TestRun_UnknownGate(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: 1,
			Gates:     []circuit.Gate{{Qubits: []int{0}}}, // zero Kind
		},
	})
	require.False(t, res.Success)
	assert.Equal(t, ErrorKindUnknownGate, res.ErrorKind)
}

func TestRun_InsufficientMemory(t *testing.T) {
	g := resource.NewGuard(resource.Config{
		SafetyMarginBytes: 1,
		AvailableMemory:   func() (uint64, error) { return 1 << 10, nil },
	})
	o := New(WithGuard(g))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{NumQubits: 20},
	})
	require.False(t, res.Success)
	assert.Equal(t, ErrorKindInsufficientMemory, res.ErrorKind)
}

func TestRun_Canceled(t *testing.T) {
	o := New(WithGuard(testGuard()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := o.Run(ctx, Request{Circuit: bellCircuit()})
	require.False(t, res.Success)
	assert.Equal(t, ErrorKindCanceled, res.ErrorKind)
}

func TestRun_SeededMeasurement(t *testing.T) {
	req := Request{
		Circuit: bellCircuit(),
		Measure: []int{0, 1},
	}

	first := New(WithGuard(testGuard()), WithSeed(99)).Run(context.Background(), req)
	second := New(WithGuard(testGuard()), WithSeed(99)).Run(context.Background(), req)
	require.True(t, first.Success, first.Error)
	require.True(t, second.Success, second.Error)

	require.Len(t, first.Measurements, 2)
	assert.Equal(t, first.Measurements, second.Measurements)

	// Bell correlations: both qubits collapse to the same value.
	assert.Equal(t, first.Measurements[0].Outcome, first.Measurements[1].Outcome)
	assert.InDelta(t, 0.5, first.Measurements[0].Probability, 1e-9)
	assert.InDelta(t, 1.0, first.Measurements[1].Probability, 1e-9)
}

func TestRun_MeasurementFrequency(t *testing.T) {
	// Unseeded on purpose: a fixed seed would repeat the same draw every run.
	o := New(WithGuard(testGuard()))
	req := Request{
		Circuit: circuit.Circuit{
			NumQubits: 1,
			Gates:     []circuit.Gate{{Kind: gate.KindH, Qubits: []int{0}}},
		},
		Measure: []int{0},
	}

	ones := 0
	const runs = 400
	for i := 0; i < runs; i++ {
		res := o.Run(context.Background(), req)
		require.True(t, res.Success, res.Error)
		ones += res.Measurements[0].Outcome
	}

	// Empirical frequency of |1⟩ should hover around 0.5.
	assert.InDelta(t, 0.5, float64(ones)/runs, 0.1)
}

func TestRun_NoiseReducesPurity(t *testing.T) {
	o := New(WithGuard(testGuard()))
	params := noise.Parameters{
		T1Ns:       10_000,
		T2Ns:       5_000,
		EnableT1T2: true,
	}

	res := o.Run(context.Background(), Request{Circuit: bellCircuit(), Noise: &params})
	require.True(t, res.Success, res.Error)

	require.NotNil(t, res.NoiseSummary)
	assert.True(t, res.NoiseSummary.Fired())
	assert.Positive(t, res.NoiseSummary.DampingApplications)
	assert.InDelta(t, 220, res.NoiseSummary.AccumulatedTimeNs, 1e-9)

	// Decoherence pushed the circuit-level state away from purity.
	assert.Greater(t, res.VonNeumannEntropy, 0.0)
}

func TestRun_PerfectNoiseMatchesIdeal(t *testing.T) {
	o := New(WithGuard(testGuard()))
	params := noise.Perfect()

	res := o.Run(context.Background(), Request{Circuit: bellCircuit(), Noise: &params})
	require.True(t, res.Success, res.Error)

	// No enabled channel: no promotion, no summary.
	assert.Nil(t, res.NoiseSummary)
	assert.InDelta(t, 1.0, res.Concurrence, 1e-6)
}

func TestRun_NoiseAutoDisable(t *testing.T) {
	o := New(WithGuard(testGuard()))
	params := noise.IBM()

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: resource.NoiseQubitCap + 1,
			Gates: []circuit.Gate{
				{Kind: gate.KindH, Qubits: []int{0}},
			},
		},
		Noise: &params,
	})
	require.True(t, res.Success, res.Error)

	assert.True(t, res.Approximate)
	require.Len(t, res.Qubits, resource.NoiseQubitCap+1)

	// Readout stays; the density-matrix channels are what got dropped.
	require.NotNil(t, res.NoiseSummary)
	assert.True(t, res.NoiseSummary.ReadoutEnabled)
	assert.False(t, res.NoiseSummary.Fired())
}

func TestRun_ReadoutError(t *testing.T) {
	// Readout is its own channel: enabled alone it must still fire, with
	// no density-matrix promotion behind it.
	o := New(WithGuard(testGuard()), WithSeed(5))
	params := noise.Parameters{
		ReadoutError01: 0.02,
		ReadoutError10: 0.03,
		EnableReadout:  true,
	}

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: 1,
			Gates:     []circuit.Gate{{Kind: gate.KindX, Qubits: []int{0}}},
		},
		Noise:   &params,
		Measure: []int{0},
	})
	require.True(t, res.Success, res.Error)

	m := res.Measurements[0]
	// Ideal P1 = 1 pushed through the confusion matrix.
	assert.InDelta(t, 0.03, m.ReadP0, 1e-9)
	assert.InDelta(t, 0.97, m.ReadP1, 1e-9)

	require.NotNil(t, res.NoiseSummary)
	assert.True(t, res.NoiseSummary.ReadoutEnabled)
	assert.False(t, res.NoiseSummary.Fired(), "no state-mutating channel ran")
}

func TestRun_ReadoutOnlyFlips(t *testing.T) {
	o := New(WithGuard(testGuard()), WithSeed(5))
	params := noise.Parameters{
		ReadoutError01: 1.0, // always misread 0 as 1
		EnableReadout:  true,
	}

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{NumQubits: 1},
		Noise:   &params,
		Measure: []int{0},
	})
	require.True(t, res.Success, res.Error)

	m := res.Measurements[0]
	assert.Equal(t, 1, m.Outcome)
	assert.InDelta(t, 0, m.ReadP0, 1e-12)
	assert.InDelta(t, 1, m.ReadP1, 1e-12)
	// The underlying state is untouched: the ideal collapse had P(0)=1.
	assert.InDelta(t, 1.0, m.Probability, 1e-12)
}

func TestRun_ReadoutSurvivesNoiseCap(t *testing.T) {
	// Above the density-matrix cap only the state-mutating channels are
	// degraded; readout is outcome-side and stays active.
	o := New(WithGuard(testGuard()), WithSeed(5))
	params := noise.Parameters{
		T1Ns:           100_000,
		T2Ns:           80_000,
		EnableT1T2:     true,
		ReadoutError01: 1.0,
		EnableReadout:  true,
	}

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{
			NumQubits: resource.NoiseQubitCap + 1,
			Gates: []circuit.Gate{
				{Kind: gate.KindI, Qubits: []int{0}},
			},
		},
		Noise:   &params,
		Measure: []int{0},
	})
	require.True(t, res.Success, res.Error)

	assert.True(t, res.Approximate)
	assert.Equal(t, 1, res.Measurements[0].Outcome)

	require.NotNil(t, res.NoiseSummary)
	assert.True(t, res.NoiseSummary.ReadoutEnabled)
	assert.Zero(t, res.NoiseSummary.DampingApplications, "damping degraded away")
}

func TestRun_CrosstalkCoupledPairs(t *testing.T) {
	o := New(WithGuard(testGuard()))
	params := noise.Parameters{
		CrosstalkStrength: 0.5,
		EnableCrosstalk:   true,
	}

	res := o.Run(context.Background(), Request{Circuit: bellCircuit(), Noise: &params})
	require.True(t, res.Success, res.Error)

	// One coupled pair, accumulating phase during both gate slices.
	require.NotNil(t, res.NoiseSummary)
	assert.Equal(t, 2, res.NoiseSummary.CrosstalkApplications)
}

func TestRun_DegenerateMeasurementGuarded(t *testing.T) {
	// Measuring |0⟩ never draws the zero-probability outcome, so the run
	// succeeds and reports outcome 0 with certainty.
	o := New(WithGuard(testGuard()), WithSeed(11))

	res := o.Run(context.Background(), Request{
		Circuit: circuit.Circuit{NumQubits: 1},
		Measure: []int{0},
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 0, res.Measurements[0].Outcome)
	assert.InDelta(t, 1.0, res.Measurements[0].Probability, 1e-12)
}

func TestRun_WallClock(t *testing.T) {
	o := New(WithGuard(testGuard()))

	res := o.Run(context.Background(), Request{Circuit: bellCircuit()})
	require.True(t, res.Success)
	assert.GreaterOrEqual(t, res.WallClockSeconds, 0.0)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorKindCanceled, Classify(context.Canceled))
	assert.Equal(t, ErrorKindNumericalInstability, Classify(&ErrNumericalInstability{Norm: 2}))
	assert.Equal(t, ErrorKindUnknownGate, Classify(&gate.ErrUnknownGate{Name: "x2"}))
	assert.Equal(t, ErrorKindValidation, Classify(&circuit.ErrQubitCount{NumQubits: 31}))
	assert.Equal(t, ErrorKindInsufficientMemory, Classify(&resource.ErrInsufficientMemory{}))
	assert.Equal(t, ErrorKindInternal, Classify(assert.AnError))
}
