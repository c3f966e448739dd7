package noise

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/hupe1980/qsim/density"
)

// Physical constants for the thermal channel, in meV and meV/K.
const (
	qubitGapMeV    = 0.02    // typical transmon level splitting ΔE
	boltzmannMeVK  = 0.08617 // Boltzmann constant k
	crosstalkScale = 0.001   // rad per ns per unit coupling strength
)

// Model applies the channels selected by its Parameters and records what
// fired into its Summary. One Model instance serves one simulation.
type Model struct {
	Params  Parameters
	Summary Summary
}

// NewModel creates a noise model for a single simulation run.
func NewModel(p Parameters) *Model {
	return &Model{
		Params: p,
		Summary: Summary{
			Preset:         p.Preset,
			ReadoutEnabled: p.EnableReadout,
		},
	}
}

// ApplyDamping applies the T1 (amplitude) and T2 (phase) damping channels
// to every target qubit for the elapsed time. Each qubit's two-Kraus
// channel is extended to the full system by implicit tensoring with
// identity, so targets may sit at any bit position.
//
// Decay probabilities follow p_decay = 1 − e^(−t/T1) and
// p_dephase = 1 − e^(−γφ·t) with γφ = max(0, 1/T2 − 1/(2·T1)); an unset
// T1 contributes nothing, so a pure-dephasing device still dephases.
func (m *Model) ApplyDamping(rho *density.Matrix, elapsedNs float64, qubits []int) {
	if !m.Params.EnableT1T2 || elapsedNs <= 0 {
		return
	}
	pDecay := 0.0
	if m.Params.T1Ns > 0 {
		pDecay = 1 - math.Exp(-elapsedNs/m.Params.T1Ns)
	}
	pDephase := 0.0
	if m.Params.T2Ns > 0 {
		gammaPhi := 1 / m.Params.T2Ns
		if m.Params.T1Ns > 0 {
			gammaPhi -= 1 / (2 * m.Params.T1Ns)
		}
		if gammaPhi > 0 {
			pDephase = 1 - math.Exp(-gammaPhi*elapsedNs)
		}
	}
	if pDecay <= 0 && pDephase <= 0 {
		return
	}

	amp := amplitudeDampingKraus(pDecay)
	ph := phaseDampingKraus(pDephase)
	for _, q := range qubits {
		if pDecay > 0 {
			rho.ApplySingleQubitKraus(amp, q)
		}
		if pDephase > 0 {
			rho.ApplySingleQubitKraus(ph, q)
		}
	}
	m.Summary.DampingApplications += len(qubits)
	m.Summary.AccumulatedTimeNs += elapsedNs
}

func amplitudeDampingKraus(p float64) [][2][2]complex128 {
	return [][2][2]complex128{
		{{1, 0}, {0, complex(math.Sqrt(1-p), 0)}},
		{{0, complex(math.Sqrt(p), 0)}, {0, 0}},
	}
}

func phaseDampingKraus(p float64) [][2][2]complex128 {
	return [][2][2]complex128{
		{{1, 0}, {0, complex(math.Sqrt(1-p), 0)}},
		{{0, 0}, {0, complex(math.Sqrt(p), 0)}},
	}
}

// ApplyGateError applies a depolarizing channel ρ → (1−p)·ρ + (p/dim)·I,
// with p chosen from the 1- or 2-qubit error rate by gate arity.
func (m *Model) ApplyGateError(rho *density.Matrix, arity int) {
	if !m.Params.EnableGateErrors {
		return
	}
	p := m.Params.OneQubitError
	if arity >= 2 {
		p = m.Params.TwoQubitError
	}
	if p <= 0 {
		return
	}
	rho.Depolarize(p)
	m.Summary.GateErrorApplications++
}

// ApplyThermal mixes the density matrix toward the thermal-equilibrium
// population target. The excited-state population follows
// p1 = 1/(1 + e^(ΔE/kT)); it doubles as the mixing weight, so a cold
// device barely perturbs the state.
func (m *Model) ApplyThermal(rho *density.Matrix) {
	if !m.Params.EnableThermal || m.Params.TemperatureK <= 0 {
		return
	}
	p1 := 1 / (1 + math.Exp(qubitGapMeV/(boltzmannMeVK*m.Params.TemperatureK)))
	if p1 <= 0 {
		return
	}
	target, err := density.New(rho.NumQubits())
	if err != nil {
		return
	}
	n := rho.NumQubits()
	for basis := 0; basis < rho.Dim(); basis++ {
		pop := 1.0
		for q := 0; q < n; q++ {
			if basis&(1<<q) != 0 {
				pop *= p1
			} else {
				pop *= 1 - p1
			}
		}
		target.Set(basis, basis, complex(pop, 0))
	}
	rho.MixWith(target, p1)
	m.Summary.ThermalApplied = true
}

// ApplyCrosstalk applies a small ZZ phase rotation exp(−iφ·Z₁Z₂) to every
// qubit pair touched together, with φ = strength · elapsedTime · scale.
// The channel is diagonal in the computational basis.
func (m *Model) ApplyCrosstalk(rho *density.Matrix, pairs [][2]int, elapsedNs float64) {
	if !m.Params.EnableCrosstalk || m.Params.CrosstalkStrength <= 0 || elapsedNs <= 0 || len(pairs) == 0 {
		return
	}
	phi := m.Params.CrosstalkStrength * elapsedNs * crosstalkScale
	for _, pair := range pairs {
		b0 := 1 << pair[0]
		b1 := 1 << pair[1]
		rho.ApplyDiagonalPhase(func(basis int) complex128 {
			z0, z1 := 1.0, 1.0
			if basis&b0 != 0 {
				z0 = -1
			}
			if basis&b1 != 0 {
				z1 = -1
			}
			return cmplx.Exp(complex(0, -phi*z0*z1))
		})
	}
	m.Summary.CrosstalkApplications += len(pairs)
}

// FlipOutcome applies the asymmetric readout-error channel to a sampled
// measurement bit: 0 flips to 1 with probability ReadoutError01 and 1 flips
// to 0 with probability ReadoutError10. The underlying state is untouched.
func (m *Model) FlipOutcome(outcome int, rng *rand.Rand) int {
	if !m.Params.EnableReadout {
		return outcome
	}
	switch outcome {
	case 0:
		if rng.Float64() < m.Params.ReadoutError01 {
			return 1
		}
	case 1:
		if rng.Float64() < m.Params.ReadoutError10 {
			return 0
		}
	}
	return outcome
}

// ConfuseProbabilities applies the 2x2 readout confusion matrix to an ideal
// (P0, P1) distribution.
func (m *Model) ConfuseProbabilities(p0, p1 float64) (float64, float64) {
	if !m.Params.EnableReadout {
		return p0, p1
	}
	e01 := m.Params.ReadoutError01
	e10 := m.Params.ReadoutError10
	return (1-e01)*p0 + e10*p1, e01*p0 + (1-e10)*p1
}
