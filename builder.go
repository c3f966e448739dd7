package qsim

import (
	"github.com/hupe1980/qsim/circuit"
	"github.com/hupe1980/qsim/gate"
	"github.com/hupe1980/qsim/noise"
)

// CircuitBuilder assembles circuits with a fluent, immutable API. Each call
// returns a new builder value, so partially built circuits can be shared and
// extended independently:
//
//	base := qsim.Build(2).H(0)
//	bell := base.CNOT(0, 1).Circuit()
//	plus := base.Circuit() // unaffected by the CNOT
//
// Validation is deferred to Run; the builder never panics on bad input.
type CircuitBuilder struct {
	numQubits int
	gates     []circuit.Gate
	initial   circuit.InitialState
	noise     *noise.Parameters
	measure   []int
}

// Build starts a circuit over numQubits qubits initialized to |0...0⟩.
func Build(numQubits int) CircuitBuilder {
	return CircuitBuilder{numQubits: numQubits}
}

func (b CircuitBuilder) with(g circuit.Gate) CircuitBuilder {
	gates := make([]circuit.Gate, len(b.gates), len(b.gates)+1)
	copy(gates, b.gates)
	b.gates = append(gates, g)
	return b
}

// I appends an identity gate on qubit q.
func (b CircuitBuilder) I(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindI, Qubits: []int{q}})
}

// X appends a Pauli-X (NOT) gate on qubit q.
func (b CircuitBuilder) X(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindX, Qubits: []int{q}})
}

// Y appends a Pauli-Y gate on qubit q.
func (b CircuitBuilder) Y(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindY, Qubits: []int{q}})
}

// Z appends a Pauli-Z gate on qubit q.
func (b CircuitBuilder) Z(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindZ, Qubits: []int{q}})
}

// H appends a Hadamard gate on qubit q.
func (b CircuitBuilder) H(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindH, Qubits: []int{q}})
}

// S appends a phase gate (√Z) on qubit q.
func (b CircuitBuilder) S(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindS, Qubits: []int{q}})
}

// Sdg appends the adjoint phase gate on qubit q.
func (b CircuitBuilder) Sdg(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindSdg, Qubits: []int{q}})
}

// T appends a T gate (√S) on qubit q.
func (b CircuitBuilder) T(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindT, Qubits: []int{q}})
}

// Tdg appends the adjoint T gate on qubit q.
func (b CircuitBuilder) Tdg(q int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindTdg, Qubits: []int{q}})
}

// RX appends a rotation about the X axis by theta radians on qubit q.
func (b CircuitBuilder) RX(q int, theta float64) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindRX, Qubits: []int{q}, Params: []float64{theta}})
}

// RY appends a rotation about the Y axis by theta radians on qubit q.
func (b CircuitBuilder) RY(q int, theta float64) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindRY, Qubits: []int{q}, Params: []float64{theta}})
}

// RZ appends a rotation about the Z axis by theta radians on qubit q.
func (b CircuitBuilder) RZ(q int, theta float64) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindRZ, Qubits: []int{q}, Params: []float64{theta}})
}

// CNOT appends a controlled-NOT gate.
func (b CircuitBuilder) CNOT(control, target int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindCNOT, Qubits: []int{control, target}})
}

// CZ appends a controlled-Z gate.
func (b CircuitBuilder) CZ(control, target int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindCZ, Qubits: []int{control, target}})
}

// SWAP appends a SWAP gate exchanging two qubits.
func (b CircuitBuilder) SWAP(a, c int) CircuitBuilder {
	return b.with(circuit.Gate{Kind: gate.KindSWAP, Qubits: []int{a, c}})
}

// Gate appends a gate by name, e.g. "h", "CX", "rz". Unknown names surface
// as a validation error on Run.
func (b CircuitBuilder) Gate(name string, qubits []int, params ...float64) CircuitBuilder {
	g, err := circuit.NewGate(name, qubits, params)
	if err != nil {
		// Carried as an invalid kind so Run reports the bad name.
		g = circuit.Gate{Kind: gate.KindInvalid, Qubits: qubits, Params: params}
	}
	return b.with(g)
}

// Initial sets the state preparation, e.g. circuit.Ket("|+⟩").
func (b CircuitBuilder) Initial(s circuit.InitialState) CircuitBuilder {
	b.initial = s
	return b
}

// Noise attaches hardware-noise parameters, e.g. noise.IBM().
func (b CircuitBuilder) Noise(p noise.Parameters) CircuitBuilder {
	b.noise = &p
	return b
}

// Measure schedules qubits for measurement collapse after the gate
// sequence, in the given order.
func (b CircuitBuilder) Measure(qubits ...int) CircuitBuilder {
	measure := make([]int, len(b.measure), len(b.measure)+len(qubits))
	copy(measure, b.measure)
	b.measure = append(measure, qubits...)
	return b
}

// Circuit returns the assembled circuit.
func (b CircuitBuilder) Circuit() circuit.Circuit {
	gates := make([]circuit.Gate, len(b.gates))
	copy(gates, b.gates)
	return circuit.Circuit{NumQubits: b.numQubits, Gates: gates}
}

// Request returns the full run request, including initial state, noise and
// measurement schedule.
func (b CircuitBuilder) Request() Request {
	return Request{
		Circuit: b.Circuit(),
		Initial: b.initial,
		Noise:   b.noise,
		Measure: append([]int(nil), b.measure...),
	}
}
