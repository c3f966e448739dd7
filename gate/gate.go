package gate

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
	"time"
)

// Kind identifies a supported gate. The set is closed: every value a parser
// can produce has a matrix, a duration and an arity.
type Kind uint8

const (
	// KindInvalid is the zero value and never a valid gate.
	KindInvalid Kind = iota

	// Single-qubit gates.
	KindI
	KindX
	KindY
	KindZ
	KindH
	KindS
	KindSdg
	KindT
	KindTdg
	KindRX
	KindRY
	KindRZ

	// Two-qubit gates.
	KindCNOT
	KindCZ
	KindSWAP
)

// ErrUnknownGate indicates a gate name outside the supported set.
type ErrUnknownGate struct {
	Name string
}

func (e *ErrUnknownGate) Error() string {
	return fmt.Sprintf("unknown gate: %q", e.Name)
}

// ErrMissingParameter indicates a parametrized gate invoked without its angle.
type ErrMissingParameter struct {
	Kind Kind
}

func (e *ErrMissingParameter) Error() string {
	return fmt.Sprintf("gate %s requires a rotation angle parameter", e.Kind)
}

var kindNames = map[Kind]string{
	KindI:    "I",
	KindX:    "X",
	KindY:    "Y",
	KindZ:    "Z",
	KindH:    "H",
	KindS:    "S",
	KindSdg:  "SDG",
	KindT:    "T",
	KindTdg:  "TDG",
	KindRX:   "RX",
	KindRY:   "RY",
	KindRZ:   "RZ",
	KindCNOT: "CNOT",
	KindCZ:   "CZ",
	KindSWAP: "SWAP",
}

var nameKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames)+2)
	for k, n := range kindNames {
		m[n] = k
	}
	// Common aliases seen in circuit descriptors.
	m["CX"] = KindCNOT
	m["S+"] = KindSdg
	m["T+"] = KindTdg
	return m
}()

// String returns the canonical gate name.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Parse resolves a gate name to its Kind. Names are case-insensitive.
// Unknown names return *ErrUnknownGate.
func Parse(name string) (Kind, error) {
	k, ok := nameKinds[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return KindInvalid, &ErrUnknownGate{Name: name}
	}
	return k, nil
}

// Arity returns the number of qubits the gate acts on.
func (k Kind) Arity() int {
	switch k {
	case KindCNOT, KindCZ, KindSWAP:
		return 2
	case KindInvalid:
		return 0
	default:
		return 1
	}
}

// Parametrized reports whether the gate takes a rotation angle.
func (k Kind) Parametrized() bool {
	switch k {
	case KindRX, KindRY, KindRZ:
		return true
	default:
		return false
	}
}

// Fixed single-qubit matrices, built once at startup.
var (
	matI = [][]complex128{{1, 0}, {0, 1}}
	matX = [][]complex128{{0, 1}, {1, 0}}
	matY = [][]complex128{{0, -1i}, {1i, 0}}
	matZ = [][]complex128{{1, 0}, {0, -1}}
	matH = [][]complex128{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	matS   = [][]complex128{{1, 0}, {0, 1i}}
	matSdg = [][]complex128{{1, 0}, {0, -1i}}
	matT   = [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
	matTdg = [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}
)

// Fixed two-qubit matrices in |control,target⟩ basis ordering.
var (
	matCNOT = [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
	matCZ = [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}
	matSWAP = [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}
)

// Matrix returns the unitary matrix for the gate. Parametrized rotations
// read their angle from params[0]; fixed gates ignore params.
//
// RX and RY use the Bloch-sphere half-angle convention cos(θ/2), sin(θ/2).
// RZ applies the symmetric phases e^{-iθ/2} on |0⟩ and e^{+iθ/2} on |1⟩.
func Matrix(k Kind, params []float64) ([][]complex128, error) {
	switch k {
	case KindI:
		return matI, nil
	case KindX:
		return matX, nil
	case KindY:
		return matY, nil
	case KindZ:
		return matZ, nil
	case KindH:
		return matH, nil
	case KindS:
		return matS, nil
	case KindSdg:
		return matSdg, nil
	case KindT:
		return matT, nil
	case KindTdg:
		return matTdg, nil
	case KindRX, KindRY, KindRZ:
		if len(params) == 0 {
			return nil, &ErrMissingParameter{Kind: k}
		}
		return rotation(k, params[0]), nil
	case KindCNOT:
		return matCNOT, nil
	case KindCZ:
		return matCZ, nil
	case KindSWAP:
		return matSWAP, nil
	default:
		return nil, &ErrUnknownGate{Name: k.String()}
	}
}

func rotation(k Kind, theta float64) [][]complex128 {
	c := complex(math.Cos(theta/2), 0)
	s := math.Sin(theta / 2)
	switch k {
	case KindRX:
		return [][]complex128{
			{c, complex(0, -s)},
			{complex(0, -s), c},
		}
	case KindRY:
		return [][]complex128{
			{c, complex(-s, 0)},
			{complex(s, 0), c},
		}
	default: // KindRZ
		return [][]complex128{
			{cmplx.Exp(complex(0, -theta/2)), 0},
			{0, cmplx.Exp(complex(0, theta/2))},
		}
	}
}

// Execution-time estimates per gate, modeled after typical superconducting
// hardware: single-qubit gates in the 10-30ns range, two-qubit gates in the
// 90-250ns range. The orchestrator accumulates these into the circuit time
// used for decoherence channels.
var durations = map[Kind]time.Duration{
	KindI:    10 * time.Nanosecond,
	KindX:    20 * time.Nanosecond,
	KindY:    20 * time.Nanosecond,
	KindZ:    10 * time.Nanosecond,
	KindH:    20 * time.Nanosecond,
	KindS:    10 * time.Nanosecond,
	KindSdg:  10 * time.Nanosecond,
	KindT:    10 * time.Nanosecond,
	KindTdg:  10 * time.Nanosecond,
	KindRX:   30 * time.Nanosecond,
	KindRY:   30 * time.Nanosecond,
	KindRZ:   10 * time.Nanosecond,
	KindCNOT: 200 * time.Nanosecond,
	KindCZ:   150 * time.Nanosecond,
	KindSWAP: 250 * time.Nanosecond,
}

// Duration returns the static execution-time estimate for the gate.
func Duration(k Kind) time.Duration {
	if d, ok := durations[k]; ok {
		return d
	}
	return 90 * time.Nanosecond
}

// Kinds returns every valid gate kind, single-qubit gates first.
func Kinds() []Kind {
	return []Kind{
		KindI, KindX, KindY, KindZ, KindH, KindS, KindSdg, KindT, KindTdg,
		KindRX, KindRY, KindRZ,
		KindCNOT, KindCZ, KindSWAP,
	}
}
