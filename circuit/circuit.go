package circuit

import (
	"fmt"

	"github.com/hupe1980/qsim/gate"
)

const (
	// MinQubits is the smallest supported register size.
	MinQubits = 1
	// MaxQubits is the hard ceiling for the state-vector representation.
	MaxQubits = 30
	// MaxGateQubits is the most qubits a single gate may touch.
	MaxGateQubits = 3
)

// Gate is one operation in a circuit: a gate kind, the ordered qubit indices
// it acts on and optional numeric parameters (rotation angles). It is an
// immutable value type.
type Gate struct {
	Kind   gate.Kind
	Qubits []int
	Params []float64
}

// NewGate parses a gate by name. Unknown names are rejected here, at
// descriptor-construction time, never at application time.
func NewGate(name string, qubits []int, params []float64) (Gate, error) {
	k, err := gate.Parse(name)
	if err != nil {
		return Gate{}, err
	}
	return Gate{Kind: k, Qubits: qubits, Params: params}, nil
}

// String returns a compact human-readable form like "CNOT(0,1)".
func (g Gate) String() string {
	return fmt.Sprintf("%s%v", g.Kind, g.Qubits)
}

// Circuit describes a gate sequence over a fixed-size qubit register.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// ErrQubitCount indicates a register size outside [MinQubits, MaxQubits].
type ErrQubitCount struct {
	NumQubits int
}

func (e *ErrQubitCount) Error() string {
	return fmt.Sprintf("qubit count %d out of range [%d,%d]", e.NumQubits, MinQubits, MaxQubits)
}

// ErrQubitIndex indicates a gate referencing a qubit outside the register.
type ErrQubitIndex struct {
	Gate  int
	Qubit int
	Size  int
}

func (e *ErrQubitIndex) Error() string {
	return fmt.Sprintf("gate %d: qubit index %d out of range for %d-qubit register", e.Gate, e.Qubit, e.Size)
}

// ErrDuplicateQubit indicates a gate listing the same qubit twice.
type ErrDuplicateQubit struct {
	Gate  int
	Qubit int
}

func (e *ErrDuplicateQubit) Error() string {
	return fmt.Sprintf("gate %d: duplicate qubit index %d", e.Gate, e.Qubit)
}

// ErrUnsupportedArity indicates a gate touching more qubits than the engine
// supports.
type ErrUnsupportedArity struct {
	Gate   int
	Qubits int
}

func (e *ErrUnsupportedArity) Error() string {
	return fmt.Sprintf("gate %d: %d target qubits unsupported (max %d)", e.Gate, e.Qubits, MaxGateQubits)
}

// ErrArityMismatch indicates a gate kind applied to the wrong number of qubits.
type ErrArityMismatch struct {
	Gate int
	Kind gate.Kind
	Want int
	Got  int
}

func (e *ErrArityMismatch) Error() string {
	return fmt.Sprintf("gate %d: %s expects %d qubit(s), got %d", e.Gate, e.Kind, e.Want, e.Got)
}

// Validate checks the whole descriptor against the register size. It returns
// the first violation found and touches no simulation state.
func (c Circuit) Validate() error {
	if c.NumQubits < MinQubits || c.NumQubits > MaxQubits {
		return &ErrQubitCount{NumQubits: c.NumQubits}
	}
	for i, g := range c.Gates {
		if g.Kind == gate.KindInvalid {
			return &gate.ErrUnknownGate{Name: g.Kind.String()}
		}
		if len(g.Qubits) == 0 || len(g.Qubits) > MaxGateQubits {
			return &ErrUnsupportedArity{Gate: i, Qubits: len(g.Qubits)}
		}
		if want := g.Kind.Arity(); len(g.Qubits) != want {
			return &ErrArityMismatch{Gate: i, Kind: g.Kind, Want: want, Got: len(g.Qubits)}
		}
		seen := make(map[int]struct{}, len(g.Qubits))
		for _, q := range g.Qubits {
			if q < 0 || q >= c.NumQubits {
				return &ErrQubitIndex{Gate: i, Qubit: q, Size: c.NumQubits}
			}
			if _, dup := seen[q]; dup {
				return &ErrDuplicateQubit{Gate: i, Qubit: q}
			}
			seen[q] = struct{}{}
		}
		if g.Kind.Parametrized() && len(g.Params) == 0 {
			return &gate.ErrMissingParameter{Kind: g.Kind}
		}
	}
	return nil
}

// TwoQubitPairs returns the distinct qubit pairs touched together by
// two-qubit gates, in first-touched order. The noise model uses these for
// crosstalk coupling.
func (c Circuit) TwoQubitPairs() [][2]int {
	var pairs [][2]int
	seen := make(map[[2]int]struct{})
	for _, g := range c.Gates {
		if len(g.Qubits) != 2 {
			continue
		}
		p := [2]int{g.Qubits[0], g.Qubits[1]}
		if p[0] > p[1] {
			p[0], p[1] = p[1], p[0]
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs
}
