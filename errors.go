package qsim

import (
	"errors"
	"fmt"

	"github.com/hupe1980/qsim/circuit"
	"github.com/hupe1980/qsim/gate"
	"github.com/hupe1980/qsim/internal/resource"
	"github.com/hupe1980/qsim/simulate"
	"github.com/hupe1980/qsim/statevec"
)

// Sentinel errors returned by Simulator methods. Use errors.Is to match;
// the underlying typed error remains available via errors.As.
var (
	// ErrValidation indicates a structurally invalid circuit or request.
	ErrValidation = errors.New("qsim: invalid request")

	// ErrUnknownGate indicates a gate name outside the supported set.
	ErrUnknownGate = errors.New("qsim: unknown gate")

	// ErrUnsupportedGateArity indicates a gate acting on more qubits than
	// the engine supports.
	ErrUnsupportedGateArity = errors.New("qsim: unsupported gate arity")

	// ErrInsufficientMemory indicates the state vector would not fit in
	// available memory with the configured safety margin.
	ErrInsufficientMemory = errors.New("qsim: insufficient memory")

	// ErrDegenerateMeasurement indicates a measurement on a qubit whose
	// outcome distribution collapsed to numerical zero.
	ErrDegenerateMeasurement = errors.New("qsim: degenerate measurement")

	// ErrNumericalInstability indicates the state norm drifted beyond the
	// engine's tolerance during gate application.
	ErrNumericalInstability = errors.New("qsim: numerical instability")
)

// translateError wraps internal typed errors with the matching public
// sentinel so callers can branch with errors.Is without importing
// subpackages.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var (
		unknownGate *gate.ErrUnknownGate
		arity       *circuit.ErrUnsupportedArity
		svArity     *statevec.ErrUnsupportedArity
		memory      *resource.ErrInsufficientMemory
		degenerate  *statevec.ErrDegenerateMeasurement
		instability *simulate.ErrNumericalInstability
	)

	switch {
	case errors.As(err, &unknownGate):
		return fmt.Errorf("%w: %v", ErrUnknownGate, err)
	case errors.As(err, &arity), errors.As(err, &svArity):
		return fmt.Errorf("%w: %v", ErrUnsupportedGateArity, err)
	case errors.As(err, &memory):
		return fmt.Errorf("%w: %v", ErrInsufficientMemory, err)
	case errors.As(err, &degenerate):
		return fmt.Errorf("%w: %v", ErrDegenerateMeasurement, err)
	case errors.As(err, &instability):
		return fmt.Errorf("%w: %v", ErrNumericalInstability, err)
	}

	var (
		missingParam *gate.ErrMissingParameter
		qubitCount   *circuit.ErrQubitCount
		qubitIndex   *circuit.ErrQubitIndex
		duplicate    *circuit.ErrDuplicateQubit
		mismatch     *circuit.ErrArityMismatch
		badInitial   *circuit.ErrBadInitialState
	)

	switch {
	case errors.As(err, &missingParam),
		errors.As(err, &qubitCount),
		errors.As(err, &qubitIndex),
		errors.As(err, &duplicate),
		errors.As(err, &mismatch),
		errors.As(err, &badInitial):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return err
}
