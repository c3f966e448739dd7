package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hupe1980/qsim/circuit"
	"github.com/hupe1980/qsim/density"
	"github.com/hupe1980/qsim/gate"
	"github.com/hupe1980/qsim/internal/resource"
	"github.com/hupe1980/qsim/noise"
	"github.com/hupe1980/qsim/statevec"
)

// normGuardTolerance is the maximum norm drift tolerated after a gate
// before the run is aborted as numerically unstable.
const normGuardTolerance = 1e-6

// stateSliceMaxQubits caps the register size for which the full amplitude
// array is attached to the result (payload-size guard).
const stateSliceMaxQubits = 12

// entanglementTolerance is the purity deficit below which a qubit is
// considered entangled with the rest of the register.
const entanglementTolerance = 1e-6

// ErrNumericalInstability indicates norm drift beyond tolerance after a
// gate application.
type ErrNumericalInstability struct {
	Norm float64
}

func (e *ErrNumericalInstability) Error() string {
	return fmt.Sprintf("numerical instability: state norm drifted to %g", e.Norm)
}

// Logger is a simple interface for logging.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is a default logger that does nothing.
type noopLogger struct{}

func (l *noopLogger) Infof(format string, args ...interface{})  {}
func (l *noopLogger) Errorf(format string, args ...interface{}) {}

// Request describes one circuit execution.
type Request struct {
	Circuit circuit.Circuit

	// Initial selects the state preparation; the zero value prepares
	// |0...0⟩.
	Initial circuit.InitialState

	// Noise enables hardware-noise injection when non-nil.
	Noise *noise.Parameters

	// Measure lists qubits to collapse after the gate sequence, in order.
	// Each entry produces one Monte Carlo outcome in the result.
	Measure []int
}

// Orchestrator executes simulation requests. It is safe for concurrent use;
// every Run owns its state exclusively.
type Orchestrator struct {
	guard  *resource.Guard
	logger Logger
	seed   *int64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGuard sets the resource guard used for pre-flight admission.
func WithGuard(g *resource.Guard) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.guard = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSeed fixes the random source for deterministic measurement collapse
// and readout flips.
func WithSeed(seed int64) Option {
	return func(o *Orchestrator) {
		o.seed = &seed
	}
}

// New creates an Orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		guard:  resource.NewGuard(resource.Config{}),
		logger: &noopLogger{},
	}
	for _, fn := range opts {
		if fn != nil {
			fn(o)
		}
	}
	return o
}

// Lifecycle phases of one run. No phase is ever revisited.
type phase uint8

const (
	phaseUninitialized phase = iota
	phaseStateInitialized
	phaseGatesApplied
	phaseDiagnosticsComputed
	phaseTerminal
)

// run holds the mutable state of one circuit execution.
type run struct {
	phase phase
	req   Request
	state *statevec.StateVector
	model *noise.Model
	// lastMixed is the most recent pre-demotion density matrix; it carries
	// the mixedness that the vector round-trip discards and feeds the
	// circuit-level entanglement measures.
	lastMixed *density.Matrix
	totalNs   float64
	rng       *rand.Rand
}

// Run executes the request and returns the single exit-point result. The
// Terminal phase is reached regardless of success or failure; errors are
// reported inside the result, never thrown across this boundary.
//
// Cancellation is cooperative: ctx is checked at the top of the per-gate
// loop, between gate applications.
func (o *Orchestrator) Run(ctx context.Context, req Request) *Result {
	start := time.Now()
	res := &Result{NumQubits: req.Circuit.NumQubits}
	r := &run{req: req, rng: o.newRand()}

	defer func() {
		r.phase = phaseTerminal
		res.WallClockSeconds = time.Since(start).Seconds()
	}()

	// Step 1: strict validation before any allocation or mutation.
	if err := req.Circuit.Validate(); err != nil {
		return o.fail(res, err)
	}

	// Step 2: resource-guard admission, with feature degradation.
	noiseRequested := req.Noise != nil && req.Noise.AnyEnabled()
	adm, err := o.guard.Admit(req.Circuit.NumQubits, noiseRequested)
	if err != nil {
		return o.fail(res, err)
	}
	defer o.guard.Release(adm)

	var params noise.Parameters
	if req.Noise != nil {
		params = *req.Noise
	}
	if adm.DisableNoise {
		// Only the density-matrix channels are intractable past the cap.
		// Readout error is outcome-side and O(1) per measurement, so it
		// survives the degradation.
		o.logger.Infof("noise disabled: %d qubits exceed the %d-qubit density-matrix cap",
			req.Circuit.NumQubits, resource.NoiseQubitCap)
		params.EnableT1T2 = false
		params.EnableGateErrors = false
		params.EnableCrosstalk = false
		params.EnableThermal = false
		res.Approximate = true
	}
	if params.AnyEnabled() || params.EnableReadout {
		r.model = noise.NewModel(params)
	}

	// Step 3: state preparation.
	if err := r.initialize(); err != nil {
		return o.fail(res, err)
	}

	// Step 4: gate loop.
	if err := r.applyGates(ctx); err != nil {
		return o.fail(res, err)
	}
	res.TotalCircuitTimeNs = r.totalNs

	// Optional measurement collapse, readout error applied outcome-side.
	if err := r.measure(res); err != nil {
		return o.fail(res, err)
	}

	// Steps 5-6: diagnostics.
	if err := r.diagnostics(res); err != nil {
		return o.fail(res, err)
	}

	if r.model != nil {
		summary := r.model.Summary
		res.NoiseSummary = &summary
	}
	res.Success = true
	return res
}

func (o *Orchestrator) newRand() *rand.Rand {
	if o.seed != nil {
		return rand.New(rand.NewSource(*o.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (r *run) initialize() error {
	prep, err := r.req.Initial.Resolve(r.req.Circuit.NumQubits)
	if err != nil {
		return err
	}
	if prep.Superposed {
		r.state, err = statevec.NewCustom(r.req.Circuit.NumQubits, prep.Alpha, prep.Beta)
	} else {
		r.state, err = statevec.NewBasis(r.req.Circuit.NumQubits, prep.BasisIndex)
	}
	if err != nil {
		return err
	}
	r.phase = phaseStateInitialized
	return nil
}

func (r *run) applyGates(ctx context.Context) error {
	allQubits := make([]int, r.req.Circuit.NumQubits)
	for i := range allQubits {
		allQubits[i] = i
	}
	pairs := r.req.Circuit.TwoQubitPairs()

	for _, g := range r.req.Circuit.Gates {
		if err := ctx.Err(); err != nil {
			return err
		}

		m, err := gate.Matrix(g.Kind, g.Params)
		if err != nil {
			return err
		}
		if err := r.state.ApplyMatrix(m, g.Qubits); err != nil {
			return err
		}

		gateNs := float64(gate.Duration(g.Kind).Nanoseconds())
		r.totalNs += gateNs

		if norm := r.state.Norm(); math.Abs(norm-1) > normGuardTolerance {
			return &ErrNumericalInstability{Norm: norm}
		}

		if r.model == nil || !r.model.Params.AnyEnabled() {
			continue
		}

		// Promote, inject noise for this gate's time slice, demote to the
		// dominant pure component. True mixed states cannot survive the
		// vector round trip; only the statistically dominant component is
		// carried between gates. ZZ crosstalk runs on every coupled pair
		// for the slice, not only the pair the current gate touches.
		rho, err := density.FromStateVector(r.state)
		if err != nil {
			return err
		}
		if r.lastMixed == nil {
			r.model.ApplyThermal(rho)
		}
		r.model.ApplyDamping(rho, gateNs, allQubits)
		r.model.ApplyGateError(rho, len(g.Qubits))
		r.model.ApplyCrosstalk(rho, pairs, gateNs)
		r.lastMixed = rho
		r.state, err = rho.ToStateVector()
		if err != nil {
			return err
		}
	}
	r.phase = phaseGatesApplied
	return nil
}

func (r *run) measure(res *Result) error {
	for _, q := range r.req.Measure {
		p0, p1, err := r.state.Probabilities(q)
		if err != nil {
			return err
		}
		outcome, prob, collapsed, err := r.state.Measure(q, r.rng)
		if err != nil {
			return err
		}
		readP0, readP1 := p0, p1
		if r.model != nil {
			readP0, readP1 = r.model.ConfuseProbabilities(p0, p1)
			outcome = r.model.FlipOutcome(outcome, r.rng)
		}
		res.Measurements = append(res.Measurements, Measurement{
			Qubit:       q,
			Outcome:     outcome,
			Probability: prob,
			ReadP0:      readP0,
			ReadP1:      readP1,
		})
		r.state = collapsed
	}
	return nil
}

func (r *run) diagnostics(res *Result) error {
	n := r.req.Circuit.NumQubits

	// Circuit-level measures need the full density matrix and are skipped
	// above the cap; the result is then flagged approximate.
	if n <= density.MaxQubits {
		rho := r.lastMixed
		if rho == nil {
			var err error
			rho, err = density.FromStateVector(r.state)
			if err != nil {
				return err
			}
		}
		res.VonNeumannEntropy = rho.VonNeumannEntropy()
		if n == 2 {
			c, err := rho.Concurrence()
			if err != nil {
				return err
			}
			res.Concurrence = c
		}
	} else {
		res.Approximate = true
	}

	res.Qubits = make([]QubitResult, n)
	for q := 0; q < n; q++ {
		rho, err := r.state.ReducedDensityMatrix(q)
		if err != nil {
			return err
		}
		x, y, z, err := r.state.BlochVector(q)
		if err != nil {
			return err
		}
		purity, err := r.state.Purity(q)
		if err != nil {
			return err
		}
		qr := QubitResult{
			Index:                q,
			Bloch:                Bloch{X: x, Y: y, Z: z},
			Purity:               purity,
			ReducedDensityMatrix: matrixOf(rho),
		}
		if q == 0 && n <= stateSliceMaxQubits {
			amps := r.state.Amplitudes()
			qr.StateVector = make([]Complex, len(amps))
			for i, a := range amps {
				qr.StateVector[i] = complexOf(a)
			}
		}
		res.Qubits[q] = qr

		if purity < 1-entanglementTolerance {
			res.Entangled = true
		}
	}
	if res.Concurrence > 0.01 {
		res.Entangled = true
	}
	r.phase = phaseDiagnosticsComputed
	return nil
}

// fail funnels an internal error into the exit-point result.
func (o *Orchestrator) fail(res *Result, err error) *Result {
	res.Success = false
	res.Err = err
	res.Error = err.Error()
	res.ErrorKind = Classify(err)
	o.logger.Errorf("simulation failed (%s): %v", res.ErrorKind, err)
	return res
}

// Classify maps an engine error to its ErrorKind. Unrecognized errors are
// reported as internal.
func Classify(err error) ErrorKind {
	var (
		unknownGate     *gate.ErrUnknownGate
		missingParam    *gate.ErrMissingParameter
		qubitCount      *circuit.ErrQubitCount
		qubitIndex      *circuit.ErrQubitIndex
		dupQubit        *circuit.ErrDuplicateQubit
		arityMismatch   *circuit.ErrArityMismatch
		circuitArity    *circuit.ErrUnsupportedArity
		badInitial      *circuit.ErrBadInitialState
		vecArity        *statevec.ErrUnsupportedArity
		degenerate      *statevec.ErrDegenerateMeasurement
		outOfRange      *statevec.ErrQubitOutOfRange
		badBasis        *statevec.ErrBadBasisIndex
		noMemory        *resource.ErrInsufficientMemory
		unstable        *ErrNumericalInstability
		densityTooLarge *density.ErrTooLarge
	)
	switch {
	case errors.As(err, &unknownGate):
		return ErrorKindUnknownGate
	case errors.As(err, &circuitArity), errors.As(err, &vecArity):
		return ErrorKindUnsupportedGateArity
	case errors.As(err, &noMemory), errors.As(err, &densityTooLarge):
		return ErrorKindInsufficientMemory
	case errors.As(err, &degenerate):
		return ErrorKindDegenerateMeasurement
	case errors.As(err, &unstable):
		return ErrorKindNumericalInstability
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindCanceled
	case errors.As(err, &missingParam), errors.As(err, &qubitCount),
		errors.As(err, &qubitIndex), errors.As(err, &dupQubit),
		errors.As(err, &arityMismatch), errors.As(err, &badInitial),
		errors.As(err, &outOfRange), errors.As(err, &badBasis):
		return ErrorKindValidation
	default:
		return ErrorKindInternal
	}
}
