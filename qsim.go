package qsim

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/qsim/circuit"
	"github.com/hupe1980/qsim/internal/resource"
	"github.com/hupe1980/qsim/simulate"
)

// Request describes one circuit execution.
type Request = simulate.Request

// Result is the outcome of one circuit execution.
type Result = simulate.Result

// Circuit is a validated-on-run gate sequence over a fixed register.
type Circuit = circuit.Circuit

// Gate is one gate application within a circuit.
type Gate = circuit.Gate

// Simulator is the engine facade. It is safe for concurrent use; every run
// owns its state exclusively and shares only the memory accountant.
type Simulator struct {
	orch    *simulate.Orchestrator
	guard   *resource.Guard
	metrics MetricsCollector
	logger  *Logger
}

// New creates a Simulator.
//
//	sim := qsim.New(
//	    qsim.WithSeed(42),
//	    qsim.WithLogLevel(slog.LevelDebug),
//	)
func New(optFns ...Option) *Simulator {
	o := applyOptions(optFns)

	guard := resource.NewGuard(resource.Config{
		MemoryLimitBytes:  o.memoryLimitBytes,
		SafetyMarginBytes: o.safetyMarginBytes,
	})

	orchOpts := []simulate.Option{
		simulate.WithGuard(guard),
		simulate.WithLogger(&slogAdapter{logger: o.logger}),
	}
	if o.seed != nil {
		orchOpts = append(orchOpts, simulate.WithSeed(*o.seed))
	}

	return &Simulator{
		orch:    simulate.New(orchOpts...),
		guard:   guard,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
}

// Run executes the request. The returned Result is always non-nil and
// self-describing; the error mirrors the result's failure state with a
// matchable sentinel (see ErrValidation and friends).
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	res := s.orch.Run(ctx, req)

	var err error
	if !res.Success {
		err = translateError(res.Err)
	}

	s.metrics.RecordRun(req.Circuit.NumQubits, len(req.Circuit.Gates), time.Since(start), err)
	for _, m := range res.Measurements {
		s.metrics.RecordMeasurement(m.Qubit, m.Outcome)
	}
	if req.Noise != nil && req.Noise.AnyEnabled() && req.Circuit.NumQubits > resource.NoiseQubitCap {
		s.metrics.RecordNoiseDegrade(req.Circuit.NumQubits)
	}

	s.logger.LogRun(ctx, req.Circuit.NumQubits, len(req.Circuit.Gates), res.WallClockSeconds, err)

	return res, err
}

// MemoryUsage reports the bytes currently reserved by in-flight runs.
func (s *Simulator) MemoryUsage() int64 {
	return s.guard.MemoryUsage()
}

// slogAdapter bridges the engine's printf-style logging calls onto the
// structured Logger.
type slogAdapter struct {
	logger *Logger
}

func (a *slogAdapter) Infof(format string, args ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, args...))
}

func (a *slogAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, args...))
}
