package qsim

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Runner executes batches of independent simulations with bounded
// parallelism. Memory admission still happens per run, so a batch degrades
// gracefully when the register sizes together exceed the limit.
type Runner struct {
	sim         *Simulator
	parallelism int
	limiter     *rate.Limiter
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithParallelism bounds the number of simulations in flight. Values below
// one fall back to the default of four.
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithRateLimit throttles run admission to runsPerSecond, smoothing load
// when a batch is large. Zero disables throttling.
func WithRateLimit(runsPerSecond float64) RunnerOption {
	return func(r *Runner) {
		if runsPerSecond > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(runsPerSecond), 1)
		}
	}
}

// NewRunner creates a Runner on top of sim.
func NewRunner(sim *Simulator, optFns ...RunnerOption) *Runner {
	r := &Runner{
		sim:         sim,
		parallelism: 4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(r)
		}
	}
	return r
}

// RunAll executes every request and returns the results in request order.
// Individual simulation failures are reported inside their Result and do
// not cancel the batch; RunAll itself fails only on context cancellation.
func (r *Runner) RunAll(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return err
				}
			}
			res, err := r.sim.Run(ctx, req)
			results[i] = res
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
