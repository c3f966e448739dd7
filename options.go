package qsim

import "log/slog"

type options struct {
	memoryLimitBytes  int64
	safetyMarginBytes int64
	seed              *int64
	metricsCollector  MetricsCollector
	logger            *Logger
}

// Option configures Simulator constructor behavior.
type Option func(*options)

// WithMemoryLimit caps the total bytes the simulator may reserve for state
// vectors and density matrices across concurrent runs. Zero or negative
// keeps the default limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimitBytes = bytes
	}
}

// WithSafetyMargin sets the headroom subtracted from available system
// memory during pre-flight admission. Zero or negative keeps the default
// 512 MB margin.
func WithSafetyMargin(bytes int64) Option {
	return func(o *options) {
		o.safetyMarginBytes = bytes
	}
}

// WithSeed fixes the random source so measurement collapse and readout
// flips are reproducible. Runs without a seed draw from the wall clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
//
// Example with BasicMetricsCollector:
//
//	metrics := &qsim.BasicMetricsCollector{}
//	sim := qsim.New(qsim.WithMetricsCollector(metrics))
//	// ... run circuits ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithLogger configures structured logging for runs.
//
// Example with JSON logging:
//
//	logger := qsim.NewJSONLogger(slog.LevelInfo)
//	sim := qsim.New(qsim.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
