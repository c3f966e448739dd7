package qsim

import (
	"context"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Logger wraps slog.Logger with qsim-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTintLogger creates a Logger with colorized, human-friendly output.
// Intended for interactive development sessions.
func NewTintLogger(level slog.Level) *Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithQubits adds a qubit-count field to the logger.
func (l *Logger) WithQubits(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("qubits", n),
	}
}

// WithGates adds a gate-count field to the logger.
func (l *Logger) WithGates(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("gates", count),
	}
}

// WithPreset adds a noise-preset field to the logger.
func (l *Logger) WithPreset(preset string) *Logger {
	return &Logger{
		Logger: l.Logger.With("preset", preset),
	}
}

// LogRun logs a completed simulation run.
func (l *Logger) LogRun(ctx context.Context, qubits, gates int, seconds float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "simulation failed",
			"qubits", qubits,
			"gates", gates,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "simulation completed",
			"qubits", qubits,
			"gates", gates,
			"wall_clock_seconds", seconds,
		)
	}
}

// LogMeasurement logs a single-qubit measurement.
func (l *Logger) LogMeasurement(ctx context.Context, qubit, outcome int, probability float64) {
	l.DebugContext(ctx, "qubit measured",
		"qubit", qubit,
		"outcome", outcome,
		"probability", probability,
	)
}

// LogNoiseDegrade logs a forced noise disable for oversized circuits.
func (l *Logger) LogNoiseDegrade(ctx context.Context, qubits, cap int) {
	l.WarnContext(ctx, "noise disabled for large circuit",
		"qubits", qubits,
		"noise_qubit_cap", cap,
	)
}

// LogAdmission logs a memory admission decision.
func (l *Logger) LogAdmission(ctx context.Context, qubits int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "admission rejected",
			"qubits", qubits,
			"required_bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "admission granted",
			"qubits", qubits,
			"reserved_bytes", bytes,
		)
	}
}
