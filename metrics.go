package qsim

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter   prometheus.Counter
//	    runHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(qubits, gates int, duration time.Duration, err error) {
//	    p.runCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRun is called after each simulation run.
	// duration is the wall-clock time taken, err is nil if successful.
	RecordRun(qubits, gates int, duration time.Duration, err error)

	// RecordMeasurement is called for each qubit measurement performed.
	RecordMeasurement(qubit, outcome int)

	// RecordNoiseDegrade is called when noise is force-disabled because
	// the circuit exceeds the noise qubit cap.
	RecordNoiseDegrade(qubits int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordMeasurement(int, int)               {}
func (NoopMetricsCollector) RecordNoiseDegrade(int)                   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
	RunTotalNanos    atomic.Int64
	GatesApplied     atomic.Int64
	MeasurementCount atomic.Int64
	OnesMeasured     atomic.Int64
	NoiseDegrades    atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(qubits, gates int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	b.GatesApplied.Add(int64(gates))
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordMeasurement implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMeasurement(qubit, outcome int) {
	b.MeasurementCount.Add(1)
	if outcome == 1 {
		b.OnesMeasured.Add(1)
	}
}

// RecordNoiseDegrade implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNoiseDegrade(qubits int) {
	b.NoiseDegrades.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
		RunAvgNanos:      b.getAvgRunNanos(),
		GatesApplied:     b.GatesApplied.Load(),
		MeasurementCount: b.MeasurementCount.Load(),
		OnesMeasured:     b.OnesMeasured.Load(),
		NoiseDegrades:    b.NoiseDegrades.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount         int64
	RunErrors        int64
	RunAvgNanos      int64
	GatesApplied     int64
	MeasurementCount int64
	OnesMeasured     int64
	NoiseDegrades    int64
}
