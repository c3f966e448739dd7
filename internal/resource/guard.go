package resource

import (
	"fmt"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/semaphore"
)

const (
	// BytesPerAmplitude is the size of one complex128 amplitude.
	BytesPerAmplitude = 16

	// DefaultSafetyMarginBytes is kept free beyond the estimated need.
	DefaultSafetyMarginBytes = 512 << 20 // 512MB

	// NoiseQubitCap is the register size above which density-matrix noise
	// injection is force-disabled: channel application is O(4^n) and
	// becomes intractable past this point.
	NoiseQubitCap = 14
)

// ErrInsufficientMemory is returned when the pre-flight estimate does not
// fit into available memory (minus the safety margin) or into the
// configured shared budget.
type ErrInsufficientMemory struct {
	RequiredBytes  int64
	AvailableBytes int64
}

func (e *ErrInsufficientMemory) Error() string {
	return fmt.Sprintf("insufficient memory: simulation needs %d bytes, %d available after safety margin",
		e.RequiredBytes, e.AvailableBytes)
}

// EstimateStateBytes returns the memory needed for an n-qubit state vector.
func EstimateStateBytes(numQubits int) int64 {
	return int64(BytesPerAmplitude) << numQubits
}

// EstimateDensityBytes returns the memory needed for an n-qubit density
// matrix (2^n x 2^n amplitudes).
func EstimateDensityBytes(numQubits int) int64 {
	return int64(BytesPerAmplitude) << (2 * numQubits)
}

// Config holds guard settings.
type Config struct {
	// MemoryLimitBytes is an optional hard budget shared by all concurrent
	// simulations admitted through this guard. If 0, only the system
	// available-memory check applies.
	MemoryLimitBytes int64

	// SafetyMarginBytes is subtracted from available system memory before
	// admission. If 0, DefaultSafetyMarginBytes is used.
	SafetyMarginBytes int64

	// AvailableMemory overrides the system memory probe. If nil, the guard
	// reads available memory from the OS.
	AvailableMemory func() (uint64, error)
}

// Guard performs pre-flight admission for simulations.
type Guard struct {
	cfg     Config
	memSem  *semaphore.Weighted // nil if no hard budget
	memUsed atomic.Int64
}

// NewGuard creates a guard from the given config.
func NewGuard(cfg Config) *Guard {
	if cfg.SafetyMarginBytes <= 0 {
		cfg.SafetyMarginBytes = DefaultSafetyMarginBytes
	}
	if cfg.AvailableMemory == nil {
		cfg.AvailableMemory = systemAvailableMemory
	}
	g := &Guard{cfg: cfg}
	if cfg.MemoryLimitBytes > 0 {
		g.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	return g
}

func systemAvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// Admission records what a simulation was granted. Pass it back to Release
// when the simulation ends.
type Admission struct {
	// Bytes is the reserved estimate.
	Bytes int64

	// DisableNoise is set when noise was requested but the register is
	// above NoiseQubitCap.
	DisableNoise bool

	// Approximate is set whenever a requested feature was degraded.
	Approximate bool
}

// Admit checks whether an n-qubit simulation fits into memory and degrades
// requested features where needed. It must be called before any state
// allocation; on error nothing is reserved.
//
// The two guards are independent: the memory check protects the state
// vector (and density matrix, when noise survives), while the qubit cap
// force-disables noise regardless of how much memory the host has.
func (g *Guard) Admit(numQubits int, noiseRequested bool) (*Admission, error) {
	adm := &Admission{}
	if noiseRequested && numQubits > NoiseQubitCap {
		adm.DisableNoise = true
		adm.Approximate = true
		noiseRequested = false
	}

	required := EstimateStateBytes(numQubits)
	if noiseRequested {
		required += EstimateDensityBytes(numQubits)
	}

	avail, err := g.cfg.AvailableMemory()
	if err == nil {
		budget := int64(avail) - g.cfg.SafetyMarginBytes
		if required > budget {
			if budget < 0 {
				budget = 0
			}
			return nil, &ErrInsufficientMemory{RequiredBytes: required, AvailableBytes: budget}
		}
	}

	if g.memSem != nil {
		if !g.memSem.TryAcquire(required) {
			return nil, &ErrInsufficientMemory{
				RequiredBytes:  required,
				AvailableBytes: g.cfg.MemoryLimitBytes - g.memUsed.Load(),
			}
		}
	}
	g.memUsed.Add(required)
	adm.Bytes = required
	return adm, nil
}

// Release returns an admission's reservation to the budget.
func (g *Guard) Release(adm *Admission) {
	if g == nil || adm == nil || adm.Bytes <= 0 {
		return
	}
	if g.memSem != nil {
		g.memSem.Release(adm.Bytes)
	}
	g.memUsed.Add(-adm.Bytes)
	adm.Bytes = 0
}

// MemoryUsage returns the bytes currently reserved through this guard.
func (g *Guard) MemoryUsage() int64 {
	return g.memUsed.Load()
}
