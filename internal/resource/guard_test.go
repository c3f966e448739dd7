package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plentyOfMemory() (uint64, error) {
	return 1 << 60, nil
}

func TestEstimates(t *testing.T) {
	assert.Equal(t, int64(16), EstimateStateBytes(0))
	assert.Equal(t, int64(32), EstimateStateBytes(1))
	assert.Equal(t, int64(16<<10), EstimateStateBytes(10))

	// Density matrix squares the dimension.
	assert.Equal(t, int64(16<<20), EstimateDensityBytes(10))
}

func TestGuard_Admit(t *testing.T) {
	g := NewGuard(Config{AvailableMemory: plentyOfMemory})

	adm, err := g.Admit(10, false)
	require.NoError(t, err)
	assert.Equal(t, EstimateStateBytes(10), adm.Bytes)
	assert.False(t, adm.DisableNoise)
	assert.Equal(t, adm.Bytes, g.MemoryUsage())

	g.Release(adm)
	assert.Zero(t, g.MemoryUsage())
}

func TestGuard_AdmitWithNoise(t *testing.T) {
	g := NewGuard(Config{AvailableMemory: plentyOfMemory})

	adm, err := g.Admit(10, true)
	require.NoError(t, err)
	assert.Equal(t, EstimateStateBytes(10)+EstimateDensityBytes(10), adm.Bytes)

	g.Release(adm)
}

func TestGuard_NoiseCap(t *testing.T) {
	g := NewGuard(Config{AvailableMemory: plentyOfMemory})

	// Above the cap, noise is degraded, not rejected, and the density
	// matrix drops out of the estimate.
	adm, err := g.Admit(NoiseQubitCap+1, true)
	require.NoError(t, err)
	assert.True(t, adm.DisableNoise)
	assert.True(t, adm.Approximate)
	assert.Equal(t, EstimateStateBytes(NoiseQubitCap+1), adm.Bytes)

	g.Release(adm)
}

func TestGuard_NoiseAtCap(t *testing.T) {
	g := NewGuard(Config{AvailableMemory: plentyOfMemory})

	adm, err := g.Admit(NoiseQubitCap, true)
	require.NoError(t, err)
	assert.False(t, adm.DisableNoise)

	g.Release(adm)
}

func TestGuard_InsufficientMemory(t *testing.T) {
	g := NewGuard(Config{
		SafetyMarginBytes: 1 << 20,
		AvailableMemory: func() (uint64, error) {
			return 2 << 20, nil // 2MB available, 1MB margin
		},
	})

	// 20 qubits need 16MB.
	_, err := g.Admit(20, false)
	var memErr *ErrInsufficientMemory
	require.ErrorAs(t, err, &memErr)
	assert.Equal(t, EstimateStateBytes(20), memErr.RequiredBytes)
	assert.Equal(t, int64(1<<20), memErr.AvailableBytes)
	assert.Zero(t, g.MemoryUsage())
}

func TestGuard_SharedBudget(t *testing.T) {
	limit := EstimateStateBytes(10) + EstimateStateBytes(9)
	g := NewGuard(Config{
		MemoryLimitBytes: limit,
		AvailableMemory:  plentyOfMemory,
	})

	a, err := g.Admit(10, false)
	require.NoError(t, err)
	b, err := g.Admit(9, false)
	require.NoError(t, err)

	// Budget exhausted.
	_, err = g.Admit(9, false)
	var memErr *ErrInsufficientMemory
	require.ErrorAs(t, err, &memErr)

	// Releasing one admission frees its share.
	g.Release(b)
	c, err := g.Admit(9, false)
	require.NoError(t, err)

	g.Release(a)
	g.Release(c)
	assert.Zero(t, g.MemoryUsage())
}

func TestGuard_ReleaseIdempotent(t *testing.T) {
	g := NewGuard(Config{AvailableMemory: plentyOfMemory})

	adm, err := g.Admit(5, false)
	require.NoError(t, err)

	g.Release(adm)
	g.Release(adm) // second release is a no-op
	g.Release(nil)
	assert.Zero(t, g.MemoryUsage())
}
