package qmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	id := Identity(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.Equal(t, complex(1, 0), id[i][j])
			} else {
				assert.Equal(t, complex(0, 0), id[i][j])
			}
		}
	}
}

func TestMul(t *testing.T) {
	x := Matrix{
		{0, 1},
		{1, 0},
	}

	// X·X = I
	assert.True(t, ApproxEqual(Mul(x, x), Identity(2), 1e-12))

	// I·M = M
	assert.True(t, ApproxEqual(Mul(Identity(2), x), x, 1e-12))
}

func TestDagger(t *testing.T) {
	m := Matrix{
		{complex(1, 2), complex(3, -4)},
		{complex(0, 1), complex(5, 0)},
	}
	d := Dagger(m)

	assert.Equal(t, complex(1, -2), d[0][0])
	assert.Equal(t, complex(0, -1), d[0][1])
	assert.Equal(t, complex(3, 4), d[1][0])
	assert.Equal(t, complex(5, 0), d[1][1])
}

func TestKron(t *testing.T) {
	x := Matrix{
		{0, 1},
		{1, 0},
	}
	k := Kron(Identity(2), x)

	require.Len(t, k, 4)
	require.Len(t, k[0], 4)

	// I⊗X is block-diagonal with X blocks.
	assert.Equal(t, complex(1, 0), k[0][1])
	assert.Equal(t, complex(1, 0), k[1][0])
	assert.Equal(t, complex(1, 0), k[2][3])
	assert.Equal(t, complex(1, 0), k[3][2])
	assert.Equal(t, complex(0, 0), k[0][2])
}

func TestIsUnitary(t *testing.T) {
	inv := 1 / math.Sqrt2
	h := Matrix{
		{complex(inv, 0), complex(inv, 0)},
		{complex(inv, 0), complex(-inv, 0)},
	}
	assert.True(t, IsUnitary(h, 1e-12))

	notUnitary := Matrix{
		{1, 1},
		{0, 1},
	}
	assert.False(t, IsUnitary(notUnitary, 1e-12))
}

func TestNorm(t *testing.T) {
	v := []complex128{complex(3, 0), complex(0, 4)}
	assert.InDelta(t, 5.0, Norm(v), 1e-12)
}
