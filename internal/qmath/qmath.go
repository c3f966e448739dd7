package qmath

import (
	"math"
	"math/cmplx"
)

// Matrix is a small dense complex matrix in row-major nested form.
type Matrix [][]complex128

// New creates a zero matrix with the given number of rows and columns.
func New(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]complex128, cols)
	}
	return m
}

// Identity creates an n x n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

// Mul returns the matrix product a*b.
func Mul(a, b Matrix) Matrix {
	rows, inner, cols := len(a), len(b), len(b[0])
	out := New(rows, cols)
	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			if a[i][k] == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose of m.
func Dagger(m Matrix) Matrix {
	rows, cols := len(m), len(m[0])
	out := New(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return out
}

// Kron returns the Kronecker product a ⊗ b.
//
// Only used for small matrices in tests and channel construction; the
// state-vector engine applies gates by bit indexing and never calls this.
func Kron(a, b Matrix) Matrix {
	ar, ac := len(a), len(a[0])
	br, bc := len(b), len(b[0])
	out := New(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if a[i][j] == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out[i*br+k][j*bc+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

// IsUnitary reports whether m*mᴴ is the identity within tol.
func IsUnitary(m Matrix, tol float64) bool {
	if len(m) == 0 || len(m) != len(m[0]) {
		return false
	}
	prod := Mul(m, Dagger(m))
	for i := range prod {
		for j := range prod[i] {
			want := complex(0, 0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod[i][j]-want) > tol {
				return false
			}
		}
	}
	return true
}

// ApproxEqual reports whether a and b agree element-wise within tol.
func ApproxEqual(a, b Matrix, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if cmplx.Abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Norm returns the Euclidean norm of a complex vector.
func Norm(v []complex128) float64 {
	var sum float64
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}
