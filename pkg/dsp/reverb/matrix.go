package reverb

import (
	"math"
	"math/rand"
)

// matrixSeed is the fixed seed for the Householder vector generator. Two
// independently constructed engines must draw identical vectors from it so
// that their decay signatures are bit-identical (spec.md §8, P2) — this
// exact value is a cross-implementation contract, not a tunable.
const matrixSeed = 42

// Matrix is an N×N orthogonal Householder reflection matrix used as the
// FDN's feedback matrix: H = I - 2·v·vᵀ for a unit vector v. The
// orthogonal base is kept separate from the scalar gain applied on top of
// it, so that a decay-time change (which only moves the gain) never has to
// regenerate or re-derive the base matrix.
type Matrix struct {
	n    int
	base [][]float32
	gain float32
}

// NewMatrix builds the unscaled Householder matrix for size n, seeded
// deterministically so that repeated calls (and separate processes) with
// the same n produce bit-identical matrices. The initial gain is 1.0;
// callers apply the RT60-derived scale with SetGain.
func NewMatrix(n int) *Matrix {
	m := &Matrix{n: n, base: make([][]float32, n), gain: 1.0}
	for i := range m.base {
		m.base[i] = make([]float32, n)
	}
	m.regenerate()
	return m
}

func (m *Matrix) regenerate() {
	src := rand.New(rand.NewSource(matrixSeed))

	v := make([]float64, m.n)
	var normSq float64
	for i := range v {
		v[i] = src.NormFloat64()
		normSq += v[i] * v[i]
	}
	norm := 1.0
	if normSq > 0 {
		norm = 1.0 / math.Sqrt(normSq)
	}
	for i := range v {
		v[i] *= norm
	}

	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			delta := 0.0
			if i == j {
				delta = 1.0
			}
			m.base[i][j] = float32(delta - 2.0*v[i]*v[j])
		}
	}
}

// OrthogonalityError returns ‖H·Hᵀ - I‖_∞ of the unscaled base matrix, the
// maximum absolute entry of the residual. Used as the debug assertion in
// spec.md §4.4.2 step 4.
func (m *Matrix) OrthogonalityError() float64 {
	var maxAbs float64
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			var dot float64
			for k := 0; k < m.n; k++ {
				dot += float64(m.base[i][k]) * float64(m.base[j][k])
			}
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			residual := dot - expected
			if residual < 0 {
				residual = -residual
			}
			if residual > maxAbs {
				maxAbs = residual
			}
		}
	}
	return maxAbs
}

// SetGain sets the scalar g_matrix applied to every entry of the base
// matrix when Apply runs (spec.md §4.4.3).
func (m *Matrix) SetGain(g float32) {
	m.gain = g
}

// Apply computes out = (gain·H)·in. out and in must both have length n and
// must not alias.
func (m *Matrix) Apply(in, out []float32) {
	g := m.gain
	for i := 0; i < m.n; i++ {
		var sum float32
		row := m.base[i]
		for j := 0; j < m.n; j++ {
			sum += row[j] * in[j]
		}
		out[i] = sum * g
	}
}

// Size returns N.
func (m *Matrix) Size() int {
	return m.n
}
