// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sparse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/align"
	"github.com/ajroetker/kernelbench/hwy/contrib/matmul"
	"github.com/ajroetker/kernelbench/hwy/contrib/workerpool"
)

var allSpMM = []SpMM{ScalarSpMM(), VectorizedSpMM()}

// toColMajor converts a row-major k x n matrix to column-major.
func toColMajor(b []float32, k, n int) []float32 {
	out := make([]float32, len(b))
	for t := range k {
		for j := range n {
			out[j*k+t] = b[t*n+j]
		}
	}
	return out
}

func operandB(k, n int, layout Layout, seed uint64) []float32 {
	b := make([]float32, k*n)
	align.FillRandom(b, seed)
	if layout == ColMajor {
		return toColMajor(b, k, n)
	}
	return b
}

func TestSpMMEmptyRowIsZeroed(t *testing.T) {
	k, n := 5, 19
	// Row 1 has no entries.
	a, err := NewCSR(3, k, []int{0, 1, 1, 2}, []int32{2, 4}, []float32{1.5, -2})
	require.NoError(t, err)

	bRow := operandB(k, n, RowMajor, 23)
	pool := workerpool.New(2)
	defer pool.Close()
	for _, layout := range []Layout{RowMajor, ColMajor} {
		b := bRow
		if layout == ColMajor {
			b = toColMajor(bRow, k, n)
		}
		for _, s := range allSpMM {
			for _, p := range []*workerpool.Pool{nil, pool} {
				c := make([]float32, 3*n)
				for i := range c {
					c[i] = 99
				}
				s.Multiply(p, a, b, layout, c, n, 8)

				assert.Equal(t, make([]float32, n), c[n:2*n],
					"%s/%s: empty row must be all zeros", s.Variant(), layout)
				for j := range n {
					assert.Equal(t, 1.5*bRow[2*n+j], c[j], "%s/%s row 0 col %d", s.Variant(), layout, j)
					assert.Equal(t, -2*bRow[4*n+j], c[2*n+j], "%s/%s row 2 col %d", s.Variant(), layout, j)
				}
			}
		}
	}
}

func TestSpMMIdentityLike(t *testing.T) {
	m, k, n := 6, 9, 21
	// One non-zero per row at a scattered column.
	rowPtr := make([]int, m+1)
	colIdx := make([]int32, m)
	values := make([]float32, m)
	for i := range m {
		rowPtr[i+1] = i + 1
		colIdx[i] = int32((i * 4) % k)
		values[i] = float32(i) - 2.5
	}
	a, err := NewCSR(m, k, rowPtr, colIdx, values)
	require.NoError(t, err)

	bRow := operandB(k, n, RowMajor, 17)
	for _, layout := range []Layout{RowMajor, ColMajor} {
		b := bRow
		if layout == ColMajor {
			b = toColMajor(bRow, k, n)
		}
		for _, s := range allSpMM {
			t.Run(fmt.Sprintf("%s/%s", s.Variant(), layout), func(t *testing.T) {
				c := make([]float32, m*n)
				s.Multiply(nil, a, b, layout, c, n, 8)
				for i := range m {
					col := int(colIdx[i])
					for j := range n {
						want := values[i] * bRow[col*n+j]
						require.Equal(t, want, c[i*n+j], "c[%d,%d]", i, j)
					}
				}
			})
		}
	}
}

func TestSpMMMatchesDenseReference(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	testCases := []struct {
		m, k, n int
		density float64
		pattern Pattern
		jblock  int
	}{
		{17, 33, 40, 0.1, Uniform, 16},
		{64, 64, 64, 0.05, Banded, 128},
		{40, 80, 13, 0.2, BlockDiagonal, 0},
		{5, 7, 100, 0.5, Uniform, 7},
	}
	for _, tc := range testCases {
		a, err := Build(tc.m, tc.k, tc.density, tc.pattern, 31)
		require.NoError(t, err)

		bRow := operandB(tc.k, tc.n, RowMajor, 32)
		want := make([]float32, tc.m*tc.n)
		matmul.Reference(a.Dense(), bRow, want, tc.m, tc.k, tc.n)

		for _, layout := range []Layout{RowMajor, ColMajor} {
			b := bRow
			if layout == ColMajor {
				b = toColMajor(bRow, tc.k, tc.n)
			}
			for _, s := range allSpMM {
				name := fmt.Sprintf("%s/%dx%dx%d/%s/%s", tc.pattern, tc.m, tc.k, tc.n, s.Variant(), layout)
				t.Run(name, func(t *testing.T) {
					c := make([]float32, tc.m*tc.n)
					s.Multiply(pool, a, b, layout, c, tc.n, tc.jblock)
					for i := range c {
						if !scalar.EqualWithinAbsOrRel(float64(c[i]), float64(want[i]), 1e-5, 1e-4) {
							t.Fatalf("c[%d] = %v, want %v", i, c[i], want[i])
						}
					}
				})
			}
		}
	}
}

func TestSpMMOverwritesOutput(t *testing.T) {
	m, k, n := 8, 8, 12
	a, err := Build(m, k, 0.25, Uniform, 2)
	require.NoError(t, err)
	b := operandB(k, n, RowMajor, 3)

	clean := make([]float32, m*n)
	VectorizedSpMM().Multiply(nil, a, b, RowMajor, clean, n, 4)

	dirty := make([]float32, m*n)
	align.FillRandom(dirty, 99)
	VectorizedSpMM().Multiply(nil, a, b, RowMajor, dirty, n, 4)
	assert.Equal(t, clean, dirty)
}

func TestSpMMFallbackReported(t *testing.T) {
	a, err := Build(4, 4, 0.5, Banded, 1)
	require.NoError(t, err)
	b := operandB(4, 4, RowMajor, 1)
	c := make([]float32, 16)

	exec := VectorizedSpMM().Multiply(nil, a, b, RowMajor, c, 4, 0)
	assert.Equal(t, Execution{Variant: hwy.Vectorized, Layout: RowMajor}, exec)

	exec = VectorizedSpMM().Multiply(nil, a, b, ColMajor, c, 4, 0)
	assert.Equal(t, Execution{Variant: hwy.Scalar, Layout: ColMajor, Fallback: true}, exec)

	exec = ScalarSpMM().Multiply(nil, a, b, ColMajor, c, 4, 0)
	assert.Equal(t, Execution{Variant: hwy.Scalar, Layout: ColMajor}, exec)
}

func TestSpMMThreadCountDoesNotChangeResult(t *testing.T) {
	m, k, n := 50, 60, 33
	a, err := Build(m, k, 0.1, Uniform, 8)
	require.NoError(t, err)
	b := operandB(k, n, RowMajor, 9)

	serial := make([]float32, m*n)
	VectorizedSpMM().Multiply(nil, a, b, RowMajor, serial, n, 16)
	for _, threads := range []int{1, 2, 5} {
		pool := workerpool.New(threads)
		c := make([]float32, m*n)
		VectorizedSpMM().Multiply(pool, a, b, RowMajor, c, n, 16)
		pool.Close()
		require.Equal(t, serial, c, "threads=%d", threads)
	}
}

func TestSpMMPanicsOnShortSlices(t *testing.T) {
	a, err := Build(2, 2, 1, Uniform, 1)
	require.NoError(t, err)
	assert.PanicsWithValue(t, "sparse: B slice too short", func() {
		ScalarSpMM().Multiply(nil, a, make([]float32, 3), RowMajor, make([]float32, 4), 2, 0)
	})
	assert.PanicsWithValue(t, "sparse: C slice too short", func() {
		ScalarSpMM().Multiply(nil, a, make([]float32, 4), RowMajor, make([]float32, 3), 2, 0)
	})
}

func TestSelectSpMM(t *testing.T) {
	s, fallback := SelectSpMM(hwy.Vectorized)
	assert.Equal(t, hwy.BestVariant(), s.Variant())
	assert.Equal(t, !hwy.HasVectorUnit(), fallback)

	s, fallback = SelectSpMM(hwy.Scalar)
	assert.Equal(t, hwy.Scalar, s.Variant())
	assert.False(t, fallback)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("row")
	require.NoError(t, err)
	assert.Equal(t, RowMajor, l)

	l, err = ParseLayout("COL")
	require.NoError(t, err)
	assert.Equal(t, ColMajor, l)
	assert.Equal(t, "col", l.String())

	_, err = ParseLayout("diag")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func BenchmarkSpMM(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	m, k, n := 1024, 1024, 256
	a, err := Build(m, k, 0.02, Uniform, 1)
	require.NoError(b, err)
	c := make([]float32, m*n)
	for _, layout := range []Layout{RowMajor, ColMajor} {
		bm := operandB(k, n, layout, 2)
		for _, s := range allSpMM {
			b.Run(fmt.Sprintf("%s/%s", s.Variant(), layout), func(b *testing.B) {
				for b.Loop() {
					s.Multiply(pool, a, bm, layout, c, n, 128)
				}
				flops := 2 * float64(a.NNZ()) * float64(n)
				b.ReportMetric(flops*float64(b.N)/b.Elapsed().Seconds()/1e9, "GFLOPS")
			})
		}
	}
}
