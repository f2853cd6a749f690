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
	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/workerpool"
)

// Execution describes the path a Multiply call actually took.
type Execution struct {
	// Variant is the inner loop that ran.
	Variant hwy.Variant
	// Layout is the B layout the call was given.
	Layout Layout
	// Fallback is true when a vectorized strategy ran the scalar gather
	// because B was column-major.
	Fallback bool
}

// SpMM is a sparse-dense matrix multiply strategy.
type SpMM interface {
	// Variant reports the inner loop this strategy prefers.
	Variant() hwy.Variant

	// Multiply computes C = A * B.
	//
	//   - A is an m x k CSR matrix
	//   - B is k x n, stored per layout
	//   - C is m x n (row-major) and is overwritten
	//
	// Columns of each output row are processed jblock at a time; jblock <= 0
	// means n. Rows are partitioned statically over pool; a nil pool runs on
	// the caller's goroutine.
	Multiply(pool *workerpool.Pool, a *CSR, b []float32, layout Layout, c []float32, n, jblock int) Execution
}

// accumulateFunc adds val * B[col, j0:j1] into dst (len j1-j0).
type accumulateFunc func(val float32, b []float32, col, j0, k, n int, dst []float32)

func rowMajorScalar(val float32, b []float32, col, j0, k, n int, dst []float32) {
	hwy.AXPYScalar(val, b[col*n+j0:], dst)
}

func rowMajorVector(val float32, b []float32, col, j0, k, n int, dst []float32) {
	hwy.AXPY(val, b[col*n+j0:], dst)
}

// colMajorGather reads B[col, j] from column j; consecutive j are k apart,
// so there is nothing contiguous to load into a vector.
func colMajorGather(val float32, b []float32, col, j0, k, n int, dst []float32) {
	for j := range dst {
		dst[j] += val * b[(j0+j)*k+col]
	}
}

type spmm struct {
	variant hwy.Variant
	rowMaj  accumulateFunc
}

func (s spmm) Variant() hwy.Variant { return s.variant }

func (s spmm) Multiply(pool *workerpool.Pool, a *CSR, b []float32, layout Layout, c []float32, n, jblock int) Execution {
	m, k := a.Rows, a.Cols
	if len(b) < k*n {
		panic("sparse: B slice too short")
	}
	if len(c) < m*n {
		panic("sparse: C slice too short")
	}

	exec := Execution{Variant: s.variant, Layout: layout}
	acc := s.rowMaj
	if layout == ColMajor {
		acc = colMajorGather
		if s.variant == hwy.Vectorized {
			exec.Variant = hwy.Scalar
			exec.Fallback = true
		}
	}
	if jblock <= 0 || jblock > n {
		jblock = n
	}
	if m <= 0 || n <= 0 {
		return exec
	}

	pool.ParallelFor(m, func(rowStart, rowEnd int) {
		for i := rowStart; i < rowEnd; i++ {
			cRow := c[i*n : (i+1)*n]
			clear(cRow)
			cols, vals := a.Row(i)
			for j0 := 0; j0 < n; j0 += jblock {
				dst := cRow[j0:min(j0+jblock, n)]
				for p, col := range cols {
					acc(vals[p], b, int(col), j0, k, n, dst)
				}
			}
		}
	})
	return exec
}

var (
	scalarSpMM     SpMM = spmm{variant: hwy.Scalar, rowMaj: rowMajorScalar}
	vectorizedSpMM SpMM = spmm{variant: hwy.Vectorized, rowMaj: rowMajorVector}
)

// ScalarSpMM returns the strategy with one multiply-add per output column.
func ScalarSpMM() SpMM { return scalarSpMM }

// VectorizedSpMM returns the strategy updating output runs with hwy.AXPY
// over row-major B. Column-major B runs the scalar gather and is reported as a
// fallback in the returned Execution.
func VectorizedSpMM() SpMM { return vectorizedSpMM }

// SelectSpMM returns the strategy for the requested variant on this host,
// with fallback=true when vectors were requested but are unavailable.
func SelectSpMM(requested hwy.Variant) (s SpMM, fallback bool) {
	actual, fallback := hwy.Resolve(requested)
	if actual == hwy.Vectorized {
		return vectorizedSpMM, fallback
	}
	return scalarSpMM, fallback
}
