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

package matmul

import (
	"sync"

	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/workerpool"
)

// GEMM is a tiled dense matrix multiply strategy.
type GEMM interface {
	// Variant reports which inner loop this strategy runs.
	Variant() hwy.Variant

	// Accumulate computes C += A * B.
	//
	//   - A is M x K (row-major)
	//   - B is K x N (row-major)
	//   - C is M x N (row-major), not cleared
	//
	// Row tiles are distributed over pool with static partitioning; a nil
	// pool runs on the caller's goroutine.
	Accumulate(pool *workerpool.Pool, a, b, c []float32, m, k, n int, tiles Tiles)
}

// rowTileKernel processes rows [i0, i1) of C for every k- and column-tile.
type rowTileKernel func(a, b, c []float32, i0, i1, k, n int, tiles Tiles)

type gemm struct {
	variant hwy.Variant
	kernel  rowTileKernel
}

func (g gemm) Variant() hwy.Variant { return g.variant }

func (g gemm) Accumulate(pool *workerpool.Pool, a, b, c []float32, m, k, n int, tiles Tiles) {
	checkDims(a, b, c, m, k, n)
	if m <= 0 || k <= 0 || n <= 0 {
		return
	}
	tiles = tiles.Normalize(m, k, n)

	// Each worker receives a contiguous run of whole row tiles.
	pool.ParallelForBlocks(m, tiles.M, func(rowStart, rowEnd int) {
		for ii := rowStart; ii < rowEnd; ii += tiles.M {
			g.kernel(a, b, c, ii, min(ii+tiles.M, rowEnd), k, n, tiles)
		}
	})
}

var (
	scalarGEMM     GEMM = gemm{variant: hwy.Scalar, kernel: rowTileScalar}
	vectorizedGEMM GEMM = gemm{variant: hwy.Vectorized, kernel: rowTileVectorized}
)

// Scalar returns the strategy with one multiply-add per column.
func Scalar() GEMM { return scalarGEMM }

// Vectorized returns the strategy built on hwy.AXPY: Float32x8 fused
// multiply-adds and a scalar tail where vector kernels are compiled in, the
// scalar loop elsewhere. It runs on any host; Select decides whether it
// should.
func Vectorized() GEMM { return vectorizedGEMM }

// ForVariant returns the strategy implementing v without consulting the
// detected capability.
func ForVariant(v hwy.Variant) GEMM {
	if v == hwy.Vectorized {
		return vectorizedGEMM
	}
	return scalarGEMM
}

// Select returns the strategy for the requested variant on this host.
// When vectors are requested but the host is scalar-only (or HWY_NO_SIMD is
// set), it returns the scalar strategy and fallback=true.
func Select(requested hwy.Variant) (g GEMM, fallback bool) {
	actual, fallback := hwy.Resolve(requested)
	return ForVariant(actual), fallback
}

// Best returns the strategy chosen once per process from the detected
// capability.
var Best = sync.OnceValue(func() GEMM {
	return ForVariant(hwy.BestVariant())
})
