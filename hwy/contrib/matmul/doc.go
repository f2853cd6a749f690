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

// Package matmul provides the cache-blocked dense GEMM kernels measured by
// the benchmark.
//
// Both strategies accumulate C += A * B over a three-level loop nest tiled
// by row (Tiles.M), reduction (Tiles.K) and column (Tiles.N). Row tiles are
// the unit of parallel work, so each worker owns a disjoint set of C rows
// and no locking is needed.
//
// Example usage:
//
//	// C += A * B where A is MxK, B is KxN, C is MxN, all row-major
//	pool := workerpool.New(threads)
//	defer pool.Close()
//
//	gemm, fallback := matmul.Select(hwy.Vectorized)
//	gemm.Accumulate(pool, a, b, c, m, k, n, matmul.DefaultTiles())
//
// The summation order is row, then k-tile, then column-tile, then lane, so
// results differ from a naive i-j-k loop by floating-point reordering only.
package matmul
