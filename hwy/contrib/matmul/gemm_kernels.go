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

import "github.com/ajroetker/kernelbench/hwy"

// rowTileScalar accumulates rows [i0, i1) of C over all k- and column-tiles.
// For each (i, t) it broadcasts A[i,t] and updates a tile-width run of C.
func rowTileScalar(a, b, c []float32, i0, i1, k, n int, tiles Tiles) {
	for kk := 0; kk < k; kk += tiles.K {
		kEnd := min(kk+tiles.K, k)
		for jj := 0; jj < n; jj += tiles.N {
			jEnd := min(jj+tiles.N, n)
			for i := i0; i < i1; i++ {
				cRow := c[i*n+jj : i*n+jEnd]
				for t := kk; t < kEnd; t++ {
					ait := a[i*k+t]
					bRow := b[t*n+jj : t*n+jEnd]
					for j := range cRow {
						cRow[j] += ait * bRow[j]
					}
				}
			}
		}
	}
}

// rowTileVectorized is rowTileScalar with each tile-width run of C updated
// by hwy.AXPY, which uses Float32x8 fused multiply-adds when vector kernels
// are compiled in.
func rowTileVectorized(a, b, c []float32, i0, i1, k, n int, tiles Tiles) {
	for kk := 0; kk < k; kk += tiles.K {
		kEnd := min(kk+tiles.K, k)
		for jj := 0; jj < n; jj += tiles.N {
			jEnd := min(jj+tiles.N, n)
			for i := i0; i < i1; i++ {
				cRow := c[i*n+jj : i*n+jEnd]
				for t := kk; t < kEnd; t++ {
					hwy.AXPY(a[i*k+t], b[t*n+jj:t*n+jEnd], cRow)
				}
			}
		}
	}
}
