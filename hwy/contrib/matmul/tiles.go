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

import "fmt"

// Tiles defines the cache-blocking sizes of the GEMM loop nest.
//
// Tile sizes are benchmark parameters, supplied by the caller and never
// tuned here:
//   - M: rows of A and C per block, and the unit of parallel work
//   - K: reduction depth per block (A columns, B rows)
//   - N: columns of B and C per block
//
// With the defaults, one A block (64x64), one B block (64x128) and one C
// block (64x128) take 16KB + 32KB + 32KB.
type Tiles struct {
	M int
	K int
	N int
}

// DefaultTiles returns the blocking used when the caller supplies none.
func DefaultTiles() Tiles {
	return Tiles{M: 64, K: 64, N: 128}
}

// Normalize replaces each non-positive tile size with the full extent of
// its dimension, so an unset tile means "no blocking along this axis".
func (t Tiles) Normalize(m, k, n int) Tiles {
	if t.M <= 0 {
		t.M = max(m, 1)
	}
	if t.K <= 0 {
		t.K = max(k, 1)
	}
	if t.N <= 0 {
		t.N = max(n, 1)
	}
	return t
}

// NumRowTiles returns the number of row blocks for m rows.
func (t Tiles) NumRowTiles(m int) int {
	if t.M <= 0 {
		return 1
	}
	return (m + t.M - 1) / t.M
}

// String returns "MxKxN".
func (t Tiles) String() string {
	return fmt.Sprintf("%dx%dx%d", t.M, t.K, t.N)
}
