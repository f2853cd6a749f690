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
	"math/rand/v2"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/ajroetker/kernelbench/hwy/contrib/align"
)

// Build synthesizes an m x k CSR matrix with roughly density*m*k non-zeros
// placed according to p. Values are uniform in [-1, 1). The same arguments
// always produce the same matrix.
//
// m and k must be positive. A density <= 0 still yields one entry per row;
// a density >= 1 fills every eligible cell. The only error is an
// unrecognized pattern (ErrUnknownPattern).
func Build(m, k int, density float64, p Pattern, seed uint64) (*CSR, error) {
	if m <= 0 || k <= 0 {
		panic(fmt.Sprintf("sparse: invalid shape %dx%d", m, k))
	}
	rng := align.NewRand(seed)
	switch p {
	case Uniform:
		return buildUniform(m, k, density, rng), nil
	case Banded:
		return buildWindowed(m, k, density, rng, func(i int) (int, int) {
			return bandWindow(i, m, k, density)
		}), nil
	case BlockDiagonal:
		return buildWindowed(m, k, density, rng, func(i int) (int, int) {
			return blockWindow(i, m, k)
		}), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownPattern, p)
	}
}

// BuildNamed is Build with the pattern given by name (see ParsePattern).
func BuildNamed(m, k int, density float64, pattern string, seed uint64) (*CSR, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return Build(m, k, density, p, seed)
}

// buildUniform samples distinct (row, column) cells over the whole matrix.
// Cells are tracked in a roaring bitmap keyed i*k+j, which stays small at
// low density where a flat bitset of m*k bits would not. When more than half
// the matrix is wanted the complement is sampled instead, so density 1 gives
// a fully dense matrix without a long rejection tail.
func buildUniform(m, k int, density float64, rng *rand.Rand) *CSR {
	total := m * k
	target := uniformTarget(m, k, density)

	cells := roaring64.New()
	invert := target > total/2
	draws := target
	if invert {
		draws = total - target
	}
	for placed := 0; placed < draws; {
		if cells.CheckedAdd(uint64(rng.IntN(total))) {
			placed++
		}
	}

	f := newRowFinalizer(m, k, target, rng)
	cols := make([]int32, 0, k)
	vals := make([]float32, 0, k)
	it := cells.Iterator()
	for i := range m {
		cols, vals = cols[:0], vals[:0]
		base := uint64(i * k)
		end := base + uint64(k)
		if invert {
			for j := range k {
				if it.HasNext() && it.PeekNext() == base+uint64(j) {
					it.Next()
					continue
				}
				cols = append(cols, int32(j))
				vals = append(vals, randomValue(rng))
			}
		} else {
			for it.HasNext() && it.PeekNext() < end {
				cols = append(cols, int32(it.Next()-base))
				vals = append(vals, randomValue(rng))
			}
		}
		f.addRow(cols, vals)
	}
	return f.finish()
}

// buildWindowed draws, for each row, distinct columns uniformly from the
// inclusive range window(i) returns. The per-row count is
// clamp(round(density*k), 1, span).
func buildWindowed(m, k int, density float64, rng *rand.Rand, window func(i int) (lo, hi int)) *CSR {
	f := newRowFinalizer(m, k, m*windowTarget(k, k, density), rng)
	picked := bitset.New(uint(k))
	cols := make([]int32, 0, k)
	vals := make([]float32, 0, k)
	for i := range m {
		lo, hi := window(i)
		span := hi - lo + 1
		sampleDistinct(rng, picked, span, windowTarget(span, k, density))

		cols, vals = cols[:0], vals[:0]
		for j, ok := picked.NextSet(0); ok; j, ok = picked.NextSet(j + 1) {
			cols = append(cols, int32(lo+int(j)))
			vals = append(vals, randomValue(rng))
		}
		picked.ClearAll()
		f.addRow(cols, vals)
	}
	return f.finish()
}

// sampleDistinct sets exactly count distinct bits of set in [0, span)
// using Floyd's algorithm. set must be clear on entry.
func sampleDistinct(rng *rand.Rand, set *bitset.BitSet, span, count int) {
	for j := span - count; j < span; j++ {
		r := uint(rng.IntN(j + 1))
		if set.Test(r) {
			set.Set(uint(j))
		} else {
			set.Set(r)
		}
	}
}
