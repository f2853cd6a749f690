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
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

type entry struct {
	col int32
	val float32
}

// rowFinalizer is the single step every generator feeds its rows through.
// Rows must be added in order 0..m-1. For each raw row it drops repeated
// columns (first occurrence wins), sorts by column, gives an empty row one
// synthetic entry and appends the result to the CSR arrays.
//
// Build's generators sample without replacement, so the rows they pass in
// are already distinct and only the sort and empty-row steps change them.
// Drawing with replacement would not reach density 1 (a 4x4 uniform build
// at density 1 must be fully dense). The dedup step keeps the output
// invariant for any raw row, including repeated columns.
type rowFinalizer struct {
	out     *CSR
	rng     *rand.Rand
	seen    *bitset.BitSet
	scratch []entry
}

func newRowFinalizer(m, k, nnzHint int, rng *rand.Rand) *rowFinalizer {
	rowPtr := make([]int, 1, m+1)
	return &rowFinalizer{
		out: &CSR{
			Rows:   m,
			Cols:   k,
			RowPtr: rowPtr,
			ColIdx: make([]int32, 0, nnzHint),
			Values: make([]float32, 0, nnzHint),
		},
		rng:  rng,
		seen: bitset.New(uint(k)),
	}
}

// addRow finalizes one raw row. cols and vals must have equal length; they
// are not retained.
func (f *rowFinalizer) addRow(cols []int32, vals []float32) {
	f.scratch = f.scratch[:0]
	for p, c := range cols {
		if f.seen.Test(uint(c)) {
			continue
		}
		f.seen.Set(uint(c))
		f.scratch = append(f.scratch, entry{col: c, val: vals[p]})
	}
	for _, e := range f.scratch {
		f.seen.Clear(uint(e.col))
	}

	if len(f.scratch) == 0 {
		f.scratch = append(f.scratch, entry{
			col: int32(f.rng.IntN(f.out.Cols)),
			val: randomValue(f.rng),
		})
	}

	slices.SortFunc(f.scratch, func(a, b entry) int {
		return cmp.Compare(a.col, b.col)
	})
	for _, e := range f.scratch {
		f.out.ColIdx = append(f.out.ColIdx, e.col)
		f.out.Values = append(f.out.Values, e.val)
	}
	f.out.RowPtr = append(f.out.RowPtr, len(f.out.ColIdx))
}

// finish returns the assembled matrix.
func (f *rowFinalizer) finish() *CSR {
	return f.out
}

func randomValue(r *rand.Rand) float32 {
	return r.Float32()*2 - 1
}
