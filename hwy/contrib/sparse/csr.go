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
	"errors"
	"fmt"
)

// ErrInvalidCSR is returned by Validate and NewCSR for malformed matrices.
var ErrInvalidCSR = errors.New("sparse: invalid CSR matrix")

// CSR is an m x k matrix in compressed sparse row form.
//
// Row i holds the entries ColIdx[RowPtr[i]:RowPtr[i+1]] with matching
// Values. A CSR is immutable once built and may be shared read-only by any
// number of kernels.
type CSR struct {
	Rows   int
	Cols   int
	RowPtr []int
	ColIdx []int32
	Values []float32
}

// NewCSR wraps existing arrays, validating them first.
func NewCSR(rows, cols int, rowPtr []int, colIdx []int32, values []float32) (*CSR, error) {
	a := &CSR{Rows: rows, Cols: cols, RowPtr: rowPtr, ColIdx: colIdx, Values: values}
	if err := a.validate(false); err != nil {
		return nil, err
	}
	return a, nil
}

// NNZ returns the number of stored entries.
func (a *CSR) NNZ() int {
	return len(a.Values)
}

// Density returns NNZ / (Rows * Cols).
func (a *CSR) Density() float64 {
	if a.Rows == 0 || a.Cols == 0 {
		return 0
	}
	return float64(a.NNZ()) / (float64(a.Rows) * float64(a.Cols))
}

// Row returns the column indices and values of row i. The slices alias the
// matrix and must not be modified.
func (a *CSR) Row(i int) ([]int32, []float32) {
	p0, p1 := a.RowPtr[i], a.RowPtr[i+1]
	return a.ColIdx[p0:p1], a.Values[p0:p1]
}

// Dense expands the matrix into a row-major m x k slice.
func (a *CSR) Dense() []float32 {
	out := make([]float32, a.Rows*a.Cols)
	for i := range a.Rows {
		cols, vals := a.Row(i)
		for p, c := range cols {
			out[i*a.Cols+int(c)] = vals[p]
		}
	}
	return out
}

// Validate checks every structural invariant produced by Build, including
// that no row is empty.
func (a *CSR) Validate() error {
	return a.validate(true)
}

func (a *CSR) validate(requireNonEmpty bool) error {
	if a.Rows < 0 || a.Cols < 0 {
		return fmt.Errorf("%w: negative shape %dx%d", ErrInvalidCSR, a.Rows, a.Cols)
	}
	if len(a.RowPtr) != a.Rows+1 {
		return fmt.Errorf("%w: len(RowPtr) = %d, want %d", ErrInvalidCSR, len(a.RowPtr), a.Rows+1)
	}
	if a.RowPtr[0] != 0 {
		return fmt.Errorf("%w: RowPtr[0] = %d", ErrInvalidCSR, a.RowPtr[0])
	}
	nnz := a.RowPtr[a.Rows]
	if len(a.ColIdx) != nnz || len(a.Values) != nnz {
		return fmt.Errorf("%w: RowPtr[m] = %d but len(ColIdx) = %d, len(Values) = %d",
			ErrInvalidCSR, nnz, len(a.ColIdx), len(a.Values))
	}
	for i := range a.Rows {
		p0, p1 := a.RowPtr[i], a.RowPtr[i+1]
		if p1 < p0 {
			return fmt.Errorf("%w: RowPtr decreases at row %d", ErrInvalidCSR, i)
		}
		if requireNonEmpty && p1 == p0 {
			return fmt.Errorf("%w: row %d is empty", ErrInvalidCSR, i)
		}
		prev := int32(-1)
		for p := p0; p < p1; p++ {
			c := a.ColIdx[p]
			if c < 0 || int(c) >= a.Cols {
				return fmt.Errorf("%w: row %d column %d out of range [0,%d)", ErrInvalidCSR, i, c, a.Cols)
			}
			if c <= prev {
				return fmt.Errorf("%w: row %d columns not strictly increasing (%d after %d)", ErrInvalidCSR, i, c, prev)
			}
			prev = c
		}
	}
	return nil
}
