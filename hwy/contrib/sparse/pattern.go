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
	"math"
	"strings"
)

// ErrUnknownPattern is returned for a pattern name or value outside the
// three supported patterns. There is no default pattern.
var ErrUnknownPattern = errors.New("sparse: unknown sparsity pattern")

// Pattern selects how non-zeros are placed.
type Pattern int

const (
	// Uniform scatters non-zeros over the whole matrix.
	Uniform Pattern = iota

	// Banded places each row's non-zeros in a band around the scaled
	// diagonal column i*k/m.
	Banded

	// BlockDiagonal splits columns into BlockCount contiguous blocks and
	// confines each row to the block matching its position.
	BlockDiagonal
)

// BlockCount is the number of diagonal blocks of the BlockDiagonal pattern.
// Matrices with fewer columns use one block per column.
const BlockCount = 8

// Band half-width bounds, as fractions of k.
const (
	minBandFraction = 0.01
	maxBandFraction = 0.20
	bandDensityGain = 5.0
)

// String returns the canonical pattern name.
func (p Pattern) String() string {
	switch p {
	case Uniform:
		return "uniform"
	case Banded:
		return "band"
	case BlockDiagonal:
		return "blockdiag"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// Valid reports whether p is one of the three defined patterns.
func (p Pattern) Valid() bool {
	return p >= Uniform && p <= BlockDiagonal
}

// ParsePattern maps a pattern name to a Pattern. Accepted names are
// "uniform", "band"/"banded" and "blockdiag"/"block-diagonal" (case
// insensitive).
func ParsePattern(name string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform":
		return Uniform, nil
	case "band", "banded":
		return Banded, nil
	case "blockdiag", "block-diagonal", "block_diagonal":
		return BlockDiagonal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
}

// uniformTarget is the number of distinct cells the Uniform pattern samples:
// round(m*k*density), at least one per row, at most every cell.
func uniformTarget(m, k int, density float64) int {
	total := m * k
	target := int(math.Round(float64(total) * density))
	return min(max(target, m), total)
}

// bandWindow returns the inclusive column range of row i under Banded.
func bandWindow(i, m, k int, density float64) (lo, hi int) {
	frac := min(maxBandFraction, max(minBandFraction, density*bandDensityGain))
	bw := max(1, int(math.Round(float64(k)*frac)))
	center := int(int64(i) * int64(k) / int64(max(1, m)))
	return max(0, center-bw), min(k-1, center+bw)
}

// blockWindow returns the inclusive column range of row i under
// BlockDiagonal.
func blockWindow(i, m, k int) (lo, hi int) {
	blocks := min(BlockCount, k)
	b := min(blocks-1, int(int64(i)*int64(blocks)/int64(max(1, m))))
	return b * k / blocks, (b+1)*k/blocks - 1
}

// windowTarget is the per-row non-zero count for windowed patterns:
// round(density*k), at least one, at most the window span.
func windowTarget(span, k int, density float64) int {
	target := int(math.Round(density * float64(k)))
	return min(max(target, 1), span)
}

// NNZBounds returns the inclusive range the realized non-zero count of
// Build(m, k, density, p, seed) falls in, for any seed.
//
//   - Uniform: [t, t+m] with t = min(m*k, max(m, round(m*k*density))); the
//     upper slack covers rows that drew nothing and got a synthetic entry.
//   - Banded, BlockDiagonal: exact; the sum over rows of
//     min(span_i, max(1, round(density*k))), where span_i is the width of
//     row i's band or block.
func NNZBounds(m, k int, density float64, p Pattern) (lo, hi int, err error) {
	switch p {
	case Uniform:
		t := uniformTarget(m, k, density)
		return t, min(t+m, m*k), nil
	case Banded, BlockDiagonal:
		total := 0
		for i := range m {
			var wlo, whi int
			if p == Banded {
				wlo, whi = bandWindow(i, m, k, density)
			} else {
				wlo, whi = blockWindow(i, m, k)
			}
			total += windowTarget(whi-wlo+1, k, density)
		}
		return total, total, nil
	default:
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownPattern, p)
	}
}
