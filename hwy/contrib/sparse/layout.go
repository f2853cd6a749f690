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
	"strings"
)

// ErrUnknownLayout is returned by ParseLayout for names other than row/col.
var ErrUnknownLayout = errors.New("sparse: unknown dense layout")

// Layout is the storage order of the dense B operand of SpMM.
type Layout int

const (
	// RowMajor stores B[t, j] at t*n + j.
	RowMajor Layout = iota
	// ColMajor stores B[t, j] at j*k + t.
	ColMajor
)

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row"
	case ColMajor:
		return "col"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout accepts "row"/"row-major" and "col"/"col-major".
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "row", "row-major", "rowmajor":
		return RowMajor, nil
	case "col", "col-major", "colmajor", "column":
		return ColMajor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}
