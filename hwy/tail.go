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

package hwy

// Lanes is the number of float32 lanes in one 256-bit vector.
const Lanes = 8

// VecEnd returns the largest index e in [start, end] such that e-start is a
// multiple of Lanes. Elements in [start, e) are processed as full vectors and
// elements in [e, end) form the scalar tail.
//
// Example:
//
//	vEnd := hwy.VecEnd(j0, j1)
//	for j := j0; j < vEnd; j += hwy.Lanes {
//	    // one vector of 8 lanes
//	}
//	for j := vEnd; j < j1; j++ {
//	    c[j] += a * b[j]
//	}
func VecEnd(start, end int) int {
	if end <= start {
		return start
	}
	return start + ((end-start)/Lanes)*Lanes
}

// AXPYScalar computes dst[i] += a * x[i] with one multiply-add per
// element. x must be at least as long as dst.
func AXPYScalar(a float32, x, dst []float32) {
	x = x[:len(dst)]
	for j := range dst {
		dst[j] += a * x[j]
	}
}
