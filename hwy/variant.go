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

// Variant selects the inner-loop implementation of a kernel.
type Variant int

const (
	// Scalar uses one multiply-add per element.
	Scalar Variant = iota

	// Vectorized uses Float32x8 fused multiply-adds with a scalar tail.
	Vectorized
)

// String returns the name used in benchmark reports.
func (v Variant) String() string {
	switch v {
	case Scalar:
		return "scalar"
	case Vectorized:
		return "simd"
	default:
		return "unknown"
	}
}

// Resolve maps a requested variant to the one that will run on this host.
// A Vectorized request on a scalar-only target resolves to Scalar with
// fallback set, so callers can report which path actually executed.
func Resolve(requested Variant) (actual Variant, fallback bool) {
	if requested == Vectorized && !HasVectorUnit() {
		return Scalar, true
	}
	return requested, false
}

// BestVariant returns Vectorized when the host has a vector unit.
func BestVariant() Variant {
	if HasVectorUnit() {
		return Vectorized
	}
	return Scalar
}
