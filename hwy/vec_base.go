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

//go:build !amd64 || !goexperiment.simd

package hwy

// Without GOEXPERIMENT=simd there are no vector kernels to run: Go does not
// auto-vectorize, so AXPY stays on the scalar loop and HasVectorUnit reports
// false, which makes every vectorized request resolve to the scalar path.

func vectorKernels() bool { return false }

// AXPY computes dst[i] += a * x[i] for i in [0, len(dst)). This build has no
// vector kernels, so it is AXPYScalar. x must be at least as long as dst.
func AXPY(a float32, x, dst []float32) {
	AXPYScalar(a, x, dst)
}
