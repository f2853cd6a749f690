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

//go:build amd64 && goexperiment.simd

package hwy

import "simd/archsimd"

// hasAVX2FMA is set from the hardware flags at init and is never overridden,
// so the archsimd path only runs where VFMADD on ymm registers is legal.
var hasAVX2FMA bool

func vectorKernels() bool { return hasAVX2FMA }

// AXPY computes dst[i] += a * x[i] for i in [0, len(dst)) with Float32x8
// fused multiply-adds over the bulk and a scalar tail. On a host without
// AVX2+FMA it is AXPYScalar. x must be at least as long as dst.
func AXPY(a float32, x, dst []float32) {
	if !hasAVX2FMA {
		AXPYScalar(a, x, dst)
		return
	}
	n := len(dst)
	x = x[:n]
	va := archsimd.BroadcastFloat32x8(a)
	vEnd := VecEnd(0, n)
	for j := 0; j < vEnd; j += Lanes {
		vx := archsimd.LoadFloat32x8Slice(x[j:])
		vd := archsimd.LoadFloat32x8Slice(dst[j:])
		va.MulAdd(vx, vd).StoreSlice(dst[j:])
	}
	for j := vEnd; j < n; j++ {
		dst[j] += a * x[j]
	}
}
