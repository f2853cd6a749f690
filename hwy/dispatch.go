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

// Package hwy detects the vector capability of the running CPU and provides
// the float32 AXPY step the vectorized benchmark kernels are built on.
//
// Detection runs once at package init. Kernels never branch on the detected
// level themselves; they ask for a strategy (scalar or vectorized) once and
// keep using it.
package hwy

import (
	"os"
	"strconv"
)

// DispatchLevel represents the vector instruction set detected at startup.
type DispatchLevel int

const (
	// DispatchScalar indicates no usable vector unit, or HWY_NO_SIMD is set.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, no FMA).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 + FMA (256-bit).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512F (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON (128-bit).
	DispatchNEON

	// DispatchSVE indicates ARM SVE (scalable vector).
	DispatchSVE
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// currentLevel is the detected level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the vector register width in bytes for the current level.
var currentWidth int

// hasFMA reports whether the detected level has fused multiply-add.
var hasFMA bool

// CurrentLevel returns the vector instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current target.
func CurrentName() string {
	return currentLevel.String()
}

// HasFMA reports whether the detected target has fused multiply-add.
func HasFMA() bool {
	return hasFMA
}

// HasVectorUnit reports whether a vectorized request actually runs vector
// code: the detected level is not scalar and this build carries vector
// kernels for it. It is false when HWY_NO_SIMD is set, on amd64 builds
// without GOEXPERIMENT=simd, and on arm64, whose NEON level is detected but
// has no Go vector kernels.
func HasVectorUnit() bool {
	return currentLevel != DispatchScalar && vectorKernels()
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, detection reports DispatchScalar regardless of CPU capabilities,
// which makes every "vectorized" request resolve to the scalar strategy.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // 16-byte vectors even in scalar mode, for consistency
	hasFMA = false
}
