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

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchLevelString(t *testing.T) {
	assert.Equal(t, "scalar", DispatchScalar.String())
	assert.Equal(t, "avx2", DispatchAVX2.String())
	assert.Equal(t, "neon", DispatchNEON.String())
	assert.Equal(t, "unknown", DispatchLevel(99).String())
	t.Logf("Dispatch level: %s (%d bytes)", CurrentName(), CurrentWidth())
}

func TestNoSimdEnv(t *testing.T) {
	t.Setenv("HWY_NO_SIMD", "")
	assert.False(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "1")
	assert.True(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "false")
	assert.False(t, NoSimdEnv())
	t.Setenv("HWY_NO_SIMD", "yes")
	assert.True(t, NoSimdEnv())
}

// withLevel overrides the detected level for the duration of the test.
func withLevel(t *testing.T, level DispatchLevel, width int) {
	t.Helper()
	prevLevel, prevWidth, prevFMA := currentLevel, currentWidth, hasFMA
	currentLevel, currentWidth = level, width
	hasFMA = level != DispatchScalar && level != DispatchSSE2
	t.Cleanup(func() {
		currentLevel, currentWidth, hasFMA = prevLevel, prevWidth, prevFMA
	})
}

func TestResolveScalarLevel(t *testing.T) {
	withLevel(t, DispatchScalar, 16)
	v, fallback := Resolve(Vectorized)
	assert.Equal(t, Scalar, v)
	assert.True(t, fallback)
	assert.Equal(t, Scalar, BestVariant())
	assert.False(t, HasVectorUnit())
}

func TestResolveFollowsCompiledKernels(t *testing.T) {
	withLevel(t, DispatchAVX2, 32)
	v, fallback := Resolve(Vectorized)
	if vectorKernels() {
		assert.Equal(t, Vectorized, v)
		assert.False(t, fallback)
	} else {
		assert.Equal(t, Scalar, v, "no vector kernels in this build")
		assert.True(t, fallback)
	}
	v, fallback = Resolve(Scalar)
	assert.Equal(t, Scalar, v)
	assert.False(t, fallback)
	assert.True(t, HasFMA())
}

func TestHasVectorUnitMatchesBuild(t *testing.T) {
	assert.Equal(t, CurrentLevel() != DispatchScalar && vectorKernels(), HasVectorUnit())
	if !vectorKernels() {
		v, fallback := Resolve(Vectorized)
		assert.Equal(t, Scalar, v)
		assert.True(t, fallback)
	}
}

func TestVecEnd(t *testing.T) {
	assert.Equal(t, 0, VecEnd(0, 7))
	assert.Equal(t, 8, VecEnd(0, 8))
	assert.Equal(t, 19, VecEnd(3, 20))
	assert.Equal(t, 5, VecEnd(5, 5))
	assert.Equal(t, 5, VecEnd(5, 2))
}

func TestAXPYMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, n := range []int{5, 8, 64, 130} {
		x := make([]float32, n)
		dst := make([]float32, n)
		for i := range x {
			x[i] = rng.Float32()*2 - 1
			dst[i] = rng.Float32()*2 - 1
		}
		want := make([]float32, n)
		copy(want, dst)
		AXPYScalar(0.75, x, want)
		AXPY(0.75, x, dst)
		for i := range dst {
			// Fused and unfused multiply-add differ by at most one rounding.
			assert.InDelta(t, want[i], dst[i], 1e-6, "n=%d i=%d", n, i)
		}
	}
}

func TestAXPYTail(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 9, 16, 31} {
		x := make([]float32, n)
		dst := make([]float32, n)
		for i := range x {
			x[i] = float32(i)
			dst[i] = 1
		}
		want := make([]float32, n)
		copy(want, dst)
		AXPYScalar(3, x, want)
		AXPY(3, x, dst)
		require.Equal(t, want, dst, "n=%d", n)
	}
}

func TestDetectCPU(t *testing.T) {
	info := DetectCPU()
	assert.Positive(t, info.CacheLine)
	assert.GreaterOrEqual(t, info.L1D, 0)
	assert.Positive(t, FrequencyMHz(2400))
	t.Logf("CPU: %q line=%d L1D=%d L2=%d L3=%d", info.Brand, info.CacheLine, info.L1D, info.L2, info.L3)
}
