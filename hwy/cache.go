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

import "github.com/klauspost/cpuid/v2"

// DefaultCacheLine is assumed when the cache line size cannot be detected.
const DefaultCacheLine = 64

// CPUInfo describes the host for benchmark reports. Sizes are in bytes; a
// value of zero means the size could not be detected.
type CPUInfo struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	CacheLine     int
	L1D           int
	L2            int
	L3            int
	// FrequencyHz is the detected base frequency, or 0 if unknown.
	FrequencyHz int64
}

// DetectCPU returns the host description reported by cpuid.
func DetectCPU() CPUInfo {
	c := cpuid.CPU
	return CPUInfo{
		Brand:         c.BrandName,
		PhysicalCores: c.PhysicalCores,
		LogicalCores:  c.LogicalCores,
		CacheLine:     CacheLineSize(),
		L1D:           positive(c.Cache.L1D),
		L2:            positive(c.Cache.L2),
		L3:            positive(c.Cache.L3),
		FrequencyHz:   max(c.Hz, 0),
	}
}

// CacheLineSize returns the detected cache line size, or DefaultCacheLine.
func CacheLineSize() int {
	if cl := cpuid.CPU.CacheLine; cl > 0 {
		return cl
	}
	return DefaultCacheLine
}

// FrequencyMHz returns the detected base frequency in MHz, or fallback when
// cpuid cannot report one (common on ARM and in VMs).
func FrequencyMHz(fallback float64) float64 {
	if hz := cpuid.CPU.Hz; hz > 0 {
		return float64(hz) / 1e6
	}
	return fallback
}

func positive(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
