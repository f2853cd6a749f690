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

package kernelbench

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/matmul"
	"github.com/ajroetker/kernelbench/hwy/contrib/sparse"
	"github.com/ajroetker/kernelbench/hwy/contrib/stream"
)

// Kernel selects what a run measures.
type Kernel int

const (
	// KernelGEMM is the tiled dense C += A*B.
	KernelGEMM Kernel = iota
	// KernelSpMM is CSR A times dense B.
	KernelSpMM
	// KernelStream is the triad bandwidth probe.
	KernelStream
)

func (k Kernel) String() string {
	switch k {
	case KernelGEMM:
		return "gemm"
	case KernelSpMM:
		return "spmm_csr"
	case KernelStream:
		return "stream"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// Default repetition counts per kernel.
const (
	DefaultGEMMReps = 15
	DefaultSpMMReps = 20
)

// PerfCounters are externally measured counters echoed into the record.
type PerfCounters struct {
	TaskClockMS     float64
	ContextSwitches float64
	CPUMigrations   float64
	PageFaults      float64
}

// Config is the full parameter set of one benchmark run.
type Config struct {
	Kernel  Kernel
	Variant hwy.Variant
	Layout  sparse.Layout
	Pattern sparse.Pattern

	M, K, N int
	Density float64

	// Threads is the worker count; 0 uses GOMAXPROCS.
	Threads int
	Tiles   matmul.Tiles
	JBlock  int

	Seed  uint64
	RunID int

	// FreqMHz is the nominal clock used for cycle estimates; <= 0 uses the
	// detected frequency, or 2400 if none is reported.
	FreqMHz float64

	// Reps is the number of timed calls; 0 uses the per-kernel default.
	Reps int

	StreamN     int
	StreamIters int

	Perf PerfCounters
}

// DefaultConfig returns the settings used when no flag overrides them.
func DefaultConfig() Config {
	return Config{
		Kernel:      KernelGEMM,
		Variant:     hwy.Vectorized,
		Layout:      sparse.RowMajor,
		Pattern:     sparse.Uniform,
		M:           1024,
		K:           1024,
		N:           1024,
		Density:     1.0,
		Threads:     1,
		Tiles:       matmul.Tiles{M: 64, K: 64, N: 128},
		JBlock:      128,
		Seed:        123,
		FreqMHz:     2400,
		StreamN:     stream.DefaultN,
		StreamIters: stream.DefaultIters,
	}
}

// reps returns the effective repetition count.
func (c Config) reps() int {
	if c.Reps > 0 {
		return c.Reps
	}
	if c.Kernel == KernelSpMM {
		return DefaultSpMMReps
	}
	return DefaultGEMMReps
}

// Validate checks every field before anything is allocated.
func (c Config) Validate() error {
	var errs []error
	switch c.Kernel {
	case KernelGEMM, KernelSpMM, KernelStream:
	default:
		errs = append(errs, unrecognized("kernel", c.Kernel.String(), nil))
	}
	if c.Variant != hwy.Scalar && c.Variant != hwy.Vectorized {
		errs = append(errs, unrecognized("variant", c.Variant.String(), nil))
	}
	if c.Layout != sparse.RowMajor && c.Layout != sparse.ColMajor {
		errs = append(errs, unrecognized("layout", c.Layout.String(), sparse.ErrUnknownLayout))
	}
	if !c.Pattern.Valid() {
		errs = append(errs, unrecognized("pattern", c.Pattern.String(), sparse.ErrUnknownPattern))
	}

	switch c.Kernel {
	case KernelGEMM, KernelSpMM:
		for _, d := range []struct {
			name string
			v    int
		}{{"m", c.M}, {"k", c.K}, {"n", c.N}} {
			if d.v <= 0 {
				errs = append(errs, invalid(d.name, d.v, errNotPositive))
			}
		}
	case KernelStream:
		if c.StreamN <= 0 {
			errs = append(errs, invalid("stream_n", c.StreamN, errNotPositive))
		}
	}
	if c.Threads < 0 {
		errs = append(errs, invalid("threads", c.Threads, errors.New("must not be negative")))
	}
	if c.Reps < 0 {
		errs = append(errs, invalid("reps", c.Reps, errors.New("must not be negative")))
	}
	return errors.Join(errs...)
}

// ParseKernel maps gemm, spmm_csr (or spmm) and stream to a Kernel.
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemm":
		return KernelGEMM, nil
	case "spmm_csr", "spmm":
		return KernelSpMM, nil
	case "stream":
		return KernelStream, nil
	default:
		return 0, unrecognized("kernel", name, nil)
	}
}

// ParseVariant maps simd (or vector) and scalar to a variant.
func ParseVariant(name string) (hwy.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simd", "vector", "vectorized":
		return hwy.Vectorized, nil
	case "scalar":
		return hwy.Scalar, nil
	default:
		return 0, unrecognized("variant", name, nil)
	}
}

// ParseLayout maps row and col to a dense B layout.
func ParseLayout(name string) (sparse.Layout, error) {
	l, err := sparse.ParseLayout(name)
	if err != nil {
		return 0, unrecognized("layout", name, err)
	}
	return l, nil
}

// ParsePattern maps a sparsity pattern name; see sparse.ParsePattern.
func ParsePattern(name string) (sparse.Pattern, error) {
	p, err := sparse.ParsePattern(name)
	if err != nil {
		return 0, unrecognized("pattern", name, err)
	}
	return p, nil
}
