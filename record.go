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
	"strconv"

	"github.com/ajroetker/kernelbench/hwy/contrib/timing"
)

// Record is the reportable result of one run: the configuration echoed back
// alongside the derived metrics.
type Record struct {
	Config Config
	// Threads is the effective worker count.
	Threads int

	timing.Metrics

	NNZ          int
	CyclesPerNNZ float64
	ConvSeconds  float64
	FreqMHz      float64
	CyclesEst    float64

	// Dispatch is the detected vector level, e.g. "avx2".
	Dispatch string
	// UsedFallback is true when the scalar path ran in place of the
	// requested vectorized one.
	UsedFallback bool
}

var header = []string{
	"kernel", "variant", "layoutB", "pattern",
	"m", "k", "n", "density", "threads",
	"tileM", "tileN", "tileK", "jblock",
	"seed", "run",
	"seconds", "gflops", "nnz", "cpnz",
	"ai", "bytes_est", "bandwidth_GBps",
	"p50_us", "p95_us", "p99_us",
	"conv_seconds", "freq_mhz", "cycles_est",
	"perf_task_clock_ms", "perf_context_switches", "perf_cpu_migrations", "perf_page_faults",
	"dispatch", "used_fallback",
}

// Header returns the CSV column names in Fields order.
func Header() []string {
	return append([]string(nil), header...)
}

// Fields formats r as one CSV row matching Header.
func (r Record) Fields() []string {
	c := r.Config
	return []string{
		c.Kernel.String(), c.Variant.String(), c.Layout.String(), c.Pattern.String(),
		itoa(c.M), itoa(c.K), itoa(c.N), ftoa(c.Density), itoa(r.Threads),
		itoa(c.Tiles.M), itoa(c.Tiles.N), itoa(c.Tiles.K), itoa(c.JBlock),
		strconv.FormatUint(c.Seed, 10), itoa(c.RunID),
		ftoa(r.Seconds), ftoa(r.GFLOPS), itoa(r.NNZ), ftoa(r.CyclesPerNNZ),
		ftoa(r.Intensity), ftoa(r.BytesEstimate), ftoa(r.BandwidthGBps),
		ftoa(r.P50us), ftoa(r.P95us), ftoa(r.P99us),
		ftoa(r.ConvSeconds), ftoa(r.FreqMHz), ftoa(r.CyclesEst),
		ftoa(c.Perf.TaskClockMS), ftoa(c.Perf.ContextSwitches), ftoa(c.Perf.CPUMigrations), ftoa(c.Perf.PageFaults),
		r.Dispatch, strconv.FormatBool(r.UsedFallback),
	}
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
