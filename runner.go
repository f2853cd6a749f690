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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/align"
	"github.com/ajroetker/kernelbench/hwy/contrib/matmul"
	"github.com/ajroetker/kernelbench/hwy/contrib/sparse"
	"github.com/ajroetker/kernelbench/hwy/contrib/stream"
	"github.com/ajroetker/kernelbench/hwy/contrib/timing"
	"github.com/ajroetker/kernelbench/hwy/contrib/workerpool"
)

// Seed offsets for the generated operands, so A and B differ for one seed.
const (
	seedA     = 0xA5A5
	seedB     = 0x5A5A
	seedSpMMB = 0x1234
)

const fallbackFreqMHz = 2400

// Runner executes benchmark configurations. A Runner holds no per-run
// state and may be reused; runs should not overlap if timings matter.
type Runner struct {
	log       *slog.Logger
	alignment int
}

// NewRunner returns a Runner configured by opts.
func NewRunner(opts ...Option) *Runner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner{log: o.logger, alignment: o.alignment}
}

// Run validates cfg, prepares the operands, times the kernel and returns
// the derived record. Only configuration errors are returned; kernels
// themselves cannot fail.
func (r *Runner) Run(cfg Config) (Record, error) {
	if err := cfg.Validate(); err != nil {
		return Record{}, err
	}

	pool := workerpool.New(cfg.Threads)
	defer pool.Close()

	rec := Record{
		Config:   cfg,
		Threads:  pool.NumWorkers(),
		FreqMHz:  cfg.FreqMHz,
		Dispatch: hwy.CurrentName(),
	}
	if rec.FreqMHz <= 0 {
		rec.FreqMHz = hwy.FrequencyMHz(fallbackFreqMHz)
	}

	log := r.log.With("kernel", cfg.Kernel.String(), "run", cfg.RunID)
	log.Debug("run starting",
		"variant", cfg.Variant.String(),
		"threads", rec.Threads,
		"dispatch", rec.Dispatch,
	)

	switch cfg.Kernel {
	case KernelGEMM:
		r.runGEMM(log, pool, cfg, &rec)
	case KernelSpMM:
		if err := r.runSpMM(log, pool, cfg, &rec); err != nil {
			return Record{}, err
		}
	case KernelStream:
		r.runStream(log, pool, cfg, &rec)
	}

	rec.CyclesEst = timing.CyclesEstimate(rec.Seconds, rec.FreqMHz)
	if rec.NNZ > 0 {
		rec.CyclesPerNNZ = rec.CyclesEst / float64(rec.NNZ)
	}
	log.Debug("run finished",
		"seconds", rec.Seconds,
		"gflops", rec.GFLOPS,
		"bandwidth_gbps", rec.BandwidthGBps,
	)
	return rec, nil
}

func (r *Runner) runGEMM(log *slog.Logger, pool *workerpool.Pool, cfg Config, rec *Record) {
	m, k, n := cfg.M, cfg.K, cfg.N
	g, fallback := matmul.Select(cfg.Variant)
	r.noteFallback(log, cfg.Variant, fallback, "vector unit unavailable")
	rec.UsedFallback = fallback

	a := align.Allocate(m*k, r.alignment)
	b := align.Allocate(k*n, r.alignment)
	c := align.Allocate(m*n, r.alignment)
	defer a.Release()
	defer b.Release()
	defer c.Release()
	a.FillRandom(cfg.Seed ^ seedA)
	b.FillRandom(cfg.Seed ^ seedB)

	reps := cfg.reps()
	samples := timing.RunTrials(reps, func() {
		g.Accumulate(pool, a.Floats(), b.Floats(), c.Floats(), m, k, n, cfg.Tiles)
	}, timing.WithSetup(c.Zero))

	summary := timing.Summarize(samples)
	log.Debug("gemm trials done", "reps", reps, "median_s", summary.Median, "stddev_s", summary.StdDev)
	rec.Metrics = timing.Derive(summary, timing.GEMMModel{M: m, K: k, N: n})
}

func (r *Runner) runSpMM(log *slog.Logger, pool *workerpool.Pool, cfg Config, rec *Record) error {
	m, k, n := cfg.M, cfg.K, cfg.N

	start := time.Now()
	a, err := sparse.Build(m, k, cfg.Density, cfg.Pattern, cfg.Seed)
	if err != nil {
		return unrecognized("pattern", cfg.Pattern.String(), err)
	}
	rec.ConvSeconds = time.Since(start).Seconds()
	rec.NNZ = a.NNZ()
	log.Debug("csr built",
		"pattern", cfg.Pattern.String(),
		"nnz", rec.NNZ,
		"density", a.Density(),
		"seconds", rec.ConvSeconds,
	)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		if err := a.Validate(); err != nil {
			panic(fmt.Sprintf("kernelbench: generated matrix is malformed: %v", err))
		}
	}

	s, fallback := sparse.SelectSpMM(cfg.Variant)
	r.noteFallback(log, cfg.Variant, fallback, "vector unit unavailable")

	b := align.Allocate(k*n, r.alignment)
	c := align.Allocate(m*n, r.alignment)
	defer b.Release()
	defer c.Release()
	b.FillRandom(cfg.Seed ^ seedSpMMB)

	var exec sparse.Execution
	reps := cfg.reps()
	samples := timing.RunTrials(reps, func() {
		exec = s.Multiply(pool, a, b.Floats(), cfg.Layout, c.Floats(), n, cfg.JBlock)
	})
	if exec.Fallback && !fallback {
		r.noteFallback(log, cfg.Variant, true, "column-major B uses the scalar gather")
	}
	rec.UsedFallback = fallback || exec.Fallback

	summary := timing.Summarize(samples)
	log.Debug("spmm trials done", "reps", reps, "median_s", summary.Median, "stddev_s", summary.StdDev)
	rec.Metrics = timing.Derive(summary, timing.SpMMModel{M: m, N: n, NNZ: rec.NNZ})
	return nil
}

// runStream reports only bandwidth; the triad has no FLOP model and its
// per-call latency is not sampled.
func (r *Runner) runStream(log *slog.Logger, pool *workerpool.Pool, cfg Config, rec *Record) {
	p := stream.NewProbe(cfg.StreamN, cfg.Seed)
	defer p.Release()

	res := p.Run(pool, cfg.StreamIters)
	log.Debug("stream probe done", "n", res.N, "iters", res.Iters, "seconds", res.Seconds)
	rec.BandwidthGBps = res.GBps
}

func (r *Runner) noteFallback(log *slog.Logger, requested hwy.Variant, fallback bool, reason string) {
	if !fallback {
		return
	}
	log.Warn("running scalar path",
		"requested", requested.String(),
		"reason", reason,
	)
}
