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

package main

import (
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/kernelbench"
)

// commonFlags are shared by the single-run and sweep commands.
type commonFlags struct {
	m, k, n              int
	tileM, tileN, tileK  int
	jblock               int
	seed                 uint64
	freqMHz              float64
	reps                 int
	streamN, streamIters int
	verbose              bool
}

func (f *commonFlags) bind(fs *pflag.FlagSet) {
	d := kernelbench.DefaultConfig()
	fs.IntVar(&f.m, "m", d.M, "rows of A and C")
	fs.IntVar(&f.k, "k", d.K, "columns of A, rows of B")
	fs.IntVar(&f.n, "n", d.N, "columns of B and C")
	fs.IntVar(&f.tileM, "tileM", d.Tiles.M, "GEMM row tile (<= 0: whole dimension)")
	fs.IntVar(&f.tileN, "tileN", d.Tiles.N, "GEMM column tile (<= 0: whole dimension)")
	fs.IntVar(&f.tileK, "tileK", d.Tiles.K, "GEMM reduction tile (<= 0: whole dimension)")
	fs.IntVar(&f.jblock, "jblock", d.JBlock, "SpMM output column block (<= 0: n)")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "seed for operands and sparsity")
	fs.Float64Var(&f.freqMHz, "freq_mhz", d.FreqMHz, "nominal clock for cycle estimates (<= 0: detect)")
	fs.IntVar(&f.reps, "reps", 0, "timed calls per run (0: 15 for gemm, 20 for spmm)")
	fs.IntVar(&f.streamN, "stream_n", d.StreamN, "stream probe array length in floats")
	fs.IntVar(&f.streamIters, "stream_iters", d.StreamIters, "stream probe passes")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log phases to stderr")
}

// apply copies the shared settings into cfg.
func (f *commonFlags) apply(cfg *kernelbench.Config) {
	cfg.M, cfg.K, cfg.N = f.m, f.k, f.n
	cfg.Tiles.M, cfg.Tiles.N, cfg.Tiles.K = f.tileM, f.tileN, f.tileK
	cfg.JBlock = f.jblock
	cfg.Seed = f.seed
	cfg.FreqMHz = f.freqMHz
	cfg.Reps = f.reps
	cfg.StreamN = f.streamN
	cfg.StreamIters = f.streamIters
}

func (f *commonFlags) logger(w io.Writer) *slog.Logger {
	if !f.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type runFlags struct {
	commonFlags
	kernel, variant, layout, pattern string
	density                          float64
	threads                          int
	run                              int
	perf                             kernelbench.PerfCounters
	header                           bool
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	f.commonFlags.bind(fs)
	d := kernelbench.DefaultConfig()
	fs.StringVar(&f.kernel, "kernel", d.Kernel.String(), "gemm, spmm_csr or stream")
	fs.StringVar(&f.variant, "variant", d.Variant.String(), "simd or scalar")
	fs.StringVar(&f.layout, "layoutB", d.Layout.String(), "SpMM B layout: row or col")
	fs.StringVar(&f.pattern, "pattern", d.Pattern.String(), "uniform, band or blockdiag")
	fs.Float64Var(&f.density, "density", d.Density, "target fraction of non-zeros")
	fs.IntVar(&f.threads, "threads", d.Threads, "worker threads (0: GOMAXPROCS)")
	fs.IntVar(&f.run, "run", 0, "run id echoed into the row")
	fs.Float64Var(&f.perf.TaskClockMS, "perf_task_clock_ms", 0, "externally measured task clock (ms)")
	fs.Float64Var(&f.perf.ContextSwitches, "perf_context_switches", 0, "externally measured context switches")
	fs.Float64Var(&f.perf.CPUMigrations, "perf_cpu_migrations", 0, "externally measured CPU migrations")
	fs.Float64Var(&f.perf.PageFaults, "perf_page_faults", 0, "externally measured page faults")
	fs.BoolVar(&f.header, "header", false, "print the CSV header and exit")
}

func (f *runFlags) config() (kernelbench.Config, error) {
	cfg := kernelbench.DefaultConfig()
	f.apply(&cfg)

	var err error
	if cfg.Kernel, err = kernelbench.ParseKernel(f.kernel); err != nil {
		return cfg, err
	}
	if cfg.Variant, err = kernelbench.ParseVariant(f.variant); err != nil {
		return cfg, err
	}
	if cfg.Layout, err = kernelbench.ParseLayout(f.layout); err != nil {
		return cfg, err
	}
	if cfg.Pattern, err = kernelbench.ParsePattern(f.pattern); err != nil {
		return cfg, err
	}
	cfg.Density = f.density
	cfg.Threads = f.threads
	cfg.RunID = f.run
	cfg.Perf = f.perf
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:           "kernelbench",
		Short:         "Benchmark dense and sparse matrix multiply kernels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := csv.NewWriter(cmd.OutOrStdout())
			if f.header {
				return writeRows(w, kernelbench.Header())
			}

			cfg, err := f.config()
			if err != nil {
				return err
			}
			rec, err := kernelbench.NewRunner(kernelbench.WithLogger(f.logger(cmd.ErrOrStderr()))).Run(cfg)
			if err != nil {
				return err
			}
			return writeRows(w, rec.Fields())
		},
	}
	f.bind(cmd.Flags())
	cmd.AddCommand(newSweepCmd(), newCPUInfoCmd())
	return cmd
}

func writeRows(w *csv.Writer, rows ...[]string) error {
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
