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

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/kernelbench"
	"github.com/ajroetker/kernelbench/hwy"
)

type sweepFlags struct {
	commonFlags
	kernels, variants, layouts, patterns []string
	densities                            []float64
	threads                              []int
	runs                                 int
	output                               string
}

func (f *sweepFlags) bind(fs *pflag.FlagSet) {
	f.commonFlags.bind(fs)
	fs.StringSliceVar(&f.kernels, "kernel", []string{"gemm"}, "kernels to run")
	fs.StringSliceVar(&f.variants, "variant", []string{"scalar", "simd"}, "variants to run")
	fs.StringSliceVar(&f.layouts, "layoutB", []string{"row"}, "SpMM B layouts")
	fs.StringSliceVar(&f.patterns, "pattern", []string{"uniform"}, "SpMM sparsity patterns")
	fs.Float64SliceVar(&f.densities, "density", []float64{0.01, 0.1}, "SpMM densities")
	fs.IntSliceVar(&f.threads, "threads", []int{1}, "worker thread counts")
	fs.IntVar(&f.runs, "runs", 1, "repeated runs per configuration, numbered from 0")
	fs.StringVarP(&f.output, "output", "o", "", "write rows to this file instead of stdout (.zst and .gz are compressed)")
}

func parseAll[T comparable](names []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, name := range names {
		v, err := parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return lo.Uniq(out), nil
}

// configs expands the flag lists into their cross product. GEMM and the
// stream probe ignore layout, pattern and density, so those axes collapse
// to their first value for them and duplicates are dropped.
func (f *sweepFlags) configs() ([]kernelbench.Config, error) {
	kernels, err := parseAll(f.kernels, kernelbench.ParseKernel)
	if err != nil {
		return nil, err
	}
	variants, err := parseAll(f.variants, kernelbench.ParseVariant)
	if err != nil {
		return nil, err
	}
	layouts, err := parseAll(f.layouts, kernelbench.ParseLayout)
	if err != nil {
		return nil, err
	}
	patterns, err := parseAll(f.patterns, kernelbench.ParsePattern)
	if err != nil {
		return nil, err
	}
	densities := lo.Uniq(f.densities)
	threads := lo.Uniq(f.threads)
	if len(layouts) == 0 || len(patterns) == 0 || len(densities) == 0 {
		return nil, nil
	}

	base := kernelbench.DefaultConfig()
	f.apply(&base)

	var out []kernelbench.Config
	for _, kernel := range kernels {
		for _, variant := range variants {
			for _, layout := range layouts {
				for _, pattern := range patterns {
					for _, density := range densities {
						for _, th := range threads {
							for run := range max(f.runs, 1) {
								cfg := base
								cfg.Kernel, cfg.Variant = kernel, variant
								cfg.Layout, cfg.Pattern, cfg.Density = layout, pattern, density
								if kernel != kernelbench.KernelSpMM {
									cfg.Layout, cfg.Pattern, cfg.Density = layouts[0], patterns[0], densities[0]
								}
								if kernel == kernelbench.KernelStream {
									cfg.Variant = hwy.Vectorized
								}
								cfg.Threads = th
								cfg.RunID = run
								out = append(out, cfg)
							}
						}
					}
				}
			}
		}
	}
	out = lo.Uniq(out)

	for _, cfg := range out {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func newSweepCmd() *cobra.Command {
	var f sweepFlags
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the cross product of several configurations",
		Long: "Run every combination of the listed kernels, variants, layouts, patterns,\n" +
			"densities and thread counts, printing a header and one CSV row per run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfgs, err := f.configs()
			if err != nil {
				return err
			}
			runner := kernelbench.NewRunner(kernelbench.WithLogger(f.logger(cmd.ErrOrStderr())))

			out, err := openOutput(f.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() {
				if cerr := out.Close(); err == nil {
					err = cerr
				}
			}()

			w := csv.NewWriter(out)
			if err := w.Write(kernelbench.Header()); err != nil {
				return err
			}
			for _, cfg := range cfgs {
				rec, err := runner.Run(cfg)
				if err != nil {
					return err
				}
				if err := w.Write(rec.Fields()); err != nil {
					return err
				}
				// Rows appear as runs finish.
				w.Flush()
			}
			w.Flush()
			return w.Error()
		},
	}
	f.bind(cmd.Flags())
	return cmd
}
