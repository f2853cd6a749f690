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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/kernelbench/hwy"
	"github.com/ajroetker/kernelbench/hwy/contrib/align"
	"github.com/ajroetker/kernelbench/hwy/contrib/sparse"
)

func newCPUInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the detected vector level and cache topology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := hwy.DetectCPU()
			variant, _ := hwy.Resolve(hwy.Vectorized)
			patterns := lo.Map([]sparse.Pattern{sparse.Uniform, sparse.Banded, sparse.BlockDiagonal},
				func(p sparse.Pattern, _ int) string { return p.String() })

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "dispatch\t%s\n", hwy.CurrentName())
			fmt.Fprintf(tw, "vector width\t%d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(tw, "fma\t%t\n", hwy.HasFMA())
			fmt.Fprintf(tw, "simd request runs\t%s\n", variant)
			fmt.Fprintf(tw, "brand\t%s\n", lo.Ternary(info.Brand != "", info.Brand, "unknown"))
			fmt.Fprintf(tw, "cores\t%d physical, %d logical\n", info.PhysicalCores, info.LogicalCores)
			fmt.Fprintf(tw, "cache line\t%d bytes\n", info.CacheLine)
			fmt.Fprintf(tw, "buffer alignment\t%d bytes\n", align.DefaultAlignment())
			fmt.Fprintf(tw, "L1d / L2 / L3\t%s / %s / %s\n", size(info.L1D), size(info.L2), size(info.L3))
			fmt.Fprintf(tw, "base frequency\t%s\n", lo.Ternary(info.FrequencyHz > 0,
				fmt.Sprintf("%.0f MHz", float64(info.FrequencyHz)/1e6), "unknown"))
			fmt.Fprintf(tw, "patterns\t%s\n", strings.Join(patterns, ", "))
			return tw.Flush()
		},
	}
}

func size(bytes int) string {
	switch {
	case bytes <= 0:
		return "?"
	case bytes >= 1<<20 && bytes%(1<<20) == 0:
		return fmt.Sprintf("%dMiB", bytes>>20)
	case bytes >= 1<<10:
		return fmt.Sprintf("%dKiB", bytes>>10)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
