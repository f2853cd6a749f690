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

// Command kernelbench runs one dense or sparse matrix multiply benchmark
// and prints the result as a CSV row.
//
// Usage:
//
//	kernelbench --header                                  # column names only
//	kernelbench --kernel gemm --variant simd --m 512 --k 512 --n 512 --threads 4
//	kernelbench --kernel spmm_csr --pattern band --density 0.05 --layoutB col
//	kernelbench --kernel stream --threads 8
//	kernelbench sweep --variant scalar,simd --threads 1,2,4 --runs 3
//	kernelbench cpuinfo
//
// Unknown kernel, variant, layout or pattern names exit with status 2.
// Set HWY_NO_SIMD=1 to force the scalar path for every vectorized request.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ajroetker/kernelbench"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps configuration errors to 2 and everything else to 1.
func exitCode(err error) int {
	if errors.Is(err, kernelbench.ErrUnrecognizedConfig) || errors.Is(err, kernelbench.ErrInvalidConfig) {
		return 2
	}
	return 1
}
