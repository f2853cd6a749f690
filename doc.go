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

// Package kernelbench measures dense and sparse matrix multiply throughput
// and memory bandwidth under a fixed configuration.
//
// A Config names the kernel (gemm, spmm_csr or stream), the inner-loop
// variant, operand shapes, tile sizes, sparsity pattern and thread count.
// Runner.Run builds seeded operands, times repeated kernel calls and returns
// a Record whose Fields line up with Header for CSV output.
//
// Example:
//
//	cfg := kernelbench.DefaultConfig()
//	cfg.Kernel = kernelbench.KernelSpMM
//	cfg.Density = 0.05
//	rec, err := kernelbench.NewRunner(kernelbench.WithLogger(logger)).Run(cfg)
//	if err != nil {
//	    return err
//	}
//	w.Write(rec.Fields())
//
// The kernels live under hwy/contrib: matmul (dense GEMM), sparse (CSR and
// SpMM), stream (triad bandwidth) and timing (statistics and cost models).
package kernelbench
