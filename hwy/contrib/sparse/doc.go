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

// Package sparse provides synthetic CSR matrices and the sparse-dense
// matrix multiply (SpMM) kernels measured by the benchmark.
//
// Build synthesizes an m x k matrix in compressed sparse row form under one
// of three sparsity patterns. Whatever the pattern, every row of the result
// is non-empty, strictly increasing in column and free of duplicates; the
// SpMM kernels rely on this and never re-validate.
//
// Example usage:
//
//	a, err := sparse.BuildNamed(m, k, 0.05, "band", seed)
//	if err != nil {
//	    return err
//	}
//	exec := sparse.VectorizedSpMM().Multiply(pool, a, b, sparse.RowMajor, c, n, 128)
//	if exec.Fallback {
//	    // column-major B ran the scalar gather path
//	}
package sparse
