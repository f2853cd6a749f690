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
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/kernelbench"
)

// execute runs the CLI with args and returns the parsed CSV output.
func execute(t *testing.T, args ...string) ([][]string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	return rows, nil
}

func column(rows [][]string, row int, name string) string {
	for i, h := range kernelbench.Header() {
		if h == name {
			return rows[row][i]
		}
	}
	return ""
}

func TestHeaderFlag(t *testing.T) {
	rows, err := execute(t, "--header")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kernelbench.Header(), rows[0])
}

func TestSingleRun(t *testing.T) {
	rows, err := execute(t,
		"--kernel", "spmm_csr", "--variant", "scalar", "--layoutB", "col",
		"--pattern", "blockdiag", "--m", "32", "--k", "32", "--n", "16",
		"--density", "0.2", "--threads", "2", "--reps", "2", "--run", "7",
		"--perf_page_faults", "11",
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(kernelbench.Header()))

	assert.Equal(t, "spmm_csr", column(rows, 0, "kernel"))
	assert.Equal(t, "scalar", column(rows, 0, "variant"))
	assert.Equal(t, "col", column(rows, 0, "layoutB"))
	assert.Equal(t, "blockdiag", column(rows, 0, "pattern"))
	assert.Equal(t, "7", column(rows, 0, "run"))
	assert.Equal(t, "11", column(rows, 0, "perf_page_faults"))
	assert.Equal(t, "false", column(rows, 0, "used_fallback"))
	assert.NotEqual(t, "0", column(rows, 0, "nnz"))
}

func TestUnknownNamesExitTwo(t *testing.T) {
	for _, args := range [][]string{
		{"--kernel", "conv"},
		{"--variant", "avx9"},
		{"--layoutB", "diag"},
		{"--pattern", "random"},
		{"sweep", "--pattern", "random", "--kernel", "spmm"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, "%v", args)
		assert.True(t, errors.Is(err, kernelbench.ErrUnrecognizedConfig), "%v: %v", args, err)
		assert.Equal(t, 2, exitCode(err))
	}

	_, err := execute(t, "--m", "0")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestSweep(t *testing.T) {
	rows, err := execute(t, "sweep",
		"--kernel", "gemm,spmm",
		"--variant", "scalar,simd",
		"--layoutB", "row,col",
		"--density", "0.1",
		"--threads", "1,2",
		"--m", "16", "--k", "16", "--n", "16", "--reps", "1",
	)
	require.NoError(t, err)
	// header + gemm 2 variants x 2 threads + spmm 2 variants x 2 layouts x 2 threads
	require.Len(t, rows, 1+4+8)
	assert.Equal(t, kernelbench.Header(), rows[0])
	assert.Equal(t, "gemm", column(rows, 1, "kernel"))
	assert.Equal(t, "spmm_csr", column(rows, 12, "kernel"))
}

func TestSweepRuns(t *testing.T) {
	rows, err := execute(t, "sweep", "--variant", "scalar", "--runs", "3",
		"--m", "8", "--k", "8", "--n", "8", "--reps", "1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, []string{"0", "1", "2"}[i-1], column(rows, i, "run"))
	}
}

func TestSweepOutputFile(t *testing.T) {
	dir := t.TempDir()
	decoders := map[string]func(io.Reader) (io.Reader, error){
		"rows.csv": func(r io.Reader) (io.Reader, error) { return r, nil },
		"rows.csv.gz": func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		},
		"rows.csv.zst": func(r io.Reader) (io.Reader, error) {
			return zstd.NewReader(r)
		},
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			rows, err := execute(t, "sweep", "--variant", "scalar", "--runs", "2",
				"--m", "8", "--k", "8", "--n", "8", "--reps", "1", "--output", path)
			require.NoError(t, err)
			assert.Empty(t, rows, "nothing goes to stdout")

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			r, err := decode(f)
			require.NoError(t, err)
			got, err := csv.NewReader(r).ReadAll()
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, kernelbench.Header(), got[0])
			assert.Equal(t, "1", column(got, 2, "run"))
		})
	}
}

func TestSweepOutputBadPath(t *testing.T) {
	_, err := execute(t, "sweep", "--variant", "scalar", "--reps", "1",
		"--output", filepath.Join(t.TempDir(), "missing", "rows.csv"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestCPUInfo(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cpuinfo"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dispatch")
	assert.Contains(t, out.String(), "cache line")
	assert.Contains(t, out.String(), "uniform, band, blockdiag")
}

func TestSize(t *testing.T) {
	assert.Equal(t, "?", size(0))
	assert.Equal(t, "48KiB", size(48<<10))
	assert.Equal(t, "2MiB", size(2<<20))
	assert.Equal(t, "512B", size(512))
}
