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

package timing

// Model is an analytic cost model of one kernel call.
type Model interface {
	// FLOPs returns the floating-point operations per call.
	FLOPs() float64
	// Bytes returns the estimated bytes moved per call.
	Bytes() float64
}

// GEMMModel models dense C += A*B with float32 operands.
type GEMMModel struct {
	M, K, N int
}

// FLOPs is one multiply and one add per (i, t, j).
func (g GEMMModel) FLOPs() float64 {
	return 2 * float64(g.M) * float64(g.K) * float64(g.N)
}

// Bytes counts A and B read once and C read and written once.
func (g GEMMModel) Bytes() float64 {
	m, k, n := float64(g.M), float64(g.K), float64(g.N)
	return 4 * (m*k + k*n + 2*m*n)
}

// SpMMModel models C = A*B with A in CSR form.
type SpMMModel struct {
	M, N int
	NNZ  int
}

// FLOPs is one multiply-add per non-zero per output column.
func (s SpMMModel) FLOPs() float64 {
	return 2 * float64(s.NNZ) * float64(s.N)
}

// Bytes counts the CSR entries (value and column index), one B row segment
// per non-zero and the C write, with C counted at 8 bytes per element.
func (s SpMMModel) Bytes() float64 {
	nnz, m, n := float64(s.NNZ), float64(s.M), float64(s.N)
	return nnz*8 + nnz*n*4 + m*n*8
}

// Metrics are the derived figures of one benchmark run.
type Metrics struct {
	Seconds       float64
	GFLOPS        float64
	BytesEstimate float64
	Intensity     float64
	BandwidthGBps float64
	P50us         float64
	P95us         float64
	P99us         float64
}

const minSeconds = 1e-12

// Derive computes Metrics from the median of s under model m. Throughput
// divides by at least 1ps and intensity by at least one byte.
func Derive(s Summary, m Model) Metrics {
	seconds := max(s.Median, minSeconds)
	flops, bytes := m.FLOPs(), m.Bytes()
	return Metrics{
		Seconds:       s.Median,
		GFLOPS:        flops / seconds / 1e9,
		BytesEstimate: bytes,
		Intensity:     flops / max(1, bytes),
		BandwidthGBps: bytes / seconds / 1e9,
		P50us:         s.P50 * 1e6,
		P95us:         s.P95 * 1e6,
		P99us:         s.P99 * 1e6,
	}
}

// CyclesEstimate converts seconds to cycles at a nominal frequency.
func CyclesEstimate(seconds, freqMHz float64) float64 {
	return seconds * freqMHz * 1e6
}
