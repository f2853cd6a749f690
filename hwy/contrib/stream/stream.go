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

// Package stream estimates sustainable memory bandwidth with a STREAM-style
// triad, a[i] = b[i] + s*c[i], independent of the matrix kernels.
package stream

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/kernelbench/hwy/contrib/align"
	"github.com/ajroetker/kernelbench/hwy/contrib/workerpool"
)

const (
	// DefaultN is the array length used by Bandwidth callers: 64 MiB of
	// float32 per array, large enough to defeat the last-level cache.
	DefaultN = 64 << 20 / 4

	// DefaultIters is the number of timed triad passes.
	DefaultIters = 10

	// Scalar is the triad multiplier.
	Scalar float32 = 1.1

	// touchesPerElement counts the float32 streams accounted per element:
	// read b, read c, write a and the write-allocate read of a.
	touchesPerElement = 4

	minElapsed = 1e-9
)

// Triad computes a[i] = b[i] + s*c[i] for every i, splitting the index
// range statically over pool. The product is rounded to float32 before the
// add, so the result is bit-identical to the scalar expression regardless
// of FMA availability.
func Triad(pool *workerpool.Pool, a, b, c []float32, s float32) {
	n := len(a)
	if len(b) < n || len(c) < n {
		panic("stream: b or c shorter than a")
	}
	pool.ParallelFor(n, func(start, end int) {
		aa, bb, cc := a[start:end], b[start:end], c[start:end]
		for i := range aa {
			aa[i] = bb[i] + float32(s*cc[i])
		}
	})
}

// Result is the outcome of one probe run.
type Result struct {
	N            int
	Iters        int
	Seconds      float64
	BytesPerIter float64
	GBps         float64
}

func (r Result) String() string {
	return fmt.Sprintf("triad n=%d iters=%d: %.3f GB/s (%.6fs)", r.N, r.Iters, r.GBps, r.Seconds)
}

// Probe owns the three triad arrays.
type Probe struct {
	a, b, c *align.Buffer
}

// NewProbe allocates three aligned arrays of n floats. a is zeroed; b and c
// receive reproducible random contents derived from seed. The arrays are
// filled concurrently so the first touch is spread over several threads.
func NewProbe(n int, seed uint64) *Probe {
	alignment := align.DefaultAlignment()
	p := &Probe{
		a: align.Allocate(n, alignment),
		b: align.Allocate(n, alignment),
		c: align.Allocate(n, alignment),
	}

	var g errgroup.Group
	g.Go(func() error { p.a.Zero(); return nil })
	g.Go(func() error { p.b.FillRandom(seed ^ 0xB); return nil })
	g.Go(func() error { p.c.FillRandom(seed ^ 0xC); return nil })
	_ = g.Wait() // fills cannot fail

	return p
}

// A returns the destination array.
func (p *Probe) A() []float32 { return p.a.Floats() }

// B returns the first source array.
func (p *Probe) B() []float32 { return p.b.Floats() }

// C returns the scaled source array.
func (p *Probe) C() []float32 { return p.c.Floats() }

// Len returns the array length.
func (p *Probe) Len() int { return p.a.Len() }

// Run executes iters triad passes and reports the achieved bandwidth.
// iters <= 0 is treated as 1.
func (p *Probe) Run(pool *workerpool.Pool, iters int) Result {
	iters = max(iters, 1)
	n := p.Len()
	a, b, c := p.A(), p.B(), p.C()

	start := time.Now()
	for range iters {
		Triad(pool, a, b, c, Scalar)
	}
	seconds := max(time.Since(start).Seconds(), minElapsed)

	bytesPerIter := float64(n) * touchesPerElement * 4
	return Result{
		N:            n,
		Iters:        iters,
		Seconds:      seconds,
		BytesPerIter: bytesPerIter,
		GBps:         bytesPerIter * float64(iters) / seconds / 1e9,
	}
}

// Release frees the arrays. The probe must not be used afterwards.
func (p *Probe) Release() {
	p.a.Release()
	p.b.Release()
	p.c.Release()
}

// Bandwidth allocates a probe of n floats, runs it iters times and returns
// GB/s.
func Bandwidth(pool *workerpool.Pool, n, iters int, seed uint64) float64 {
	p := NewProbe(n, seed)
	defer p.Release()
	return p.Run(pool, iters).GBps
}
