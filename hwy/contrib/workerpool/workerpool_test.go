// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForStaticRanges(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var mu sync.Mutex
	var got [][2]int
	pool.ParallelFor(10, func(start, end int) {
		mu.Lock()
		got = append(got, [2]int{start, end})
		mu.Unlock()
	})

	want := Ranges(10, 4)
	if len(got) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(got), len(want))
	}
	seen := make(map[[2]int]bool)
	for _, r := range got {
		seen[r] = true
	}
	for _, r := range want {
		if !seen[r] {
			t.Errorf("range %v not executed; got %v", r, got)
		}
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		n, workers int
		want       [][2]int
	}{
		{10, 4, [][2]int{{0, 3}, {3, 6}, {6, 9}, {9, 10}}},
		{8, 4, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{5, 1, [][2]int{{0, 5}}},
		{0, 4, nil},
	}
	for _, tt := range tests {
		got := Ranges(tt.n, tt.workers)
		if len(got) != len(tt.want) {
			t.Errorf("Ranges(%d, %d) = %v, want %v", tt.n, tt.workers, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Ranges(%d, %d) = %v, want %v", tt.n, tt.workers, got, tt.want)
				break
			}
		}
	}
}

func TestParallelForBlocks(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	n, block := 50, 8
	var mu sync.Mutex
	covered := make([]int, n)
	pool.ParallelForBlocks(n, block, func(start, end int) {
		if start%block != 0 {
			t.Errorf("range start %d not on a block boundary", start)
		}
		if end != n && end%block != 0 {
			t.Errorf("range end %d not on a block boundary", end)
		}
		mu.Lock()
		for i := start; i < end; i++ {
			covered[i]++
		}
		mu.Unlock()
	})

	for i, c := range covered {
		if c != 1 {
			t.Errorf("element %d covered %d times", i, c)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Test with n smaller than workers
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestNilPoolRunsInline(t *testing.T) {
	var pool *Pool
	var calls int
	pool.ParallelFor(10, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("got range [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if pool.NumWorkers() != 1 {
		t.Errorf("NumWorkers() = %d, want 1", pool.NumWorkers())
	}
	pool.Close()
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

// BenchmarkPoolOverhead measures the cost of one empty parallel region.
func BenchmarkPoolOverhead(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for i := 0; i < b.N; i++ {
		pool.ParallelFor(pool.NumWorkers(), func(start, end int) {})
	}
}
