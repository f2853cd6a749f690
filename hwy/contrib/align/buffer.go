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

// Package align provides cache-line-aligned float32 buffers with
// reproducible contents for benchmark operands.
//
// Allocation failure is not reported: a benchmark cannot produce a timing
// sample without its operands, so invalid requests panic and out-of-memory
// is left to the runtime.
package align

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
	"unsafe"

	"github.com/ajroetker/kernelbench/hwy"
)

// MinAlignment is the smallest alignment handed out: one cache line, which
// also covers the widest (512-bit) vector register.
const MinAlignment = 64

// DefaultAlignment returns max(MinAlignment, detected cache line size).
func DefaultAlignment() int {
	return max(MinAlignment, hwy.CacheLineSize())
}

// Buffer owns count float32 values starting on an aligned address.
//
// A Buffer is exclusively owned by the scope that allocated it. After
// Release it is the empty sentinel: nil data, zero count.
type Buffer struct {
	data      []float32
	alignment int
}

// Allocate returns a buffer of count floats whose first element is aligned
// to alignment bytes. Alignments below MinAlignment are raised to it.
//
// Panics if alignment is not a power of two or count is negative.
func Allocate(count, alignment int) *Buffer {
	if count < 0 {
		panic(fmt.Sprintf("align: negative count %d", count))
	}
	if alignment <= 0 || bits.OnesCount(uint(alignment)) != 1 {
		panic(fmt.Sprintf("align: alignment %d is not a power of two", alignment))
	}
	alignment = max(alignment, MinAlignment)
	return &Buffer{
		data:      allocFloat32(count, alignment),
		alignment: alignment,
	}
}

// allocFloat32 over-allocates by alignment-1 bytes and slices from the
// first aligned offset. The returned slice keeps the backing array alive.
func allocFloat32(count, alignment int) []float32 {
	if count == 0 {
		return []float32{}
	}
	raw := make([]byte, count*4+alignment-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := int((uintptr(alignment) - addr%uintptr(alignment)) % uintptr(alignment))
	ptr := unsafe.Pointer(&raw[offset])
	return unsafe.Slice((*float32)(ptr), count)
}

// Floats returns the buffer contents. The slice aliases the buffer and must
// not be used after Release.
func (b *Buffer) Floats() []float32 {
	return b.data
}

// Len returns the number of floats, or 0 after Release.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Alignment returns the byte alignment the buffer was allocated with.
func (b *Buffer) Alignment() int {
	return b.alignment
}

// Released reports whether the buffer is the empty sentinel.
func (b *Buffer) Released() bool {
	return b.data == nil
}

// FillRandom fills the buffer with values uniform in [-1, 1) drawn from a
// generator seeded with seed. Equal seeds give bit-identical contents.
func (b *Buffer) FillRandom(seed uint64) {
	FillRandom(b.data, seed)
}

// Zero clears every element.
func (b *Buffer) Zero() {
	Zero(b.data)
}

// Release drops the memory and resets b to the empty sentinel. Releasing
// the sentinel again does nothing.
func (b *Buffer) Release() {
	b.data = nil
	b.alignment = 0
}

// NewRand returns the deterministic generator used for all synthetic data.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FillRandom fills dst with values uniform in [-1, 1) from NewRand(seed).
func FillRandom(dst []float32, seed uint64) {
	r := NewRand(seed)
	for i := range dst {
		dst[i] = r.Float32()*2 - 1
	}
}

// Zero clears dst.
func Zero(dst []float32) {
	clear(dst)
}

// IsAligned reports whether the first element of s sits on an alignment-byte
// boundary. Empty slices are trivially aligned.
func IsAligned(s []float32, alignment int) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(alignment) == 0
}
