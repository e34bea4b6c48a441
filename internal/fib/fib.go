// Copyright 2026 The Triprobe Authors
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

// Package fib is the shared hashing discipline for the triprobe table
// family: Fibonacci index mixing and the power-of-two capacity math that
// every probe engine in the module builds on.
package fib

import "math/bits"

// Golden32 is the 32-bit Fibonacci/golden-ratio multiplier. Its low bits
// distribute the high bits of a hash into the positions that matter once
// the product is shifted down, which is what lets Index replace `mod
// capacity` with a shift over a power-of-two capacity.
const Golden32 = 0x9E3779B9

// Index mixes h with the golden-ratio constant and shifts the product
// down by shift, producing a value in [0, capacity) when shift was
// computed by Shift(capacity) or ShiftWide(capacity).
func Index(h uint32, shift uint) uint32 {
	return (h * Golden32) >> shift
}

// Fingerprint7 extracts the low 7 bits of h. The high bit is always zero,
// which is what lets metadata bytes distinguish a live fingerprint from
// the two sentinel states (both of which set the high bit).
func Fingerprint7(h uint32) uint8 {
	return uint8(h & 0x7f)
}

// Shift returns 32 - log2(capacity), the shift amount used by the SIMD
// and scalar dense tables (spec invariant 5).
func Shift(capacity uint32) uint {
	return 32 - Log2(capacity)
}

// ShiftWide returns 33 - log2(capacity), the shift amount used by the
// linear table, which mixes one extra bit before truncating to the index
// range.
func ShiftWide(capacity uint32) uint {
	return 33 - Log2(capacity)
}

// Log2 returns log2(capacity) for a capacity that is guaranteed to be a
// power of two.
func Log2(capacity uint32) uint {
	return uint(bits.TrailingZeros32(capacity))
}

// NextPow2 rounds n up to the next power of two, floored at min (which
// must itself be a power of two). It is used at construction time to
// normalize a caller-requested initial capacity.
func NextPow2(n, min uint32) uint32 {
	if n <= min {
		return min
	}
	return uint32(1) << bits.Len32(n-1)
}
