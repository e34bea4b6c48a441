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

package simdtable

import "math/bits"

// groupSize is the width, in slots, of a single vector-compared metadata
// group.
const groupSize = 16

// Each metadata byte is either a sentinel or a 7-bit fingerprint. Both
// sentinels have the high bit set (so they read negative as int8);
// fingerprints never do.
const (
	empty     int8 = -128 // 0b1000_0000
	tombstone int8 = -2   // 0b1111_1110
)

func isLive(c int8) bool {
	return c >= 0
}

// bitset is a per-byte match mask over a 16-slot group: bit i set means
// slot i matched. Only the low 16 bits are ever meaningful.
type bitset uint16

func (b bitset) empty() bool {
	return b == 0
}

func (b bitset) next() uint32 {
	return uint32(bits.TrailingZeros16(uint16(b)))
}

func (b bitset) clear(i uint32) bitset {
	return b &^ (1 << i)
}

// firstTombstoneOrEmpty returns the offset of the first tombstone slot in
// the group, or, if there is none, the first empty slot. It reports false
// if the group has neither, i.e. it is entirely full of live entries.
//
// This only looks within the 16 slots of the current group. It does not
// look ahead to a later group for an earlier tombstone, matching the
// documented contract in the design notes: tombstone preference is
// per-group, not table-wide.
func firstTombstoneOrEmpty(g *[groupSize]int8) (uint32, bool) {
	if m := matchGroup(g, tombstone); !m.empty() {
		return m.next(), true
	}
	if m := matchGroupEmpty(g); !m.empty() {
		return m.next(), true
	}
	return 0, false
}
