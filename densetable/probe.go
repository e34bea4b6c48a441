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

package densetable

import (
	"math/bits"

	"github.com/gopherhash/triprobe/internal/fib"
)

// probeSeq walks the triangular sequence of single-slot offsets for a
// key's hash: slot 0 is the Fibonacci-mixed index, and step k advances
// the cursor by k slots, giving cumulative offset T(k) for the k-th
// triangular number. This table does not wrap; once the cumulative
// offset would run past the end of the table, the cursor is re-anchored
// to a fresh position derived from a rotated hash (see reanchor)
// instead.
type probeSeq struct {
	h        uint32
	shift    uint
	capacity uint32
	cursor   uint32
	step     uint32
	anchors  uint32
}

func newProbeSeq(h uint32, shift uint, capacity uint32) probeSeq {
	return probeSeq{
		h:        h,
		shift:    shift,
		capacity: capacity,
		cursor:   fib.Index(h, shift),
		step:     1,
	}
}

// advance moves to the next slot in the triangular sequence. It reports
// whether doing so would run the cursor past the end of the table; the
// caller re-anchors when it does.
func (s *probeSeq) advance() (overran bool) {
	s.cursor += s.step
	s.step++
	return s.cursor >= s.capacity
}

// reanchor repositions the cursor using a rotated hash mixed with the
// number of re-anchors performed so far, then resumes triangular probing
// from the new position. The rotation direction (right, vs. simdtable's
// left) is this table's only divergence from the sibling's re-anchor
// step; it keeps the two tables from re-anchoring onto the same
// slot for the same key, for what that is worth.
func (s *probeSeq) reanchor() {
	s.anchors++
	mixed := bits.RotateLeft32(s.h, 1) ^ (s.anchors * fib.Golden32)
	s.cursor = fib.Index(mixed, s.shift)
	s.step = 1
}

// exhausted reports whether this probe has re-anchored an implausible
// number of times. At the default load factor of 0.5 there is always
// plenty of empty room; exceeding the bound indicates the table's
// invariants have been violated rather than an unlucky probe.
func (s *probeSeq) exhausted() bool {
	return s.anchors > 4+2*s.capacity
}
