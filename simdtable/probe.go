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

import (
	"math/bits"

	"github.com/gopherhash/triprobe/internal/fib"
)

// probeSeq walks the triangular sequence of 16-slot group starts for a
// key's hash: group 0 starts at the Fibonacci-mixed index, and group k
// advances the cursor by groupSize*k slots, giving cumulative offsets
// groupSize*T(k) for the k-th triangular number T(k). Over a power-of-two
// capacity this would visit every group exactly once if it wrapped; this
// table does not wrap, so once the cumulative offset would run past the
// end of the table, the cursor is re-anchored to a fresh position derived
// from a rotated hash (see reanchor) instead.
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

func (s *probeSeq) group() uint32 {
	return s.cursor
}

// advance moves to the next group in the triangular sequence. It reports
// whether doing so would run the cursor past the end of the table; the
// caller is responsible for deciding what an overrun means (re-anchor for
// a pure lookup, rehash-and-retry for a placement scan — see find and
// uncheckedInsert).
func (s *probeSeq) advance() (overran bool) {
	s.cursor += groupSize * s.step
	s.step++
	return s.cursor >= s.capacity
}

// reanchor repositions the cursor using a rotated hash mixed with the
// number of re-anchors performed so far, then resumes triangular probing
// from the new position. It never needs to wrap: the new cursor is always
// in [0, capacity).
func (s *probeSeq) reanchor() {
	s.anchors++
	mixed := bits.RotateLeft32(s.h, 31) ^ (s.anchors * fib.Golden32)
	s.cursor = fib.Index(mixed, s.shift)
	s.step = 1
}

// exhausted reports whether this probe has re-anchored an implausible
// number of times. With the load factor capped at 0.9 there is always at
// least one empty slot in a well-formed table, so a handful of
// re-anchors is always enough to find it; exceeding the bound indicates
// the table's invariants have been violated (e.g. by a non-deterministic
// hash or equal function) rather than an unlucky probe.
func (s *probeSeq) exhausted() bool {
	return s.anchors > 4+2*(s.capacity/groupSize)
}
