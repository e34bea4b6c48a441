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

//go:build amd64 && !purego

package simdtable

import "github.com/dolthub/swiss/simd"

// vectorSupported is true wherever we have a real 128-bit byte-compare
// primitive wired in. amd64 always has SSE2, which is what
// dolthub/swiss/simd targets.
const vectorSupported = true

// matchGroup compares all 16 metadata bytes in g against h2 in a single
// vector instruction, returning a bit per matching slot.
func matchGroup(g *[groupSize]int8, h2 int8) bitset {
	return bitset(simd.MatchMetadata(g, h2))
}

// matchGroupEmpty compares all 16 metadata bytes in g against the empty
// sentinel in a single vector instruction.
func matchGroupEmpty(g *[groupSize]int8) bitset {
	return bitset(simd.MatchMetadata(g, empty))
}
