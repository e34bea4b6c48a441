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

//go:build arm64 && !purego

package simdtable

import "github.com/dolthub/swiss/simd"

// vectorSupported is true on arm64: dolthub/swiss/simd provides a NEON
// implementation of the same 16-byte compare primitive used on amd64.
const vectorSupported = true

func matchGroup(g *[groupSize]int8, h2 int8) bitset {
	return bitset(simd.MatchMetadata(g, h2))
}

func matchGroupEmpty(g *[groupSize]int8) bitset {
	return bitset(simd.MatchMetadata(g, empty))
}
