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

//go:build (!amd64 && !arm64) || purego

package simdtable

// vectorSupported is false on every architecture where we have not wired
// a real vector byte-compare primitive (or where the caller built with
// -tags purego to force this unsupported path for testing). New refuses to
// construct a table in this case rather than silently falling back to a
// slow per-byte loop dressed up as "SIMD" — see ErrUnsupportedPlatform.
const vectorSupported = false

func matchGroup(g *[groupSize]int8, h2 int8) bitset {
	panic("simdtable: matchGroup called without vector support; New should have refused construction")
}

func matchGroupEmpty(g *[groupSize]int8) bitset {
	panic("simdtable: matchGroupEmpty called without vector support; New should have refused construction")
}
