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

// Package triprobe is the umbrella module for a family of three
// in-process, single-threaded open-addressing hash tables that share a
// common hashing discipline: Fibonacci index mixing, power-of-two
// capacity, and triangular-number probing.
//
//   - simdtable: a dense hash table that scans 16-slot metadata groups
//     with a single vector compare, the SIMD-accelerated variant.
//   - densetable: a scalar dense hash table using unit-stride triangular
//     probing, no vector instructions required.
//   - lineartable: a Robin-Hood linear-probing table restricted to
//     primitive numeric keys with a bounded probe-sequence length.
//
// The shared mixing step lives in internal/fib. None of the three tables
// is safe for concurrent use; callers must serialize access externally.
package triprobe
