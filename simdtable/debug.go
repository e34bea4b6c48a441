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

import "fmt"

// debug gates probe tracing. Left off in committed code; flip it locally
// when chasing a probe-sequence bug.
const debug = false

// invariants gates the post-mutation consistency walk in
// checkInvariants. Expensive (O(capacity) per call), so it stays off
// outside of tests that opt in explicitly.
const invariants = false

func trace(format string, args ...any) {
	if debug {
		fmt.Printf(format, args...)
	}
}
