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

import "errors"

// ErrUnsupportedPlatform is returned by New when the running binary has
// no wired 128-bit byte-comparison vector primitive: neither amd64 nor
// arm64 (see match_amd64.go, match_arm64.go), or built with -tags purego.
var ErrUnsupportedPlatform = errors.New("simdtable: platform does not provide a 128-bit vector byte-compare primitive")
