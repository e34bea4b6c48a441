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

package lineartable

import (
	"fmt"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

func genKeys(n int) []int32 {
	keys := make([]int32, n)
	for i := range keys {
		keys[i] = int32(i)
	}
	return keys
}

func benchSizes(f func(b *testing.B, keys []int32)) func(b *testing.B) {
	return func(b *testing.B) {
		for _, n := range []int{16, 128, 1024, 16384} {
			keys := genKeys(n)
			b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
				f(b, keys)
			})
		}
	}
}

func BenchmarkGetHit(b *testing.B) {
	perfbench.Open(b)
	b.Run("impl=lineartable", benchSizes(func(b *testing.B, keys []int32) {
		tbl := New[int32, int32](len(keys)*2, identityHash)
		for _, k := range keys {
			tbl.Insert(k, k)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			tbl.Get(keys[i%len(keys)])
		}
	}))
}

func BenchmarkInsertGrow(b *testing.B) {
	perfbench.Open(b)
	b.Run("impl=lineartable", benchSizes(func(b *testing.B, keys []int32) {
		for i := 0; i < b.N; i++ {
			tbl := New[int32, int32](0, identityHash)
			for _, k := range keys {
				tbl.Insert(k, k)
			}
		}
	}))
}

func BenchmarkRemoveReinsert(b *testing.B) {
	perfbench.Open(b)
	b.Run("impl=lineartable", benchSizes(func(b *testing.B, keys []int32) {
		tbl := New[int32, int32](len(keys)*2, identityHash)
		for _, k := range keys {
			tbl.Insert(k, k)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			k := keys[i%len(keys)]
			tbl.Remove(k)
			tbl.Insert(k, k)
		}
	}))
}
