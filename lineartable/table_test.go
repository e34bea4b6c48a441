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
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/gopherhash/triprobe/internal/fib"
)

func identityHash(k int32) uint32 {
	return uint32(k)
}

func TestBasicInsertGetContains(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)

	require.True(t, tbl.Insert(1, 100))
	require.True(t, tbl.Insert(2, 200))
	require.True(t, tbl.Insert(3, 300))

	require.Equal(t, 3, tbl.Count())
	v, ok := tbl.Get(2)
	require.True(t, ok)
	require.EqualValues(t, 200, v)
	require.False(t, tbl.Contains(4))
}

func TestRehashOnOverflow(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)

	for i := int32(1); i <= 9; i++ {
		require.True(t, tbl.Insert(i, i*i))
	}
	require.Equal(t, 32, tbl.Capacity())
	require.Equal(t, 9, tbl.Count())
	for i := int32(1); i <= 9; i++ {
		v, ok := tbl.Get(i)
		require.True(t, ok)
		require.EqualValues(t, i*i, v)
	}
}

func TestRemoveEvens(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)

	for i := int32(1); i <= 100; i++ {
		tbl.Insert(i, i*i)
	}
	for i := int32(2); i <= 100; i += 2 {
		require.True(t, tbl.Remove(i))
	}
	require.Equal(t, 50, tbl.Count())
	require.False(t, tbl.Contains(2))
	require.True(t, tbl.Contains(51))
	v, ok := tbl.Get(99)
	require.True(t, ok)
	require.EqualValues(t, 9801, v)
}

func TestUpdateAndDuplicateInsert(t *testing.T) {
	tbl := New[int32, string](16, identityHash)

	require.True(t, tbl.Insert(42, "a"))
	require.True(t, tbl.Update(42, "b"))
	require.False(t, tbl.Update(43, "x"))

	v, ok := tbl.Get(42)
	require.True(t, ok)
	require.Equal(t, "b", v)
	require.Equal(t, 1, tbl.Count())

	require.False(t, tbl.Insert(42, "c"))
	v, ok = tbl.Get(42)
	require.True(t, ok)
	require.Equal(t, "b", v)
}

func TestAdversarialCollisions(t *testing.T) {
	tbl := New[int32, int32](16, func(k int32) uint32 {
		return uint32(k%16) * 0x01010101
	})

	for i := int32(0); i < 50; i++ {
		require.True(t, tbl.Insert(i, i))
	}
	require.Equal(t, 50, tbl.Count())
	for i := int32(0); i < 50; i++ {
		v, ok := tbl.Get(i)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestClear(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)
	for i := int32(0); i < 20; i++ {
		tbl.Insert(i, i)
	}
	tbl.Clear()
	require.Equal(t, 0, tbl.Count())
	for i := int32(0); i < 20; i++ {
		_, ok := tbl.Get(i)
		require.False(t, ok)
	}
}

func TestIndexOfAndCopy(t *testing.T) {
	src := New[int32, int32](16, identityHash)
	for i := int32(0); i < 10; i++ {
		src.Insert(i, i*10)
	}

	idx := src.IndexOf(5)
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, -1, src.IndexOf(999))

	dst := New[int32, int32](16, identityHash)
	dst.Insert(0, -1) // pre-existing key: Copy must not overwrite it
	dst.Copy(src)

	require.Equal(t, 10, dst.Count())
	v, ok := dst.Get(0)
	require.True(t, ok)
	require.EqualValues(t, -1, v)
	v, ok = dst.Get(7)
	require.True(t, ok)
	require.EqualValues(t, 70, v)
}

func TestAllYieldsExactlyCount(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)
	want := map[int32]int32{}
	for i := int32(0); i < 37; i++ {
		tbl.Insert(i, i*2)
		want[i] = i * 2
	}

	got := map[int32]int32{}
	n := 0
	tbl.All(func(k, v int32) bool {
		n++
		got[k] = v
		return true
	})
	require.Equal(t, tbl.Count(), n)
	require.Equal(t, want, got)
}

func TestAllStopsEarly(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)
	for i := int32(0); i < 20; i++ {
		tbl.Insert(i, i)
	}
	seen := 0
	tbl.All(func(k, v int32) bool {
		seen++
		return seen < 3
	})
	require.Equal(t, 3, seen)
}

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	tbl := New[int32, int32](10, identityHash)
	require.Equal(t, 16, tbl.Capacity())

	tbl2 := New[int32, int32](100, identityHash)
	require.Equal(t, 128, tbl2.Capacity())
}

type countingAllocator[K Number, V any] struct {
	allocInfo, allocEntries, freeInfo, freeEntries int
}

func (a *countingAllocator[K, V]) AllocInfo(n int) []uint8 {
	a.allocInfo++
	return make([]uint8, n)
}

func (a *countingAllocator[K, V]) AllocEntries(n int) []Entry[K, V] {
	a.allocEntries++
	return make([]Entry[K, V], n)
}

func (a *countingAllocator[K, V]) FreeInfo(v []uint8) { a.freeInfo++ }

func (a *countingAllocator[K, V]) FreeEntries(v []Entry[K, V]) { a.freeEntries++ }

func TestWithAllocator(t *testing.T) {
	alloc := &countingAllocator[int32, int32]{}
	tbl := New[int32, int32](16, identityHash, WithAllocator[int32, int32](alloc))

	require.Equal(t, 1, alloc.allocInfo)
	require.Equal(t, 1, alloc.allocEntries)

	for i := int32(1); i <= 9; i++ {
		tbl.Insert(i, i)
	}
	require.Equal(t, 2, alloc.allocInfo)
	require.Equal(t, 1, alloc.freeInfo)
}

// findHashForIndex searches for a 32-bit hash value whose Fibonacci
// index under tbl's current shift equals want, so a test can stage
// specific collisions without reaching into the probe math itself.
func findHashForIndex(tbl *Table[int32, int32], want uint32) uint32 {
	for h := uint32(0); h < 1<<20; h++ {
		if fib.Index(h, tbl.shift) == want {
			return h
		}
	}
	panic("no hash found for requested index")
}

// TestRobinHoodSwapsOnLowerPSL locks in the defining behavior of this
// table: an entry arriving with a higher PSL than the resident
// displaces it, and the displaced entry keeps probing with the PSL it
// had already accumulated.
func TestRobinHoodSwapsOnLowerPSL(t *testing.T) {
	hashes := map[int32]uint32{}
	tbl := New[int32, int32](16, func(k int32) uint32 { return hashes[k] })

	base := fib.Index(0, tbl.shift)
	hashes[1] = findHashForIndex(tbl, base)
	hashes[2] = findHashForIndex(tbl, base+1)
	hashes[3] = findHashForIndex(tbl, base) // collides with key 1's base

	require.True(t, tbl.Insert(1, 10)) // lands at base, PSL 0
	require.True(t, tbl.Insert(2, 20)) // lands at base+1, PSL 0
	require.True(t, tbl.Insert(3, 30)) // displaces key 2 forward

	require.Equal(t, base, uint32(tbl.IndexOf(1)))
	require.Equal(t, base+1, uint32(tbl.IndexOf(3)))
	require.Equal(t, base+2, uint32(tbl.IndexOf(2)))

	for k, want := range map[int32]int32{1: 10, 2: 20, 3: 30} {
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	require.Equal(t, 3, tbl.Count())
}

func TestBackshiftOnRemove(t *testing.T) {
	const sharedHash = 5
	tbl := New[int32, int32](16, func(int32) uint32 { return sharedHash })

	for i := int32(1); i <= 4; i++ {
		require.True(t, tbl.Insert(i, i*10))
	}
	require.True(t, tbl.Remove(1))
	require.Equal(t, 3, tbl.Count())
	for _, k := range []int32{2, 3, 4} {
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.EqualValues(t, k*10, v)
	}
}

func TestRandomizedInsertRemoveStaysConsistent(t *testing.T) {
	tbl := New[int32, int32](16, identityHash)

	rng := rand.New(rand.NewSource(1))
	live := map[int32]int32{}
	for i := 0; i < 5000; i++ {
		k := int32(rng.Intn(500))
		if rng.Intn(2) == 0 {
			if tbl.Insert(k, k*3) {
				live[k] = k * 3
			}
		} else {
			if tbl.Remove(k) {
				delete(live, k)
			}
		}
	}

	require.Equal(t, len(live), tbl.Count())
	for k, v := range live {
		got, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}
