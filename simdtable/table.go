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

// Package simdtable is a dense open-addressing hash table that scans
// 16-slot metadata groups with a single vector compare to locate,
// insert, update, and delete entries at loads up to 0.9. It shares the
// Fibonacci index mixing and triangular probing discipline used by
// sibling packages densetable and lineartable.
//
// A Table is NOT safe for concurrent use.
package simdtable

import (
	"fmt"

	"github.com/gopherhash/triprobe/internal/fib"
)

// Entry holds one key/value pair. It is meaningful only while its
// parallel metadata slot carries a fingerprint.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// minCapacity is the smallest capacity a Table will allocate: one full
// group.
const minCapacity = groupSize

// Table is a dense hash table using 16-wide vector-compared metadata
// groups and triangular probing. The zero value is not usable; construct
// one with New.
type Table[K comparable, V any] struct {
	hash       func(K) uint32
	equal      func(a, b K) bool
	allocator  Allocator[K, V]
	meta       []int8
	entries    []Entry[K, V]
	capacity   uint32
	shift      uint
	count      int
	loadFactor float64
}

// New constructs a Table with the given initial capacity (rounded up to
// a power of two, floored at 16) and hash function. hash must be a pure
// function of key that returns the same 32-bit value every time it is
// called with an equal key; the table never caches it.
//
// New fails with ErrUnsupportedPlatform if this binary has no wired
// 128-bit vector byte-compare primitive for the current architecture.
func New[K comparable, V any](initialCapacity int, hash func(K) uint32, opts ...Option[K, V]) (*Table[K, V], error) {
	if !vectorSupported {
		return nil, ErrUnsupportedPlatform
	}

	t := &Table[K, V]{
		hash:       hash,
		equal:      func(a, b K) bool { return a == b },
		allocator:  defaultAllocator[K, V]{},
		loadFactor: 0.9,
	}
	for _, opt := range opts {
		opt.apply(t)
	}
	if t.loadFactor > 0.9 {
		t.loadFactor = 0.9
	}

	capacity := fib.NextPow2(clampNonNegative(initialCapacity), minCapacity)
	t.allocate(capacity)
	return t, nil
}

func clampNonNegative(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}

func (t *Table[K, V]) allocate(capacity uint32) {
	t.meta = t.allocator.AllocMeta(int(capacity) + groupSize)
	for i := range t.meta {
		t.meta[i] = empty
	}
	t.entries = t.allocator.AllocEntries(int(capacity) + groupSize)
	t.capacity = capacity
	t.shift = fib.Shift(capacity)
}

func (t *Table[K, V]) groupAt(cursor uint32) *[groupSize]int8 {
	return (*[groupSize]int8)(t.meta[cursor : cursor+groupSize])
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int {
	return t.count
}

// Capacity returns the current capacity (a power of two).
func (t *Table[K, V]) Capacity() int {
	return int(t.capacity)
}

// Clear removes every entry. Capacity is preserved.
func (t *Table[K, V]) Clear() {
	for i := range t.meta {
		t.meta[i] = empty
	}
	var zero Entry[K, V]
	for i := range t.entries {
		t.entries[i] = zero
	}
	t.count = 0
	t.checkInvariants()
}

// find returns the index of key's entry, searching by h2 match within
// each probe group and falling through to a key comparison on every
// match (the h2 filter rarely admits a false positive, but correctness
// never depends on it not doing so). It returns ok=false as soon as a
// probe group contains an empty slot, which terminates every search
// exactly once the key's probe path has been fully examined.
func (t *Table[K, V]) find(key K, h uint32) (uint32, bool) {
	h2 := int8(fib.Fingerprint7(h))
	seq := newProbeSeq(h, t.shift, t.capacity)
	for {
		g := t.groupAt(seq.group())
		match := matchGroup(g, h2)
		for !match.empty() {
			bit := match.next()
			idx := seq.group() + bit
			if t.equal(t.entries[idx].Key, key) {
				return idx, true
			}
			match = match.clear(bit)
		}

		if !matchGroupEmpty(g).empty() {
			return 0, false
		}

		if seq.advance() {
			seq.reanchor()
			if seq.exhausted() {
				panic(fmt.Sprintf("simdtable: probe for key %v exhausted re-anchor budget without finding an empty slot", key))
			}
		}
	}
}

// Get returns the value stored for key, if any.
func (t *Table[K, V]) Get(key K) (V, bool) {
	idx, ok := t.find(key, t.hash(key))
	if !ok {
		var zero V
		return zero, false
	}
	return t.entries[idx].Value, true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.find(key, t.hash(key))
	return ok
}

// Update overwrites the value for an existing key. It reports false, and
// leaves the table unchanged, if key is absent.
func (t *Table[K, V]) Update(key K, value V) bool {
	idx, ok := t.find(key, t.hash(key))
	if !ok {
		return false
	}
	t.entries[idx].Value = value
	return true
}

// Remove deletes key's entry if present, reporting whether it was.
func (t *Table[K, V]) Remove(key K) bool {
	idx, ok := t.find(key, t.hash(key))
	if !ok {
		return false
	}
	t.entries[idx] = Entry[K, V]{}
	t.meta[idx] = tombstone
	t.count--
	trace("remove(%v): index=%d count=%d\n", key, idx, t.count)
	t.checkInvariants()
	return true
}

// Insert adds (key, value) if key is not already present. It reports
// true on a new insertion; if key already exists, the table is left
// unchanged and it reports false.
func (t *Table[K, V]) Insert(key K, value V) bool {
	h := t.hash(key)
	if _, found := t.find(key, h); found {
		return false
	}
	if float64(t.count+1) > float64(t.capacity)*t.loadFactor {
		t.rehash()
	}
	t.uncheckedInsert(h, key, value)
	t.count++
	trace("insert(%v, %v): count=%d capacity=%d\n", key, value, t.count, t.capacity)
	t.checkInvariants()
	return true
}

// uncheckedInsert places an entry known not to already be in the table,
// preferring the first tombstone in each probe group over the first
// empty slot. If the placement scan would overrun the table before
// finding a slot, it rehashes (which always leaves enough room) and
// retries from scratch — matching the documented contract, this does not
// re-anchor the placement scan itself.
func (t *Table[K, V]) uncheckedInsert(h uint32, key K, value V) {
	h2 := int8(fib.Fingerprint7(h))
	seq := newProbeSeq(h, t.shift, t.capacity)
	for {
		cursor := seq.group()
		g := t.groupAt(cursor)
		if slot, ok := firstTombstoneOrEmpty(g); ok && cursor+slot < t.capacity {
			idx := cursor + slot
			t.entries[idx] = Entry[K, V]{Key: key, Value: value}
			t.meta[idx] = h2
			return
		}
		if seq.advance() {
			trace("insert(%v): placement scan overran capacity=%d, rehashing\n", key, t.capacity)
			t.rehash()
			t.uncheckedInsert(h, key, value)
			return
		}
	}
}

// rehash doubles capacity and reinserts every live entry via
// uncheckedInsert, dropping tombstones in the process. Live count is
// preserved.
func (t *Table[K, V]) rehash() {
	oldMeta, oldEntries, oldCapacity := t.meta, t.entries, t.capacity
	t.allocate(oldCapacity * 2)
	for i := uint32(0); i < oldCapacity; i++ {
		if !isLive(oldMeta[i]) {
			continue
		}
		e := oldEntries[i]
		t.uncheckedInsert(t.hash(e.Key), e.Key, e.Value)
	}
	t.allocator.FreeMeta(oldMeta)
	t.allocator.FreeEntries(oldEntries)
	trace("rehash: capacity %d -> %d, count=%d\n", oldCapacity, t.capacity, t.count)
}

// All yields every live (key, value) pair, from the highest occupied
// index to the lowest. The reverse order lets a caller remove the
// just-yielded entry without disturbing positions still to be visited;
// any other mutation during iteration invalidates it.
func (t *Table[K, V]) All(yield func(K, V) bool) {
	for i := int64(t.capacity) - 1; i >= 0; i-- {
		if isLive(t.meta[i]) {
			e := t.entries[i]
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Copy inserts every live entry of other into t via the public Insert
// path (so duplicates already present in t are left untouched).
func (t *Table[K, V]) Copy(other *Table[K, V]) {
	other.All(func(k K, v V) bool {
		t.Insert(k, v)
		return true
	})
}

// IndexOf returns the slot index holding key, or -1 if key is absent.
// Intended for test introspection, not for production use.
func (t *Table[K, V]) IndexOf(key K) int {
	for i := uint32(0); i < t.capacity; i++ {
		if isLive(t.meta[i]) && t.equal(t.entries[i].Key, key) {
			return int(i)
		}
	}
	return -1
}

// checkInvariants walks the whole table verifying that every live slot
// is reachable via find and that the live count matches t.count. It is a
// no-op unless the invariants debug const is flipped on.
func (t *Table[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	live := 0
	for i := uint32(0); i < t.capacity; i++ {
		if !isLive(t.meta[i]) {
			continue
		}
		live++
		key := t.entries[i].Key
		if idx, ok := t.find(key, t.hash(key)); !ok || idx != i {
			panic(fmt.Sprintf("simdtable: invariant violated: live key %v at slot %d not found by find() (ok=%v idx=%d)", key, i, ok, idx))
		}
	}
	if live != t.count {
		panic(fmt.Sprintf("simdtable: invariant violated: counted %d live slots, count=%d", live, t.count))
	}
}
