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

// Package densetable is a scalar open-addressing hash table sharing the
// Fibonacci index mixing and triangular probing discipline of the
// sibling simdtable package, but walking the probe sequence one slot at
// a time instead of in 16-wide vector-compared groups. It needs no
// vector instructions and carries no per-slot fingerprint: every probe
// step that lands on an occupied slot with a non-matching key costs a
// full key comparison.
//
// A Table is NOT safe for concurrent use.
package densetable

import (
	"fmt"

	"github.com/gopherhash/triprobe/internal/fib"
)

// Metadata is a plain tri-state byte: there is no fingerprint bit to
// spare, unlike simdtable's metadata.
const (
	metaEmpty     uint8 = 0
	metaTombstone uint8 = 1
	metaFull      uint8 = 2
)

const minCapacity = 8

// Entry holds one key/value pair. It is meaningful only while its
// parallel metadata slot is metaFull.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Table is a dense hash table using one-slot-at-a-time triangular
// probing. The zero value is not usable; construct one with New.
type Table[K comparable, V any] struct {
	hash       func(K) uint32
	equal      func(a, b K) bool
	allocator  Allocator[K, V]
	meta       []uint8
	entries    []Entry[K, V]
	capacity   uint32
	shift      uint
	count      int
	loadFactor float64
}

// New constructs a Table with the given initial capacity (rounded up to
// a power of two, floored at 8) and hash function.
func New[K comparable, V any](initialCapacity int, hash func(K) uint32, opts ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		hash:       hash,
		equal:      func(a, b K) bool { return a == b },
		allocator:  defaultAllocator[K, V]{},
		loadFactor: 0.5,
	}
	for _, opt := range opts {
		opt.apply(t)
	}
	if t.loadFactor > 0.75 {
		t.loadFactor = 0.75
	}
	capacity := fib.NextPow2(clampNonNegative(initialCapacity), minCapacity)
	t.allocate(capacity)
	return t
}

func clampNonNegative(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}

func (t *Table[K, V]) allocate(capacity uint32) {
	t.meta = t.allocator.AllocMeta(int(capacity))
	t.entries = t.allocator.AllocEntries(int(capacity))
	t.capacity = capacity
	t.shift = fib.Shift(capacity)
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return t.count }

// Capacity returns the current capacity (a power of two).
func (t *Table[K, V]) Capacity() int { return int(t.capacity) }

// Clear removes every entry. Capacity is preserved.
func (t *Table[K, V]) Clear() {
	for i := range t.meta {
		t.meta[i] = metaEmpty
	}
	var zero Entry[K, V]
	for i := range t.entries {
		t.entries[i] = zero
	}
	t.count = 0
	t.checkInvariants()
}

// find walks the probe sequence for (key, h), stopping at the first
// empty slot (a miss) or the first full slot whose key matches (a hit).
// Tombstones and non-matching full slots are skipped over; the returned
// index on a miss is the empty slot where Insert would place a new
// entry for this key, which is how Insert and find share one walk.
func (t *Table[K, V]) find(key K, h uint32) (idx uint32, hit bool) {
	seq := newProbeSeq(h, t.shift, t.capacity)
	for {
		cursor := seq.cursor
		switch t.meta[cursor] {
		case metaEmpty:
			return cursor, false
		case metaFull:
			if t.equal(t.entries[cursor].Key, key) {
				return cursor, true
			}
		}
		// metaTombstone, or a non-matching metaFull: keep probing.
		if seq.advance() {
			seq.reanchor()
			if seq.exhausted() {
				panic(fmt.Sprintf("densetable: probe for key %v exhausted re-anchor budget without finding an empty slot", key))
			}
		}
	}
}

// Get returns the value stored for key, if any.
func (t *Table[K, V]) Get(key K) (V, bool) {
	idx, hit := t.find(key, t.hash(key))
	if !hit {
		var zero V
		return zero, false
	}
	return t.entries[idx].Value, true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, hit := t.find(key, t.hash(key))
	return hit
}

// Update overwrites the value for an existing key, reporting false and
// leaving the table unchanged if key is absent.
func (t *Table[K, V]) Update(key K, value V) bool {
	idx, hit := t.find(key, t.hash(key))
	if !hit {
		return false
	}
	t.entries[idx].Value = value
	return true
}

// Remove deletes key's entry if present, leaving a tombstone behind (no
// backshift). Tombstones are never reused by a later Insert of a
// different key — only a rehash reclaims them — which is why repeated
// insert/remove churn can grow capacity faster than live count does.
func (t *Table[K, V]) Remove(key K) bool {
	idx, hit := t.find(key, t.hash(key))
	if !hit {
		return false
	}
	t.entries[idx] = Entry[K, V]{}
	t.meta[idx] = metaTombstone
	t.count--
	trace("remove(%v): index=%d count=%d\n", key, idx, t.count)
	t.checkInvariants()
	return true
}

// Insert adds (key, value) if key is not already present, reporting
// true on a new insertion. If key already exists the table is left
// unchanged and it reports false.
func (t *Table[K, V]) Insert(key K, value V) bool {
	h := t.hash(key)
	idx, hit := t.find(key, h)
	if hit {
		return false
	}
	if float64(t.count+1) > float64(t.capacity)*t.loadFactor {
		t.rehash()
		idx, _ = t.find(key, h)
	}
	t.entries[idx] = Entry[K, V]{Key: key, Value: value}
	t.meta[idx] = metaFull
	t.count++
	trace("insert(%v, %v): count=%d capacity=%d\n", key, value, t.count, t.capacity)
	t.checkInvariants()
	return true
}

// uncheckedInsert places an entry known not to already be in the table,
// at the first empty slot found (never a tombstone — see Remove). Used
// only by rehash, where old entries are known-unique.
func (t *Table[K, V]) uncheckedInsert(h uint32, key K, value V) {
	seq := newProbeSeq(h, t.shift, t.capacity)
	for {
		cursor := seq.cursor
		if t.meta[cursor] == metaEmpty {
			t.entries[cursor] = Entry[K, V]{Key: key, Value: value}
			t.meta[cursor] = metaFull
			return
		}
		if seq.advance() {
			seq.reanchor()
		}
	}
}

// rehash doubles capacity and reinserts every live entry, dropping
// tombstones in the process. Live count is preserved.
func (t *Table[K, V]) rehash() {
	oldMeta, oldEntries, oldCapacity := t.meta, t.entries, t.capacity
	t.allocate(oldCapacity * 2)
	for i := uint32(0); i < oldCapacity; i++ {
		if oldMeta[i] != metaFull {
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
// index to the lowest, so a caller can remove the just-yielded entry
// without disturbing positions still to be visited.
func (t *Table[K, V]) All(yield func(K, V) bool) {
	for i := int64(t.capacity) - 1; i >= 0; i-- {
		if t.meta[i] == metaFull {
			e := t.entries[i]
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Copy inserts every live entry of other into t via the public Insert
// path.
func (t *Table[K, V]) Copy(other *Table[K, V]) {
	other.All(func(k K, v V) bool {
		t.Insert(k, v)
		return true
	})
}

func (t *Table[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	live := 0
	for i := uint32(0); i < t.capacity; i++ {
		if t.meta[i] != metaFull {
			continue
		}
		live++
		key := t.entries[i].Key
		if idx, hit := t.find(key, t.hash(key)); !hit || idx != i {
			panic(fmt.Sprintf("densetable: invariant violated: live key %v at slot %d not found by find() (hit=%v idx=%d)", key, i, hit, idx))
		}
	}
	if live != t.count {
		panic(fmt.Sprintf("densetable: invariant violated: counted %d live slots, count=%d", live, t.count))
	}
}
