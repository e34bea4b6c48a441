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

// Package lineartable is a Robin-Hood linear-probing hash table for
// primitive numeric keys, sharing the Fibonacci index mixing used by
// sibling packages simdtable and densetable but never re-anchoring: the
// backing arrays carry maxPSL+1 extra padding slots past capacity, so a
// bounded-length linear scan forward from any starting index always
// stays in bounds without wrapping.
//
// A Table is NOT safe for concurrent use.
package lineartable

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/gopherhash/triprobe/internal/fib"
)

// Number is the set of key types this table accepts: any primitive
// numeric type, whose hash can be computed cheaply and deterministically
// without a helper.
type Number interface {
	comparable
	constraints.Integer | constraints.Float
}

// infoEmpty marks an unoccupied slot. An occupied slot's info byte is
// its probe-sequence length plus one, so a PSL of zero (the common case:
// the entry sits at its natural index) is still distinguishable from
// empty.
const infoEmpty uint8 = 0

const minCapacity = 8

// Entry holds one key/value pair. It is meaningful only while its
// parallel info slot is non-empty.
type Entry[K Number, V any] struct {
	Key   K
	Value V
}

// Table is a dense hash table using Robin-Hood linear probing. The zero
// value is not usable; construct one with New.
type Table[K Number, V any] struct {
	hash       func(K) uint32
	allocator  Allocator[K, V]
	info       []uint8
	entries    []Entry[K, V]
	capacity   uint32
	shift      uint
	count      int
	loadFactor float64
	maxPSL     uint32
	currentPSL uint32
}

// New constructs a Table with the given initial capacity (rounded up to
// a power of two, floored at 8) and hash function.
func New[K Number, V any](initialCapacity int, hash func(K) uint32, opts ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		hash:       hash,
		allocator:  defaultAllocator[K, V]{},
		loadFactor: 0.5,
	}
	for _, opt := range opts {
		opt.apply(t)
	}
	if t.loadFactor > 0.9 {
		t.loadFactor = 0.9
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
	maxPSL := maxPSLFor(capacity, t.loadFactor)
	padded := int(capacity) + int(maxPSL) + 1
	t.info = t.allocator.AllocInfo(padded)
	t.entries = t.allocator.AllocEntries(padded)
	t.capacity = capacity
	t.shift = fib.ShiftWide(capacity)
	t.maxPSL = maxPSL
	t.currentPSL = 0
}

// Count returns the number of live entries.
func (t *Table[K, V]) Count() int { return t.count }

// Capacity returns the current capacity (a power of two).
func (t *Table[K, V]) Capacity() int { return int(t.capacity) }

// Clear removes every entry. Capacity is preserved.
func (t *Table[K, V]) Clear() {
	for i := range t.info {
		t.info[i] = infoEmpty
	}
	var zero Entry[K, V]
	for i := range t.entries {
		t.entries[i] = zero
	}
	t.count = 0
	t.currentPSL = 0
	t.checkInvariants()
}

// find scans linearly from key's initial index for at most
// currentPSL+1 slots, which bounds every live key's possible position.
// A resident whose own PSL is smaller than the probe distance already
// examined proves the key is absent: Robin-Hood's invariant guarantees
// any present key would have displaced that resident by now.
func (t *Table[K, V]) find(key K, h uint32) (uint32, bool) {
	base := fib.Index(h, t.shift)
	for psl := uint32(0); psl <= t.currentPSL; psl++ {
		cursor := base + psl
		info := t.info[cursor]
		if info == infoEmpty {
			return 0, false
		}
		residentPSL := uint32(info) - 1
		if residentPSL < psl {
			return 0, false
		}
		if t.entries[cursor].Key == key {
			return cursor, true
		}
	}
	return 0, false
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

// IndexOf returns the slot index holding key, or -1 if key is absent.
// Intended for test introspection, not for production use.
func (t *Table[K, V]) IndexOf(key K) int {
	idx, hit := t.find(key, t.hash(key))
	if !hit {
		return -1
	}
	return int(idx)
}

// Remove deletes key's entry if present, by backshift: every subsequent
// contiguous occupant that does not already sit at its natural index
// (PSL zero) is slid back one slot and its PSL decremented, restoring
// the Robin-Hood invariant without leaving a tombstone.
func (t *Table[K, V]) Remove(key K) bool {
	idx, hit := t.find(key, t.hash(key))
	if !hit {
		return false
	}
	cursor := idx
	for {
		next := cursor + 1
		if t.info[next] == infoEmpty || t.info[next]-1 == 0 {
			break
		}
		t.entries[cursor] = t.entries[next]
		t.info[cursor] = t.info[next] - 1
		cursor = next
	}
	t.entries[cursor] = Entry[K, V]{}
	t.info[cursor] = infoEmpty
	t.count--
	trace("remove(%v): count=%d\n", key, t.count)
	t.checkInvariants()
	return true
}

// Insert adds (key, value) if key is not already present, reporting
// true on a new insertion. If key already exists the table is left
// unchanged and it reports false.
func (t *Table[K, V]) Insert(key K, value V) bool {
	h := t.hash(key)
	if _, hit := t.find(key, h); hit {
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
// carrying it forward with classic Robin-Hood swapping: whenever the
// carried entry's PSL exceeds the resident's, they trade places and the
// (former) resident continues the walk with its already-accumulated
// PSL. If the carried PSL would reach maxPSL before finding an empty
// slot, the whole table is rehashed (raising maxPSL along with
// capacity) and the insertion restarts from scratch.
func (t *Table[K, V]) uncheckedInsert(h uint32, key K, value V) {
	cursor := fib.Index(h, t.shift)
	carried := Entry[K, V]{Key: key, Value: value}
	psl := uint32(0)
	for {
		if psl >= t.maxPSL {
			trace("insert(%v): PSL reached %d, rehashing\n", key, t.maxPSL)
			t.rehash()
			t.uncheckedInsert(t.hash(carried.Key), carried.Key, carried.Value)
			return
		}
		info := t.info[cursor]
		if info == infoEmpty {
			t.entries[cursor] = carried
			t.info[cursor] = uint8(psl) + 1
			if psl > t.currentPSL {
				t.currentPSL = psl
			}
			return
		}
		residentPSL := uint32(info) - 1
		if residentPSL < psl {
			t.entries[cursor], carried = carried, t.entries[cursor]
			t.info[cursor] = uint8(psl) + 1
			if psl > t.currentPSL {
				t.currentPSL = psl
			}
			psl = residentPSL
		}
		cursor++
		psl++
	}
}

// rehash doubles capacity (which also raises maxPSL) and reinserts
// every live entry via uncheckedInsert. Live count is preserved.
func (t *Table[K, V]) rehash() {
	oldInfo, oldEntries, oldCapacity := t.info, t.entries, t.capacity
	t.allocate(oldCapacity * 2)
	for i := range oldInfo {
		if oldInfo[i] == infoEmpty {
			continue
		}
		e := oldEntries[i]
		t.uncheckedInsert(t.hash(e.Key), e.Key, e.Value)
	}
	t.allocator.FreeInfo(oldInfo)
	t.allocator.FreeEntries(oldEntries)
	trace("rehash: capacity %d -> %d, count=%d\n", oldCapacity, t.capacity, t.count)
}

// All yields every live (key, value) pair, from the highest occupied
// index to the lowest, so a caller can remove the just-yielded entry
// without disturbing positions still to be visited.
func (t *Table[K, V]) All(yield func(K, V) bool) {
	for i := len(t.info) - 1; i >= 0; i-- {
		if t.info[i] != infoEmpty {
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
	for i := range t.info {
		if t.info[i] == infoEmpty {
			continue
		}
		live++
		key := t.entries[i].Key
		if idx, hit := t.find(key, t.hash(key)); !hit || int(idx) != i {
			panic(fmt.Sprintf("lineartable: invariant violated: live key %v at slot %d not found by find() (hit=%v idx=%d)", key, i, hit, idx))
		}
	}
	if live != t.count {
		panic(fmt.Sprintf("lineartable: invariant violated: counted %d live slots, count=%d", live, t.count))
	}
}

// maxPSLFor returns the probe-sequence-length ceiling that triggers a
// resize rather than an ever-longer carry during insert. At load factor
// 0.5 or below, log2(capacity) is generous; above that the schedule
// grows faster to compensate for the shorter runs of empty slots.
func maxPSLFor(capacity uint32, loadFactor float64) uint32 {
	base := uint32(fib.Log2(capacity))
	if base == 0 {
		base = 1
	}
	if loadFactor <= 0.5 {
		return base
	}
	return base * 2
}
