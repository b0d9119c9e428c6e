// Package sparse provides small-set data structures: an O(1)
// membership/iteration set over bounded
// integer universes (adapted from the regex engine's NFA-state sparse set,
// generalized to automaton State values), and the sorted-multiset /
// frozen-set pair the subset-construction worklist uses as its
// subset-of-NFA-states key.
package sparse

import "sort"

// StateSet is a set of non-negative int32 values (state IDs, or symbol
// values) supporting O(1) insertion, removal, and membership testing while
// keeping a dense slice for fast iteration, over a universe whose size
// is known up front. The automaton package's reachability scans use plain
// bool slices and maps rather than this type.
type StateSet struct {
	sparse []int32
	dense  []int32
}

// NewStateSet creates a StateSet over the universe [0, capacity).
func NewStateSet(capacity int) *StateSet {
	return &StateSet{
		sparse: make([]int32, capacity),
		dense:  make([]int32, 0, capacity),
	}
}

// Insert adds v to the set. A no-op if v is already present.
func (s *StateSet) Insert(v int32) {
	if s.Contains(v) {
		return
	}
	idx := int32(len(s.dense))
	s.dense = append(s.dense, v)
	s.sparse[v] = idx
}

// Contains reports whether v is in the set.
func (s *StateSet) Contains(v int32) bool {
	if v < 0 || int(v) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[v]
	return idx >= 0 && int(idx) < len(s.dense) && s.dense[idx] == v
}

// Remove deletes v from the set. A no-op if absent.
func (s *StateSet) Remove(v int32) {
	if !s.Contains(v) {
		return
	}
	idx := s.sparse[v]
	last := int32(len(s.dense) - 1)
	lastVal := s.dense[last]
	s.dense[idx] = lastVal
	s.sparse[lastVal] = idx
	s.dense = s.dense[:last]
}

// Len returns the number of elements currently in the set.
func (s *StateSet) Len() int { return len(s.dense) }

// Values returns the set's elements in unspecified order. Valid until the
// next mutation.
func (s *StateSet) Values() []int32 { return s.dense }

// Cutover is the element count at which SmallIntMap and SortedIntSet
// switch from a sorted-array representation to a Go map. Both structures
// share the same threshold.
const Cutover = 30

// SmallIntMap is a map from int32 key to a value of type V, backed by a
// sorted parallel-array pair while small and by a Go map once it holds
// Cutover or more entries — reverting to the array once it empties again.
// It backs both SortedIntSet (key -> refcount) and the determinizer's
// point-transition buffer (key -> pending transition events): both need
// ordered-key iteration over a small working set with an escape hatch for
// large alphabets, at the same cutover point.
type SmallIntMap[V any] struct {
	keys  []int32
	vals  []V
	m     map[int32]V
	large bool
}

// NewSmallIntMap creates an empty SmallIntMap.
func NewSmallIntMap[V any]() *SmallIntMap[V] {
	return &SmallIntMap[V]{}
}

// Len returns the number of distinct keys.
func (m *SmallIntMap[V]) Len() int {
	if m.large {
		return len(m.m)
	}
	return len(m.keys)
}

// Get returns the value for key and whether it is present.
func (m *SmallIntMap[V]) Get(key int32) (V, bool) {
	if m.large {
		v, ok := m.m[key]
		return v, ok
	}
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if i < len(m.keys) && m.keys[i] == key {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Set stores value for key, inserting if absent.
func (m *SmallIntMap[V]) Set(key int32, value V) {
	if m.large {
		m.m[key] = value
		return
	}
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if i < len(m.keys) && m.keys[i] == key {
		m.vals[i] = value
		return
	}
	m.keys = append(m.keys, 0)
	m.vals = append(m.vals, value)
	copy(m.keys[i+1:], m.keys[i:])
	copy(m.vals[i+1:], m.vals[i:])
	m.keys[i] = key
	m.vals[i] = value
	if len(m.keys) >= Cutover {
		m.toMap()
	}
}

// Delete removes key. A no-op if absent. When the map empties as a result,
// it reverts to the array representation.
func (m *SmallIntMap[V]) Delete(key int32) {
	if m.large {
		delete(m.m, key)
		if len(m.m) == 0 {
			m.m = nil
			m.large = false
		}
		return
	}
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if i >= len(m.keys) || m.keys[i] != key {
		return
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
}

// toMap converts the array representation to a Go map, preserving entries.
func (m *SmallIntMap[V]) toMap() {
	m.m = make(map[int32]V, len(m.keys)*2)
	for i, k := range m.keys {
		m.m[k] = m.vals[i]
	}
	m.keys = nil
	m.vals = nil
	m.large = true
}

// Keys returns the map's keys in ascending order.
func (m *SmallIntMap[V]) Keys() []int32 {
	if !m.large {
		out := make([]int32, len(m.keys))
		copy(out, m.keys)
		return out
	}
	out := make([]int32, 0, len(m.m))
	for k := range m.m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// hashSortedValues computes a multiset hash over a sorted int32 slice:
// starting from h = len(values), for each element v in ascending order,
// h = 683*h + v, with 32-bit wraparound arithmetic.
func hashSortedValues(values []int32) uint32 {
	h := uint32(len(values))
	for _, v := range values {
		h = 683*h + uint32(v)
	}
	return h
}

// FrozenIntSet is an immutable sorted set of state numbers with a
// precomputed hash, used as the determinizer's subset -> new-state lookup
// key. Two FrozenIntSets are equal iff their sorted element sequences are
// equal (the hash is only a fast pre-check).
type FrozenIntSet struct {
	values []int32
	hash   uint32
	state  int32
}

// NewFrozenIntSet builds a FrozenIntSet from an already-sorted,
// duplicate-free slice of values, associating it with the given automaton
// state (the caller's new DFA state number; -1 if not yet assigned).
func NewFrozenIntSet(sortedValues []int32, state int32) *FrozenIntSet {
	values := make([]int32, len(sortedValues))
	copy(values, sortedValues)
	return &FrozenIntSet{values: values, hash: hashSortedValues(values), state: state}
}

// Values returns the frozen set's sorted elements. Callers must not mutate
// the returned slice.
func (f *FrozenIntSet) Values() []int32 { return f.values }

// Hash returns the precomputed 683h+v hash.
func (f *FrozenIntSet) Hash() uint32 { return f.hash }

// State returns the associated automaton state.
func (f *FrozenIntSet) State() int32 { return f.state }

// Equal reports whether two FrozenIntSets contain the same elements.
func (f *FrozenIntSet) Equal(other *FrozenIntSet) bool {
	if f.hash != other.hash || len(f.values) != len(other.values) {
		return false
	}
	for i, v := range f.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// SortedIntSet is a mutable sorted multiset of states. Below Cutover
// distinct elements it is backed by a sorted array of (value, count)
// pairs; at and above Cutover it switches to a map keyed by value; upon
// emptying it reverts to the array representation. It is the determinizer
// sweep's live-destination accumulator.
type SortedIntSet struct {
	counts SmallIntMap[int32]
}

// NewSortedIntSet returns an empty SortedIntSet.
func NewSortedIntSet() *SortedIntSet {
	return &SortedIntSet{}
}

// Incr inserts v (count 1) or increments its existing count.
func (s *SortedIntSet) Incr(v int32) {
	c, _ := s.counts.Get(v)
	s.counts.Set(v, c+1)
}

// Decr decrements v's count, removing it once the count reaches zero.
// Panics if v is not present: the determinizer never closes an interval
// it didn't open.
func (s *SortedIntSet) Decr(v int32) {
	c, ok := s.counts.Get(v)
	if !ok {
		panic("sparse: decr of value not present in SortedIntSet")
	}
	if c <= 1 {
		s.counts.Delete(v)
	} else {
		s.counts.Set(v, c-1)
	}
}

// Len returns the number of distinct elements.
func (s *SortedIntSet) Len() int { return s.counts.Len() }

// IsEmpty reports whether the set has no elements.
func (s *SortedIntSet) IsEmpty() bool { return s.counts.Len() == 0 }

// Values returns the distinct elements in ascending order.
func (s *SortedIntSet) Values() []int32 { return s.counts.Keys() }

// ComputeHash computes the FrozenIntSet hash over the set's current
// distinct elements (not multiplied by count).
func (s *SortedIntSet) ComputeHash() uint32 {
	return hashSortedValues(s.counts.Keys())
}

// Freeze returns a FrozenIntSet over the current distinct elements,
// associated with automaton state st.
func (s *SortedIntSet) Freeze(st int32) *FrozenIntSet {
	return NewFrozenIntSet(s.counts.Keys(), st)
}

// EqualsFrozen reports whether s's current element set equals f's. Defined
// on both types so the comparison reads naturally from either side.
func (s *SortedIntSet) EqualsFrozen(f *FrozenIntSet) bool {
	values := s.counts.Keys()
	if len(values) != len(f.values) {
		return false
	}
	if hashSortedValues(values) != f.hash {
		return false
	}
	for i, v := range values {
		if f.values[i] != v {
			return false
		}
	}
	return true
}

// EqualsSorted is the symmetric counterpart of SortedIntSet.EqualsFrozen.
func (f *FrozenIntSet) EqualsSorted(s *SortedIntSet) bool {
	return s.EqualsFrozen(f)
}
