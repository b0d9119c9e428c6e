package sparse

import (
	"math/rand"
	"sort"
	"testing"
)

func TestStateSetBasics(t *testing.T) {
	s := NewStateSet(16)
	if s.Len() != 0 {
		t.Fatalf("new set Len() = %d, want 0", s.Len())
	}
	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate, no-op
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains(3) || !s.Contains(7) {
		t.Fatal("expected 3 and 7 to be present")
	}
	if s.Contains(4) {
		t.Fatal("4 should not be present")
	}
	s.Remove(3)
	if s.Contains(3) {
		t.Fatal("3 should have been removed")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() after remove = %d, want 1", s.Len())
	}
}

func TestSmallIntMapCrossesCutover(t *testing.T) {
	m := NewSmallIntMap[int32]()
	for i := int32(0); i < 100; i++ {
		m.Set(i, i*10)
	}
	if m.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", m.Len())
	}
	for i := int32(0); i < 100; i++ {
		v, ok := m.Get(i)
		if !ok || v != i*10 {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, i*10)
		}
	}
	keys := m.Keys()
	if !sort.IsSorted(int32Slice(keys)) {
		t.Fatal("Keys() not sorted")
	}
	for i := int32(0); i < 100; i++ {
		m.Delete(i)
	}
	if m.Len() != 0 {
		t.Fatalf("Len() after deleting all = %d, want 0", m.Len())
	}
	// must have reverted to array representation
	if m.large {
		t.Fatal("expected revert to array representation once empty")
	}
}

type int32Slice []int32

func (s int32Slice) Len() int           { return len(s) }
func (s int32Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s int32Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func TestSortedIntSetIncrDecr(t *testing.T) {
	s := NewSortedIntSet()
	s.Incr(5)
	s.Incr(5)
	s.Incr(2)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	want := []int32{2, 5}
	if got := s.Values(); !equalInt32(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	s.Decr(5)
	if s.Len() != 2 {
		t.Fatalf("Len() after one decr of a count-2 entry = %d, want 2", s.Len())
	}
	s.Decr(5)
	if s.Len() != 1 {
		t.Fatalf("Len() after fully decrementing 5 = %d, want 1", s.Len())
	}
	if got := s.Values(); !equalInt32(got, []int32{2}) {
		t.Fatalf("Values() = %v, want [2]", got)
	}
}

func TestSortedIntSetDecrAbsentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic decrementing an absent value")
		}
	}()
	s := NewSortedIntSet()
	s.Decr(1)
}

func TestSortedIntSetCrossesCutover(t *testing.T) {
	s := NewSortedIntSet()
	for i := int32(0); i < 50; i++ {
		s.Incr(i)
	}
	if s.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", s.Len())
	}
	for i := int32(0); i < 25; i++ {
		s.Decr(i)
	}
	if s.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", s.Len())
	}
}

func TestFrozenIntSetHashAndEquality(t *testing.T) {
	a := NewFrozenIntSet([]int32{1, 2, 3}, -1)
	b := NewFrozenIntSet([]int32{1, 2, 3}, -1)
	c := NewFrozenIntSet([]int32{1, 2, 4}, -1)
	if !a.Equal(b) {
		t.Fatal("identical element sets should be equal")
	}
	if a.Equal(c) {
		t.Fatal("different element sets should not be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("identical element sets should hash identically")
	}

	// 683h+v, h0=len(set)
	h := uint32(3)
	h = 683*h + 1
	h = 683*h + 2
	h = 683*h + 3
	if a.Hash() != h {
		t.Fatalf("Hash() = %d, want %d (683h+v rule)", a.Hash(), h)
	}
}

func TestSortedIntSetFreezeAndEqualsFrozenAreSymmetric(t *testing.T) {
	s := NewSortedIntSet()
	s.Incr(10)
	s.Incr(20)
	s.Incr(10) // duplicate: still one distinct element

	frozen := s.Freeze(7)
	if frozen.State() != 7 {
		t.Fatalf("State() = %d, want 7", frozen.State())
	}
	if !s.EqualsFrozen(frozen) {
		t.Fatal("s.EqualsFrozen(frozen) should be true")
	}
	if !frozen.EqualsSorted(s) {
		t.Fatal("frozen.EqualsSorted(s) should be true (symmetric)")
	}

	s.Incr(30)
	if s.EqualsFrozen(frozen) {
		t.Fatal("mutated set should no longer equal the old frozen snapshot")
	}
}

func TestFrozenIntSetAgainstRandomSortedIntSet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		s := NewSortedIntSet()
		seen := map[int32]bool{}
		var values []int32
		n := rng.Intn(80)
		for i := 0; i < n; i++ {
			v := int32(rng.Intn(200))
			s.Incr(v)
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
		frozen := NewFrozenIntSet(values, 0)
		if !s.EqualsFrozen(frozen) {
			t.Fatalf("trial %d: expected s to equal frozen(%v)", trial, values)
		}
	}
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
