package assets

import (
	"reflect"
	"testing"
)

func newTestStore() *Store {
	return NewStore(nil)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := newTestStore()
	a := s.Create(OriginGenerated, "chart A", NewMemoryHandle([]byte{1}))
	b := s.Create(OriginUploaded, "photo B", NewMemoryHandle([]byte{2}))

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty asset ids")
	}
	if a.ID == b.ID {
		t.Fatalf("expected unique ids, both were %s", a.ID)
	}
	if len(a.AssignedSlides()) != 0 {
		t.Errorf("new asset should have no assignments, got %v", a.AssignedSlides())
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	s := newTestStore()
	a := s.Create(OriginGenerated, "chart", NewMemoryHandle(nil))

	if !s.Assign(a.ID, 3) {
		t.Fatal("Assign() returned false for known id")
	}
	once := a.AssignedSlides()

	if !s.Assign(a.ID, 3) {
		t.Fatal("repeat Assign() returned false for known id")
	}
	twice := a.AssignedSlides()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("assign twice changed the set: %v vs %v", once, twice)
	}
	if !reflect.DeepEqual(twice, []int{3}) {
		t.Errorf("expected [3], got %v", twice)
	}
}

func TestUnassignRestoresPriorSet(t *testing.T) {
	s := newTestStore()
	a := s.Create(OriginGenerated, "chart", NewMemoryHandle(nil))
	s.Assign(a.ID, 0)
	s.Assign(a.ID, 2)
	before := a.AssignedSlides()

	s.Assign(a.ID, 5)
	if !s.Unassign(a.ID, 5) {
		t.Fatal("Unassign() returned false for known id")
	}

	after := a.AssignedSlides()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("assign+unassign did not restore set: before %v, after %v", before, after)
	}

	// Unassigning an index that was never assigned is a no-op.
	if !s.Unassign(a.ID, 99) {
		t.Fatal("Unassign() of unset index should still return true for known id")
	}
	if !reflect.DeepEqual(a.AssignedSlides(), after) {
		t.Errorf("no-op unassign changed the set: %v", a.AssignedSlides())
	}
}

func TestAssignUnknownIDLeavesStoreUntouched(t *testing.T) {
	s := newTestStore()
	s.Create(OriginGenerated, "chart", NewMemoryHandle(nil))

	if s.Assign("nonexistent-id", 0) {
		t.Error("Assign() should return false for unknown id")
	}
	if s.Len() != 1 {
		t.Errorf("store length changed after failed assign: %d", s.Len())
	}
	if got := len(s.ListAll(nil)); got != 1 {
		t.Errorf("ListAll() length changed after failed assign: %d", got)
	}
}

func TestDeleteReleasesHandle(t *testing.T) {
	s := newTestStore()
	h := NewMemoryHandle([]byte("png bytes"))
	a := s.Create(OriginGenerated, "chart", h)

	if !s.Delete(a.ID) {
		t.Fatal("Delete() returned false for known id")
	}
	if got := s.Get(a.ID); got != nil {
		t.Errorf("Get() after delete should return nil, got %+v", got)
	}
	if !h.Released() {
		t.Error("handle was not released on delete")
	}
}

func TestDeleteUnknownIDReturnsFalse(t *testing.T) {
	s := newTestStore()
	if s.Delete("nonexistent-id") {
		t.Error("Delete() should return false, not an error, for unknown id")
	}
}

func TestListAllFiltersAndPreservesCreationOrder(t *testing.T) {
	s := newTestStore()
	first := s.Create(OriginGenerated, "one", NewMemoryHandle(nil))
	second := s.Create(OriginUploaded, "two", NewMemoryHandle(nil))
	third := s.Create(OriginGenerated, "three", NewMemoryHandle(nil))

	all := s.ListAll(nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID || all[2].ID != third.ID {
		t.Error("ListAll() not in creation order")
	}

	gen := OriginGenerated
	generated := s.ListAll(&gen)
	if len(generated) != 2 {
		t.Fatalf("expected 2 generated assets, got %d", len(generated))
	}
	if generated[0].ID != first.ID || generated[1].ID != third.ID {
		t.Error("filtered ListAll() not in creation order")
	}
}

func TestClearAllReleasesMatchingHandles(t *testing.T) {
	s := newTestStore()
	hGen := NewMemoryHandle(nil)
	hUp := NewMemoryHandle(nil)
	s.Create(OriginGenerated, "chart", hGen)
	up := s.Create(OriginUploaded, "photo", hUp)

	gen := OriginGenerated
	s.ClearAll(&gen)

	if !hGen.Released() {
		t.Error("generated handle not released by filtered ClearAll()")
	}
	if hUp.Released() {
		t.Error("uploaded handle released by generated-only ClearAll()")
	}
	if s.Len() != 1 || s.Get(up.ID) == nil {
		t.Errorf("uploaded asset should survive filtered clear, Len()=%d", s.Len())
	}

	s.ClearAll(nil)
	if s.Len() != 0 {
		t.Errorf("expected empty store after full clear, Len()=%d", s.Len())
	}
	if !hUp.Released() {
		t.Error("uploaded handle not released by full ClearAll()")
	}
}
