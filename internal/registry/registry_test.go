package registry

import (
	"testing"

	"github.com/ttwm/ttwm/internal/wintypes"
)

func TestAddGetRemove(t *testing.T) {
	r := New()
	r.Add(&Entry{Handle: 1, Title: "term"})
	if !r.Exists(1) {
		t.Fatal("Exists(1) = false after Add")
	}
	if got := r.Get(1); got == nil || got.Title != "term" {
		t.Fatalf("Get(1) = %+v", got)
	}
	removed := r.Remove(1)
	if removed == nil || removed.Title != "term" {
		t.Fatalf("Remove(1) = %+v", removed)
	}
	if r.Exists(1) {
		t.Fatal("Exists(1) = true after Remove")
	}
	if r.Remove(1) != nil {
		t.Fatal("Remove on absent handle should return nil")
	}
}

func TestFixedSize(t *testing.T) {
	e := Entry{MinW: 300, MaxW: 300, MinH: 200, MaxH: 200}
	if !e.FixedSize() {
		t.Fatal("FixedSize() = false, want true")
	}
	e2 := Entry{MinW: 300, MaxW: 400, MinH: 200, MaxH: 200}
	if e2.FixedSize() {
		t.Fatal("FixedSize() = true, want false")
	}
	var e3 Entry
	if e3.FixedSize() {
		t.Fatal("zero-valued entry must not report FixedSize")
	}
}

func TestUrgentFIFOOrderAndClear(t *testing.T) {
	r := New()
	r.Add(&Entry{Handle: 1})
	r.Add(&Entry{Handle: 2})
	r.Add(&Entry{Handle: 3})

	r.MarkUrgent(2)
	r.MarkUrgent(1)
	r.MarkUrgent(2) // re-marking must not requeue
	r.MarkUrgent(3)

	want := []wintypes.WindowHandle{2, 1, 3}
	got := r.Urgent()
	if len(got) != len(want) {
		t.Fatalf("Urgent() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Urgent() = %v, want %v", got, want)
		}
	}

	next, ok := r.NextUrgent()
	if !ok || next != 2 {
		t.Fatalf("NextUrgent() = %v, %v; want 2, true", next, ok)
	}

	r.ClearUrgent(2)
	if r.Get(2).Urgent {
		t.Fatal("entry still marked urgent after ClearUrgent")
	}
	got = r.Urgent()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Urgent() after clear = %v, want [1 3]", got)
	}
}

func TestTagInsertionOrderPreserved(t *testing.T) {
	r := New()
	r.Add(&Entry{Handle: 1})
	r.Add(&Entry{Handle: 2})
	r.Add(&Entry{Handle: 3})

	r.Tag(3)
	r.Tag(1)
	r.ToggleTag(2)
	r.Tag(1) // already tagged, must not duplicate or reorder

	want := []wintypes.WindowHandle{3, 1, 2}
	got := r.Tagged()
	if len(got) != len(want) {
		t.Fatalf("Tagged() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tagged() = %v, want %v", got, want)
		}
	}

	r.ToggleTag(1)
	got = r.Tagged()
	if len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Fatalf("Tagged() after untoggle = %v, want [3 2]", got)
	}

	all := r.UntagAll()
	if len(all) != 2 {
		t.Fatalf("UntagAll() = %v, want len 2", all)
	}
	if len(r.Tagged()) != 0 {
		t.Fatal("tag set not empty after UntagAll")
	}
	for _, w := range all {
		if r.Get(w).Tagged {
			t.Fatalf("entry %v still marked Tagged after UntagAll", w)
		}
	}
}

func TestFloatingFiltersPlacement(t *testing.T) {
	r := New()
	r.Add(&Entry{Handle: 1, Placement: Placement{Tiled: true}})
	r.Add(&Entry{Handle: 2, Placement: Placement{Tiled: false}})
	r.Add(&Entry{Handle: 3, Placement: Placement{Tiled: false}})

	got := r.Floating()
	if len(got) != 2 {
		t.Fatalf("Floating() = %v, want 2 entries", got)
	}
}

func TestRemoveClearsTagAndUrgent(t *testing.T) {
	r := New()
	r.Add(&Entry{Handle: 1})
	r.Tag(1)
	r.MarkUrgent(1)

	r.Remove(1)
	if len(r.Tagged()) != 0 {
		t.Fatal("tag set should be empty after Remove")
	}
	if len(r.Urgent()) != 0 {
		t.Fatal("urgent queue should be empty after Remove")
	}
}
