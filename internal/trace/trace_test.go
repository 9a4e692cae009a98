package trace

import "testing"

func TestRingRecentBeforeWrap(t *testing.T) {
	r := NewRing(4)
	r.Append(1, EventCommand, nil, "a")
	r.Append(2, EventCommand, nil, "b")

	got := r.Recent(0)
	if len(got) != 2 {
		t.Fatalf("Recent(0) len = %d, want 2", len(got))
	}
	if got[0].Details != "a" || got[1].Details != "b" {
		t.Fatalf("Recent(0) = %+v, want oldest-first [a b]", got)
	}
}

func TestRingWrapsAndKeepsNewest(t *testing.T) {
	r := NewRing(3)
	for i, d := range []string{"a", "b", "c", "d", "e"} {
		r.Append(int64(i), EventCommand, nil, d)
	}
	got := r.Recent(0)
	if len(got) != 3 {
		t.Fatalf("Recent(0) len = %d, want 3 after wrap", len(got))
	}
	want := []string{"c", "d", "e"}
	for i, w := range want {
		if got[i].Details != w {
			t.Fatalf("Recent(0) = %+v, want %v", got, want)
		}
	}
}

func TestRingRecentCountClampedAndSequential(t *testing.T) {
	r := NewRing(5)
	for i, d := range []string{"a", "b", "c", "d"} {
		r.Append(int64(i), EventCommand, nil, d)
	}
	got := r.Recent(2)
	if len(got) != 2 || got[0].Details != "c" || got[1].Details != "d" {
		t.Fatalf("Recent(2) = %+v, want [c d]", got)
	}
	got = r.Recent(100)
	if len(got) != 4 {
		t.Fatalf("Recent(100) len = %d, want 4 (clamped)", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Sequence <= got[i-1].Sequence {
			t.Fatalf("sequence numbers not monotonic: %+v", got)
		}
	}
}
