package render

import (
	"testing"

	"github.com/ttwm/ttwm/internal/geom"
)

func TestLayoutStripHorizontalCoversArea(t *testing.T) {
	area := geom.Rect{X: 0, Y: 0, W: 403, H: 20}
	s := LayoutStrip(area, 3, false)
	if len(s.Rects) != 3 {
		t.Fatalf("got %d rects, want 3", len(s.Rects))
	}
	total := 0
	for _, r := range s.Rects {
		total += r.W
	}
	if total != area.W {
		t.Fatalf("rect widths sum to %d, want %d", total, area.W)
	}
	if s.Rects[0].X != area.X {
		t.Fatalf("first rect X = %d, want %d", s.Rects[0].X, area.X)
	}
	last := s.Rects[len(s.Rects)-1]
	if last.X+last.W != area.X+area.W {
		t.Fatalf("last rect does not reach area's right edge: %+v vs area %+v", last, area)
	}
}

func TestLayoutStripClampsNarrowTabs(t *testing.T) {
	// 10 tabs in a narrow area: equal share would be < MinTabWidth.
	area := geom.Rect{X: 0, Y: 0, W: 100, H: 20}
	s := LayoutStrip(area, 10, false)
	for i, r := range s.Rects[:len(s.Rects)-1] {
		if r.W < MinTabWidth {
			t.Fatalf("rect %d width %d below MinTabWidth %d", i, r.W, MinTabWidth)
		}
	}
}

func TestLayoutStripVerticalCoversArea(t *testing.T) {
	area := geom.Rect{X: 0, Y: 0, W: 24, H: 301}
	s := LayoutStrip(area, 4, true)
	total := 0
	for _, r := range s.Rects {
		total += r.H
		if r.W != area.W {
			t.Fatalf("vertical tab width = %d, want full strip width %d", r.W, area.W)
		}
	}
	if total != area.H {
		t.Fatalf("rect heights sum to %d, want %d", total, area.H)
	}
}

func TestHitTest(t *testing.T) {
	area := geom.Rect{X: 0, Y: 0, W: 300, H: 20}
	s := LayoutStrip(area, 3, false)
	idx := s.HitTest(150, 10)
	if idx == Empty {
		t.Fatal("HitTest should find a tab for a point inside the strip")
	}
	if s.HitTest(-5, 10) != Empty {
		t.Fatal("HitTest outside the strip should return Empty")
	}
}

func TestTruncateTitleNoOpWhenShort(t *testing.T) {
	if got := TruncateTitle("short", 50); got != "short" {
		t.Fatalf("TruncateTitle = %q, want unchanged", got)
	}
}

func TestTruncateTitleAddsEllipsis(t *testing.T) {
	got := TruncateTitle("a very long window title indeed", 10)
	if len([]rune(got)) > 10 {
		t.Fatalf("TruncateTitle result too wide: %q", got)
	}
	if got == "a very long window title indeed" {
		t.Fatal("title should have been truncated")
	}
}
