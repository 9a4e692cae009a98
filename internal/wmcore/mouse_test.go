package wmcore

import (
	"testing"

	"github.com/ttwm/ttwm/internal/geom"
)

func TestHandleTabClickFocusesClickedTab(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	mapTiled(r, 101, "b")

	frameID := r.Workspaces.CurrentTree().Focused()
	if !r.HandleTabClick(frameID, 0) {
		t.Fatal("HandleTabClick should succeed on a live frame")
	}
	w, _ := r.Workspaces.CurrentTree().FocusedWindow()
	if w != 100 {
		t.Fatalf("focused window = %v, want 100", w)
	}
}

func TestBeginFloatDragInfersMoveVsResize(t *testing.T) {
	r, _ := newTestReducer()
	r.HandleMapRequest(MapRequest{Window: 200, Classify: ClassifyInput{WindowType: TypeDialog}, Title: "d"})
	e := r.Registry.Get(200)
	e.Placement.Floating = geom.Rect{X: 100, Y: 100, W: 200, H: 150}

	if !r.BeginFloatDrag(200, 150, 150) {
		t.Fatal("BeginFloatDrag should succeed on a floating window")
	}
	if r.drag.kind != dragMoveFloat {
		t.Fatal("clicking well inside the window should start a move drag")
	}
	r.EndDrag()

	if !r.BeginFloatDrag(200, 102, 150) {
		t.Fatal("BeginFloatDrag should succeed on a floating window")
	}
	if r.drag.kind != dragResizeFloat {
		t.Fatal("clicking within the edge zone should start a resize drag")
	}
}

func TestBeginFloatDragFailsOnTiledWindow(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	if r.BeginFloatDrag(100, 0, 0) {
		t.Fatal("BeginFloatDrag should fail on a tiled window")
	}
}

func TestDragMoveFloatTracksPointer(t *testing.T) {
	r, _ := newTestReducer()
	r.HandleMapRequest(MapRequest{Window: 200, Classify: ClassifyInput{WindowType: TypeDialog}, Title: "d"})
	e := r.Registry.Get(200)
	e.Placement.Floating = geom.Rect{X: 100, Y: 100, W: 200, H: 150}

	r.BeginFloatDrag(200, 150, 150)
	r.DragMotion(170, 160)

	got := r.Registry.Get(200).Placement.Floating
	if got.X != 120 || got.Y != 110 {
		t.Fatalf("floating rect = %+v, want moved by (20,10)", got)
	}
}

func TestDragResizeFloatClampsMinimumSize(t *testing.T) {
	r, _ := newTestReducer()
	r.HandleMapRequest(MapRequest{Window: 200, Classify: ClassifyInput{WindowType: TypeDialog}, Title: "d"})
	e := r.Registry.Get(200)
	e.Placement.Floating = geom.Rect{X: 100, Y: 100, W: 20, H: 20}

	r.BeginFloatDrag(200, 102, 102) // top-left corner
	r.DragMotion(200, 200)          // drag far past the opposite corner

	got := r.Registry.Get(200).Placement.Floating
	if got.W < floatEdgeZone*2 || got.H < floatEdgeZone*2 {
		t.Fatalf("floating rect = %+v, should be clamped to minimum size", got)
	}
}

func TestEndDragClearsState(t *testing.T) {
	r, _ := newTestReducer()
	r.BeginSplitDrag(r.Workspaces.CurrentTree().Root(), geom.Vertical, 0, 0)
	r.EndDrag()
	if r.drag != nil {
		t.Fatal("EndDrag should clear the in-progress drag")
	}
}
