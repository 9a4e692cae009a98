package wmcore

import (
	"testing"

	"github.com/ttwm/ttwm/internal/geom"
)

func TestCycleTabWrapsAround(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	mapTiled(r, 101, "b")
	mapTiled(r, 102, "c")

	r.FocusTab(0)
	r.CycleTab(-1)
	w, _ := r.Workspaces.CurrentTree().FocusedWindow()
	if w != 102 {
		t.Fatalf("CycleTab(-1) from tab 0 = window %v, want 102 (wraps to last)", w)
	}
}

func TestFocusFrameMovesAndWarpsPointer(t *testing.T) {
	r, backend := newTestReducer()
	mapTiled(r, 100, "a")
	tree := r.Workspaces.CurrentTree()
	newFrame, err := tree.SplitFocused(geom.Vertical)
	if err != nil {
		t.Fatal(err)
	}
	_ = newFrame

	if !r.FocusFrame(geom.Left) {
		t.Fatal("FocusFrame(Left) should find the sibling frame")
	}
	if backend.warped == (geom.Rect{}) {
		t.Fatal("FocusFrame should warp the pointer to the newly focused frame")
	}
}

func TestMoveWindowUpdatesRegistryFrameID(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	tree := r.Workspaces.CurrentTree()
	tree.SplitFocused(geom.Vertical)
	mapTiled(r, 101, "b")

	if !r.MoveWindow(geom.Left) {
		t.Fatal("MoveWindow(Left) should succeed")
	}
	e := r.Registry.Get(101)
	if e.Placement.FrameID != tree.Focused() {
		t.Fatal("registry FrameID should track the window's new frame after MoveWindow")
	}
}

func TestResizeSplitFailsWithoutAncestorSplit(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	if r.ResizeSplit(0.1) {
		t.Fatal("ResizeSplit should fail on a tree with no splits")
	}
}

func TestSplitCreatesNewFocusedFrame(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	before := r.Workspaces.CurrentTree().FrameCount()

	if !r.Split(geom.Vertical) {
		t.Fatal("Split should succeed on a frame with a window")
	}
	if r.Workspaces.CurrentTree().FrameCount() != before+1 {
		t.Fatal("Split should add exactly one frame")
	}
}

func TestCloseWindowOnlyActsWhenWmDeleteWindowAdvertised(t *testing.T) {
	r, backend := newTestReducer()
	r.HandleMapRequest(MapRequest{
		Window:    100,
		Classify:  ClassifyInput{},
		Title:     "a",
		Protocols: ProtocolHints{DeleteWindow: false},
	})
	if r.CloseWindow() {
		t.Fatal("CloseWindow should report unhandled when the client lacks WM_DELETE_WINDOW")
	}
	if len(backend.deleted) != 0 {
		t.Fatal("no delete message should have been sent")
	}

	r.HandleMapRequest(MapRequest{
		Window:    101,
		Classify:  ClassifyInput{},
		Title:     "b",
		Protocols: ProtocolHints{DeleteWindow: true},
	})
	r.FocusTab(1)
	if !r.CloseWindow() {
		t.Fatal("CloseWindow should succeed when the focused client advertised WM_DELETE_WINDOW")
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != 101 {
		t.Fatalf("deleted = %v, want [101]", backend.deleted)
	}
}

func TestToggleFloatRoundTrips(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")

	if !r.ToggleFloat(100) {
		t.Fatal("ToggleFloat (tiled -> floating) should succeed")
	}
	e := r.Registry.Get(100)
	if e.Placement.Tiled {
		t.Fatal("window should now be floating")
	}

	if !r.ToggleFloat(100) {
		t.Fatal("ToggleFloat (floating -> tiled) should succeed")
	}
	if !r.Registry.Get(100).Placement.Tiled {
		t.Fatal("window should be tiled again")
	}
}

func TestSwitchWorkspaceChangesCurrent(t *testing.T) {
	r, _ := newTestReducer()
	if !r.SwitchWorkspace(3) {
		t.Fatal("SwitchWorkspace(3) should succeed")
	}
	if r.Workspaces.Current() != 3 {
		t.Fatalf("current workspace = %d, want 3", r.Workspaces.Current())
	}
}

func TestFocusUrgentSwitchesWorkspaceAndClearsUrgency(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")
	r.SwitchWorkspace(1)
	mapTiled(r, 200, "b")
	r.SwitchWorkspace(0)

	urgent := true
	r.HandlePropertyChange(PropertyChange{Window: 200, Urgent: &urgent})

	if !r.FocusUrgent() {
		t.Fatal("FocusUrgent should find the urgent window on workspace 1")
	}
	if r.Workspaces.Current() != 1 {
		t.Fatalf("current workspace = %d, want 1", r.Workspaces.Current())
	}
	if r.Registry.Get(200).Urgent {
		t.Fatal("FocusUrgent should clear urgency once focused")
	}
}

func TestMoveToWorkspaceRelocatesWindow(t *testing.T) {
	r, _ := newTestReducer()
	mapTiled(r, 100, "a")

	if !r.MoveToWorkspace(100, 2) {
		t.Fatal("MoveToWorkspace should succeed")
	}
	if idx, ok := r.Workspaces.WorkspaceOf(100); !ok || idx != 2 {
		t.Fatalf("workspace of window = %d, %v, want 2, true", idx, ok)
	}
	if r.Registry.Get(100).WorkspaceIndex != 2 {
		t.Fatal("registry should reflect the window's new workspace")
	}
}

func TestMoveToWorkspaceRelocatesFloatingWindow(t *testing.T) {
	r, _ := newTestReducer()
	mapFloating(r, 200, "float")

	if !r.MoveToWorkspace(200, 3) {
		t.Fatal("MoveToWorkspace should succeed for a floating window")
	}
	if r.Registry.Get(200).WorkspaceIndex != 3 {
		t.Fatal("registry should reflect the floating window's new workspace")
	}
	if _, ok := r.Workspaces.WorkspaceOf(200); ok {
		t.Fatal("a floating window should never be found by tree-based WorkspaceOf")
	}
}
