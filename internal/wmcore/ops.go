package wmcore

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/workspace"
)

// CycleTab rotates the focused frame's visible tab by delta (+1 forward,
// -1 backward) and applies layout. Always reports handled, even when the
// frame has zero or one tabs, in which case it is simply a no-op.
func (r *Reducer) CycleTab(delta int) bool {
	tree := r.Workspaces.CurrentTree()
	tree.CycleTab(delta)
	r.recordEvent(trace.EventTabSwitched, wintypes.None, "")
	r.ApplyLayout()
	return true
}

// FocusTab jumps the focused frame's visible tab to a fixed index.
func (r *Reducer) FocusTab(index int) bool {
	tree := r.Workspaces.CurrentTree()
	tree.FocusTab(index)
	r.recordEvent(trace.EventTabSwitched, wintypes.None, "")
	r.ApplyLayout()
	return true
}

// FocusFrame moves focus to the frame spatially adjacent to the focused
// one in dir, warping the pointer to follow (taowm's doFrame/
// warpPointerTo). Returns false if there is no frame in that direction.
func (r *Reducer) FocusFrame(dir geom.Direction) bool {
	tree := r.Workspaces.CurrentTree()
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	tree.CalculateGeometries(area, r.Config.Appearance.Gap) // refresh the geometry FindFrameInDirection searches
	target, ok := tree.FindFrameInDirection(tree.Focused(), dir)
	if !ok {
		return false
	}
	tree.SetFocused(target)
	r.recordEvent(trace.EventFocusChanged, wintypes.None, "focus_frame")
	r.ApplyLayout()
	r.warpToFocused()
	return true
}

func (r *Reducer) warpToFocused() {
	tree := r.Workspaces.CurrentTree()
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	rects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)
	if rect, ok := rects[tree.Focused()]; ok {
		if err := r.Backend.WarpPointer(rect); err != nil {
			r.logBackendErr("warp_pointer", wintypes.None, err)
		}
	}
}

// FocusMonitor moves focus to whichever frame occupies the monitor
// adjacent to the one the focused frame currently sits on, wrapping
// around a multi-head Xinerama layout. Returns false on a single-head
// backend, which reports no adjacent monitor.
func (r *Reducer) FocusMonitor(forward bool) bool {
	tree := r.Workspaces.CurrentTree()
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	rects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)
	cur, ok := rects[tree.Focused()]
	if !ok {
		return false
	}
	target, ok := r.Backend.MonitorInDirection(cur.X+cur.W/2, cur.Y+cur.H/2, forward)
	if !ok {
		return false
	}
	cx, cy := target.X+target.W/2, target.Y+target.H/2
	var best layout.NodeID
	found := false
	tree.Traverse(func(id layout.NodeID, kind layout.Kind) {
		if found || kind != layout.KindFrame {
			return
		}
		if r, ok := rects[id]; ok && r.Contains(cx, cy) {
			best, found = id, true
		}
	})
	if !found {
		return false
	}
	tree.SetFocused(best)
	r.recordEvent(trace.EventFocusChanged, wintypes.None, "focus_monitor")
	r.ApplyLayout()
	r.warpToFocused()
	return true
}

// MoveWindow relocates the focused tab into the frame adjacent in dir,
// focus following it.
func (r *Reducer) MoveWindow(dir geom.Direction) bool {
	tree := r.Workspaces.CurrentTree()
	w, hasWindow := tree.FocusedWindow()
	if !hasWindow {
		return false
	}
	if !tree.MoveWindowBetweenFrames(dir) {
		return false
	}
	if e := r.Registry.Get(w); e != nil {
		e.Placement.FrameID = tree.Focused()
	}
	r.recordEvent(trace.EventWindowMoved, w, "")
	r.ApplyLayout()
	r.warpToFocused()
	return true
}

// ResizeSplit nudges the ancestor split nearest the focused frame by
// delta, clamped to [0.1, 0.9].
func (r *Reducer) ResizeSplit(delta float64) bool {
	tree := r.Workspaces.CurrentTree()
	if !tree.ResizeFocusedSplit(delta) {
		return false
	}
	r.recordEvent(trace.EventSplitResized, wintypes.None, "")
	r.ApplyLayout()
	return true
}

// Split divides the focused frame along dir, focusing the new empty half.
func (r *Reducer) Split(dir geom.SplitType) bool {
	tree := r.Workspaces.CurrentTree()
	if _, err := tree.SplitFocused(dir); err != nil {
		return false
	}
	r.recordEvent(trace.EventFrameSplit, wintypes.None, "")
	r.ApplyLayout()
	return true
}

// CloseWindow asks the focused tab's window to close itself, via
// WM_DELETE_WINDOW if it advertised support (taowm's doWindowDelete); a
// client with no such protocol support is left untouched — ttwm never
// force-kills client windows.
func (r *Reducer) CloseWindow() bool {
	tree := r.Workspaces.CurrentTree()
	w, ok := tree.FocusedWindow()
	if !ok {
		return false
	}
	e := r.Registry.Get(w)
	if e == nil || !e.WmDeleteWindow {
		return false
	}
	if err := r.Backend.SendDeleteWindow(w); err != nil {
		r.logBackendErr("send_delete_window", w, err)
	}
	return true
}

// ToggleFloat flips a window between tiled and floating. w == wintypes.
// None means "the focused tab".
func (r *Reducer) ToggleFloat(w wintypes.WindowHandle) bool {
	tree := r.Workspaces.CurrentTree()
	if w == wintypes.None {
		var ok bool
		w, ok = tree.FocusedWindow()
		if !ok {
			return false
		}
	}
	e := r.Registry.Get(w)
	if e == nil {
		return false
	}
	screen := r.Backend.ScreenRect()
	if e.Placement.Tiled {
		rect, ok := r.lastFrameRect(e.Placement.FrameID)
		if !ok {
			rect = screen
		}
		tree.RemoveWindow(w)
		e.Placement = registry.Placement{Tiled: false, Floating: ClampToScreen(rect.Shrink(screen.W/8), screen)}
	} else {
		if err := tree.AddWindow(w); err != nil {
			return false
		}
		e.Placement = registry.Placement{Tiled: true, FrameID: tree.Focused()}
	}
	r.ApplyLayout()
	return true
}

// lastFrameRect recomputes geometries and looks up id's rect. Tree keeps
// its geometry cache private, and a fresh CalculateGeometries call is
// cheap at ttwm's scale (a handful of frames per workspace).
func (r *Reducer) lastFrameRect(id layout.NodeID) (geom.Rect, bool) {
	tree := r.Workspaces.CurrentTree()
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	rects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)
	rect, ok := rects[id]
	return rect, ok
}

// ToggleVerticalTabs flips the focused frame's tab-bar orientation.
func (r *Reducer) ToggleVerticalTabs() bool {
	tree := r.Workspaces.CurrentTree()
	if !tree.ToggleVerticalTabs() {
		return false
	}
	r.ApplyLayout()
	return true
}

// SwitchWorkspace changes the visible workspace and re-applies layout
// (which unmaps the old workspace's windows and maps the new one's).
func (r *Reducer) SwitchWorkspace(index int) bool {
	if !r.Workspaces.Switch(index) {
		return false
	}
	r.recordEvent(trace.EventWorkspaceSwitch, wintypes.None, "")
	r.ApplyLayout()
	return true
}

// FocusUrgent switches to the oldest urgent window's workspace and
// focuses it, clearing its urgency.
func (r *Reducer) FocusUrgent() bool {
	w, ok := r.Registry.NextUrgent()
	if !ok {
		return false
	}
	e := r.Registry.Get(w)
	if e == nil {
		return false
	}
	if e.WorkspaceIndex != r.Workspaces.Current() {
		r.Workspaces.Switch(e.WorkspaceIndex)
	}
	if e.Placement.Tiled {
		tree := r.Workspaces.CurrentTree()
		if frameID, tabIndex, found := tree.FindFrameWithWindow(w); found {
			tree.SetFocused(frameID)
			tree.FocusTab(tabIndex)
		}
	}
	r.ApplyLayout()
	return true
}

// MoveToWorkspace relocates w (or the focused tab, if w is wintypes.None)
// to workspace index j. A floating window has no tree membership to move
// (workspace.WorkspaceOf only finds tiled windows), so it is relocated by
// updating the registry's WorkspaceIndex directly rather than through
// workspace.MoveWindowToWorkspace, which only handles tree-resident
// windows.
func (r *Reducer) MoveToWorkspace(w wintypes.WindowHandle, j int) bool {
	if w == wintypes.None {
		var ok bool
		w, ok = r.Workspaces.CurrentTree().FocusedWindow()
		if !ok {
			return false
		}
	}
	if j < 0 || j >= workspace.Count {
		return false
	}
	e := r.Registry.Get(w)
	if e == nil {
		return false
	}
	if !e.Placement.Tiled {
		e.WorkspaceIndex = j
		r.ApplyLayout()
		return true
	}
	i, ok := r.Workspaces.WorkspaceOf(w)
	if !ok {
		return false
	}
	if !r.Workspaces.MoveWindowToWorkspace(w, i, j) {
		return false
	}
	e.WorkspaceIndex = j
	e.Placement.FrameID = r.Workspaces.Tree(j).Focused()
	r.ApplyLayout()
	return true
}
