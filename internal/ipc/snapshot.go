package ipc

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/wmcore"
)

// WmStateSnapshot is the get_state response payload: a high-level summary
// of the whole running window manager.
type WmStateSnapshot struct {
	FocusedWindow *wintypes.WindowHandle `json:"focused_window"`
	FocusedFrame  layout.NodeID          `json:"focused_frame"`
	WindowCount   int                    `json:"window_count"`
	FrameCount    int                    `json:"frame_count"`
	Layout        interface{}            `json:"layout"`
}

// FrameSnapshot and SplitSnapshot are the two tagged variants a
// LayoutSnapshot node can be; First/Second recurse into the same union.
type FrameSnapshot struct {
	Type       string                     `json:"type"`
	ID         layout.NodeID              `json:"id"`
	Windows    []wintypes.WindowHandle    `json:"windows"`
	FocusedTab int                        `json:"focused_tab"`
	Geometry   *geom.Rect                 `json:"geometry,omitempty"`
}

type SplitSnapshot struct {
	Type      string        `json:"type"`
	ID        layout.NodeID `json:"id"`
	Direction string        `json:"direction"`
	Ratio     float64       `json:"ratio"`
	First     interface{}   `json:"first"`
	Second    interface{}   `json:"second"`
	Geometry  *geom.Rect    `json:"geometry,omitempty"`
}

func directionName(d geom.SplitType) string {
	if d == geom.Vertical {
		return "vertical"
	}
	return "horizontal"
}

// buildLayoutSnapshot walks tree from id, producing the Frame|Split
// tagged-union JSON shape spec's LayoutSnapshot names. rects may be nil,
// in which case no node carries a geometry field.
func buildLayoutSnapshot(tree *layout.Tree, id layout.NodeID, rects map[layout.NodeID]geom.Rect) interface{} {
	kind, ok := tree.Kind(id)
	if !ok {
		return nil
	}
	var geomPtr *geom.Rect
	if rects != nil {
		if r, ok := rects[id]; ok {
			rc := r
			geomPtr = &rc
		}
	}
	if kind == layout.KindFrame {
		fd, _ := tree.Frame(id)
		windows := fd.Windows
		if windows == nil {
			windows = []wintypes.WindowHandle{}
		}
		return FrameSnapshot{
			Type: "frame", ID: id, Windows: windows,
			FocusedTab: fd.FocusedTab, Geometry: geomPtr,
		}
	}
	sd, _ := tree.Split(id)
	return SplitSnapshot{
		Type: "split", ID: id, Direction: directionName(sd.Direction), Ratio: sd.Ratio,
		First:  buildLayoutSnapshot(tree, sd.First, rects),
		Second: buildLayoutSnapshot(tree, sd.Second, rects),
		Geometry: geomPtr,
	}
}

// currentLayoutRects recomputes the current workspace's frame geometries,
// the same call apply-layout makes, so a layout snapshot's geometry
// fields always match what is currently on screen.
func currentLayoutRects(r *wmcore.Reducer) map[layout.NodeID]geom.Rect {
	tree := r.Workspaces.CurrentTree()
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	return tree.CalculateGeometries(area, r.Config.Appearance.Gap)
}

func buildWmStateSnapshot(r *wmcore.Reducer) WmStateSnapshot {
	tree := r.Workspaces.CurrentTree()
	var focusedPtr *wintypes.WindowHandle
	if w, ok := tree.FocusedWindow(); ok {
		focusedPtr = &w
	}
	return WmStateSnapshot{
		FocusedWindow: focusedPtr,
		FocusedFrame:  tree.Focused(),
		WindowCount:   r.Registry.Count(),
		FrameCount:    tree.FrameCount(),
		Layout:        buildLayoutSnapshot(tree, tree.Root(), currentLayoutRects(r)),
	}
}

func buildLayoutOnlySnapshot(r *wmcore.Reducer) interface{} {
	tree := r.Workspaces.CurrentTree()
	return buildLayoutSnapshot(tree, tree.Root(), currentLayoutRects(r))
}

// WindowInfo is one get_windows list entry.
type WindowInfo struct {
	ID      wintypes.WindowHandle `json:"id"`
	Title   string                `json:"title"`
	Class   string                `json:"class"`
	Frame   *layout.NodeID        `json:"frame,omitempty"`
	Visible bool                  `json:"visible"`
}

func buildWindowInfo(r *wmcore.Reducer, e *registry.Entry) WindowInfo {
	info := WindowInfo{ID: e.Handle, Title: e.Title, Class: e.ClassInstance}
	if !e.Placement.Tiled {
		info.Visible = e.WorkspaceIndex == r.Workspaces.Current()
		return info
	}
	id := e.Placement.FrameID
	info.Frame = &id
	if e.WorkspaceIndex != r.Workspaces.Current() {
		return info
	}
	tree := r.Workspaces.Tree(e.WorkspaceIndex)
	if fd, ok := tree.Frame(id); ok {
		idx := fd.FocusedTab
		info.Visible = idx >= 0 && idx < len(fd.Windows) && fd.Windows[idx] == e.Handle
	}
	return info
}

func buildWindowList(r *wmcore.Reducer) []WindowInfo {
	var out []WindowInfo
	r.Registry.All(func(e *registry.Entry) {
		out = append(out, buildWindowInfo(r, e))
	})
	if out == nil {
		out = []WindowInfo{}
	}
	return out
}

func windowHandleList(ws []wintypes.WindowHandle) []wintypes.WindowHandle {
	if ws == nil {
		return []wintypes.WindowHandle{}
	}
	return ws
}
