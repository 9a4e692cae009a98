package wmcore

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// floatEdgeZone is the width, in pixels, of a floating window's border
// region that triggers a resize drag instead of a move drag.
const floatEdgeZone = 8

type dragKind int

const (
	dragNone dragKind = iota
	dragResizeSplit
	dragMoveFloat
	dragResizeFloat
)

// edgeMask records which edges of a floating window a resize drag is
// anchored to, so motion can grow/shrink the correct sides.
type edgeMask int

const (
	edgeLeft   edgeMask = 1 << 0
	edgeRight  edgeMask = 1 << 1
	edgeTop    edgeMask = 1 << 2
	edgeBottom edgeMask = 1 << 3
)

// dragState tracks an in-progress click-drag between ButtonPress and
// ButtonRelease. The reducer holds at most one at a time.
type dragState struct {
	kind      dragKind
	splitID   layout.NodeID
	axis      geom.SplitType
	window    wintypes.WindowHandle
	startX    int
	startY    int
	startRect geom.Rect
	edges     edgeMask
}

// HandleTabClick focuses the clicked tab's frame and tab index.
func (r *Reducer) HandleTabClick(frameID layout.NodeID, tabIndex int) bool {
	tree := r.Workspaces.CurrentTree()
	if !tree.SetFocused(frameID) {
		return false
	}
	tree.FocusTab(tabIndex)
	r.recordEvent(trace.EventFocusChanged, wintypes.None, "tab_click")
	r.ApplyLayout()
	return true
}

// HandleFrameContentClick focuses a frame whose content area (not its
// tab bar) was clicked, without changing which tab is visible.
func (r *Reducer) HandleFrameContentClick(frameID layout.NodeID) bool {
	tree := r.Workspaces.CurrentTree()
	if !tree.SetFocused(frameID) {
		return false
	}
	r.recordEvent(trace.EventFocusChanged, wintypes.None, "frame_click")
	r.ApplyLayout()
	return true
}

// BeginSplitDrag starts a live split-ratio drag anchored at a gap between
// two frames. axis is the split's orientation (Vertical splits have a
// left/right gap, Horizontal a top/bottom one).
func (r *Reducer) BeginSplitDrag(splitID layout.NodeID, axis geom.SplitType, x, y int) {
	r.drag = &dragState{kind: dragResizeSplit, splitID: splitID, axis: axis, startX: x, startY: y}
}

// BeginFloatDrag starts a move or resize drag on a floating window,
// inferring which from how close (x, y) is to its edges.
func (r *Reducer) BeginFloatDrag(w wintypes.WindowHandle, x, y int) bool {
	e := r.Registry.Get(w)
	if e == nil || e.Placement.Tiled {
		return false
	}
	rect := e.Placement.Floating
	edges := edgeZone(rect, x, y)
	kind := dragMoveFloat
	if edges != 0 {
		kind = dragResizeFloat
	}
	r.drag = &dragState{kind: kind, window: w, startX: x, startY: y, startRect: rect, edges: edges}
	return true
}

// edgeZone reports which edges of rect the point (x, y) falls within
// floatEdgeZone pixels of. Corners set two bits (e.g. top-left sets
// edgeTop|edgeLeft), letting a corner drag resize both axes at once.
func edgeZone(rect geom.Rect, x, y int) edgeMask {
	var m edgeMask
	if x-rect.X <= floatEdgeZone {
		m |= edgeLeft
	}
	if rect.X+rect.W-x <= floatEdgeZone {
		m |= edgeRight
	}
	if y-rect.Y <= floatEdgeZone {
		m |= edgeTop
	}
	if rect.Y+rect.H-y <= floatEdgeZone {
		m |= edgeBottom
	}
	return m
}

// DragMotion updates the in-progress drag for the pointer's new position.
// It is a no-op if no drag is active.
func (r *Reducer) DragMotion(x, y int) {
	if r.drag == nil {
		return
	}
	switch r.drag.kind {
	case dragResizeSplit:
		r.dragResizeSplit(x, y)
	case dragMoveFloat:
		r.dragMoveFloat(x, y)
	case dragResizeFloat:
		r.dragResizeFloat(x, y)
	}
}

func (r *Reducer) dragResizeSplit(x, y int) {
	if _, ok := r.Workspaces.CurrentTree().Split(r.drag.splitID); !ok {
		return
	}
	area := r.Backend.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	var delta float64
	if r.drag.axis == geom.Vertical {
		delta = float64(x-r.drag.startX) / float64(maxInt(area.W, 1))
	} else {
		delta = float64(y-r.drag.startY) / float64(maxInt(area.H, 1))
	}
	r.setSplitRatio(r.drag.splitID, delta)
	r.drag.startX, r.drag.startY = x, y
	r.ApplyLayout()
}

// setSplitRatio is the live-drag equivalent of ResizeFocusedSplit: it
// targets a specific split rather than the focused frame's ancestor.
// Callers apply delta incrementally per motion event so the ratio tracks
// the pointer as it moves.
func (r *Reducer) setSplitRatio(id layout.NodeID, delta float64) {
	tree := r.Workspaces.CurrentTree()
	sd, ok := tree.Split(id)
	if !ok {
		return
	}
	wasFocused := tree.Focused()
	// Split's ratio is only mutable through the focused-frame-relative
	// API; temporarily focus one of the split's children to reach it.
	if !tree.SetFocused(sd.First) {
		return
	}
	tree.ResizeFocusedSplit(delta)
	tree.SetFocused(wasFocused)
}

func (r *Reducer) dragMoveFloat(x, y int) {
	e := r.Registry.Get(r.drag.window)
	if e == nil {
		return
	}
	dx, dy := x-r.drag.startX, y-r.drag.startY
	e.Placement.Floating = geom.Rect{
		X: r.drag.startRect.X + dx,
		Y: r.drag.startRect.Y + dy,
		W: r.drag.startRect.W,
		H: r.drag.startRect.H,
	}
	r.ApplyLayout()
}

func (r *Reducer) dragResizeFloat(x, y int) {
	e := r.Registry.Get(r.drag.window)
	if e == nil {
		return
	}
	dx, dy := x-r.drag.startX, y-r.drag.startY
	rect := r.drag.startRect
	if r.drag.edges&edgeLeft != 0 {
		rect.X += dx
		rect.W -= dx
	}
	if r.drag.edges&edgeRight != 0 {
		rect.W += dx
	}
	if r.drag.edges&edgeTop != 0 {
		rect.Y += dy
		rect.H -= dy
	}
	if r.drag.edges&edgeBottom != 0 {
		rect.H += dy
	}
	if rect.W < floatEdgeZone*2 {
		rect.W = floatEdgeZone * 2
	}
	if rect.H < floatEdgeZone*2 {
		rect.H = floatEdgeZone * 2
	}
	e.Placement.Floating = rect
	r.ApplyLayout()
}

// EndDrag finishes whatever drag is in progress.
func (r *Reducer) EndDrag() {
	r.drag = nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
