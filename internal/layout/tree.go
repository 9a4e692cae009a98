// Package layout implements the arena-allocated binary layout tree: frames
// holding tabbed windows at the leaves, splits dividing rectangular screen
// regions at internal nodes.
package layout

import (
	"errors"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// ErrFocusNotFrame is returned when an operation that requires the focused
// node to be a frame finds it is not — a structural bug in the caller, not
// a user-facing error. The reducer logs and aborts the mutation rather
// than panicking.
var ErrFocusNotFrame = errors.New("layout: focused node is not a frame")

// Tree is a complete layout: one binary tree of frame/split nodes plus the
// currently focused frame within it.
type Tree struct {
	nodes    []node
	freeList []int
	root     NodeID
	focused  NodeID
	lastGeom map[NodeID]geom.Rect
}

// New returns a tree with a single empty frame as root, focused on it.
func New() *Tree {
	t := &Tree{}
	root := t.alloc(node{kind: KindFrame, parent: Nil})
	t.root = root
	t.focused = root
	return t
}

// Root returns the tree's root node.
func (t *Tree) Root() NodeID { return t.root }

// Focused returns the currently focused frame.
func (t *Tree) Focused() NodeID { return t.focused }

// SetFocused sets the focused frame, provided id names a live frame node.
// Returns false (no-op) otherwise.
func (t *Tree) SetFocused(id NodeID) bool {
	n := t.at(id)
	if n == nil || n.kind != KindFrame {
		return false
	}
	t.focused = id
	return true
}

// Kind reports the kind of a node, or ok=false if id is stale/invalid.
func (t *Tree) Kind(id NodeID) (Kind, bool) {
	n := t.at(id)
	if n == nil {
		return 0, false
	}
	return n.kind, true
}

// Parent returns id's parent, or Nil if id is the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	n := t.at(id)
	if n == nil {
		return Nil, false
	}
	return n.parent, true
}

// Frame returns a snapshot of a frame node's data.
func (t *Tree) Frame(id NodeID) (FrameData, bool) {
	n := t.at(id)
	if n == nil || n.kind != KindFrame {
		return FrameData{}, false
	}
	return FrameData{
		Windows:      append([]wintypes.WindowHandle(nil), n.windows...),
		FocusedTab:   n.focusedTab,
		VerticalTabs: n.verticalTabs,
		Parent:       n.parent,
	}, true
}

// Split returns a snapshot of a split node's data.
func (t *Tree) Split(id NodeID) (SplitData, bool) {
	n := t.at(id)
	if n == nil || n.kind != KindSplit {
		return SplitData{}, false
	}
	return SplitData{
		Direction: n.direction,
		Ratio:     n.ratio,
		First:     n.first,
		Second:    n.second,
		Parent:    n.parent,
	}, true
}

// SetVerticalTabs sets the vertical-tabs flag on a frame node.
func (t *Tree) SetVerticalTabs(id NodeID, v bool) bool {
	n := t.at(id)
	if n == nil || n.kind != KindFrame {
		return false
	}
	n.verticalTabs = v
	return true
}

// ToggleVerticalTabs flips the vertical-tabs flag on the focused frame.
func (t *Tree) ToggleVerticalTabs() bool {
	n := t.at(t.focused)
	if n == nil {
		return false
	}
	n.verticalTabs = !n.verticalTabs
	return true
}

// Traverse visits every node in pre-order (a split before its children).
func (t *Tree) Traverse(fn func(id NodeID, kind Kind)) {
	t.traverse(t.root, fn)
}

func (t *Tree) traverse(id NodeID, fn func(NodeID, Kind)) {
	n := t.at(id)
	if n == nil {
		return
	}
	fn(id, n.kind)
	if n.kind == KindSplit {
		t.traverse(n.first, fn)
		t.traverse(n.second, fn)
	}
}

// FrameCount returns the number of frame (leaf) nodes.
func (t *Tree) FrameCount() int {
	n := 0
	t.Traverse(func(_ NodeID, k Kind) {
		if k == KindFrame {
			n++
		}
	})
	return n
}

// WindowCount returns the total number of windows held across all frames.
func (t *Tree) WindowCount() int {
	n := 0
	t.Traverse(func(id NodeID, k Kind) {
		if k == KindFrame {
			n += len(t.nodes[id.index].windows)
		}
	})
	return n
}

// FindFrameWithWindow scans every frame (O(N), acceptable at the handful
// of frames a workspace typically holds) for the one holding w, returning
// its tab index too.
func (t *Tree) FindFrameWithWindow(w wintypes.WindowHandle) (id NodeID, tabIndex int, found bool) {
	t.Traverse(func(candidate NodeID, k Kind) {
		if found || k != KindFrame {
			return
		}
		ws := t.nodes[candidate.index].windows
		for i, h := range ws {
			if h == w {
				id, tabIndex, found = candidate, i, true
				return
			}
		}
	})
	return id, tabIndex, found
}

// AddWindow appends w to the focused frame's tab list and focuses it.
func (t *Tree) AddWindow(w wintypes.WindowHandle) error {
	n := t.at(t.focused)
	if n == nil || n.kind != KindFrame {
		return ErrFocusNotFrame
	}
	n.windows = append(n.windows, w)
	n.focusedTab = len(n.windows) - 1
	return nil
}

// RemoveWindow removes w from whichever frame holds it, pruning the frame
// if it becomes empty and non-root, and recovering focus if the pruned
// frame was focused. Returns false if w is not present in the tree.
func (t *Tree) RemoveWindow(w wintypes.WindowHandle) bool {
	id, idx, found := t.FindFrameWithWindow(w)
	if !found {
		return false
	}
	t.removeTab(id, idx)
	return true
}

// removeTab removes the tab at idx from frame id, adjusting focusedTab,
// and prunes the frame if it becomes empty and non-root.
func (t *Tree) removeTab(id NodeID, idx int) {
	n := t.at(id)
	if n == nil || n.kind != KindFrame {
		return
	}
	n.windows = append(n.windows[:idx], n.windows[idx+1:]...)
	switch {
	case len(n.windows) == 0:
		n.focusedTab = 0
	case idx < n.focusedTab:
		n.focusedTab--
	case idx == n.focusedTab && n.focusedTab >= len(n.windows):
		n.focusedTab = len(n.windows) - 1
	}
	if len(n.windows) == 0 {
		t.pruneFrame(id)
	}
}

// SplitFocused replaces the focused frame F with a split of direction dir
// and ratio 0.5, whose first child is F and second child is a new empty
// frame. Focus moves to the new frame. Returns the new frame's id.
func (t *Tree) SplitFocused(dir geom.SplitType) (NodeID, error) {
	f := t.focused
	fn := t.at(f)
	if fn == nil || fn.kind != KindFrame {
		return Nil, ErrFocusNotFrame
	}
	oldParent := fn.parent

	split := t.alloc(node{kind: KindSplit, direction: dir, ratio: 0.5, parent: oldParent})
	newFrame := t.alloc(node{kind: KindFrame, parent: split})

	sn := t.at(split)
	sn.first = f
	sn.second = newFrame

	// f keeps its id; just reparent it under the new split.
	fn = t.at(f)
	fn.parent = split

	if oldParent.Valid() {
		pn := t.at(oldParent)
		if pn.first == f {
			pn.first = split
		} else {
			pn.second = split
		}
	} else {
		t.root = split
	}

	t.focused = newFrame
	return newFrame, nil
}

// CycleTab rotates the focused frame's focused_tab by delta (typically +1
// or -1), modulo its tab count.
func (t *Tree) CycleTab(delta int) {
	n := t.at(t.focused)
	if n == nil || n.kind != KindFrame || len(n.windows) == 0 {
		return
	}
	count := len(n.windows)
	n.focusedTab = ((n.focusedTab+delta)%count + count) % count
}

// FocusTab sets the focused frame's focused_tab to i if i is in range,
// otherwise it is a no-op.
func (t *Tree) FocusTab(i int) {
	n := t.at(t.focused)
	if n == nil || n.kind != KindFrame {
		return
	}
	if i >= 0 && i < len(n.windows) {
		n.focusedTab = i
	}
}

// FocusedWindow returns the focused frame's currently visible tab, if any.
func (t *Tree) FocusedWindow() (wintypes.WindowHandle, bool) {
	n := t.at(t.focused)
	if n == nil || n.kind != KindFrame || len(n.windows) == 0 {
		return 0, false
	}
	return n.windows[n.focusedTab], true
}

// CalculateGeometries recursively partitions area using geom.SplitRect and
// returns the rectangle assigned to every frame (leaf) node. The result is
// cached for subsequent FindFrameInDirection calls.
func (t *Tree) CalculateGeometries(area geom.Rect, gap int) map[NodeID]geom.Rect {
	out := make(map[NodeID]geom.Rect)
	t.assignGeom(t.root, area, gap, out)
	t.lastGeom = out
	return out
}

func (t *Tree) assignGeom(id NodeID, area geom.Rect, gap int, out map[NodeID]geom.Rect) {
	n := t.at(id)
	if n == nil {
		return
	}
	if n.kind == KindFrame {
		out[id] = area
		return
	}
	first, second := geom.SplitRect(area, n.direction, n.ratio, gap)
	t.assignGeom(n.first, first, gap, out)
	t.assignGeom(n.second, second, gap, out)
}

// FindFrameInDirection returns the frame whose geometry (per the most
// recent CalculateGeometries call) lies strictly beyond from's relevant
// edge in dir, minimising centre-to-centre squared distance among
// candidates. It returns ok=false if no such frame exists.
func (t *Tree) FindFrameInDirection(from NodeID, dir geom.Direction) (NodeID, bool) {
	fromRect, ok := t.lastGeom[from]
	if !ok {
		return Nil, false
	}
	var best NodeID
	bestDist := -1
	for id, rect := range t.lastGeom {
		if id == from {
			continue
		}
		if !beyondEdge(fromRect, rect, dir) {
			continue
		}
		d := geom.DistanceSquared(fromRect, rect)
		if bestDist == -1 || d < bestDist {
			best, bestDist = id, d
		}
	}
	if bestDist == -1 {
		return Nil, false
	}
	return best, true
}

func beyondEdge(from, candidate geom.Rect, dir geom.Direction) bool {
	switch dir {
	case geom.Right:
		return candidate.X >= from.X+from.W
	case geom.Left:
		return candidate.X+candidate.W <= from.X
	case geom.Down:
		return candidate.Y >= from.Y+from.H
	case geom.Up:
		return candidate.Y+candidate.H <= from.Y
	}
	return false
}

// MoveWindowBetweenFrames removes the focused tab from the focused frame
// and inserts it at the end of the frame found by FindFrameInDirection in
// dir; that window becomes the new focused tab of the target frame, and
// focus follows it. Returns false if there is no focused window or no
// frame in that direction.
func (t *Tree) MoveWindowBetweenFrames(dir geom.Direction) bool {
	w, ok := t.FocusedWindow()
	if !ok {
		return false
	}
	target, ok := t.FindFrameInDirection(t.focused, dir)
	if !ok {
		return false
	}
	n := t.at(t.focused)
	idx := n.focusedTab
	t.removeTab(t.focused, idx)

	tn := t.at(target)
	tn.windows = append(tn.windows, w)
	tn.focusedTab = len(tn.windows) - 1
	t.focused = target
	return true
}

// ResizeFocusedSplit walks up from the focused frame to its nearest
// ancestor split and clamps that split's ratio by delta, in [0.1, 0.9].
// Returns false if the focused frame has no ancestor split (it is the
// sole root frame).
func (t *Tree) ResizeFocusedSplit(delta float64) bool {
	n := t.at(t.focused)
	if n == nil {
		return false
	}
	parent := n.parent
	if !parent.Valid() {
		return false
	}
	pn := t.at(parent)
	pn.ratio = geom.ClampRatio(pn.ratio + delta)
	return true
}

// ResizeFocusedSplitInDirection behaves like ResizeFocusedSplit but walks
// up to the nearest ancestor split whose orientation matches dir's axis,
// applying delta with the sign that grows the focused frame's side when
// delta is positive.
func (t *Tree) ResizeFocusedSplitInDirection(dir geom.Direction, delta float64) bool {
	axis := dir.Axis()
	cur := t.focused
	for {
		n := t.at(cur)
		if n == nil {
			return false
		}
		parent := n.parent
		if !parent.Valid() {
			return false
		}
		pn := t.at(parent)
		if pn.direction == axis {
			sign := 1.0
			if pn.second == cur {
				sign = -1.0
			}
			pn.ratio = geom.ClampRatio(pn.ratio + sign*delta)
			return true
		}
		cur = parent
	}
}

// Equal reports whether t and other have the same tree shape, window
// contents, and split ratios/directions, ignoring which frame is focused.
// Used by the round-trip and split+collapse property tests.
func (t *Tree) Equal(other *Tree) bool {
	return equalNode(t, other, t.root, other.root)
}

func equalNode(a, b *Tree, ai, bi NodeID) bool {
	an, bn := a.at(ai), b.at(bi)
	if an == nil || bn == nil {
		return an == nil && bn == nil
	}
	if an.kind != bn.kind {
		return false
	}
	if an.kind == KindFrame {
		if len(an.windows) != len(bn.windows) {
			return false
		}
		for i := range an.windows {
			if an.windows[i] != bn.windows[i] {
				return false
			}
		}
		return true
	}
	if an.direction != bn.direction || an.ratio != bn.ratio {
		return false
	}
	return equalNode(a, b, an.first, bn.first) && equalNode(a, b, an.second, bn.second)
}
