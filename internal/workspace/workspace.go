// Package workspace holds the fixed set of independent layout trees that
// make up ttwm's desktops, plus the index of the one currently shown.
package workspace

import (
	"fmt"

	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// Count is the number of fixed workspaces ttwm manages.
const Count = 9

// Set is an array of Count independent layout trees with a designated
// current one.
type Set struct {
	trees   [Count]*layout.Tree
	current int
}

// New returns a Set with every workspace holding a fresh, empty tree and
// workspace 0 current.
func New() *Set {
	s := &Set{}
	for i := range s.trees {
		s.trees[i] = layout.New()
	}
	return s
}

// Current returns the index of the currently shown workspace.
func (s *Set) Current() int { return s.current }

// Tree returns workspace i's layout tree. Panics if i is out of range — an
// internal bug, never driven by external input (callers validate indices
// from IPC/config before reaching here).
func (s *Set) Tree(i int) *layout.Tree {
	if i < 0 || i >= Count {
		panic(fmt.Sprintf("workspace: index %d out of range [0,%d)", i, Count))
	}
	return s.trees[i]
}

// CurrentTree returns the currently shown workspace's tree.
func (s *Set) CurrentTree() *layout.Tree { return s.trees[s.current] }

// Switch changes the current workspace index, provided i is in range.
// Returns false (no-op) otherwise. The caller (wmcore) is responsible for
// hiding the old workspace's windows and revealing the new one's.
func (s *Set) Switch(i int) bool {
	if i < 0 || i >= Count {
		return false
	}
	s.current = i
	return true
}

// Next switches to the next workspace, wrapping around.
func (s *Set) Next() { s.Switch((s.current + 1) % Count) }

// Prev switches to the previous workspace, wrapping around.
func (s *Set) Prev() { s.Switch((s.current - 1 + Count) % Count) }

// MoveWindowToWorkspace removes w from workspace i's tree (wherever it is
// in that tree) and adds it to workspace j's focused frame. Returns false
// if w is not present in workspace i, or i/j are out of range, or j is
// already the destination it's being asked to duplicate into.
func (s *Set) MoveWindowToWorkspace(w wintypes.WindowHandle, i, j int) bool {
	if i < 0 || i >= Count || j < 0 || j >= Count || i == j {
		return false
	}
	src := s.trees[i]
	dst := s.trees[j]
	if _, _, found := src.FindFrameWithWindow(w); !found {
		return false
	}
	src.RemoveWindow(w)
	if err := dst.AddWindow(w); err != nil {
		// dst's focused node is never anything but a frame in steady state;
		// surfacing this would require propagating an error up through a
		// call site that treats this as unconditional, so we log nothing
		// here and let the caller's post-mutation validator catch it.
		return false
	}
	return true
}

// WorkspaceOf scans every workspace for w, returning its index. Used by
// commands (e.g. move_to_workspace with no explicit source) that only know
// a window handle. O(N workspaces * frames); acceptable at N=9.
func (s *Set) WorkspaceOf(w wintypes.WindowHandle) (int, bool) {
	for i, tr := range s.trees {
		if _, _, found := tr.FindFrameWithWindow(w); found {
			return i, true
		}
	}
	return 0, false
}
