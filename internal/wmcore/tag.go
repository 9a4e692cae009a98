package wmcore

import (
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// ToggleTag flips w's membership in the tag set. w == wintypes.None means
// "the focused tab".
func (r *Reducer) ToggleTag(w wintypes.WindowHandle) bool {
	if w == wintypes.None {
		var ok bool
		w, ok = r.Workspaces.CurrentTree().FocusedWindow()
		if !ok {
			return false
		}
	}
	if !r.Registry.Exists(w) {
		return false
	}
	r.Registry.ToggleTag(w)
	r.recordEvent(trace.EventTag, w, "")
	r.ApplyLayout()
	return true
}

// Tag and Untag set a window's tag membership unconditionally, for the
// IPC `tag`/`untag` commands, which are distinct from the single
// keybindable toggle_tag action.
func (r *Reducer) Tag(w wintypes.WindowHandle) bool {
	if !r.Registry.Exists(w) {
		return false
	}
	r.Registry.Tag(w)
	r.recordEvent(trace.EventTag, w, "")
	r.ApplyLayout()
	return true
}

func (r *Reducer) Untag(w wintypes.WindowHandle) bool {
	if !r.Registry.Exists(w) {
		return false
	}
	r.Registry.Untag(w)
	r.recordEvent(trace.EventTag, w, "")
	r.ApplyLayout()
	return true
}

// MoveTaggedWindows moves every tagged window into the focused frame, in
// the order it was tagged, and clears the tag set. A tagged window already
// tiled in the focused frame is skipped; a tagged floating window is
// pulled in and tiled along with the rest.
func (r *Reducer) MoveTaggedWindows() bool {
	tagged := r.Registry.UntagAll()
	if len(tagged) == 0 {
		return false
	}
	tree := r.Workspaces.CurrentTree()
	target := tree.Focused()
	moved := false
	for _, w := range tagged {
		e := r.Registry.Get(w)
		if e == nil {
			continue
		}
		if e.Placement.Tiled && e.Placement.FrameID == target && e.WorkspaceIndex == r.Workspaces.Current() {
			continue
		}
		if e.WorkspaceIndex != r.Workspaces.Current() {
			if !r.Workspaces.MoveWindowToWorkspace(w, e.WorkspaceIndex, r.Workspaces.Current()) {
				continue
			}
		} else if e.Placement.Tiled {
			tree.RemoveWindow(w)
			if err := tree.AddWindow(w); err != nil {
				continue
			}
		} else if err := tree.AddWindow(w); err != nil {
			continue
		}
		e.Placement = registry.Placement{Tiled: true, FrameID: tree.Focused()}
		e.WorkspaceIndex = r.Workspaces.Current()
		moved = true
	}
	if moved {
		r.ApplyLayout()
	}
	return moved
}

// UntagAllOp clears every tag without moving anything, for the IPC
// `untag_all` command.
func (r *Reducer) UntagAllOp() bool {
	tagged := r.Registry.UntagAll()
	if len(tagged) == 0 {
		return false
	}
	r.recordEvent(trace.EventTag, wintypes.None, "untag_all")
	r.ApplyLayout()
	return true
}
