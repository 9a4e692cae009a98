package trace

import (
	"fmt"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/workspace"
)

// Violation describes one invariant failure found by Validate.
type Violation struct {
	Kind        string
	Description string
}

// Result is the pure outcome of a validation pass.
type Result struct {
	Valid      bool
	Violations []Violation
}

// Validate checks structural consistency across every workspace's tree and
// the registry. It is a pure function: it mutates nothing, and is safe to
// call from the IPC idle phase without disturbing the reducer's state.
func Validate(ws *workspace.Set, reg *registry.Registry) Result {
	var violations []Violation
	add := func(kind, format string, args ...any) {
		violations = append(violations, Violation{Kind: kind, Description: fmt.Sprintf(format, args...)})
	}

	for i := 0; i < workspace.Count; i++ {
		tr := ws.Tree(i)
		validateTree(tr, i, add)
	}

	windowFrameCount := make(map[uint32]int)
	for i := 0; i < workspace.Count; i++ {
		tr := ws.Tree(i)
		tr.Traverse(func(id layout.NodeID, k layout.Kind) {
			if k != layout.KindFrame {
				return
			}
			fd, _ := tr.Frame(id)
			for _, w := range fd.Windows {
				windowFrameCount[uint32(w)]++
			}
		})
	}
	for w, n := range windowFrameCount {
		if n > 1 {
			add("window_uniqueness", "window %d appears in %d frames across the workspace set", w, n)
		}
	}

	reg.All(func(e *registry.Entry) {
		if e.WorkspaceIndex < 0 || e.WorkspaceIndex >= workspace.Count {
			add("registry_workspace_range", "window %d has out-of-range workspace_index %d", e.Handle, e.WorkspaceIndex)
			return
		}
		if !e.Placement.Tiled {
			return
		}
		tr := ws.Tree(e.WorkspaceIndex)
		if k, ok := tr.Kind(e.Placement.FrameID); !ok || k != layout.KindFrame {
			add("registry_frame_stale", "window %d references a frame that no longer exists", e.Handle)
			return
		}
		fd, _ := tr.Frame(e.Placement.FrameID)
		found := false
		for _, w := range fd.Windows {
			if w == e.Handle {
				found = true
				break
			}
		}
		if !found {
			add("registry_frame_membership", "window %d's registry placement does not match its frame's tab list", e.Handle)
		}
	})

	return Result{Valid: len(violations) == 0, Violations: violations}
}

func validateTree(tr *layout.Tree, workspaceIndex int, add func(kind, format string, args ...any)) {
	root := tr.Root()
	tr.Traverse(func(id layout.NodeID, k layout.Kind) {
		switch k {
		case layout.KindFrame:
			fd, _ := tr.Frame(id)
			maxTab := len(fd.Windows)
			if maxTab == 0 {
				maxTab = 1
			}
			if fd.FocusedTab < 0 || fd.FocusedTab >= maxTab {
				add("focused_tab_range", "workspace %d frame %v: focused_tab=%d out of range for %d windows", workspaceIndex, id, fd.FocusedTab, len(fd.Windows))
			}
			if id != root && len(fd.Windows) == 0 {
				add("empty_frame_not_pruned", "workspace %d frame %v is empty but not root", workspaceIndex, id)
			}
		case layout.KindSplit:
			sp, _ := tr.Split(id)
			if sp.Ratio < geom.MinRatio-1e-9 || sp.Ratio > geom.MaxRatio+1e-9 {
				add("ratio_out_of_bounds", "workspace %d split %v: ratio=%v", workspaceIndex, id, sp.Ratio)
			}
			if !sp.First.Valid() || !sp.Second.Valid() {
				add("split_missing_child", "workspace %d split %v missing a child", workspaceIndex, id)
				return
			}
			if p, ok := tr.Parent(sp.First); !ok || p != id {
				add("non_reciprocal_parent", "workspace %d split %v's first child does not point back to it", workspaceIndex, id)
			}
			if p, ok := tr.Parent(sp.Second); !ok || p != id {
				add("non_reciprocal_parent", "workspace %d split %v's second child does not point back to it", workspaceIndex, id)
			}
		}
	})

	if k, ok := tr.Kind(tr.Focused()); !ok || k != layout.KindFrame {
		add("focus_invalid", "workspace %d focused node %v is not a live frame", workspaceIndex, tr.Focused())
	}
}
