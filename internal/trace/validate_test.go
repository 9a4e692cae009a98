package trace

import (
	"testing"

	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/workspace"
)

func TestValidateFreshWorkspaceSetIsValid(t *testing.T) {
	ws := workspace.New()
	reg := registry.New()
	res := Validate(ws, reg)
	if !res.Valid || len(res.Violations) != 0 {
		t.Fatalf("Validate() = %+v, want valid with no violations", res)
	}
}

func TestValidateCatchesStaleRegistryPlacement(t *testing.T) {
	ws := workspace.New()
	reg := registry.New()

	tr := ws.Tree(0)
	tr.AddWindow(1)
	frame, _, _ := tr.FindFrameWithWindow(1)

	reg.Add(&registry.Entry{
		Handle:         1,
		WorkspaceIndex: 0,
		Placement:      registry.Placement{Tiled: true, FrameID: frame},
	})

	res := Validate(ws, reg)
	if !res.Valid {
		t.Fatalf("Validate() unexpectedly invalid: %+v", res)
	}

	// Now make the registry lie about the frame membership.
	tr.RemoveWindow(1)
	res = Validate(ws, reg)
	if res.Valid {
		t.Fatal("Validate() should catch a registry entry pointing at a frame that no longer holds it")
	}
}

func TestValidateCatchesDuplicateWindow(t *testing.T) {
	ws := workspace.New()
	reg := registry.New()

	ws.Tree(0).AddWindow(1)
	ws.Tree(1).AddWindow(1) // same handle, two workspaces: should never happen

	res := Validate(ws, reg)
	if res.Valid {
		t.Fatal("Validate() should catch a window present in two frames")
	}
	found := false
	for _, v := range res.Violations {
		if v.Kind == "window_uniqueness" {
			found = true
		}
	}
	if !found {
		t.Fatalf("violations = %+v, want a window_uniqueness entry", res.Violations)
	}
}

func TestValidateCatchesOutOfRangeWorkspaceIndex(t *testing.T) {
	ws := workspace.New()
	reg := registry.New()
	reg.Add(&registry.Entry{Handle: 1, WorkspaceIndex: 99})

	res := Validate(ws, reg)
	if res.Valid {
		t.Fatal("Validate() should catch an out-of-range workspace_index")
	}
}
