package layout

import (
	"math/rand"
	"testing"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/wintypes"
)

func TestNewTreeIsSingleEmptyFrame(t *testing.T) {
	tr := New()
	if tr.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1", tr.FrameCount())
	}
	if tr.WindowCount() != 0 {
		t.Fatalf("WindowCount() = %d, want 0", tr.WindowCount())
	}
	fd, ok := tr.Frame(tr.Root())
	if !ok {
		t.Fatal("root is not a frame")
	}
	if fd.FocusedTab != 0 {
		t.Fatalf("FocusedTab = %d, want 0", fd.FocusedTab)
	}
	if tr.Focused() != tr.Root() {
		t.Fatal("new tree is not focused on its root")
	}
}

func TestAddWindowAppendsAndFocuses(t *testing.T) {
	tr := New()
	if err := tr.AddWindow(101); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddWindow(102); err != nil {
		t.Fatal(err)
	}
	fd, _ := tr.Frame(tr.Focused())
	if len(fd.Windows) != 2 || fd.Windows[0] != 101 || fd.Windows[1] != 102 {
		t.Fatalf("windows = %v", fd.Windows)
	}
	if fd.FocusedTab != 1 {
		t.Fatalf("FocusedTab = %d, want 1", fd.FocusedTab)
	}
}

func TestSplitFocused(t *testing.T) {
	tr := New()
	tr.AddWindow(101)
	tr.AddWindow(102)

	newFrame, err := tr.SplitFocused(geom.Vertical)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Focused() != newFrame {
		t.Fatal("focus did not move to the new frame")
	}
	sp, ok := tr.Split(tr.Root())
	if !ok {
		t.Fatal("root is not a split after SplitFocused")
	}
	if sp.Ratio != 0.5 || sp.Direction != geom.Vertical {
		t.Fatalf("split = %+v", sp)
	}
	leftFrame, _ := tr.Frame(sp.First)
	if len(leftFrame.Windows) != 2 {
		t.Fatalf("left frame windows = %v", leftFrame.Windows)
	}
	rightFrame, _ := tr.Frame(sp.Second)
	if len(rightFrame.Windows) != 0 {
		t.Fatalf("right frame should be empty, got %v", rightFrame.Windows)
	}
}

func TestRemoveWindowPrunesNonRootEmptyFrame(t *testing.T) {
	tr := New()
	tr.AddWindow(101)
	tr.AddWindow(102)
	tr.SplitFocused(geom.Vertical) // root -> split(left=[101,102], right=[])

	root, _ := tr.Split(tr.Root())
	// Move focus to the left frame and remove both its windows so it prunes.
	tr.SetFocused(root.First)
	if !tr.RemoveWindow(101) {
		t.Fatal("RemoveWindow(101) = false")
	}
	if !tr.RemoveWindow(102) {
		t.Fatal("RemoveWindow(102) = false")
	}
	if tr.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1 after pruning", tr.FrameCount())
	}
	if tr.Root() != root.Second {
		t.Fatal("root did not collapse to the surviving sibling")
	}
}

func TestRootFrameNeverPruned(t *testing.T) {
	tr := New()
	tr.AddWindow(101)
	tr.RemoveWindow(101)
	if tr.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1 (root frame survives empty)", tr.FrameCount())
	}
	if tr.Root() != tr.Focused() {
		t.Fatal("focus lost on empty root")
	}
}

func TestCycleTabWraps(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)
	tr.AddWindow(3)
	tr.FocusTab(0)
	tr.CycleTab(-1)
	fd, _ := tr.Frame(tr.Focused())
	if fd.FocusedTab != 2 {
		t.Fatalf("FocusedTab = %d, want 2 after wrapping backward", fd.FocusedTab)
	}
	tr.CycleTab(1)
	fd, _ = tr.Frame(tr.Focused())
	if fd.FocusedTab != 0 {
		t.Fatalf("FocusedTab = %d, want 0", fd.FocusedTab)
	}
}

func TestFocusTabOutOfRangeIsNoOp(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)
	tr.FocusTab(99)
	fd, _ := tr.Frame(tr.Focused())
	if fd.FocusedTab != 1 {
		t.Fatalf("FocusedTab = %d, want unchanged 1", fd.FocusedTab)
	}
}

func Test2x2GridSpatialSymmetry(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geom.Vertical) // left | right
	tr.AddWindow(2)
	tr.SplitFocused(geom.Horizontal) // right -> top/bottom
	tr.AddWindow(3)

	root := tr.Root()
	tr.CalculateGeometries(geom.Rect{X: 0, Y: 0, W: 800, H: 600}, 2)

	sp, _ := tr.Split(root)
	leftFrame := sp.First
	tr.SetFocused(leftFrame)

	right, ok := tr.FindFrameInDirection(leftFrame, geom.Right)
	if !ok {
		t.Fatal("no frame to the right of the left frame")
	}
	tr.SetFocused(right)
	back, ok := tr.FindFrameInDirection(right, geom.Left)
	if !ok {
		t.Fatal("no frame to the left of the right frame")
	}
	if back != leftFrame {
		t.Fatalf("right->left did not return to origin: got %v want %v", back, leftFrame)
	}
}

func TestCalculateGeometriesPartitionsExactly(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geom.Vertical)
	tr.AddWindow(2)
	tr.SplitFocused(geom.Horizontal)
	tr.AddWindow(3)

	area := geom.Rect{X: 10, Y: 10, W: 803, H: 601}
	geoms := tr.CalculateGeometries(area, 3)
	if len(geoms) != tr.FrameCount() {
		t.Fatalf("got %d geometries, want %d frames", len(geoms), tr.FrameCount())
	}
	for id, r := range geoms {
		if !area.ContainsRect(r) {
			t.Fatalf("frame %v rect %+v escapes area %+v", id, r, area)
		}
	}
}

func TestRoundTripAddRemove(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)
	before := snapshotShape(tr)

	tr.AddWindow(3)
	tr.RemoveWindow(3)

	after := snapshotShape(tr)
	if before != after {
		t.Fatalf("round trip changed shape: before=%q after=%q", before, after)
	}
}

func TestSplitThenRemoveNewFrameRestoresShape(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)
	before := cloneFrom(tr)

	newFrame, err := tr.SplitFocused(geom.Vertical)
	if err != nil {
		t.Fatal(err)
	}
	_ = newFrame
	tr.SetFocused(newFrame)
	// The new frame is empty: pruning happens automatically only on
	// RemoveWindow. Simulate "close the empty child" by removing it via the
	// same path a frame-merge would use: since it has no window, prune
	// directly.
	tr.pruneFrame(newFrame)

	if !tr.Equal(before) {
		t.Fatal("split+collapse did not restore original shape")
	}
}

func TestMoveWindowTransitivity(t *testing.T) {
	// Both frames keep a second window throughout so that neither move
	// empties (and therefore prunes) its source frame — this test is about
	// move semantics, not the prune-on-move interaction covered elsewhere.
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geom.Vertical)
	tr.AddWindow(2)
	tr.AddWindow(3)

	root, _ := tr.Split(tr.Root())
	left, right := root.First, root.Second

	tr.SetFocused(right)
	tr.FocusTab(0) // focus window 2, leaving window 3 behind in right
	tr.CalculateGeometries(geom.Rect{X: 0, Y: 0, W: 400, H: 300}, 2)
	if ok := tr.MoveWindowBetweenFrames(geom.Left); !ok {
		t.Fatal("move left failed")
	}
	if tr.Focused() != left {
		t.Fatal("focus did not follow the moved window")
	}
	lfd, _ := tr.Frame(left)
	if len(lfd.Windows) != 2 || lfd.Windows[1] != 2 {
		t.Fatalf("left frame after move = %v, want [1 2]", lfd.Windows)
	}
	rfd, _ := tr.Frame(right)
	if len(rfd.Windows) != 1 || rfd.Windows[0] != 3 {
		t.Fatalf("right frame after move = %v, want [3] (no prune)", rfd.Windows)
	}

	tr.CalculateGeometries(geom.Rect{X: 0, Y: 0, W: 400, H: 300}, 2)
	if ok := tr.MoveWindowBetweenFrames(geom.Right); !ok {
		t.Fatal("move right failed")
	}
	fd, _ := tr.Frame(right)
	found := false
	for _, w := range fd.Windows {
		if w == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("window 2 did not return to frame B: %v", fd.Windows)
	}
	if fd.Windows[len(fd.Windows)-1] != 2 {
		t.Fatalf("window 2 not appended at list end: %v", fd.Windows)
	}
}

func TestResizeFocusedSplitClampsRatio(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geom.Vertical)
	tr.ResizeFocusedSplit(10.0)
	sp, _ := tr.Split(tr.Root())
	if sp.Ratio != geom.MaxRatio {
		t.Fatalf("ratio = %v, want clamped to %v", sp.Ratio, geom.MaxRatio)
	}
	tr.ResizeFocusedSplit(-10.0)
	sp, _ = tr.Split(tr.Root())
	if sp.Ratio != geom.MinRatio {
		t.Fatalf("ratio = %v, want clamped to %v", sp.Ratio, geom.MinRatio)
	}
}

// --- randomized structural consistency sweep ---

func TestRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := New()
	var liveWindows []wintypes.WindowHandle
	nextHandle := wintypes.WindowHandle(1)

	for i := 0; i < 2000; i++ {
		switch rng.Intn(6) {
		case 0:
			if err := tr.AddWindow(nextHandle); err == nil {
				liveWindows = append(liveWindows, nextHandle)
				nextHandle++
			}
		case 1:
			if len(liveWindows) > 0 {
				idx := rng.Intn(len(liveWindows))
				w := liveWindows[idx]
				if tr.RemoveWindow(w) {
					liveWindows = append(liveWindows[:idx], liveWindows[idx+1:]...)
				}
			}
		case 2:
			dir := geom.Vertical
			if rng.Intn(2) == 0 {
				dir = geom.Horizontal
			}
			tr.SplitFocused(dir)
		case 3:
			tr.CycleTab(1 - 2*rng.Intn(2))
		case 4:
			tr.CalculateGeometries(geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}, 4)
			dirs := []geom.Direction{geom.Left, geom.Right, geom.Up, geom.Down}
			tr.MoveWindowBetweenFrames(dirs[rng.Intn(len(dirs))])
		case 5:
			tr.ResizeFocusedSplit(float64(rng.Intn(21)-10) / 20)
		}
		assertInvariants(t, tr, liveWindows)
	}
}

func assertInvariants(t *testing.T, tr *Tree, liveWindows []wintypes.WindowHandle) {
	t.Helper()

	seen := map[wintypes.WindowHandle]int{}
	tr.Traverse(func(id NodeID, k Kind) {
		switch k {
		case KindFrame:
			fd, _ := tr.Frame(id)
			maxTab := len(fd.Windows)
			if maxTab == 0 {
				maxTab = 1
			}
			if fd.FocusedTab < 0 || fd.FocusedTab >= maxTab {
				t.Fatalf("focused_tab out of range: focused_tab=%d windows=%d", fd.FocusedTab, len(fd.Windows))
			}
			for _, w := range fd.Windows {
				seen[w]++
			}
			if id != tr.Root() && len(fd.Windows) == 0 {
				t.Fatalf("non-root empty frame survived pruning: %v", id)
			}
		case KindSplit:
			sp, _ := tr.Split(id)
			if sp.Ratio < geom.MinRatio-1e-9 || sp.Ratio > geom.MaxRatio+1e-9 {
				t.Fatalf("split ratio out of bounds: ratio=%v", sp.Ratio)
			}
			if parentOf(tr, sp.First) != id || parentOf(tr, sp.Second) != id {
				t.Fatalf("child parent pointer mismatch for split %v", id)
			}
		}
	})
	for w, count := range seen {
		if count > 1 {
			t.Fatalf("window appears in more than one frame: %v appears in %d frames", w, count)
		}
	}
	if k, ok := tr.Kind(tr.Focused()); !ok || k != KindFrame {
		t.Fatalf("focused node %v is not a live frame", tr.Focused())
	}
}

func parentOf(tr *Tree, id NodeID) NodeID {
	p, _ := tr.Parent(id)
	return p
}

// snapshotShape renders a tree's shape/contents (ignoring focus) as a
// string for equality checks where Equal's NodeID-free comparison is
// overkill.
func snapshotShape(tr *Tree) string {
	var b []byte
	var walk func(id NodeID)
	walk = func(id NodeID) {
		k, ok := tr.Kind(id)
		if !ok {
			b = append(b, '.')
			return
		}
		if k == KindFrame {
			fd, _ := tr.Frame(id)
			b = append(b, 'F', '(')
			for _, w := range fd.Windows {
				b = append(b, byte(w)+'a')
			}
			b = append(b, ')')
			return
		}
		sp, _ := tr.Split(id)
		b = append(b, 'S', '[')
		walk(sp.First)
		walk(sp.Second)
		b = append(b, ']')
	}
	walk(tr.Root())
	return string(b)
}

func cloneFrom(tr *Tree) *Tree {
	clone := New()
	// Rebuild an equivalent fresh tree for structural comparison via Equal;
	// only used by tests that start from a simple single-frame tab list.
	fd, _ := tr.Frame(tr.Root())
	for _, w := range fd.Windows {
		clone.AddWindow(w)
	}
	return clone
}
