package wmcore

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/render"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// ApplyLayout recomputes every frame's geometry on the current workspace
// and pushes the result to the backend. Every mutation that could move
// pixels (map, unmap, split, move, resize, tab cycle, workspace switch)
// ends by calling this.
func (r *Reducer) ApplyLayout() {
	tree := r.Workspaces.CurrentTree()
	screen := r.Backend.ScreenRect()
	area := screen.Shrink(r.Config.Appearance.OuterGap)
	frameRects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)

	visible := make(map[wintypes.WindowHandle]bool)

	tree.Traverse(func(id layout.NodeID, kind layout.Kind) {
		if kind != layout.KindFrame {
			return
		}
		fd, _ := tree.Frame(id)
		rect := frameRects[id]
		showBar := len(fd.Windows) >= 2 || fd.VerticalTabs
		content := rect
		if showBar {
			if fd.VerticalTabs {
				content = rect.InsetLeft(r.Config.Appearance.VerticalTabWidth)
			} else {
				content = rect.InsetTop(r.Config.Appearance.TabBarHeight)
			}
		}
		r.updateTabBar(id, rect, fd, showBar)
		if len(fd.Windows) == 0 {
			return
		}
		w := fd.Windows[fd.FocusedTab]
		visible[w] = true
		r.configureWindow(w, content)
	})

	r.Registry.All(func(e *registry.Entry) {
		if e.WorkspaceIndex != r.Workspaces.Current() || e.Placement.Tiled {
			return
		}
		visible[e.Handle] = true
		r.configureWindow(e.Handle, ClampToScreen(e.Placement.Floating, screen))
	})

	r.Registry.All(func(e *registry.Entry) {
		if visible[e.Handle] {
			return
		}
		if err := r.Backend.Unmap(e.Handle); err != nil {
			r.logBackendErr("unmap", e.Handle, err)
		}
	})

	focused, _ := tree.FocusedWindow()
	r.focusWindow(focused)
	r.publishRootProperties()
}

func (r *Reducer) configureWindow(w wintypes.WindowHandle, rect geom.Rect) {
	if err := r.Backend.Configure(w, rect, r.Config.Appearance.BorderWidth); err != nil {
		r.logBackendErr("configure", w, err)
		return
	}
	if err := r.Backend.Map(w); err != nil {
		r.logBackendErr("map", w, err)
	}
}

// updateTabBar redraws frame id's tab strip if showBar, or undraws it if
// it was showing one last pass and no longer is. The signature comparison
// against lastTabBar is the dirty check that skips an unchanged strip.
func (r *Reducer) updateTabBar(id layout.NodeID, rect geom.Rect, fd layout.FrameData, showBar bool) {
	if !showBar {
		if _, had := r.lastTabBar[id]; had {
			delete(r.lastTabBar, id)
			_ = r.Backend.UpdateTabBar(id, geom.Rect{}, false, nil)
		}
		return
	}
	tabs := make([]render.Tab, len(fd.Windows))
	for i, w := range fd.Windows {
		tabs[i] = render.Tab{Title: r.tabTitle(w), State: r.tabState(id, i, w, fd), IconARGB: r.tabIcon(w)}
	}
	sig := tabBarSignature(rect, fd.VerticalTabs, tabs)
	if r.lastTabBar[id] == sig {
		return
	}
	r.lastTabBar[id] = sig
	barRect := rect
	if fd.VerticalTabs {
		barRect = rect.LeftStrip(r.Config.Appearance.VerticalTabWidth)
	} else {
		barRect = rect.TopStrip(r.Config.Appearance.TabBarHeight)
	}
	if err := r.Backend.UpdateTabBar(id, barRect, fd.VerticalTabs, tabs); err != nil {
		r.Log.Warn("tab bar redraw failed", zap.Error(err))
	}
}

func (r *Reducer) tabTitle(w wintypes.WindowHandle) string {
	if e := r.Registry.Get(w); e != nil {
		return e.Title
	}
	return ""
}

// tabIcon decodes a window's cached _NET_WM_ICON payload into a tab-sized
// image, or nil if icons are disabled or the window never advertised one.
func (r *Reducer) tabIcon(w wintypes.WindowHandle) image.Image {
	if !r.Config.Appearance.ShowIcons {
		return nil
	}
	e := r.Registry.Get(w)
	if e == nil || len(e.IconARGB) == 0 || e.IconW == 0 || e.IconH == 0 {
		return nil
	}
	raw := make([]uint32, e.IconW*e.IconH)
	for i := range raw {
		off := i * 4
		if off+4 > len(e.IconARGB) {
			break
		}
		raw[i] = uint32(e.IconARGB[off])<<24 | uint32(e.IconARGB[off+1])<<16 |
			uint32(e.IconARGB[off+2])<<8 | uint32(e.IconARGB[off+3])
	}
	return render.ScaleIcon(render.DecodeARGBIcon(raw, e.IconW, e.IconH))
}

func (r *Reducer) tabState(id layout.NodeID, tabIndex int, w wintypes.WindowHandle, fd layout.FrameData) render.TabState {
	e := r.Registry.Get(w)
	switch {
	case e != nil && e.Urgent:
		return render.StateUrgent
	case e != nil && e.Tagged:
		return render.StateTagged
	case id == r.Workspaces.CurrentTree().Focused() && tabIndex == fd.FocusedTab:
		return render.StateFocused
	case tabIndex == fd.FocusedTab:
		return render.StateVisible
	default:
		return render.StateUnfocusedActive
	}
}

func tabBarSignature(rect geom.Rect, vertical bool, tabs []render.Tab) string {
	s := fmt.Sprintf("%+v|%v", rect, vertical)
	for _, t := range tabs {
		s += fmt.Sprintf("|%s,%d", t.Title, t.State)
	}
	return s
}

func (r *Reducer) publishRootProperties() {
	var all []wintypes.WindowHandle
	r.Registry.All(func(e *registry.Entry) { all = append(all, e.Handle) })
	if err := r.Backend.SetRootWindowList(all); err != nil {
		r.logBackendErr("set_root_window_list", wintypes.None, err)
	}
	active, _ := r.Workspaces.CurrentTree().FocusedWindow()
	if err := r.Backend.SetRootActiveWindow(active); err != nil {
		r.logBackendErr("set_root_active_window", wintypes.None, err)
	}
	if err := r.Backend.SetRootCurrentDesktop(r.Workspaces.Current()); err != nil {
		r.logBackendErr("set_root_current_desktop", wintypes.None, err)
	}
}
