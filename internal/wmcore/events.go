package wmcore

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/workspace"
)

// MapRequest is everything the backend gathered about a window that
// wants to map, handed to the reducer for classification and placement.
type MapRequest struct {
	Window    wintypes.WindowHandle
	Classify  ClassifyInput
	Title     string
	Class     string
	Protocols ProtocolHints
}

// ProtocolHints records which WM_PROTOCOLS atoms a client advertised.
type ProtocolHints struct {
	DeleteWindow bool
	TakeFocus    bool
}

// HandleMapRequest installs a newly mapping window per its classification
// and applies layout. Already-managed windows (a second map-request for a
// window ttwm already knows about) are treated as a no-op remap.
func (r *Reducer) HandleMapRequest(req MapRequest) {
	if r.Registry.Exists(req.Window) {
		if err := r.Backend.Map(req.Window); err != nil {
			r.logBackendErr("map", req.Window, err)
		}
		return
	}

	disposition := Classify(req.Classify)
	r.recordEvent(trace.EventMapRequest, req.Window, req.Title)

	if disposition == DispositionIgnore {
		return
	}

	e := &registry.Entry{
		Handle:         req.Window,
		WorkspaceIndex: r.Workspaces.Current(),
		Title:          req.Title,
		ClassInstance:  req.Class,
		MinW:           req.Classify.MinW,
		MinH:           req.Classify.MinH,
		MaxW:           req.Classify.MaxW,
		MaxH:           req.Classify.MaxH,
		WmDeleteWindow: req.Protocols.DeleteWindow,
		TakesFocus:     req.Protocols.TakeFocus,
	}

	tree := r.Workspaces.CurrentTree()

	switch disposition {
	case DispositionFloat:
		screen := r.Backend.ScreenRect()
		area := screen.Shrink(r.Config.Appearance.OuterGap)
		frameRects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)
		focusedRect, ok := frameRects[tree.Focused()]
		if !ok {
			focusedRect = area
		}
		e.Placement = registry.Placement{
			Tiled:    false,
			Floating: InitialFloatRect(req.Classify.Requested, focusedRect, screen),
		}
		r.Registry.Add(e)
	case DispositionTile:
		if err := tree.AddWindow(req.Window); err != nil {
			r.Log.Error("map-request: focused node is not a frame; dropping window")
			return
		}
		e.Placement = registry.Placement{Tiled: true, FrameID: tree.Focused()}
		r.Registry.Add(e)
	}

	r.ApplyLayout()
}

// HandleUnmap and HandleDestroy both remove a window from every place it
// is tracked: the layout tree, the registry, the tag set, the urgent
// queue. A synthetic unmap-notify is treated the same as a destroy-notify.
func (r *Reducer) HandleUnmap(w wintypes.WindowHandle)   { r.removeWindow(w, trace.EventUnmap) }
func (r *Reducer) HandleDestroy(w wintypes.WindowHandle) { r.removeWindow(w, trace.EventDestroy) }

func (r *Reducer) removeWindow(w wintypes.WindowHandle, evt trace.EventType) {
	if !r.Registry.Exists(w) {
		return
	}
	for i := 0; i < workspace.Count; i++ {
		r.Workspaces.Tree(i).RemoveWindow(w)
	}
	r.Registry.Remove(w)
	r.recordEvent(evt, w, "")
	r.ApplyLayout()

	if r.quitting && r.Registry.Count() == 0 {
		r.shutdownImmediately()
	}
}

// ConfigureRequest is a client asking to move/resize/restack itself.
// Tiled clients have their request overridden by the tree-computed
// geometry (apply-layout already does this unconditionally); floating
// clients' request is honoured, clamped to the screen.
type ConfigureRequest struct {
	Window    wintypes.WindowHandle
	Requested geom.Rect
}

func (r *Reducer) HandleConfigureRequest(req ConfigureRequest) {
	e := r.Registry.Get(req.Window)
	if e == nil || e.Placement.Tiled {
		r.ApplyLayout()
		return
	}
	e.Placement.Floating = ClampToScreen(req.Requested, r.Backend.ScreenRect())
	r.ApplyLayout()
}

// PropertyChange carries whichever of title/class/icon/urgency changed;
// nil fields are untouched.
type PropertyChange struct {
	Window wintypes.WindowHandle
	Title  *string
	Class  *string
	Icon   *IconUpdate
	Urgent *bool
}

// IconUpdate carries a decoded _NET_WM_ICON payload.
type IconUpdate struct {
	ARGB []byte
	W, H int
}

func (r *Reducer) HandlePropertyChange(ch PropertyChange) {
	e := r.Registry.Get(ch.Window)
	if e == nil {
		return
	}
	if ch.Title != nil {
		e.Title = *ch.Title
	}
	if ch.Class != nil {
		e.ClassInstance = *ch.Class
	}
	if ch.Icon != nil {
		e.IconARGB, e.IconW, e.IconH = ch.Icon.ARGB, ch.Icon.W, ch.Icon.H
	}
	if ch.Urgent != nil {
		if *ch.Urgent {
			r.Registry.MarkUrgent(ch.Window)
			r.recordEvent(trace.EventUrgent, ch.Window, "")
		} else {
			r.Registry.ClearUrgent(ch.Window)
		}
	}
	r.recordEvent(trace.EventPropertyChange, ch.Window, "")
	r.ApplyLayout()
}

// HandleEnterNotify implements sloppy focus-follows-mouse: entering a
// managed client focuses it and its frame. Crossing into ttwm's own
// tab-bar windows never reaches here — the backend does not report
// EnterNotify for its own strip windows.
func (r *Reducer) HandleEnterNotify(w wintypes.WindowHandle) {
	if !r.Config.General.FocusFollowsMouse {
		return
	}
	tree := r.Workspaces.CurrentTree()
	frameID, tabIndex, found := tree.FindFrameWithWindow(w)
	if !found {
		return
	}
	tree.SetFocused(frameID)
	tree.FocusTab(tabIndex)
	r.recordEvent(trace.EventFocusChanged, w, "enter_notify")
	r.ApplyLayout()
}

// HandleActiveWindowRequest implements the _NET_ACTIVE_WINDOW client
// message: switch to whatever workspace holds w, and focus it.
func (r *Reducer) HandleActiveWindowRequest(w wintypes.WindowHandle) {
	r.FocusWindow(w)
}

// FocusWindow switches to whatever workspace holds w and focuses it,
// following it into view the same way a _NET_ACTIVE_WINDOW request does
// (HandleActiveWindowRequest) and the IPC focus_window command needs.
// Returns false if w is not a managed window.
func (r *Reducer) FocusWindow(w wintypes.WindowHandle) bool {
	e := r.Registry.Get(w)
	if e == nil {
		return false
	}
	if e.WorkspaceIndex != r.Workspaces.Current() {
		r.SwitchWorkspace(e.WorkspaceIndex)
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
