// Package registry is the single source of truth for per-window metadata.
// The layout tree only ever stores window handles; everything else about a
// window — its title, its class, whether it floats, whether anyone has
// looked at it yet — lives here.
package registry

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// Placement records where a window's content lives: tiled in a workspace's
// frame, or floating with its own independently owned geometry.
type Placement struct {
	Tiled    bool
	FrameID  layout.NodeID // valid only when Tiled
	Floating geom.Rect     // valid only when !Tiled
}

// Entry is the metadata ttwm keeps for one managed window, plus the Seen
// flag supplementing taowm's window-list overlay.
type Entry struct {
	Handle           wintypes.WindowHandle
	WorkspaceIndex   int
	Placement        Placement
	Title            string
	ClassInstance    string
	IconARGB         []byte
	IconW, IconH     int
	OverrideRedirect bool
	MinW, MinH       int
	MaxW, MaxH       int
	Urgent           bool
	Tagged           bool
	Seen             bool

	// WmDeleteWindow and TakesFocus record which WM_PROTOCOLS the client
	// advertised, mirroring taowm's window.wmDeleteWindow/wmTakeFocus.
	WmDeleteWindow bool
	TakesFocus     bool
}

// FixedSize reports whether the client's hints pin it to one size (min ==
// max on both axes), a classification signal used to float a window even
// when its type is otherwise ordinary.
func (e Entry) FixedSize() bool {
	return e.MinW > 0 && e.MinW == e.MaxW && e.MinH > 0 && e.MinH == e.MaxH
}

// Registry maps window handles to their Entry. It owns no tree or backend
// state; wmcore is responsible for keeping tree membership and registry
// placement consistent.
type Registry struct {
	entries map[wintypes.WindowHandle]*Entry
	urgent  []wintypes.WindowHandle // FIFO, oldest first
	tagged  []wintypes.WindowHandle // insertion order, used by move_tagged
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[wintypes.WindowHandle]*Entry),
	}
}

// Add installs a new entry, overwriting any previous entry for the same
// handle (callers should check Exists first if that would be a bug).
func (r *Registry) Add(e *Entry) {
	r.entries[e.Handle] = e
}

// Remove deletes w's entry and clears it from the urgent queue and tag set.
// Returns the removed entry, or nil if w was not registered.
func (r *Registry) Remove(w wintypes.WindowHandle) *Entry {
	e, ok := r.entries[w]
	if !ok {
		return nil
	}
	delete(r.entries, w)
	r.removeFromTagged(w)
	r.removeFromUrgent(w)
	return e
}

// Get returns w's entry, or nil if it is not registered.
func (r *Registry) Get(w wintypes.WindowHandle) *Entry {
	return r.entries[w]
}

// Exists reports whether w is registered.
func (r *Registry) Exists(w wintypes.WindowHandle) bool {
	_, ok := r.entries[w]
	return ok
}

// Count returns the number of registered windows.
func (r *Registry) Count() int {
	return len(r.entries)
}

// All calls fn once per registered window; iteration order is unspecified.
func (r *Registry) All(fn func(*Entry)) {
	for _, e := range r.entries {
		fn(e)
	}
}

// MarkUrgent flags w urgent and appends it to the FIFO, unless it is
// already urgent (re-marking does not requeue it — the urgent FIFO is
// ordered by first insertion).
func (r *Registry) MarkUrgent(w wintypes.WindowHandle) {
	e, ok := r.entries[w]
	if !ok || e.Urgent {
		return
	}
	e.Urgent = true
	r.urgent = append(r.urgent, w)
}

// ClearUrgent unmarks w and removes it from the FIFO. Called when the
// window is focused.
func (r *Registry) ClearUrgent(w wintypes.WindowHandle) {
	if e, ok := r.entries[w]; ok {
		e.Urgent = false
	}
	r.removeFromUrgent(w)
}

func (r *Registry) removeFromUrgent(w wintypes.WindowHandle) {
	for i, h := range r.urgent {
		if h == w {
			r.urgent = append(r.urgent[:i], r.urgent[i+1:]...)
			return
		}
	}
}

// Urgent returns the urgent FIFO, oldest first. The returned slice is a
// copy; callers must not mutate registry state through it.
func (r *Registry) Urgent() []wintypes.WindowHandle {
	return append([]wintypes.WindowHandle(nil), r.urgent...)
}

// NextUrgent returns the oldest urgent window without clearing it, or
// ok=false if none is urgent.
func (r *Registry) NextUrgent() (wintypes.WindowHandle, bool) {
	if len(r.urgent) == 0 {
		return 0, false
	}
	return r.urgent[0], true
}

// Tag adds w to the tag set, in insertion order, unless already tagged.
func (r *Registry) Tag(w wintypes.WindowHandle) {
	e, ok := r.entries[w]
	if !ok || e.Tagged {
		return
	}
	e.Tagged = true
	r.tagged = append(r.tagged, w)
}

// Untag removes w from the tag set.
func (r *Registry) Untag(w wintypes.WindowHandle) {
	if e, ok := r.entries[w]; ok {
		e.Tagged = false
	}
	r.removeFromTagged(w)
}

// ToggleTag flips w's membership in the tag set.
func (r *Registry) ToggleTag(w wintypes.WindowHandle) {
	if e, ok := r.entries[w]; ok && e.Tagged {
		r.Untag(w)
	} else {
		r.Tag(w)
	}
}

func (r *Registry) removeFromTagged(w wintypes.WindowHandle) {
	for i, h := range r.tagged {
		if h == w {
			r.tagged = append(r.tagged[:i], r.tagged[i+1:]...)
			return
		}
	}
}

// Tagged returns every currently tagged window, in the order it was tagged.
func (r *Registry) Tagged() []wintypes.WindowHandle {
	return append([]wintypes.WindowHandle(nil), r.tagged...)
}

// UntagAll clears the tag set and returns the windows that were tagged, in
// the order they were tagged.
func (r *Registry) UntagAll() []wintypes.WindowHandle {
	out := r.tagged
	for _, w := range out {
		if e, ok := r.entries[w]; ok {
			e.Tagged = false
		}
	}
	r.tagged = nil
	return out
}

// Floating returns every window currently placed as floating.
func (r *Registry) Floating() []wintypes.WindowHandle {
	var out []wintypes.WindowHandle
	for w, e := range r.entries {
		if !e.Placement.Tiled {
			out = append(out, w)
		}
	}
	return out
}
