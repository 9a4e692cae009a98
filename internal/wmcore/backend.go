// Package wmcore is the event reducer: the backend-agnostic core that
// classifies new windows, applies layout mutations to the screen, and
// dispatches keybindings and IPC commands through the same code path. It
// owns no X11 code; everything display-specific is reached through the
// Backend interface, satisfied by internal/xbackend.
package wmcore

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/render"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// WindowTypeHint is the client's advertised window type (from
// _NET_WM_WINDOW_TYPE in the X11 backend), used by Classify.
type WindowTypeHint int

const (
	TypeNormal WindowTypeHint = iota
	TypeDialog
	TypeSplash
	TypeUtility
	TypeToolbar
	TypeMenu
	TypeTooltip
)

// Backend is everything the reducer needs from the display connection.
// Every method is a single request whose error, if any, is its return
// value; the reducer never blocks waiting for a matching event.
type Backend interface {
	// ScreenRect returns the pixel area the layout covers; the X11 backend
	// reports the bounding box of every monitor.
	ScreenRect() geom.Rect

	// Configure moves/resizes a managed client to rect with the given
	// border width. Called for every visible window on every apply-layout.
	Configure(w wintypes.WindowHandle, rect geom.Rect, borderWidth int) error

	// Map and Unmap show/hide a client without altering its geometry.
	Map(w wintypes.WindowHandle) error
	Unmap(w wintypes.WindowHandle) error

	// Focus sets input focus to w (or the root window, if w is
	// wintypes.None). takeFocus routes the request through a synthetic
	// WM_TAKE_FOCUS client message instead of SetInputFocus, for clients
	// that advertised that protocol — taowm's focus() does the same
	// dispatch in main.go/actions.go.
	Focus(w wintypes.WindowHandle, takeFocus bool) error

	// WarpPointer moves the pointer to the centre of rect, used when
	// focus follows a keybinding (frame/monitor navigation) rather than
	// the mouse.
	WarpPointer(rect geom.Rect) error

	// MonitorInDirection returns the monitor adjacent to the one containing
	// (x, y), ordered by horizontal position, wrapping around. forward
	// selects right (true) or left (false); reports false on a single-head
	// setup where there is no adjacent monitor.
	MonitorInDirection(x, y int, forward bool) (geom.Rect, bool)

	// UpdateTabBar (re)draws one frame's tab-bar strip. The reducer calls
	// this once per frame whose visible tab set or geometry changed this
	// apply-layout pass; a nil tabs slice with zero-area rect means "this
	// frame no longer shows a bar, undraw it" (the implicit reparent/
	// destroy of the strip's child window is the backend's job).
	UpdateTabBar(id layout.NodeID, rect geom.Rect, vertical bool, tabs []render.Tab) error

	// SetRootWindowList and SetRootActiveWindow publish the EWMH root-window
	// properties _NET_CLIENT_LIST and _NET_ACTIVE_WINDOW.
	// SetRootCurrentDesktop publishes _NET_CURRENT_DESKTOP.
	SetRootWindowList(windows []wintypes.WindowHandle) error
	SetRootActiveWindow(w wintypes.WindowHandle) error
	SetRootCurrentDesktop(index int) error

	// SendDeleteWindow asks a client to close itself via WM_DELETE_WINDOW,
	// for clients that advertised support for it (taowm's doWindowDelete).
	SendDeleteWindow(w wintypes.WindowHandle) error

	// SendSyntheticKey delivers a synthetic KeyPress/KeyRelease pair to w,
	// generalising taowm's sendSynthetic/programActions mechanism to the
	// config-driven [exec_synthetic] table.
	SendSyntheticKey(w wintypes.WindowHandle, keysym uint32, mods uint16) error
}
