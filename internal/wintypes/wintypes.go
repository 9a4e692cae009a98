// Package wintypes holds the handful of types shared by every layer of the
// window manager (layout tree, registry, workspace set, reducer, IPC) so
// that none of those packages need to import each other just to talk about
// a window.
package wintypes

// WindowHandle is an opaque identifier for an externally owned (client)
// window. It is never invented by ttwm; it always originates from the
// display backend (an X11 window id in practice).
type WindowHandle uint32

// None is the zero value, meaning "no window".
const None WindowHandle = 0
