package wmcore

import (
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// Disposition is the classification decision a newly mapping window is
// assigned.
type Disposition int

const (
	// DispositionIgnore means never manage it: override-redirect windows
	// and ttwm's own tab-bar strips.
	DispositionIgnore Disposition = iota
	DispositionFloat
	DispositionTile
)

// ClassifyInput is everything Classify needs about a newly mapping
// window, gathered by the backend from its properties.
type ClassifyInput struct {
	OverrideRedirect bool
	OwnTabBar        bool
	WindowType       WindowTypeHint
	TransientFor     wintypes.WindowHandle // wintypes.None if not transient
	MinW, MinH       int
	MaxW, MaxH       int
	Requested        geom.Rect // the client's requested geometry
}

// FixedSize reports whether the client's size hints pin it to one size on
// both axes, one of the float triggers alongside window type and
// transient-for.
func (in ClassifyInput) FixedSize() bool {
	return in.MinW > 0 && in.MinW == in.MaxW && in.MinH > 0 && in.MinH == in.MaxH
}

// Classify decides how a newly mapping window should be managed.
func Classify(in ClassifyInput) Disposition {
	if in.OverrideRedirect || in.OwnTabBar {
		return DispositionIgnore
	}
	if isFloatingType(in.WindowType) || in.TransientFor != wintypes.None || in.FixedSize() {
		return DispositionFloat
	}
	return DispositionTile
}

func isFloatingType(t WindowTypeHint) bool {
	switch t {
	case TypeDialog, TypeSplash, TypeUtility, TypeToolbar, TypeMenu, TypeTooltip:
		return true
	}
	return false
}

// InitialFloatRect computes where a newly floated window should appear:
// its own requested rectangle if that lies within the screen, otherwise
// centred on the focused frame if the request lies off-screen.
func InitialFloatRect(requested, focused, screen geom.Rect) geom.Rect {
	w, h := requested.W, requested.H
	if w <= 0 {
		w = focused.W / 2
	}
	if h <= 0 {
		h = focused.H / 2
	}
	onScreen := requested.X+w > screen.X && requested.X < screen.X+screen.W &&
		requested.Y+h > screen.Y && requested.Y < screen.Y+screen.H
	if onScreen && requested.W > 0 && requested.H > 0 {
		return requested
	}
	fx, fy := focused.Center()
	return geom.Rect{X: fx - w/2, Y: fy - h/2, W: w, H: h}
}

// ClampToScreen keeps a floating window's rectangle fully on-screen,
// shrinking it if it is larger than the screen itself.
func ClampToScreen(r, screen geom.Rect) geom.Rect {
	if r.W > screen.W {
		r.W = screen.W
	}
	if r.H > screen.H {
		r.H = screen.H
	}
	if r.X < screen.X {
		r.X = screen.X
	}
	if r.Y < screen.Y {
		r.Y = screen.Y
	}
	if r.X+r.W > screen.X+screen.W {
		r.X = screen.X + screen.W - r.W
	}
	if r.Y+r.H > screen.Y+screen.H {
		r.Y = screen.Y + screen.H - r.H
	}
	return r
}
