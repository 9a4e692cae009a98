// Package render implements the tab-bar renderer: for each frame of two
// or more windows, an offscreen strip with one rectangle per tab, colored
// by state, holding a truncated title and optional icon.
package render

import (
	"image"

	"github.com/mattn/go-runewidth"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/geom"
)

// IconSize is the fixed icon dimension tab strips draw at.
const IconSize = 20

// MinTabWidth and MaxTabWidth clamp equal-share horizontal tab widths.
const (
	MinTabWidth = 80
	MaxTabWidth = 200
)

// TabState selects which palette entry a tab is drawn with.
type TabState int

const (
	StateFocused TabState = iota
	StateUnfocusedActive
	StateVisible
	StateTagged
	StateUrgent
)

// TabIndex identifies one tab within a frame's tab strip by position.
type TabIndex int

// Empty is the hit-test result meaning "no tab at that point".
const Empty TabIndex = -1

// Tab is one frame's rendering input for a single tab.
type Tab struct {
	Title      string
	IconARGB   image.Image // nil if the window has no icon or icons are disabled
	State      TabState
}

// Strip is the computed layout of one frame's tab-bar: the pixel rect
// assigned to each tab, in order, plus whether it runs along the top
// (horizontal, one row) or the left (vertical, icons only).
type Strip struct {
	Vertical bool
	Rects    []geom.Rect
}

// LayoutStrip computes each tab's rectangle within area: equal-share tab
// widths clamped to [MinTabWidth,MaxTabWidth] for a horizontal strip, or a
// fixed-width column of icons for a vertical one.
func LayoutStrip(area geom.Rect, n int, vertical bool) Strip {
	if n <= 0 {
		return Strip{Vertical: vertical}
	}
	s := Strip{Vertical: vertical, Rects: make([]geom.Rect, n)}
	if vertical {
		h := area.H / n
		for i := 0; i < n; i++ {
			y := area.Y + i*h
			rh := h
			if i == n-1 {
				rh = area.H - i*h // last tab absorbs integer-division remainder
			}
			s.Rects[i] = geom.Rect{X: area.X, Y: y, W: area.W, H: rh}
		}
		return s
	}
	width := area.W / n
	if width < MinTabWidth {
		width = MinTabWidth
	}
	if width > MaxTabWidth {
		width = MaxTabWidth
	}
	x := area.X
	for i := 0; i < n; i++ {
		w := width
		if i == n-1 {
			// Last horizontal tab takes whatever is left so the strip's
			// total width matches area.W exactly, same rounding
			// philosophy as geom.SplitRect. When MinTabWidth has already
			// pushed the earlier tabs past area's right edge, the last tab
			// gets width 0 and the strip is wider than area.
			w = area.X + area.W - x
			if w < 0 {
				w = 0
			}
		}
		s.Rects[i] = geom.Rect{X: x, Y: area.Y, W: w, H: area.H}
		x += w
	}
	return s
}

// HitTest returns the tab whose rectangle contains the local point
// (localX, localY), or Empty if none does.
func (s Strip) HitTest(localX, localY int) TabIndex {
	for i, r := range s.Rects {
		if r.Contains(localX, localY) {
			return TabIndex(i)
		}
	}
	return Empty
}

// ColorFor resolves a tab's background color from the config palette.
func ColorFor(c config.Colors, state TabState) string {
	switch state {
	case StateFocused:
		return c.TabFocused
	case StateUnfocusedActive:
		return c.TabUnfocusedActive
	case StateVisible:
		return c.TabVisible
	case StateTagged:
		return c.TabTagged
	case StateUrgent:
		return c.TabUrgent
	}
	return c.TabUnfocusedActive
}

// TruncateTitle shortens title to fit within maxWidth display cells,
// appending an ellipsis if it was cut. Display width (not byte or rune
// count) is measured with go-runewidth so wide/CJK glyphs truncate
// correctly.
func TruncateTitle(title string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(title) <= maxWidth {
		return title
	}
	const ellipsis = "…"
	ellipsisWidth := runewidth.StringWidth(ellipsis)
	budget := maxWidth - ellipsisWidth
	if budget <= 0 {
		return runewidth.Truncate(ellipsis, maxWidth, "")
	}
	return runewidth.Truncate(title, budget, "") + ellipsis
}
