package xbackend

import (
	"fmt"
	"image/color"
)

// parseHexColor parses a "#rrggbb" config.Colors entry into an opaque RGBA,
// defaulting to opaque black on a malformed string rather than erroring —
// UpdateTabBar has no error path back to config loading, so a bad palette
// entry degrades to an ugly tab bar instead of a startup failure.
func parseHexColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
