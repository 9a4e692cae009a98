package xbackend

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/wmcore"
)

// u32 decodes a little-endian CARD32 out of a GetProperty reply's raw
// value bytes, taowm's xinit.go u32 verbatim.
func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (b *Backend) getProperty(w xp.Window, prop xp.Atom) ([]byte, error) {
	r, err := xp.GetProperty(b.conn, false, w, prop, xp.GetPropertyTypeAny, 0, 1<<20).Reply()
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

// propertyString reads a property as text, taowm's geom.go window.property
// generalised to any atom (taowm only ever called it for WM_NAME) and
// wrapped with the same GetProperty call that window.property uses.
func (b *Backend) propertyString(w xp.Window, prop xp.Atom) string {
	v, err := b.getProperty(w, prop)
	if err != nil {
		return ""
	}
	return string(v)
}

// readProtocols reads WM_PROTOCOLS and reports which of WM_DELETE_WINDOW/
// WM_TAKE_FOCUS the client advertised, taowm's main.go manage() inline
// GetProperty-and-scan loop over atomWMProtocols.
func (b *Backend) readProtocols(w xp.Window) wmcore.ProtocolHints {
	var hints wmcore.ProtocolHints
	v, err := b.getProperty(w, b.atoms.wmProtocols)
	if err != nil {
		return hints
	}
	for ; len(v) >= 4; v = v[4:] {
		switch xp.Atom(u32(v)) {
		case b.atoms.wmDeleteWindow:
			hints.DeleteWindow = true
		case b.atoms.wmTakeFocus:
			hints.TakeFocus = true
		}
	}
	return hints
}

// readTransientFor reads WM_TRANSIENT_FOR, taowm's main.go manage()
// inline GetProperty-on-atomWMTransientFor, generalised to return a
// wintypes.WindowHandle rather than a *window pointer lookup.
func (b *Backend) readTransientFor(w xp.Window) wintypes.WindowHandle {
	v, err := b.getProperty(w, b.atoms.wmTransientFor)
	if err != nil || len(v) != 4 {
		return wintypes.None
	}
	return windowHandle(xp.Window(u32(v)))
}

// readWindowType reads _NET_WM_WINDOW_TYPE and maps the first recognised
// atom in the list to a wmcore.WindowTypeHint. taowm has no equivalent
// (it predates ttwm's EWMH window-type-driven floating rule), so this is
// grounded on the atom table's own _NET_WM_WINDOW_TYPE_* entries instead of
// a teacher call site.
func (b *Backend) readWindowType(w xp.Window) wmcore.WindowTypeHint {
	v, err := b.getProperty(w, b.atoms.netWMWindowType)
	if err != nil {
		return wmcore.TypeNormal
	}
	for ; len(v) >= 4; v = v[4:] {
		switch xp.Atom(u32(v)) {
		case b.atoms.netWMWindowTypeDialog:
			return wmcore.TypeDialog
		case b.atoms.netWMWindowTypeUtility:
			return wmcore.TypeUtility
		case b.atoms.netWMWindowTypeSplash:
			return wmcore.TypeSplash
		}
	}
	return wmcore.TypeNormal
}

// sizeHints bits this package reads out of WM_NORMAL_HINTS, per ICCCM
// section 4.1.2.3. Only the two bits ttwm's classifier needs are named;
// every other field of the property (position hints, resize increments,
// aspect ratio, gravity) is left unread.
const (
	hintPMinSize = 1 << 4
	hintPMaxSize = 1 << 5
)

// readSizeHints decodes WM_NORMAL_HINTS's min/max width and height, the
// values wmcore.ClassifyInput.FixedSize compares to decide whether a
// window should float. Unset fields come back zero, same as an absent
// property; FixedSize already treats zero as "no hint".
func (b *Backend) readSizeHints(w xp.Window) (minW, minH, maxW, maxH int) {
	v, err := b.getProperty(w, xp.AtomWmNormalHints)
	if err != nil || len(v) < 4*9 {
		return 0, 0, 0, 0
	}
	flags := u32(v)
	if flags&hintPMinSize != 0 {
		minW, minH = int(u32(v[4*5:])), int(u32(v[4*6:]))
	}
	if flags&hintPMaxSize != 0 {
		maxW, maxH = int(u32(v[4*7:])), int(u32(v[4*8:]))
	}
	return
}

// readIcon decodes the first image in _NET_WM_ICON (a sequence of
// {width, height, width*height ARGB32 pixels} records) into the byte
// layout internal/wmcore.IconUpdate/registry.Entry.IconARGB expect:
// four bytes per pixel, in A,R,G,B order, matching render.DecodeARGBIcon's
// big-endian-word unpacking on the other end.
func (b *Backend) readIcon(w xp.Window) (argb []byte, iw, ih int, ok bool) {
	v, err := b.getProperty(w, b.atoms.netWMIcon)
	if err != nil || len(v) < 8 {
		return nil, 0, 0, false
	}
	width, height := int(u32(v)), int(u32(v[4:]))
	if width <= 0 || height <= 0 || len(v) < 8+4*width*height {
		return nil, 0, 0, false
	}
	pixels := v[8 : 8+4*width*height]
	out := make([]byte, len(pixels))
	for i := 0; i+4 <= len(pixels); i += 4 {
		px := u32(pixels[i:])
		out[i+0] = byte(px >> 24)
		out[i+1] = byte(px >> 16)
		out[i+2] = byte(px >> 8)
		out[i+3] = byte(px)
	}
	return out, width, height, true
}

// readClassifyInput gathers everything Classify needs about a newly
// mapping window in one pass: override-redirect and geometry from
// GetWindowAttributes/GetGeometry, transient-for and size hints from their
// properties, and window type from EWMH.
func (b *Backend) readClassifyInput(w xp.Window) (wmcore.ClassifyInput, error) {
	attrs, err := xp.GetWindowAttributes(b.conn, w).Reply()
	if err != nil {
		return wmcore.ClassifyInput{}, err
	}
	geomReply, err := xp.GetGeometry(b.conn, xp.Drawable(w)).Reply()
	if err != nil {
		return wmcore.ClassifyInput{}, err
	}
	minW, minH, maxW, maxH := b.readSizeHints(w)
	return wmcore.ClassifyInput{
		OverrideRedirect: attrs.OverrideRedirect,
		WindowType:       b.readWindowType(w),
		TransientFor:     b.readTransientFor(w),
		MinW:             minW, MinH: minH, MaxW: maxW, MaxH: maxH,
		Requested: geom.Rect{
			X: int(geomReply.X), Y: int(geomReply.Y),
			W: int(geomReply.Width), H: int(geomReply.Height),
		},
	}, nil
}
