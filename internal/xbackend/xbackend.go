// Package xbackend implements wmcore.Backend on top of the X11 core
// protocol via github.com/BurntSushi/xgb, the way taowm's main.go/xinit.go/
// input.go speak to the display: a single xgb.Conn claimed as the window
// manager with SubstructureRedirect, checked requests, and Xinerama for
// multi-monitor geometry.
package xbackend

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// Backend is the concrete X11 display connection. One Backend exists per
// running ttwm instance, owned exclusively by the event loop goroutine that
// also runs the reducer — nothing here is safe to call concurrently from a
// second goroutine, the same discipline taowm's main.go uses.
type Backend struct {
	conn    *xgb.Conn
	log     *zap.Logger
	root    xp.Window
	setup   *xp.ScreenInfo
	atoms   atomTable
	screens []monitor

	tabWindows map[layout.NodeID]*tabWindow
	glyph      *glyphSet
	colors     config.Colors

	keyLo, keyHi xp.Keycode
	keysyms      map[xp.Keycode][2]xp.Keysym
	grabbed      []xp.Keycode

	eventTime xp.Timestamp

	// checkers mirrors taowm's main.go checker/check pattern: a checked
	// request passed to check is queued here and its error (if any) is read
	// back and logged at the top of the next iteration. The Backend methods
	// do not use it: each calls Check on its own request and returns the
	// error, so the queue stays empty.
	mu       sync.Mutex
	checkers []checker
}

type checker interface {
	Check() error
}

// monitor is one Xinerama screen's geometry, in global root-window pixel
// coordinates.
type monitor struct {
	rect geom.Rect
}

// Connect opens the X11 display, claims the window manager role, and
// performs the one-time setup taowm's main/becomeTheWM/initAtoms/
// initDesktop/initScreens sequence does: atom interning, Xinerama screen
// query, keyboard mapping, and (if cfg carries a font) the XSETTINGS
// announcement. It returns once the backend is ready to receive events, but
// before any client window has been adopted — the caller drives that via
// AdoptExisting.
func Connect(cfg *config.Config, log *zap.Logger) (*Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("xbackend: connecting to X server: %w", err)
	}
	if err := xinerama.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xbackend: initialising Xinerama: %w", err)
	}

	setup := xp.Setup(conn)
	if len(setup.Roots) != 1 {
		conn.Close()
		return nil, fmt.Errorf("xbackend: unsupported root count %d", len(setup.Roots))
	}

	b := &Backend{
		conn:       conn,
		log:        log,
		root:       setup.Roots[0].Root,
		setup:      &setup.Roots[0],
		tabWindows: make(map[layout.NodeID]*tabWindow),
		keysyms:    make(map[xp.Keycode][2]xp.Keysym),
		colors:     cfg.Colors,
	}

	if err := b.becomeTheWM(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := b.initAtoms(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := b.initScreens(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := b.initKeyboardMapping(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := b.grabKeybindings(cfg); err != nil {
		conn.Close()
		return nil, err
	}
	glyph, err := newGlyphSet(cfg.Appearance.FontSize)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("xbackend: loading glyph set: %w", err)
	}
	b.glyph = glyph
	if cfg.Appearance.Font != "" {
		if err := b.AnnounceXSettings(cfg); err != nil {
			log.Warn("xsettings announcement failed", zap.Error(err))
		}
	}
	return b, nil
}

// Close releases the X11 connection. The window manager process is expected
// to exit shortly after, per spec's cleanup-then-exit shutdown policy. A
// Backend with a nil conn is a no-op here.
func (b *Backend) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

// check queues a checked request's error for inspection at the top of the
// next event-loop iteration, exactly as taowm's package-level check()
// function does with its checkers slice.
func (b *Backend) check(c checker) {
	b.mu.Lock()
	b.checkers = append(b.checkers, c)
	b.mu.Unlock()
}

// drainCheckers runs every queued checker and logs any error at Warn,
// matching taowm's main loop draining checkers into log.Println once per
// iteration. Called by events.go at the start of each loop pass.
func (b *Backend) drainCheckers() {
	b.mu.Lock()
	pending := b.checkers
	b.checkers = nil
	b.mu.Unlock()
	for _, c := range pending {
		if err := c.Check(); err != nil {
			b.log.Warn("x11 request failed", zap.Error(err))
		}
	}
}

// ScreenRect implements wmcore.Backend: the union bounding box of every
// monitor, the same "one big virtual screen, apply-layout doesn't know
// about monitor boundaries" model taowm uses for a single Xinerama screen's
// rect, extended here to cover the whole monitor set since ttwm's
// focus_monitor_left/right needs per-monitor rects kept separately (see
// ScreenAt).
func (b *Backend) ScreenRect() geom.Rect {
	if len(b.screens) == 0 {
		return geom.Rect{W: int(b.setup.WidthInPixels), H: int(b.setup.HeightInPixels)}
	}
	r := b.screens[0].rect
	for _, m := range b.screens[1:] {
		r = union(r, m.rect)
	}
	return r
}

// ScreenAt returns the monitor containing (x, y), or the first monitor if
// none contains it (matching taowm's screenContaining fallback-to-first
// behaviour for off-screen coordinates).
func (b *Backend) ScreenAt(x, y int) geom.Rect {
	for _, m := range b.screens {
		if m.rect.Contains(x, y) {
			return m.rect
		}
	}
	if len(b.screens) > 0 {
		return b.screens[0].rect
	}
	return b.ScreenRect()
}

func union(a, b geom.Rect) geom.Rect {
	x0, y0 := minInt(a.X, b.X), minInt(a.Y, b.Y)
	x1, y1 := maxInt(a.X+a.W, b.X+b.W), maxInt(a.Y+a.H, b.Y+b.H)
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// windowHandle converts between the X11 window id space and ttwm's opaque
// wintypes.WindowHandle — a straight numeric cast, since on this backend a
// WindowHandle literally is an X11 window id (wintypes.go promises this is
// never invented by ttwm; here it is assigned by the X server).
func windowHandle(w xp.Window) wintypes.WindowHandle { return wintypes.WindowHandle(w) }
func xWindow(w wintypes.WindowHandle) xp.Window      { return xp.Window(w) }
