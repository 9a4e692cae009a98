package wmcore

import (
	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/render"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// fakeBackend is an in-memory Backend recording every call it received,
// standing in for internal/xbackend in tests.
type fakeBackend struct {
	screen geom.Rect

	configured map[wintypes.WindowHandle]geom.Rect
	mapped     map[wintypes.WindowHandle]bool
	focused    wintypes.WindowHandle
	lastTakeFocus bool
	warped     geom.Rect
	tabBars    map[layout.NodeID][]render.Tab
	rootList   []wintypes.WindowHandle
	activeWin  wintypes.WindowHandle
	desktop    int
	deleted    []wintypes.WindowHandle
	synthetic  []uint32

	// failConfigure, when non-nil, is returned by Configure for the named
	// window once, then cleared.
	failConfigure map[wintypes.WindowHandle]error
}

func newFakeBackend(screen geom.Rect) *fakeBackend {
	return &fakeBackend{
		screen:     screen,
		configured: make(map[wintypes.WindowHandle]geom.Rect),
		mapped:     make(map[wintypes.WindowHandle]bool),
		tabBars:    make(map[layout.NodeID][]render.Tab),
	}
}

func (b *fakeBackend) ScreenRect() geom.Rect { return b.screen }

func (b *fakeBackend) Configure(w wintypes.WindowHandle, rect geom.Rect, borderWidth int) error {
	if err, ok := b.failConfigure[w]; ok {
		delete(b.failConfigure, w)
		return err
	}
	b.configured[w] = rect
	return nil
}

func (b *fakeBackend) Map(w wintypes.WindowHandle) error {
	b.mapped[w] = true
	return nil
}

func (b *fakeBackend) Unmap(w wintypes.WindowHandle) error {
	b.mapped[w] = false
	return nil
}

func (b *fakeBackend) Focus(w wintypes.WindowHandle, takeFocus bool) error {
	b.focused = w
	b.lastTakeFocus = takeFocus
	return nil
}

func (b *fakeBackend) WarpPointer(rect geom.Rect) error {
	b.warped = rect
	return nil
}

func (b *fakeBackend) MonitorInDirection(x, y int, forward bool) (geom.Rect, bool) {
	return geom.Rect{}, false
}

func (b *fakeBackend) UpdateTabBar(id layout.NodeID, rect geom.Rect, vertical bool, tabs []render.Tab) error {
	if tabs == nil {
		delete(b.tabBars, id)
		return nil
	}
	b.tabBars[id] = tabs
	return nil
}

func (b *fakeBackend) SetRootWindowList(windows []wintypes.WindowHandle) error {
	b.rootList = windows
	return nil
}

func (b *fakeBackend) SetRootActiveWindow(w wintypes.WindowHandle) error {
	b.activeWin = w
	return nil
}

func (b *fakeBackend) SetRootCurrentDesktop(index int) error {
	b.desktop = index
	return nil
}

func (b *fakeBackend) SendDeleteWindow(w wintypes.WindowHandle) error {
	b.deleted = append(b.deleted, w)
	return nil
}

func (b *fakeBackend) SendSyntheticKey(w wintypes.WindowHandle, keysym uint32, mods uint16) error {
	b.synthetic = append(b.synthetic, keysym)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Appearance:    config.DefaultAppearance(),
		Colors:        config.DefaultColors(),
		General:       config.DefaultGeneral(),
		Keybindings:   config.DefaultKeybindings(),
		Exec:          map[config.Chord]string{},
		ExecSynthetic: map[string]config.Chord{},
	}
}

func newTestReducer() (*Reducer, *fakeBackend) {
	backend := newFakeBackend(geom.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	r := New(backend, testConfig(), zap.NewNop())
	return r, backend
}

func mapTiled(r *Reducer, w wintypes.WindowHandle, title string) {
	r.HandleMapRequest(MapRequest{
		Window:   w,
		Classify: ClassifyInput{},
		Title:    title,
		Class:    "Test",
		Protocols: ProtocolHints{DeleteWindow: true, TakeFocus: false},
	})
}

// mapFloating maps w with fixed size hints, a Classify trigger that always
// yields DispositionFloat.
func mapFloating(r *Reducer, w wintypes.WindowHandle, title string) {
	r.HandleMapRequest(MapRequest{
		Window:   w,
		Classify: ClassifyInput{MinW: 200, MaxW: 200, MinH: 100, MaxH: 100},
		Title:    title,
		Class:    "Test",
	})
}
