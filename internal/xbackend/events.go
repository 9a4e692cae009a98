package xbackend

import (
	"fmt"
	"os/exec"

	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/ipc"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/wmcore"
)

// AdoptExisting manages every top-level window already mapped when ttwm
// starts, taowm's main() pre-loop QueryTree/GetWindowAttributes scan,
// skipping override-redirect and already-unmapped windows the same way.
func (b *Backend) AdoptExisting(r *wmcore.Reducer) error {
	tree, err := xp.QueryTree(b.conn, b.root).Reply()
	if err != nil {
		return err
	}
	for _, c := range tree.Children {
		attrs, err := xp.GetWindowAttributes(b.conn, c).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		b.dispatchMapRequest(r, c)
	}
	return nil
}

// Run drives the event loop: drain one already-decoded IPC request if one
// is waiting, drain queued checker errors, then block on the next X11
// event — the same two-part structure taowm's main() uses (minus the
// proactiveChan taowm feeds animation callbacks through, which ttwm has
// no equivalent of), with the IPC drain spliced in ahead of it. ipcSrv
// may be nil, in which case the control socket is simply not polled. It
// returns once the reducer has begun shutdown and every client window is
// gone, or WaitForEvent reports a connection-level error.
func (b *Backend) Run(r *wmcore.Reducer, ipcSrv *ipc.Server) error {
	type result struct {
		ev  interface{}
		err error
	}
	events := make(chan result)
	go func() {
		for {
			ev, err := b.conn.WaitForEvent()
			events <- result{ev, err}
		}
	}()

	for {
		if ipcSrv != nil {
			if req, conn, ok := ipcSrv.Poll(); ok {
				ipcSrv.Respond(conn, ipc.Dispatch(r, req))
			}
		}
		r.PollConfigReload()

		b.drainCheckers()

		res := <-events
		if res.err != nil {
			b.log.Warn("x11 protocol error", zap.Error(res.err))
			continue
		}
		if res.ev == nil {
			return nil
		}
		b.dispatch(r, res.ev)
		if r.ShuttingDown() && r.Registry.Count() == 0 {
			return nil
		}
	}
}

func (b *Backend) dispatch(r *wmcore.Reducer, ev interface{}) {
	switch e := ev.(type) {
	case xp.MapRequestEvent:
		b.dispatchMapRequest(r, e.Window)
	case xp.ConfigureRequestEvent:
		b.handleConfigureRequest(r, e)
	case xp.UnmapNotifyEvent:
		r.HandleUnmap(windowHandle(e.Window))
	case xp.DestroyNotifyEvent:
		r.HandleDestroy(windowHandle(e.Window))
	case xp.EnterNotifyEvent:
		b.eventTime = e.Time
		r.HandleEnterNotify(windowHandle(e.Event))
	case xp.PropertyNotifyEvent:
		b.eventTime = e.Time
		b.handlePropertyNotify(r, e)
	case xp.ButtonPressEvent:
		b.eventTime = e.Time
		b.handleButtonPress(r, e)
	case xp.ButtonReleaseEvent:
		b.eventTime = e.Time
		r.EndDrag()
	case xp.MotionNotifyEvent:
		b.eventTime = e.Time
		r.DragMotion(int(e.RootX), int(e.RootY))
	case xp.KeyPressEvent:
		b.eventTime = e.Time
		b.handleKeyPress(r, e)
	case xp.ClientMessageEvent:
		b.handleClientMessage(r, e)
	default:
		b.log.Debug("unhandled x11 event", zap.String("type", fmt.Sprintf("%T", e)))
	}
}

func (b *Backend) dispatchMapRequest(r *wmcore.Reducer, w xp.Window) {
	classify, err := b.readClassifyInput(w)
	if err != nil {
		b.log.Warn("map request: reading window attributes failed", zap.Error(err))
		return
	}
	r.HandleMapRequest(wmcore.MapRequest{
		Window:    windowHandle(w),
		Classify:  classify,
		Title:     b.propertyString(w, b.atoms.netWMName),
		Class:     b.propertyString(w, b.atoms.wmClass),
		Protocols: b.readProtocols(w),
	})
	if err := xp.ChangeWindowAttributesChecked(b.conn, w, xp.CwEventMask,
		[]uint32{xp.EventMaskEnterWindow | xp.EventMaskPropertyChange | xp.EventMaskStructureNotify},
	).Check(); err != nil {
		b.log.Warn("watching new window failed", zap.Error(err))
	}
}

func (b *Backend) handleConfigureRequest(r *wmcore.Reducer, e xp.ConfigureRequestEvent) {
	r.HandleConfigureRequest(wmcore.ConfigureRequest{
		Window: windowHandle(e.Window),
		Requested: geom.Rect{
			X: int(e.X), Y: int(e.Y), W: int(e.Width), H: int(e.Height),
		},
	})
}

func (b *Backend) handlePropertyNotify(r *wmcore.Reducer, e xp.PropertyNotifyEvent) {
	ch := wmcore.PropertyChange{Window: windowHandle(e.Window)}
	switch e.Atom {
	case b.atoms.netWMName, b.atoms.wmName:
		title := b.propertyString(e.Window, b.atoms.netWMName)
		ch.Title = &title
	case b.atoms.wmClass:
		class := b.propertyString(e.Window, b.atoms.wmClass)
		ch.Class = &class
	case b.atoms.netWMIcon:
		argb, iw, ih, ok := b.readIcon(e.Window)
		if !ok {
			return
		}
		ch.Icon = &wmcore.IconUpdate{ARGB: argb, W: iw, H: ih}
	case b.atoms.wmHints:
		urgent := b.readUrgencyHint(e.Window)
		ch.Urgent = &urgent
	default:
		return
	}
	r.HandlePropertyChange(ch)
}

// readUrgencyHint decodes WM_HINTS's UrgencyHint bit (ICCCM 4.1.2.4, flag
// 1<<8), the only field of WM_HINTS ttwm cares about.
func (b *Backend) readUrgencyHint(w xp.Window) bool {
	v, err := b.getProperty(w, b.atoms.wmHints)
	if err != nil || len(v) < 4 {
		return false
	}
	const urgencyHintFlag = 1 << 8
	return u32(v)&urgencyHintFlag != 0
}

func (b *Backend) handleClientMessage(r *wmcore.Reducer, e xp.ClientMessageEvent) {
	if e.Type == b.atoms.netActiveWindow {
		r.HandleActiveWindowRequest(windowHandle(e.Window))
	}
}

func (b *Backend) handleKeyPress(r *wmcore.Reducer, e xp.KeyPressEvent) {
	chord, ok := b.chordFromEvent(e)
	if !ok {
		return
	}
	for action, bound := range r.Config.Keybindings {
		if bound == chord {
			r.Dispatch(action)
			return
		}
	}
	if cmd, ok := r.Config.Exec[chord]; ok {
		runExecCommand(cmd, b.log)
	}
}

// runExecCommand launches cmd through the user's shell in its own
// goroutine, taowm's actions.go doExec generalised from an argv slice
// (taowm's hardcoded config format) to the single shell command string
// ttwm's [exec] table holds; "sh -c" gives config authors pipes and
// quoting instead of requiring pre-split argv.
func runExecCommand(cmd string, log *zap.Logger) {
	go func() {
		c := exec.Command("sh", "-c", cmd)
		if err := c.Start(); err != nil {
			log.Warn("exec failed to start", zap.String("command", cmd), zap.Error(err))
			return
		}
		_ = c.Wait() // a launched program's own exit status is not ttwm's concern
	}()
}

func (b *Backend) handleButtonPress(r *wmcore.Reducer, e xp.ButtonPressEvent) {
	if tw, frameID, ok := b.tabWindowAt(e.Event); ok {
		if idx := tw.lastStrip.HitTest(int(e.EventX), int(e.EventY)); idx != -1 {
			r.HandleTabClick(frameID, int(idx))
		} else {
			r.HandleFrameContentClick(frameID)
		}
		return
	}

	w := windowHandle(e.Child)
	if w != wintypes.None {
		if frameID, _, found := r.Workspaces.CurrentTree().FindFrameWithWindow(w); found {
			r.HandleFrameContentClick(frameID)
			return
		}
		if r.BeginFloatDrag(w, int(e.RootX), int(e.RootY)) {
			return
		}
	}

	if splitID, axis, ok := b.splitGapAt(r, int(e.RootX), int(e.RootY)); ok {
		r.BeginSplitDrag(splitID, axis, int(e.RootX), int(e.RootY))
	}
}

// tabWindowAt reports the tab-strip window (and the frame it belongs to)
// that owns xWin, if any.
func (b *Backend) tabWindowAt(xWin xp.Window) (*tabWindow, layout.NodeID, bool) {
	for id, tw := range b.tabWindows {
		if tw.xWin == xWin {
			return tw, id, true
		}
	}
	return nil, layout.NodeID{}, false
}

// splitGapAt finds the split whose gap between its two children contains
// (x, y), so a click on the bare gap between two frames starts a resize
// drag. There is no teacher call site for this — taowm's frames always
// fill the screen edge-to-edge and never expose a draggable gap — so this
// walks internal/layout's tree shape directly instead.
func (b *Backend) splitGapAt(r *wmcore.Reducer, x, y int) (layout.NodeID, geom.SplitType, bool) {
	tree := r.Workspaces.CurrentTree()
	area := b.ScreenRect().Shrink(r.Config.Appearance.OuterGap)
	frameRects := tree.CalculateGeometries(area, r.Config.Appearance.Gap)

	var found layout.NodeID
	var axis geom.SplitType
	var hit bool
	tree.Traverse(func(id layout.NodeID, kind layout.Kind) {
		if hit || kind != layout.KindSplit {
			return
		}
		sd, ok := tree.Split(id)
		if !ok {
			return
		}
		firstRect, firstOK := subtreeRect(tree, sd.First, frameRects)
		secondRect, secondOK := subtreeRect(tree, sd.Second, frameRects)
		if !firstOK || !secondOK {
			return
		}
		if sd.Direction == geom.Vertical {
			lo, hi := firstRect, secondRect
			if lo.X > hi.X {
				lo, hi = hi, lo
			}
			if x >= lo.X+lo.W && x <= hi.X && y >= lo.Y && y <= lo.Y+lo.H {
				found, axis, hit = id, geom.Vertical, true
			}
		} else {
			lo, hi := firstRect, secondRect
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if y >= lo.Y+lo.H && y <= hi.Y && x >= lo.X && x <= lo.X+lo.W {
				found, axis, hit = id, geom.Horizontal, true
			}
		}
	})
	return found, axis, hit
}

// subtreeRect returns id's bounding rect: frameRects[id] directly for a
// frame, or the union of both children's rects (recursively) for a split.
func subtreeRect(tree *layout.Tree, id layout.NodeID, frameRects map[layout.NodeID]geom.Rect) (geom.Rect, bool) {
	kind, ok := tree.Kind(id)
	if !ok {
		return geom.Rect{}, false
	}
	if kind == layout.KindFrame {
		r, ok := frameRects[id]
		return r, ok
	}
	sd, ok := tree.Split(id)
	if !ok {
		return geom.Rect{}, false
	}
	first, ok1 := subtreeRect(tree, sd.First, frameRects)
	second, ok2 := subtreeRect(tree, sd.Second, frameRects)
	if !ok1 || !ok2 {
		return geom.Rect{}, false
	}
	return unionRect(first, second), true
}

func unionRect(a, b geom.Rect) geom.Rect {
	x0, y0 := minInt(a.X, b.X), minInt(a.Y, b.Y)
	x1, y1 := maxInt(a.X+a.W, b.X+b.W), maxInt(a.Y+a.H, b.Y+b.H)
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
