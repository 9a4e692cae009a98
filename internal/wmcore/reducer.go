package wmcore

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/layout"
	"github.com/ttwm/ttwm/internal/registry"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/workspace"
)

// Reducer is the backend-agnostic window manager core: it owns the
// layout/registry/config state and the decision logic that turns display
// events and IPC commands into backend calls. Exactly one Reducer exists
// per running ttwm instance.
type Reducer struct {
	Backend    Backend
	Config     *config.Config
	Workspaces *workspace.Set
	Registry   *registry.Registry
	Trace      *trace.Ring
	Log        *zap.Logger

	drag *dragState

	// quitStrikes/quitLastPress generalise taowm's hardcoded [2]time.Time
	// quitTimes ring in actions.go's doQuit to a config-sized strike
	// counter that resets once a press falls outside the debounce window
	// — see Quit.
	quitStrikes   int
	quitLastPress time.Time
	quitting      bool
	shuttingDown  bool

	lastTabBar map[layout.NodeID]string // dirty-check: last rendered signature per frame

	configReload chan *config.Config
}

// New constructs a Reducer over an already-connected backend and a
// resolved configuration. The caller is responsible for calling
// ApplyLayout once after any windows existing at startup have been
// adopted via AdoptExisting.
func New(backend Backend, cfg *config.Config, log *zap.Logger) *Reducer {
	return &Reducer{
		Backend:    backend,
		Config:     cfg,
		Workspaces: workspace.New(),
		Registry:   registry.New(),
		Trace:      trace.NewRing(2048),
		Log:        log,
		lastTabBar: make(map[layout.NodeID]string),

		configReload: make(chan *config.Config, 1),
	}
}

// QueueConfigReload hands a freshly parsed config to the main loop,
// dropping it if a still-undrained reload is already queued — the same
// "decode off-thread, apply on the single owning thread" split the IPC
// server and X11 event feed use, so a config file write from an editor
// never mutates Config concurrently with ApplyLayout.
func (r *Reducer) QueueConfigReload(cfg *config.Config) {
	select {
	case r.configReload <- cfg:
	default:
		select {
		case <-r.configReload:
		default:
		}
		r.configReload <- cfg
	}
}

// PollConfigReload applies at most one queued config reload, reporting
// whether one was applied. Call once per main-loop iteration.
func (r *Reducer) PollConfigReload() bool {
	select {
	case cfg := <-r.configReload:
		r.Config = cfg
		r.ApplyLayout()
		return true
	default:
		return false
	}
}

// ShuttingDown reports whether Quit has begun terminating the process
// (waiting for WM_DELETE_WINDOW clients to exit before the hard cutoff).
func (r *Reducer) ShuttingDown() bool { return r.shuttingDown }

// focusWindow routes input focus to w (wintypes.None meaning the root
// window) and clears its urgency, mirroring taowm's focus(): a window
// that advertised WM_TAKE_FOCUS gets a synthetic client message instead
// of a direct SetInputFocus.
func (r *Reducer) focusWindow(w wintypes.WindowHandle) {
	takeFocus := false
	if w != wintypes.None {
		if e := r.Registry.Get(w); e != nil {
			takeFocus = e.TakesFocus
		}
		r.Registry.ClearUrgent(w)
	}
	if err := r.Backend.Focus(w, takeFocus); err != nil {
		r.logBackendErr("focus", w, err)
	}
	r.recordEvent(trace.EventFocusChanged, w, "")
}

func (r *Reducer) logBackendErr(op string, w wintypes.WindowHandle, err error) {
	if IsFatal(err) {
		r.Log.Error("fatal backend error, exiting", zap.String("op", op), zap.Error(err))
		r.shutdownImmediately()
		return
	}
	r.Log.Warn("backend request failed", zap.String("op", op), zap.Uint32("window", uint32(w)), zap.Error(err))
	if IsTransientAbsence(err) && w != wintypes.None {
		r.forgetWindow(w)
	}
}

// forgetWindow removes w from every workspace's tree and from the
// registry, as if a destroy-notify had arrived for it. Used when a
// transient backend error (BadWindow) implies the window is already gone.
func (r *Reducer) forgetWindow(w wintypes.WindowHandle) {
	for i := 0; i < workspace.Count; i++ {
		r.Workspaces.Tree(i).RemoveWindow(w)
	}
	r.Registry.Remove(w)
}

func (r *Reducer) shutdownImmediately() {
	r.Registry.All(func(e *registry.Entry) {
		_ = r.Backend.Unmap(e.Handle)
	})
	r.shuttingDown = true
}

// beginShutdown implements the tail of taowm's doQuit: send
// WM_DELETE_WINDOW to every window that advertised support for it, then
// either exit immediately if none did, or give them QuitGraceMs to exit
// on their own before a hard os.Exit.
func (r *Reducer) beginShutdown() {
	r.shuttingDown = true
	waiting := false
	r.Registry.All(func(e *registry.Entry) {
		if e.WmDeleteWindow {
			waiting = true
			if err := r.Backend.SendDeleteWindow(e.Handle); err != nil {
				r.Log.Warn("send_delete_window failed during shutdown", zap.Uint32("window", uint32(e.Handle)), zap.Error(err))
			}
		}
	})
	graceMs := r.Config.General.QuitGraceMs
	if graceMs <= 0 {
		graceMs = 60000
	}
	if !waiting {
		os.Exit(0)
		return
	}
	go func() {
		time.Sleep(time.Duration(graceMs) * time.Millisecond)
		os.Exit(0)
	}()
}

func (r *Reducer) recordEvent(evt trace.EventType, w wintypes.WindowHandle, details string) {
	var wp *uint32
	if w != wintypes.None {
		u := uint32(w)
		wp = &u
	}
	r.Trace.Append(time.Now().UnixMilli(), evt, wp, details)
}
