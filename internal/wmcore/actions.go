package wmcore

import (
	"strings"
	"time"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// resizeStep is the ratio delta a single resize_grow/resize_shrink
// keypress applies, mirroring taowm's fixed keybinding steps rather than
// exposing a config knob for it.
const resizeStep = 0.05

// Dispatch runs the action bound to a keybinding through the same code
// path an equivalent IPC command uses: every mutation command runs the
// same code path as its keybinding counterpart.
// Returns false if a is not a recognised action, or if the underlying
// operation was a no-op (e.g. resizing a frame with no ancestor split).
func (r *Reducer) Dispatch(a config.Action) bool {
	fn, ok := actionTable[a]
	if !ok {
		return false
	}
	handled := fn(r)
	if handled {
		r.recordEvent(trace.EventCommand, wintypes.None, string(a))
	}
	return handled
}

func focusTabAction(i int) func(*Reducer) bool {
	return func(r *Reducer) bool { return r.FocusTab(i) }
}

func switchWorkspaceAction(i int) func(*Reducer) bool {
	return func(r *Reducer) bool { return r.SwitchWorkspace(i) }
}

var actionTable = map[config.Action]func(*Reducer) bool{
	config.ActionCycleTabForward:  func(r *Reducer) bool { return r.CycleTab(1) },
	config.ActionCycleTabBackward: func(r *Reducer) bool { return r.CycleTab(-1) },

	config.ActionFocusTab1: focusTabAction(0),
	config.ActionFocusTab2: focusTabAction(1),
	config.ActionFocusTab3: focusTabAction(2),
	config.ActionFocusTab4: focusTabAction(3),
	config.ActionFocusTab5: focusTabAction(4),
	config.ActionFocusTab6: focusTabAction(5),
	config.ActionFocusTab7: focusTabAction(6),
	config.ActionFocusTab8: focusTabAction(7),
	config.ActionFocusTab9: focusTabAction(8),

	config.ActionFocusNext: func(r *Reducer) bool { return r.CycleTab(1) },
	config.ActionFocusPrev: func(r *Reducer) bool { return r.CycleTab(-1) },

	config.ActionFocusFrameLeft:  func(r *Reducer) bool { return r.FocusFrame(geom.Left) },
	config.ActionFocusFrameRight: func(r *Reducer) bool { return r.FocusFrame(geom.Right) },
	config.ActionFocusFrameUp:    func(r *Reducer) bool { return r.FocusFrame(geom.Up) },
	config.ActionFocusFrameDown:  func(r *Reducer) bool { return r.FocusFrame(geom.Down) },

	config.ActionMoveWindowLeft:  func(r *Reducer) bool { return r.MoveWindow(geom.Left) },
	config.ActionMoveWindowRight: func(r *Reducer) bool { return r.MoveWindow(geom.Right) },
	config.ActionMoveWindowUp:    func(r *Reducer) bool { return r.MoveWindow(geom.Up) },
	config.ActionMoveWindowDown:  func(r *Reducer) bool { return r.MoveWindow(geom.Down) },

	config.ActionResizeGrow:   func(r *Reducer) bool { return r.ResizeSplit(resizeStep) },
	config.ActionResizeShrink: func(r *Reducer) bool { return r.ResizeSplit(-resizeStep) },

	config.ActionSplitHorizontal: func(r *Reducer) bool { return r.Split(geom.Horizontal) },
	config.ActionSplitVertical:   func(r *Reducer) bool { return r.Split(geom.Vertical) },

	config.ActionCloseWindow:        func(r *Reducer) bool { return r.CloseWindow() },
	config.ActionToggleFloat:        func(r *Reducer) bool { return r.ToggleFloat(wintypes.None) },
	config.ActionToggleVerticalTabs: func(r *Reducer) bool { return r.ToggleVerticalTabs() },
	config.ActionQuit:               func(r *Reducer) bool { return r.Quit() },

	config.ActionWorkspaceNext: func(r *Reducer) bool { r.Workspaces.Next(); r.ApplyLayout(); return true },
	config.ActionWorkspacePrev: func(r *Reducer) bool { r.Workspaces.Prev(); r.ApplyLayout(); return true },

	config.ActionWorkspace1: switchWorkspaceAction(0),
	config.ActionWorkspace2: switchWorkspaceAction(1),
	config.ActionWorkspace3: switchWorkspaceAction(2),
	config.ActionWorkspace4: switchWorkspaceAction(3),
	config.ActionWorkspace5: switchWorkspaceAction(4),
	config.ActionWorkspace6: switchWorkspaceAction(5),
	config.ActionWorkspace7: switchWorkspaceAction(6),
	config.ActionWorkspace8: switchWorkspaceAction(7),
	config.ActionWorkspace9: switchWorkspaceAction(8),

	config.ActionTagWindow:         func(r *Reducer) bool { return r.ToggleTag(wintypes.None) },
	config.ActionMoveTaggedWindows: func(r *Reducer) bool { return r.MoveTaggedWindows() },
	config.ActionUntagAll:          func(r *Reducer) bool { return r.UntagAllOp() },
	config.ActionFocusUrgent:       func(r *Reducer) bool { return r.FocusUrgent() },

	config.ActionFocusMonitorLeft:  func(r *Reducer) bool { return r.FocusMonitor(false) },
	config.ActionFocusMonitorRight: func(r *Reducer) bool { return r.FocusMonitor(true) },

	config.ActionSendSynthetic: func(r *Reducer) bool { return r.SendSynthetic() },
}

// SendSynthetic looks up the focused window's class in the
// [exec_synthetic] table and, on a match, delivers the bound chord as a
// synthetic key event — generalising taowm's doProgramAction, which did
// the same per-class dispatch against its hardcoded programActions map.
func (r *Reducer) SendSynthetic() bool {
	tree := r.Workspaces.CurrentTree()
	w, ok := tree.FocusedWindow()
	if !ok {
		return false
	}
	e := r.Registry.Get(w)
	if e == nil {
		return false
	}
	for class, chord := range r.Config.ExecSynthetic {
		if strings.Contains(e.ClassInstance, class) {
			if err := r.Backend.SendSyntheticKey(w, chord.Keysym, uint16(chord.Mods)); err != nil {
				r.logBackendErr("send_synthetic_key", w, err)
				return false
			}
			return true
		}
	}
	return false
}

// Quit implements the debounced quit action: it must be invoked
// QuitDebounceCount times in a row, each within QuitDebounceMs of the
// previous press, before it takes effect — guarding against a single
// accidental keypress (grounded on taowm's actions.go doQuit, which used a
// hardcoded two-slot time ring over a fixed 5-second window; generalised
// here to a plain strike counter so QuitDebounceCount reads as the literal
// number of presses required, not a ring size).
func (r *Reducer) Quit() bool {
	if r.quitting {
		return false
	}
	count := r.Config.General.QuitDebounceCount
	if count < 1 {
		count = 1
	}
	windowMs := r.Config.General.QuitDebounceMs
	if windowMs <= 0 {
		windowMs = 5000
	}
	window := time.Duration(windowMs) * time.Millisecond

	now := time.Now()
	if r.quitStrikes == 0 || now.Sub(r.quitLastPress) > window {
		r.quitStrikes = 0
	}
	r.quitStrikes++
	r.quitLastPress = now

	if r.quitStrikes < count {
		return true
	}
	r.quitting = true
	r.beginShutdown()
	return true
}

// QuitImmediate shuts the WM down with no debounce: a control-plane quit
// request is a deliberate, non-accidental action the way a keypress isn't,
// so it skips the strike counter Quit guards keybindings with.
func (r *Reducer) QuitImmediate() bool {
	if r.quitting {
		return false
	}
	r.quitting = true
	r.beginShutdown()
	return true
}
