package ipc

import (
	"encoding/json"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/trace"
	"github.com/ttwm/ttwm/internal/wintypes"
	"github.com/ttwm/ttwm/internal/wmcore"
)

// defaultResizeStep mirrors wmcore's unexported resizeStep: the ratio
// delta a bare "grow"/"shrink" token applies, for clients that don't want
// to pick their own delta.
const defaultResizeStep = 0.05

func parseDirection(s string) (geom.Direction, bool) {
	switch s {
	case "left":
		return geom.Left, true
	case "right":
		return geom.Right, true
	case "up":
		return geom.Up, true
	case "down":
		return geom.Down, true
	}
	return 0, false
}

func parseSplitType(s string) (geom.SplitType, bool) {
	switch s {
	case "horizontal":
		return geom.Horizontal, true
	case "vertical":
		return geom.Vertical, true
	}
	return 0, false
}

// Dispatch runs one decoded request against r and returns the response to
// send back. Every mutation command reaches the reducer through the exact
// same exported method its keybinding counterpart in wmcore/actions.go
// uses, per the command server's "no separate code path" contract.
func Dispatch(r *wmcore.Reducer, req request) response {
	switch req.Command {
	case "get_state":
		return stateResponse(buildWmStateSnapshot(r))
	case "get_layout":
		return stateResponse(buildLayoutOnlySnapshot(r))
	case "get_windows":
		return response{Status: "ok", Data: buildWindowList(r)}
	case "get_focused":
		w, ok := r.Workspaces.CurrentTree().FocusedWindow()
		if !ok {
			return response{Status: "ok", Data: nil}
		}
		return response{Status: "ok", Data: w}

	case "focus_window":
		return boolResult(r.FocusWindow(wintypes.WindowHandle(req.Window)))
	case "focus_tab":
		return boolResult(r.FocusTab(req.Index - 1))
	case "focus_frame":
		dir, ok := parseDirection(req.Direction)
		if !ok {
			return errResponse("invalid_args", "focus_frame requires a direction")
		}
		return boolResult(r.FocusFrame(dir))
	case "split":
		dir, ok := parseSplitType(req.Direction)
		if !ok {
			return errResponse("invalid_args", "split requires horizontal or vertical")
		}
		return boolResult(r.Split(dir))
	case "move_window":
		dir, ok := parseDirection(req.Direction)
		if !ok {
			return errResponse("invalid_args", "move_window requires a left/right/up/down direction")
		}
		return boolResult(r.MoveWindow(dir))
	case "resize_split":
		delta, ok := resolveDelta(req)
		if !ok {
			return errResponse("invalid_args", "resize_split requires a delta or grow/shrink")
		}
		return boolResult(r.ResizeSplit(delta))
	case "cycle_tab":
		delta := 1
		if req.Direction == "backward" {
			delta = -1
		}
		return boolResult(r.CycleTab(delta))
	case "close_window":
		return boolResult(r.CloseWindow())
	case "toggle_float":
		return boolResult(r.ToggleFloat(wintypes.WindowHandle(req.Window)))
	case "toggle_vertical_tabs":
		return boolResult(r.ToggleVerticalTabs())

	case "tag":
		return boolResult(r.Tag(wintypes.WindowHandle(req.Window)))
	case "untag":
		return boolResult(r.Untag(wintypes.WindowHandle(req.Window)))
	case "toggle_tag":
		return boolResult(r.ToggleTag(wintypes.WindowHandle(req.Window)))
	case "move_tagged":
		return boolResult(r.MoveTaggedWindows())
	case "untag_all":
		return boolResult(r.UntagAllOp())
	case "tagged":
		return response{Status: "ok", Data: windowHandleList(r.Registry.Tagged())}
	case "floating":
		return response{Status: "ok", Data: windowHandleList(r.Registry.Floating())}
	case "urgent":
		return response{Status: "ok", Data: windowHandleList(r.Registry.Urgent())}
	case "focus_urgent":
		return boolResult(r.FocusUrgent())

	case "workspace":
		switch req.Direction {
		case "next":
			r.Workspaces.Next()
			r.ApplyLayout()
			return ok()
		case "prev":
			r.Workspaces.Prev()
			r.ApplyLayout()
			return ok()
		default:
			return boolResult(r.SwitchWorkspace(req.N))
		}
	case "current_workspace":
		return response{Status: "ok", Data: r.Workspaces.Current()}
	case "move_to_workspace":
		return boolResult(r.MoveToWorkspace(wintypes.WindowHandle(req.Window), req.N))

	case "validate_state":
		result := trace.Validate(r.Workspaces, r.Registry)
		return response{Status: "validation", Valid: result.Valid, Violations: result.Violations}
	case "get_event_log":
		return response{Status: "ok", Data: r.Trace.Recent(req.Count)}
	case "quit":
		r.QuitImmediate()
		return ok()
	}
	return errResponse("invalid_command", "unrecognised command: "+req.Command)
}

func boolResult(handled bool) response {
	if handled {
		return ok()
	}
	return errResponse("unhandled", "command had no effect")
}

// resolveDelta accepts resize_split's delta either as a JSON number or as
// one of the tokens "grow"/"shrink" carried in Direction (the table names
// it as an alternative to a numeric delta, and this server's request
// envelope has no separate field for it, so the same Direction slot is
// reused).
func resolveDelta(req request) (float64, bool) {
	if len(req.Delta) > 0 {
		var f float64
		if err := json.Unmarshal(req.Delta, &f); err == nil {
			return f, true
		}
		var s string
		if err := json.Unmarshal(req.Delta, &s); err == nil {
			switch s {
			case "grow":
				return defaultResizeStep, true
			case "shrink":
				return -defaultResizeStep, true
			}
		}
		return 0, false
	}
	switch req.Direction {
	case "grow":
		return defaultResizeStep, true
	case "shrink":
		return -defaultResizeStep, true
	}
	return 0, false
}
