package config

// Action names one operation reachable from a keybinding or from the
// `[exec_synthetic]` table.
type Action string

const (
	ActionCycleTabForward  Action = "cycle_tab_forward"
	ActionCycleTabBackward Action = "cycle_tab_backward"

	ActionFocusTab1 Action = "focus_tab_1"
	ActionFocusTab2 Action = "focus_tab_2"
	ActionFocusTab3 Action = "focus_tab_3"
	ActionFocusTab4 Action = "focus_tab_4"
	ActionFocusTab5 Action = "focus_tab_5"
	ActionFocusTab6 Action = "focus_tab_6"
	ActionFocusTab7 Action = "focus_tab_7"
	ActionFocusTab8 Action = "focus_tab_8"
	ActionFocusTab9 Action = "focus_tab_9"

	ActionFocusNext Action = "focus_next"
	ActionFocusPrev Action = "focus_prev"

	ActionFocusFrameLeft  Action = "focus_frame_left"
	ActionFocusFrameRight Action = "focus_frame_right"
	ActionFocusFrameUp    Action = "focus_frame_up"
	ActionFocusFrameDown  Action = "focus_frame_down"

	ActionMoveWindowLeft  Action = "move_window_left"
	ActionMoveWindowRight Action = "move_window_right"
	ActionMoveWindowUp    Action = "move_window_up"
	ActionMoveWindowDown  Action = "move_window_down"

	ActionResizeGrow   Action = "resize_grow"
	ActionResizeShrink Action = "resize_shrink"

	ActionSplitHorizontal Action = "split_horizontal"
	ActionSplitVertical   Action = "split_vertical"

	ActionCloseWindow        Action = "close_window"
	ActionToggleFloat        Action = "toggle_float"
	ActionToggleVerticalTabs Action = "toggle_vertical_tabs"
	ActionQuit               Action = "quit"

	ActionWorkspaceNext Action = "workspace_next"
	ActionWorkspacePrev Action = "workspace_prev"

	ActionWorkspace1 Action = "workspace_1"
	ActionWorkspace2 Action = "workspace_2"
	ActionWorkspace3 Action = "workspace_3"
	ActionWorkspace4 Action = "workspace_4"
	ActionWorkspace5 Action = "workspace_5"
	ActionWorkspace6 Action = "workspace_6"
	ActionWorkspace7 Action = "workspace_7"
	ActionWorkspace8 Action = "workspace_8"
	ActionWorkspace9 Action = "workspace_9"

	ActionTagWindow         Action = "tag_window"
	ActionMoveTaggedWindows Action = "move_tagged_windows"
	ActionUntagAll          Action = "untag_all"
	ActionFocusUrgent       Action = "focus_urgent"

	ActionFocusMonitorLeft  Action = "focus_monitor_left"
	ActionFocusMonitorRight Action = "focus_monitor_right"

	// ActionSendSynthetic is not itself keybindable; it is the action the
	// `[exec_synthetic]` table dispatches per-WM_CLASS, generalising
	// taowm's hardcoded programActions map.
	ActionSendSynthetic Action = "send_synthetic"
)

// actionNames lists every valid Action, used to validate a parsed
// keybindings table against typos.
var actionNames = map[Action]bool{
	ActionCycleTabForward: true, ActionCycleTabBackward: true,
	ActionFocusTab1: true, ActionFocusTab2: true, ActionFocusTab3: true,
	ActionFocusTab4: true, ActionFocusTab5: true, ActionFocusTab6: true,
	ActionFocusTab7: true, ActionFocusTab8: true, ActionFocusTab9: true,
	ActionFocusNext: true, ActionFocusPrev: true,
	ActionFocusFrameLeft: true, ActionFocusFrameRight: true,
	ActionFocusFrameUp: true, ActionFocusFrameDown: true,
	ActionMoveWindowLeft: true, ActionMoveWindowRight: true,
	ActionMoveWindowUp: true, ActionMoveWindowDown: true,
	ActionResizeGrow: true, ActionResizeShrink: true,
	ActionSplitHorizontal: true, ActionSplitVertical: true,
	ActionCloseWindow: true, ActionToggleFloat: true,
	ActionToggleVerticalTabs: true, ActionQuit: true,
	ActionWorkspaceNext: true, ActionWorkspacePrev: true,
	ActionWorkspace1: true, ActionWorkspace2: true, ActionWorkspace3: true,
	ActionWorkspace4: true, ActionWorkspace5: true, ActionWorkspace6: true,
	ActionWorkspace7: true, ActionWorkspace8: true, ActionWorkspace9: true,
	ActionTagWindow: true, ActionMoveTaggedWindows: true,
	ActionUntagAll: true, ActionFocusUrgent: true,
	ActionFocusMonitorLeft: true, ActionFocusMonitorRight: true,
}

// IsValidAction reports whether a is a recognised action name.
func IsValidAction(a Action) bool {
	return actionNames[a]
}
