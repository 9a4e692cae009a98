package config

import catppuccin "github.com/catppuccin/go"

// defaultFlavor is the built-in palette ttwm ships with when [colors] is
// absent or partially specified — Mocha, the same default gbnst's TUI uses.
var defaultFlavor = catppuccin.Mocha

// DefaultColors returns the built-in tab/border palette, derived from the
// Catppuccin Mocha flavor rather than hand-picked hex.
func DefaultColors() Colors {
	return Colors{
		TabFocused:         defaultFlavor.Green().Hex,
		TabUnfocusedActive: defaultFlavor.Surface2().Hex,
		TabVisible:         defaultFlavor.Surface1().Hex,
		TabTagged:          defaultFlavor.Yellow().Hex,
		TabUrgent:          defaultFlavor.Red().Hex,
		BorderFocused:      defaultFlavor.Mauve().Hex,
		BorderUnfocused:    defaultFlavor.Overlay0().Hex,
		Background:         defaultFlavor.Base().Hex,
		Text:               defaultFlavor.Text().Hex,
	}
}

// DefaultAppearance returns the built-in geometry/text defaults.
func DefaultAppearance() Appearance {
	return Appearance{
		Gap:              4,
		OuterGap:         4,
		BorderWidth:      2,
		TabBarHeight:     20,
		VerticalTabWidth: 24,
		Font:             "monospace",
		FontSize:         11,
		ShowIcons:        true,
	}
}

// DefaultGeneral returns the built-in behavioural defaults, including the
// quit-debounce policy generalised from taowm's doQuit (3 presses within
// 5 seconds, by default, rather than taowm's hardcoded 2).
func DefaultGeneral() General {
	return General{
		FocusFollowsMouse: true,
		QuitDebounceCount: 3,
		QuitDebounceMs:    5000,
		QuitGraceMs:       60000,
	}
}

// DefaultKeybindings returns the built-in action -> chord table. Chosen to
// not collide with common client shortcuts; Mod4 (the "Super"/"Windows"
// key) is the primary modifier, matching the convention of most tiling
// window managers (and distinct from taowm's own CapsLock-as-mod scheme,
// which this config format does not expose as a modifier).
func DefaultKeybindings() map[Action]Chord {
	must := func(s string) Chord {
		c, err := ParseChord(s)
		if err != nil {
			panic(err) // built-in table; a parse failure here is a bug in this function
		}
		return c
	}
	return map[Action]Chord{
		ActionCycleTabForward:  must("Mod4+Tab"),
		ActionCycleTabBackward: must("Mod4+Shift+Tab"),

		ActionFocusTab1: must("Mod4+1"),
		ActionFocusTab2: must("Mod4+2"),
		ActionFocusTab3: must("Mod4+3"),
		ActionFocusTab4: must("Mod4+4"),
		ActionFocusTab5: must("Mod4+5"),
		ActionFocusTab6: must("Mod4+6"),
		ActionFocusTab7: must("Mod4+7"),
		ActionFocusTab8: must("Mod4+8"),
		ActionFocusTab9: must("Mod4+9"),

		ActionFocusFrameLeft:  must("Mod4+h"),
		ActionFocusFrameRight: must("Mod4+l"),
		ActionFocusFrameUp:    must("Mod4+k"),
		ActionFocusFrameDown:  must("Mod4+j"),

		ActionMoveWindowLeft:  must("Mod4+Shift+h"),
		ActionMoveWindowRight: must("Mod4+Shift+l"),
		ActionMoveWindowUp:    must("Mod4+Shift+k"),
		ActionMoveWindowDown:  must("Mod4+Shift+j"),

		ActionResizeGrow:   must("Mod4+="),
		ActionResizeShrink: must("Mod4+-"),

		ActionSplitHorizontal: must("Mod4+Control+h"),
		ActionSplitVertical:   must("Mod4+Control+v"),

		ActionCloseWindow:        must("Mod4+Shift+c"),
		ActionToggleFloat:        must("Mod4+f"),
		ActionToggleVerticalTabs: must("Mod4+Control+t"),
		ActionQuit:               must("Mod4+Shift+q"),

		ActionWorkspaceNext: must("Mod4+Right"),
		ActionWorkspacePrev: must("Mod4+Left"),

		ActionWorkspace1: must("Mod4+Control+1"),
		ActionWorkspace2: must("Mod4+Control+2"),
		ActionWorkspace3: must("Mod4+Control+3"),
		ActionWorkspace4: must("Mod4+Control+4"),
		ActionWorkspace5: must("Mod4+Control+5"),
		ActionWorkspace6: must("Mod4+Control+6"),
		ActionWorkspace7: must("Mod4+Control+7"),
		ActionWorkspace8: must("Mod4+Control+8"),
		ActionWorkspace9: must("Mod4+Control+9"),

		ActionTagWindow:         must("Mod4+Shift+t"),
		ActionMoveTaggedWindows: must("Mod4+Shift+m"),
		ActionUntagAll:          must("Mod4+Shift+u"),
		ActionFocusUrgent:       must("Mod4+u"),

		ActionFocusMonitorLeft:  must("Mod4+,"),
		ActionFocusMonitorRight: must("Mod4+."),
	}
}
