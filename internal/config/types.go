// Package config holds ttwm's typed configuration record, its TOML
// loading/hot-reload, and the chord/action vocabulary keybindings are
// expressed in.
package config

// Appearance controls geometry and text rendering: gap, outer_gap,
// border_width, tab_bar_height, vertical_tab_width, font, font_size,
// show_icons.
type Appearance struct {
	Gap              int    `toml:"gap"`
	OuterGap         int    `toml:"outer_gap"`
	BorderWidth      int    `toml:"border_width"`
	TabBarHeight     int    `toml:"tab_bar_height"`
	VerticalTabWidth int    `toml:"vertical_tab_width"`
	Font             string `toml:"font"`
	FontSize         int    `toml:"font_size"`
	ShowIcons        bool   `toml:"show_icons"`
}

// Colors is the enumerated palette for every tab/border visual state.
// Every field is a "#rrggbb" string.
type Colors struct {
	TabFocused         string `toml:"tab_focused"`
	TabUnfocusedActive string `toml:"tab_unfocused_active"` // unfocused-in-focused-frame
	TabVisible         string `toml:"tab_visible"`          // visible-in-unfocused-frame
	TabTagged          string `toml:"tab_tagged"`
	TabUrgent          string `toml:"tab_urgent"`
	BorderFocused      string `toml:"border_focused"`
	BorderUnfocused    string `toml:"border_unfocused"`
	Background         string `toml:"background"`
	Text               string `toml:"text"`
}

// General holds miscellaneous behavioural toggles not tied to appearance.
type General struct {
	FocusFollowsMouse bool `toml:"focus_follows_mouse"`
	QuitDebounceCount int  `toml:"quit_debounce_count"`
	QuitDebounceMs    int  `toml:"quit_debounce_ms"`
	QuitGraceMs       int  `toml:"quit_grace_ms"`
}

// StartupWindow launches one program into a workspace at daemon start.
type StartupWindow struct {
	Workspace int    `toml:"workspace"`
	Command   string `toml:"command"`
	Split     string `toml:"split"` // "", "horizontal", or "vertical" before launching
}

// Raw is the as-parsed TOML document: string keys everywhere, because TOML
// has no notion of this package's Action/Chord types. Resolve converts it
// into a Config.
type Raw struct {
	Appearance    Appearance        `toml:"appearance"`
	Colors        Colors            `toml:"colors"`
	General       General           `toml:"general"`
	Keybindings   map[string]string `toml:"keybindings"`    // action name -> chord string
	Exec          map[string]string `toml:"exec"`           // chord string -> shell command
	ExecSynthetic map[string]string `toml:"exec_synthetic"` // WM_CLASS substring -> chord string
	Startup       []StartupWindow   `toml:"startup"`
}

// Config is the fully resolved, typed configuration the rest of ttwm
// consumes: chord strings have been parsed and validated.
type Config struct {
	Appearance    Appearance
	Colors        Colors
	General       General
	Keybindings   map[Action]Chord
	Exec          map[Chord]string
	ExecSynthetic map[string]Chord // WM_CLASS substring -> synthetic chord to send
	Startup       []StartupWindow
}
