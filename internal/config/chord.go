package config

import (
	"fmt"
	"strings"
)

// ModMask is a bitmask of modifier keys, covering the subset of X11's
// modifier masks exposed to config: Mod4, Shift, Control, Alt.
type ModMask uint16

const (
	ModShift   ModMask = 1 << 0
	ModControl ModMask = 1 << 1
	ModAlt     ModMask = 1 << 2
	ModMod4    ModMask = 1 << 3
)

// Chord is a modifier mask plus an X11 keysym, the unit a keybinding or
// exec binding is addressed by.
type Chord struct {
	Mods   ModMask
	Keysym uint32
}

// keysymByName maps the token vocabulary the config format accepts to X11
// keysym values. Non-printable names come from taowm's keysym.go (itself
// transcribed from /usr/include/X11/keysymdef.h); printable ASCII
// characters are accepted literally, one rune, because X11 keysyms below
// 0x100 are Latin-1 code points.
var keysymByName = map[string]uint32{
	"BackSpace":  0xff08,
	"Tab":        0xff09,
	"ISOLeftTab": 0xfe20,
	"Return":     0xff0d,
	"Escape":     0xff1b,
	"Delete":     0xffff,
	"Home":       0xff50,
	"Left":       0xff51,
	"Up":         0xff52,
	"Right":      0xff53,
	"Down":       0xff54,
	"Page_Up":    0xff55,
	"Page_Down":  0xff56,
	"End":        0xff57,
	"F1":         0xffbe,
	"F2":         0xffbf,
	"F3":         0xffc0,
	"F4":         0xffc1,
	"F5":         0xffc2,
	"F6":         0xffc3,
	"F7":         0xffc4,
	"F8":         0xffc5,
	"F9":         0xffc6,
	"F10":        0xffc7,
	"F11":        0xffc8,
	"F12":        0xffc9,
	"Space":      0x0020,
}

// ParseChord parses a string like "Mod4+Shift+q" into a Chord. Modifier
// tokens are case-sensitive and must be one of Mod4, Shift, Control, Alt;
// the final token is the keysym name (from keysymByName) or a single
// printable ASCII character taken literally.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 {
		return Chord{}, fmt.Errorf("config: empty chord")
	}
	var c Chord
	for i, tok := range parts {
		last := i == len(parts)-1
		switch tok {
		case "Mod4":
			c.Mods |= ModMod4
		case "Shift":
			c.Mods |= ModShift
		case "Control":
			c.Mods |= ModControl
		case "Alt":
			c.Mods |= ModAlt
		default:
			if !last {
				return Chord{}, fmt.Errorf("config: unknown modifier %q in chord %q", tok, s)
			}
			keysym, err := parseKeysymToken(tok)
			if err != nil {
				return Chord{}, fmt.Errorf("config: chord %q: %w", s, err)
			}
			c.Keysym = keysym
		}
	}
	return c, nil
}

func parseKeysymToken(tok string) (uint32, error) {
	if ks, ok := keysymByName[tok]; ok {
		return ks, nil
	}
	runes := []rune(tok)
	if len(runes) == 1 && runes[0] < 0x100 {
		return uint32(runes[0]), nil
	}
	return 0, fmt.Errorf("unrecognised keysym token %q", tok)
}

// String renders c back into ParseChord's accepted format, used when
// logging or echoing a parsed keybinding table back over IPC.
func (c Chord) String() string {
	var b strings.Builder
	if c.Mods&ModMod4 != 0 {
		b.WriteString("Mod4+")
	}
	if c.Mods&ModShift != 0 {
		b.WriteString("Shift+")
	}
	if c.Mods&ModControl != 0 {
		b.WriteString("Control+")
	}
	if c.Mods&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	for name, ks := range keysymByName {
		if ks == c.Keysym {
			b.WriteString(name)
			return b.String()
		}
	}
	if c.Keysym < 0x100 {
		b.WriteRune(rune(c.Keysym))
		return b.String()
	}
	fmt.Fprintf(&b, "0x%x", c.Keysym)
	return b.String()
}
