package xbackend

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"go.uber.org/zap"

	"github.com/ttwm/ttwm/internal/config"
)

// xKeyLo/xKeyHi bound the keycode range queried by GetKeyboardMapping,
// taowm's xinit.go initKeyboardMapping constants.
const (
	xKeyLo = 8
	xKeyHi = 255
)

// initKeyboardMapping loads the keycode -> keysym table for the currently
// active keyboard layout. Unlike taowm (which only ever needs two keysyms
// per keycode — unshifted and shifted — for its hardcoded single binding),
// ttwm keeps the same two-entry table: every config chord names its keysym
// directly, and a config author is expected to bind against the unshifted
// form with an explicit Shift modifier, matching ParseChord's own model.
func (b *Backend) initKeyboardMapping() error {
	km, err := xp.GetKeyboardMapping(b.conn, xKeyLo, xKeyHi-xKeyLo+1).Reply()
	if err != nil {
		return fmt.Errorf("xbackend: querying keyboard mapping: %w", err)
	}
	n := int(km.KeysymsPerKeycode)
	if n < 2 {
		return fmt.Errorf("xbackend: keyboard mapping reports only %d keysyms per keycode", n)
	}
	b.keyLo, b.keyHi = xKeyLo, xKeyHi
	for i := xKeyLo; i <= xKeyHi; i++ {
		code := xp.Keycode(i)
		b.keysyms[code] = [2]xp.Keysym{
			km.Keysyms[(i-xKeyLo)*n+0],
			km.Keysyms[(i-xKeyLo)*n+1],
		}
	}
	return nil
}

// findKeycode returns the first keycode whose unshifted or shifted keysym
// matches sym, and whether the match was on the shifted slot — taowm's
// xinit.go findKeycode, generalised from a single lookup to be called once
// per bound chord.
func (b *Backend) findKeycode(sym xp.Keysym) (code xp.Keycode, shift bool, ok bool) {
	for i := b.keyLo; i <= b.keyHi; i++ {
		pair := b.keysyms[i]
		if pair[0] == sym {
			return i, false, true
		}
		if pair[1] == sym {
			return i, true, true
		}
	}
	return 0, false, false
}

// modMask converts a config.ModMask into the X11 modifier bitmask
// GrabKeyChecked/KeyPressEvent.State use. Mod4 is the conventional
// "Super"/"Windows" key binding; taowm instead grabs with ModMaskAny on a
// single hardcoded key, which ttwm's per-chord config table cannot do
// (ModMaskAny would make every chord sharing a keysym collide), so each
// chord is grabbed with its exact modifier combination instead.
func modMask(m config.ModMask) uint16 {
	var out uint16
	if m&config.ModShift != 0 {
		out |= xp.ModMaskShift
	}
	if m&config.ModControl != 0 {
		out |= xp.ModMaskControl
	}
	if m&config.ModAlt != 0 {
		out |= xp.ModMask1
	}
	if m&config.ModMod4 != 0 {
		out |= xp.ModMask4
	}
	return out
}

// grabKeybindings grabs one keycode+modifier combination per chord bound in
// cfg.Keybindings and cfg.Exec, taowm's xinit.go initKeyboardMapping grab
// loop generalised from a single toGrabs list to the whole config table. A
// chord naming a keysym absent from the current layout is skipped with a
// warning rather than aborting startup — one missing binding should not
// prevent the window manager from starting.
func (b *Backend) grabKeybindings(cfg *config.Config) error {
	seen := make(map[xp.Keycode]bool)
	grabOne := func(chord config.Chord) error {
		code, _, ok := b.findKeycode(xp.Keysym(chord.Keysym))
		if !ok {
			b.log.Warn("keybinding skipped: keysym not in current layout", zap.Uint32("keysym", chord.Keysym))
			return nil
		}
		if err := xp.GrabKeyChecked(b.conn, true, b.root, modMask(chord.Mods), code,
			xp.GrabModeAsync, xp.GrabModeAsync).Check(); err != nil {
			return fmt.Errorf("xbackend: grabbing key %s: %w", chord.String(), err)
		}
		if !seen[code] {
			seen[code] = true
			b.grabbed = append(b.grabbed, code)
		}
		return nil
	}
	for _, chord := range cfg.Keybindings {
		if err := grabOne(chord); err != nil {
			return err
		}
	}
	for chord := range cfg.Exec {
		if err := grabOne(chord); err != nil {
			return err
		}
	}
	return nil
}

// chordFromEvent reconstructs the config.Chord a KeyPressEvent represents,
// the inverse of grabKeybindings: look up the keycode's keysym (unshifted,
// since modifiers including Shift are carried in e.State instead of by
// keysym-shifting, unlike taowm's handleKeyPress) and mask e.State down to
// the four modifiers the config format models.
func (b *Backend) chordFromEvent(e xp.KeyPressEvent) (config.Chord, bool) {
	pair, ok := b.keysyms[e.Detail]
	if !ok {
		return config.Chord{}, false
	}
	sym := pair[0]
	var mods config.ModMask
	if e.State&xp.ModMaskShift != 0 {
		mods |= config.ModShift
	}
	if e.State&xp.ModMaskControl != 0 {
		mods |= config.ModControl
	}
	if e.State&xp.ModMask1 != 0 {
		mods |= config.ModAlt
	}
	if e.State&xp.ModMask4 != 0 {
		mods |= config.ModMod4
	}
	return config.Chord{Mods: mods, Keysym: uint32(sym)}, true
}
