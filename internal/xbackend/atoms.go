package xbackend

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

// atomTable holds every interned atom the backend needs, the generalised
// form of taowm's package-level atomWM* variables (xinit.go) plus the EWMH
// root-window properties ttwm publishes and watches.
type atomTable struct {
	wmClass        xp.Atom
	wmDeleteWindow xp.Atom
	wmName         xp.Atom
	wmProtocols    xp.Atom
	wmTakeFocus    xp.Atom
	wmTransientFor xp.Atom
	wmHints        xp.Atom
	netWMIcon      xp.Atom
	netWMState     xp.Atom
	netWMStateDemandsAttention xp.Atom
	netWMWindowType            xp.Atom
	netWMWindowTypeDialog      xp.Atom
	netWMWindowTypeUtility     xp.Atom
	netWMWindowTypeSplash      xp.Atom
	netSupported    xp.Atom
	netClientList   xp.Atom
	netActiveWindow xp.Atom
	netCurrentDesktop xp.Atom
	netNumberOfDesktops xp.Atom
	netDesktopNames xp.Atom
	netWMName       xp.Atom
}

// becomeTheWM claims SubstructureRedirect on the root window, taowm's
// xinit.go becomeTheWM verbatim: an AccessError here means another window
// manager already owns the display, which is a fatal startup condition,
// not a transient one.
func (b *Backend) becomeTheWM() error {
	err := xp.ChangeWindowAttributesChecked(b.conn, b.root, xp.CwEventMask, []uint32{
		xp.EventMaskButtonPress |
			xp.EventMaskButtonRelease |
			xp.EventMaskPointerMotion |
			xp.EventMaskSubstructureRedirect |
			xp.EventMaskSubstructureNotify,
	}).Check()
	if err == nil {
		return nil
	}
	if _, ok := err.(xp.AccessError); ok {
		return fmt.Errorf("xbackend: another window manager is already running: %w", err)
	}
	return fmt.Errorf("xbackend: claiming SubstructureRedirect: %w", err)
}

func (b *Backend) initAtoms() error {
	names := map[string]*xp.Atom{
		"WM_CLASS":                   &b.atoms.wmClass,
		"WM_DELETE_WINDOW":           &b.atoms.wmDeleteWindow,
		"WM_NAME":                    &b.atoms.wmName,
		"WM_PROTOCOLS":               &b.atoms.wmProtocols,
		"WM_TAKE_FOCUS":              &b.atoms.wmTakeFocus,
		"WM_TRANSIENT_FOR":           &b.atoms.wmTransientFor,
		"WM_HINTS":                   &b.atoms.wmHints,
		"_NET_WM_ICON":               &b.atoms.netWMIcon,
		"_NET_WM_STATE":              &b.atoms.netWMState,
		"_NET_WM_STATE_DEMANDS_ATTENTION": &b.atoms.netWMStateDemandsAttention,
		"_NET_WM_WINDOW_TYPE":        &b.atoms.netWMWindowType,
		"_NET_WM_WINDOW_TYPE_DIALOG": &b.atoms.netWMWindowTypeDialog,
		"_NET_WM_WINDOW_TYPE_UTILITY": &b.atoms.netWMWindowTypeUtility,
		"_NET_WM_WINDOW_TYPE_SPLASH": &b.atoms.netWMWindowTypeSplash,
		"_NET_SUPPORTED":             &b.atoms.netSupported,
		"_NET_CLIENT_LIST":           &b.atoms.netClientList,
		"_NET_ACTIVE_WINDOW":         &b.atoms.netActiveWindow,
		"_NET_CURRENT_DESKTOP":       &b.atoms.netCurrentDesktop,
		"_NET_NUMBER_OF_DESKTOPS":    &b.atoms.netNumberOfDesktops,
		"_NET_DESKTOP_NAMES":         &b.atoms.netDesktopNames,
		"_NET_WM_NAME":               &b.atoms.netWMName,
	}
	for name, dst := range names {
		atom, err := b.internAtom(name)
		if err != nil {
			return err
		}
		*dst = atom
	}
	return nil
}

func (b *Backend) internAtom(name string) (xp.Atom, error) {
	r, err := xp.InternAtom(b.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("xbackend: interning atom %s: %w", name, err)
	}
	return r.Atom, nil
}
