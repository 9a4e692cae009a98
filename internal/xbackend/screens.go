package xbackend

import (
	"sort"

	"github.com/BurntSushi/xgb/xinerama"

	"github.com/ttwm/ttwm/internal/geom"
)

// initScreens queries Xinerama for the monitor layout, taowm's xinit.go
// initScreens: when Xinerama reports no screens (single-head setups without
// the extension active), it falls back to one screen covering the whole
// root window.
func (b *Backend) initScreens() error {
	reply, err := xinerama.QueryScreens(b.conn).Reply()
	if err != nil {
		return err
	}
	if len(reply.ScreenInfo) == 0 {
		b.screens = []monitor{{rect: geom.Rect{
			W: int(b.setup.WidthInPixels),
			H: int(b.setup.HeightInPixels),
		}}}
		return nil
	}
	b.screens = make([]monitor, len(reply.ScreenInfo))
	for i, si := range reply.ScreenInfo {
		b.screens[i] = monitor{rect: geom.Rect{
			X: int(si.XOrg),
			Y: int(si.YOrg),
			W: int(si.Width),
			H: int(si.Height),
		}}
	}
	return nil
}

// MonitorInDirection implements wmcore.Backend: the monitor whose rect
// lies to the left/right of the one containing (x, y), ordered by X
// origin, wrapping around.
func (b *Backend) MonitorInDirection(x, y int, forward bool) (geom.Rect, bool) {
	if forward {
		return b.adjacentMonitor(x, y, 1)
	}
	return b.adjacentMonitor(x, y, -1)
}

func (b *Backend) adjacentMonitor(x, y, dir int) (geom.Rect, bool) {
	if len(b.screens) < 2 {
		return geom.Rect{}, false
	}
	order := make([]int, len(b.screens))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.screens[order[i]].rect.X < b.screens[order[j]].rect.X
	})
	cur := -1
	for pos, i := range order {
		if b.screens[i].rect.Contains(x, y) {
			cur = pos
			break
		}
	}
	if cur == -1 {
		return geom.Rect{}, false
	}
	next := order[(cur+dir+len(order))%len(order)]
	return b.screens[next].rect, true
}
