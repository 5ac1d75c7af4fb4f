package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display. Usable excludes panels and docks
// as reported by _NET_WORKAREA.
type Monitor struct {
	ID     int
	Name   string
	Bounds Geometry
	Usable Geometry
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	workarea, hasWorkarea := c.currentWorkarea()

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		bounds := Geometry{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		usable := bounds
		if hasWorkarea {
			usable = clipToWorkarea(bounds, workarea)
		}

		monitors = append(monitors, Monitor{ID: i, Name: name, Bounds: bounds, Usable: usable})
	}

	return monitors, nil
}

// GetActiveMonitor returns the monitor holding the active window, else the
// one under the pointer, else the first.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		if geom, ok := c.WindowGeometry(activeWin); ok {
			if mon := monitorAt(monitors, geom.X+geom.Width/2, geom.Y+geom.Height/2); mon != nil {
				return mon, nil
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if mon := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); mon != nil {
			return mon, nil
		}
	}

	return &monitors[0], nil
}

func (c *Connection) currentWorkarea() (Geometry, bool) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return Geometry{}, false
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		idx = int(current)
	}
	wa := workArea[idx]
	return Geometry{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}, true
}

// clipToWorkarea intersects a monitor with the work area. A work area that
// misses the monitor entirely leaves it unchanged.
func clipToWorkarea(mon, wa Geometry) Geometry {
	x1 := max(mon.X, wa.X)
	y1 := max(mon.Y, wa.Y)
	x2 := min(mon.X+mon.Width, wa.X+wa.Width)
	y2 := min(mon.Y+mon.Height, wa.Y+wa.Height)
	if x2 <= x1 || y2 <= y1 {
		return mon
	}
	return Geometry{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		b := monitors[i].Bounds
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return &monitors[i]
		}
	}
	return nil
}
