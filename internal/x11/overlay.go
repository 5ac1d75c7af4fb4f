package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// BorderOverlay is a rectangular focus marker made of 4 thin
// override-redirect windows.
type BorderOverlay struct {
	conn      *Connection
	color     uint32
	thickness int

	bars    [4]xproto.Window
	created bool
	mapped  bool
}

// NewBorderOverlay creates a marker. Windows are created lazily on the
// first Show.
func (c *Connection) NewBorderOverlay(color uint32, thickness int) *BorderOverlay {
	if thickness < 1 {
		thickness = 1
	}
	return &BorderOverlay{conn: c, color: color, thickness: thickness}
}

// ParseColor converts "#RRGGBB" to a pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Show draws the border around g, raising it above other windows.
func (o *BorderOverlay) Show(g Geometry) error {
	if !o.created {
		if err := o.createWindows(); err != nil {
			return err
		}
	}

	for i, bar := range borderBars(g, o.thickness) {
		o.updateWindow(o.bars[i], bar)
	}
	for _, wid := range o.bars {
		xproto.MapWindow(o.conn.XUtil.Conn(), wid)
	}
	o.mapped = true
	return nil
}

// Hide unmaps the border without destroying it.
func (o *BorderOverlay) Hide() {
	if !o.mapped {
		return
	}
	for _, wid := range o.bars {
		xproto.UnmapWindow(o.conn.XUtil.Conn(), wid)
	}
	o.mapped = false
}

// Destroy releases the border windows.
func (o *BorderOverlay) Destroy() {
	for i, wid := range o.bars {
		if wid != 0 {
			xproto.DestroyWindow(o.conn.XUtil.Conn(), wid)
		}
		o.bars[i] = 0
	}
	o.created = false
	o.mapped = false
}

// borderBars lays out top, bottom, left and right bars of thickness t.
// The side bars sit between the top and bottom bars.
func borderBars(g Geometry, t int) [4]Geometry {
	return [4]Geometry{
		{X: g.X, Y: g.Y, Width: g.Width, Height: t},
		{X: g.X, Y: g.Y + g.Height - t, Width: g.Width, Height: t},
		{X: g.X, Y: g.Y + t, Width: t, Height: g.Height - 2*t},
		{X: g.X + g.Width - t, Y: g.Y + t, Width: t, Height: g.Height - 2*t},
	}
}

func (o *BorderOverlay) createWindows() error {
	for i := range o.bars {
		wid, err := o.createOverrideRedirectWindow()
		if err != nil {
			o.Destroy()
			return err
		}
		o.bars[i] = wid
	}
	o.created = true
	return nil
}

func (o *BorderOverlay) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := o.conn.XUtil.Conn()
	screen := o.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// Value list order follows the mask bits: CwBackPixel before CwOverrideRedirect.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		o.conn.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		[]uint32{o.color, 1},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create marker window: %w", err)
	}
	return wid, nil
}

func (o *BorderOverlay) updateWindow(wid xproto.Window, g Geometry) {
	conn := o.conn.XUtil.Conn()

	width := max(g.Width, 1)
	height := max(g.Height, 1)

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(g.X)),
			uint32(int32(g.Y)),
			uint32(width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{o.color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}
