//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/spatialnav/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendForDisplay opens a fresh X11 connection to display.
// An empty display uses $DISPLAY.
func NewLinuxBackendForDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionForDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops a running EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// NewMarker returns a border overlay drawn with the given pixel color.
func (b *LinuxBackend) NewMarker(color uint32, thickness int) Marker {
	return &linuxMarker{overlay: b.conn.NewBorderOverlay(color, thickness)}
}

type linuxMarker struct {
	overlay *x11.BorderOverlay
}

func (m *linuxMarker) Show(r Rect) error {
	return m.overlay.Show(x11.Geometry{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
}

func (m *linuxMarker) Hide()    { m.overlay.Hide() }
func (m *linuxMarker) Destroy() { m.overlay.Destroy() }

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveDisplay returns the currently active display.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	return displayFromMonitor(*active), nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// ListWindowsOnDisplay lists visible normal windows on the current desktop
// whose centers are inside the display bounds, in stacking order from
// bottom to top.
func (b *LinuxBackend) ListWindowsOnDisplay(displayID int) ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}

	var target *Display
	for i := range displays {
		if displays[i].ID == displayID {
			target = &displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}

	clients, err := ewmh.ClientListStackingGet(conn.XUtil)
	if err != nil {
		clients, err = ewmh.ClientListGet(conn.XUtil)
		if err != nil {
			return nil, err
		}
	}

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) || !conn.OnCurrentDesktop(windowID) || conn.IsHidden(windowID) {
			continue
		}

		geom, ok := conn.WindowGeometry(windowID)
		if !ok {
			continue
		}
		rect := Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height}
		if !containsPoint(target.Bounds, rect.X+rect.Width/2, rect.Y+rect.Height/2) {
			continue
		}

		windows = append(windows, Window{
			ID:     WindowID(windowID),
			Class:  conn.WindowClass(windowID),
			Title:  conn.WindowTitle(windowID),
			Bounds: rect,
		})
	}

	return windows, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Activate asks the window manager to focus and raise a window.
func (b *LinuxBackend) Activate(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:     m.ID,
		Name:   m.Name,
		Bounds: Rect{X: m.Bounds.X, Y: m.Bounds.Y, Width: m.Bounds.Width, Height: m.Bounds.Height},
		Usable: Rect{X: m.Usable.X, Y: m.Usable.Y, Width: m.Usable.Width, Height: m.Usable.Height},
	}
}

func containsPoint(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
