package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

const sourceIndicationPager = 2

// OnCurrentDesktop reports whether the window is visible on the current
// virtual desktop. Sticky windows and WMs without desktop support count as
// visible.
func (c *Connection) OnCurrentDesktop(windowID xproto.Window) bool {
	current, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return true
	}
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil || desktop == 0xFFFFFFFF {
		return true
	}
	return desktop == current
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// The client message is built by hand because the xgbutil ewmh request
// helpers panic on this library version.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndicationPager, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
