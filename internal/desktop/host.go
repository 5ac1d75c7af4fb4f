package desktop

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/platform"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// HostOptions configures a Host.
type HostOptions struct {
	// BringIntoView moves a partially off-screen window back inside the
	// display when it receives focus.
	BringIntoView bool
	// IgnoreClass skips windows by WM_CLASS. Nil keeps every window.
	IgnoreClass func(class string) bool
	Logger      *slog.Logger
}

// Host adapts a platform backend to focus.Host. The marker is a border
// drawn around the focused window.
type Host struct {
	*Document

	backend platform.Backend
	marker  platform.Marker
	opts    HostOptions
	logger  *slog.Logger

	markedID string
	// blurredID is the window focus was reset from. The window manager
	// keeps it active, so it is not offered as an origin until focus moves.
	blurredID string
}

var _ focus.Host = (*Host)(nil)

// NewHost creates a host. Call Refresh before each navigation so the
// document reflects the current windows.
func NewHost(backend platform.Backend, marker platform.Marker, opts HostOptions) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{
		Document: NewDocument(backend, opts.IgnoreClass),
		backend:  backend,
		marker:   marker,
		opts:     opts,
		logger:   logger,
	}
}

// SetMarked shows the border around el, or hides it when el holds the marker.
func (h *Host) SetMarked(el document.Element, marked bool) error {
	w, ok := h.Window(el)
	if !ok {
		return document.ErrDetached
	}
	id := el.ID()
	if !marked {
		if h.markedID == id {
			h.marker.Hide()
			h.markedID = ""
		}
		return nil
	}
	if err := h.marker.Show(w.Bounds); err != nil {
		return fmt.Errorf("failed to show marker for %s: %w", id, err)
	}
	h.markedID = id
	return nil
}

// MarkedElements returns the window holding the marker, if it still exists.
func (h *Host) MarkedElements() []document.Element {
	if h.markedID == "" {
		return nil
	}
	el, ok := h.Lookup(h.markedID)
	if !ok {
		return nil
	}
	return []document.Element{el}
}

// Focus activates the window behind el.
func (h *Host) Focus(el document.Element) error {
	w, ok := h.Window(el)
	if !ok {
		return document.ErrDetached
	}
	if err := h.backend.Activate(w.ID); err != nil {
		return err
	}
	h.blurredID = ""
	return nil
}

// Blur stops reporting el as the active element while the window manager
// still has it active.
func (h *Host) Blur(el document.Element) {
	if el != nil {
		h.blurredID = el.ID()
	}
}

// ActiveElement returns the window the window manager reports as active.
func (h *Host) ActiveElement() (document.Element, bool) {
	wid, err := h.backend.ActiveWindow()
	if err != nil || wid == 0 {
		return nil, false
	}
	id := WindowElementID(wid)
	if id == h.blurredID {
		return nil, false
	}
	h.blurredID = ""
	return h.Lookup(id)
}

// ScrollIntoView moves the window by the inverse of delta so it lands
// inside the display, then redraws the marker at the new position.
func (h *Host) ScrollIntoView(el document.Element, delta spatial.Offset) {
	if !h.opts.BringIntoView || delta.Zero() {
		return
	}
	we, ok := h.windows[el.ID()]
	if !ok {
		return
	}
	bounds := we.win.Bounds
	bounds.X -= int(delta.DX)
	bounds.Y -= int(delta.DY)
	if err := h.backend.MoveResize(we.win.ID, bounds); err != nil {
		h.logger.Warn("failed to bring window into view", "window", el.ID(), "error", err)
		return
	}
	we.win.Bounds = bounds
	if h.markedID == el.ID() {
		if err := h.marker.Show(bounds); err != nil {
			h.logger.Warn("failed to redraw marker", "window", el.ID(), "error", err)
		}
	}
}

// SetOptions replaces the host options. The ignore filter applies from the
// next Refresh.
func (h *Host) SetOptions(opts HostOptions) {
	if opts.Logger == nil {
		opts.Logger = h.logger
	}
	h.opts = opts
	h.logger = opts.Logger
	h.ignore = opts.IgnoreClass
}

// HideMarker removes the border regardless of which window holds it.
func (h *Host) HideMarker() {
	h.marker.Hide()
	h.markedID = ""
}

// Close destroys the marker windows.
func (h *Host) Close() {
	h.marker.Destroy()
}
