// Package desktop exposes the top-level windows of the active monitor as a
// navigable document and drives a platform.Backend as a focus host.
package desktop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/platform"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// WindowTag is the tag of every window element.
const WindowTag = "window"

// Rules returns the eligibility rules that make every window a focus target.
func Rules() index.Rules {
	return index.Rules{Tags: []string{WindowTag}}
}

const rootID = "desktop"

// Document is a snapshot of the windows on one display. Rectangles are
// relative to the display's usable area, which is the viewport. It is not
// safe for concurrent use.
type Document struct {
	backend platform.Backend
	ignore  func(class string) bool

	display platform.Display
	root    *rootElement
	windows map[string]*windowElement
}

var _ document.Document = (*Document)(nil)

// NewDocument creates an empty document. Call Refresh to populate it.
// ignore may be nil.
func NewDocument(backend platform.Backend, ignore func(class string) bool) *Document {
	d := &Document{backend: backend, ignore: ignore, windows: map[string]*windowElement{}}
	d.root = &rootElement{doc: d}
	return d
}

// Refresh re-reads the active display and its windows. Elements from the
// previous snapshot that no longer exist become detached.
func (d *Document) Refresh() error {
	display, err := d.backend.ActiveDisplay()
	if err != nil {
		return fmt.Errorf("failed to resolve active display: %w", err)
	}
	wins, err := d.backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		return fmt.Errorf("failed to list windows on display %d: %w", display.ID, err)
	}

	d.display = display
	next := make(map[string]*windowElement, len(wins))
	order := make([]*windowElement, 0, len(wins))
	for _, w := range wins {
		if d.ignore != nil && d.ignore(w.Class) {
			continue
		}
		id := WindowElementID(w.ID)
		el, ok := d.windows[id]
		if !ok {
			el = &windowElement{doc: d, id: id}
		}
		el.win = w
		next[id] = el
		order = append(order, el)
	}
	d.windows = next
	d.root.children = order
	return nil
}

// Display returns the display of the last refresh.
func (d *Document) Display() platform.Display { return d.display }

// Root implements document.Document.
func (d *Document) Root() document.Element { return d.root }

// Viewport implements document.Document.
func (d *Document) Viewport() spatial.Rect {
	return spatial.Rect{Width: float64(d.display.Usable.Width), Height: float64(d.display.Usable.Height)}
}

// Lookup implements document.Document.
func (d *Document) Lookup(id string) (document.Element, bool) {
	if id == rootID {
		return d.root, true
	}
	el, ok := d.windows[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Window returns the platform window behind an element of this document.
func (d *Document) Window(el document.Element) (platform.Window, bool) {
	if el == nil {
		return platform.Window{}, false
	}
	w, ok := d.windows[el.ID()]
	if !ok {
		return platform.Window{}, false
	}
	return w.win, true
}

// WindowElementID returns the element id of a window.
func WindowElementID(id platform.WindowID) string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// ParseWindowElementID reverses WindowElementID.
func ParseWindowElementID(id string) (platform.WindowID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(id, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", id)
	}
	return platform.WindowID(v), nil
}

func (d *Document) toViewport(r platform.Rect) spatial.Rect {
	return spatial.Rect{
		X:      float64(r.X - d.display.Usable.X),
		Y:      float64(r.Y - d.display.Usable.Y),
		Width:  float64(r.Width),
		Height: float64(r.Height),
	}
}

type rootElement struct {
	doc      *Document
	children []*windowElement
}

func (r *rootElement) ID() string                 { return rootID }
func (r *rootElement) Tag() string                { return rootID }
func (r *rootElement) Attr(string) (string, bool) { return "", false }
func (r *rootElement) Disabled() bool             { return false }
func (r *rootElement) Style() document.Style      { return document.Style{} }

func (r *rootElement) Bounds() (spatial.Rect, error) {
	return r.doc.Viewport(), nil
}

func (r *rootElement) Children() []document.Element {
	out := make([]document.Element, len(r.children))
	for i, c := range r.children {
		out[i] = c
	}
	return out
}

type windowElement struct {
	doc *Document
	id  string
	win platform.Window
}

func (w *windowElement) ID() string            { return w.id }
func (w *windowElement) Tag() string           { return WindowTag }
func (w *windowElement) Disabled() bool        { return false }
func (w *windowElement) Style() document.Style { return document.Style{} }
func (w *windowElement) Children() []document.Element {
	return nil
}

func (w *windowElement) Attr(name string) (string, bool) {
	switch name {
	case "class":
		return w.win.Class, w.win.Class != ""
	case "title", "aria-label":
		return w.win.Title, w.win.Title != ""
	}
	return "", false
}

func (w *windowElement) Bounds() (spatial.Rect, error) {
	if cur, ok := w.doc.windows[w.id]; !ok || cur != w {
		return spatial.Rect{}, document.ErrDetached
	}
	return w.doc.toViewport(w.win.Bounds), nil
}
