// Package document defines the element model navigated by spatialnav and an
// in-memory implementation of it.
package document

import (
	"errors"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

// ErrDetached is returned when an element is no longer part of its document.
var ErrDetached = errors.New("element is detached from the document")

// Display and visibility values that hide an element.
const (
	DisplayNone      = "none"
	VisibilityHidden = "hidden"
)

// Style is the computed presentation state relevant to focus eligibility.
type Style struct {
	Display    string `yaml:"display,omitempty" json:"display,omitempty"`
	Visibility string `yaml:"visibility,omitempty" json:"visibility,omitempty"`
}

// Element is a node of a navigable document.
type Element interface {
	// ID is stable for the lifetime of the element within its document.
	ID() string
	Tag() string
	Attr(name string) (string, bool)
	Disabled() bool
	// Style returns the computed style.
	Style() Style
	// Bounds measures the element now, in viewport coordinates.
	Bounds() (spatial.Rect, error)
	Children() []Element
}

// Document is a queryable tree of elements with a visible viewport.
type Document interface {
	Root() Element
	// Viewport is the visible area in viewport coordinates, normally
	// anchored at the origin.
	Viewport() spatial.Rect
	// Lookup resolves an element id; false means the element was removed.
	Lookup(id string) (Element, bool)
}

// Walk visits el and its descendants in document order. Returning false from
// fn skips the element's subtree.
func Walk(el Element, fn func(Element) bool) {
	if el == nil {
		return
	}
	if !fn(el) {
		return
	}
	for _, child := range el.Children() {
		Walk(child, fn)
	}
}

// SameElement reports whether a and b refer to the same element.
func SameElement(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
