// Package index enumerates the focus targets of a document.
package index

import (
	"strings"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// Target is an eligible element together with the rectangle measured when it
// was collected. Rectangles are never reused across collections.
type Target struct {
	Element document.Element
	Rect    spatial.Rect
}

// ID returns the element id, or "" for the zero Target.
func (t Target) ID() string {
	if t.Element == nil {
		return ""
	}
	return t.Element.ID()
}

// Rules decides which elements can receive focus.
type Rules struct {
	Tags  []string
	Roles []string
	// Tabindex makes any element with a tabindex other than -1 eligible.
	Tabindex bool
}

// DefaultRules returns the interactive tags and roles recognized by default.
func DefaultRules() Rules {
	return Rules{
		Tags:     []string{"a", "button", "input", "select", "textarea"},
		Roles:    []string{"button", "link", "menuitem", "tab", "option", "checkbox", "radio", "switch"},
		Tabindex: true,
	}
}

// Eligible reports whether el can receive focus right now. Rendering state
// of ancestors is not considered; Collect handles display:none subtrees.
func (r Rules) Eligible(el document.Element) bool {
	if el == nil || el.Disabled() {
		return false
	}
	style := el.Style()
	if style.Display == document.DisplayNone || style.Visibility == document.VisibilityHidden {
		return false
	}
	return r.interactive(el)
}

func (r Rules) interactive(el document.Element) bool {
	if containsFold(r.Tags, el.Tag()) {
		return true
	}
	if role, ok := el.Attr("role"); ok && containsFold(r.Roles, strings.TrimSpace(role)) {
		return true
	}
	if r.Tabindex {
		if tabindex, ok := el.Attr("tabindex"); ok && strings.TrimSpace(tabindex) != "-1" {
			return true
		}
	}
	return false
}

// Collect returns the eligible elements under container (the document root
// when nil), the container included, in document order. Elements that can no
// longer be measured are skipped.
func (r Rules) Collect(doc document.Document, container document.Element) []Target {
	if container == nil {
		container = doc.Root()
	}

	var targets []Target
	document.Walk(container, func(el document.Element) bool {
		if el.Style().Display == document.DisplayNone {
			return false
		}
		if !r.Eligible(el) {
			return true
		}
		rect, err := el.Bounds()
		if err != nil {
			return true
		}
		targets = append(targets, Target{Element: el, Rect: rect})
		return true
	})
	return targets
}

// Collect uses DefaultRules.
func Collect(doc document.Document, container document.Element) []Target {
	return DefaultRules().Collect(doc, container)
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
