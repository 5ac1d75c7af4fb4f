package document

import (
	"fmt"
	"math"
	"strings"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

// RootID is the reserved id of a tree's root node.
const RootID = "#document"

// DefaultMarkerClass is added to the class attribute of the marked element.
const DefaultMarkerClass = "spatialnav-focused"

// NodeSpec describes a node to append to a Tree. Rect is in page
// coordinates (unaffected by scrolling).
type NodeSpec struct {
	ID       string            `yaml:"id,omitempty"`
	Tag      string            `yaml:"tag"`
	Rect     spatial.Rect      `yaml:"rect"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Disabled bool              `yaml:"disabled,omitempty"`
	Style    Style             `yaml:"style,omitempty"`
	Children []NodeSpec        `yaml:"children,omitempty"`
}

// Node is an element of a Tree.
type Node struct {
	id       string
	tag      string
	attrs    map[string]string
	disabled bool
	style    Style
	rect     spatial.Rect
	marked   bool

	parent   *Node
	children []*Node
	tree     *Tree
}

var _ Element = (*Node)(nil)

// ID implements Element.
func (n *Node) ID() string { return n.id }

// Tag implements Element.
func (n *Node) Tag() string { return n.tag }

// Attr implements Element. The class attribute carries the marker class while
// the node is marked.
func (n *Node) Attr(name string) (string, bool) {
	if name == "class" {
		return n.classAttr()
	}
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) classAttr() (string, bool) {
	v, ok := n.attrs["class"]
	if !n.marked || n.tree == nil {
		return v, ok
	}
	if v == "" {
		return n.tree.MarkerClass, true
	}
	return v + " " + n.tree.MarkerClass, true
}

// Disabled implements Element.
func (n *Node) Disabled() bool { return n.disabled }

// Style implements Element. Visibility is inherited from the nearest
// ancestor that sets it; display is not inherited.
func (n *Node) Style() Style {
	computed := Style{Display: n.style.Display, Visibility: n.style.Visibility}
	for p := n.parent; computed.Visibility == "" && p != nil; p = p.parent {
		computed.Visibility = p.style.Visibility
	}
	return computed
}

// Bounds implements Element, returning the page rectangle shifted by the
// tree's scroll offset.
func (n *Node) Bounds() (spatial.Rect, error) {
	if n.tree == nil {
		return spatial.Rect{}, fmt.Errorf("%s: %w", n.id, ErrDetached)
	}
	if n == n.tree.root {
		return n.tree.rootRect().Translate(-n.tree.scroll.DX, -n.tree.scroll.DY), nil
	}
	return n.rect.Translate(-n.tree.scroll.DX, -n.tree.scroll.DY), nil
}

// PageRect returns the node's rectangle in page coordinates.
func (n *Node) PageRect() spatial.Rect { return n.rect }

// Children implements Element.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Marked reports whether the node carries the focus marker.
func (n *Node) Marked() bool { return n.marked }

// Label returns a short human-readable description of the node.
func (n *Node) Label() string {
	if text, ok := n.attrs["text"]; ok && text != "" {
		return text
	}
	if label, ok := n.attrs["aria-label"]; ok && label != "" {
		return label
	}
	return n.id
}

// Tree is an in-memory document with a scrollable viewport. It is not safe
// for concurrent use.
type Tree struct {
	MarkerClass string

	root     *Node
	byID     map[string]*Node
	viewport spatial.Rect
	scroll   spatial.Offset
	active   *Node
	autoID   int
}

var _ Document = (*Tree)(nil)

// NewTree creates an empty document whose viewport is width x height.
func NewTree(width, height float64) *Tree {
	t := &Tree{
		MarkerClass: DefaultMarkerClass,
		byID:        make(map[string]*Node),
		viewport:    spatial.Rect{Width: width, Height: height},
	}
	t.root = &Node{id: RootID, tag: "body", attrs: map[string]string{}, tree: t}
	t.byID[RootID] = t.root
	return t
}

// Root implements Document.
func (t *Tree) Root() Element { return t.root }

// RootNode returns the root as a *Node.
func (t *Tree) RootNode() *Node { return t.root }

// Viewport implements Document.
func (t *Tree) Viewport() spatial.Rect { return t.viewport }

// Lookup implements Document.
func (t *Tree) Lookup(id string) (Element, bool) {
	n, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Nodes returns every attached node except the root, in document order.
func (t *Tree) Nodes() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Append adds spec (and its children) under parent. A nil parent means the
// root.
func (t *Tree) Append(parent *Node, spec NodeSpec) (*Node, error) {
	if parent == nil {
		parent = t.root
	}
	if parent.tree != t {
		return nil, fmt.Errorf("append to %s: %w", parent.id, ErrDetached)
	}

	tag := strings.ToLower(strings.TrimSpace(spec.Tag))
	if tag == "" {
		tag = "div"
	}
	id := strings.TrimSpace(spec.ID)
	if id == "" {
		id = t.nextID(tag)
	}
	if _, exists := t.byID[id]; exists {
		return nil, fmt.Errorf("duplicate element id %q", id)
	}
	if spec.Rect.Width < 0 || spec.Rect.Height < 0 {
		return nil, fmt.Errorf("element %q: negative size %v", id, spec.Rect)
	}

	attrs := make(map[string]string, len(spec.Attrs))
	for k, v := range spec.Attrs {
		attrs[strings.ToLower(k)] = v
	}
	if _, ok := attrs["disabled"]; ok {
		spec.Disabled = true
	}

	n := &Node{
		id:       id,
		tag:      tag,
		attrs:    attrs,
		disabled: spec.Disabled,
		style:    normalizeStyle(spec.Style),
		rect:     spec.Rect,
		parent:   parent,
		tree:     t,
	}
	parent.children = append(parent.children, n)
	t.byID[id] = n

	for _, child := range spec.Children {
		if _, err := t.Append(n, child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (t *Tree) nextID(tag string) string {
	for {
		t.autoID++
		id := fmt.Sprintf("%s-%d", tag, t.autoID)
		if _, exists := t.byID[id]; !exists {
			return id
		}
	}
}

// Remove detaches the element and its subtree from the document.
func (t *Tree) Remove(id string) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("element %q not found", id)
	}
	if n == t.root {
		return fmt.Errorf("cannot remove the document root")
	}

	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}

	var detach func(*Node)
	detach = func(d *Node) {
		delete(t.byID, d.id)
		if t.active == d {
			t.active = nil
		}
		d.tree = nil
		d.marked = false
		for _, c := range d.children {
			detach(c)
		}
	}
	detach(n)
	n.parent = nil
	return nil
}

// Move sets the page rectangle of an element.
func (t *Tree) Move(id string, rect spatial.Rect) error {
	n, ok := t.byID[id]
	if !ok || n == t.root {
		return fmt.Errorf("element %q not found", id)
	}
	n.rect = rect
	t.ScrollTo(t.scroll)
	return nil
}

// SetStyle replaces the declared style of an element.
func (t *Tree) SetStyle(id string, style Style) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("element %q not found", id)
	}
	n.style = normalizeStyle(style)
	return nil
}

// SetDisabled toggles the disabled state of an element.
func (t *Tree) SetDisabled(id string, disabled bool) error {
	n, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("element %q not found", id)
	}
	n.disabled = disabled
	return nil
}

// SetMarked applies or removes the visual focus marker.
func (t *Tree) SetMarked(el Element, marked bool) error {
	n, err := t.attached(el)
	if err != nil {
		return err
	}
	n.marked = marked
	return nil
}

// MarkedElements returns every element that carries the marker.
func (t *Tree) MarkedElements() []Element {
	var out []Element
	for _, n := range t.Nodes() {
		if n.marked {
			out = append(out, n)
		}
	}
	return out
}

// Focus moves input focus to el.
func (t *Tree) Focus(el Element) error {
	n, err := t.attached(el)
	if err != nil {
		return err
	}
	t.active = n
	return nil
}

// Blur drops input focus if el holds it.
func (t *Tree) Blur(el Element) {
	if t.active != nil && el != nil && t.active.ID() == el.ID() {
		t.active = nil
	}
}

// ActiveElement returns the element holding input focus, if any.
func (t *Tree) ActiveElement() (Element, bool) {
	if t.active == nil {
		return nil, false
	}
	return t.active, true
}

// ScrollIntoView scrolls the viewport by delta, clamped to the content.
// The scroll applies immediately; callers never wait on it.
func (t *Tree) ScrollIntoView(_ Element, delta spatial.Offset) {
	t.ScrollTo(spatial.Offset{DX: t.scroll.DX + delta.DX, DY: t.scroll.DY + delta.DY})
}

// Scroll returns the current scroll offset.
func (t *Tree) Scroll() spatial.Offset { return t.scroll }

// ScrollTo sets the scroll offset, clamped to the scrollable range.
func (t *Tree) ScrollTo(off spatial.Offset) {
	content := t.rootRect()
	maxX := math.Max(0, content.Width-t.viewport.Width)
	maxY := math.Max(0, content.Height-t.viewport.Height)
	t.scroll = spatial.Offset{
		DX: clamp(off.DX, 0, maxX),
		DY: clamp(off.DY, 0, maxY),
	}
}

// rootRect covers the viewport and every node, in page coordinates.
func (t *Tree) rootRect() spatial.Rect {
	w, h := t.viewport.Width, t.viewport.Height
	for _, n := range t.byID {
		if n == t.root {
			continue
		}
		w = math.Max(w, n.rect.Right())
		h = math.Max(h, n.rect.Bottom())
	}
	return spatial.Rect{Width: w, Height: h}
}

func (t *Tree) attached(el Element) (*Node, error) {
	if el == nil {
		return nil, fmt.Errorf("nil element")
	}
	n, ok := t.byID[el.ID()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", el.ID(), ErrDetached)
	}
	return n, nil
}

func normalizeStyle(s Style) Style {
	return Style{
		Display:    strings.ToLower(strings.TrimSpace(s.Display)),
		Visibility: strings.ToLower(strings.TrimSpace(s.Visibility)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
