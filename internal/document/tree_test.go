package document

import (
	"errors"
	"testing"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

func TestTree_BoundsFollowScroll(t *testing.T) {
	tree := NewTree(100, 100)
	n, err := tree.Append(nil, NodeSpec{ID: "b", Tag: "button", Rect: spatial.Rect{X: 10, Y: 300, Width: 20, Height: 20}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	tree.ScrollIntoView(n, spatial.Offset{DY: 200})
	got, err := n.Bounds()
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	want := spatial.Rect{X: 10, Y: 100, Width: 20, Height: 20}
	if got != want {
		t.Fatalf("bounds after scroll = %v, want %v", got, want)
	}
}

func TestTree_ScrollClampsToContent(t *testing.T) {
	tree := NewTree(100, 100)
	if _, err := tree.Append(nil, NodeSpec{ID: "b", Rect: spatial.Rect{Y: 150, Width: 10, Height: 50}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	tree.ScrollTo(spatial.Offset{DX: 40, DY: 1000})
	if got := tree.Scroll(); got != (spatial.Offset{DX: 0, DY: 100}) {
		t.Fatalf("scroll = %+v, want {0 100}", got)
	}
	tree.ScrollTo(spatial.Offset{DY: -5})
	if got := tree.Scroll(); got.DY != 0 {
		t.Fatalf("scroll = %+v, want DY 0", got)
	}
}

func TestTree_VisibilityInherits(t *testing.T) {
	tree := NewTree(100, 100)
	_, err := tree.Append(nil, NodeSpec{
		ID:    "panel",
		Style: Style{Visibility: "Hidden"},
		Children: []NodeSpec{
			{ID: "inner", Tag: "button"},
			{ID: "shown", Tag: "button", Style: Style{Visibility: "visible"}},
		},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	inner, _ := tree.Node("inner")
	if got := inner.Style().Visibility; got != VisibilityHidden {
		t.Errorf("inner visibility = %q, want hidden", got)
	}
	shown, _ := tree.Node("shown")
	if got := shown.Style().Visibility; got != "visible" {
		t.Errorf("shown visibility = %q, want visible", got)
	}
}

func TestTree_RemoveDetachesSubtree(t *testing.T) {
	tree := NewTree(100, 100)
	_, err := tree.Append(nil, NodeSpec{
		ID:       "list",
		Children: []NodeSpec{{ID: "item", Tag: "a"}},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	item, _ := tree.Node("item")
	if err := tree.Focus(item); err != nil {
		t.Fatalf("focus: %v", err)
	}

	if err := tree.Remove("list"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := tree.Lookup("item"); ok {
		t.Fatal("expected item to be gone after removing its parent")
	}
	if _, ok := tree.ActiveElement(); ok {
		t.Fatal("expected active element to clear when removed")
	}
	if _, err := item.Bounds(); !errors.Is(err, ErrDetached) {
		t.Fatalf("bounds error = %v, want ErrDetached", err)
	}
	if err := tree.SetMarked(item, true); !errors.Is(err, ErrDetached) {
		t.Fatalf("SetMarked error = %v, want ErrDetached", err)
	}
}

func TestTree_AppendRejectsDuplicateIDs(t *testing.T) {
	tree := NewTree(100, 100)
	if _, err := tree.Append(nil, NodeSpec{ID: "x"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := tree.Append(nil, NodeSpec{ID: "x"}); err == nil {
		t.Fatal("expected duplicate id error")
	}
	if _, err := tree.Append(nil, NodeSpec{ID: RootID}); err == nil {
		t.Fatal("expected reserved root id to be rejected")
	}
}

func TestTree_MarkerAppearsInClassAttr(t *testing.T) {
	tree := NewTree(100, 100)
	n, err := tree.Append(nil, NodeSpec{ID: "b", Tag: "button", Attrs: map[string]string{"class": "primary"}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := tree.SetMarked(n, true); err != nil {
		t.Fatalf("mark: %v", err)
	}

	class, _ := n.Attr("class")
	if class != "primary "+DefaultMarkerClass {
		t.Fatalf("class = %q", class)
	}
	if got := len(tree.MarkedElements()); got != 1 {
		t.Fatalf("marked elements = %d, want 1", got)
	}
}

func TestTree_AutoIDsAreUnique(t *testing.T) {
	tree := NewTree(100, 100)
	a, _ := tree.Append(nil, NodeSpec{Tag: "button"})
	b, _ := tree.Append(nil, NodeSpec{Tag: "button"})
	if a.ID() == b.ID() {
		t.Fatalf("auto ids collide: %q", a.ID())
	}
}
