package index

import (
	"testing"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

func buildTree(t *testing.T, specs ...document.NodeSpec) *document.Tree {
	t.Helper()
	tree := document.NewTree(1000, 1000)
	for _, spec := range specs {
		if _, err := tree.Append(nil, spec); err != nil {
			t.Fatalf("append %q: %v", spec.ID, err)
		}
	}
	return tree
}

func ids(targets []Target) []string {
	out := make([]string, len(targets))
	for i, tgt := range targets {
		out[i] = tgt.ID()
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCollect_Eligibility(t *testing.T) {
	tree := buildTree(t,
		document.NodeSpec{ID: "link", Tag: "a"},
		document.NodeSpec{ID: "plain", Tag: "div"},
		document.NodeSpec{ID: "role", Tag: "div", Attrs: map[string]string{"role": "Button"}},
		document.NodeSpec{ID: "tab0", Tag: "span", Attrs: map[string]string{"tabindex": "0"}},
		document.NodeSpec{ID: "tabneg", Tag: "span", Attrs: map[string]string{"tabindex": "-1"}},
		document.NodeSpec{ID: "disabled", Tag: "button", Disabled: true},
		document.NodeSpec{ID: "gone", Tag: "button", Style: document.Style{Display: "none"}},
		document.NodeSpec{ID: "invisible", Tag: "input", Style: document.Style{Visibility: "hidden"}},
		document.NodeSpec{ID: "field", Tag: "TEXTAREA"},
	)

	got := ids(Collect(tree, nil))
	want := []string{"link", "role", "tab0", "field"}
	if !equalIDs(got, want) {
		t.Fatalf("Collect() = %v, want %v", got, want)
	}
}

func TestCollect_SkipsDisplayNoneSubtree(t *testing.T) {
	tree := buildTree(t,
		document.NodeSpec{
			ID:    "menu",
			Style: document.Style{Display: "none"},
			Children: []document.NodeSpec{
				{ID: "inside", Tag: "button", Style: document.Style{Display: "block"}},
			},
		},
		document.NodeSpec{
			ID:    "overlay",
			Style: document.Style{Visibility: "hidden"},
			Children: []document.NodeSpec{
				{ID: "revealed", Tag: "button", Style: document.Style{Visibility: "visible"}},
				{ID: "concealed", Tag: "button"},
			},
		},
	)

	got := ids(Collect(tree, nil))
	want := []string{"revealed"}
	if !equalIDs(got, want) {
		t.Fatalf("Collect() = %v, want %v", got, want)
	}
}

func TestCollect_DocumentOrderAndContainer(t *testing.T) {
	tree := buildTree(t,
		document.NodeSpec{ID: "first", Tag: "button"},
		document.NodeSpec{
			ID:  "group",
			Tag: "div",
			Attrs: map[string]string{
				"role": "menuitem",
			},
			Children: []document.NodeSpec{
				{ID: "nested-a", Tag: "a"},
				{ID: "nested-b", Tag: "a"},
			},
		},
		document.NodeSpec{ID: "last", Tag: "button"},
	)

	if got, want := ids(Collect(tree, nil)), []string{"first", "group", "nested-a", "nested-b", "last"}; !equalIDs(got, want) {
		t.Fatalf("Collect(root) = %v, want %v", got, want)
	}

	group, _ := tree.Lookup("group")
	if got, want := ids(Collect(tree, group)), []string{"group", "nested-a", "nested-b"}; !equalIDs(got, want) {
		t.Fatalf("Collect(group) = %v, want %v", got, want)
	}
}

func TestCollect_MeasuresFreshRects(t *testing.T) {
	tree := buildTree(t, document.NodeSpec{
		ID:   "b",
		Tag:  "button",
		Rect: spatial.Rect{X: 10, Y: 20, Width: 30, Height: 40},
	})

	first := Collect(tree, nil)
	if err := tree.Move("b", spatial.Rect{X: 50, Y: 60, Width: 30, Height: 40}); err != nil {
		t.Fatalf("move: %v", err)
	}
	second := Collect(tree, nil)

	if first[0].Rect.X != 10 || second[0].Rect.X != 50 {
		t.Fatalf("rects = %v then %v, want fresh measurement", first[0].Rect, second[0].Rect)
	}
}

func TestCollect_EmptyDocument(t *testing.T) {
	tree := document.NewTree(100, 100)
	if got := Collect(tree, nil); len(got) != 0 {
		t.Fatalf("Collect(empty) = %v, want none", ids(got))
	}
}

func TestRules_CustomTags(t *testing.T) {
	tree := buildTree(t,
		document.NodeSpec{ID: "w1", Tag: "window"},
		document.NodeSpec{ID: "b", Tag: "button"},
	)
	rules := Rules{Tags: []string{"window"}}
	if got := ids(rules.Collect(tree, nil)); !equalIDs(got, []string{"w1"}) {
		t.Fatalf("Collect() = %v, want [w1]", got)
	}
}
