package browse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

func cell(lines []string, x, y int) rune {
	return []rune(lines[y])[x]
}

func TestRenderCanvas_FrameAndBoxes(t *testing.T) {
	tree := document.NewTree(100, 50)
	a, _ := tree.Append(nil, document.NodeSpec{ID: "a", Tag: "button", Rect: spatial.Rect{Width: 50, Height: 25}})
	b, _ := tree.Append(nil, document.NodeSpec{ID: "b", Tag: "button", Rect: spatial.Rect{X: 50, Y: 25, Width: 50, Height: 25}})
	targets := []index.Target{
		{Element: a, Rect: a.PageRect()},
		{Element: b, Rect: b.PageRect()},
	}

	lines := renderCanvas(tree.Viewport(), targets, "a", 22, 12)
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 22 {
			t.Fatalf("line %d has %d cells", i, n)
		}
	}

	checks := []struct {
		x, y int
		want rune
	}{
		{0, 0, '╔'}, {21, 11, '╝'},
		{1, 1, '┏'}, {10, 1, '┓'}, {1, 5, '┗'}, {10, 5, '┛'},
		{11, 6, '┌'}, {20, 10, '┘'},
	}
	for _, c := range checks {
		if got := cell(lines, c.x, c.y); got != c.want {
			t.Errorf("cell(%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if !strings.Contains(lines[3], "a") || !strings.Contains(lines[8], "b") {
		t.Fatalf("expected labels inside boxes:\n%s", strings.Join(lines, "\n"))
	}
}

func TestRenderCanvas_SkipsOffscreenTargets(t *testing.T) {
	tree := document.NewTree(100, 50)
	n, _ := tree.Append(nil, document.NodeSpec{ID: "far", Tag: "button", Rect: spatial.Rect{X: 0, Y: 200, Width: 50, Height: 20}})

	lines := renderCanvas(tree.Viewport(), []index.Target{{Element: n, Rect: n.PageRect()}}, "", 22, 12)
	for y := 1; y < 11; y++ {
		if strings.TrimSpace(strings.Trim(lines[y], "║")) != "" {
			t.Fatalf("expected empty inner row %d, got %q", y, lines[y])
		}
	}
}

func TestRenderCanvas_TooSmall(t *testing.T) {
	lines := renderCanvas(spatial.Rect{Width: 10, Height: 10}, nil, "", 2, 2)
	if len(lines) != 2 || lines[0] != "  " {
		t.Fatalf("unexpected blank canvas %q", lines)
	}
}
