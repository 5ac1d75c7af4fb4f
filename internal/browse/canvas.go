package browse

import (
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

type boxStyle struct {
	h, v, tl, tr, bl, br rune
}

var (
	lightBox = boxStyle{'─', '│', '┌', '┐', '└', '┘'}
	heavyBox = boxStyle{'━', '┃', '┏', '┓', '┗', '┛'}
	frameBox = boxStyle{'═', '║', '╔', '╗', '╚', '╝'}
)

// labeler is implemented by elements with a display label.
type labeler interface {
	Label() string
}

// renderCanvas draws the viewport as a width x height character grid with a
// frame. Each target is a light box; the focused one is heavy and drawn last.
func renderCanvas(viewport spatial.Rect, targets []index.Target, focusedID string, width, height int) []string {
	if width < 3 || height < 3 || viewport.Empty() {
		return blankLines(width, height)
	}

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = make([]rune, width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}
	drawBox(canvas, 0, 0, width-1, height-1, frameBox)

	innerW, innerH := width-2, height-2
	sx := float64(innerW) / viewport.Width
	sy := float64(innerH) / viewport.Height

	var focused *index.Target
	for i := range targets {
		if targets[i].ID() == focusedID {
			focused = &targets[i]
			continue
		}
		drawTarget(canvas, targets[i], sx, sy, innerW, innerH, lightBox)
	}
	if focused != nil {
		drawTarget(canvas, *focused, sx, sy, innerW, innerH, heavyBox)
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = string(row)
	}
	return lines
}

func drawTarget(canvas [][]rune, t index.Target, sx, sy float64, innerW, innerH int, style boxStyle) {
	x1 := 1 + int(t.Rect.Left()*sx)
	y1 := 1 + int(t.Rect.Top()*sy)
	x2 := int(t.Rect.Right() * sx)
	y2 := int(t.Rect.Bottom() * sy)

	x1, x2 = max(x1, 1), min(x2, innerW)
	y1, y2 = max(y1, 1), min(y2, innerH)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	drawBox(canvas, x1, y1, x2, y2, style)

	label := t.ID()
	if l, ok := t.Element.(labeler); ok {
		label = l.Label()
	}
	drawLabel(canvas, label, x1, y1, x2, y2)
}

func drawBox(canvas [][]rune, x1, y1, x2, y2 int, style boxStyle) {
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = style.h
		canvas[y2][x] = style.h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = style.v
		canvas[y][x2] = style.v
	}
	canvas[y1][x1] = style.tl
	canvas[y1][x2] = style.tr
	canvas[y2][x1] = style.bl
	canvas[y2][x2] = style.br
}

// drawLabel centers label inside the box, truncating it to fit.
func drawLabel(canvas [][]rune, label string, x1, y1, x2, y2 int) {
	room := x2 - x1 - 1
	if room < 1 || y2-y1 < 2 {
		return
	}
	runes := []rune(label)
	if len(runes) > room {
		runes = runes[:room]
	}
	y := (y1 + y2) / 2
	start := x1 + 1 + (room-len(runes))/2
	for i, r := range runes {
		canvas[y][start+i] = r
	}
}

func blankLines(width, height int) []string {
	width, height = max(width, 0), max(height, 0)
	lines := make([]string, height)
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	for i := range lines {
		lines[i] = string(row)
	}
	return lines
}
