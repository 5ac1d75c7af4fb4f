package spatial

import "fmt"

// Rect is an axis-aligned rectangle in viewport coordinates.
// X and Y are the left and top edges.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Within reports whether all four edges of r lie inside bounds.
func (r Rect) Within(bounds Rect) bool {
	return r.Left() >= bounds.Left() &&
		r.Top() >= bounds.Top() &&
		r.Right() <= bounds.Right() &&
		r.Bottom() <= bounds.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Offset is a displacement in viewport coordinates.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Zero reports whether the offset moves nothing.
func (o Offset) Zero() bool { return o.DX == 0 && o.DY == 0 }
