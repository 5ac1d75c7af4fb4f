package focus

import "github.com/1broseidon/spatialnav/internal/spatial"

// ScrollDelta returns the smallest scroll that brings target fully inside
// viewport, moving each axis only as far as its nearest edge requires. A
// target larger than the viewport is aligned to its start edge. The bool is
// false when target is already fully visible.
func ScrollDelta(target, viewport spatial.Rect) (spatial.Offset, bool) {
	if target.Within(viewport) {
		return spatial.Offset{}, false
	}
	delta := spatial.Offset{
		DX: nearestEdge(target.Left(), target.Right(), viewport.Left(), viewport.Right()),
		DY: nearestEdge(target.Top(), target.Bottom(), viewport.Top(), viewport.Bottom()),
	}
	return delta, !delta.Zero()
}

func nearestEdge(start, end, viewStart, viewEnd float64) float64 {
	switch {
	case start >= viewStart && end <= viewEnd:
		return 0
	case end-start > viewEnd-viewStart:
		return start - viewStart
	case start < viewStart:
		return start - viewStart
	default:
		return end - viewEnd
	}
}
