package spatial

import "math"

// crossAxisWeight scales lateral drift relative to travel along the primary axis.
const crossAxisWeight = 0.5

// InDirection reports whether candidate lies strictly beyond origin in dir.
// Edges are compared rather than centers so overlapping or contained
// rectangles never qualify.
func InDirection(origin, candidate Rect, dir Direction) bool {
	switch dir {
	case DirUp:
		return candidate.Bottom() < origin.Top()
	case DirDown:
		return candidate.Top() > origin.Bottom()
	case DirLeft:
		return candidate.Right() < origin.Left()
	case DirRight:
		return candidate.Left() > origin.Right()
	}
	return false
}

// Distance is the directional distance between the centers of origin and
// candidate: full weight on the axis of travel, half weight on the cross axis.
func Distance(origin, candidate Rect, dir Direction) float64 {
	dx := math.Abs(candidate.CenterX() - origin.CenterX())
	dy := math.Abs(candidate.CenterY() - origin.CenterY())
	if dir.Vertical() {
		return dy + crossAxisWeight*dx
	}
	return dx + crossAxisWeight*dy
}

// Select returns the index of the best candidate in dir from origin, or -1
// when the direction is a dead end. Candidates identical to origin are
// skipped. Equal distances resolve to the lowest index, so callers that pass
// candidates in document order get document order as the tie-break.
func Select(origin Rect, dir Direction, candidates []Rect) int {
	bestIdx := -1
	bestDist := math.Inf(1)

	for i, candidate := range candidates {
		if candidate == origin {
			continue
		}
		if !InDirection(origin, candidate, dir) {
			continue
		}

		dist := Distance(origin, candidate, dir)
		if dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}

	return bestIdx
}

// EntryOrigin returns the origin used when nothing is focused: a
// zero-thickness band just outside bounds on the edge opposite dir,
// spanning bounds on the cross axis. Elements flush with that edge still
// pass the strict edge test in InDirection.
func EntryOrigin(bounds Rect, dir Direction) Rect {
	switch dir {
	case DirDown:
		return Rect{X: bounds.X, Y: math.Nextafter(bounds.Top(), math.Inf(-1)), Width: bounds.Width}
	case DirUp:
		return Rect{X: bounds.X, Y: math.Nextafter(bounds.Bottom(), math.Inf(1)), Width: bounds.Width}
	case DirRight:
		return Rect{X: math.Nextafter(bounds.Left(), math.Inf(-1)), Y: bounds.Y, Height: bounds.Height}
	default:
		return Rect{X: math.Nextafter(bounds.Right(), math.Inf(1)), Y: bounds.Y, Height: bounds.Height}
	}
}
