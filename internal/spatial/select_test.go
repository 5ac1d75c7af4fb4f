package spatial

import (
	"math"
	"testing"
)

func TestInDirection_EdgeComparisons(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 50, Height: 50}

	tests := []struct {
		name      string
		candidate Rect
		dir       Direction
		want      bool
	}{
		{"above", Rect{X: 100, Y: 0, Width: 50, Height: 50}, DirUp, true},
		{"touching top edge is not above", Rect{X: 100, Y: 50, Width: 50, Height: 50}, DirUp, false},
		{"below", Rect{X: 100, Y: 200, Width: 50, Height: 50}, DirDown, true},
		{"touching bottom edge is not below", Rect{X: 100, Y: 150, Width: 50, Height: 50}, DirDown, false},
		{"left", Rect{X: 0, Y: 100, Width: 50, Height: 50}, DirLeft, true},
		{"right", Rect{X: 200, Y: 100, Width: 50, Height: 50}, DirRight, true},
		{"overlapping is never in direction", Rect{X: 120, Y: 120, Width: 100, Height: 100}, DirDown, false},
		{"contained is never in direction", Rect{X: 110, Y: 110, Width: 10, Height: 10}, DirRight, false},
		{"far right but overlapping vertically still qualifies", Rect{X: 500, Y: 0, Width: 10, Height: 500}, DirRight, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InDirection(origin, tt.candidate, tt.dir)
			if got != tt.want {
				t.Errorf("InDirection(%v, %v, %v) = %v, want %v", origin, tt.candidate, tt.dir, got, tt.want)
			}
		})
	}
}

func TestDistance_WeightsCrossAxisByHalf(t *testing.T) {
	origin := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	candidate := Rect{X: 40, Y: 20, Width: 10, Height: 10}

	if got := Distance(origin, candidate, DirDown); got != 20+0.5*40 {
		t.Errorf("down distance = %v, want %v", got, 20+0.5*40)
	}
	if got := Distance(origin, candidate, DirRight); got != 40+0.5*20 {
		t.Errorf("right distance = %v, want %v", got, 40+0.5*20)
	}
}

func TestSelect_SingleCandidateInEachDirection(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 20, Height: 20}

	tests := []struct {
		dir       Direction
		candidate Rect
	}{
		{DirUp, Rect{X: 300, Y: 10, Width: 5, Height: 5}},
		{DirDown, Rect{X: -200, Y: 500, Width: 5, Height: 5}},
		{DirLeft, Rect{X: 0, Y: 900, Width: 5, Height: 5}},
		{DirRight, Rect{X: 121, Y: 100, Width: 5, Height: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := Select(origin, tt.dir, []Rect{tt.candidate}); got != 0 {
				t.Errorf("Select(%v) = %d, want 0", tt.dir, got)
			}
			if got := Select(origin, tt.dir.Opposite(), []Rect{tt.candidate}); got != -1 {
				t.Errorf("Select(%v) = %d, want -1", tt.dir.Opposite(), got)
			}
		})
	}
}

func TestSelect_PrefersAlignedCandidate(t *testing.T) {
	origin := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	a := Rect{X: 0, Y: 20, Width: 10, Height: 10}  // directly below
	b := Rect{X: 50, Y: 15, Width: 10, Height: 10} // closer vertically, far right

	if got := Select(origin, DirDown, []Rect{a, b}); got != 0 {
		t.Fatalf("Select = %d, want 0 (aligned candidate)", got)
	}
	if got := Select(origin, DirDown, []Rect{b, a}); got != 1 {
		t.Fatalf("Select with reversed input = %d, want 1 (aligned candidate)", got)
	}
}

func TestSelect_DeadEnd(t *testing.T) {
	origin := Rect{X: 0, Y: 100, Width: 10, Height: 10}
	above := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	if got := Select(origin, DirDown, []Rect{above}); got != -1 {
		t.Fatalf("Select = %d, want -1", got)
	}
	if got := Select(origin, DirDown, nil); got != -1 {
		t.Fatalf("Select with no candidates = %d, want -1", got)
	}
}

func TestSelect_NeverReturnsOrigin(t *testing.T) {
	origin := Rect{X: 10, Y: 10, Width: 10, Height: 10}
	candidates := []Rect{origin, origin, origin}

	for _, dir := range Directions() {
		if got := Select(origin, dir, candidates); got != -1 {
			t.Errorf("Select(%v) = %d, want -1", dir, got)
		}
	}

	// A zero-height origin equal to a candidate would otherwise pass the edge test.
	line := Rect{X: 0, Y: 50, Width: 100, Height: 0}
	if got := Select(line, DirDown, []Rect{line}); got != -1 {
		t.Errorf("Select(line) = %d, want -1", got)
	}
}

func TestSelect_TiesResolveToLowestIndex(t *testing.T) {
	origin := Rect{X: 100, Y: 0, Width: 10, Height: 10}
	left := Rect{X: 50, Y: 100, Width: 10, Height: 10}
	right := Rect{X: 150, Y: 100, Width: 10, Height: 10}

	for i := 0; i < 5; i++ {
		if got := Select(origin, DirDown, []Rect{left, right}); got != 0 {
			t.Fatalf("run %d: Select = %d, want 0", i, got)
		}
		if got := Select(origin, DirDown, []Rect{right, left}); got != 0 {
			t.Fatalf("run %d: Select reversed = %d, want 0", i, got)
		}
	}
}

func TestSelect_ResultAlwaysInRequestedHalfPlane(t *testing.T) {
	origin := Rect{X: 40, Y: 40, Width: 20, Height: 20}
	var candidates []Rect
	for x := 0.0; x <= 100; x += 15 {
		for y := 0.0; y <= 100; y += 15 {
			candidates = append(candidates, Rect{X: x, Y: y, Width: 10, Height: 10})
		}
	}

	for _, dir := range Directions() {
		idx := Select(origin, dir, candidates)
		if idx < 0 {
			t.Fatalf("Select(%v) found nothing", dir)
		}
		if !InDirection(origin, candidates[idx], dir) {
			t.Errorf("Select(%v) returned %v outside the half-plane", dir, candidates[idx])
		}
	}
}

func TestEntryOrigin_AdmitsElementsFlushWithEdge(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	flush := map[Direction]Rect{
		DirDown:  {X: 0, Y: 0, Width: 100, Height: 50},
		DirUp:    {X: 0, Y: 550, Width: 100, Height: 50},
		DirRight: {X: 0, Y: 0, Width: 100, Height: 50},
		DirLeft:  {X: 700, Y: 0, Width: 100, Height: 50},
	}

	for dir, rect := range flush {
		origin := EntryOrigin(bounds, dir)
		if !InDirection(origin, rect, dir) {
			t.Errorf("EntryOrigin(%v) = %v does not admit %v", dir, origin, rect)
		}
		if math.Abs(origin.CenterX()-bounds.CenterX()) > 1 && dir.Vertical() {
			t.Errorf("EntryOrigin(%v) center x = %v, want %v", dir, origin.CenterX(), bounds.CenterX())
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions() {
		got, err := ParseDirection(dir.String())
		if err != nil || got != dir {
			t.Errorf("ParseDirection(%q) = %v, %v", dir.String(), got, err)
		}
	}
	if got, err := ParseDirection(" UP "); err != nil || got != DirUp {
		t.Errorf("ParseDirection(\" UP \") = %v, %v", got, err)
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("expected error for diagonal")
	}
}
