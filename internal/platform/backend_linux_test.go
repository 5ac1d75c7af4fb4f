//go:build linux

package platform

import (
	"testing"

	"github.com/1broseidon/spatialnav/internal/x11"
)

func TestDisplayFromMonitor(t *testing.T) {
	d := displayFromMonitor(x11.Monitor{
		ID:     1,
		Name:   "DP-1",
		Bounds: x11.Geometry{X: 1920, Width: 2560, Height: 1440},
		Usable: x11.Geometry{X: 1920, Y: 30, Width: 2560, Height: 1410},
	})
	if d.Name != "DP-1" || d.Bounds.X != 1920 || d.Usable.Y != 30 || d.Usable.Height != 1410 {
		t.Fatalf("unexpected display %+v", d)
	}
}

func TestContainsPoint(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	if !containsPoint(r, 0, 0) || !containsPoint(r, 99, 49) {
		t.Fatal("expected corner points inside")
	}
	if containsPoint(r, 100, 10) || containsPoint(r, 10, 50) {
		t.Fatal("expected far edges outside")
	}
}
