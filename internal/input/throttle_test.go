package input

import (
	"testing"
	"time"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

func TestThrottle_DropsBurst(t *testing.T) {
	calls := 0
	h := Throttle(func(spatial.Direction) bool {
		calls++
		return true
	}, time.Hour)

	if !h(spatial.DirDown) {
		t.Fatal("first call should pass through")
	}
	for i := 0; i < 5; i++ {
		if h(spatial.DirDown) {
			t.Fatal("burst call should be dropped")
		}
	}
	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
}

func TestThrottle_AcceptsAfterInterval(t *testing.T) {
	calls := 0
	h := Throttle(func(spatial.Direction) bool {
		calls++
		return true
	}, 20*time.Millisecond)

	h(spatial.DirUp)
	time.Sleep(40 * time.Millisecond)
	h(spatial.DirUp)
	if calls != 2 {
		t.Fatalf("handler called %d times, want 2", calls)
	}
}

func TestThrottle_ZeroIntervalPassesThrough(t *testing.T) {
	calls := 0
	h := Throttle(func(spatial.Direction) bool {
		calls++
		return false
	}, 0)
	for i := 0; i < 3; i++ {
		h(spatial.DirLeft)
	}
	if calls != 3 {
		t.Fatalf("handler called %d times, want 3", calls)
	}
}

func TestKeymap_Lookup(t *testing.T) {
	km := ViKeys()
	tests := []struct {
		key  string
		want spatial.Direction
		ok   bool
	}{
		{"Up", spatial.DirUp, true},
		{"j", spatial.DirDown, true},
		{"H", spatial.DirLeft, true},
		{"q", 0, false},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
