package daemon

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// treeSurface adapts a document tree to Surface.
type treeSurface struct {
	*document.Tree
	refreshErr error
	refreshes  int
	hidden     int
}

func (s *treeSurface) Refresh() error {
	s.refreshes++
	return s.refreshErr
}

func (s *treeSurface) HideMarker() { s.hidden++ }

func newSurface(t *testing.T) *treeSurface {
	t.Helper()
	tree := document.NewTree(400, 300)
	for i, id := range []string{"left", "middle", "right"} {
		if _, err := tree.Append(nil, document.NodeSpec{
			ID:   id,
			Tag:  "button",
			Rect: spatial.Rect{X: float64(i * 120), Y: 10, Width: 100, Height: 50},
		}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}
	return &treeSurface{Tree: tree}
}

func TestNavigator_NavigateUpdatesCountersAndMetrics(t *testing.T) {
	surface := newSurface(t)
	nav := NewNavigator(surface, NavigatorConfig{Rules: index.DefaultRules(), Display: ":7"})

	moved := testutil.ToFloat64(navigationsTotal.WithLabelValues("right", resultMoved))
	dead := testutil.ToFloat64(navigationsTotal.WithLabelValues("left", resultDeadEnd))

	if !nav.Navigate(spatial.DirRight) || !nav.Navigate(spatial.DirRight) {
		t.Fatal("expected two moves right")
	}
	if nav.Navigate(spatial.DirUp) {
		t.Fatal("expected dead end up")
	}
	if surface.refreshes != 3 {
		t.Fatalf("expected a refresh per request, got %d", surface.refreshes)
	}

	status := nav.Status()
	if status.Display != ":7" || status.Navigations != 2 || status.DeadEnds != 1 {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.Focus.CurrentID != "middle" || status.Focus.PreviousID != "left" {
		t.Fatalf("unexpected focus %+v", status.Focus)
	}
	if got := testutil.ToFloat64(navigationsTotal.WithLabelValues("right", resultMoved)) - moved; got != 2 {
		t.Fatalf("expected 2 moved right samples, got %v", got)
	}
	if got := testutil.ToFloat64(navigationsTotal.WithLabelValues("left", resultDeadEnd)) - dead; got != 0 {
		t.Fatalf("unexpected left dead ends %v", got)
	}
	if testutil.ToFloat64(focusedGauge) != 1 {
		t.Fatal("expected focused gauge to be set")
	}
}

func TestNavigator_RefreshFailureDoesNotMove(t *testing.T) {
	surface := newSurface(t)
	surface.refreshErr = errors.New("display gone")
	nav := NewNavigator(surface, NavigatorConfig{Rules: index.DefaultRules()})

	if nav.Navigate(spatial.DirDown) {
		t.Fatal("expected navigation to fail")
	}
	if nav.Snapshot().Focused {
		t.Fatal("state should stay idle")
	}
}

func TestNavigator_ResetCountsOnlyActiveFocus(t *testing.T) {
	surface := newSurface(t)
	nav := NewNavigator(surface, NavigatorConfig{Rules: index.DefaultRules()})

	nav.Reset()
	nav.Navigate(spatial.DirDown)
	nav.Reset()
	nav.Reset()

	if got := nav.Status().Resets; got != 1 {
		t.Fatalf("expected 1 reset, got %d", got)
	}
	if len(surface.MarkedElements()) != 0 {
		t.Fatal("marker still applied after reset")
	}
	if surface.hidden != 3 {
		t.Fatalf("expected HideMarker on every reset, got %d", surface.hidden)
	}
	if nav.Snapshot().Focused {
		t.Fatal("expected idle state")
	}
}

func TestNavigator_ReloadHook(t *testing.T) {
	nav := NewNavigator(newSurface(t), NavigatorConfig{})
	if err := nav.Reload(); !errors.Is(err, errReloadUnsupported) {
		t.Fatalf("expected unsupported reload, got %v", err)
	}

	calls := 0
	nav = NewNavigator(newSurface(t), NavigatorConfig{Reload: func() error { calls++; return nil }})
	if err := nav.Reload(); err != nil || calls != 1 {
		t.Fatalf("reload = %v, calls = %d", err, calls)
	}
}

func TestNavigator_ReconfigureKeepsState(t *testing.T) {
	surface := newSurface(t)
	nav := NewNavigator(surface, NavigatorConfig{Rules: index.DefaultRules()})
	nav.Navigate(spatial.DirRight)

	ran := false
	nav.Reconfigure(index.Rules{Tags: []string{"a"}}, func() { ran = true })
	if !ran {
		t.Fatal("expected reconfigure hook to run")
	}
	if nav.Snapshot().CurrentID != "left" {
		t.Fatalf("expected focus to survive reconfigure, got %+v", nav.Snapshot())
	}
	if nav.Navigate(spatial.DirRight) {
		t.Fatal("buttons are no longer eligible")
	}
}

func TestNavigator_ReconcileDropsRemovedFocus(t *testing.T) {
	surface := newSurface(t)
	nav := NewNavigator(surface, NavigatorConfig{Rules: index.DefaultRules()})

	if nav.Reconcile() {
		t.Fatal("idle navigator has nothing to reconcile")
	}
	nav.Navigate(spatial.DirRight)
	if nav.Reconcile() {
		t.Fatal("focused element still exists")
	}
	if n, ok := surface.Node("left"); !ok || !n.Marked() {
		t.Fatal("expected marker to stay on left")
	}

	stale := testutil.ToFloat64(staleTotal)
	if err := surface.Remove("left"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !nav.Reconcile() {
		t.Fatal("expected stale focus to be dropped")
	}
	snap := nav.Snapshot()
	if snap.Focused || snap.PreviousID != "left" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if got := testutil.ToFloat64(staleTotal) - stale; got != 1 {
		t.Fatalf("expected stale counter to grow by 1, got %v", got)
	}
}
