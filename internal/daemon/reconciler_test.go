package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingTarget struct {
	calls atomic.Int32
	panic bool
}

func (c *countingTarget) Reconcile() bool {
	c.calls.Add(1)
	if c.panic {
		panic("boom")
	}
	return true
}

func TestReconciler_RunTicksUntilCancelled(t *testing.T) {
	target := &countingTarget{}
	r := NewReconciler(ReconcilerConfig{Interval: 5 * time.Millisecond}, target)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for target.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("reconciler did not tick")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}

func TestReconciler_RecoversFromPanic(t *testing.T) {
	target := &countingTarget{panic: true}
	r := NewReconciler(ReconcilerConfig{}, target)
	if r.ReconcileNow() {
		t.Fatal("panicking pass should report false")
	}
	if r.interval != 2*time.Second {
		t.Fatalf("expected default interval, got %v", r.interval)
	}
}
