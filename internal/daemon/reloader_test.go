package daemon

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReloader_SerializesConcurrentRequests(t *testing.T) {
	var inFlight, maxInFlight, calls atomic.Int32
	apply := func() error {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		calls.Add(1)
		return nil
	}
	r := NewReloader(apply, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Request(ctx); err != nil {
				t.Errorf("request: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 8 {
		t.Fatalf("expected 8 reloads, got %d", calls.Load())
	}
	if maxInFlight.Load() != 1 {
		t.Fatalf("reloads overlapped: %d in flight", maxInFlight.Load())
	}
}

func TestReloader_ReturnsApplyError(t *testing.T) {
	want := errors.New("bad yaml")
	r := NewReloader(func() error { return want }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	if err := r.Request(ctx); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestReloader_RequestAfterStop(t *testing.T) {
	r := NewReloader(func() error { return nil }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Run(ctx)

	if err := r.Request(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
