package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RequiresFiles(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without files")
	}
}

func TestWatcher_DebouncesWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(watched, []byte("a: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changes := make(chan []string, 4)
	w, err := New(Config{
		Files:    []string{watched},
		Debounce: 50 * time.Millisecond,
		OnChange: func(changed []string) { changes <- changed },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	if err := os.WriteFile(other, []byte("ignored\n"), 0644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(watched, []byte("a: 2\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case changed := <-changes:
		if len(changed) != 1 || changed[0] != watched {
			t.Fatalf("unexpected change set %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case changed := <-changes:
		t.Fatalf("expected a single debounced notification, got another: %v", changed)
	case <-time.After(200 * time.Millisecond):
	}
}
