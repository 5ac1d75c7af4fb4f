package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

type fakeService struct {
	mu        sync.Mutex
	moves     []spatial.Direction
	current   string
	resets    int
	reloadErr error
}

func (f *fakeService) Navigate(dir spatial.Direction) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, dir)
	if dir == spatial.DirUp {
		return false
	}
	f.current = "win-" + dir.String()
	return true
}

func (f *fakeService) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.current = ""
}

func (f *fakeService) Snapshot() focus.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return focus.Snapshot{Focused: f.current != "", CurrentID: f.current}
}

func (f *fakeService) Status() StatusData {
	return StatusData{Focus: f.Snapshot(), Display: ":9"}
}

func (f *fakeService) Reload() error { return f.reloadErr }

func startServer(t *testing.T, svc Service) *Client {
	t.Helper()
	// Unix socket paths are length-limited; keep it short.
	dir, err := os.MkdirTemp("", "snav")
	if err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	srv := NewServerAt(filepath.Join(dir, "s.sock"), svc)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(srv.SocketPath())
}

func TestServer_RoundTrip(t *testing.T) {
	svc := &fakeService{}
	client := startServer(t, svc)

	if err := client.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	nav, err := client.Navigate(spatial.DirRight)
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !nav.Moved || nav.Focus.CurrentID != "win-right" {
		t.Fatalf("unexpected navigate data %+v", nav)
	}

	nav, err = client.Navigate(spatial.DirUp)
	if err != nil {
		t.Fatalf("navigate up: %v", err)
	}
	if nav.Moved {
		t.Fatalf("expected dead end, got %+v", nav)
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.DaemonRunning || status.Display != ":9" || status.Focus.CurrentID != "win-right" {
		t.Fatalf("unexpected status %+v", status)
	}

	snap, err := client.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if snap.Focused || svc.resets != 1 {
		t.Fatalf("unexpected reset result %+v (resets=%d)", snap, svc.resets)
	}

	if err := client.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestServer_Errors(t *testing.T) {
	svc := &fakeService{reloadErr: errors.New("bad yaml")}
	client := startServer(t, svc)

	if err := client.Reload(); err == nil || !strings.Contains(err.Error(), "bad yaml") {
		t.Fatalf("expected reload error, got %v", err)
	}

	_, err := client.sendRequest(&Request{Command: CommandNavigate, Payload: []byte(`{"direction":"diagonal"}`)})
	if err == nil || !strings.Contains(err.Error(), "diagonal") {
		t.Fatalf("expected direction error, got %v", err)
	}

	_, err = client.sendRequest(&Request{Command: "EXPLODE"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if len(svc.moves) != 0 {
		t.Fatalf("service should not have been called, got %v", svc.moves)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestParseRequest_RequiresCommand(t *testing.T) {
	if _, err := ParseRequest([]byte(`{}`)); err == nil {
		t.Fatal("expected error for empty command")
	}
	req, err := ParseRequest([]byte(`{"command":"PING"}`))
	if err != nil || req.Command != CommandPing {
		t.Fatalf("ParseRequest = %+v, %v", req, err)
	}
}
