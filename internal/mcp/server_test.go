package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/ipc"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

type fakeDaemon struct {
	moves []spatial.Direction
	err   error
}

func (f *fakeDaemon) Navigate(dir spatial.Direction) (*ipc.NavigateData, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.moves = append(f.moves, dir)
	return &ipc.NavigateData{
		Moved: dir != spatial.DirUp,
		Focus: focus.Snapshot{Focused: true, CurrentID: "0x00000002"},
	}, nil
}

func (f *fakeDaemon) Reset() (*focus.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &focus.Snapshot{PreviousID: "0x00000002"}, nil
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{DaemonRunning: true, Display: ":0", Navigations: 4, DeadEnds: 1}, nil
}

func TestHandleNavigate(t *testing.T) {
	daemon := &fakeDaemon{}
	s := NewServer(daemon)

	_, out, err := s.handleNavigate(context.Background(), nil, NavigateInput{Direction: "Left"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !out.Moved || out.Focus.CurrentID != "0x00000002" {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(daemon.moves) != 1 || daemon.moves[0] != spatial.DirLeft {
		t.Fatalf("unexpected moves %v", daemon.moves)
	}

	_, out, err = s.handleNavigate(context.Background(), nil, NavigateInput{Direction: "up"})
	if err != nil || out.Moved {
		t.Fatalf("expected dead end, got %+v, %v", out, err)
	}
}

func TestHandleNavigate_RejectsUnknownDirection(t *testing.T) {
	daemon := &fakeDaemon{}
	s := NewServer(daemon)

	if _, _, err := s.handleNavigate(context.Background(), nil, NavigateInput{Direction: "forward"}); err == nil {
		t.Fatal("expected error")
	}
	if len(daemon.moves) != 0 {
		t.Fatal("daemon should not be called")
	}
}

func TestHandleResetAndStatus(t *testing.T) {
	s := NewServer(&fakeDaemon{})

	_, reset, err := s.handleResetFocus(context.Background(), nil, ResetFocusInput{})
	if err != nil || reset.Focus.Focused || reset.Focus.PreviousID != "0x00000002" {
		t.Fatalf("unexpected reset %+v, %v", reset, err)
	}

	_, status, err := s.handleFocusStatus(context.Background(), nil, FocusStatusInput{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Display != ":0" || status.Navigations != 4 || status.DeadEnds != 1 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestHandlers_WrapDaemonErrors(t *testing.T) {
	s := NewServer(&fakeDaemon{err: errors.New("is the daemon running?")})

	if _, _, err := s.handleNavigate(context.Background(), nil, NavigateInput{Direction: "down"}); err == nil || !strings.Contains(err.Error(), "navigate down") {
		t.Fatalf("unexpected navigate error %v", err)
	}
	if _, _, err := s.handleResetFocus(context.Background(), nil, ResetFocusInput{}); err == nil || !strings.Contains(err.Error(), "reset focus") {
		t.Fatalf("unexpected reset error %v", err)
	}
	if _, _, err := s.handleFocusStatus(context.Background(), nil, FocusStatusInput{}); err == nil || !strings.Contains(err.Error(), "daemon running") {
		t.Fatalf("unexpected status error %v", err)
	}
}
