package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

func (s *Server) handleNavigate(_ context.Context, _ *mcpsdk.CallToolRequest, args NavigateInput) (*mcpsdk.CallToolResult, NavigateOutput, error) {
	dir, err := spatial.ParseDirection(args.Direction)
	if err != nil {
		return nil, NavigateOutput{}, err
	}
	data, err := s.daemon.Navigate(dir)
	if err != nil {
		return nil, NavigateOutput{}, fmt.Errorf("navigate %s: %w", dir, err)
	}
	return nil, NavigateOutput{Moved: data.Moved, Focus: data.Focus}, nil
}

func (s *Server) handleResetFocus(_ context.Context, _ *mcpsdk.CallToolRequest, _ ResetFocusInput) (*mcpsdk.CallToolResult, ResetFocusOutput, error) {
	snap, err := s.daemon.Reset()
	if err != nil {
		return nil, ResetFocusOutput{}, fmt.Errorf("reset focus: %w", err)
	}
	return nil, ResetFocusOutput{Focus: *snap}, nil
}

func (s *Server) handleFocusStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ FocusStatusInput) (*mcpsdk.CallToolResult, FocusStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, FocusStatusOutput{}, fmt.Errorf("focus status: %w", err)
	}
	return nil, FocusStatusOutput{
		Display:       status.Display,
		UptimeSeconds: status.UptimeSeconds,
		Navigations:   status.Navigations,
		DeadEnds:      status.DeadEnds,
		Resets:        status.Resets,
		Focus:         status.Focus,
	}, nil
}
