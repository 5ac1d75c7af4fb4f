// Package mcp exposes the running daemon's focus navigation as MCP tools.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/ipc"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

const (
	ServerName    = "spatialnav"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools call.
type Daemon interface {
	Navigate(dir spatial.Direction) (*ipc.NavigateData, error)
	Reset() (*focus.Snapshot, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server is the MCP server for spatial focus navigation.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates a server that forwards tool calls to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "navigate",
		Description: "Move the desktop focus marker to the nearest window in a direction (up, down, left, right). Returns whether focus moved and the resulting focus. A dead end leaves focus unchanged.",
	}, s.handleNavigate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_focus",
		Description: "Clear the focus marker. The next navigation enters from the screen edge opposite its direction.",
	}, s.handleResetFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_status",
		Description: "Report the focused and previously focused windows with their rectangles, plus navigation counters.",
	}, s.handleFocusStatus)
}
