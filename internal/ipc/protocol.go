package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/spatialnav/internal/focus"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing      CommandType = "PING"
	CommandNavigate  CommandType = "NAVIGATE"
	CommandReset     CommandType = "RESET"
	CommandGetStatus CommandType = "GET_STATUS"
	CommandReload    CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// NavigatePayload is the payload of NAVIGATE.
type NavigatePayload struct {
	Direction string `json:"direction"`
}

// NavigateData is returned by NAVIGATE. Moved is false at a dead end.
type NavigateData struct {
	Moved bool           `json:"moved"`
	Focus focus.Snapshot `json:"focus"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool           `json:"daemon_running"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Display       string         `json:"display,omitempty"`
	Focus         focus.Snapshot `json:"focus"`
	Navigations   uint64         `json:"navigations"`
	DeadEnds      uint64         `json:"dead_ends"`
	Resets        uint64         `json:"resets"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("command is required")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
