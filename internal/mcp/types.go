package mcp

import "github.com/1broseidon/spatialnav/internal/focus"

// NavigateInput is the input for the navigate tool.
type NavigateInput struct {
	Direction string `json:"direction" jsonschema:"required,One of up, down, left or right"`
}

// NavigateOutput is the output for the navigate tool.
type NavigateOutput struct {
	Moved bool           `json:"moved"`
	Focus focus.Snapshot `json:"focus"`
}

// ResetFocusInput is the input for the reset_focus tool.
type ResetFocusInput struct{}

// ResetFocusOutput is the output for the reset_focus tool.
type ResetFocusOutput struct {
	Focus focus.Snapshot `json:"focus"`
}

// FocusStatusInput is the input for the focus_status tool.
type FocusStatusInput struct{}

// FocusStatusOutput is the output for the focus_status tool.
type FocusStatusOutput struct {
	Display       string         `json:"display,omitempty"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Navigations   uint64         `json:"navigations"`
	DeadEnds      uint64         `json:"dead_ends"`
	Resets        uint64         `json:"resets"`
	Focus         focus.Snapshot `json:"focus"`
}
