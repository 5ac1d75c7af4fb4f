package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawHotkeys struct {
	Up    *string `yaml:"up"`
	Down  *string `yaml:"down"`
	Left  *string `yaml:"left"`
	Right *string `yaml:"right"`
	Reset *string `yaml:"reset"`
}

type RawMarker struct {
	Color     *string `yaml:"color"`
	Thickness *int    `yaml:"thickness"`
}

type RawEligibility struct {
	Tags     *[]string `yaml:"tags"`
	Roles    *[]string `yaml:"roles"`
	Tabindex *bool     `yaml:"tabindex"`
}

// RawConfig is a single config file as written; nil fields were not set.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Display                  *string         `yaml:"display"`
	XAuthority               *string         `yaml:"xauthority"`
	Hotkeys                  *RawHotkeys     `yaml:"hotkeys"`
	ThrottleMS               *int            `yaml:"throttle_ms"`
	Marker                   *RawMarker      `yaml:"marker"`
	BringIntoView            *bool           `yaml:"bring_into_view"`
	IgnoreClasses            *[]string       `yaml:"ignore_classes"`
	ReconcileIntervalSeconds *int            `yaml:"reconcile_interval_seconds"`
	Eligibility              *RawEligibility `yaml:"eligibility"`
	LogLevel                 *string         `yaml:"log_level"`
	MetricsListen            *string         `yaml:"metrics_listen"`
}

// merge returns r with every field set in overlay replaced.
func (r RawConfig) merge(overlay RawConfig) RawConfig {
	out := r
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.Hotkeys != nil {
		out.Hotkeys = mergeRawHotkeys(out.Hotkeys, overlay.Hotkeys)
	}
	if overlay.ThrottleMS != nil {
		out.ThrottleMS = overlay.ThrottleMS
	}
	if overlay.Marker != nil {
		out.Marker = mergeRawMarker(out.Marker, overlay.Marker)
	}
	if overlay.BringIntoView != nil {
		out.BringIntoView = overlay.BringIntoView
	}
	if overlay.IgnoreClasses != nil {
		out.IgnoreClasses = overlay.IgnoreClasses
	}
	if overlay.ReconcileIntervalSeconds != nil {
		out.ReconcileIntervalSeconds = overlay.ReconcileIntervalSeconds
	}
	if overlay.Eligibility != nil {
		out.Eligibility = mergeRawEligibility(out.Eligibility, overlay.Eligibility)
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.MetricsListen != nil {
		out.MetricsListen = overlay.MetricsListen
	}
	return out
}

func mergeRawHotkeys(base, overlay *RawHotkeys) *RawHotkeys {
	out := RawHotkeys{}
	if base != nil {
		out = *base
	}
	if overlay.Up != nil {
		out.Up = overlay.Up
	}
	if overlay.Down != nil {
		out.Down = overlay.Down
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	if overlay.Reset != nil {
		out.Reset = overlay.Reset
	}
	return &out
}

func mergeRawMarker(base, overlay *RawMarker) *RawMarker {
	out := RawMarker{}
	if base != nil {
		out = *base
	}
	if overlay.Color != nil {
		out.Color = overlay.Color
	}
	if overlay.Thickness != nil {
		out.Thickness = overlay.Thickness
	}
	return &out
}

func mergeRawEligibility(base, overlay *RawEligibility) *RawEligibility {
	out := RawEligibility{}
	if base != nil {
		out = *base
	}
	if overlay.Tags != nil {
		out.Tags = overlay.Tags
	}
	if overlay.Roles != nil {
		out.Roles = overlay.Roles
	}
	if overlay.Tabindex != nil {
		out.Tabindex = overlay.Tabindex
	}
	return &out
}
