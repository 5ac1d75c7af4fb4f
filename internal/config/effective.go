package config

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if h := raw.Hotkeys; h != nil {
		applyString(&cfg.Hotkeys.Up, h.Up)
		applyString(&cfg.Hotkeys.Down, h.Down)
		applyString(&cfg.Hotkeys.Left, h.Left)
		applyString(&cfg.Hotkeys.Right, h.Right)
		applyString(&cfg.Hotkeys.Reset, h.Reset)
	}
	if raw.ThrottleMS != nil {
		cfg.ThrottleMS = *raw.ThrottleMS
	}
	if m := raw.Marker; m != nil {
		applyString(&cfg.Marker.Color, m.Color)
		if m.Thickness != nil {
			cfg.Marker.Thickness = *m.Thickness
		}
	}
	if raw.BringIntoView != nil {
		cfg.BringIntoView = *raw.BringIntoView
	}
	if raw.IgnoreClasses != nil {
		cfg.IgnoreClasses = append([]string{}, (*raw.IgnoreClasses)...)
	}
	if raw.ReconcileIntervalSeconds != nil {
		cfg.ReconcileIntervalSeconds = *raw.ReconcileIntervalSeconds
	}
	if e := raw.Eligibility; e != nil {
		if e.Tags != nil {
			cfg.Eligibility.Tags = append([]string{}, (*e.Tags)...)
		}
		if e.Roles != nil {
			cfg.Eligibility.Roles = append([]string{}, (*e.Roles)...)
		}
		if e.Tabindex != nil {
			cfg.Eligibility.Tabindex = *e.Tabindex
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.MetricsListen != nil {
		cfg.MetricsListen = *raw.MetricsListen
	}
	return cfg
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
