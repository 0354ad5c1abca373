package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to requests that leave them unset
	DefaultRows         int          `json:"default_rows"`
	DefaultCols         int          `json:"default_cols"`
	DefaultMaxRetries   int          `json:"default_max_retries"`
	DefaultOverflowMode OverflowMode `json:"default_overflow_mode"`

	// Application preferences
	OutputDir      string   `json:"output_dir"` // where rendered charts go, "" = current directory
	LogLevel       string   `json:"log_level"`  // "debug", "info", "warn", "error"
	LogFormat      string   `json:"log_format"` // "console" or "json"
	RecentRequests []string `json:"recent_requests"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultRows:         4,
		DefaultCols:         8,
		DefaultMaxRetries:   defaults.MaxRetries,
		DefaultOverflowMode: defaults.OverflowMode,
		OutputDir:           "",
		LogLevel:            "info",
		LogFormat:           "console",
		RecentRequests:      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultMaxRetries > 0 {
		s.MaxRetries = c.DefaultMaxRetries
	}
	if c.DefaultOverflowMode != "" {
		s.OverflowMode = c.DefaultOverflowMode
	}
}

// ApplyToRequest fills in room dimensions the request left at zero.
func (c AppConfig) ApplyToRequest(r *Request) {
	if r.Rows == 0 {
		r.Rows = c.DefaultRows
	}
	if r.Cols == 0 {
		r.Cols = c.DefaultCols
	}
}

// AddRecentRequest records a request file path, most recent first, keeping at
// most max entries and no duplicates.
func (c *AppConfig) AddRecentRequest(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentRequests {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentRequests = out
}
