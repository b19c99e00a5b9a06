package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			URL:          "https://d3d4yli4hf5bmh.cloudfront.net/hls/live.m3u8",
			PollInterval: 10000,
		},
		API: APIConfig{
			BaseURL: "https://d3d4yli4hf5bmh.cloudfront.net",
			Timeout: 15000,
		},
		Playback: PlaybackConfig{
			Volume: 100,
		},
		TUI: TUIConfig{
			Theme:           "mocha",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Stream
	if c.Stream.URL == "" {
		c.Stream.URL = d.Stream.URL
	}
	if c.Stream.PollInterval == 0 {
		c.Stream.PollInterval = d.Stream.PollInterval
	}

	// API
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = d.API.Timeout
	}

	// Playback
	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
