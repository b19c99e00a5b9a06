package config

// Config is the root configuration structure.
type Config struct {
	Stream   StreamConfig   `toml:"stream"`
	API      APIConfig      `toml:"api"`
	Playback PlaybackConfig `toml:"playback"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// StreamConfig holds live stream settings.
type StreamConfig struct {
	URL string `toml:"url"`
	// PollInterval is the metadata poll interval in milliseconds.
	PollInterval int `toml:"poll_interval"`
}

// APIConfig holds settings for the metadata and rating services.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	// Timeout is the request timeout in milliseconds.
	Timeout int `toml:"timeout"`
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	Volume int `toml:"volume"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
