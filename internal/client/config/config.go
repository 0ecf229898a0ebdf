package config

import "time"

// Config holds runtime settings for the ZapDesk client.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST endpoint.
//   - PollInterval: how often the notification feed is re-fetched.
//   - ToastTTL: how long a toast stays on screen.
//   - StorePath: path of the local SQLite session database.
type Config struct {
	ServerEndpointURL string
	StorePath         string
	PollInterval      time.Duration
	ToastTTL          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.StorePath = "zapdesk.db"
	c.PollInterval = 60 * time.Second
	c.ToastTTL = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
