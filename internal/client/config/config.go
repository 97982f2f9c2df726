package config

import "strings"

// Config holds runtime settings for the receiptkeeper CLI.
//
// APIBaseURL has no default. When it is still empty after all sources are
// applied, API calls fail with client.ErrConfiguration.
type Config struct {
	APIBaseURL string
	DataDir    string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.DataDir = "~/.receiptkeeper"
	c.LogLevel = "info"
}

// BaseURL returns the API base address without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
