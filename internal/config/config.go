package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"nsefetch/internal/extractor"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL       = "https://www1.nseindia.com/"
	DefaultQuotePath     = "live_market/dynaContent/live_watch/get_quote/GetQuote.jsp"
	DefaultAggregatePath = "live_market/dynaContent/live_watch/stock_watch/niftyStockWatch.json"
)

type Config struct {
	NSE         NSEConfig    `yaml:"nse"`
	Fetch       FetchConfig  `yaml:"fetch"`
	ScratchFile string       `yaml:"scratch_file"`
	Output      OutputConfig `yaml:"output"`
	Log         LogConfig    `yaml:"log"`
}

type NSEConfig struct {
	BaseURL       string `yaml:"base_url"`
	QuotePath     string `yaml:"quote_path"`
	AggregatePath string `yaml:"aggregate_path"`
}

type FetchConfig struct {
	Cookie    string        `yaml:"cookie"`
	Proxy     string        `yaml:"proxy"`
	Timeout   time.Duration `yaml:"timeout"`
	Browser   bool          `yaml:"browser"`
	ShowUI    bool          `yaml:"show_ui"`
	ChromeBin string        `yaml:"chrome_bin"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		NSE: NSEConfig{
			BaseURL:       DefaultBaseURL,
			QuotePath:     DefaultQuotePath,
			AggregatePath: DefaultAggregatePath,
		},
		ScratchFile: extractor.DefaultScratchFile,
		Output:      OutputConfig{Format: "text"},
		Log:         LogConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from NSEFETCH_* variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.NSE.BaseURL = envOr(c.NSE.BaseURL, getenv("NSEFETCH_BASE_URL"))
	c.Fetch.Proxy = envOr(c.Fetch.Proxy, getenv("NSEFETCH_PROXY"))
	c.Fetch.Cookie = envOr(c.Fetch.Cookie, getenv("NSEFETCH_COOKIE"))
	c.Fetch.ChromeBin = envOr(c.Fetch.ChromeBin, getenv("NSEFETCH_CHROME_BIN"))
	c.ScratchFile = envOr(c.ScratchFile, getenv("NSEFETCH_SCRATCH"))
	c.Log.Level = envOr(c.Log.Level, getenv("NSEFETCH_LOG_LEVEL"))
}

// Validate checks values that would otherwise fail late, after the request was sent
func (c *Config) Validate() error {
	u, err := url.Parse(c.NSE.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url: %q", c.NSE.BaseURL)
	}
	if c.NSE.QuotePath == "" || c.NSE.AggregatePath == "" {
		return fmt.Errorf("endpoint paths must not be empty")
	}
	if c.ScratchFile == "" {
		return fmt.Errorf("scratch file must not be empty")
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level
func (c *Config) LogLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}

func envOr(existing, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return existing
	}
	return value
}
