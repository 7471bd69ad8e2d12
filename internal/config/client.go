package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/storefront/pkg/logging"
)

const (
	// ClientConfigFile is the configuration file read by the console and storefront CLIs.
	ClientConfigFile = "console.toml"

	EnvAPIBaseURL    = "API_BASE_URL"
	EnvClientTimeout = "API_TIMEOUT"
	EnvPageSize      = "CONSOLE_PAGE_SIZE"
	EnvCartPath      = "STOREFRONT_CART"

	// DefaultClientLog receives client logs, since the terminal UI owns stdout.
	DefaultClientLog = "console.log"
)

var clientLoggingEnv = &logging.Env{
	Level:  "CONSOLE_LOG_LEVEL",
	Format: "CONSOLE_LOG_FORMAT",
	Output: "CONSOLE_LOG_FILE",
}

// ClientConfig configures the programs that talk to the API.
type ClientConfig struct {
	BaseURL  string         `toml:"base_url"`
	Timeout  string         `toml:"timeout"`
	PageSize int            `toml:"page_size"`
	CartPath string         `toml:"cart_path"`
	Logging  logging.Config `toml:"logging"`
}

// TimeoutDuration parses and returns the request timeout.
func (c *ClientConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// LoadClient reads path when it exists and finalizes the result. A missing
// file yields the defaults.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse client config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read client config: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize client config: %w", err)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *ClientConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Logging.Finalize(clientLoggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ClientConfig) Merge(overlay *ClientConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.PageSize != 0 {
		c.PageSize = overlay.PageSize
	}
	if overlay.CartPath != "" {
		c.CartPath = overlay.CartPath
	}
	c.Logging.Merge(&overlay.Logging)
}

func (c *ClientConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080/api"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.PageSize == 0 {
		c.PageSize = 10
	}
	if c.Logging.Output == "" {
		c.Logging.Output = DefaultClientLog
	}
	if c.CartPath == "" {
		c.CartPath = "~/.config/storefront/cart.toml"
	}
}

func (c *ClientConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvClientTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv(EnvCartPath); v != "" {
		c.CartPath = v
	}
}

func (c *ClientConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q", c.Timeout)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	return nil
}
