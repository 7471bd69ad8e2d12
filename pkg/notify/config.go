package notify

import (
	"fmt"
	"os"
	"strconv"
)

// Env maps environment variable names for notification configuration.
type Env struct {
	Enabled  string
	Address  string
	Password string
	DB       string
	Channel  string
}

// Config selects and configures the broker. When Enabled is false an
// in-process broker is used and no Redis connection is made.
type Config struct {
	Enabled    bool   `toml:"enabled"`
	Address    string `toml:"address"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	Channel    string `toml:"channel"`
	BufferSize int    `toml:"buffer_size"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.Channel != "" {
		c.Channel = overlay.Channel
	}
	if overlay.BufferSize != 0 {
		c.BufferSize = overlay.BufferSize
	}
}

func (c *Config) loadDefaults() {
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.Channel == "" {
		c.Channel = "storefront:notifications"
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 16
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.Address != "" {
		if v := os.Getenv(env.Address); v != "" {
			c.Address = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.DB != "" {
		if v := os.Getenv(env.DB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DB = n
			}
		}
	}
	if env.Channel != "" {
		if v := os.Getenv(env.Channel); v != "" {
			c.Channel = v
		}
	}
}

func (c *Config) validate() error {
	if c.DB < 0 {
		return fmt.Errorf("db must be non-negative")
	}
	if c.Enabled && c.Address == "" {
		return fmt.Errorf("address required when enabled")
	}
	return nil
}
