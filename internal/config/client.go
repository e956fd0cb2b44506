package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig is the labctl profile.  It is read from a YAML file and
// then overridden by LAB_* environment variables; command-line flags are
// applied last by the caller.
type ClientConfig struct {
	// BaseURL is the API origin, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every request issued by a single REPL command.
	Timeout time.Duration `yaml:"timeout"`

	// Email pre-fills the login view.
	Email string `yaml:"email"`

	// Color toggles styled output.
	Color bool `yaml:"color"`
}

// DefaultClientConfig returns the profile used when no file exists.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL: "http://localhost:8000",
		Timeout: 15 * time.Second,
		Color:   true,
	}
}

// DefaultClientConfigPath is $XDG_CONFIG_HOME/labctl/config.yaml or the
// ~/.config equivalent.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "labctl.yaml"
	}
	return filepath.Join(dir, "labctl", "config.yaml")
}

// LoadClientConfig reads path (a missing file yields the defaults) and
// applies environment overrides.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.BaseURL = envStr("LAB_BASE_URL", cfg.BaseURL)
	cfg.Timeout = envDur("LAB_TIMEOUT", cfg.Timeout)
	cfg.Email = envStr("LAB_EMAIL", cfg.Email)
	cfg.Color = envBool("LAB_COLOR", cfg.Color)
	return cfg, cfg.Validate()
}

// Validate rejects a profile the client cannot use.
func (c *ClientConfig) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must start with http:// or https://", c.BaseURL)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultClientConfig().Timeout
	}
	return nil
}
