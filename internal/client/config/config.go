package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	InterfaceREPL = "repl"
	InterfaceTUI  = "tui"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the client.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StorePath      string
	Interface      string
	LogLevel       string
	LogFile        string
}

// LoadDefaults populates c with defaults suitable for a local dev server.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.StorePath = "session.db"
	c.Interface = InterfaceREPL
	c.LogLevel = "info"
	c.LogFile = ""
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("%w: store path is empty", ErrInvalidConfig)
	}
	switch c.Interface {
	case InterfaceREPL, InterfaceTUI:
	default:
		return fmt.Errorf("%w: interface %q", ErrInvalidConfig, c.Interface)
	}
	return nil
}

// LoadConfig applies defaults, then the config file (if any), then flags.
// Malformed files or flags panic, as the process cannot start sensibly.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}
