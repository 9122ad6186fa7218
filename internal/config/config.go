package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Peloton   PelotonConfig   `yaml:"peloton"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RequestTimeoutSeconds bounds total latency of one summary request,
	// including all upstream page fetches. 0 selects the 60s default.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

type PelotonConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// RequestTimeout returns the configured per-request bound.
func (s ServerConfig) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds == 0 {
		return 60 * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call Peloton HTTP timeout.
func (p PelotonConfig) Timeout() time.Duration {
	if p.TimeoutSeconds == 0 {
		return 30 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix STREAKBOARD_ and underscore-separated
// paths:
//
//	STREAKBOARD_SERVER_HOST, STREAKBOARD_SERVER_PORT,
//	STREAKBOARD_SERVER_REQUEST_TIMEOUT_SECONDS,
//	STREAKBOARD_PELOTON_BASE_URL, STREAKBOARD_PELOTON_TIMEOUT_SECONDS,
//	STREAKBOARD_TS_HOSTNAME, STREAKBOARD_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STREAKBOARD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("STREAKBOARD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STREAKBOARD_SERVER_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Server.RequestTimeoutSeconds = secs
		}
	}
	if v := os.Getenv("STREAKBOARD_PELOTON_BASE_URL"); v != "" {
		cfg.Peloton.BaseURL = v
	}
	if v := os.Getenv("STREAKBOARD_PELOTON_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Peloton.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("STREAKBOARD_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("STREAKBOARD_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
