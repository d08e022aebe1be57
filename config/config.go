// Package config provides configuration loading for the ZITEL tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/northvector/zitel/leano"
)

// Duration wraps time.Duration so YAML values can be written in Go's
// duration syntax ("3s", "1m30s"). Bare numbers are taken as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)

	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the settings shared by the interactive client and the
// exporter.
type Config struct {
	// Gateway holds router connection settings.
	Gateway GatewayConfig `yaml:"gateway"`

	// Monitor holds live dashboard settings.
	Monitor MonitorConfig `yaml:"monitor"`

	// Metrics holds exporter settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// GatewayConfig holds router connection settings.
type GatewayConfig struct {
	// URL is the base URL of the router.
	URL string `yaml:"url"`

	// Username and Password form the login command.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// AuthTimeout bounds the login round trip.
	AuthTimeout Duration `yaml:"auth_timeout"`

	// CommandTimeout bounds each command round trip.
	CommandTimeout Duration `yaml:"command_timeout"`
}

// MonitorConfig holds live dashboard settings.
type MonitorConfig struct {
	// PollInterval is the dashboard refresh cadence.
	PollInterval Duration `yaml:"poll_interval"`
}

// MetricsConfig holds Prometheus metrics server settings.
type MetricsConfig struct {
	// Port to serve metrics on.
	Port int `yaml:"port"`

	// Path for the metrics endpoint.
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config matching the stock firmware's defaults.
func DefaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			URL:            "http://192.168.0.1",
			Username:       "admin",
			Password:       "admin",
			AuthTimeout:    Duration(10 * time.Second),
			CommandTimeout: Duration(30 * time.Second),
		},
		Monitor: MonitorConfig{
			PollInterval: Duration(3 * time.Second),
		},
		Metrics: MetricsConfig{
			Port: 9184,
			Path: "/metrics",
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// Environment variables override values from the config file.
func LoadConfigFromEnv(cfg *Config) {
	if url := os.Getenv("ZITEL_GATEWAY_URL"); url != "" {
		cfg.Gateway.URL = url
	}

	if username := os.Getenv("ZITEL_USERNAME"); username != "" {
		cfg.Gateway.Username = username
	}

	if password := os.Getenv("ZITEL_PASSWORD"); password != "" {
		cfg.Gateway.Password = password
	}

	if interval := os.Getenv("ZITEL_POLL_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Monitor.PollInterval = Duration(d)
		}
	}

	if port := os.Getenv("ZITEL_METRICS_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			cfg.Metrics.Port = p
		}
	}
}

// ToClientConfig converts the gateway section to a leano.Config.
func (c *Config) ToClientConfig() leano.Config {
	return leano.Config{
		URL:            c.Gateway.URL,
		Username:       c.Gateway.Username,
		Password:       c.Gateway.Password,
		AuthTimeout:    c.Gateway.AuthTimeout.Std(),
		CommandTimeout: c.Gateway.CommandTimeout.Std(),
	}
}
