package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const maxPort = 65535

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server ServerConfig      `toml:"server"`
	Log    LogConfig         `toml:"log"`
	MIME   map[string]string `toml:"mime"`
}

// ServerConfig contains HTTP server and port scanning settings.
type ServerConfig struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	Attempts        int           `toml:"attempts"`
	Entry           string        `toml:"entry"`
	OpenBrowser     bool          `toml:"open_browser"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if config.MIME == nil {
		config.MIME = map[string]string{}
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path.
//
// An existing file is only replaced when overwrite is set.
func CreateConfigFile(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a loopback-only server with a usable port range.
func (c *Config) Validate() error {
	s := c.Server
	if !IsLoopback(s.Host) {
		return fmt.Errorf("%w: host %q is not a loopback address", ErrInvalidConfig, s.Host)
	}
	if s.Port < 1 || s.Port > maxPort {
		return fmt.Errorf("%w: port %d out of range 1-%d", ErrInvalidConfig, s.Port, maxPort)
	}
	if s.Attempts < 1 {
		return fmt.Errorf("%w: attempts must be at least 1, got %d", ErrInvalidConfig, s.Attempts)
	}
	if s.Port+s.Attempts-1 > maxPort {
		return fmt.Errorf("%w: port range %d-%d exceeds %d", ErrInvalidConfig, s.Port, s.Port+s.Attempts-1, maxPort)
	}
	if strings.TrimSpace(s.Entry) == "" {
		return fmt.Errorf("%w: entry page is empty", ErrInvalidConfig)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// IsLoopback reports whether host names the local machine.
func IsLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
