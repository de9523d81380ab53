// Package config loads and saves the application configuration.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	appName        = "hozoor"
	configFileName = "config.toml"

	// EnvLogDir overrides the log directory, useful for tests and
	// portable installs.
	EnvLogDir = "APP_LOG_DIR"
)

// Config holds the user-tunable settings. The zero LogDir means "logs
// next to the executable", resolved by LogDir().
type Config struct {
	LogDirectory  string `toml:"log_dir"`
	ListenAddr    string `toml:"listen_addr"`
	PersianDigits bool   `toml:"persian_digits"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ListenAddr:    "127.0.0.1:0",
		PersianDigits: true,
	}
}

// Load reads the config file if present, otherwise returns defaults.
// The APP_LOG_DIR environment variable always wins over the file.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if dir := os.Getenv(EnvLogDir); dir != "" {
		cfg.LogDirectory = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save validates and writes the configuration, creating the config
// directory if needed.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the settings that have a parseable shape.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen_addr %q: %w", c.ListenAddr, err)
	}
	return nil
}

// LogDir resolves the effective log directory: the configured one, or a
// logs subdirectory next to the running executable.
func (c *Config) LogDir() string {
	if c.LogDirectory != "" {
		return c.LogDirectory
	}
	exe, err := os.Executable()
	if err != nil {
		return "logs"
	}
	return filepath.Join(filepath.Dir(exe), "logs")
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}
