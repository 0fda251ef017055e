package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds shelfscan settings.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	DedupeWindow   time.Duration
	ScanDevice     string
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/shelfscan/config.toml"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultDedupeWindow   = 2000 * time.Millisecond
	defaultLogFile        = "~/.local/state/shelfscan/shelfscan.log"
	defaultLogLevel       = "info"
)

// Environment variables applied after the file.
const (
	EnvAPIURL     = "SHELFSCAN_API_URL"
	EnvScanDevice = "SHELFSCAN_SCAN_DEVICE"
	EnvLogLevel   = "SHELFSCAN_LOG_LEVEL"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		DedupeWindow:   defaultDedupeWindow,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load parses the config at path, falling back to defaults when the file is
// missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.withEnv()
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		DedupeWindowMS        int    `toml:"dedupe_window_ms"`
		ScanDevice            string `toml:"scan_device"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.DedupeWindowMS > 0 {
		cfg.DedupeWindow = time.Duration(raw.DedupeWindowMS) * time.Millisecond
	}
	cfg.ScanDevice = strings.TrimSpace(raw.ScanDevice)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg.withEnv()
}

func (c Config) withEnv() (Config, error) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScanDevice)); v != "" {
		c.ScanDevice = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if !validLevels[c.LogLevel] {
		return Config{}, fmt.Errorf("parse config: unknown log_level %q", c.LogLevel)
	}
	if c.ScanDevice != "" {
		c.ScanDevice = mustExpand(c.ScanDevice)
	}
	return c, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
