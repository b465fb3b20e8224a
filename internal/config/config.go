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

// Config holds the player's runtime settings.
type Config struct {
	APIURL       string
	PollInterval time.Duration
	PrefsPath    string
	LogFile      string
	LogLevel     string
	LogFormat    string // "json" or "console"
	Notify       bool
}

const (
	defaultConfigPath   = "~/.config/nowplaying/config.toml"
	defaultAPIURL       = "https://api.lanyard.rest"
	defaultPollInterval = time.Second
	defaultPrefsPath    = "~/.config/nowplaying/prefs.toml"
	defaultLogFile      = "~/.local/state/nowplaying/nowplaying.log"
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:       defaultAPIURL,
		PollInterval: defaultPollInterval,
		PrefsPath:    mustExpand(defaultPrefsPath),
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL       string `toml:"api_url"`
		PollInterval string `toml:"poll_interval"`
		PrefsPath    string `toml:"prefs_path"`
		LogFile      string `toml:"log_file"`
		LogLevel     string `toml:"log_level"`
		LogFormat    string `toml:"log_format"`
		Notify       bool   `toml:"notify"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: poll_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse config: poll_interval must be positive, got %s", v)
		}
		cfg.PollInterval = d
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		if v != "json" && v != "console" {
			return Config{}, fmt.Errorf("parse config: log_format must be json or console, got %q", raw.LogFormat)
		}
		cfg.LogFormat = v
	}
	cfg.Notify = raw.Notify

	return cfg, nil
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
