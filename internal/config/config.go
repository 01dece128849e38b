package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
	Telegram struct {
		Token string `json:"token"`
	} `json:"telegram"`
	Album struct {
		DebounceSeconds      int `json:"debounce_seconds"`
		MaxItemsPerAlbum     int `json:"max_items_per_album"`
		CleanupDelaySeconds  int `json:"cleanup_delay_seconds"`
		MaxConcurrentFlushes int `json:"max_concurrent_flushes"`
	} `json:"album"`
	Session struct {
		IdleTimeoutMinutes   int `json:"idle_timeout_minutes"`
		SweepIntervalMinutes int `json:"sweep_interval_minutes"`
	} `json:"session"`
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Album.DebounceSeconds) * time.Second
}

func (c *Config) CleanupDelay() time.Duration {
	return time.Duration(c.Album.CleanupDelaySeconds) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalMinutes) * time.Minute
}

// Load reads the config file at path, writing one with defaults if it does
// not exist. A .env file in the working directory is loaded first so its
// values reach the environment overrides, which take highest precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:  filepath.Join(os.Getenv("HOME"), ".albumgram"),
		LogLevel: "info",
	}
	cfg.Album.DebounceSeconds = 3
	cfg.Album.MaxItemsPerAlbum = 10
	cfg.Album.CleanupDelaySeconds = 1
	cfg.Album.MaxConcurrentFlushes = 4
	cfg.Session.IdleTimeoutMinutes = 30
	cfg.Session.SweepIntervalMinutes = 10

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Env overrides (highest precedence)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// Save writes the config atomically: temp file then rename.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
