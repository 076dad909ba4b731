// ABOUTME: Lift configuration: JSON file, environment overrides and factories
// ABOUTME: for the SQLite store and the notification scheduler.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/notify"
	"github.com/harperreed/lift/internal/storage"
	"github.com/mitchellh/go-homedir"
)

const (
	dbFileName      = "lift.db"
	notifyDirName   = "notifications"
	defaultLogLevel = "warn"
	defaultLogFile  = "lift.log"
)

// Config stores lift configuration. Environment variables win over the file.
type Config struct {
	// DataDir is the root directory for lift.db and the notification queue.
	// Supports ~ expansion. Defaults to ~/.local/share/lift.
	DataDir string `json:"data_dir,omitempty" env:"LIFT_DATA_DIR"`

	LogLevel string `json:"log_level,omitempty" env:"LIFT_LOG_LEVEL"`

	// LogFile is where `lift mcp` writes its log, since stdout is the protocol.
	LogFile string `json:"log_file,omitempty" env:"LIFT_LOG_FILE"`

	// DefaultRestSeconds is used when no profile exists yet.
	DefaultRestSeconds int `json:"default_rest_seconds,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path, defaulting to lift.log in the data dir.
func (c *Config) GetLogFile() string {
	if c.LogFile == "" {
		return filepath.Join(c.GetDataDir(), defaultLogFile)
	}
	return ExpandPath(c.LogFile)
}

// GetDefaultRestSeconds returns the configured fallback rest duration.
func (c *Config) GetDefaultRestSeconds() int {
	if c.DefaultRestSeconds <= 0 {
		return models.DefaultRestSeconds
	}
	return c.DefaultRestSeconds
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), dbFileName)
}

// ExpandPath expands a leading ~ to the user's home directory. Paths that
// cannot be expanded are returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStorage opens the SQLite store at <data_dir>/lift.db.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// OpenScheduler opens the persistent notification queue at
// <data_dir>/notifications. Badger allows one process per directory, so a
// second lift process falls back to a scheduler that delivers nothing.
// The returned close function is never nil.
func (c *Config) OpenScheduler(deliver notify.Deliverer, logger *log.Logger) (notify.Scheduler, func() error) {
	dir := filepath.Join(c.GetDataDir(), notifyDirName)
	local, err := notify.OpenLocal(dir, deliver, notify.WithLogger(logger))
	if err != nil {
		if logger != nil {
			logger.Warn("notifications disabled", "dir", dir, "err", err)
		}
		return notify.Nop{}, func() error { return nil }
	}
	return local, local.Close
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := homedir.Dir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lift", "config.json")
}

// Load reads config from disk and applies LIFT_* environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
