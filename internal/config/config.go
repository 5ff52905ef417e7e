// Package config provides configuration management for promptdeck.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// DefaultWorkerPort is the default HTTP port for the local API.
	DefaultWorkerPort = 37790
	// DefaultWorkerHost binds to loopback only.
	DefaultWorkerHost = "127.0.0.1"
	// DefaultStorage is the default slot backend.
	DefaultStorage = "file"
	// DefaultSlotName is the slot that holds prompt history.
	DefaultSlotName = "promptHistory"
	// DefaultRedisAddr is used by the redis backend when no address is set.
	DefaultRedisAddr = "127.0.0.1:6379"

	dataDirName      = ".promptdeck"
	settingsFileName = "settings.json"
	dbFileName       = "promptdeck.db"
	slotDirName      = "slots"
)

// Config holds promptdeck settings.
type Config struct {
	Storage             string `json:"PROMPTDECK_STORAGE"`
	SlotName            string `json:"PROMPTDECK_SLOT"`
	SlotDir             string `json:"PROMPTDECK_SLOT_DIR"`
	DBPath              string `json:"PROMPTDECK_DB_PATH"`
	PostgresDSN         string `json:"PROMPTDECK_POSTGRES_DSN"`
	RedisAddr           string `json:"PROMPTDECK_REDIS_ADDR"`
	WorkerHost          string `json:"PROMPTDECK_WORKER_HOST"`
	CatalogPath         string `json:"PROMPTDECK_CATALOG_PATH"`
	MaxConns            int    `json:"PROMPTDECK_MAX_CONNS"`
	WorkerPort          int    `json:"PROMPTDECK_WORKER_PORT"`
	EnhancedSuggestions bool   `json:"PROMPTDECK_ENHANCED_SUGGESTIONS"`
}

// DataDir returns the promptdeck data directory (~/.promptdeck).
func DataDir() string {
	if dir := os.Getenv("PROMPTDECK_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, dataDirName)
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), settingsFileName)
}

// DBPath returns the default SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), dbFileName)
}

// SlotDir returns the default directory for file-backed slots.
func SlotDir() string {
	return filepath.Join(DataDir(), slotDirName)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage:    DefaultStorage,
		SlotName:   DefaultSlotName,
		SlotDir:    SlotDir(),
		DBPath:     DBPath(),
		RedisAddr:  DefaultRedisAddr,
		WorkerHost: DefaultWorkerHost,
		WorkerPort: DefaultWorkerPort,
		MaxConns:   4,
	}
}

// EnsureDataDir creates the data directory if it does not exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings writes a default settings file if none exists.
func EnsureSettings() error {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// EnsureAll creates the data directory and the default settings file.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	return EnsureSettings()
}

// Load reads settings.json over the defaults and then applies environment
// overrides. A missing or unparsable settings file leaves the defaults in place.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		file := Default()
		if jsonErr := json.Unmarshal(data, file); jsonErr == nil {
			cfg = file
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PROMPTDECK_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("PROMPTDECK_SLOT"); v != "" {
		cfg.SlotName = v
	}
	if v := os.Getenv("PROMPTDECK_SLOT_DIR"); v != "" {
		cfg.SlotDir = v
	}
	if v := os.Getenv("PROMPTDECK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PROMPTDECK_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("PROMPTDECK_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("PROMPTDECK_WORKER_HOST"); v != "" {
		cfg.WorkerHost = v
	}
	if v := os.Getenv("PROMPTDECK_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if port, ok := envInt("PROMPTDECK_WORKER_PORT"); ok && port > 0 {
		cfg.WorkerPort = port
	}
	if n, ok := envInt("PROMPTDECK_MAX_CONNS"); ok && n > 0 {
		cfg.MaxConns = n
	}
	if v := os.Getenv("PROMPTDECK_ENHANCED_SUGGESTIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnhancedSuggestions = b
		}
	}
}

// normalize fills fields a settings file may have blanked.
func (c *Config) normalize() {
	d := Default()
	if c.Storage == "" {
		c.Storage = d.Storage
	}
	if c.SlotName == "" {
		c.SlotName = d.SlotName
	}
	if c.SlotDir == "" {
		c.SlotDir = d.SlotDir
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.RedisAddr == "" {
		c.RedisAddr = d.RedisAddr
	}
	if c.WorkerHost == "" {
		c.WorkerHost = d.WorkerHost
	}
	if c.WorkerPort <= 0 {
		c.WorkerPort = d.WorkerPort
	}
	if c.MaxConns <= 0 {
		c.MaxConns = d.MaxConns
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
