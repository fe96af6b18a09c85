// Package config loads the companion's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvDataPath       = "MDC_DATA_PATH"
	EnvBackupPassword = "MDC_BACKUP_PASSWORD"
	EnvAPIPort        = "MDC_API_PORT"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Season  SeasonConfig  `toml:"season"`
	API     APIConfig     `toml:"api"`
	Backup  BackupConfig  `toml:"backup"`
	App     AppConfig     `toml:"app"`
}

// StorageConfig selects where match data lives.
type StorageConfig struct {
	Backend string `toml:"backend"` // "json" or "sqlite"
	Path    string `toml:"path"`    // data file
	Watch   bool   `toml:"watch"`   // reload when the file changes on disk
}

// SeasonConfig holds season defaults.
type SeasonConfig struct {
	Default string `toml:"default"` // active season when the data file names none
}

// APIConfig configures the local REST server.
type APIConfig struct {
	Port           int      `toml:"port"`
	RateLimit      float64  `toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst      int      `toml:"rate_burst"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// BackupConfig configures data file backups.
type BackupConfig struct {
	Dir string `toml:"dir"` // empty means <data dir>/backups

	// Password is only read from the environment.
	Password string `toml:"-"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "json",
			Path:    "card_data.json",
			Watch:   true,
		},
		Season: SeasonConfig{
			Default: "S38",
		},
		API: APIConfig{
			Port:      8765,
			RateLimit: 20,
			RateBurst: 40,
			AllowedOrigins: []string{
				"http://localhost:*",
				"http://127.0.0.1:*",
			},
		},
	}
}

// DefaultPath returns ~/.md-companion/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".md-companion", "config.toml"), nil
}

// Load reads the config at DefaultPath, then applies .env and environment overrides.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
// Environment overrides are applied after the file.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from the environment using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataPath); ok && v != "" {
		c.Storage.Path = v
		if strings.EqualFold(filepath.Ext(v), ".db") {
			c.Storage.Backend = "sqlite"
		}
	}
	if v, ok := lookup(EnvBackupPassword); ok {
		c.Backup.Password = v
	}
	if v, ok := lookup(EnvAPIPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPIPort, v, err)
		}
		c.API.Port = port
	}
	return nil
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage path cannot be empty")
	}

	if strings.TrimSpace(c.Season.Default) == "" {
		return fmt.Errorf("default season cannot be empty")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api port out of range: %d", c.API.Port)
	}

	if c.API.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative: %g", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		return fmt.Errorf("rate burst must be positive when rate limiting: %d", c.API.RateBurst)
	}

	return nil
}
