package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration. Every recognized field
// has an explicit default; Validate fills zero values and rejects
// nonsensical ones once, at load time.
type Config struct {
	BaseDir          string `toml:"base_dir"`
	DebounceMs       int    `toml:"debounce_ms"`
	ScanPollMs       int    `toml:"scan_poll_ms"`
	MaxResults       int    `toml:"max_results"`
	MaxQueryLength   int    `toml:"max_query_length"`
	PreviewCacheSize int    `toml:"preview_cache_size"`
	MaxPreviewLines  int    `toml:"max_preview_lines"`
	MaxPreviewBytes  int64  `toml:"max_preview_bytes"`
	ShowGitStatus    bool   `toml:"show_git_status"`
}

// Defaults
const (
	DefaultDebounceMs       = 10
	DefaultScanPollMs       = 10
	DefaultMaxResults       = 100
	DefaultMaxQueryLength   = 1000
	DefaultPreviewCacheSize = 50
	DefaultMaxPreviewLines  = 400
	DefaultMaxPreviewBytes  = 1 << 20 // 1 MiB
)

// DefaultConfig returns a config with all defaults applied
func DefaultConfig() *Config {
	return &Config{
		DebounceMs:       DefaultDebounceMs,
		ScanPollMs:       DefaultScanPollMs,
		MaxResults:       DefaultMaxResults,
		MaxQueryLength:   DefaultMaxQueryLength,
		PreviewCacheSize: DefaultPreviewCacheSize,
		MaxPreviewLines:  DefaultMaxPreviewLines,
		MaxPreviewBytes:  DefaultMaxPreviewBytes,
		ShowGitStatus:    true,
	}
}

// Validate fills unset fields with defaults and rejects invalid values
func (c *Config) Validate() error {
	if c.DebounceMs < 0 || c.ScanPollMs < 0 {
		return fmt.Errorf("intervals must not be negative")
	}
	if c.DebounceMs == 0 {
		c.DebounceMs = DefaultDebounceMs
	}
	if c.ScanPollMs == 0 {
		c.ScanPollMs = DefaultScanPollMs
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxQueryLength <= 0 {
		c.MaxQueryLength = DefaultMaxQueryLength
	}
	if c.PreviewCacheSize <= 0 {
		c.PreviewCacheSize = DefaultPreviewCacheSize
	}
	if c.MaxPreviewLines <= 0 {
		c.MaxPreviewLines = DefaultMaxPreviewLines
	}
	if c.MaxPreviewBytes <= 0 {
		c.MaxPreviewBytes = DefaultMaxPreviewBytes
	}
	return nil
}

// DebounceInterval returns the query debounce interval
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ScanPollInterval returns the scan monitor reschedule delay
func (c *Config) ScanPollInterval() time.Duration {
	return time.Duration(c.ScanPollMs) * time.Millisecond
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a config service rooted at the user config dir
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &service{
		filePath: filepath.Join(configDir, "fpick", "config.toml"),
	}
}

// Load loads the configuration from the default path
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default path
func (s *service) Save(config *Config) error {
	return s.SaveToPath(config, s.filePath)
}

// LoadFromPath loads configuration from a specific path
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (s *service) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
