package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version   int        `toml:"version"`
	Endpoints Endpoints  `toml:"endpoints"`
	Map       MapConfig  `toml:"map"`
	Download  Download   `toml:"download"`
	UISettings UISettings `toml:"ui"`
}

// Endpoints holds the backend URLs the client talks to.
type Endpoints struct {
	SearchURL   string `toml:"search_url"`
	ValidateURL string `toml:"validate_url"`
	DownloadURL string `toml:"download_url"`
}

// MapConfig holds the initial map placement and timing knobs.
type MapConfig struct {
	CenterLat    float64 `toml:"center_lat"`
	CenterLng    float64 `toml:"center_lng"`
	InitialLevel int     `toml:"initial_level"`
}

// Download holds spreadsheet export settings.
type Download struct {
	Dir string `toml:"dir"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	FilterDebounceMS int  `toml:"filter_debounce_ms"`
	ShowStats        bool `toml:"show_stats"`
}

// FilterDebounce returns the filter commit debounce as a duration.
func (c *Config) FilterDebounce() time.Duration {
	return time.Duration(c.UISettings.FilterDebounceMS) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "roomsearch")
	os.MkdirAll(appDir, 0755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Endpoints.SearchURL == "" {
		cfg.Endpoints.SearchURL = "https://33m2.co.kr/app/room/search"
	}
	if cfg.Endpoints.ValidateURL == "" {
		cfg.Endpoints.ValidateURL = "http://localhost:8000/api/validate_session"
	}
	if cfg.Endpoints.DownloadURL == "" {
		cfg.Endpoints.DownloadURL = "http://localhost:8000/api/download_excel"
	}
	if cfg.Map.CenterLat == 0 && cfg.Map.CenterLng == 0 {
		// Sinchon station
		cfg.Map.CenterLat = 37.555134
		cfg.Map.CenterLng = 126.936893
	}
	if cfg.Map.InitialLevel == 0 {
		cfg.Map.InitialLevel = 4
	}
	if cfg.UISettings.FilterDebounceMS == 0 {
		cfg.UISettings.FilterDebounceMS = 300
	}
	if cfg.Download.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Download.Dir = filepath.Join(home, "Downloads")
	}
}

// Environment variables win over file values so deployments can point the
// client at a different backend without editing the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROOMSEARCH_SEARCH_URL"); v != "" {
		cfg.Endpoints.SearchURL = v
	}
	if v := os.Getenv("ROOMSEARCH_VALIDATE_URL"); v != "" {
		cfg.Endpoints.ValidateURL = v
	}
	if v := os.Getenv("ROOMSEARCH_DOWNLOAD_URL"); v != "" {
		cfg.Endpoints.DownloadURL = v
	}
	if v := os.Getenv("ROOMSEARCH_DOWNLOAD_DIR"); v != "" {
		cfg.Download.Dir = v
	}
}
