package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// FocusConfig holds focus-session settings.
type FocusConfig struct {
	// DurationSec is the length of a new focus session in seconds.
	DurationSec int `mapstructure:"duration_sec" yaml:"duration_sec"`
}

// BooksConfig holds recommendation settings.
type BooksConfig struct {
	// RecommendLimit caps the result list of a recommendation query.
	RecommendLimit int `mapstructure:"recommend_limit" yaml:"recommend_limit"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Focus    FocusConfig    `mapstructure:"focus" yaml:"focus"`
	Books    BooksConfig    `mapstructure:"books" yaml:"books"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/momentum/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "momentum", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, _ := os.UserHomeDir()
	return &AppConfig{
		Server:   ServerConfig{Host: "localhost", Port: 8080},
		Database: DatabaseConfig{Path: filepath.Join(home, ".local", "share", "momentum", "momentum.db")},
		Focus:    FocusConfig{DurationSec: DefaultFocusSeconds},
		Books:    BooksConfig{RecommendLimit: 12},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("focus.duration_sec", defaults.Focus.DurationSec)
	v.SetDefault("books.recommend_limit", defaults.Books.RecommendLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("database", cfg.Database)
	v.Set("focus", cfg.Focus)
	v.Set("books", cfg.Books)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
