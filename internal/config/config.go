// Package config loads server configuration from an optional TOML file with
// environment variable overrides.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	YouTube  YouTubeConfig  `toml:"youtube"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port          string `toml:"port"`
	SessionSecret string `toml:"session_secret"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// YouTubeConfig contains YouTube Data API credentials. There is no default
// API key; search stays disabled until one is configured.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "3000"},
		Database: DatabaseConfig{Path: "music.db"},
	}
}

// Load reads the TOML config at path (skipped when path is empty or the file
// does not exist) and then applies environment overrides: PORT, MUSICBOX_DB,
// SESSION_SECRET and YOUTUBE_API_KEY.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if dbPath := os.Getenv("MUSICBOX_DB"); dbPath != "" {
		config.Database.Path = dbPath
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		config.Server.SessionSecret = secret
	}
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		config.YouTube.APIKey = key
	}

	return config, nil
}

// SecretBytes returns the session secret as bytes, generating a random one
// when unset. The second return reports whether the secret was generated and
// is therefore lost on restart.
func (c *Config) SecretBytes() ([]byte, bool, error) {
	if c.Server.SessionSecret != "" {
		return []byte(c.Server.SessionSecret), false, nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, false, fmt.Errorf("failed to generate session secret: %w", err)
	}
	c.Server.SessionSecret = base64.URLEncoding.EncodeToString(secret)

	return []byte(c.Server.SessionSecret), true, nil
}
