package core

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDirName  = "rpcdeck"
	configFileName = "config.json"
	dbFileName     = "profiles.db"
	logFileName    = "rpcdeck.log"

	// TokenEnv overrides the configured GitHub token.
	TokenEnv = "RPCDECK_GITHUB_TOKEN"
)

// Config is the user-level configuration.
type Config struct {
	Version          int    `json:"version"`
	DBPath           string `json:"db_path,omitempty"`
	GitHubAPI        string `json:"github_api,omitempty"`
	GitHubToken      string `json:"github_token,omitempty"`
	HighlightStyle   string `json:"highlight_style,omitempty"`
	StrictValidation bool   `json:"strict_validation,omitempty"`
	LogPath          string `json:"log_path,omitempty"`
}

// ConfigDir returns ~/.config/rpcdeck.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", configDirName), nil
}

// DefaultConfigPath returns the config file location.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultConfig returns a config with every path filled in.
func DefaultConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Version:        1,
		DBPath:         filepath.Join(dir, dbFileName),
		HighlightStyle: "dracula",
		LogPath:        filepath.Join(dir, logFileName),
	}, nil
}

// ReadConfig reads the config at path, falling back to defaults for a
// missing file or empty fields. An empty path means the default location.
func ReadConfig(path string) (*Config, error) {
	defaults, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	config := *defaults
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	}

	if config.DBPath == "" {
		config.DBPath = defaults.DBPath
	}
	if config.LogPath == "" {
		config.LogPath = defaults.LogPath
	}
	if config.HighlightStyle == "" {
		config.HighlightStyle = defaults.HighlightStyle
	}
	if token := os.Getenv(TokenEnv); token != "" {
		config.GitHubToken = token
	}
	return &config, nil
}

// WriteConfig writes config to path, creating its directory.
func WriteConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
