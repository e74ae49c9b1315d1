package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/myblog-dev/myblog/internal/router"
)

const (
	configDirName  = "myblog"
	configFileName = "state.json"
)

// UserConfig is the user's local client state stored in ~/.config/myblog/state.json.
// Navigation history is kept per API base URL.
type UserConfig struct {
	Navigation map[string]router.History `json:"navigation,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	if dir := os.Getenv("MYBLOG_STATE_DIR"); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return empty config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// GetHistory returns the saved navigation history for a server
func GetHistory(baseURL string) (router.History, error) {
	cfg, err := Load()
	if err != nil {
		return router.History{}, err
	}
	return cfg.Navigation[baseURL], nil
}

// SetHistory saves the navigation history for a server
func SetHistory(baseURL string, h router.History) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if cfg.Navigation == nil {
		cfg.Navigation = make(map[string]router.History)
	}
	cfg.Navigation[baseURL] = h
	return Save(cfg)
}
