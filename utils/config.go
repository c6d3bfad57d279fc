package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Endpoint EndpointConfig `json:"endpoint"`
	UI       UIConfig       `json:"ui"`
	Data     DataConfig     `json:"data"`
}

// EndpointConfig represents the completion endpoint configuration
type EndpointConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	FontSize     int  `json:"font_size"`
	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	DarkTheme    bool `json:"dark_theme"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	SettingsDBPath string `json:"settings_db_path"`
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths
	if config.Data.SettingsDBPath != "" {
		config.Data.SettingsDBPath = expandPath(config.Data.SettingsDBPath)
	}

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "quick-chat-client", "config.json")
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "openai/gpt-5.1",
		},
		UI: UIConfig{
			FontSize:     14,
			WindowWidth:  720,
			WindowHeight: 560,
			DarkTheme:    false,
		},
		Data: DataConfig{
			SettingsDBPath: "./data/settings.db",
		},
	}
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", err
	}

	return configPath, nil
}
