package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"xpdesk/log"
)

const (
	ConfigFileName  = "config.json"
	SessionFileName = "session.json"

	defaultAPIBaseURL = "http://127.0.0.1:8088"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".xpdesk"), nil
}

// SessionFilePath returns the path of the session key-value store file.
func SessionFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, SessionFileName), nil
}

// Config represents the application configuration
type Config struct {
	// WalletAddress is the pool wallet whose stats are shown.
	WalletAddress string `json:"wallet_address"`
	// APIBaseURL is the base URL of the pool API.
	APIBaseURL string `json:"api_base_url"`
	// FastPollSeconds is the interval for the wallet-stats fetch.
	FastPollSeconds int `json:"fast_poll_seconds"`
	// SlowPollSeconds is the interval for the pool-summary fetch.
	SlowPollSeconds int `json:"slow_poll_seconds"`
	// ChartWindowSeconds is the rolling window of the hashrate chart.
	ChartWindowSeconds int `json:"chart_window_seconds"`
	// ChartSampleSeconds is the sampling interval of the hashrate chart.
	ChartSampleSeconds int `json:"chart_sample_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		WalletAddress:      "",
		APIBaseURL:         defaultAPIBaseURL,
		FastPollSeconds:    15,
		SlowPollSeconds:    60,
		ChartWindowSeconds: 24 * 3600,
		ChartSampleSeconds: 30,
	}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	applyDefaults(&config)
	return &config
}

// applyDefaults fills zero-valued intervals so an older config file keeps working.
func applyDefaults(c *Config) {
	d := DefaultConfig()
	if c.APIBaseURL == "" {
		c.APIBaseURL = d.APIBaseURL
	}
	if c.FastPollSeconds <= 0 {
		c.FastPollSeconds = d.FastPollSeconds
	}
	if c.SlowPollSeconds <= 0 {
		c.SlowPollSeconds = d.SlowPollSeconds
	}
	if c.ChartWindowSeconds <= 0 {
		c.ChartWindowSeconds = d.ChartWindowSeconds
	}
	if c.ChartSampleSeconds <= 0 {
		c.ChartSampleSeconds = d.ChartSampleSeconds
	}
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
