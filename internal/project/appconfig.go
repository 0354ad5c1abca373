package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// HomeEnv overrides the configuration directory when set.
const HomeEnv = "SEATSHUFFLE_HOME"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.seatshuffle/ unless SEATSHUFFLE_HOME is set.
func DefaultConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".seatshuffle")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if err := checkAppConfig(config); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	// Ensure RecentRequests is never nil
	if config.RecentRequests == nil {
		config.RecentRequests = []string{}
	}
	return config, nil
}

// checkAppConfig rejects defaults the engine would refuse later.
func checkAppConfig(c model.AppConfig) error {
	if _, err := model.ParseOverflowMode(string(c.DefaultOverflowMode)); err != nil {
		return err
	}
	if c.DefaultRows < 0 || c.DefaultCols < 0 {
		return fmt.Errorf("%w: default room %dx%d has a negative dimension",
			model.ErrInvalidInput, c.DefaultRows, c.DefaultCols)
	}
	if c.DefaultMaxRetries < 0 {
		return fmt.Errorf("%w: default max retries must not be negative, got %d",
			model.ErrInvalidInput, c.DefaultMaxRetries)
	}
	return nil
}
