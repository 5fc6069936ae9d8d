package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "dario.yaml"

// LoadDario loads the game configuration.
// Search order: customPath -> ~/.dario/configs/dario.yaml -> ./configs/dario.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func LoadDario(customPath string) (DarioConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DarioConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DarioConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if p := userConfigPath(configFile); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultDarioYAML)
	if err != nil {
		return DefaultDarioConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the built-in defaults and validates presets.
func parse(data []byte) (DarioConfig, error) {
	cfg := DefaultDarioConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DarioConfig{}, err
	}
	if _, err := ParseSpeedPreset(string(cfg.Game.Speed)); err != nil {
		return DarioConfig{}, err
	}
	if _, err := ParseDifficultyPreset(string(cfg.Difficulty.Preset)); err != nil {
		return DarioConfig{}, err
	}
	if cfg.TickRate <= 0 {
		return DarioConfig{}, fmt.Errorf("config: tick_rate must be positive, got %d", cfg.TickRate)
	}
	if err := cfg.EngineOptions("").Validate(); err != nil {
		return DarioConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dario", "configs", filename)
}
