package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFastBird loads match tuning.
// Search order: customPath -> ~/.fastbird/configs/fastbird.yaml -> ./configs/fastbird.yaml -> embedded default.
// Files only need the keys they change; everything else keeps the default.
func LoadFastBird(customPath string) (FastBirdConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFastBirdConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultFastBirdConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("fastbird.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/fastbird.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFastBirdYAML)
	if err != nil {
		return DefaultFastBirdConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
func Parse(data []byte) (FastBirdConfig, error) {
	cfg := DefaultFastBirdConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFastBirdConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultFastBirdConfig(), err
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fastbird", "configs", filename)
}
