package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a configuration came from.
const (
	SourceEmbedded = "embedded default"
	SourceBuiltin  = "built-in default"
)

// LocalConfigPath is checked relative to the working directory.
const LocalConfigPath = "configs/arena.yaml"

// Load loads the arena configuration.
// Search order: customPath -> ~/.snake-arena/config.yaml -> ./configs/arena.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which file was used.
// Keys missing from a file keep their default values.
func LoadWithSource(customPath string) (GameConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalConfigPath); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, LocalConfigPath, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultArenaYAML)
	if err != nil {
		return DefaultGameConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of DefaultGameConfig.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake-arena", filename)
}

// StateDir returns ~/.snake-arena, the home of user config, logs and host keys.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".snake-arena"), nil
}
