package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "scene.yaml"

// Load applies a configuration file on top of base. Fields missing from the
// file keep their base values.
//
// Search order: customPath -> ~/.fallscene/configs/scene.yaml ->
// ./configs/scene.yaml -> base unchanged. The returned path is the file that
// was applied, or empty when none was found.
func Load(customPath string, base File) (File, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath, base)
		if err != nil {
			return base, "", err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath, base); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", FileName)
	if cfg, err := loadFile(localPath, base); err == nil {
		return cfg, localPath, nil
	}

	return base, "", nil
}

// loadFile reads path and unmarshals it onto a copy of base.
func loadFile(path string, base File) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fallscene", "configs", filename)
}

// Marshal encodes a configuration as YAML.
func Marshal(f File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
