package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// searchExtensions are tried in order for each search directory.
var searchExtensions = []string{".yaml", ".yml", ".toml"}

// Load loads the configuration for a game.
// Search order: customPath -> ~/.arcade/configs/<id>.{yaml,yml,toml} ->
// ./configs/<id>.{yaml,yml,toml} -> embedded default -> compiled-in default.
//
// A user file only needs the fields it changes: it is decoded over the
// compiled-in defaults of the game. Its entity list, when present,
// replaces the default classes as a whole.
//
// Only an explicit customPath can produce an error; search path files that
// fail to read or parse are skipped.
func Load(gameID, customPath string) (VariantConfig, error) {
	base, _ := Default(gameID)

	if customPath != "" {
		cfg, err := loadOver(base, customPath)
		if err != nil {
			return cfg, err
		}
		return withID(cfg, gameID), nil
	}

	for _, dir := range searchDirs() {
		for _, ext := range searchExtensions {
			cfg, err := loadOver(base, filepath.Join(dir, gameID+ext))
			if err == nil {
				return withID(cfg, gameID), nil
			}
		}
	}

	// Use embedded default YAML
	if data, ok := embeddedDefaults[gameID]; ok {
		var cfg VariantConfig
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withID(cfg, gameID), nil
		}
	}

	if cfg, ok := Default(gameID); ok {
		return cfg, nil
	}
	return VariantConfig{}, fmt.Errorf("no configuration for game %q", gameID)
}

// LoadFile reads a single config file. The format is picked by extension:
// .toml is decoded as TOML, anything else as YAML.
func LoadFile(path string) (VariantConfig, error) {
	return loadOver(VariantConfig{}, path)
}

// loadOver decodes the file at path on top of base.
func loadOver(base VariantConfig, path string) (VariantConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// The TOML decoder fills existing slice elements in place, so the
	// default classes are set aside rather than merged into.
	cfg := base
	cfg.Entities = nil
	if err := decode(path, data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if len(cfg.Entities) == 0 {
		cfg.Entities = base.Entities
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *VariantConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// withID fills in the game ID when a user file leaves it out.
func withID(cfg VariantConfig, gameID string) VariantConfig {
	if cfg.ID == "" {
		cfg.ID = gameID
	}
	return cfg
}

// searchDirs returns the user config directory (if home is available)
// followed by the local configs directory.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if dir := userConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, "configs")
}

// userConfigDir returns the user config directory, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}
