package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigFileName is the dedicated TOML configuration file
const ConfigFileName = ".simclust.toml"

// YAMLConfigName is the fallback YAML configuration file (no extension;
// viper resolves .yaml/.yml)
const YAMLConfigName = "simclust"

// TomlConfigLoader handles configuration loading with TOML priority
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with the following priority:
// 1. .simclust.toml discovered at startDir or any parent
// 2. simclust.yaml / simclust.yml at startDir
// 3. defaults
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	if path := l.findConfigFile(startDir); path != "" {
		return l.loadTomlFile(path)
	}
	if cfg, err := l.loadYAMLConfig(startDir); err == nil && cfg != nil {
		return cfg, nil
	}
	return DefaultConfig(), nil
}

// findConfigFile walks from startDir to the filesystem root looking for
// the dedicated config file.
func (l *TomlConfigLoader) findConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadTomlFile parses a TOML config file over the defaults.
func (l *TomlConfigLoader) loadTomlFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAMLConfig reads the fallback YAML config via viper. A missing
// file is not an error; the caller falls through to defaults.
func (l *TomlConfigLoader) loadYAMLConfig(startDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(YAMLConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(startDir)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
