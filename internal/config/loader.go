package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "slidelink.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.slidelink/configs/slidelink.yaml ->
// ./configs/slidelink.yaml -> embedded default.
// Files are read on top of the embedded default, so they may set only the
// keys they change. Only an explicit customPath makes read errors fatal.
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := embedded()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		candidate.Source = path
		return candidate, candidate.Validate()
	}

	return cfg, nil
}

// embedded parses the embedded default YAML.
func embedded() Config {
	cfg := Config{}
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	cfg.Source = "builtin"
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slidelink", "configs", filename)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
