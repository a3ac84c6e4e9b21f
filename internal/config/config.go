// Package config loads cmd/topogen's defaults from a YAML file, following
// the same env var -> user config file -> built-in default priority the
// teacher's workdir manager uses for its own config path resolution.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the generation defaults a CLI/HTTP invocation falls back to
// when the request itself does not specify them.
type Config struct {
	BaseNetworkOctet int    `yaml:"baseNetworkOctet"`
	OutputDir        string `yaml:"outputDir"`
	Mode             string `yaml:"mode"`
	CoordScale       float64 `yaml:"coordScale"`
}

func defaults() Config {
	return Config{
		BaseNetworkOctet: 19,
		OutputDir:        "./out",
		Mode:             "digital",
		CoordScale:       1.0,
	}
}

// Load resolves the config path (TOPOGEN_CONFIG env var, else
// ~/.config/topogen/config.yaml) and merges it over the built-in
// defaults. A missing file is not an error — it just means defaults().
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("TOPOGEN_CONFIG")
	if path == "" {
		path = defaultPath()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".config", "topogen", "config.yaml")
}
