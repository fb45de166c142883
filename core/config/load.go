package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(fs afero.Fs, path string) (*Config, error) {
	// If given the path to a minsh.yaml file, move back up a level.
	if filepath.Base(path) == ConfigName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fs, filepath.Join(path, ConfigName))
	if err != nil {
		return nil, err
	}

	var out Config
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigName, err)
	}

	return &out, nil
}

// Initialize writes the default configuration into the directory. It
// refuses to clobber an existing file.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) (*Config, error) {
	configPath := filepath.Join(dir, ConfigName)

	if exists, err := afero.Exists(fs, configPath); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%s already exists, not overwriting", configPath)
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fs, configPath, defaultConfigData, 0644); err != nil {
		return nil, err
	}
	logger.Printf("Wrote %s", configPath)

	return Load(fs, dir)
}
