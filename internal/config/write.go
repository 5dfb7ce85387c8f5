package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/memtop/internal/errors"
)

// Write serializes the config to path. Used by 'memtop init'.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config",
			"This is a bug; please report it")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check directory permissions for "+path)
	}
	return nil
}
