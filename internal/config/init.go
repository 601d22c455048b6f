package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

const initHeader = `# siteconf configuration
#
# Values of the form ${VAR} are read from the environment (.env and
# .env.local next to this file are loaded first).
#
# inventory.mode: root keys subfolders by their path below the content root;
# per_level keys them by directory name only, as older generated sites did.
`

// Init writes a configuration file populated with defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	var buf bytes.Buffer
	buf.WriteString(initHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Fatal().Build()
	}
	if err := enc.Close(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Fatal().Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}
