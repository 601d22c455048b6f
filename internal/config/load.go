package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// envFiles are loaded from the config file's directory. .env.local comes first
// so its values win; variables already in the process environment are never
// overridden.
var envFiles = []string{".env.local", ".env"}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads, expands, decodes and normalizes the configuration at configPath.
// It does not validate; callers run Validate once the plugin registry exists.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
			Fatal().
			UserAction().
			WithContext("path", configPath).
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(expandEnv(data))
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext("path", configPath)
		}
		return nil, err
	}

	slog.Debug("Configuration loaded", logfields.Config(configPath))
	return cfg, nil
}

// Parse decodes YAML on top of Default and normalizes the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
			Fatal().
			UserAction().
			Build()
	}
	for _, w := range Normalize(cfg).Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	return cfg, nil
}

// expandEnv replaces ${VAR} references. Bare $ is left alone so regular
// expressions such as TOC header patterns survive.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, fmt.Sprintf("failed to load %s", name)).
				Fatal().
				UserAction().
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}
