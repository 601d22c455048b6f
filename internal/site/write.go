package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteconf/internal/config"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// Output file names written by WriteSettings.
const (
	SettingsBaseName = "engine-settings"
	InventoryFile    = "subfolders.json"
)

// SettingsFile returns the settings file name for format.
func SettingsFile(format config.SettingsFormat) string {
	if format == config.SettingsFormatJSON {
		return SettingsBaseName + ".json"
	}
	return SettingsBaseName + ".yaml"
}

// WriteSettings writes the settings document and the inventory into dir.
// When delete_output_directory is set the directory is removed first. Each
// file is written to a temporary sibling and renamed into place.
func (s *Site) WriteSettings(dir string, format config.SettingsFormat) ([]string, error) {
	if s.settings == nil {
		return nil, ferrors.InternalError("site has no settings document").Build()
	}
	if dir == "" {
		dir = s.Config.Output.Directory
	}
	if format == "" {
		format = s.Config.Output.SettingsFormat
	}

	if s.Config.Output.DeleteOutputDirectory {
		if err := s.cleanOutput(dir); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot create output directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}

	var settings []byte
	var err error
	switch format {
	case config.SettingsFormatJSON:
		settings, err = json.MarshalIndent(s.settings, "", "  ")
	case config.SettingsFormatYAML:
		settings, err = yaml.Marshal(s.settings)
	default:
		return nil, ferrors.ValidationError(fmt.Sprintf("unknown settings format %q", format)).Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySettings, "cannot encode settings").Fatal().Build()
	}
	inv, err := json.MarshalIndent(s.Inventory, "", "  ")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySettings, "cannot encode inventory").Fatal().Build()
	}

	written := make([]string, 0, 2)
	for _, f := range []struct {
		name string
		data []byte
	}{
		{SettingsFile(format), settings},
		{InventoryFile, inv},
	} {
		path := filepath.Join(dir, f.name)
		if err := writeAtomic(path, f.data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeAtomic(path string, data []byte) error {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot create temporary file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, path)
	}
	if werr != nil {
		_ = os.Remove(tmpName)
		return ferrors.WrapError(werr, ferrors.CategoryFileSystem, "cannot write output file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

// cleanOutput removes dir unless it is the filesystem root, the working
// directory, or contains the content tree.
func (s *Site) cleanOutput(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve output directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	refuse := func(reason string) error {
		return ferrors.ValidationError("refusing to delete output directory: "+reason).
			WithContext("path", abs).
			Build()
	}
	if filepath.Dir(abs) == abs {
		return refuse("it is the filesystem root")
	}
	if wd, err := os.Getwd(); err == nil && isWithin(wd, abs) {
		return refuse("it contains the working directory")
	}
	if content, err := filepath.Abs(s.Config.Content.Path); err == nil && isWithin(content, abs) {
		return refuse("it contains the content directory")
	}
	if err := os.RemoveAll(abs); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot delete output directory").
			Fatal().
			WithContext("path", abs).
			Build()
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
