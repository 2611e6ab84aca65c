// Package scenariofile finds and loads scenario files. YAML, TOML and HCL
// files all decode to the same generic tree and go through one parser, so
// validation and error messages do not depend on the format.
package scenariofile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scenario-runner/sr/internal/errors"
)

// DefaultNames are tried in order when no file is given explicitly.
var DefaultNames = []string{"sr.yml", "sr.yaml", "sr.toml", "sr.hcl"}

// Format is a scenario file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", errors.ConfigUnsupportedFormat(path)
}

// Resolve returns the absolute path of the scenario file to load.
//
// A non-empty file is resolved against cwd and must exist. Otherwise the
// first of DefaultNames present in cwd is used.
func Resolve(file, cwd string) (string, error) {
	if file != "" {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.IOFileNotFound(path)
			}
			return "", errors.IOReadError(path, err)
		}
		if info.IsDir() {
			return "", errors.IOReadError(path, errors.New(errors.CodeIOReadError, "is a directory"))
		}
		return path, nil
	}

	for _, name := range DefaultNames {
		path := filepath.Join(cwd, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.IOFileNotFound(filepath.Join(cwd, DefaultNames[0])).
		WithDetail("tried", DefaultNames)
}
