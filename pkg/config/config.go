package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// fs is replaced by afero.NewMemMapFs() in tests.
var fs = afero.NewOsFs()

// badConfigTemplate is shown when a config file isn't valid YAML, or has
// fields that we don't know about. The yaml library doesn't report which
// field was wrong in a structured way, so the parser's message is included
// verbatim.
const badConfigTemplate = "Failed to parse the configuration file at %q.\n" +
	"Check that every field has the right type, and that there are no " +
	"fields other than the documented ones.\n\n" +
	"Parser error:\n" +
	"%s"

type versioned interface {
	getVersion() string
}

type incompatibleVersionError struct {
	path, exp, actual string
}

func (err incompatibleVersionError) Error() string {
	return err.FriendlyMessage()
}

func (err incompatibleVersionError) FriendlyMessage() string {
	return fmt.Sprintf("The configuration file %q has version %q, but "+
		"this version of settings-sync only understands %q.",
		err.path, err.actual, err.exp)
}

// parseConfig decodes the YAML file at path into cfg. The version is checked
// before unknown fields so that a config written by a newer release gets a
// version error rather than a confusing field error.
func parseConfig(path string, cfg versioned, expVersion string) error {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if isPathNotFoundError(err) {
			return errors.FileNotFound{Path: path}
		}
		return errors.WithContext(err, "read file")
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return errors.NewFriendlyError(badConfigTemplate, path, err)
	}

	if cfg.getVersion() != expVersion {
		return incompatibleVersionError{path, expVersion, cfg.getVersion()}
	}

	if err := yaml.UnmarshalStrict(contents, cfg, yaml.DisallowUnknownFields); err != nil {
		return errors.NewFriendlyError(badConfigTemplate, path, err)
	}
	return nil
}

func isPathNotFoundError(err error) bool {
	pathErr, ok := err.(*os.PathError)
	return ok && pathErr.Op == "open" && os.IsNotExist(pathErr)
}
