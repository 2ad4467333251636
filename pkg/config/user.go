package config

import (
	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/Art0r/settings-automation/pkg/errors"
)

const (
	// UserConfigPath is the default path to the optional user config.
	UserConfigPath = "~/.settings-sync.yaml"

	// InitialUserConfigVersion is assumed for config files that don't
	// specify a version.
	InitialUserConfigVersion = "v1alpha1"

	// SupportedUserConfigVersion is the user config version understood by
	// this binary.
	SupportedUserConfigVersion = "v1alpha1"

	// DefaultCommitMessage is used for upload commits when the user config
	// doesn't set one.
	DefaultCommitMessage = "Update settings files"

	// BackendExec shells out to the git binary.
	BackendExec = "exec"

	// BackendGoGit uses the pure Go git implementation, and doesn't require
	// git to be installed.
	BackendGoGit = "go-git"
)

// User holds the user's defaults for the sync command. Every field is
// optional, and flags passed on the command line take precedence.
type User struct {
	Version       string `json:"version,omitempty"`
	Repo          string `json:"repo,omitempty"`
	CommitMessage string `json:"commitMessage,omitempty"`
	AuthorName    string `json:"authorName,omitempty"`
	AuthorEmail   string `json:"authorEmail,omitempty"`
	GitBackend    string `json:"gitBackend,omitempty"`
}

func (u User) getVersion() string {
	return u.Version
}

// GetCommitMessage returns the configured commit message, or the default.
func (u User) GetCommitMessage() string {
	if u.CommitMessage == "" {
		return DefaultCommitMessage
	}
	return u.CommitMessage
}

// GetGitBackend returns the configured git backend, or the default.
func (u User) GetGitBackend() string {
	if u.GitBackend == "" {
		return BackendExec
	}
	return u.GitBackend
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseUser parses the user config at the default path. The config file is
// optional, so if it doesn't exist an empty config is returned.
func ParseUser() (User, error) {
	path, err := GetUserConfigPath()
	if err != nil {
		return User{}, errors.WithContext(err, "expand config path")
	}

	cfg := User{Version: InitialUserConfigVersion}
	if err := parseConfig(path, &cfg, SupportedUserConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return User{Version: InitialUserConfigVersion}, nil
		}
		return User{}, errors.WithContext(err, "parse")
	}

	if err := cfg.validate(); err != nil {
		return User{}, errors.WithContext(err, "validate")
	}
	return cfg, nil
}

func (u User) validate() error {
	switch u.GitBackend {
	case "", BackendExec, BackendGoGit:
	default:
		return errors.NewFriendlyError("Unknown gitBackend %q. "+
			"It must be either %q or %q.", u.GitBackend, BackendExec, BackendGoGit)
	}

	if u.AuthorName != "" && u.AuthorEmail == "" {
		return errors.MissingFieldError{Field: "authorEmail"}
	}
	if u.AuthorEmail != "" && u.AuthorName == "" {
		return errors.MissingFieldError{Field: "authorName"}
	}
	return nil
}

// WriteUser writes the given user config to the default path.
func WriteUser(cfg User) error {
	if err := cfg.validate(); err != nil {
		return errors.WithContext(err, "validate")
	}

	cfg.Version = SupportedUserConfigVersion
	path, err := GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetUserConfigPath returns the expanded path to the user config.
func GetUserConfigPath() (string, error) {
	return homedirExpand(UserConfigPath)
}
