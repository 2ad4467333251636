package config

import (
	"fmt"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/Art0r/settings-automation/pkg/errors"
)

func TestParseUser(t *testing.T) {
	out := ".settings-sync.yaml"
	userEmptyVersion := User{
		Repo:          "https://example.com/dotfiles.git",
		CommitMessage: "sync",
	}
	userCorrectVersion := User{
		Version:       SupportedUserConfigVersion,
		Repo:          "https://example.com/dotfiles.git",
		CommitMessage: "sync",
	}
	userIncorrectVersion := User{
		Version: "incorrect_version",
		Repo:    "https://example.com/dotfiles.git",
	}

	tests := []struct {
		name      string
		input     []byte
		expConfig User
		expError  error
	}{
		{
			name:  "EmptyVersion",
			input: mustMarshal(userEmptyVersion),
			expConfig: User{
				Version:       InitialUserConfigVersion,
				Repo:          "https://example.com/dotfiles.git",
				CommitMessage: "sync",
			},
		},
		{
			name:      "CorrectVersion",
			input:     mustMarshal(userCorrectVersion),
			expConfig: userCorrectVersion,
		},
		{
			name:  "IncorrectVersion",
			input: mustMarshal(userIncorrectVersion),
			expError: errors.WithContext(incompatibleVersionError{
				path:   out,
				exp:    SupportedUserConfigVersion,
				actual: "incorrect_version",
			}, "parse"),
		},
		{
			name: "ExtraFields",
			input: []byte(fmt.Sprintf(
				"version: %s\nextra: fields", SupportedUserConfigVersion)),
			expError: errors.WithContext(
				errors.NewFriendlyError(badConfigTemplate, out,
					errors.New("error unmarshaling JSON: while decoding JSON: "+
						`json: unknown field "extra"`)),
				"parse"),
		},
		{
			name:  "UnknownBackend",
			input: mustMarshal(User{GitBackend: "svn"}),
			expError: errors.WithContext(errors.NewFriendlyError(
				"Unknown gitBackend \"svn\". It must be either \"exec\" or \"go-git\"."),
				"validate"),
		},
		{
			name:     "AuthorWithoutEmail",
			input:    mustMarshal(User{AuthorName: "Jo"}),
			expError: errors.WithContext(errors.MissingFieldError{Field: "authorEmail"}, "validate"),
		},
		{
			name:     "EmailWithoutAuthor",
			input:    mustMarshal(User{AuthorEmail: "jo@example.com"}),
			expError: errors.WithContext(errors.MissingFieldError{Field: "authorName"}, "validate"),
		},
	}

	fs = afero.NewMemMapFs()
	homedirExpand = func(_ string) (string, error) {
		return out, nil
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			err := afero.WriteFile(fs, out, test.input, 0644)
			assert.NoError(t, err)
			config, err := ParseUser()
			assert.Equal(t, test.expConfig, config)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestParseUserMissingFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(_ string) (string, error) {
		return "/home/user/.settings-sync.yaml", nil
	}

	cfg, err := ParseUser()
	assert.NoError(t, err)
	assert.Equal(t, User{Version: InitialUserConfigVersion}, cfg)
	assert.Equal(t, DefaultCommitMessage, cfg.GetCommitMessage())
	assert.Equal(t, BackendExec, cfg.GetGitBackend())
}

func TestParseWrittenUser(t *testing.T) {
	fs = afero.NewMemMapFs()
	homedirExpand = func(_ string) (string, error) {
		return ".settings-sync.yaml", nil
	}

	user := User{
		Repo:          "git@example.com:me/dotfiles.git",
		CommitMessage: "nightly",
		AuthorName:    "Jo",
		AuthorEmail:   "jo@example.com",
		GitBackend:    BackendGoGit,
	}

	// Write the user to disk, and assert that we get the same user config when
	// we parse it.
	assert.NoError(t, WriteUser(user))

	parsed, err := ParseUser()
	assert.NoError(t, err)

	user.Version = SupportedUserConfigVersion
	assert.Equal(t, user, parsed)
	assert.Equal(t, "nightly", parsed.GetCommitMessage())
	assert.Equal(t, BackendGoGit, parsed.GetGitBackend())
}

func mustMarshal(cfg interface{}) []byte {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		panic(fmt.Errorf("bad test input, unable to marshal to yaml: %s", err))
	}
	return yamlBytes
}
