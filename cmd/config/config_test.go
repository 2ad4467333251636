package config

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	logrusTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
)

func TestSetupConfig(t *testing.T) {
	tests := []struct {
		name      string
		curr      config.User
		currErr   error
		cliOpts   config.User
		expConfig config.User
		expWarn   bool
	}{
		{
			name:      "NoCurrentConfig",
			cliOpts:   config.User{Repo: "dotfiles.git"},
			expConfig: config.User{Repo: "dotfiles.git"},
		},
		{
			name: "KeepsUnsetFields",
			curr: config.User{
				Version:       config.SupportedUserConfigVersion,
				Repo:          "old.git",
				CommitMessage: "sync",
			},
			cliOpts: config.User{Repo: "new.git", GitBackend: config.BackendGoGit},
			expConfig: config.User{
				Version:       config.SupportedUserConfigVersion,
				Repo:          "new.git",
				CommitMessage: "sync",
				GitBackend:    config.BackendGoGit,
			},
		},
		{
			name:      "BrokenCurrentConfig",
			curr:      config.User{Repo: "ignored.git"},
			currErr:   errors.New("bad yaml"),
			cliOpts:   config.User{AuthorName: "Jo", AuthorEmail: "jo@example.com"},
			expConfig: config.User{AuthorName: "Jo", AuthorEmail: "jo@example.com"},
			expWarn:   true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			hook := logrusTest.NewGlobal()
			var out bytes.Buffer
			var written config.User
			stdout = &out
			parseUserConfig = func() (config.User, error) { return test.curr, test.currErr }
			writeUserConfig = func(cfg config.User) error {
				written = cfg
				return nil
			}
			getUserConfigPath = func() (string, error) { return "/home/user/.settings-sync.yaml", nil }

			assert.NoError(t, SetupConfig(test.cliOpts))
			assert.Equal(t, test.expConfig, written)
			assert.Equal(t, "Wrote config to /home/user/.settings-sync.yaml\n", out.String())

			if test.expWarn {
				assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
			} else {
				assert.Nil(t, hook.LastEntry())
			}
		})
	}
}

func TestSetupConfigWriteError(t *testing.T) {
	parseUserConfig = func() (config.User, error) { return config.User{}, nil }
	writeUserConfig = func(config.User) error {
		return errors.MissingFieldError{Field: "authorEmail"}
	}

	err := SetupConfig(config.User{AuthorName: "Jo"})
	assert.EqualError(t, err, "write config: missing required field: authorEmail")
}

func TestGetters(t *testing.T) {
	parseUserConfig = func() (config.User, error) {
		return config.User{Repo: "https://example.com/dotfiles.git"}, nil
	}

	tests := []struct {
		command   string
		expOutput string
	}{
		{"get-repo", "https://example.com/dotfiles.git\n"},
		{"get-commit-message", config.DefaultCommitMessage + "\n"},
		{"get-git-backend", config.BackendExec + "\n"},
	}

	for _, test := range tests {
		var out bytes.Buffer
		stdout = &out

		cmd := New()
		cmd.SetArgs([]string{test.command})
		assert.NoError(t, cmd.Execute(), test.command)
		assert.Equal(t, test.expOutput, out.String(), test.command)
	}
}
