package config

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Art0r/settings-automation/cmd/util"
	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout            io.Writer = os.Stdout
	parseUserConfig             = config.ParseUser
	writeUserConfig             = config.WriteUser
	getUserConfigPath           = config.GetUserConfigPath
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.User
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Set the defaults used by settings-sync",
		Long: "Set the defaults used by settings-sync. Only the fields passed " +
			"as flags are changed, the rest of the existing configuration is kept.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if err := SetupConfig(cliOpts); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.Repo, "repo", "",
		"The repository to sync with when `--repo` isn't passed to settings-sync.")
	cmd.Flags().StringVar(&cliOpts.CommitMessage, "commit-message", "",
		"The commit message for uploads.")
	cmd.Flags().StringVar(&cliOpts.AuthorName, "author-name", "",
		"The name of the author of upload commits.")
	cmd.Flags().StringVar(&cliOpts.AuthorEmail, "author-email", "",
		"The email of the author of upload commits.")
	cmd.Flags().StringVar(&cliOpts.GitBackend, "git-backend", "",
		"Either `exec` or `go-git`.")

	// Setup the commands for querying the contents of the user config.
	type getterCmd struct {
		use, short string
		fn         func(config.User) string
	}

	getters := []getterCmd{
		{
			use:   "get-repo",
			short: "Get the default repository",
			fn:    func(cfg config.User) string { return cfg.Repo },
		},
		{
			use:   "get-commit-message",
			short: "Get the commit message used for uploads",
			fn:    func(cfg config.User) string { return cfg.GetCommitMessage() },
		},
		{
			use:   "get-git-backend",
			short: "Get the git backend",
			fn:    func(cfg config.User) string { return cfg.GetGitBackend() },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Args:  cobra.NoArgs,
			Run: func(_ *cobra.Command, _ []string) {
				cfg, err := parseUserConfig()
				if err != nil {
					err = errors.WithContext(err, "read config")
					util.HandleFatalError(err)
					return
				}

				fmt.Fprintln(stdout, getter.fn(cfg))
			},
		})
	}

	return cmd
}

// SetupConfig merges the non-empty fields of cliOpts into the current user
// config, and writes the result.
func SetupConfig(cliOpts config.User) error {
	cfg, err := parseUserConfig()
	if err != nil {
		log.WithError(err).Warn("Failed to read current config. It will be overwritten.")
		cfg = config.User{}
	}

	cfg = merge(cfg, cliOpts)
	if err := writeUserConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := getUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "get user config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}

func merge(curr, update config.User) config.User {
	for _, field := range []struct {
		dst *string
		src string
	}{
		{&curr.Repo, update.Repo},
		{&curr.CommitMessage, update.CommitMessage},
		{&curr.AuthorName, update.AuthorName},
		{&curr.AuthorEmail, update.AuthorEmail},
		{&curr.GitBackend, update.GitBackend},
	} {
		if field.src != "" {
			*field.dst = field.src
		}
	}
	return curr
}
