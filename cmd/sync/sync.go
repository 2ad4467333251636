package sync

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
	"github.com/Art0r/settings-automation/pkg/git"
	"github.com/Art0r/settings-automation/pkg/repo"
	"github.com/Art0r/settings-automation/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout              io.Writer = os.Stdout
	fs                            = afero.NewOsFs()
	parseUserConfig               = config.ParseUser
	getFileMap                    = config.DefaultFileMap
	newGitClient                  = git.New
	getWorkingDirectory           = os.Getwd
)

// errSyncFailed is returned when --fail-on-error is set and the sync failed.
// The actual error has already been logged.
var errSyncFailed = errors.NewFriendlyError("Sync failed. See the warnings above for details.")

type options struct {
	repo          string
	repoSet       bool
	mode          sync.Mode
	gitBackend    string
	commitMessage string
	failOnError   bool
}

// New creates the sync command. It's the root command of settings-sync.
func New() *cobra.Command {
	opts := options{mode: sync.DefaultMode}
	cmd := &cobra.Command{
		Use:   "settings-sync",
		Short: "Sync editor, shell and git settings with a git repository",
		Long: "Sync editor settings, the editor extension list, shell rc files " +
			"and the global git config with a remote git repository.\n\n" +
			"In download mode, the repository is cloned and its files are copied " +
			"to their local paths. In upload mode, the local files are copied " +
			"into the clone, committed and pushed. The clone is always removed " +
			"afterwards.",
		Args: cobra.NoArgs,

		// Execute's caller prints the error, so we silence errors here to
		// avoid double printing.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.repoSet = cmd.Flags().Changed("repo")
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "",
		"The remote repository, e.g. https://github.com/me/dotfiles.git. "+
			"Defaults to `repo` in "+config.UserConfigPath+".")
	cmd.Flags().Var(&opts.mode, "type",
		"Whether to download the remote settings, or upload the local ones.")
	cmd.Flags().StringVar(&opts.gitBackend, "git-backend", "",
		"Either `exec` to run the git binary, or `go-git` to use the built in "+
			"git implementation. Defaults to `gitBackend` in "+config.UserConfigPath+
			", or `exec`.")
	cmd.Flags().StringVar(&opts.commitMessage, "commit-message", "",
		"The commit message for uploads. Defaults to `commitMessage` in "+
			config.UserConfigPath+", or \""+config.DefaultCommitMessage+"\".")
	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false,
		"Exit with a non-zero status if the sync fails. "+
			"By default, failures are only logged.")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.NewFriendlyError("%s\n\n%s", err, c.UsageString())
	})
	return cmd
}

func run(opts options) error {
	// An explicit --repo is validated before the user config is read, so
	// that a bad value is rejected even when the config is broken.
	var ref repo.Reference
	var refErr error
	if opts.repoSet {
		ref, refErr = repo.Parse(opts.repo)
		if refErr != nil {
			warnInvalidRepo(refErr, opts.repo)
			return nil
		}
	}

	userConfig, err := parseUserConfig()
	if err != nil {
		return errors.WithContext(err, "parse user config")
	}

	// The user config's repo is only used when --repo isn't passed at all.
	if !opts.repoSet {
		ref, refErr = repo.Parse(userConfig.Repo)
		if refErr != nil {
			warnInvalidRepo(refErr, userConfig.Repo)
			return nil
		}
	}

	files, err := getFileMap()
	if err != nil {
		return errors.WithContext(err, "get settings files")
	}

	syncer, err := newSyncer(opts, userConfig, files)
	if err != nil {
		return err
	}

	report, err := syncer.Run(ref, opts.mode)
	printSummary(stdout, files, report)
	if err != nil {
		log.WithError(err).Warn("Sync failed")
		if opts.failOnError {
			return errSyncFailed
		}
		return nil
	}

	log.Info("Sync succeeded")
	return nil
}

func warnInvalidRepo(err error, rawRepo string) {
	log.WithError(err).WithField("repo", rawRepo).Warn(
		"Invalid repository. Nothing was synced.")
}

func newSyncer(opts options, userConfig config.User, files config.FileMap) (sync.Syncer, error) {
	backend := opts.gitBackend
	if backend == "" {
		backend = userConfig.GetGitBackend()
	}

	client, err := newGitClient(git.Options{
		Backend: backend,
		Author: git.Signature{
			Name:  userConfig.AuthorName,
			Email: userConfig.AuthorEmail,
		},
		Progress: debugWriter{},
	})
	if err != nil {
		return sync.Syncer{}, errors.WithContext(err, "create git client")
	}

	workRoot, err := getWorkingDirectory()
	if err != nil {
		return sync.Syncer{}, errors.WithContext(err, "get working directory")
	}

	commitMessage := opts.commitMessage
	if commitMessage == "" {
		commitMessage = userConfig.GetCommitMessage()
	}

	return sync.Syncer{
		Fs:            fs,
		Git:           client,
		Files:         files,
		WorkRoot:      workRoot,
		CommitMessage: commitMessage,
	}, nil
}

// debugWriter logs git's progress output when verbose logging is enabled.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if log.IsLevelEnabled(log.DebugLevel) {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			log.WithField("source", "git").Debug(strings.TrimRight(line, "\r"))
		}
	}
	return len(p), nil
}
