package sync

import (
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
	"github.com/Art0r/settings-automation/pkg/git"
	"github.com/Art0r/settings-automation/pkg/repo"
	"github.com/Art0r/settings-automation/pkg/transfer"
)

// Syncer runs syncs. The zero value isn't usable, Fs, Git and Files must be
// set.
type Syncer struct {
	// Fs is the filesystem that holds both the local settings files and the
	// working directory.
	Fs afero.Fs

	// Git clones the remote, and publishes uploads.
	Git git.Client

	// Files are the files that get synced.
	Files config.FileMap

	// WorkRoot is the directory that the working directory is created in.
	// Defaults to the current directory.
	WorkRoot string

	// CommitMessage is used for upload commits. Defaults to
	// config.DefaultCommitMessage.
	CommitMessage string

	// Clock is used to time the run. Defaults to the real clock.
	Clock clockwork.Clock
}

// Report describes what a run did. It's filled in as far as the run got,
// even when Run returns an error.
type Report struct {
	Repo    string
	Mode    Mode
	WorkDir string

	// Files contains the result of every attempted copy.
	Files []transfer.Result

	Committed bool
	Pushed    bool

	// CleanedUp is whether the working directory was removed at the end of
	// the run.
	CleanedUp bool

	Duration time.Duration
}

// Run syncs the settings files with the repository at ref. The working
// directory is always removed before Run returns, unless it existed before
// the run started.
func (s Syncer) Run(ref repo.Reference, mode Mode) (report Report, err error) {
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	start := clock.Now()

	workDir := filepath.Join(s.WorkRoot, ref.DirName())
	report = Report{Repo: ref.String(), Mode: mode, WorkDir: workDir}
	logger := log.WithFields(log.Fields{
		"repo": ref.String(),
		"mode": mode,
	})

	// The working directory is deleted at the end of the run, so don't
	// touch a directory that we didn't create.
	exists, err := afero.Exists(s.Fs, workDir)
	if err != nil {
		return report, errors.WithContext(err, "check working directory")
	}
	if exists {
		return report, errors.NewFriendlyError("The working directory %q "+
			"already exists. Please move it out of the way, or run "+
			"settings-sync from another directory.", workDir)
	}

	defer func() {
		report.CleanedUp = s.cleanup(workDir)
		report.Duration = clock.Now().Sub(start)
		logger.WithField("duration", report.Duration).Info("Sync finished")
	}()

	logger.WithField("dir", workDir).Info("Cloning remote repository")
	if err := s.Git.Clone(ref.String(), workDir); err != nil {
		return report, errors.WithContext(err, "fetch remote")
	}

	logger.Info("Copying settings files")
	report.Files, err = transfer.Files(s.Fs, s.Files, workDir, mode.Direction())
	if err != nil {
		return report, errors.WithContext(err, "transfer files")
	}

	if mode != ModeUpload {
		return report, nil
	}

	logger.Info("Publishing settings files")
	if err := s.publish(workDir, &report); err != nil {
		return report, errors.WithContext(err, "publish")
	}
	return report, nil
}

// publish stages every file, and then commits and pushes them once.
// A failure part way through isn't rolled back. The working directory is
// thrown away anyway.
func (s Syncer) publish(workDir string, report *Report) error {
	for _, name := range s.Files.Names() {
		if err := s.Git.Add(workDir, name); err != nil {
			return errors.WithContext(err, "stage "+name)
		}
	}

	msg := s.CommitMessage
	if msg == "" {
		msg = config.DefaultCommitMessage
	}
	if err := s.Git.Commit(workDir, msg); err != nil {
		return err
	}
	report.Committed = true

	if err := s.Git.Push(workDir); err != nil {
		return err
	}
	report.Pushed = true
	return nil
}

func (s Syncer) cleanup(workDir string) bool {
	exists, err := afero.Exists(s.Fs, workDir)
	if err != nil {
		log.WithError(err).WithField("dir", workDir).Warn(
			"Failed to check for the working directory")
		return false
	}
	if !exists {
		return true
	}

	if err := s.Fs.RemoveAll(workDir); err != nil {
		log.WithError(err).WithField("dir", workDir).Warn(
			"Failed to remove the working directory")
		return false
	}
	log.WithField("dir", workDir).Debug("Removed working directory")
	return true
}
