package git

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// gitBinary is the name of the git executable, looked up in $PATH.
const gitBinary = "git"

// runCommand is mocked in tests.
var runCommand = func(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command(gitBinary, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// CommandError is returned when the git binary exits with an error.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (err CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", gitBinary, strings.Join(err.Args, " "), err.Err)
	if err.Output != "" {
		msg += ": " + err.Output
	}
	return msg
}

func (err CommandError) Unwrap() error {
	return err.Err
}

// execClient shells out to the git binary. Authentication is left to git's
// own credential helpers and ssh agent.
type execClient struct {
	author   Signature
	progress io.Writer
}

func (c execClient) Clone(url, dir string) error {
	return errors.WithContext(c.run("", "clone", url, dir), "clone")
}

func (c execClient) Add(dir, path string) error {
	return errors.WithContext(c.run(dir, "add", "--", path), "add")
}

func (c execClient) Commit(dir, message string) error {
	var args []string
	if !c.author.IsZero() {
		args = append(args,
			"-c", "user.name="+c.author.Name,
			"-c", "user.email="+c.author.Email)
	}
	args = append(args, "commit", "-m", message)
	return errors.WithContext(c.run(dir, args...), "commit")
}

func (c execClient) Push(dir string) error {
	return errors.WithContext(c.run(dir, "push"), "push")
}

func (c execClient) run(dir string, args ...string) error {
	log.WithField("dir", dir).WithField("args", args).Debug("Running git")
	output, err := runCommand(dir, args...)
	if c.progress != nil && len(output) != 0 {
		if _, writeErr := c.progress.Write(output); writeErr != nil {
			log.WithError(writeErr).Debug("Failed to write git output")
		}
	}
	if err != nil {
		return CommandError{
			Args:   args,
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}
