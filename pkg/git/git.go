// Package git wraps the source control operations needed to sync settings:
// clone, add, commit and push. Every operation blocks until it's done.
package git

import (
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/Art0r/settings-automation/pkg/config"
	"github.com/Art0r/settings-automation/pkg/errors"
)

// DefaultAuthor is used for commits made by the go-git backend when the user
// config doesn't set an author.
var DefaultAuthor = Signature{Name: "settings-sync", Email: "settings-sync@localhost"}

// Client runs git operations against a working directory.
type Client interface {
	// Clone clones url into dir. dir must not exist.
	Clone(url, dir string) error

	// Add stages the file at path, relative to the working directory dir.
	Add(dir, path string) error

	// Commit commits the staged changes in dir.
	Commit(dir, message string) error

	// Push pushes the current branch of dir to its origin.
	Push(dir string) error
}

// Signature identifies the author of a commit.
type Signature struct {
	Name  string
	Email string
}

// IsZero returns whether no author was set.
func (s Signature) IsZero() bool {
	return s.Name == "" && s.Email == ""
}

func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// Options configures New.
type Options struct {
	// Backend is either config.BackendExec or config.BackendGoGit.
	Backend string

	// Author overrides the commit author. If it isn't set, the exec backend
	// uses git's own configuration, and the go-git backend uses
	// DefaultAuthor.
	Author Signature

	// Progress receives clone and push progress messages. Optional.
	Progress io.Writer

	// Clock is used for commit timestamps by the go-git backend. Defaults to
	// the real clock.
	Clock clockwork.Clock
}

// New returns the Client for the requested backend.
func New(opts Options) (Client, error) {
	switch opts.Backend {
	case "", config.BackendExec:
		return execClient{author: opts.Author, progress: opts.Progress}, nil
	case config.BackendGoGit:
		author := opts.Author
		if author.IsZero() {
			author = DefaultAuthor
		}
		clock := opts.Clock
		if clock == nil {
			clock = clockwork.NewRealClock()
		}
		return goGitClient{author: author, progress: opts.Progress, clock: clock}, nil
	default:
		return nil, errors.NewFriendlyError("Unknown git backend %q. "+
			"It must be either %q or %q.", opts.Backend, config.BackendExec, config.BackendGoGit)
	}
}
