// Package repo validates references to the remote settings repository.
package repo

import (
	"strings"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// Marker must appear in every repository reference. It's the suffix that git
// hosts use for clone URLs, e.g. https://example.com/me/dotfiles.git.
const Marker = ".git"

var (
	// ErrEmpty is returned for an empty reference.
	ErrEmpty = errors.New("repository reference must be a non-empty string")

	// ErrNotGitRepository is returned for a reference without Marker.
	ErrNotGitRepository = errors.New("not a git repository reference")

	// ErrNoName is returned when no working directory name can be derived.
	ErrNoName = errors.New("repository reference has no name before " + Marker)
)

// Reference is a validated reference to a remote git repository.
type Reference struct {
	raw     string
	dirName string
}

// Parse validates raw and derives the name of the directory that a clone of
// it is placed in.
func Parse(raw string) (Reference, error) {
	if raw == "" {
		return Reference{}, ErrEmpty
	}

	if !strings.Contains(raw, Marker) {
		return Reference{}, ErrNotGitRepository
	}

	beforeMarker := strings.SplitN(raw, Marker, 2)[0]
	segments := strings.Split(beforeMarker, "/")
	dirName := segments[len(segments)-1]
	if dirName == "" || dirName == "." || dirName == ".." {
		return Reference{}, ErrNoName
	}

	return Reference{raw: raw, dirName: dirName}, nil
}

// String returns the reference as passed by the user.
func (ref Reference) String() string {
	return ref.raw
}

// DirName returns the name of the working directory for a clone of the
// repository.
func (ref Reference) DirName() string {
	return ref.dirName
}
