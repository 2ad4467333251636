package git

import (
	"io"

	"github.com/jonboulle/clockwork"
	gogit "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// goGitClient implements Client in pure Go, so it works on machines without
// git installed. It only supports remotes that don't need credentials, or
// that go-git can authenticate to on its own (e.g. via the ssh agent).
type goGitClient struct {
	author   Signature
	progress io.Writer
	clock    clockwork.Clock
}

func (c goGitClient) Clone(url, dir string) error {
	_, err := gogit.PlainClone(dir, false, &gogit.CloneOptions{
		URL:      url,
		Progress: c.progress,
	})
	return errors.WithContext(err, "clone")
}

func (c goGitClient) Add(dir, path string) error {
	wt, err := openWorktree(dir)
	if err != nil {
		return err
	}

	if _, err := wt.Add(path); err != nil {
		return errors.WithContext(err, "add")
	}
	return nil
}

func (c goGitClient) Commit(dir, message string) error {
	wt, err := openWorktree(dir)
	if err != nil {
		return err
	}

	// go-git happily creates empty commits, unlike the git binary.
	status, err := wt.Status()
	if err != nil {
		return errors.WithContext(err, "get status")
	}
	if status.IsClean() {
		return errors.WithContext(errors.ErrNothingToCommit, "commit")
	}

	_, err = wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  c.author.Name,
			Email: c.author.Email,
			When:  c.clock.Now(),
		},
	})
	return errors.WithContext(err, "commit")
}

func (c goGitClient) Push(dir string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return errors.WithContext(err, "open repository")
	}

	err = repo.Push(&gogit.PushOptions{Progress: c.progress})
	if err == gogit.NoErrAlreadyUpToDate {
		return nil
	}
	return errors.WithContext(err, "push")
}

func openWorktree(dir string) (*gogit.Worktree, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, errors.WithContext(err, "open repository")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WithContext(err, "get worktree")
	}
	return wt, nil
}
