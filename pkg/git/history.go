package git

import (
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
)

// RecentCommits returns up to count trimmed commit messages, newest first.
func (r *Repository) RecentCommits(count int) ([]string, error) {
	messages := []string{}
	if r.head == nil || count <= 0 {
		return messages, nil
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: r.head.Hash})
	if err != nil {
		return nil, commitia_err.NewGitError("failed to read commit history", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, strings.TrimSpace(c.Message))
		if len(messages) >= count {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, commitia_err.NewGitError("failed to read commit history", err)
	}
	return messages, nil
}

// Branch returns the current branch name, or "" when HEAD is detached.
func (r *Repository) Branch() string {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return ""
	}
	if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
		return ref.Target().Short()
	}
	return ""
}
