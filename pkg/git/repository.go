// pkg/git/repository.go

// Package git reads staged changes and history from a local repository with go-git
// and records commits. No git binary is required.
package git

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	cerr "github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Repository is a repository opened for one command invocation.
type Repository struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree
	root     string
	log      otelzap.LoggerWithCtx

	// head is resolved once in Open and only moves when Commit succeeds.
	// nil means the repository has no commits yet.
	head *object.Commit
}

// Open opens the repository containing path, searching parent directories.
func Open(ctx context.Context, path string) (*Repository, error) {
	log := otelzap.Ctx(ctx)

	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, commitia_err.NewGitError("failed to resolve repository path", err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if cerr.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, commitia_err.NewGitError(
				fmt.Sprintf("%s is not a valid git repository", abs), err,
				"Run commitia from inside a git repository, or pass --repo-path",
				"Create a repository with: git init",
			)
		}
		return nil, commitia_err.NewGitError("failed to open git repository", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if cerr.Is(err, gogit.ErrIsBareRepository) {
			return nil, commitia_err.NewGitError(
				fmt.Sprintf("%s is a bare repository", abs), err,
				"Run commitia inside a clone that has a working tree",
			)
		}
		return nil, commitia_err.NewGitError("failed to open working tree", err)
	}

	head, err := headCommit(repo)
	if err != nil {
		return nil, commitia_err.NewGitError("failed to resolve HEAD", err)
	}

	r := &Repository{
		repo:     repo,
		worktree: wt,
		root:     wt.Filesystem.Root(),
		log:      log,
		head:     head,
	}

	log.Debug("Opened git repository",
		zap.String("root", r.root),
		zap.Bool("has_commits", r.HasCommits()))

	return r, nil
}

func headCommit(repo *gogit.Repository) (*object.Commit, error) {
	ref, err := repo.Head()
	if cerr.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return repo.CommitObject(ref.Hash())
}

// Root returns the working tree root.
func (r *Repository) Root() string {
	return r.root
}

// HasCommits reports whether HEAD points at a commit.
func (r *Repository) HasCommits() bool {
	return r.head != nil
}
