package git

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

var identityRemediation = []string{
	`git config --global user.name "Your Name"`,
	`git config --global user.email "your.email@example.com"`,
}

// Identity returns the commit signature configured in git (repository, then global).
func (r *Repository) Identity() (*object.Signature, error) {
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, commitia_err.NewGitError("failed to read git config", err)
	}

	name := strings.TrimSpace(cfg.User.Name)
	if name == "" {
		name = strings.TrimSpace(cfg.Author.Name)
	}
	email := strings.TrimSpace(cfg.User.Email)
	if email == "" {
		email = strings.TrimSpace(cfg.Author.Email)
	}

	if name == "" || email == "" {
		return nil, commitia_err.NewGitError("git identity not configured: user.name and user.email are required to commit",
			nil, identityRemediation...)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, commitia_err.NewGitError(fmt.Sprintf("git user.email %q is not a valid email address", email),
			err, identityRemediation[1])
	}

	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}

// Commit records the current index with message and returns the new commit hash.
// A nil author uses Identity.
func (r *Repository) Commit(message string, author *object.Signature) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", commitia_err.NewValidationError("commit message is empty")
	}

	if author == nil {
		sig, err := r.Identity()
		if err != nil {
			return "", err
		}
		author = sig
	}

	hash, err := r.worktree.Commit(message, &gogit.CommitOptions{Author: author})
	if err != nil {
		return "", commitia_err.NewGitError("failed to create commit", err)
	}

	head, err := r.repo.CommitObject(hash)
	if err != nil {
		return "", commitia_err.NewGitError("failed to read new commit", err)
	}
	r.head = head

	r.log.Info("Commit created",
		zap.String("hash", hash.String()),
		zap.String("author", author.Email))

	return hash.String(), nil
}
