// Package vcs wraps go-git for the version-control steps of a release run:
// staging an exact set of paths, committing, tagging, and pushing with
// upstream tracking.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

var (
	// ErrTagExists is returned when the release tag already exists locally.
	ErrTagExists = errors.New("tag already exists")

	// ErrEmptyCommit is returned when nothing is staged for commit.
	ErrEmptyCommit = errors.New("no changes staged for commit")
)

// Signature identifies the author/committer/tagger for release commits.
type Signature struct {
	Name  string
	Email string
}

// Options configures an opened repository.
type Options struct {
	// Remote is the remote pushed to. Empty means "origin".
	Remote string

	// Auth is the transport auth used for push. Nil relies on ambient
	// credentials (credential helpers, ssh agent).
	Auth transport.AuthMethod
}

// Repo is an open working-tree repository.
type Repo struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree
	options  Options
}

// BasicAuthFromEnv builds HTTP basic auth from the named environment
// variables. Returns nil when either name is empty or unset, leaving auth
// to the ambient environment.
func BasicAuthFromEnv(usernameEnv, passwordEnv string) transport.AuthMethod {
	if usernameEnv == "" || passwordEnv == "" {
		return nil
	}
	username := os.Getenv(usernameEnv)
	password := os.Getenv(passwordEnv)
	if username == "" || password == "" {
		return nil
	}
	return &http.BasicAuth{Username: username, Password: password}
}

// Open opens the repository containing dir.
func Open(dir string, opts Options) (*Repo, error) {
	if opts.Remote == "" {
		opts.Remote = gogit.DefaultRemoteName
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %q: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repo{repo: repo, worktree: worktree, options: opts}, nil
}

// Stage adds exactly the given worktree-relative paths to the index. A
// missing path is an error: the release change set is fixed, so a path that
// cannot be staged means the run must stop.
func (r *Repo) Stage(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if _, err := r.worktree.Add(path); err != nil {
			return fmt.Errorf("staging %q: %w", path, err)
		}
	}
	return nil
}

// StagedPaths returns the sorted set of paths currently staged in the index.
func (r *Repo) StagedPaths() ([]string, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("getting worktree status: %w", err)
	}

	var staged []string
	for path, fileStatus := range status {
		if fileStatus.Staging != gogit.Untracked && fileStatus.Staging != gogit.Unmodified {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

// Commit commits the staged change set with the given message and returns
// the commit hash. Returns ErrEmptyCommit if nothing is staged.
func (r *Repo) Commit(ctx context.Context, msg string, who Signature) (string, error) {
	if msg == "" {
		return "", errors.New("commit message cannot be empty")
	}
	if who.Name == "" || who.Email == "" {
		return "", errors.New("committer name and email are required")
	}

	staged, err := r.StagedPaths()
	if err != nil {
		return "", err
	}
	if len(staged) == 0 {
		return "", ErrEmptyCommit
	}

	sig := &object.Signature{
		Name:  who.Name,
		Email: who.Email,
		When:  time.Now(),
	}

	hash, err := r.worktree.Commit(msg, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", fmt.Errorf("creating commit: %w", err)
	}

	return hash.String(), nil
}

// CreateTag creates an annotated tag at HEAD. Returns ErrTagExists if the
// tag name is already taken.
func (r *Repo) CreateTag(ctx context.Context, name, message string, who Signature) error {
	if name == "" {
		return errors.New("tag name cannot be empty")
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  time.Now(),
		},
		Message: message,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrTagExists) {
			return ErrTagExists
		}
		return fmt.Errorf("creating tag %q: %w", name, err)
	}

	return nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch (%s)", head.Name())
	}
	return head.Name().Short(), nil
}

// PushWithTag pushes the current branch and the given tag to the configured
// remote, then makes sure the branch tracks the remote.
func (r *Repo) PushWithTag(ctx context.Context, tag string) error {
	branch, err := r.CurrentBranch()
	if err != nil {
		return err
	}

	refSpecs := []config.RefSpec{
		config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)),
		config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag)),
	}

	err = r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: r.options.Remote,
		RefSpecs:   refSpecs,
		Auth:       r.options.Auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing to remote %q: %w", r.options.Remote, err)
	}

	return r.ensureUpstream(branch)
}

// ensureUpstream records remote tracking configuration for the branch if it
// is not already set.
func (r *Repo) ensureUpstream(branch string) error {
	err := r.repo.CreateBranch(&config.Branch{
		Name:   branch,
		Remote: r.options.Remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	})
	if err != nil && !errors.Is(err, gogit.ErrBranchExists) {
		return fmt.Errorf("recording upstream for branch %q: %w", branch, err)
	}
	return nil
}
