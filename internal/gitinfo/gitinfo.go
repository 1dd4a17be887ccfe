// Package gitinfo reads content history from the blog's git repository.
// It fills lastmod timestamps at build time and reports uncommitted state;
// everything degrades gracefully when the blog is not a git checkout.
package gitinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotARepo indicates the blog directory is not inside a git repository.
var ErrNotARepo = errors.New("not a git repository")

// ErrNoHistory indicates the file has no committed history yet.
var ErrNoHistory = errors.New("file has no git history")

// Repo wraps the blog's git repository.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open locates the repository containing dir, searching parent directories
// the way the git CLI does.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotARepo
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// LastModified returns the committer time of the newest commit touching
// path. path may name a single file or a directory (any committed change
// beneath it counts) and may be absolute or relative to the working
// directory.
func (r *Repo) LastModified(path string) (time.Time, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, err
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return time.Time{}, fmt.Errorf("path %s outside repository %s", path, r.root)
	}
	rel = filepath.ToSlash(rel)

	// LogOptions.FileName matches changed file paths exactly, so it can
	// never match a directory; a prefix filter covers both shapes.
	match := func(p string) bool {
		return p == rel || strings.HasPrefix(p, rel+"/")
	}
	if rel == "." {
		match = func(string) bool { return true }
	}

	iter, err := r.repo.Log(&gogit.LogOptions{PathFilter: match})
	if err != nil {
		return time.Time{}, fmt.Errorf("read log for %s: %w", rel, err)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, ErrNoHistory
	}
	return commit.Committer.When.UTC(), nil
}

// IsDirty reports whether the worktree has uncommitted changes.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("read worktree status: %w", err)
	}
	return !status.IsClean(), nil
}
