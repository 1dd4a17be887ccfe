package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/buildlog"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/gitinfo"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (defaults to output.dir from config)"`
	Drafts bool   `short:"D" help:"Include draft posts (local preview builds)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := context.Background()

	mode := buildlog.ModeProduction
	if b.Drafts {
		mode = buildlog.ModeDraft
	}
	_, err = RunBuild(ctx, cfg, builder.Options{OutputDir: b.Output, Drafts: b.Drafts}, mode)
	return err
}

// RunBuild performs one logged build: pre-flight parse of the content
// store, builder invocation, output hashing, and a build-log record.
func RunBuild(ctx context.Context, cfg *config.Config, opts builder.Options, mode buildlog.Mode) (*builder.Result, error) {
	store, err := post.LoadStore(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("content store: %w", err)
	}

	now := time.Now()
	posts := len(store.Published(now))
	if opts.Drafts {
		posts = len(store.Posts)
	}
	slog.Info("Starting build", "mode", mode, "posts", posts, "drafts", len(store.Drafts()))

	warnIfDirty(cfg.Content.Dir)

	started := time.Now()
	result, buildErr := builder.New(cfg, ".").Build(ctx, opts)

	logPath, err := buildLogPath()
	if err != nil {
		return nil, err
	}
	log, err := buildlog.Open(logPath)
	if err != nil {
		return nil, err
	}
	defer log.Close()

	rec := buildlog.Record{
		StartedAt: started,
		Mode:      mode,
		Posts:     posts,
	}
	if buildErr != nil {
		rec.Outcome = "failure"
		rec.Error = buildErr.Error()
		if _, err := log.Record(ctx, rec); err != nil {
			slog.Warn("Failed to record build", "error", err)
		}
		return nil, buildErr
	}

	hash, err := builder.HashTree(result.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("hash output: %w", err)
	}

	rec.Duration = result.Duration
	rec.SiteHash = hash
	rec.Outcome = "success"
	if _, err := log.Record(ctx, rec); err != nil {
		slog.Warn("Failed to record build", "error", err)
	}

	fmt.Printf("Site built: %s (%d posts, hash %.12s)\n", result.OutputDir, posts, hash)
	return result, nil
}

// warnIfDirty flags builds from an uncommitted content tree; published
// output should normally come from committed history.
func warnIfDirty(contentDir string) {
	repo, err := gitinfo.Open(contentDir)
	if err != nil {
		if !errors.Is(err, gitinfo.ErrNotARepo) {
			slog.Debug("Git state unavailable", "error", err)
		}
		return
	}
	if dirty, err := repo.IsDirty(); err == nil && dirty {
		slog.Warn("Building from a dirty worktree; commit before publishing")
	}
}
