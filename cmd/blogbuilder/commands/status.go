package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/buildlog"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/gitinfo"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Builds int `default:"5" help:"Number of recent builds to show"`
}

func (s *StatusCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := context.Background()

	store, err := post.LoadStore(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("content store: %w", err)
	}

	now := time.Now()
	fmt.Printf("Content: %d posts (%d published, %d drafts)\n",
		len(store.Posts), len(store.Published(now)), len(store.Drafts()))

	printGitStatus(cfg.Content.Dir)
	return printBuildHistory(ctx, s.Builds)
}

func printGitStatus(contentDir string) {
	repo, err := gitinfo.Open(contentDir)
	if err != nil {
		if errors.Is(err, gitinfo.ErrNotARepo) {
			fmt.Println("Git: not a repository")
		} else {
			fmt.Printf("Git: unavailable (%v)\n", err)
		}
		return
	}

	dirty, err := repo.IsDirty()
	switch {
	case err != nil:
		fmt.Printf("Git: status unavailable (%v)\n", err)
	case dirty:
		fmt.Println("Git: worktree has uncommitted changes")
	default:
		fmt.Println("Git: worktree clean")
	}

	if when, err := repo.LastModified(contentDir); err == nil {
		fmt.Printf("Git: content last committed %s\n", when.Format(time.RFC3339))
	}
}

func printBuildHistory(ctx context.Context, n int) error {
	logPath, err := buildLogPath()
	if err != nil {
		return err
	}
	log, err := buildlog.Open(logPath)
	if err != nil {
		return err
	}
	defer log.Close()

	records, err := log.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("Builds: none recorded yet")
		return nil
	}

	fmt.Printf("Builds (last %d):\n", len(records))
	for _, rec := range records {
		line := fmt.Sprintf("  %s  %-10s %-7s %3d posts",
			rec.StartedAt.Local().Format("2006-01-02 15:04"), rec.Mode, rec.Outcome, rec.Posts)
		if rec.Outcome == "success" {
			line += fmt.Sprintf("  %.12s  %s", rec.SiteHash, rec.Duration.Round(time.Millisecond))
		} else if rec.Error != "" {
			line += "  " + rec.Error
		}
		fmt.Println(line)
	}

	last, err := log.LastSuccessful(ctx, buildlog.ModeProduction)
	switch {
	case errors.Is(err, buildlog.ErrNoBuilds):
		fmt.Println("Published: no successful production build yet")
	case err != nil:
		return err
	default:
		fmt.Printf("Published: %s (hash %.12s)\n",
			last.StartedAt.Local().Format("2006-01-02 15:04"), last.SiteHash)
	}
	return nil
}
