package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/server"
)

// ServeCmd implements the 'serve' command: a draft-inclusive local preview
// that rebuilds when content changes.
type ServeCmd struct {
	Port   int    `short:"p" help:"Listen port (overrides serve.port from config)"`
	Output string `short:"o" help:"Output directory for the preview build (defaults to temp)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}

	outDir := s.Output
	if outDir == "" {
		tmp, err := os.MkdirTemp("", "blogbuilder-serve-*")
		if err != nil {
			return fmt.Errorf("create temp output: %w", err)
		}
		defer os.RemoveAll(tmp)
		outDir = tmp
		slog.Info("Using temporary output directory for preview", "output", outDir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b := builder.New(cfg, ".")
	buildFn := func(ctx context.Context) error {
		_, err := b.Build(ctx, builder.Options{OutputDir: outDir, Drafts: true})
		return err
	}

	fmt.Printf("Serving drafts at http://localhost:%d/ (Ctrl-C to stop)\n", cfg.Serve.Port)
	return server.New(cfg, outDir, buildFn).Run(ctx)
}
