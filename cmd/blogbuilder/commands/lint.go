package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	Path   string `arg:"" optional:"" help:"Path to lint (defaults to the configured content directory)"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := l.Path
	if path == "" {
		path = cfg.Content.Dir
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}

	linter := lint.NewLinter(&lint.Config{
		Quiet:     l.Quiet,
		Format:    l.Format,
		Languages: cfg.Lint.Languages,
		Widgets:   cfg.Lint.Widgets,
	})

	result, err := linter.LintPath(path)
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	if err := lint.NewFormatter(l.Format).Format(os.Stdout, result, path); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Exit code contract: 2 blocks a build, 1 flags warnings, 0 is clean.
	if result.HasErrors() {
		os.Exit(2)
	} else if result.HasWarnings() && !l.Quiet {
		os.Exit(1)
	}
	return nil
}
