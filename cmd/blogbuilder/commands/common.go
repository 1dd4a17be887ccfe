// Package commands wires the blogbuilder CLI.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
)

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the command grammar and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blog.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Production build: render the site excluding drafts and future posts"`
	Serve  ServeCmd  `cmd:"" help:"Serve the site locally including drafts, rebuilding on change"`
	Lint   LintCmd   `cmd:"" help:"Check the content store for integrity issues"`
	Verify VerifyCmd `cmd:"" help:"Verify build idempotence, draft exclusion, and rendered links"`
	New    NewCmd    `cmd:"" help:"Create a new draft post"`
	Images ImagesCmd `cmd:"" help:"Downscale oversized images in the static directory"`
	Status StatusCmd `cmd:"" help:"Show build history and content store summary"`
	Doctor DoctorCmd `cmd:"" help:"Check the declared development toolchain"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel combines the verbose flag with BLOGBUILDER_LOG_LEVEL.
// The env var wins so CI can force debug output without changing flags.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("BLOGBUILDER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// stateDir is where blogbuilder keeps its own files (build log database).
const stateDir = ".blogbuilder"

// buildLogPath returns the build-history database path, creating the state
// directory if needed.
func buildLogPath() (string, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "builds.db"), nil
}
