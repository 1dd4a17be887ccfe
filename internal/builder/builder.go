// Package builder drives the external static-site builder. The builder
// itself (hugo) is an external collaborator: this package shapes its inputs,
// invokes it, and observes its outputs, but never renders anything itself.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Options selects the build flavor.
type Options struct {
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
	// Drafts includes draft-flagged posts (local preview builds).
	Drafts bool
	// Future includes posts dated after now (implied by Drafts in serve mode).
	Future bool
}

// Result summarizes one completed builder invocation.
type Result struct {
	OutputDir string
	Duration  time.Duration
}

// Builder wraps the external builder binary for one blog.
type Builder struct {
	cfg     *config.Config
	siteDir string // blog root: where content/, static/, and the site config live
}

// New creates a builder rooted at siteDir.
func New(cfg *config.Config, siteDir string) *Builder {
	return &Builder{cfg: cfg, siteDir: siteDir}
}

// Build writes the site config and invokes the external builder. The
// builder's exit code is the contract: non-zero means the build failed and
// its stderr explains why.
func (b *Builder) Build(ctx context.Context, opts Options) (*Result, error) {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = b.cfg.Output.Dir
	}

	if b.cfg.Output.Clean && opts.OutputDir == "" {
		if err := os.RemoveAll(outputDir); err != nil {
			return nil, fmt.Errorf("clean output dir: %w", err)
		}
	}

	if err := WriteSiteConfig(b.cfg, b.siteDir); err != nil {
		return nil, err
	}

	binary, err := exec.LookPath(b.cfg.Builder.Binary)
	if err != nil {
		return nil, fmt.Errorf("builder binary %q not found on PATH: %w", b.cfg.Builder.Binary, err)
	}

	args := b.buildArgs(opts, outputDir)
	// #nosec G204 -- binary comes from exec.LookPath over the configured name
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = b.siteDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running external builder", "binary", binary, "args", args, "dir", b.siteDir)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("builder failed: %w", err)
	}
	dur := time.Since(start)
	slog.Info("Builder finished", "output", outputDir, "duration", dur)

	return &Result{OutputDir: outputDir, Duration: dur}, nil
}

// buildArgs assembles the builder's command line for the requested flavor.
func (b *Builder) buildArgs(opts Options, outputDir string) []string {
	args := []string{"--destination", outputDir}
	if opts.Drafts {
		args = append(args, "--buildDrafts")
	}
	if opts.Drafts || opts.Future {
		args = append(args, "--buildFuture")
	}
	if b.cfg.Output.Clean && opts.OutputDir == "" {
		args = append(args, "--cleanDestinationDir")
	}
	return args
}
