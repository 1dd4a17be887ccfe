package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/linkcheck"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// VerifyCmd checks the repository's build properties: rebuilding unchanged
// content is byte-identical, drafts stay out of production output, and the
// rendered site has no broken internal links.
type VerifyCmd struct {
	SkipLinks bool `name:"skip-links" help:"Skip the rendered-site link check"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := context.Background()

	store, err := post.LoadStore(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("content store: %w", err)
	}

	b := builder.New(cfg, ".")
	var violations []string

	// Idempotence: two clean builds of unchanged content must agree.
	first, err := v.buildInto(ctx, b, builder.Options{})
	if err != nil {
		return err
	}
	defer os.RemoveAll(first)
	second, err := v.buildInto(ctx, b, builder.Options{})
	if err != nil {
		return err
	}
	defer os.RemoveAll(second)

	h1, err := builder.HashTree(first)
	if err != nil {
		return err
	}
	h2, err := builder.HashTree(second)
	if err != nil {
		return err
	}
	if h1 == h2 {
		fmt.Printf("ok: rebuild is byte-identical (hash %.12s)\n", h1)
	} else {
		violations = append(violations,
			fmt.Sprintf("rebuilding unchanged content produced different output (%.12s vs %.12s)", h1, h2))
	}

	// Draft exclusion, checked against a real draft when one exists.
	if drafts := store.Drafts(); len(drafts) > 0 {
		draftDir, err := v.buildInto(ctx, b, builder.Options{Drafts: true})
		if err != nil {
			return err
		}
		defer os.RemoveAll(draftDir)

		slug := drafts[0].Slug()
		switch {
		case treeContainsSlug(first, slug):
			violations = append(violations,
				fmt.Sprintf("draft %q leaked into the production build", drafts[0].Path))
		case !treeContainsSlug(draftDir, slug):
			violations = append(violations,
				fmt.Sprintf("draft %q missing from the draft-inclusive build", drafts[0].Path))
		default:
			fmt.Printf("ok: draft %q excluded from production, present in preview\n", drafts[0].Path)
		}
	} else {
		fmt.Println("skip: no draft posts to check exclusion with")
	}

	if !v.SkipLinks {
		result, err := linkcheck.CheckSite(first)
		if err != nil {
			return err
		}
		if len(result.Broken) == 0 {
			fmt.Printf("ok: %d internal links across %d pages resolve\n", result.LinksChecked, result.PagesScanned)
		} else {
			for _, bl := range result.Broken {
				violations = append(violations, fmt.Sprintf("broken link on %s: %s", bl.Page, bl.Target))
			}
		}
	}

	if len(violations) > 0 {
		for _, violation := range violations {
			fmt.Printf("FAIL: %s\n", violation)
		}
		return fmt.Errorf("%d verification failure(s)", len(violations))
	}
	fmt.Println("All verifications passed")
	return nil
}

func (v *VerifyCmd) buildInto(ctx context.Context, b *builder.Builder, opts builder.Options) (string, error) {
	dir, err := os.MkdirTemp("", "blogbuilder-verify-*")
	if err != nil {
		return "", fmt.Errorf("create temp output: %w", err)
	}
	opts.OutputDir = dir
	if _, err := b.Build(ctx, opts); err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}

// treeContainsSlug reports whether any path component in the rendered tree
// matches the post slug (covers /slug/ and /posts/slug/ layouts alike).
func treeContainsSlug(dir, slug string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && strings.EqualFold(d.Name(), slug) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}
