package lint

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// RelativeLinkRule checks that relative link and image destinations in post
// bodies point at files that exist next to the post.
//
// Absolute URLs and root-relative paths are left to the rendered-site link
// check (`blogbuilder verify`), which sees the builder's permalink layout.
type RelativeLinkRule struct{}

// Name returns the name of the rule.
func (r *RelativeLinkRule) Name() string {
	return "relative-link"
}

// AppliesTo checks if the rule applies to the given file path.
func (r *RelativeLinkRule) AppliesTo(filePath string) bool {
	return post.IsPostFile(filePath)
}

// Check extracts link destinations from the Markdown AST and stats the
// relative ones.
func (r *RelativeLinkRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	_, body, _, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, nil
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var issues []Issue
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		var dest, kind string
		switch node := n.(type) {
		case *gmast.Link:
			dest, kind = string(node.Destination), "link"
		case *gmast.Image:
			dest, kind = string(node.Destination), "image"
		default:
			return gmast.WalkContinue, nil
		}

		if !isRelativeFileRef(dest) {
			return gmast.WalkContinue, nil
		}

		target := dest
		if idx := strings.IndexAny(target, "#?"); idx >= 0 {
			target = target[:idx]
		}
		if target == "" {
			return gmast.WalkContinue, nil
		}
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}

		resolved := filepath.Join(filepath.Dir(filePath), filepath.FromSlash(target))
		if _, err := os.Stat(resolved); os.IsNotExist(err) {
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Relative %s target %q does not exist", kind, dest),
				Fix:      "Fix the path or move the target file next to the post",
			})
		}
		return gmast.WalkContinue, nil
	})

	return issues, nil
}

// isRelativeFileRef reports whether dest is a relative filesystem reference
// rather than an absolute URL, root-relative path, or pure fragment.
func isRelativeFileRef(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") {
		return false
	}
	if strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "tel:") {
		return false
	}
	return true
}
