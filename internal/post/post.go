// Package post models the blog's content store: front-matter Markdown
// files under the content directory.
package post

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/slug"
)

// Post is one Markdown file from the content store.
type Post struct {
	Path    string // path relative to the content dir
	AbsPath string
	Meta    frontmatter.PostMeta
	Body    []byte
	RawMeta []byte
	Style   frontmatter.Style
}

// Slug returns the post's URL slug: the explicit front-matter slug when set,
// otherwise derived from the filename.
func (p *Post) Slug() string {
	if p.Meta.Slug != "" {
		return p.Meta.Slug
	}
	base := filepath.Base(p.Path)
	return slug.Make(base[:len(base)-len(filepath.Ext(base))])
}

// Published reports whether the post belongs in a production build at the
// given instant: not a draft and not dated in the future.
func (p *Post) Published(now time.Time) bool {
	return !p.Meta.Draft && !p.Meta.Date.After(now)
}

// Load reads and parses a single post. absPath is the file on disk, relPath
// its content-dir relative name carried through for reporting.
func Load(absPath, relPath string) (*Post, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", relPath, err)
	}

	rawMeta, body, had, style, err := frontmatter.Split(content)
	if err != nil {
		return nil, fmt.Errorf("parse post %s: %w", relPath, err)
	}
	if !had {
		return nil, fmt.Errorf("parse post %s: %w", relPath, frontmatter.ErrNoFrontmatter)
	}

	meta, err := frontmatter.DecodeMeta(rawMeta)
	if err != nil {
		return nil, fmt.Errorf("decode front-matter of %s: %w", relPath, err)
	}

	return &Post{
		Path:    relPath,
		AbsPath: absPath,
		Meta:    meta,
		Body:    body,
		RawMeta: rawMeta,
		Style:   style,
	}, nil
}
