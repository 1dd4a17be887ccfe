// Package scaffold creates new draft posts from an embedded template.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/slug"
)

//go:embed templates
var templates embed.FS

// Create writes a new draft post for title into contentDir and returns its
// path. The post starts with draft: true so it only shows up in local
// preview builds until the author flips it.
func Create(contentDir, title string, now time.Time) (string, error) {
	s := slug.Make(title)
	if s == "" {
		return "", fmt.Errorf("title %q produces an empty slug", title)
	}

	path := filepath.Join(contentDir, s+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("post already exists: %s", path)
	}

	tmpl, err := template.ParseFS(templates, "templates/post.md.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse post template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Title string
		Date  string
	}{
		Title: title,
		Date:  now.UTC().Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("render post template: %w", err)
	}

	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write post: %w", err)
	}
	return path, nil
}
