package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

func TestInitNewLintRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	cli := &CLI{Config: "blog.yaml"}

	initCmd := &InitCmd{}
	require.NoError(t, initCmd.Run(&Global{}, cli))
	require.FileExists(t, "blog.yaml")

	// A second init without --force must refuse to clobber the file.
	err := initCmd.Run(&Global{}, cli)
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{}, cli))

	newCmd := &NewCmd{Title: []string{"Hello", "Concurrent", "World"}}
	require.NoError(t, newCmd.Run(&Global{}, cli))

	path := filepath.Join("content", "hello-concurrent-world.md")
	require.FileExists(t, path)

	p, err := post.Load(path, "hello-concurrent-world.md")
	require.NoError(t, err)
	require.Equal(t, "Hello Concurrent World", p.Meta.Title)
	require.True(t, p.Meta.Draft)

	// The same title maps to the same slug, so a second create must fail.
	err = newCmd.Run(&Global{}, cli)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	// A freshly scaffolded draft lints clean.
	lintCmd := &LintCmd{Format: "text"}
	require.NoError(t, lintCmd.Run(&Global{}, cli))
}

func TestNewRejectsUnsluggableTitle(t *testing.T) {
	t.Chdir(t.TempDir())
	cli := &CLI{Config: "blog.yaml"}
	require.NoError(t, (&InitCmd{}).Run(&Global{}, cli))

	err := (&NewCmd{Title: []string{"!!!"}}).Run(&Global{}, cli)
	require.Error(t, err)
}

func TestTreeContainsSlug(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts", "my-first-post"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "my-first-post", "index.html"), []byte("<html></html>"), 0o644))

	if !treeContainsSlug(dir, "my-first-post") {
		t.Error("expected slug directory to be found")
	}
	if treeContainsSlug(dir, "another-post") {
		t.Error("did not expect missing slug to be found")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		env     string
		verbose bool
		want    string
	}{
		{"", false, "INFO"},
		{"", true, "DEBUG"},
		{"debug", false, "DEBUG"},
		{"warn", true, "WARN"},
		{"error", false, "ERROR"},
	}
	for _, tt := range tests {
		t.Setenv("BLOGBUILDER_LOG_LEVEL", tt.env)
		got := parseLogLevel(tt.verbose).String()
		if !strings.EqualFold(got, tt.want) {
			t.Errorf("parseLogLevel(verbose=%v) with env %q = %s, want %s", tt.verbose, tt.env, got, tt.want)
		}
	}
}
