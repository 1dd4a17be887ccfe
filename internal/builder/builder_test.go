package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Site:    config.SiteConfig{Title: "Test Blog", BaseURL: "https://example.org/"},
		Content: config.ContentConfig{Dir: "content", StaticDir: "static"},
		Output:  config.OutputConfig{Dir: "public", Clean: true},
		Builder: config.BuilderConfig{Binary: "hugo"},
	}
}

func TestBuildArgs_Production(t *testing.T) {
	b := New(testConfig(), t.TempDir())

	args := b.buildArgs(Options{}, "public")
	require.Equal(t, []string{"--destination", "public", "--cleanDestinationDir"}, args)
}

func TestBuildArgs_Drafts(t *testing.T) {
	b := New(testConfig(), t.TempDir())

	args := b.buildArgs(Options{Drafts: true, OutputDir: "/tmp/out"}, "/tmp/out")
	require.Equal(t, []string{"--destination", "/tmp/out", "--buildDrafts", "--buildFuture"}, args)
}

func TestWriteSiteConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Site.Theme = "paper"
	cfg.Site.Description = "notes"

	require.NoError(t, WriteSiteConfig(cfg, dir))

	data, err := os.ReadFile(filepath.Join(dir, "hugo.yaml"))
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, yaml.Unmarshal(data, &root))
	require.Equal(t, "Test Blog", root["title"])
	require.Equal(t, "paper", root["theme"])
	require.Equal(t, "content", root["contentDir"])
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"hugo v0.152.2+extended linux/amd64 BuildDate=2024-12-20", "0.152.2"},
		{"Hugo Static Site Generator v0.101.0-extended", "0.101.0"},
		{"v1.2.3", "1.2.3"},
		{"weird output", "weird output"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseVersion(tt.output))
	}
}

func TestHashTree_DeterministicAndContentSensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "a.html"), []byte("<a>"), 0o644))

	h1, err := HashTree(dir)
	require.NoError(t, err)

	h2, err := HashTree(dir)
	require.NoError(t, err)
	require.Equal(t, h1, h2, "unchanged tree must hash identically")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "a.html"), []byte("<b>"), 0o644))
	h3, err := HashTree(dir)
	require.NoError(t, err)
	require.NotEqual(t, h1, h3, "content change must change the hash")
}

func TestHashTree_RenameChangesHash(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte("x"), 0o644))
	h1, err := HashTree(dir)
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")))
	h2, err := HashTree(dir)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
