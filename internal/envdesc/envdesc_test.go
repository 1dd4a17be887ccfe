package envdesc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTool drops an executable script named name into a directory that is
// prepended to PATH for the test.
func fakeTool(t *testing.T, name, output string) {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\necho '" + output + "'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	desc, err := Load(filepath.Join(t.TempDir(), "tools.yaml"))
	require.NoError(t, err)
	require.Len(t, desc.Tools, 1)
	require.Equal(t, "hugo", desc.Tools[0].Name)
}

func TestLoad_ParsesDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	content := `sources:
  - name: nixpkgs
    url: github:NixOS/nixpkgs/nixos-24.05
tools:
  - name: hugo
    usage: "serve with drafts or build"
  - name: optipng
    optional: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	desc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, desc.Sources, 1)
	require.Len(t, desc.Tools, 2)
	require.True(t, desc.Tools[1].Optional)
}

func TestLoad_RejectsEmptyToolList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestCheck_FindsToolAndParsesVersion(t *testing.T) {
	fakeTool(t, "fakebuilder", "fakebuilder v0.152.2+extended linux/amd64")
	desc := &Descriptor{Tools: []Tool{{Name: "fakebuilder"}}}

	statuses, err := desc.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	require.True(t, statuses[0].Found)
	require.Equal(t, "0.152.2", statuses[0].Version)
}

func TestCheck_MissingRequiredTool(t *testing.T) {
	desc := &Descriptor{Tools: []Tool{{Name: "definitely-not-installed-anywhere"}}}

	statuses, err := desc.Check(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrToolMissing))
	require.Len(t, statuses, 1)
	require.False(t, statuses[0].Found)
}

func TestCheck_MissingOptionalToolIsFine(t *testing.T) {
	desc := &Descriptor{Tools: []Tool{{Name: "definitely-not-installed-anywhere", Optional: true}}}

	_, err := desc.Check(context.Background())
	require.NoError(t, err)
}
