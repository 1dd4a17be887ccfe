package scaffold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

func TestCreate_ProducesLintCleanDraft(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC)

	path, err := Create(dir, "Type-level Sorting in Scala 3", now)
	require.NoError(t, err)
	require.Contains(t, path, "type-level-sorting-in-scala-3.md")

	p, err := post.Load(path, "type-level-sorting-in-scala-3.md")
	require.NoError(t, err)
	require.Equal(t, "Type-level Sorting in Scala 3", p.Meta.Title)
	require.True(t, p.Meta.Draft)
	require.Equal(t, "2023-05-02", p.Meta.Date.Format("2006-01-02"))
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	_, err := Create(dir, "Hello", now)
	require.NoError(t, err)

	_, err = Create(dir, "Hello", now)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestCreate_RejectsEmptySlug(t *testing.T) {
	_, err := Create(t.TempDir(), "!!!", time.Now())
	require.Error(t, err)
}
