package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Hello\n\nWorld\n")

	meta, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, meta)
	require.Equal(t, input, body)
}

func TestSplit_WithFrontmatter_SplitsMetaAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Hello\n")

	meta, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), meta)
	require.Equal(t, []byte("# Hello\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\ntitle: Hello\n# Hello\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsMetaAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: Hello\r\n---\r\n# Hello\r\n")

	meta, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("title: Hello\r\n"), meta)
	require.Equal(t, []byte("# Hello\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	input := []byte("---\n---\n# Hello\n")

	meta, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, meta)
	require.Equal(t, []byte("# Hello\n"), body)
}

func TestJoin_RoundTrip_ReconstructsOriginalBytes(t *testing.T) {
	cases := [][]byte{
		[]byte("# Hello\n\nWorld\n"),
		[]byte("---\ntitle: Hello\n---\n# Hello\n"),
		[]byte("---\n---\n# Hello\n"),
		[]byte("---\r\ntitle: Hello\r\n---\r\n# Hello\r\n"),
		[]byte("---\ntitle: Hello\n---\n# Hello"),
		[]byte("---\ntitle: Hello\ndate: 2023-05-02\n---\n"),
	}

	for _, input := range cases {
		meta, body, had, style, err := Split(input)
		require.NoError(t, err)

		out := Join(meta, body, had, style)
		require.Equal(t, input, out)
	}
}

func TestDecodeMeta_FullPost(t *testing.T) {
	meta := []byte("title: Type-level Sorting in Scala 3\n" +
		"date: 2023-05-02\n" +
		"draft: true\n" +
		"description: Match types all the way down\n" +
		"tags:\n  - scala\n  - types\n")

	pm, err := DecodeMeta(meta)
	require.NoError(t, err)
	require.Equal(t, "Type-level Sorting in Scala 3", pm.Title)
	require.Equal(t, "2023-05-02", pm.Date.Format("2006-01-02"))
	require.True(t, pm.Draft)
	require.Equal(t, []string{"scala", "types"}, pm.Tags)
}

func TestDecodeMeta_DraftDefaultsToFalse(t *testing.T) {
	pm, err := DecodeMeta([]byte("title: x\ndate: 2023-05-02\n"))
	require.NoError(t, err)
	require.False(t, pm.Draft)
}

func TestDecodeMeta_AcceptsRFC3339Date(t *testing.T) {
	pm, err := DecodeMeta([]byte("title: x\ndate: 2023-05-02T09:30:00+02:00\n"))
	require.NoError(t, err)
	require.Equal(t, "2023-05-02T07:30:00Z", pm.Date.Format("2006-01-02T15:04:05Z07:00"))
}

func TestDecodeMeta_RejectsBadDate(t *testing.T) {
	_, err := DecodeMeta([]byte("title: x\ndate: next tuesday\n"))
	require.Error(t, err)
}

func TestUnknownKeys(t *testing.T) {
	meta := []byte("title: x\ndate: 2023-05-02\nweight: 3\nauthor: me\n")

	unknown, err := UnknownKeys(meta)
	require.NoError(t, err)
	require.Equal(t, []string{"author", "weight"}, unknown)
}

func TestUnknownKeys_AllRecognized(t *testing.T) {
	meta := []byte("title: x\ndate: 2023-05-02\ntags: [a]\nslug: x\nlastmod: 2023-06-01\ndescription: d\ndraft: false\n")

	unknown, err := UnknownKeys(meta)
	require.NoError(t, err)
	require.Empty(t, unknown)
}
