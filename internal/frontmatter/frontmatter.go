// Package frontmatter is the codec for `---` delimited YAML front-matter
// on the blog's Markdown posts.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates a post opened a front-matter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("front-matter opening delimiter found but closing delimiter is missing")

// ErrNoFrontmatter indicates a post has no front-matter block at all.
var ErrNoFrontmatter = errors.New("post has no front-matter block")

// Style captures the newline shape of a post so a rewrite can reproduce
// the original bytes exactly.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// delimiterLine is the delimiter on its own line in this style.
func (s Style) delimiterLine() []byte {
	return []byte(delimiter + s.Newline)
}

// Split separates the `---` delimited YAML front-matter from the Markdown body.
//
// If the post does not start with a front-matter delimiter, had is false and
// body is the full input. The returned meta keeps its final newline so that
// Join reproduces the input byte for byte.
func Split(content []byte) (meta []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)
	open := style.delimiterLine()

	rest, opened := bytes.CutPrefix(content, open)
	if !opened {
		return nil, content, false, style, nil
	}

	// An immediate second delimiter is an empty block.
	if after, ok := bytes.CutPrefix(rest, open); ok {
		return []byte{}, after, true, style, nil
	}

	// The closing delimiter sits on its own line; the newline that ends the
	// last meta line stays with meta.
	closing := append([]byte(style.Newline), open...)
	before, after, closed := bytes.Cut(rest, closing)
	if !closed {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}
	return rest[:len(before)+len(style.Newline)], after, true, style, nil
}

// Join reassembles a post from raw front-matter and body.
//
// If had is false, Join returns body as-is. Split followed by Join is
// byte-identical for well-formed input.
func Join(meta []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}
	if style.Newline == "" {
		style.Newline = "\n"
	}

	var buf bytes.Buffer
	buf.Grow(len(meta) + len(body) + 2*(len(delimiter)+len(style.Newline)))
	buf.Write(style.delimiterLine())
	buf.Write(meta)
	buf.Write(style.delimiterLine())
	buf.Write(body)
	return buf.Bytes()
}

// ParseFields parses raw YAML front-matter (without delimiters) into a map.
// Used by lint rules that need to inspect keys the typed decoder rejects.
func ParseFields(meta []byte) (map[string]any, error) {
	if len(meta) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// detectStyle infers the newline convention from the first line break.
func detectStyle(content []byte) Style {
	style := Style{Newline: "\n"}
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		style.Newline = "\r\n"
	}
	style.HasTrailingNewline = bytes.HasSuffix(content, []byte("\n"))
	return style
}
