package lint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// FrontmatterRule checks that posts carry well-formed front-matter with the
// recognized key set and declared types.
type FrontmatterRule struct{}

// Name returns the name of the rule.
func (r *FrontmatterRule) Name() string {
	return "frontmatter"
}

// AppliesTo checks if the rule applies to the given file path.
func (r *FrontmatterRule) AppliesTo(filePath string) bool {
	return post.IsPostFile(filePath)
}

// Check validates the file's front-matter block.
func (r *FrontmatterRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rawMeta, _, had, _, err := frontmatter.Split(content)
	if err != nil {
		if errors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
			return []Issue{{
				FilePath: filePath,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "Front-matter block is never closed",
				Fix:      "Add a closing --- line after the metadata",
				Line:     1,
			}}, nil
		}
		return nil, err
	}
	if !had {
		return []Issue{{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "Missing front-matter",
			Fix:      "Start the file with a --- delimited block containing title and date",
			Line:     1,
		}}, nil
	}

	var issues []Issue

	meta, err := frontmatter.DecodeMeta(rawMeta)
	if err != nil {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Invalid front-matter: %v", firstErrorLine(err)),
			Fix:      "Fix the YAML so every field parses as its declared type",
			Line:     1,
		})
		return issues, nil
	}

	if strings.TrimSpace(meta.Title) == "" {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "Missing required 'title'",
			Fix:      "Add a title field",
			Line:     1,
		})
	}
	if meta.Date.IsZero() {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "Missing required 'date'",
			Fix:      "Add a date field (YYYY-MM-DD or RFC3339)",
			Line:     1,
		})
	}

	unknown, err := frontmatter.UnknownKeys(rawMeta)
	if err == nil && len(unknown) > 0 {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Unrecognized front-matter keys: %s", strings.Join(unknown, ", ")),
			Fix:      "Remove the keys or add them to the recognized set",
			Line:     1,
		})
	}

	return issues, nil
}

// firstErrorLine trims a multi-line yaml error down to its first line so the
// text formatter stays readable.
func firstErrorLine(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
