package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// NewFormatter selects a formatter by name, defaulting to text.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter renders results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped by file with a trailing summary.
func (f *TextFormatter) Format(w io.Writer, result *Result, path string) error {
	if _, err := fmt.Fprintf(w, "Linting posts in: %s\n", path); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	byFile := make(map[string][]Issue)
	var files []string
	for _, issue := range result.Issues {
		if _, seen := byFile[issue.FilePath]; !seen {
			files = append(files, issue.FilePath)
		}
		byFile[issue.FilePath] = append(byFile[issue.FilePath], issue)
	}
	sort.Strings(files)

	for _, file := range files {
		if _, err := fmt.Fprintf(w, "\n%s\n", file); err != nil {
			return err
		}
		for _, issue := range byFile[file] {
			loc := ""
			if issue.Line > 0 {
				loc = fmt.Sprintf(":%d", issue.Line)
			}
			if _, err := fmt.Fprintf(w, "  %s%s [%s] %s\n", issue.Severity, loc, issue.Rule, issue.Message); err != nil {
				return err
			}
			if issue.Fix != "" {
				if _, err := fmt.Fprintf(w, "    fix: %s\n", issue.Fix); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n  %d files scanned\n", result.FilesTotal); err != nil {
		return err
	}
	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s (blocks build)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s (should fix)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if len(result.Issues) == 0 {
		if _, err := fmt.Fprintln(w, "  no issues found"); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter renders results as a single JSON document.
type JSONFormatter struct{}

// Format outputs the result for machine consumption (CI, editors).
func (f *JSONFormatter) Format(w io.Writer, result *Result, path string) error {
	out := struct {
		Path     string  `json:"path"`
		Files    int     `json:"files_total"`
		Errors   int     `json:"errors"`
		Warnings int     `json:"warnings"`
		Issues   []Issue `json:"issues"`
	}{
		Path:     path,
		Files:    result.FilesTotal,
		Errors:   result.ErrorCount(),
		Warnings: result.WarningCount(),
		Issues:   result.Issues,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
