package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Linter runs content checks over the blog's Markdown store.
type Linter struct {
	cfg   *Config
	rules []Rule
}

// NewLinter creates a linter with the full rule set.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&FrontmatterRule{},
			NewCodeFenceRule(cfg.Languages),
			NewShortcodeRule(cfg.Widgets),
			&RelativeLinkRule{},
		},
	}
}

// LintPath lints a post file or a whole content directory. Directory runs
// additionally apply the store-level duplicate check.
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}

	if !info.IsDir() {
		result.FilesTotal = 1
		if err := l.lintFile(path, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := l.lintDirectory(path, result); err != nil {
		return nil, err
	}
	l.checkDuplicates(path, result)
	return result, nil
}

func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !post.IsPostFile(path) || strings.HasPrefix(d.Name(), "_index.") {
			return nil
		}

		result.FilesTotal++
		return l.lintFile(path, result)
	})
}

func (l *Linter) lintFile(filePath string, result *Result) error {
	for _, rule := range l.rules {
		if !rule.AppliesTo(filePath) {
			continue
		}

		issues, err := rule.Check(filePath)
		if err != nil {
			return fmt.Errorf("rule %s on %s: %w", rule.Name(), filePath, err)
		}

		for _, issue := range issues {
			if l.cfg.Quiet && issue.Severity != SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}
	return nil
}

// checkDuplicates flags posts sharing both title and date. Nothing enforces
// this uniqueness at build time, so it stays a warning.
func (l *Linter) checkDuplicates(dirPath string, result *Result) {
	if l.cfg.Quiet {
		return
	}

	store, err := post.LoadStore(dirPath)
	if err != nil {
		// Unparseable posts were already reported by the per-file rules.
		return
	}

	for _, dup := range store.FindDuplicates() {
		for _, p := range dup.Paths {
			result.Issues = append(result.Issues, Issue{
				FilePath: filepath.Join(dirPath, p),
				Severity: SeverityWarning,
				Rule:     "duplicate-post",
				Message: fmt.Sprintf("title %q and date %s shared by %s",
					dup.Title, dup.Date.Format("2006-01-02"), strings.Join(dup.Paths, ", ")),
				Fix: "Change the title or date so each post is distinguishable",
			})
		}
	}
}
