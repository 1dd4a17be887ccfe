package lint

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// shortcodePattern matches the blog's widget markers: {{< name args >}} and
// the closing form {{< /name >}}.
var shortcodePattern = regexp.MustCompile(`\{\{<\s*(/?)([a-zA-Z][a-zA-Z0-9_-]*)([^>]*)>\}\}`)

// ShortcodeRule checks the custom widget markers embedded in post bodies:
// closing markers must match an open one, block markers must be closed, and
// (when a widget list is configured) names must be declared.
type ShortcodeRule struct {
	widgets map[string]struct{}
}

// NewShortcodeRule builds the rule. An empty widget list disables the name
// check; balance is always verified.
func NewShortcodeRule(widgets []string) *ShortcodeRule {
	set := make(map[string]struct{}, len(widgets))
	for _, w := range widgets {
		set[w] = struct{}{}
	}
	return &ShortcodeRule{widgets: set}
}

// Name returns the name of the rule.
func (r *ShortcodeRule) Name() string {
	return "shortcode"
}

// AppliesTo checks if the rule applies to the given file path.
func (r *ShortcodeRule) AppliesTo(filePath string) bool {
	return post.IsPostFile(filePath)
}

// Check scans the post body for widget markers.
func (r *ShortcodeRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	_, body, _, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, nil
	}
	lineOffset := strings.Count(string(content[:len(content)-len(body)]), "\n")

	var issues []Issue
	type openMarker struct {
		name string
		line int
	}
	var stack []openMarker

	lines := strings.Split(string(body), "\n")
	for i, lineText := range lines {
		line := lineOffset + i + 1
		for _, m := range shortcodePattern.FindAllStringSubmatch(lineText, -1) {
			closing := m[1] == "/"
			name := m[2]

			if len(r.widgets) > 0 {
				if _, ok := r.widgets[name]; !ok {
					issues = append(issues, Issue{
						FilePath: filePath,
						Severity: SeverityError,
						Rule:     r.Name(),
						Message:  fmt.Sprintf("Unknown widget %q", name),
						Fix:      "Use a declared widget or add it to lint.widgets",
						Line:     line,
					})
					continue
				}
			}

			if closing {
				if len(stack) == 0 || stack[len(stack)-1].name != name {
					issues = append(issues, Issue{
						FilePath: filePath,
						Severity: SeverityError,
						Rule:     r.Name(),
						Message:  fmt.Sprintf("Closing marker for %q without a matching opening", name),
						Fix:      "Open the widget before closing it",
						Line:     line,
					})
					continue
				}
				stack = stack[:len(stack)-1]
				continue
			}

			// Opening markers only expect a close when a paired closing
			// marker for the same name appears later in the body.
			if strings.Contains(string(body), "{{< /"+name) || strings.Contains(string(body), "{{</"+name) {
				stack = append(stack, openMarker{name: name, line: line})
			}
		}
	}

	for _, open := range stack {
		issues = append(issues, Issue{
			FilePath: filePath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("Widget %q is never closed", open.name),
			Fix:      fmt.Sprintf("Add {{< /%s >}}", open.name),
			Line:     open.line,
		})
	}

	return issues, nil
}
