package lint

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// defaultLanguages is the code-fence language set the blog's highlighter
// understands. Overridable via lint.languages in the config.
var defaultLanguages = []string{
	"bash", "c", "cpp", "css", "diff", "dockerfile", "go", "haskell", "html",
	"java", "javascript", "json", "kotlin", "makefile", "nix", "plain",
	"proto", "python", "ruby", "rust", "scala", "sh", "shell", "sql", "text",
	"toml", "typescript", "xml", "yaml",
}

// CodeFenceRule checks that every fenced code block carries a recognized
// language tag.
type CodeFenceRule struct {
	languages map[string]struct{}
}

// NewCodeFenceRule builds the rule; an empty language list selects the
// default set.
func NewCodeFenceRule(languages []string) *CodeFenceRule {
	if len(languages) == 0 {
		languages = defaultLanguages
	}
	set := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		set[strings.ToLower(lang)] = struct{}{}
	}
	return &CodeFenceRule{languages: set}
}

// Name returns the name of the rule.
func (r *CodeFenceRule) Name() string {
	return "codefence"
}

// AppliesTo checks if the rule applies to the given file path.
func (r *CodeFenceRule) AppliesTo(filePath string) bool {
	return post.IsPostFile(filePath)
}

// Check parses the post body and inspects every fenced code block.
func (r *CodeFenceRule) Check(filePath string) ([]Issue, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	_, body, _, _, err := frontmatter.Split(content)
	if err != nil {
		// The frontmatter rule reports this; nothing to add here.
		return nil, nil
	}

	// Body line numbers are offset by the front-matter block.
	lineOffset := bytes.Count(content[:len(content)-len(body)], []byte("\n"))

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var issues []Issue
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		fence, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}

		line := fenceLine(fence, body) + lineOffset
		lang := string(fence.Language(body))
		switch {
		case lang == "":
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "Code fence without a language tag",
				Fix:      "Tag the fence, e.g. ```go",
				Line:     line,
			})
		case !r.recognized(lang):
			issues = append(issues, Issue{
				FilePath: filePath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("Unrecognized code fence language %q", lang),
				Fix:      "Use a recognized language tag or add it to lint.languages",
				Line:     line,
			})
		}
		return gmast.WalkContinue, nil
	})

	return issues, nil
}

func (r *CodeFenceRule) recognized(lang string) bool {
	_, ok := r.languages[strings.ToLower(lang)]
	return ok
}

// fenceLine returns the 1-based body line of the fence's opening delimiter.
func fenceLine(fence *gmast.FencedCodeBlock, body []byte) int {
	if fence.Info != nil {
		return bytes.Count(body[:fence.Info.Segment.Start], []byte("\n")) + 1
	}
	if lines := fence.Lines(); lines.Len() > 0 {
		// First content line; the opening delimiter is the line above.
		return bytes.Count(body[:lines.At(0).Start], []byte("\n"))
	}
	return 0
}
