package lint

import "testing"

func TestCodeFenceRule_Check(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		languages  []string
		wantIssues int
	}{
		{
			name:       "tagged fence passes",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n```go\nfunc main() {}\n```\n",
			wantIssues: 0,
		},
		{
			name:       "untagged fence warns",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n```\nplain\n```\n",
			wantIssues: 1,
		},
		{
			name:       "unrecognized language warns",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n```klingon\nqapla\n```\n",
			wantIssues: 1,
		},
		{
			name:       "custom language set",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n```klingon\nqapla\n```\n",
			languages:  []string{"klingon"},
			wantIssues: 0,
		},
		{
			name:       "indented code block is not a fence",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\npara\n\n    indented code\n",
			wantIssues: 0,
		},
		{
			name:       "multiple fences each checked",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n```go\nx\n```\n\n```\ny\n```\n",
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewCodeFenceRule(tt.languages)
			path := writeTestPost(t, tt.content)

			issues, err := rule.Check(path)
			if err != nil {
				t.Fatalf("Check returned error: %v", err)
			}
			if len(issues) != tt.wantIssues {
				t.Fatalf("Expected %d issues, got %d: %+v", tt.wantIssues, len(issues), issues)
			}
		})
	}
}

func TestCodeFenceRule_ReportsFileLine(t *testing.T) {
	// Front-matter occupies lines 1-4, body starts at line 5.
	content := "---\ntitle: T\ndate: 2023-01-01\n---\npara\n\n```\nx\n```\n"
	rule := NewCodeFenceRule(nil)
	path := writeTestPost(t, content)

	issues, err := rule.Check(path)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	if issues[0].Line != 7 {
		t.Errorf("Expected issue on line 7, got %d", issues[0].Line)
	}
}
