package lint

import "testing"

func TestShortcodeRule_Check(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		widgets    []string
		wantIssues int
	}{
		{
			name:       "no markers",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\nplain body\n",
			wantIssues: 0,
		},
		{
			name:       "inline marker passes",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< asciinema id=\"42\" >}}\n",
			wantIssues: 0,
		},
		{
			name:       "balanced block marker passes",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< codeplayground >}}\ncode\n{{< /codeplayground >}}\n",
			wantIssues: 0,
		},
		{
			name:       "stray closing marker",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< /codeplayground >}}\n",
			wantIssues: 1,
		},
		{
			name:       "open marker with later close for another instance",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< w >}}\n{{< w >}}\nx\n{{< /w >}}\n",
			wantIssues: 1,
		},
		{
			name:       "undeclared widget with configured list",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< mystery >}}\n",
			widgets:    []string{"asciinema"},
			wantIssues: 1,
		},
		{
			name:       "declared widget with configured list",
			content:    "---\ntitle: T\ndate: 2023-01-01\n---\n{{< asciinema id=\"42\" >}}\n",
			widgets:    []string{"asciinema"},
			wantIssues: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewShortcodeRule(tt.widgets)
			path := writeTestPost(t, tt.content)

			issues, err := rule.Check(path)
			if err != nil {
				t.Fatalf("Check returned error: %v", err)
			}
			if len(issues) != tt.wantIssues {
				t.Fatalf("Expected %d issues, got %d: %+v", tt.wantIssues, len(issues), issues)
			}
			for _, issue := range issues {
				if issue.Severity != SeverityError {
					t.Errorf("Expected error severity, got %s", issue.Severity)
				}
			}
		})
	}
}
