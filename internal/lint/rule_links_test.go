package lint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativeLinkRule_Check(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "diagram.png"), []byte("png"), 0o600); err != nil {
		t.Fatalf("Failed to create asset: %v", err)
	}

	tests := []struct {
		name       string
		body       string
		wantIssues int
	}{
		{"existing image", "![d](diagram.png)\n", 0},
		{"missing image", "![d](missing.png)\n", 1},
		{"missing link target", "[other](other-post.md)\n", 1},
		{"absolute url ignored", "[site](https://example.org/x.png)\n", 0},
		{"root-relative ignored", "[tagged](/tags/scala/)\n", 0},
		{"fragment ignored", "[above](#section)\n", 0},
		{"fragment on existing file", "[d](diagram.png#frag)\n", 0},
		{"mailto ignored", "[me](mailto:a@example.org)\n", 0},
	}

	rule := &RelativeLinkRule{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "post.md")
			content := "---\ntitle: T\ndate: 2023-01-01\n---\n" + tt.body
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

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
