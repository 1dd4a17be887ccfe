package builder

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// DetectVersion reports the version of the builder binary on PATH.
// Best-effort: returns "" when the binary is missing or the output is
// unparseable.
func DetectVersion(ctx context.Context, binary string) string {
	path, err := exec.LookPath(binary)
	if err != nil {
		return ""
	}

	// #nosec G204 -- path is from exec.LookPath, not user-controlled
	cmd := exec.CommandContext(ctx, path, "version")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return ParseVersion(string(output))
}

// ParseVersion extracts the semantic version from a builder's version output,
// e.g. "hugo v0.152.2+extended linux/amd64" yields "0.152.2".
func ParseVersion(output string) string {
	if m := versionPattern.FindStringSubmatch(output); len(m) >= 2 {
		return m[1]
	}
	return strings.TrimSpace(output)
}
