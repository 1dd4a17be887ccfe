// Package envdesc models the blog's development-environment descriptor:
// the package sources and build-time tools a working checkout needs, plus
// the version banner and usage hint printed on entry.
package envdesc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
)

// ErrToolMissing indicates a required tool is not on PATH.
var ErrToolMissing = errors.New("required tool missing")

// Descriptor is the parsed tools.yaml.
type Descriptor struct {
	Sources []Source `yaml:"sources,omitempty"`
	Tools   []Tool   `yaml:"tools"`
}

// Source is a named external package source.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Tool is one build-time dependency.
type Tool struct {
	Name        string   `yaml:"name"`
	VersionArgs []string `yaml:"version_args,omitempty"` // defaults to ["version"]
	Usage       string   `yaml:"usage,omitempty"`
	Optional    bool     `yaml:"optional,omitempty"`
}

// ToolStatus is the doctor's verdict for one declared tool.
type ToolStatus struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// Load reads a descriptor file. When the file does not exist the built-in
// default descriptor (the external builder alone) is returned.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("unmarshal descriptor: %w", err)
	}
	if len(desc.Tools) == 0 {
		return nil, fmt.Errorf("descriptor %s declares no tools", path)
	}
	return &desc, nil
}

// Default describes the minimal environment: the builder binary and the
// two commands the blog's workflow rests on.
func Default() *Descriptor {
	return &Descriptor{
		Sources: []Source{{Name: "nixpkgs", URL: "github:NixOS/nixpkgs/nixos-unstable"}},
		Tools: []Tool{{
			Name:  "hugo",
			Usage: "blogbuilder serve for drafts, blogbuilder build for production",
		}},
	}
}

// Check resolves every declared tool on PATH and captures its version
// string. It returns all statuses plus ErrToolMissing if any non-optional
// tool could not be found.
func (d *Descriptor) Check(ctx context.Context) ([]ToolStatus, error) {
	var statuses []ToolStatus
	var missing []string

	for _, tool := range d.Tools {
		status := ToolStatus{Tool: tool}

		if path, err := exec.LookPath(tool.Name); err == nil {
			status.Found = true
			status.Path = path
			status.Version = detectVersion(ctx, path, tool.VersionArgs)
		} else if !tool.Optional {
			missing = append(missing, tool.Name)
		}
		statuses = append(statuses, status)
	}

	if len(missing) > 0 {
		return statuses, fmt.Errorf("%w: %v", ErrToolMissing, missing)
	}
	return statuses, nil
}

func detectVersion(ctx context.Context, path string, args []string) string {
	if len(args) == 0 {
		args = []string{"version"}
	}
	// #nosec G204 -- path is from exec.LookPath over a declared tool name
	cmd := exec.CommandContext(ctx, path, args...)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return builder.ParseVersion(string(output))
}
