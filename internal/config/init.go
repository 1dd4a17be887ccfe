package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# blogbuilder configuration
site:
  title: "My Blog"
  description: "Notes on software"
  base_url: "https://example.org/"
  theme: ""

content:
  dir: content
  static_dir: static

output:
  dir: public
  clean: true

builder:
  binary: hugo

serve:
  port: 1313
  rebuild_interval: 10m
  metrics: false

lint:
  # languages: [go, scala, python, bash, text]
  # widgets: [codeplayground, asciinema]

images:
  max_width: 1200
  jpeg_quality: 82
`

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
