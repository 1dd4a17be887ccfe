// Package config loads the blog's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the blog configuration loaded from blog.yaml.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Builder BuilderConfig `yaml:"builder"`
	Serve   ServeConfig   `yaml:"serve"`
	Lint    LintConfig    `yaml:"lint"`
	Images  ImagesConfig  `yaml:"images"`
}

// SiteConfig holds the site identity passed through to the builder config.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Theme       string `yaml:"theme,omitempty"`
}

// ContentConfig locates the content store on disk.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	StaticDir string `yaml:"static_dir,omitempty"`
}

// OutputConfig controls where the rendered site lands.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Clean bool   `yaml:"clean"` // wipe output dir before building
}

// BuilderConfig names the external static-site builder.
type BuilderConfig struct {
	Binary string `yaml:"binary,omitempty"` // builder executable, resolved on PATH
}

// ServeConfig controls the local draft-inclusive serve mode.
type ServeConfig struct {
	Port            int    `yaml:"port,omitempty"`
	RebuildInterval string `yaml:"rebuild_interval,omitempty"` // Go duration; periodic rebuild for future-dated posts
	Metrics         bool   `yaml:"metrics"`
}

// LintConfig tunes the content integrity checks.
type LintConfig struct {
	// Languages recognized in code-fence info strings. Empty means the
	// built-in default set.
	Languages []string `yaml:"languages,omitempty"`
	// Widgets are the shortcode names posts are allowed to embed.
	Widgets []string `yaml:"widgets,omitempty"`
}

// ImagesConfig tunes the static image pipeline.
type ImagesConfig struct {
	MaxWidth    int `yaml:"max_width,omitempty"`
	JPEGQuality int `yaml:"jpeg_quality,omitempty"`
}

// Load reads, expands, and validates the configuration at configPath.
// A .env/.env.local file next to the working directory is loaded first so
// ${VAR} references in the YAML resolve.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s (run 'blogbuilder init')", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "A Blog"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = "static"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "public"
		c.Output.Clean = true
	}
	if c.Builder.Binary == "" {
		c.Builder.Binary = "hugo"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = 1313
	}
	if c.Serve.RebuildInterval == "" {
		c.Serve.RebuildInterval = "10m"
	}
	if c.Images.MaxWidth == 0 {
		c.Images.MaxWidth = 1200
	}
	if c.Images.JPEGQuality == 0 {
		c.Images.JPEGQuality = 82
	}
}
