package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// siteConfigName is the builder config file written at the blog root.
const siteConfigName = "hugo.yaml"

// WriteSiteConfig renders the builder's configuration from the blog config.
// The file is regenerated on every build so blog.yaml stays the single
// source of truth.
func WriteSiteConfig(cfg *config.Config, siteDir string) error {
	root := map[string]any{
		"title":        cfg.Site.Title,
		"baseURL":      cfg.Site.BaseURL,
		"contentDir":   cfg.Content.Dir,
		"staticDir":    cfg.Content.StaticDir,
		"languageCode": "en",
		"markup": map[string]any{
			"highlight": map[string]any{"style": "github", "lineNos": true, "noClasses": false},
		},
	}
	if cfg.Site.Description != "" {
		root["params"] = map[string]any{"description": cfg.Site.Description}
	}
	if cfg.Site.Theme != "" {
		root["theme"] = cfg.Site.Theme
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal site config: %w", err)
	}

	path := filepath.Join(siteDir, siteConfigName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write site config: %w", err)
	}
	return nil
}
